package calculation

import (
	"github.com/rgehrsitz/medloans/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultIncomeGrowthRate is the annual raise applied to projected income
var DefaultIncomeGrowthRate = decimal.NewFromFloat(0.03)

// CalculationEngine evaluates repayment strategies against a set of reference tables.
// It holds no per-run state, so one engine may serve concurrent comparisons.
type CalculationEngine struct {
	Reference        *domain.ReferenceData
	IncomeGrowthRate decimal.Decimal
	Logger           Logger
}

// NewCalculationEngine creates an engine backed by the built-in reference tables
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithReference(domain.DefaultReferenceData())
}

// NewCalculationEngineWithReference creates an engine backed by the given tables
func NewCalculationEngineWithReference(ref *domain.ReferenceData) *CalculationEngine {
	if ref == nil {
		ref = domain.DefaultReferenceData()
	}
	return &CalculationEngine{
		Reference:        ref,
		IncomeGrowthRate: DefaultIncomeGrowthRate,
		Logger:           NopLogger{},
	}
}

// SetLogger installs a logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// AttendingSalary returns the caller's override or the specialty median
func (ce *CalculationEngine) AttendingSalary(career domain.CareerInfo) decimal.Decimal {
	if career.ExpectedAttendingSalary != nil && career.ExpectedAttendingSalary.IsPositive() {
		return *career.ExpectedAttendingSalary
	}
	spec, ok := ce.Reference.SpecialtyFor(career.Specialty)
	if !ok {
		ce.Logger.Debugf("unknown specialty %q, using %q", career.Specialty, domain.OtherSpecialty)
	}
	return spec.MedianSalary
}

// EstimateTaxOnForgiveness estimates the one-time tax on a forgiven balance.
// Federal tax is the marginal increment over the no-forgiveness baseline; state
// tax is the state's flat rate applied to the whole amount.
func (ce *CalculationEngine) EstimateTaxOnForgiveness(amount, income decimal.Decimal, status domain.FilingStatus, state string) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}
	baseline := ce.CalculateFederalTax(income, status)
	withForgiveness := ce.CalculateFederalTax(income.Add(amount), status)

	stateRate, ok := ce.Reference.StateRate(state)
	if !ok {
		ce.Logger.Debugf("no state rate for %q, using default %s", state, stateRate.String())
	}

	return withForgiveness.Sub(baseline).Add(amount.Mul(stateRate)).Round(0)
}

// CalculateFederalTax applies the progressive bracket table for a filing status
func (ce *CalculationEngine) CalculateFederalTax(taxableIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	return CalculateFederalTax(ce.Reference.BracketsFor(status), taxableIncome)
}

// CalculateIDRPayment computes a monthly IDR payment with the engine's poverty guideline
func (ce *CalculationEngine) CalculateIDRPayment(agi, spouseAGI decimal.Decimal, status domain.FilingStatus, familySize int, plan domain.IDRPlanParams) decimal.Decimal {
	return CalculateIDRPayment(ce.Reference.Poverty, agi, spouseAGI, status, familySize, plan)
}

// PovertyLine returns the poverty guideline for a household size
func (ce *CalculationEngine) PovertyLine(familySize int) decimal.Decimal {
	return PovertyLine(ce.Reference.Poverty, familySize)
}

// plan resolves IDR parameters, falling back to PAYE on an unknown name
func (ce *CalculationEngine) plan(name domain.PlanName) domain.IDRPlanParams {
	if p, ok := ce.Reference.Plan(name); ok {
		return p
	}
	ce.Logger.Warnf("unknown IDR plan %q, using %s", name, domain.PlanPAYE)
	p, _ := ce.Reference.Plan(domain.PlanPAYE)
	return p
}
