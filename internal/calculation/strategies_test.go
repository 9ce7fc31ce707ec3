package calculation

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/medloans/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// residentInputs describes a first-year internal medicine resident at a
// nonprofit hospital with $250k of federal debt.
func residentInputs() domain.UserInputs {
	return domain.UserInputs{
		Loans: domain.LoanInfo{
			TotalBalance:         decimal.NewFromInt(250000),
			WeightedInterestRate: dec(0.065),
		},
		Personal: domain.PersonalInfo{
			AGI:                  decimal.NewFromInt(64000),
			SpouseAGI:            decimal.Zero,
			FilingStatus:         domain.FilingSingle,
			FamilySize:           1,
			State:                "CA",
			PSLFEligibleEmployer: true,
		},
		Career: domain.CareerInfo{
			Specialty:              "internal_medicine",
			CurrentStage:           domain.StagePGY1,
			TrainingYearsRemaining: 3,
		},
		Preferences: domain.Preferences{
			DiscountRate:   dec(0.05),
			PSLFConfidence: dec(0.9),
			RiskTolerance:  domain.RiskModerate,
		},
	}
}

func TestPSLFYearsRemaining(t *testing.T) {
	assert.Equal(t, 10, PSLFYearsRemaining(0))
	assert.Equal(t, 5, PSLFYearsRemaining(60))
	assert.Equal(t, 1, PSLFYearsRemaining(119))
	assert.Equal(t, 0, PSLFYearsRemaining(120))
	assert.Equal(t, 10, PSLFYearsRemaining(-3))
}

func TestIDRYearsRemaining(t *testing.T) {
	ref := domain.DefaultReferenceData()
	paye, _ := ref.Plan(domain.PlanPAYE)
	icr, _ := ref.Plan(domain.PlanICR)

	assert.Equal(t, 20, IDRYearsRemaining(paye, 0))
	assert.Equal(t, 15, IDRYearsRemaining(paye, 60))
	assert.Equal(t, 25, IDRYearsRemaining(icr, 11))
	assert.Equal(t, 0, IDRYearsRemaining(paye, 300))
}

func TestCalculatePSLF_Resident(t *testing.T) {
	engine := NewCalculationEngine()
	inputs := residentInputs()
	projection := engine.ProjectIncome(inputs.Career, 30, engine.IncomeGrowthRate)

	result := engine.CalculatePSLF(inputs, projection)

	assert.Equal(t, "PSLF", result.StrategyName)
	assert.Equal(t, domain.KindPSLF, result.Kind)
	assert.Equal(t, domain.PlanPAYE, result.Plan)
	assert.Equal(t, 10, result.TotalYears)
	require.Len(t, result.YearlyBreakdown, 10)
	assertDecimal(t, inputs.Loans.TotalBalance, result.YearlyBreakdown[0].StartingBalance)
	assertDecimal(t, decimal.Zero, result.TaxOnForgiveness)
	assert.True(t, result.ForgivenessAmount.IsPositive(), "a resident's balance should remain at forgiveness")
	assert.True(t, result.NPV.LessThan(result.TotalPayments))
	assert.True(t, result.MonthlyPaymentRange.Min.LessThan(result.MonthlyPaymentRange.Max))
	assertDecimal(t, result.YearlyBreakdown[9].CumulativePayments, result.TotalPayments)
}

func TestCalculatePSLF_CreditedPaymentsShortenHorizon(t *testing.T) {
	engine := NewCalculationEngine()
	inputs := residentInputs()
	inputs.Loans.PSLFQualifyingPayments = 60
	projection := engine.ProjectIncome(inputs.Career, 30, engine.IncomeGrowthRate)

	result := engine.CalculatePSLF(inputs, projection)

	assert.Equal(t, 5, result.TotalYears)
}

func TestCalculatePSLF_AlreadyQualified(t *testing.T) {
	engine := NewCalculationEngine()
	inputs := residentInputs()
	inputs.Loans.PSLFQualifyingPayments = 120
	projection := engine.ProjectIncome(inputs.Career, 30, engine.IncomeGrowthRate)

	result := engine.CalculatePSLF(inputs, projection)

	assert.Equal(t, 0, result.TotalYears)
	assert.Empty(t, result.YearlyBreakdown)
	assertDecimal(t, decimal.Zero, result.NPV)
	assertDecimal(t, inputs.Loans.TotalBalance, result.ForgivenessAmount)
	assertDecimal(t, decimal.Zero, result.TaxOnForgiveness)
	require.NotEmpty(t, result.Risks)
	assert.NotContains(t, result.Risks[0], "next 0 years")
}

func TestCalculateIDRStrategy_ForgivenessClockComplete(t *testing.T) {
	engine := NewCalculationEngine()
	inputs := residentInputs()
	inputs.Loans.IDRQualifyingPayments = 300
	projection := engine.ProjectIncome(inputs.Career, 30, engine.IncomeGrowthRate)

	for _, name := range []domain.PlanName{domain.PlanPAYE, domain.PlanIBRNew, domain.PlanSAVE} {
		result := engine.CalculateIDRStrategy(inputs, projection, name)

		assert.Equal(t, 0, result.TotalYears, name)
		assertDecimal(t, inputs.Loans.TotalBalance, result.ForgivenessAmount)
		assert.True(t, result.TaxOnForgiveness.IsPositive(), "%s: forgiven balance is taxable", name)
		assertDecimal(t, decimal.Zero, result.NPV)
		for _, risk := range result.Risks {
			assert.NotContains(t, risk, "year 0")
		}
	}
}

func TestCalculateRefinance_FirstYearKeepsExactBalance(t *testing.T) {
	engine := NewCalculationEngine()
	inputs := residentInputs()
	inputs.Loans.TotalBalance = dec(250000.555)

	result := engine.CalculateRefinance(inputs, domain.RefinanceOffer{Rate: dec(0.055), TermYears: 10})

	require.NotEmpty(t, result.YearlyBreakdown)
	assertDecimal(t, dec(250000.555), result.YearlyBreakdown[0].StartingBalance)
	assertDecimal(t, result.YearlyBreakdown[0].EndingBalance, result.YearlyBreakdown[1].StartingBalance)
}

func TestCalculatePSLF_Caveats(t *testing.T) {
	engine := NewCalculationEngine()
	inputs := residentInputs()
	inputs.Personal.PSLFEligibleEmployer = false
	inputs.Preferences.PSLFConfidence = dec(0.5)
	projection := engine.ProjectIncome(inputs.Career, 30, engine.IncomeGrowthRate)

	result := engine.CalculatePSLF(inputs, projection)

	assert.Len(t, result.Risks, 4)
	assert.Contains(t, result.Risks[3], "50%")
}

func TestCalculateIDRStrategy_SAVE(t *testing.T) {
	engine := NewCalculationEngine()
	inputs := residentInputs()
	projection := engine.ProjectIncome(inputs.Career, 30, engine.IncomeGrowthRate)

	result := engine.CalculateIDRStrategy(inputs, projection, domain.PlanSAVE)

	assert.Equal(t, "SAVE", result.StrategyName)
	assert.Equal(t, domain.KindIDR, result.Kind)
	found := false
	for _, risk := range result.Risks {
		if strings.Contains(risk, "litigation") {
			found = true
		}
	}
	assert.True(t, found, "SAVE should carry a litigation risk")
}

func TestCalculateIDRStrategy_NoStateAfterPayoff(t *testing.T) {
	engine := NewCalculationEngine()
	inputs := residentInputs()
	inputs.Loans.TotalBalance = decimal.NewFromInt(60000)
	projection := engine.ProjectIncome(inputs.Career, 30, engine.IncomeGrowthRate)

	result := engine.CalculateIDRStrategy(inputs, projection, domain.PlanPAYE)

	require.NotEmpty(t, result.YearlyBreakdown)
	assert.Less(t, result.TotalYears, 20, "a small balance should be repaid before forgiveness")
	for k, state := range result.YearlyBreakdown {
		if state.EndingBalance.IsZero() {
			assert.Equal(t, len(result.YearlyBreakdown)-1, k, "zero balance must end the schedule")
		}
	}
	assertDecimal(t, decimal.Zero, result.ForgivenessAmount)
	assertDecimal(t, decimal.Zero, result.TaxOnForgiveness)
}

func TestCalculateIDRStrategy_TaxesForgiveness(t *testing.T) {
	engine := NewCalculationEngine()
	inputs := residentInputs()
	inputs.Loans.TotalBalance = decimal.NewFromInt(400000)
	inputs.Loans.WeightedInterestRate = dec(0.07)
	inputs.Career.Specialty = "pediatrics"
	projection := engine.ProjectIncome(inputs.Career, 30, engine.IncomeGrowthRate)

	result := engine.CalculateIDRStrategy(inputs, projection, domain.PlanPAYE)

	assert.Equal(t, 20, result.TotalYears)
	assert.True(t, result.ForgivenessAmount.IsPositive())
	assert.True(t, result.TaxOnForgiveness.IsPositive())

	withoutTax := CalculateNPV(annualPaymentsFrom(result.YearlyBreakdown), inputs.Preferences.DiscountRate, decimal.Zero, 0)
	assert.True(t, result.NPV.GreaterThan(withoutTax), "forgiveness tax should raise NPV")
}

func TestCalculateIDRStrategy_DisplayNames(t *testing.T) {
	engine := NewCalculationEngine()
	inputs := residentInputs()
	projection := engine.ProjectIncome(inputs.Career, 30, engine.IncomeGrowthRate)

	assert.Equal(t, "IBR (New)", engine.CalculateIDRStrategy(inputs, projection, domain.PlanIBRNew).StrategyName)
	assert.Equal(t, "IBR (Old)", engine.CalculateIDRStrategy(inputs, projection, domain.PlanIBROld).StrategyName)
	assert.Equal(t, "PAYE", engine.CalculateIDRStrategy(inputs, projection, domain.PlanPAYE).StrategyName)
}

func TestCalculateRefinance(t *testing.T) {
	engine := NewCalculationEngine()
	inputs := residentInputs()

	result := engine.CalculateRefinance(inputs, domain.RefinanceOffer{Rate: dec(0.055), TermYears: 10})

	assert.Equal(t, "Refinance 5.5% / 10yr", result.StrategyName)
	assert.Equal(t, domain.KindRefinance, result.Kind)
	assert.Equal(t, 10, result.TotalYears)
	require.Len(t, result.YearlyBreakdown, 10)
	assertDecimal(t, decimal.Zero, result.YearlyBreakdown[9].EndingBalance)
	assertDecimal(t, decimal.Zero, result.ForgivenessAmount)
	assertDecimal(t, decimal.Zero, result.TaxOnForgiveness)
	assertDecimal(t, result.MonthlyPaymentRange.Min, result.MonthlyPaymentRange.Max)
	assertDecimal(t, result.MonthlyPaymentRange.Min.Mul(decimal.NewFromInt(120)), result.TotalPayments)
	for k := 1; k < len(result.YearlyBreakdown); k++ {
		assert.True(t, result.YearlyBreakdown[k].EndingBalance.LessThan(result.YearlyBreakdown[k-1].EndingBalance))
	}
}
