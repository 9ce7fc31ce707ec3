package calculation

import (
	"github.com/rgehrsitz/medloans/internal/domain"
	"github.com/shopspring/decimal"
)

// AggressivePayoffEffectiveTaxRate is the flat effective tax used to turn an
// attending salary into take-home pay for the payoff model.
var AggressivePayoffEffectiveTaxRate = decimal.NewFromFloat(0.30)

// payoffTracker accumulates months and years across the payoff phases
type payoffTracker struct {
	balance     decimal.Decimal
	monthlyRate decimal.Decimal
	months      int
	years       []domain.PayoffYear
}

// runYear applies up to twelve level payments and records the year under phase.
// A positive monthsLeftInPhase marks the phase's final month, which clears the
// balance so rounding never leaves a stray remainder. It returns months used.
func (t *payoffTracker) runYear(phase domain.PayoffPhase, payment decimal.Decimal, monthsLeftInPhase int) int {
	paid := decimalZero
	interestYear := decimalZero
	used := 0
	for month := 0; month < 12 && t.balance.IsPositive(); month++ {
		interest := t.balance.Mul(t.monthlyRate)
		owed := t.balance.Add(interest)
		pay := decimal.Min(payment, owed)
		if monthsLeftInPhase > 0 && used == monthsLeftInPhase-1 {
			pay = owed
		}
		t.balance = decimal.Max(decimalZero, owed.Sub(pay))
		paid = paid.Add(pay)
		interestYear = interestYear.Add(interest)
		used++
		t.months++
	}
	t.years = append(t.years, domain.PayoffYear{
		Year:          len(t.years) + 1,
		Phase:         phase,
		Payments:      paid.Round(2),
		Principal:     paid.Sub(interestYear).Round(2),
		Interest:      interestYear.Round(2),
		EndingBalance: t.balance.Round(2),
	})
	return used
}

// CalculateAggressivePayoff models a physician who pays interest only during
// training, throws all surplus take-home pay at the loan as an attending for
// a chosen number of years, then amortizes whatever remains over ten years.
// The strategy never forgives, so its NPV has no tax event.
func CalculateAggressivePayoff(p domain.AggressivePayoffParams) domain.AggressivePayoffResult {
	t := &payoffTracker{
		balance:     p.TotalBalance,
		monthlyRate: p.InterestRate.Div(decimalTwelve),
	}

	result := domain.AggressivePayoffResult{}

	// Phase 1: interest only; the balance is unchanged.
	result.TrainingMonthlyPayment = t.balance.Mul(t.monthlyRate).Round(2)
	for year := 0; year < p.TrainingYearsRemaining && t.balance.IsPositive(); year++ {
		interest := t.balance.Mul(t.monthlyRate).Mul(decimalTwelve)
		t.months += 12
		t.years = append(t.years, domain.PayoffYear{
			Year:          len(t.years) + 1,
			Phase:         domain.PhaseTraining,
			Payments:      interest.Round(2),
			Principal:     decimalZero,
			Interest:      interest.Round(2),
			EndingBalance: t.balance.Round(2),
		})
	}

	// Phase 2: surplus take-home pay.
	takeHome := p.AttendingSalary.Mul(decimalOne.Sub(AggressivePayoffEffectiveTaxRate))
	surplus := decimal.Max(decimalZero, takeHome.Sub(p.LivingExpenses))
	result.AggressiveMonthlyPayment = surplus.Div(decimalTwelve).Round(2)
	for year := 0; year < p.AggressiveYears && t.balance.IsPositive(); year++ {
		t.runYear(domain.PhaseAggressive, result.AggressiveMonthlyPayment, 0)
	}

	// Phase 3: ten-year standard amortization of any remainder.
	if t.balance.IsPositive() {
		result.StandardMonthlyPayment = CalculateAmortizedPayment(t.balance, p.InterestRate, StandardTermMonths)
		left := StandardTermMonths
		for left > 0 && t.balance.IsPositive() {
			left -= t.runYear(domain.PhaseStandard, result.StandardMonthlyPayment, left)
		}
	}

	annual := make([]decimal.Decimal, len(t.years))
	totalPayments := decimalZero
	totalInterest := decimalZero
	for k, y := range t.years {
		annual[k] = y.Payments
		totalPayments = totalPayments.Add(y.Payments)
		totalInterest = totalInterest.Add(y.Interest)
	}

	result.YearlyBreakdown = t.years
	result.TotalPayments = totalPayments.Round(2)
	result.TotalInterest = totalInterest.Round(2)
	result.YearsToPayoff = len(t.years)
	result.MonthsToPayoff = t.months
	result.NPV = CalculateNPV(annual, p.DiscountRate, decimalZero, 0)

	return result
}
