package calculation

import (
	"github.com/rgehrsitz/medloans/internal/domain"
	"github.com/shopspring/decimal"
)

// StandardTermMonths is the term of the 10-year standard plan
const StandardTermMonths = 120

// PovertyLine returns the poverty guideline for a household of familySize
func PovertyLine(g domain.PovertyGuideline, familySize int) decimal.Decimal {
	extra := familySize - 1
	if extra < 0 {
		extra = 0
	}
	return g.Base.Add(g.PerPerson.Mul(decimal.NewFromInt(int64(extra))))
}

// CalculateIDRPayment returns the monthly payment under an IDR plan, rounded to
// whole dollars. Married filing separately counts only the borrower's AGI.
func CalculateIDRPayment(g domain.PovertyGuideline, agi, spouseAGI decimal.Decimal, status domain.FilingStatus, familySize int, plan domain.IDRPlanParams) decimal.Decimal {
	income := agi
	if status != domain.FilingMFS {
		income = income.Add(spouseAGI)
	}

	protected := PovertyLine(g, familySize).Mul(plan.PovertyLineMultiplier)
	discretionary := decimal.Max(decimalZero, income.Sub(protected))

	monthly := discretionary.Mul(plan.DiscretionaryIncomePercent).Div(decimalTwelve).Round(0)
	return decimal.Max(decimalZero, monthly)
}

// Calculate10YearStandardPayment returns the 120-month amortized payment in whole dollars
func Calculate10YearStandardPayment(balance, annualRate decimal.Decimal) decimal.Decimal {
	return CalculateAmortizedPayment(balance, annualRate, StandardTermMonths).Round(0)
}

// EffectiveIDRPayment applies the plan's standard-payment cap, if it has one
func EffectiveIDRPayment(calculated, standard decimal.Decimal, plan domain.IDRPlanParams) decimal.Decimal {
	if plan.CapAtStandard {
		return decimal.Min(calculated, standard)
	}
	return calculated
}

// CalculateAmortizedPayment returns the fixed monthly payment that retires
// principal over months at annualRate/12 per month, rounded to cents.
func CalculateAmortizedPayment(principal, annualRate decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 || !principal.IsPositive() {
		return decimalZero
	}
	n := decimal.NewFromInt(int64(months))
	if annualRate.IsZero() {
		return principal.Div(n).Round(2)
	}

	monthlyRate := annualRate.Div(decimalTwelve)
	factor := powInt(decimalOne.Add(monthlyRate), months)
	return principal.Mul(monthlyRate).Mul(factor).Div(factor.Sub(decimalOne)).Round(2)
}

// remainingBalance is the closed-form balance after k level payments
func remainingBalance(principal, annualRate, payment decimal.Decimal, k int) decimal.Decimal {
	if annualRate.IsZero() {
		return decimal.Max(decimalZero, principal.Sub(payment.Mul(decimal.NewFromInt(int64(k)))))
	}
	monthlyRate := annualRate.Div(decimalTwelve)
	growth := powInt(decimalOne.Add(monthlyRate), k)
	owed := principal.Mul(growth).Sub(payment.Mul(growth.Sub(decimalOne)).Div(monthlyRate))
	return decimal.Max(decimalZero, owed)
}
