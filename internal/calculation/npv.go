package calculation

import (
	"github.com/shopspring/decimal"
)

// CalculateNPV discounts an annual payment stream, paid at the end of each
// year, plus an optional one-time forgiveness tax paid at forgivenessYear.
// Lower is better; this is the single ranking criterion across strategies.
func CalculateNPV(payments []decimal.Decimal, discountRate, taxOnForgiveness decimal.Decimal, forgivenessYear int) decimal.Decimal {
	growth := decimalOne.Add(discountRate)

	npv := decimalZero
	factor := decimalOne
	for _, payment := range payments {
		factor = factor.Mul(growth).Round(18)
		npv = npv.Add(payment.Div(factor))
	}

	if taxOnForgiveness.IsPositive() && forgivenessYear > 0 {
		npv = npv.Add(taxOnForgiveness.Div(powInt(growth, forgivenessYear)))
	}

	return npv.Round(0)
}
