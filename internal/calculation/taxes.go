package calculation

import (
	"github.com/rgehrsitz/medloans/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX ASSUMPTIONS:
//
// 1. Federal: the income passed in is already taxable income. No standard
//    deduction is applied here; brackets are held at the reference-data year.
//
// 2. State: a single flat top-marginal rate per state, applied to the whole
//    forgiven amount. Unknown states use the reference default (5%).
//
// 3. Forgiveness: federal tax is the increment between tax with and without
//    the forgiven balance in the forgiveness year.

// CalculateFederalTax sums marginal tax by walking the brackets from the
// highest threshold at or below income down to zero. Brackets must be sorted
// by ascending threshold. The result is rounded to whole dollars.
func CalculateFederalTax(brackets []domain.TaxBracket, taxableIncome decimal.Decimal) decimal.Decimal {
	if !taxableIncome.IsPositive() {
		return decimalZero
	}

	remaining := taxableIncome
	tax := decimalZero
	for k := len(brackets) - 1; k >= 0; k-- {
		b := brackets[k]
		if remaining.LessThanOrEqual(b.Threshold) {
			continue
		}
		tax = tax.Add(remaining.Sub(b.Threshold).Mul(b.Rate))
		remaining = b.Threshold
	}

	return tax.Round(0)
}
