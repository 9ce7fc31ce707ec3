package calculation

import (
	"github.com/rgehrsitz/medloans/internal/domain"
	"github.com/shopspring/decimal"
)

// SimulateLoanBalance amortizes a loan month by month, one annual payment
// amount per year. When the plan subsidizes interest and a month's payment
// does not cover that month's interest, the shortfall is recorded as
// subsidized and the balance holds flat. No year is emitted after the
// balance first reaches zero.
func SimulateLoanBalance(initialBalance, annualRate decimal.Decimal, annualPayments []decimal.Decimal, plan domain.IDRPlanParams) []domain.YearlyLoanState {
	states := make([]domain.YearlyLoanState, 0, len(annualPayments))
	monthlyRate := annualRate.Div(decimalTwelve)

	balance := initialBalance
	cumulative := decimalZero
	for idx, annual := range annualPayments {
		if !balance.IsPositive() {
			break
		}

		monthlyPayment := annual.Div(decimalTwelve)
		starting := balance
		interestYear := decimalZero
		paidYear := decimalZero
		subsidizedYear := decimalZero

		for month := 0; month < 12 && balance.IsPositive(); month++ {
			interest := balance.Mul(monthlyRate)
			interestYear = interestYear.Add(interest)

			if plan.InterestSubsidy && monthlyPayment.LessThan(interest) {
				subsidizedYear = subsidizedYear.Add(interest.Sub(monthlyPayment))
				paidYear = paidYear.Add(monthlyPayment)
				continue
			}

			owed := balance.Add(interest)
			payment := decimal.Min(monthlyPayment, owed)
			paidYear = paidYear.Add(payment)
			balance = decimal.Max(decimalZero, owed.Sub(payment))
		}

		cumulative = cumulative.Add(paidYear)
		states = append(states, domain.YearlyLoanState{
			Year:               idx + 1,
			StartingBalance:    openingBalance(idx+1, starting),
			InterestAccrued:    interestYear.Round(2),
			PaymentsMade:       paidYear.Round(2),
			EndingBalance:      balance.Round(2),
			InterestSubsidized: subsidizedYear.Round(2),
			CumulativePayments: cumulative.Round(2),
		})
	}

	return states
}

// openingBalance rounds a snapshot's starting balance to cents, except in
// year 1 where it is the input balance exactly
func openingBalance(year int, starting decimal.Decimal) decimal.Decimal {
	if year == 1 {
		return starting
	}
	return starting.Round(2)
}

// annualPaymentsFrom extracts the payments actually made each year
func annualPaymentsFrom(states []domain.YearlyLoanState) []decimal.Decimal {
	out := make([]decimal.Decimal, len(states))
	for k, s := range states {
		out[k] = s.PaymentsMade
	}
	return out
}
