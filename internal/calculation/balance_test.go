package calculation

import (
	"testing"

	"github.com/rgehrsitz/medloans/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeat(v decimal.Decimal, n int) []decimal.Decimal {
	out := make([]decimal.Decimal, n)
	for k := range out {
		out[k] = v
	}
	return out
}

func TestSimulateLoanBalance_SubsidyHoldsBalanceFlat(t *testing.T) {
	ref := domain.DefaultReferenceData()
	paye, _ := ref.Plan(domain.PlanPAYE)
	balance := decimal.NewFromInt(100000)

	states := SimulateLoanBalance(balance, dec(0.06), repeat(decimal.NewFromInt(1200), 3), paye)

	require.Len(t, states, 3)
	first := states[0]
	assert.Equal(t, 1, first.Year)
	assertDecimal(t, balance, first.StartingBalance)
	assertDecimal(t, balance, first.EndingBalance)
	assertDecimal(t, decimal.NewFromInt(6000), first.InterestAccrued)
	assertDecimal(t, decimal.NewFromInt(4800), first.InterestSubsidized)
	assertDecimal(t, decimal.NewFromInt(1200), first.PaymentsMade)
	assertDecimal(t, decimal.NewFromInt(3600), states[2].CumulativePayments)
}

func TestSimulateLoanBalance_NoSubsidyGrowsBalance(t *testing.T) {
	ref := domain.DefaultReferenceData()
	icr, _ := ref.Plan(domain.PlanICR)
	balance := decimal.NewFromInt(100000)

	states := SimulateLoanBalance(balance, dec(0.06), repeat(decimal.NewFromInt(1200), 2), icr)

	require.Len(t, states, 2)
	assert.True(t, states[0].EndingBalance.GreaterThan(balance))
	assert.True(t, states[1].EndingBalance.GreaterThan(states[0].EndingBalance))
	assertDecimal(t, decimal.Zero, states[0].InterestSubsidized)
}

func TestSimulateLoanBalance_StopsAtZero(t *testing.T) {
	ref := domain.DefaultReferenceData()
	paye, _ := ref.Plan(domain.PlanPAYE)

	states := SimulateLoanBalance(decimal.NewFromInt(1000), decimal.Zero, repeat(decimal.NewFromInt(1200), 3), paye)

	require.Len(t, states, 1, "no state may follow the first zero-balance year")
	assertDecimal(t, decimal.Zero, states[0].EndingBalance)
	assertDecimal(t, decimal.NewFromInt(1000), states[0].PaymentsMade)
}

func TestSimulateLoanBalance_PaysDownOverSeveralYears(t *testing.T) {
	ref := domain.DefaultReferenceData()
	ibr, _ := ref.Plan(domain.PlanIBRNew)
	balance := decimal.NewFromInt(50000)

	states := SimulateLoanBalance(balance, dec(0.05), repeat(decimal.NewFromInt(24000), 10), ibr)

	require.NotEmpty(t, states)
	assert.Less(t, len(states), 10)
	assertDecimal(t, balance, states[0].StartingBalance)
	for k := 0; k < len(states)-1; k++ {
		assert.True(t, states[k].EndingBalance.IsPositive(), "year %d", states[k].Year)
		assertDecimal(t, states[k].EndingBalance, states[k+1].StartingBalance)
	}
	assertDecimal(t, decimal.Zero, states[len(states)-1].EndingBalance)
}

func TestSimulateLoanBalance_ZeroBalance(t *testing.T) {
	states := SimulateLoanBalance(decimal.Zero, dec(0.05), repeat(decimal.NewFromInt(1200), 3), domain.IDRPlanParams{})

	assert.Empty(t, states)
}

func TestSimulateLoanBalance_FirstYearKeepsExactBalance(t *testing.T) {
	balance := dec(250000.555)

	states := SimulateLoanBalance(balance, dec(0.065), repeat(decimal.NewFromInt(12000), 3), domain.IDRPlanParams{InterestSubsidy: true})

	require.Len(t, states, 3)
	assertDecimal(t, balance, states[0].StartingBalance)
	for k := 1; k < len(states); k++ {
		assertDecimal(t, states[k-1].EndingBalance, states[k].StartingBalance)
	}
}
