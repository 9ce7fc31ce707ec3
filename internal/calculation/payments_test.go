package calculation

import (
	"testing"

	"github.com/rgehrsitz/medloans/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPovertyLine(t *testing.T) {
	g := domain.DefaultReferenceData().Poverty

	tests := []struct {
		familySize int
		expected   int64
	}{
		{0, 15060},
		{1, 15060},
		{2, 20440},
		{4, 31200},
		{6, 41960},
	}

	for _, tt := range tests {
		assertDecimal(t, decimal.NewFromInt(tt.expected), PovertyLine(g, tt.familySize))
	}
}

func TestCalculateIDRPayment_PAYESingle(t *testing.T) {
	ref := domain.DefaultReferenceData()
	plan, _ := ref.Plan(domain.PlanPAYE)

	// (65000 - 1.5*15060) * 10% / 12 = 353.4
	payment := CalculateIDRPayment(ref.Poverty, decimal.NewFromInt(65000), decimal.Zero, domain.FilingSingle, 1, plan)

	assertDecimal(t, decimal.NewFromInt(353), payment)
}

func TestCalculateIDRPayment_IncomeBelowProtectedAmount(t *testing.T) {
	ref := domain.DefaultReferenceData()
	plan, _ := ref.Plan(domain.PlanSAVE)

	payment := CalculateIDRPayment(ref.Poverty, decimal.NewFromInt(30000), decimal.Zero, domain.FilingSingle, 3, plan)

	assertDecimal(t, decimal.Zero, payment)
}

func TestCalculateIDRPayment_NonIncreasingInFamilySize(t *testing.T) {
	ref := domain.DefaultReferenceData()
	income := decimal.NewFromInt(150000)

	for name, plan := range ref.Plans {
		prev := CalculateIDRPayment(ref.Poverty, income, decimal.Zero, domain.FilingSingle, 1, plan)
		for size := 2; size <= 10; size++ {
			current := CalculateIDRPayment(ref.Poverty, income, decimal.Zero, domain.FilingSingle, size, plan)
			assert.Truef(t, current.LessThanOrEqual(prev), "%s: family %d payment %s above %s", name, size, current, prev)
			prev = current
		}
	}
}

func TestCalculateIDRPayment_SpouseIncome(t *testing.T) {
	ref := domain.DefaultReferenceData()
	plan, _ := ref.Plan(domain.PlanIBRNew)
	agi := decimal.NewFromInt(70000)

	mfsLow := CalculateIDRPayment(ref.Poverty, agi, decimal.NewFromInt(10000), domain.FilingMFS, 2, plan)
	mfsHigh := CalculateIDRPayment(ref.Poverty, agi, decimal.NewFromInt(90000), domain.FilingMFS, 2, plan)
	assertDecimal(t, mfsLow, mfsHigh)

	mfjLow := CalculateIDRPayment(ref.Poverty, agi, decimal.NewFromInt(10000), domain.FilingMFJ, 2, plan)
	mfjHigh := CalculateIDRPayment(ref.Poverty, agi, decimal.NewFromInt(90000), domain.FilingMFJ, 2, plan)
	assert.True(t, mfjHigh.GreaterThan(mfjLow), "joint filers should pay more as spouse income rises")
}

func TestCalculate10YearStandardPayment(t *testing.T) {
	assertDecimal(t, decimal.NewFromInt(1000), Calculate10YearStandardPayment(decimal.NewFromInt(120000), decimal.Zero))

	payment := Calculate10YearStandardPayment(decimal.NewFromInt(250000), dec(0.065))
	assert.True(t, payment.GreaterThan(decimal.NewFromInt(2800)), "got %s", payment)
	assert.True(t, payment.LessThan(decimal.NewFromInt(2900)), "got %s", payment)
}

func TestEffectiveIDRPayment(t *testing.T) {
	ref := domain.DefaultReferenceData()
	paye, _ := ref.Plan(domain.PlanPAYE)
	save, _ := ref.Plan(domain.PlanSAVE)
	calculated := decimal.NewFromInt(4000)
	standard := decimal.NewFromInt(2839)

	assertDecimal(t, standard, EffectiveIDRPayment(calculated, standard, paye))
	assertDecimal(t, calculated, EffectiveIDRPayment(calculated, standard, save))
	assertDecimal(t, decimal.NewFromInt(500), EffectiveIDRPayment(decimal.NewFromInt(500), standard, paye))
}

func TestCalculateAmortizedPayment(t *testing.T) {
	tests := []struct {
		name      string
		principal decimal.Decimal
		rate      decimal.Decimal
		months    int
		expected  decimal.Decimal
	}{
		{"zero rate divides evenly", decimal.NewFromInt(12000), decimal.Zero, 12, decimal.NewFromInt(1000)},
		{"zero principal", decimal.Zero, dec(0.05), 120, decimal.Zero},
		{"zero term", decimal.NewFromInt(1000), dec(0.05), 0, decimal.Zero},
		{"100k at 6% over 10 years", decimal.NewFromInt(100000), dec(0.06), 120, dec(1110.21)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.expected, CalculateAmortizedPayment(tt.principal, tt.rate, tt.months))
		})
	}
}

func TestRemainingBalance(t *testing.T) {
	principal := decimal.NewFromInt(100000)
	payment := CalculateAmortizedPayment(principal, dec(0.06), 120)

	assertDecimal(t, principal, remainingBalance(principal, dec(0.06), payment, 0))
	assert.True(t, remainingBalance(principal, dec(0.06), payment, 120).LessThan(decimal.NewFromInt(1)))
	assertDecimal(t, decimal.NewFromInt(40000), remainingBalance(principal, decimal.Zero, decimal.NewFromInt(1000), 60))
}
