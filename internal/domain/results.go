package domain

import (
	"github.com/shopspring/decimal"
)

// StrategyKind distinguishes the strategy families the comparator evaluates
type StrategyKind string

const (
	KindPSLF      StrategyKind = "pslf"
	KindIDR       StrategyKind = "idr"
	KindRefinance StrategyKind = "refinance"
)

// Confidence grades a recommendation
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// PayoffPhase tags a year of the aggressive payoff model
type PayoffPhase string

const (
	PhaseTraining   PayoffPhase = "training"
	PhaseAggressive PayoffPhase = "aggressive"
	PhaseStandard   PayoffPhase = "standard"
)

// IncomeYear is one entry of an income projection
type IncomeYear struct {
	Year   int             `json:"year"`
	Income decimal.Decimal `json:"income"`
	Stage  TrainingStage   `json:"stage"`
}

// IncomeProjection is the year-by-year income sequence shared by every strategy
type IncomeProjection []IncomeYear

// IncomeAt returns the income for a year, clamped to the last known year
func (p IncomeProjection) IncomeAt(year int) decimal.Decimal {
	if len(p) == 0 {
		return decimal.Zero
	}
	if year < 0 {
		year = 0
	}
	if year >= len(p) {
		year = len(p) - 1
	}
	return p[year].Income
}

// YearlyLoanState is a one-year amortization snapshot
type YearlyLoanState struct {
	Year               int             `json:"year"`
	StartingBalance    decimal.Decimal `json:"startingBalance"`
	InterestAccrued    decimal.Decimal `json:"interestAccrued"`
	PaymentsMade       decimal.Decimal `json:"paymentsMade"`
	EndingBalance      decimal.Decimal `json:"endingBalance"`
	InterestSubsidized decimal.Decimal `json:"interestSubsidized"`
	CumulativePayments decimal.Decimal `json:"cumulativePayments"`
}

// PaymentRange is the smallest and largest monthly payment over a strategy's life
type PaymentRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// StrategyResult is the outcome of evaluating one repayment strategy
type StrategyResult struct {
	StrategyName        string            `json:"strategyName"`
	Kind                StrategyKind      `json:"kind"`
	Plan                PlanName          `json:"plan,omitempty"`
	Description         string            `json:"description"`
	TotalPayments       decimal.Decimal   `json:"totalPayments"`
	ForgivenessAmount   decimal.Decimal   `json:"forgivenessAmount"`
	TaxOnForgiveness    decimal.Decimal   `json:"taxOnForgiveness"`
	NPV                 decimal.Decimal   `json:"npv"`
	TotalYears          int               `json:"totalYears"`
	MonthlyPaymentRange PaymentRange      `json:"monthlyPaymentRange"`
	YearlyBreakdown     []YearlyLoanState `json:"yearlyBreakdown"`
	Risks               []string          `json:"risks"`
	Benefits            []string          `json:"benefits"`
}

// PayoffYear is one year of the aggressive payoff model
type PayoffYear struct {
	Year          int             `json:"year"`
	Phase         PayoffPhase     `json:"phase"`
	Payments      decimal.Decimal `json:"payments"`
	Principal     decimal.Decimal `json:"principal"`
	Interest      decimal.Decimal `json:"interest"`
	EndingBalance decimal.Decimal `json:"endingBalance"`
}

// AggressivePayoffResult is the outcome of the three-phase payoff model
type AggressivePayoffResult struct {
	TotalPayments            decimal.Decimal `json:"totalPayments"`
	TotalInterest            decimal.Decimal `json:"totalInterest"`
	YearsToPayoff            int             `json:"yearsToPayoff"`
	MonthsToPayoff           int             `json:"monthsToPayoff"`
	NPV                      decimal.Decimal `json:"npv"`
	YearlyBreakdown          []PayoffYear    `json:"yearlyBreakdown"`
	TrainingMonthlyPayment   decimal.Decimal `json:"trainingMonthlyPayment"`
	AggressiveMonthlyPayment decimal.Decimal `json:"aggressiveMonthlyPayment"`
	StandardMonthlyPayment   decimal.Decimal `json:"standardMonthlyPayment"`
}

// KeyMetrics summarizes the headline numbers behind a recommendation
type KeyMetrics struct {
	DebtToIncomeRatio  decimal.Decimal  `json:"debtToIncomeRatio"`
	TotalSavingsVsRefi decimal.Decimal  `json:"totalSavingsVsRefi"`
	ForgivenessBenefit decimal.Decimal  `json:"forgivenessBenefit"`
	PSLFSalaryPremium  *decimal.Decimal `json:"pslfSalaryPremium,omitempty"`
}

// Recommendation is derived from a ranked result list
type Recommendation struct {
	PrimaryStrategy     StrategyResult  `json:"primaryStrategy"`
	AlternativeStrategy *StrategyResult `json:"alternativeStrategy,omitempty"`
	Confidence          Confidence      `json:"confidence"`
	Reasoning           []string        `json:"reasoning"`
	KeyMetrics          KeyMetrics      `json:"keyMetrics"`
}
