package compare

import (
	"github.com/rgehrsitz/medloans/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation thresholds
var (
	// LowDebtToIncome and below favors paying the loans off quickly
	LowDebtToIncome = decimal.NewFromFloat(0.5)
	// HighDebtToIncome and above favors forgiveness
	HighDebtToIncome = decimal.NewFromFloat(1.5)
	// CloseCallGap is the NPV gap under which the top two strategies are a toss-up
	CloseCallGap = decimal.NewFromInt(10000)
	// AlternativeGap is the NPV gap under which the runner-up is reported as an alternative
	AlternativeGap = decimal.NewFromInt(25000)
	// TaxBombThreshold is the forgiveness tax above which a caveat is raised
	TaxBombThreshold = decimal.NewFromInt(50000)
	// HighIncomeSalary is the attending salary above which PSLF gets a sanity check
	HighIncomeSalary = decimal.NewFromInt(400000)
)

// ComparisonHorizonYears is the length of the shared income projection
const ComparisonHorizonYears = 30

// ComparisonSet bundles everything one comparison run produces
type ComparisonSet struct {
	ConfigPath     string                         `json:"configPath,omitempty"`
	Inputs         domain.UserInputs              `json:"inputs"`
	Results        []domain.StrategyResult        `json:"results"`
	Recommendation domain.Recommendation          `json:"recommendation"`
	Payoff         *domain.AggressivePayoffResult `json:"aggressivePayoff,omitempty"`
}

// CompareOptions configures a comparison run
type CompareOptions struct {
	ConfigPath      string
	IncludePayoff   bool
	LivingExpenses  decimal.Decimal
	AggressiveYears int
}

// QuickAnalysisResult is the output of the quick-start wrapper
type QuickAnalysisResult struct {
	Inputs         domain.UserInputs       `json:"inputs"`
	Results        []domain.StrategyResult `json:"results"`
	Recommendation domain.Recommendation   `json:"recommendation"`
}

// Quick analysis defaults
var (
	QuickInterestRate   = decimal.NewFromFloat(0.065)
	QuickDiscountRate   = decimal.NewFromFloat(0.05)
	QuickPSLFConfidence = decimal.NewFromFloat(0.85)
)

// QuickState is the state assumed by the quick analysis; its high rate keeps the tax estimate conservative
const QuickState = "CA"

// Recommended returns the primary strategy's position in Results, or -1
func (cs *ComparisonSet) Recommended() int {
	for i, r := range cs.Results {
		if r.StrategyName == cs.Recommendation.PrimaryStrategy.StrategyName {
			return i
		}
	}
	return -1
}

// ComparisonSet wraps a quick analysis so the comparison formatters can render it
func (q QuickAnalysisResult) ComparisonSet() *ComparisonSet {
	return &ComparisonSet{
		Inputs:         q.Inputs,
		Results:        q.Results,
		Recommendation: q.Recommendation,
	}
}
