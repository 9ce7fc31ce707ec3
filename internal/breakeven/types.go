package breakeven

import (
	"github.com/rgehrsitz/medloans/internal/domain"
	"github.com/shopspring/decimal"
)

// Target names the parameter the solver varies
type Target string

const (
	// TargetRefinanceRate finds the refinance rate at which refinancing costs
	// the same as the best federal strategy
	TargetRefinanceRate Target = "refinance_rate"
	// TargetLivingExpenses finds the living-expense level at which an
	// aggressive payoff costs the same as the best federal strategy
	TargetLivingExpenses Target = "living_expenses"
)

// Bounds is the closed search interval for the varied parameter
type Bounds struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Request defines one break-even search
type Request struct {
	Inputs domain.UserInputs `json:"-"`
	Target Target            `json:"target"`
	// Bounds defaults per target when nil
	Bounds *Bounds `json:"bounds,omitempty"`
	// RefinanceTermYears applies to TargetRefinanceRate; 0 means 10
	RefinanceTermYears int `json:"refinanceTermYears,omitempty"`
	// AggressiveYears applies to TargetLivingExpenses; 0 means 5
	AggressiveYears int             `json:"aggressiveYears,omitempty"`
	MaxIterations   int             `json:"-"`
	Tolerance       decimal.Decimal `json:"-"`
}

// Result is the outcome of a break-even search
type Result struct {
	Target          Target          `json:"target"`
	Found           bool            `json:"found"`
	Value           decimal.Decimal `json:"value"`
	Bounds          Bounds          `json:"bounds"`
	Iterations      int             `json:"iterations"`
	ConvergenceInfo string          `json:"convergenceInfo"`
	// Challenger is the strategy whose cost moves with the parameter
	Challenger string `json:"challenger"`
	// Incumbent is the federal strategy it is measured against
	Incumbent string `json:"incumbent"`
	// IncumbentNPV is the present cost the challenger has to match
	IncumbentNPV decimal.Decimal `json:"incumbentNpv"`
	// ChallengerWinsBelow reports which side of Value favors the challenger
	ChallengerWinsBelow bool `json:"challengerWinsBelow"`
	// GapAtMin and GapAtMax are challenger NPV minus incumbent NPV at the bounds
	GapAtMin decimal.Decimal `json:"gapAtMin"`
	GapAtMax decimal.Decimal `json:"gapAtMax"`
}

// SolverOptions configures the bisection search
type SolverOptions struct {
	MaxIterations        int
	RateTolerance        decimal.Decimal
	DollarTolerance      decimal.Decimal
	DefaultTermYears     int
	DefaultAggressiveYrs int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations:        60,
		RateTolerance:        decimal.NewFromFloat(0.0001),
		DollarTolerance:      decimal.NewFromInt(1000),
		DefaultTermYears:     10,
		DefaultAggressiveYrs: 5,
	}
}

// Validate checks a request before any evaluation runs
func (r *Request) Validate() error {
	switch r.Target {
	case TargetRefinanceRate, TargetLivingExpenses:
	default:
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "unsupported target: " + string(r.Target),
		}
	}

	if !r.Inputs.Loans.TotalBalance.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "loan balance must be positive",
		}
	}

	if r.Bounds != nil {
		if r.Bounds.Min.IsNegative() {
			return &BreakEvenError{
				Operation: "validate_request",
				Message:   "lower bound cannot be negative",
			}
		}
		if !r.Bounds.Min.LessThan(r.Bounds.Max) {
			return &BreakEvenError{
				Operation: "validate_request",
				Message:   "lower bound must be below upper bound",
			}
		}
	}

	if r.RefinanceTermYears < 0 || r.AggressiveYears < 0 {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "year counts cannot be negative",
		}
	}

	return nil
}

// BreakEvenError represents errors from the break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
