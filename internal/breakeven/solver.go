package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/medloans/internal/calculation"
	"github.com/rgehrsitz/medloans/internal/compare"
	"github.com/rgehrsitz/medloans/internal/domain"
	"github.com/shopspring/decimal"
)

var decimalTwo = decimal.NewFromInt(2)

// gapFunc returns challenger NPV minus incumbent NPV at x
type gapFunc func(x decimal.Decimal) decimal.Decimal

// Solver finds the parameter value at which a challenger strategy ties the
// best federal strategy
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve runs a break-even search. A request whose challenger wins (or loses)
// across the whole interval is not an error: the result reports Found=false
// and the gaps at both bounds.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}

	incumbent := s.bestFederal(req.Inputs)
	result := &Result{
		Target:       req.Target,
		Incumbent:    incumbent.StrategyName,
		IncumbentNPV: incumbent.NPV,
	}

	var gap gapFunc
	var places int32
	switch req.Target {
	case TargetRefinanceRate:
		term := req.RefinanceTermYears
		if term == 0 {
			term = s.Options.DefaultTermYears
		}
		if req.Tolerance.IsZero() {
			req.Tolerance = s.Options.RateTolerance
		}
		result.Bounds = s.rateBounds(req)
		result.Challenger = fmt.Sprintf("Refinance / %dyr", term)
		places = 4
		gap = func(rate decimal.Decimal) decimal.Decimal {
			refi := s.CalcEngine.CalculateRefinance(req.Inputs, domain.RefinanceOffer{Rate: rate, TermYears: term})
			return refi.NPV.Sub(incumbent.NPV)
		}

	case TargetLivingExpenses:
		years := req.AggressiveYears
		if years == 0 {
			years = s.Options.DefaultAggressiveYrs
		}
		if req.Tolerance.IsZero() {
			req.Tolerance = s.Options.DollarTolerance
		}
		compareEngine := compare.NewCompareEngine(s.CalcEngine)
		result.Bounds = s.expenseBounds(req)
		result.Challenger = fmt.Sprintf("Aggressive payoff / %dyr", years)
		places = 0
		gap = func(expenses decimal.Decimal) decimal.Decimal {
			payoff := calculation.CalculateAggressivePayoff(compareEngine.PayoffParams(req.Inputs, expenses, years))
			return payoff.NPV.Sub(incumbent.NPV)
		}
	}

	s.CalcEngine.Logger.Debugf("break-even %s: %s against %s (NPV %s) over [%s, %s]",
		req.Target, result.Challenger, result.Incumbent, incumbent.NPV, result.Bounds.Min, result.Bounds.Max)

	if err := s.bisect(ctx, req, result, gap); err != nil {
		return nil, err
	}
	if result.Found {
		result.Value = result.Value.Round(places)
	}
	return result, nil
}

// bisect narrows the bracket until it is within tolerance. The gap must change
// sign across the bounds for a break-even to exist.
func (s *Solver) bisect(ctx context.Context, req Request, result *Result, gap gapFunc) error {
	lo, hi := result.Bounds.Min, result.Bounds.Max
	gLo, gHi := gap(lo), gap(hi)
	result.GapAtMin = gLo
	result.GapAtMax = gHi
	result.ChallengerWinsBelow = gLo.IsNegative()

	switch {
	case gLo.IsZero():
		result.Found, result.Value = true, lo
		result.ConvergenceInfo = "Tie at lower bound"
		return nil
	case gHi.IsZero():
		result.Found, result.Value = true, hi
		result.ConvergenceInfo = "Tie at upper bound"
		return nil
	case gLo.Sign() == gHi.Sign():
		winner := result.Incumbent
		if gLo.IsNegative() {
			winner = result.Challenger
		}
		result.ConvergenceInfo = fmt.Sprintf("No break-even in range: %s is cheaper throughout", winner)
		return nil
	}

	for result.Iterations < req.MaxIterations {
		select {
		case <-ctx.Done():
			return &BreakEvenError{
				Operation: "solve",
				Message:   "search cancelled",
				Cause:     ctx.Err(),
			}
		default:
		}
		result.Iterations++

		mid := lo.Add(hi).Div(decimalTwo)
		gMid := gap(mid)

		if gMid.IsZero() || hi.Sub(lo).LessThan(req.Tolerance) {
			result.Found, result.Value = true, mid
			result.ConvergenceInfo = "Binary search converged"
			return nil
		}

		if gMid.Sign() == gLo.Sign() {
			lo, gLo = mid, gMid
		} else {
			hi = mid
		}
	}

	result.Found = true
	result.Value = lo.Add(hi).Div(decimalTwo)
	result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	return nil
}

// bestFederal is the cheapest federal strategy the borrower qualifies for
func (s *Solver) bestFederal(inputs domain.UserInputs) domain.StrategyResult {
	federal := compare.NewCompareEngine(s.CalcEngine).FederalStrategies(inputs)
	best := federal[0]
	for _, r := range federal[1:] {
		if r.NPV.LessThan(best.NPV) {
			best = r
		}
	}
	return best
}

func (s *Solver) rateBounds(req Request) Bounds {
	if req.Bounds != nil {
		return *req.Bounds
	}
	return Bounds{Min: decimal.NewFromFloat(0.01), Max: decimal.NewFromFloat(0.15)}
}

// expenseBounds defaults to zero up to the attending take-home pay, where the
// aggressive phase has no surplus left to pay with
func (s *Solver) expenseBounds(req Request) Bounds {
	if req.Bounds != nil {
		return *req.Bounds
	}
	salary := s.CalcEngine.AttendingSalary(req.Inputs.Career)
	takeHome := salary.Mul(decimal.NewFromInt(1).Sub(calculation.AggressivePayoffEffectiveTaxRate)).Round(0)
	return Bounds{Min: decimal.Zero, Max: takeHome}
}
