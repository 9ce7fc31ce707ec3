package compare

import (
	"context"
	"fmt"
	"sort"

	"github.com/rgehrsitz/medloans/internal/calculation"
	"github.com/rgehrsitz/medloans/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareEngine runs every applicable strategy and recommends one
type CompareEngine struct {
	CalcEngine *calculation.CalculationEngine
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{CalcEngine: calcEngine}
}

// CompareAllStrategies evaluates the candidate strategies against one shared
// income projection and returns them sorted ascending by NPV. Ties keep the
// evaluation order: SAVE, PSLF, PAYE, IBR (New), then the refinance offers.
func (ce *CompareEngine) CompareAllStrategies(inputs domain.UserInputs) []domain.StrategyResult {
	calc := ce.CalcEngine

	results := ce.FederalStrategies(inputs)
	for _, offer := range calc.Reference.RefinanceOffers {
		results = append(results, calc.CalculateRefinance(inputs, offer))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].NPV.LessThan(results[j].NPV)
	})

	calc.Logger.Debugf("compared %d strategies, best is %s", len(results), results[0].StrategyName)
	return results
}

// FederalStrategies evaluates the federal programs the borrower qualifies for,
// in evaluation order and unsorted
func (ce *CompareEngine) FederalStrategies(inputs domain.UserInputs) []domain.StrategyResult {
	calc := ce.CalcEngine
	projection := calc.ProjectIncome(inputs.Career, ComparisonHorizonYears, calc.IncomeGrowthRate)

	results := make([]domain.StrategyResult, 0, 4+len(calc.Reference.RefinanceOffers))
	if inputs.Preferences.SavePlanAvailable {
		results = append(results, calc.CalculateIDRStrategy(inputs, projection, domain.PlanSAVE))
	}
	if inputs.Personal.PSLFEligibleEmployer {
		results = append(results, calc.CalculatePSLF(inputs, projection))
	}
	return append(results,
		calc.CalculateIDRStrategy(inputs, projection, domain.PlanPAYE),
		calc.CalculateIDRStrategy(inputs, projection, domain.PlanIBRNew),
	)
}

// GenerateRecommendation picks the lowest-NPV strategy and explains the choice.
// Confidence starts high, drops to medium when PSLF wins but the borrower doubts
// finishing it, and drops to low on a close call regardless of the PSLF check.
func (ce *CompareEngine) GenerateRecommendation(inputs domain.UserInputs, results []domain.StrategyResult) domain.Recommendation {
	rec := domain.Recommendation{
		Confidence: domain.ConfidenceHigh,
		Reasoning:  []string{},
	}
	if len(results) == 0 {
		rec.Confidence = domain.ConfidenceLow
		rec.Reasoning = append(rec.Reasoning, "No strategies were evaluated")
		return rec
	}

	ranked := make([]domain.StrategyResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].NPV.LessThan(ranked[j].NPV)
	})

	best := ranked[0]
	rec.PrimaryStrategy = best

	attending := ce.CalcEngine.AttendingSalary(inputs.Career)
	dti := debtToIncome(inputs.Loans.TotalBalance, attending)

	savingsVsRefi := decimal.Zero
	if refi, ok := bestOfKind(ranked, domain.KindRefinance); ok {
		savingsVsRefi = refi.NPV.Sub(best.NPV)
	}

	rec.KeyMetrics = domain.KeyMetrics{
		DebtToIncomeRatio:  dti,
		TotalSavingsVsRefi: savingsVsRefi,
		ForgivenessBenefit: best.ForgivenessAmount,
		PSLFSalaryPremium:  ce.pslfSalaryPremium(inputs, ranked),
	}

	switch {
	case dti.LessThan(LowDebtToIncome):
		rec.Reasoning = append(rec.Reasoning, fmt.Sprintf(
			"Debt-to-income ratio of %s is low; aggressive payoff or refinancing usually costs least", dti.StringFixed(2)))
	case dti.GreaterThan(HighDebtToIncome):
		rec.Reasoning = append(rec.Reasoning, fmt.Sprintf(
			"Debt-to-income ratio of %s is high; forgiveness programs are likely to save the most", dti.StringFixed(2)))
	default:
		rec.Reasoning = append(rec.Reasoning, fmt.Sprintf(
			"Debt-to-income ratio of %s is moderate; the best path depends on career plans and PSLF eligibility", dti.StringFixed(2)))
	}

	rec.Reasoning = append(rec.Reasoning, fmt.Sprintf(
		"%s has the lowest present cost at $%s", best.StrategyName, best.NPV.StringFixed(0)))

	if best.Kind == domain.KindPSLF {
		if inputs.Preferences.PSLFConfidence.LessThan(calculation.PSLFConfidenceThreshold) {
			rec.Confidence = domain.ConfidenceMedium
			rec.Reasoning = append(rec.Reasoning,
				"You are not confident you will finish PSLF; compare the fallback strategies before committing")
		}
		if attending.GreaterThan(HighIncomeSalary) {
			rec.Reasoning = append(rec.Reasoning, fmt.Sprintf(
				"At an expected $%s attending salary, make sure staying in qualifying employment is realistic",
				attending.StringFixed(0)))
		}
		if savingsVsRefi.IsPositive() {
			rec.Reasoning = append(rec.Reasoning, fmt.Sprintf(
				"PSLF saves $%s in present value compared with refinancing", savingsVsRefi.StringFixed(0)))
		}
	}

	if best.TaxOnForgiveness.GreaterThan(TaxBombThreshold) {
		rec.Reasoning = append(rec.Reasoning, fmt.Sprintf(
			"Forgiveness triggers an estimated $%s tax bill in year %d; save for it in advance",
			best.TaxOnForgiveness.StringFixed(0), best.TotalYears))
	}

	if len(ranked) > 1 {
		second := ranked[1]
		gap := second.NPV.Sub(best.NPV)
		if gap.LessThan(CloseCallGap) {
			rec.Confidence = domain.ConfidenceLow
			rec.Reasoning = append(rec.Reasoning, fmt.Sprintf(
				"Close call: %s is only $%s behind in present value", second.StrategyName, gap.StringFixed(0)))
		}
		if gap.LessThan(AlternativeGap) {
			rec.AlternativeStrategy = &second
		}
	}

	return rec
}

// Compare runs a full comparison and bundles the results for output
func (ce *CompareEngine) Compare(ctx context.Context, inputs domain.UserInputs, options CompareOptions) (*ComparisonSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("comparison cancelled: %w", err)
	}

	results := ce.CompareAllStrategies(inputs)
	compSet := &ComparisonSet{
		ConfigPath:     options.ConfigPath,
		Inputs:         inputs,
		Results:        results,
		Recommendation: ce.GenerateRecommendation(inputs, results),
	}

	if options.IncludePayoff {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("comparison cancelled: %w", err)
		}
		payoff := calculation.CalculateAggressivePayoff(ce.PayoffParams(inputs, options.LivingExpenses, options.AggressiveYears))
		compSet.Payoff = &payoff
	}

	return compSet, nil
}

// PayoffParams derives aggressive payoff parameters from a full input record
func (ce *CompareEngine) PayoffParams(inputs domain.UserInputs, livingExpenses decimal.Decimal, aggressiveYears int) domain.AggressivePayoffParams {
	return domain.AggressivePayoffParams{
		TotalBalance:           inputs.Loans.TotalBalance,
		InterestRate:           inputs.Loans.WeightedInterestRate,
		TrainingYearsRemaining: inputs.Career.TrainingYearsRemaining,
		AttendingSalary:        ce.CalcEngine.AttendingSalary(inputs.Career),
		LivingExpenses:         livingExpenses,
		AggressiveYears:        aggressiveYears,
		DiscountRate:           inputs.Preferences.DiscountRate,
	}
}

// QuickInputs expands a quick-start record into a full input record
func (ce *CompareEngine) QuickInputs(quick domain.QuickStartInputs) domain.UserInputs {
	ref := ce.CalcEngine.Reference
	spec, _ := ref.SpecialtyFor(quick.Specialty)

	agi := spec.MedianSalary
	trainingYears := 0
	if quick.CurrentStage != domain.StageAttending {
		idx := ref.StageIndex(quick.CurrentStage)
		if idx < 0 {
			idx = 0
		}
		if idx < len(ref.TrainingStages) {
			agi = ref.TrainingStages[idx].Salary
		}
		trainingYears = max(1, spec.TrainingYears-idx)
	}

	personal := domain.PersonalInfo{
		AGI:                  agi,
		SpouseAGI:            decimal.Zero,
		FilingStatus:         domain.FilingSingle,
		FamilySize:           1,
		State:                QuickState,
		PSLFEligibleEmployer: quick.PSLFEligible,
	}
	if quick.Married {
		personal.FilingStatus = domain.FilingMFJ
		personal.FamilySize = 2
		if quick.SpouseIncome != nil {
			personal.SpouseAGI = *quick.SpouseIncome
		}
	}

	return domain.UserInputs{
		Loans: domain.LoanInfo{
			TotalBalance:         quick.TotalDebt,
			WeightedInterestRate: QuickInterestRate,
		},
		Personal: personal,
		Career: domain.CareerInfo{
			Specialty:              quick.Specialty,
			CurrentStage:           quick.CurrentStage,
			TrainingYearsRemaining: trainingYears,
		},
		Preferences: domain.Preferences{
			DiscountRate:      QuickDiscountRate,
			PSLFConfidence:    QuickPSLFConfidence,
			SavePlanAvailable: false,
			RiskTolerance:     domain.RiskModerate,
		},
	}
}

// RunQuickAnalysis compares strategies from a minimal quick-start record
func (ce *CompareEngine) RunQuickAnalysis(quick domain.QuickStartInputs) (QuickAnalysisResult, error) {
	if !quick.TotalDebt.IsPositive() {
		return QuickAnalysisResult{}, fmt.Errorf("total debt must be positive, got %s", quick.TotalDebt.String())
	}

	inputs := ce.QuickInputs(quick)
	results := ce.CompareAllStrategies(inputs)
	return QuickAnalysisResult{
		Inputs:         inputs,
		Results:        results,
		Recommendation: ce.GenerateRecommendation(inputs, results),
	}, nil
}

// pslfSalaryPremium is the extra pre-tax annual salary a non-PSLF job would
// have to pay over the PSLF horizon to make up PSLF's NPV advantage. It is nil
// when PSLF was not evaluated or does not beat the best alternative.
func (ce *CompareEngine) pslfSalaryPremium(inputs domain.UserInputs, ranked []domain.StrategyResult) *decimal.Decimal {
	pslf, ok := bestOfKind(ranked, domain.KindPSLF)
	if !ok || pslf.TotalYears == 0 {
		return nil
	}

	var alternative *domain.StrategyResult
	for i := range ranked {
		if ranked[i].Kind != domain.KindPSLF {
			alternative = &ranked[i]
			break
		}
	}
	if alternative == nil {
		return nil
	}

	advantage := alternative.NPV.Sub(pslf.NPV)
	if !advantage.IsPositive() {
		return nil
	}

	afterTax := decimal.NewFromInt(1).Sub(calculation.AggressivePayoffEffectiveTaxRate)
	premium := advantage.Div(annuityFactor(inputs.Preferences.DiscountRate, pslf.TotalYears)).Div(afterTax).Round(0)
	return &premium
}

// annuityFactor is the present value of $1 paid at the end of each of n years
func annuityFactor(rate decimal.Decimal, n int) decimal.Decimal {
	if !rate.IsPositive() {
		return decimal.NewFromInt(int64(n))
	}
	one := decimal.NewFromInt(1)
	growth := one.Add(rate)
	factor := decimal.Zero
	discount := one
	for k := 0; k < n; k++ {
		discount = discount.Div(growth)
		factor = factor.Add(discount)
	}
	return factor
}

// debtToIncome is debt over salary rounded to two places
func debtToIncome(debt, salary decimal.Decimal) decimal.Decimal {
	if !salary.IsPositive() {
		return decimal.Zero
	}
	return debt.Div(salary).Round(2)
}

// bestOfKind returns the first result of a kind in an already-ranked list
func bestOfKind(ranked []domain.StrategyResult, kind domain.StrategyKind) (domain.StrategyResult, bool) {
	for _, r := range ranked {
		if r.Kind == kind {
			return r, true
		}
	}
	return domain.StrategyResult{}, false
}
