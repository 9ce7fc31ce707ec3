package calculation

import (
	"fmt"

	"github.com/rgehrsitz/medloans/internal/domain"
	"github.com/shopspring/decimal"
)

// PSLFRequiredPayments is the number of qualifying payments PSLF requires
const PSLFRequiredPayments = 120

// PSLFConfidenceThreshold is the stated confidence below which PSLF results carry a hedge
var PSLFConfidenceThreshold = decimal.NewFromFloat(0.8)

// PSLFYearsRemaining returns the whole years of payments left before forgiveness
func PSLFYearsRemaining(credited int) int {
	if credited < 0 {
		credited = 0
	}
	left := PSLFRequiredPayments - credited
	if left <= 0 {
		return 0
	}
	return (left + 11) / 12
}

// IDRYearsRemaining returns the years left on a plan's forgiveness clock
func IDRYearsRemaining(plan domain.IDRPlanParams, credited int) int {
	if credited < 0 {
		credited = 0
	}
	years := plan.ForgivenessYears - credited/12
	if years < 0 {
		return 0
	}
	return years
}

// idrSchedule holds the per-year payments an IDR-style strategy makes
type idrSchedule struct {
	monthly []decimal.Decimal
	annual  []decimal.Decimal
}

// buildIDRSchedule sizes each year's payment to that year's projected income
func (ce *CalculationEngine) buildIDRSchedule(inputs domain.UserInputs, projection domain.IncomeProjection, plan domain.IDRPlanParams, years int) idrSchedule {
	standard := Calculate10YearStandardPayment(inputs.Loans.TotalBalance, inputs.Loans.WeightedInterestRate)

	sched := idrSchedule{
		monthly: make([]decimal.Decimal, years),
		annual:  make([]decimal.Decimal, years),
	}
	for year := 0; year < years; year++ {
		calculated := ce.CalculateIDRPayment(
			projection.IncomeAt(year),
			inputs.Personal.SpouseAGI,
			inputs.Personal.FilingStatus,
			inputs.Personal.FamilySize,
			plan,
		)
		monthly := EffectiveIDRPayment(calculated, standard, plan)
		sched.monthly[year] = monthly
		sched.annual[year] = monthly.Mul(decimalTwelve)
	}
	return sched
}

// paymentRange returns the min and max monthly payment over the years actually simulated
func paymentRange(monthly []decimal.Decimal, years int) domain.PaymentRange {
	if years > len(monthly) {
		years = len(monthly)
	}
	if years == 0 {
		return domain.PaymentRange{Min: decimalZero, Max: decimalZero}
	}
	r := domain.PaymentRange{Min: monthly[0], Max: monthly[0]}
	for _, m := range monthly[1:years] {
		r.Min = decimal.Min(r.Min, m)
		r.Max = decimal.Max(r.Max, m)
	}
	return r
}

// summarize fills the totals shared by every simulated strategy
func summarize(result *domain.StrategyResult, states []domain.YearlyLoanState) {
	result.YearlyBreakdown = states
	result.TotalYears = len(states)
	result.TotalPayments = decimalZero
	result.ForgivenessAmount = decimalZero
	if len(states) == 0 {
		return
	}
	last := states[len(states)-1]
	result.TotalPayments = last.CumulativePayments
	result.ForgivenessAmount = last.EndingBalance
}

// CalculatePSLF evaluates Public Service Loan Forgiveness. Payments always
// follow the PAYE formula and the forgiven balance is not taxed.
func (ce *CalculationEngine) CalculatePSLF(inputs domain.UserInputs, projection domain.IncomeProjection) domain.StrategyResult {
	plan := ce.plan(domain.PlanPAYE)
	credited := inputs.Loans.PSLFQualifyingPayments
	years := PSLFYearsRemaining(credited)

	sched := ce.buildIDRSchedule(inputs, projection, plan, years)
	states := SimulateLoanBalance(inputs.Loans.TotalBalance, inputs.Loans.WeightedInterestRate, sched.annual, plan)

	result := domain.StrategyResult{
		StrategyName: "PSLF",
		Kind:         domain.KindPSLF,
		Plan:         plan.Name,
		Description: fmt.Sprintf("Public Service Loan Forgiveness: %d more qualifying payments on %s, then tax-free forgiveness",
			max(0, PSLFRequiredPayments-credited), plan.Name),
		TaxOnForgiveness: decimalZero,
	}
	summarize(&result, states)
	if years == 0 {
		result.ForgivenessAmount = inputs.Loans.TotalBalance
	}
	result.NPV = CalculateNPV(annualPaymentsFrom(states), inputs.Preferences.DiscountRate, decimalZero, 0)
	result.MonthlyPaymentRange = paymentRange(sched.monthly, len(states))

	if years > 0 {
		result.Risks = []string{
			fmt.Sprintf("Leaving qualifying public-service employment in the next %d years forfeits forgiveness", years),
			"Program rules can change; certify employment annually to lock in qualifying payments",
		}
	} else {
		result.Risks = []string{
			"All 120 qualifying payments are credited; apply for forgiveness before leaving qualifying employment",
		}
	}
	if !inputs.Personal.PSLFEligibleEmployer {
		result.Risks = append(result.Risks, "Your current employer is not marked as PSLF-qualifying")
	}
	if inputs.Preferences.PSLFConfidence.LessThan(PSLFConfidenceThreshold) {
		result.Risks = append(result.Risks, fmt.Sprintf(
			"You put your odds of completing PSLF at %s%%; keep an IDR or refinance fallback in view",
			inputs.Preferences.PSLFConfidence.Mul(decimal.NewFromInt(100)).StringFixed(0)))
	}
	result.Benefits = []string{
		"Remaining balance is forgiven tax-free after 120 qualifying payments",
		"Low income-based payments during training count toward forgiveness",
		"Monthly payment never exceeds the 10-year standard amount",
	}

	return result
}

// CalculateIDRStrategy evaluates a generic IDR plan through to forgiveness,
// including the one-time tax on the forgiven balance.
func (ce *CalculationEngine) CalculateIDRStrategy(inputs domain.UserInputs, projection domain.IncomeProjection, name domain.PlanName) domain.StrategyResult {
	plan := ce.plan(name)
	years := IDRYearsRemaining(plan, inputs.Loans.IDRQualifyingPayments)

	sched := ce.buildIDRSchedule(inputs, projection, plan, years)
	states := SimulateLoanBalance(inputs.Loans.TotalBalance, inputs.Loans.WeightedInterestRate, sched.annual, plan)

	result := domain.StrategyResult{
		StrategyName: planDisplayName(plan.Name),
		Kind:         domain.KindIDR,
		Plan:         plan.Name,
		Description: fmt.Sprintf("%s of discretionary income above %s of the poverty line, forgiveness after %d years",
			percent(plan.DiscretionaryIncomePercent), percent(plan.PovertyLineMultiplier), plan.ForgivenessYears),
	}
	summarize(&result, states)
	if years == 0 {
		result.ForgivenessAmount = inputs.Loans.TotalBalance
	}

	result.TaxOnForgiveness = decimalZero
	if result.ForgivenessAmount.IsPositive() {
		income := inputs.Personal.HouseholdIncome(projection.IncomeAt(max(0, years-1)))
		result.TaxOnForgiveness = ce.EstimateTaxOnForgiveness(result.ForgivenessAmount, income, inputs.Personal.FilingStatus, inputs.Personal.State)
	}
	result.NPV = CalculateNPV(annualPaymentsFrom(states), inputs.Preferences.DiscountRate, result.TaxOnForgiveness, years)
	result.MonthlyPaymentRange = paymentRange(sched.monthly, len(states))

	result.Risks = []string{
		"Income must be recertified every year; a missed deadline can raise payments and capitalize interest",
	}
	switch {
	case years == 0:
		result.Risks = append(result.Risks, fmt.Sprintf(
			"Forgiven balance of $%s is taxable income in the year forgiveness is granted", result.ForgivenessAmount.StringFixed(0)))
	case result.ForgivenessAmount.IsPositive():
		result.Risks = append(result.Risks, fmt.Sprintf(
			"Forgiven balance of $%s is taxable income in year %d", result.ForgivenessAmount.StringFixed(0), years))
	}
	result.Risks = append(result.Risks, planRisks(plan.Name)...)

	result.Benefits = []string{
		"Payments scale with income, keeping training-year payments low",
		fmt.Sprintf("Any remaining balance is forgiven after %d years of payments", plan.ForgivenessYears),
	}
	if plan.InterestSubsidy {
		result.Benefits = append(result.Benefits, "Unpaid interest is subsidized, limiting balance growth")
	}
	if plan.CapAtStandard {
		result.Benefits = append(result.Benefits, "Payments are capped at the 10-year standard amount")
	}

	return result
}

// CalculateRefinance evaluates a private fixed-rate refinance. The schedule is
// built from the closed-form amortization; there is no forgiveness or tax event.
func (ce *CalculationEngine) CalculateRefinance(inputs domain.UserInputs, offer domain.RefinanceOffer) domain.StrategyResult {
	principal := inputs.Loans.TotalBalance
	term := offer.TermYears
	if term <= 0 {
		term = 10
	}
	monthly := CalculateAmortizedPayment(principal, offer.Rate, term*12)
	annual := monthly.Mul(decimalTwelve)

	states := make([]domain.YearlyLoanState, 0, term)
	annualPayments := make([]decimal.Decimal, 0, term)
	starting := principal
	cumulative := decimalZero
	for year := 1; year <= term && starting.IsPositive(); year++ {
		ending := remainingBalance(principal, offer.Rate, monthly, year*12)
		if year == term {
			ending = decimalZero
		}
		interest := decimal.Max(decimalZero, annual.Sub(starting.Sub(ending)))
		cumulative = cumulative.Add(annual)
		annualPayments = append(annualPayments, annual)
		states = append(states, domain.YearlyLoanState{
			Year:               year,
			StartingBalance:    openingBalance(year, starting),
			InterestAccrued:    interest.Round(2),
			PaymentsMade:       annual.Round(2),
			EndingBalance:      ending.Round(2),
			InterestSubsidized: decimalZero,
			CumulativePayments: cumulative.Round(2),
		})
		starting = ending
	}

	result := domain.StrategyResult{
		StrategyName: fmt.Sprintf("Refinance %s / %dyr", percentFixed(offer.Rate, 1), term),
		Kind:         domain.KindRefinance,
		Description:  fmt.Sprintf("Private refinance at a fixed %s over %d years", percentFixed(offer.Rate, 2), term),
	}
	summarize(&result, states)
	result.ForgivenessAmount = decimalZero
	result.TaxOnForgiveness = decimalZero
	result.NPV = CalculateNPV(annualPayments, inputs.Preferences.DiscountRate, decimalZero, 0)
	result.MonthlyPaymentRange = domain.PaymentRange{Min: monthly, Max: monthly}

	result.Risks = []string{
		"Refinancing to a private lender permanently gives up IDR plans, forgiveness and federal forbearance",
		"Offered rates depend on credit and income; the rate shown is illustrative",
	}
	if inputs.Personal.PSLFEligibleEmployer {
		result.Risks = append(result.Risks, "You work for a PSLF-qualifying employer; refinancing forfeits tax-free forgiveness")
	}
	result.Benefits = []string{
		fmt.Sprintf("Debt-free in %d years with a fixed $%s monthly payment", term, monthly.StringFixed(0)),
		"No forgiveness tax or recertification paperwork",
	}
	if offer.Rate.LessThan(inputs.Loans.WeightedInterestRate) {
		result.Benefits = append(result.Benefits, fmt.Sprintf("Rate is %s below your current weighted rate",
			percentFixed(inputs.Loans.WeightedInterestRate.Sub(offer.Rate), 2)))
	}

	return result
}

func planDisplayName(name domain.PlanName) string {
	switch name {
	case domain.PlanIBRNew:
		return "IBR (New)"
	case domain.PlanIBROld:
		return "IBR (Old)"
	default:
		return string(name)
	}
}

func planRisks(name domain.PlanName) []string {
	switch name {
	case domain.PlanSAVE:
		return []string{"SAVE is the subject of ongoing litigation; it may be blocked, changed or eliminated before forgiveness"}
	case domain.PlanPAYE:
		return []string{"PAYE eligibility depends on when loans were first disbursed; confirm you qualify"}
	case domain.PlanIBRNew:
		return []string{"The 10% IBR formula only applies to borrowers with no federal loans before July 1, 2014"}
	case domain.PlanIBROld:
		return []string{"15% of discretionary income and a 25-year clock make this one of the costlier IDR options"}
	case domain.PlanICR:
		return []string{"No payment cap and no interest subsidy; the balance can grow substantially"}
	default:
		return nil
	}
}

// percent renders a rate as a whole-number percentage, e.g. 0.1 -> "10%"
func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
}

// percentFixed renders a rate with fixed places, e.g. 0.055 -> "5.5%"
func percentFixed(rate decimal.Decimal, places int32) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(places) + "%"
}
