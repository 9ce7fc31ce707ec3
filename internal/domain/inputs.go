package domain

import (
	"github.com/shopspring/decimal"
)

// FilingStatus is the borrower's federal tax filing status
type FilingStatus string

const (
	FilingSingle FilingStatus = "single"
	FilingMFJ    FilingStatus = "mfj"
	FilingMFS    FilingStatus = "mfs"
)

// TrainingStage identifies where a physician is in their career
type TrainingStage string

const (
	StagePGY1      TrainingStage = "pgy1"
	StagePGY2      TrainingStage = "pgy2"
	StagePGY3      TrainingStage = "pgy3"
	StagePGY4      TrainingStage = "pgy4"
	StagePGY5      TrainingStage = "pgy5"
	StagePGY6      TrainingStage = "pgy6"
	StagePGY7      TrainingStage = "pgy7"
	StageFellow    TrainingStage = "fellow"
	StageAttending TrainingStage = "attending"
)

// RiskTolerance is informational and does not change strategy math
type RiskTolerance string

const (
	RiskConservative RiskTolerance = "conservative"
	RiskModerate     RiskTolerance = "moderate"
	RiskAggressive   RiskTolerance = "aggressive"
)

// UserInputs is the complete input record for a single comparison run
type UserInputs struct {
	Loans       LoanInfo     `yaml:"loans" json:"loans"`
	Personal    PersonalInfo `yaml:"personal" json:"personal"`
	Career      CareerInfo   `yaml:"career" json:"career"`
	Preferences Preferences  `yaml:"preferences" json:"preferences"`
}

// LoanInfo describes the borrower's federal loan portfolio as a single blended loan
type LoanInfo struct {
	TotalBalance           decimal.Decimal `yaml:"total_balance" json:"totalBalance"`
	WeightedInterestRate   decimal.Decimal `yaml:"weighted_interest_rate" json:"weightedInterestRate"`
	LoanTypes              []string        `yaml:"loan_types,omitempty" json:"loanTypes,omitempty"`
	PSLFQualifyingPayments int             `yaml:"pslf_qualifying_payments" json:"pslfQualifyingPayments" validate:"min=0,max=120"`
	IDRQualifyingPayments  int             `yaml:"idr_qualifying_payments" json:"idrQualifyingPayments" validate:"min=0,max=300"`
}

// PersonalInfo carries household and tax details
type PersonalInfo struct {
	AGI                  decimal.Decimal `yaml:"agi" json:"agi"`
	SpouseAGI            decimal.Decimal `yaml:"spouse_agi" json:"spouseAgi"`
	FilingStatus         FilingStatus    `yaml:"filing_status" json:"filingStatus" validate:"required,oneof=single mfj mfs"`
	FamilySize           int             `yaml:"family_size" json:"familySize" validate:"min=1"`
	State                string          `yaml:"state" json:"state" validate:"required,len=2,alpha"`
	PSLFEligibleEmployer bool            `yaml:"pslf_eligible_employer" json:"pslfEligibleEmployer"`
}

// CareerInfo describes the training path and expected attending income
type CareerInfo struct {
	Specialty               string           `yaml:"specialty" json:"specialty" validate:"required"`
	CurrentStage            TrainingStage    `yaml:"current_stage" json:"currentStage" validate:"required,oneof=pgy1 pgy2 pgy3 pgy4 pgy5 pgy6 pgy7 fellow attending"`
	TrainingYearsRemaining  int              `yaml:"training_years_remaining" json:"trainingYearsRemaining" validate:"min=0"`
	ExpectedAttendingSalary *decimal.Decimal `yaml:"expected_attending_salary,omitempty" json:"expectedAttendingSalary,omitempty"`
}

// Preferences holds the borrower's modeling preferences
type Preferences struct {
	DiscountRate      decimal.Decimal `yaml:"discount_rate" json:"discountRate"`
	PSLFConfidence    decimal.Decimal `yaml:"pslf_confidence" json:"pslfConfidence"`
	SavePlanAvailable bool            `yaml:"save_plan_available" json:"savePlanAvailable"`
	RiskTolerance     RiskTolerance   `yaml:"risk_tolerance,omitempty" json:"riskTolerance,omitempty" validate:"omitempty,oneof=conservative moderate aggressive"`
}

// QuickStartInputs is the minimal record accepted by the quick analysis
type QuickStartInputs struct {
	TotalDebt    decimal.Decimal  `yaml:"total_debt" json:"totalDebt"`
	Specialty    string           `yaml:"specialty" json:"specialty"`
	PSLFEligible bool             `yaml:"pslf_eligible" json:"pslfEligible"`
	CurrentStage TrainingStage    `yaml:"current_stage" json:"currentStage"`
	Married      bool             `yaml:"married" json:"married"`
	SpouseIncome *decimal.Decimal `yaml:"spouse_income,omitempty" json:"spouseIncome,omitempty"`
}

// AggressivePayoffParams drives the three-phase payoff model
type AggressivePayoffParams struct {
	TotalBalance           decimal.Decimal `yaml:"total_balance" json:"totalBalance"`
	InterestRate           decimal.Decimal `yaml:"interest_rate" json:"interestRate"`
	TrainingYearsRemaining int             `yaml:"training_years_remaining" json:"trainingYearsRemaining"`
	AttendingSalary        decimal.Decimal `yaml:"attending_salary" json:"attendingSalary"`
	LivingExpenses         decimal.Decimal `yaml:"living_expenses" json:"livingExpenses"`
	AggressiveYears        int             `yaml:"aggressive_years" json:"aggressiveYears"`
	DiscountRate           decimal.Decimal `yaml:"discount_rate" json:"discountRate"`
}

// HouseholdIncome returns the income counted for IDR purposes.
// Married filing separately excludes the spouse.
func (p PersonalInfo) HouseholdIncome(borrowerIncome decimal.Decimal) decimal.Decimal {
	if p.FilingStatus == FilingMFS {
		return borrowerIncome
	}
	return borrowerIncome.Add(p.SpouseAGI)
}
