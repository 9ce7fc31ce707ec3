package domain

import (
	"github.com/shopspring/decimal"
)

// PlanName identifies a federal income-driven repayment plan
type PlanName string

const (
	PlanPAYE   PlanName = "PAYE"
	PlanIBRNew PlanName = "IBR_NEW"
	PlanIBROld PlanName = "IBR_OLD"
	PlanICR    PlanName = "ICR"
	PlanSAVE   PlanName = "SAVE"
)

// OtherSpecialty is the specialty record used when a key is not in the table
const OtherSpecialty = "other"

// ReferenceData contains the static, versioned lookup tables the engine reads.
// It is built once and never mutated after load.
type ReferenceData struct {
	Metadata         ReferenceMetadata             `yaml:"metadata" json:"metadata"`
	Poverty          PovertyGuideline              `yaml:"poverty_guideline" json:"poverty_guideline"`
	Plans            map[PlanName]IDRPlanParams    `yaml:"plans" json:"plans"`
	TrainingStages   []StageSalary                 `yaml:"training_stages" json:"training_stages"`
	FederalBrackets  map[FilingStatus][]TaxBracket `yaml:"federal_brackets" json:"federal_brackets"`
	StateTaxRates    map[string]decimal.Decimal    `yaml:"state_tax_rates" json:"state_tax_rates"`
	DefaultStateRate decimal.Decimal               `yaml:"default_state_rate" json:"default_state_rate"`
	Specialties      map[string]Specialty          `yaml:"specialties" json:"specialties"`
	RefinanceOffers  []RefinanceOffer              `yaml:"refinance_offers" json:"refinance_offers"`
}

// ReferenceMetadata describes the data vintage
type ReferenceMetadata struct {
	DataYear    int    `yaml:"data_year" json:"data_year"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// PovertyGuideline is the HHS poverty line for the contiguous states
type PovertyGuideline struct {
	Base      decimal.Decimal `yaml:"base" json:"base"`
	PerPerson decimal.Decimal `yaml:"per_person" json:"per_person"`
}

// IDRPlanParams is the static parameter record for one IDR plan
type IDRPlanParams struct {
	Name                       PlanName        `yaml:"name" json:"name"`
	DiscretionaryIncomePercent decimal.Decimal `yaml:"discretionary_income_percent" json:"discretionary_income_percent"`
	PovertyLineMultiplier      decimal.Decimal `yaml:"poverty_line_multiplier" json:"poverty_line_multiplier"`
	ForgivenessYears           int             `yaml:"forgiveness_years" json:"forgiveness_years"`
	InterestSubsidy            bool            `yaml:"interest_subsidy" json:"interest_subsidy"`
	CapAtStandard              bool            `yaml:"cap_at_standard" json:"cap_at_standard"`
}

// StageSalary is the typical salary for one training year
type StageSalary struct {
	Stage  TrainingStage   `yaml:"stage" json:"stage"`
	Salary decimal.Decimal `yaml:"salary" json:"salary"`
}

// TaxBracket is a marginal bracket starting at Threshold
type TaxBracket struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// Specialty holds compensation and training length for a medical specialty
type Specialty struct {
	Name          string          `yaml:"name" json:"name"`
	MedianSalary  decimal.Decimal `yaml:"median_salary" json:"median_salary"`
	TrainingYears int             `yaml:"training_years" json:"training_years"`
}

// RefinanceOffer is a private refinance candidate
type RefinanceOffer struct {
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
	TermYears int             `yaml:"term_years" json:"term_years"`
}

// Plan looks up IDR plan parameters by name
func (r *ReferenceData) Plan(name PlanName) (IDRPlanParams, bool) {
	p, ok := r.Plans[name]
	return p, ok
}

// SpecialtyFor returns the specialty record, falling back to "other" on a miss.
// The boolean reports whether the key itself was found.
func (r *ReferenceData) SpecialtyFor(key string) (Specialty, bool) {
	if s, ok := r.Specialties[key]; ok {
		return s, true
	}
	return r.Specialties[OtherSpecialty], false
}

// StageIndex returns the position of a stage in the training ordering, or -1
func (r *ReferenceData) StageIndex(stage TrainingStage) int {
	for i, s := range r.TrainingStages {
		if s.Stage == stage {
			return i
		}
	}
	return -1
}

// StateRate returns the flat state rate for a two-letter code, or the default rate on a miss
func (r *ReferenceData) StateRate(state string) (decimal.Decimal, bool) {
	if rate, ok := r.StateTaxRates[state]; ok {
		return rate, true
	}
	return r.DefaultStateRate, false
}

// BracketsFor returns the bracket table for a filing status, falling back to single
func (r *ReferenceData) BracketsFor(status FilingStatus) []TaxBracket {
	if b, ok := r.FederalBrackets[status]; ok && len(b) > 0 {
		return b
	}
	return r.FederalBrackets[FilingSingle]
}

func pct(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func usd(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func brackets(rows ...[2]float64) []TaxBracket {
	out := make([]TaxBracket, len(rows))
	for k, row := range rows {
		out[k] = TaxBracket{Threshold: pct(row[0]), Rate: pct(row[1])}
	}
	return out
}

// DefaultReferenceData returns a fresh copy of the built-in 2024 tables
func DefaultReferenceData() *ReferenceData {
	return &ReferenceData{
		Metadata: ReferenceMetadata{
			DataYear:    2024,
			LastUpdated: "2024-07-01",
			Description: "HHS 2024 poverty guideline, 2024 federal brackets, top marginal state rates",
		},
		Poverty: PovertyGuideline{Base: usd(15060), PerPerson: usd(5380)},
		Plans: map[PlanName]IDRPlanParams{
			PlanPAYE:   {Name: PlanPAYE, DiscretionaryIncomePercent: pct(0.10), PovertyLineMultiplier: pct(1.5), ForgivenessYears: 20, InterestSubsidy: true, CapAtStandard: true},
			PlanIBRNew: {Name: PlanIBRNew, DiscretionaryIncomePercent: pct(0.10), PovertyLineMultiplier: pct(1.5), ForgivenessYears: 20, InterestSubsidy: true, CapAtStandard: true},
			PlanIBROld: {Name: PlanIBROld, DiscretionaryIncomePercent: pct(0.15), PovertyLineMultiplier: pct(1.5), ForgivenessYears: 25, InterestSubsidy: true, CapAtStandard: true},
			PlanICR:    {Name: PlanICR, DiscretionaryIncomePercent: pct(0.20), PovertyLineMultiplier: pct(1.0), ForgivenessYears: 25, InterestSubsidy: false, CapAtStandard: false},
			PlanSAVE:   {Name: PlanSAVE, DiscretionaryIncomePercent: pct(0.10), PovertyLineMultiplier: pct(2.25), ForgivenessYears: 25, InterestSubsidy: true, CapAtStandard: false},
		},
		TrainingStages: []StageSalary{
			{Stage: StagePGY1, Salary: usd(64000)},
			{Stage: StagePGY2, Salary: usd(66500)},
			{Stage: StagePGY3, Salary: usd(69000)},
			{Stage: StagePGY4, Salary: usd(71500)},
			{Stage: StagePGY5, Salary: usd(74000)},
			{Stage: StagePGY6, Salary: usd(76500)},
			{Stage: StagePGY7, Salary: usd(79000)},
			{Stage: StageFellow, Salary: usd(75000)},
		},
		FederalBrackets: map[FilingStatus][]TaxBracket{
			FilingSingle: brackets(
				[2]float64{0, 0.10}, [2]float64{11600, 0.12}, [2]float64{47150, 0.22},
				[2]float64{100525, 0.24}, [2]float64{191950, 0.32}, [2]float64{243725, 0.35},
				[2]float64{609350, 0.37},
			),
			FilingMFJ: brackets(
				[2]float64{0, 0.10}, [2]float64{23200, 0.12}, [2]float64{94300, 0.22},
				[2]float64{201050, 0.24}, [2]float64{383900, 0.32}, [2]float64{487450, 0.35},
				[2]float64{731200, 0.37},
			),
			FilingMFS: brackets(
				[2]float64{0, 0.10}, [2]float64{11600, 0.12}, [2]float64{47150, 0.22},
				[2]float64{100525, 0.24}, [2]float64{191950, 0.32}, [2]float64{243725, 0.35},
				[2]float64{365600, 0.37},
			),
		},
		StateTaxRates: map[string]decimal.Decimal{
			"AK": pct(0), "FL": pct(0), "NV": pct(0), "NH": pct(0), "SD": pct(0), "TN": pct(0), "TX": pct(0), "WA": pct(0), "WY": pct(0),
			"AL": pct(0.05), "AZ": pct(0.025), "AR": pct(0.044), "CA": pct(0.133), "CO": pct(0.044), "CT": pct(0.0699),
			"DE": pct(0.066), "DC": pct(0.1075), "GA": pct(0.0549), "HI": pct(0.11), "ID": pct(0.058), "IL": pct(0.0495),
			"IN": pct(0.0305), "IA": pct(0.057), "KS": pct(0.057), "KY": pct(0.04), "LA": pct(0.0425), "ME": pct(0.0715),
			"MD": pct(0.0575), "MA": pct(0.09), "MI": pct(0.0425), "MN": pct(0.0985), "MS": pct(0.047), "MO": pct(0.048),
			"MT": pct(0.059), "NE": pct(0.0584), "NJ": pct(0.1075), "NM": pct(0.059), "NY": pct(0.109), "NC": pct(0.045),
			"ND": pct(0.025), "OH": pct(0.035), "OK": pct(0.0475), "OR": pct(0.099), "PA": pct(0.0307), "RI": pct(0.0599),
			"SC": pct(0.064), "UT": pct(0.0455), "VT": pct(0.0875), "VA": pct(0.0575), "WV": pct(0.0512), "WI": pct(0.0765),
		},
		DefaultStateRate: pct(0.05),
		Specialties: map[string]Specialty{
			"anesthesiology":     {Name: "Anesthesiology", MedianSalary: usd(450000), TrainingYears: 4},
			"cardiology":         {Name: "Cardiology", MedianSalary: usd(550000), TrainingYears: 6},
			"dermatology":        {Name: "Dermatology", MedianSalary: usd(500000), TrainingYears: 4},
			"emergency_medicine": {Name: "Emergency Medicine", MedianSalary: usd(350000), TrainingYears: 3},
			"family_medicine":    {Name: "Family Medicine", MedianSalary: usd(255000), TrainingYears: 3},
			"general_surgery":    {Name: "General Surgery", MedianSalary: usd(420000), TrainingYears: 5},
			"internal_medicine":  {Name: "Internal Medicine", MedianSalary: usd(265000), TrainingYears: 3},
			"neurology":          {Name: "Neurology", MedianSalary: usd(300000), TrainingYears: 4},
			"neurosurgery":       {Name: "Neurosurgery", MedianSalary: usd(750000), TrainingYears: 7},
			"ob_gyn":             {Name: "Obstetrics & Gynecology", MedianSalary: usd(350000), TrainingYears: 4},
			"orthopedic_surgery": {Name: "Orthopedic Surgery", MedianSalary: usd(600000), TrainingYears: 5},
			"pathology":          {Name: "Pathology", MedianSalary: usd(320000), TrainingYears: 4},
			"pediatrics":         {Name: "Pediatrics", MedianSalary: usd(240000), TrainingYears: 3},
			"psychiatry":         {Name: "Psychiatry", MedianSalary: usd(300000), TrainingYears: 4},
			"radiology":          {Name: "Radiology", MedianSalary: usd(480000), TrainingYears: 5},
			OtherSpecialty:       {Name: "Other", MedianSalary: usd(300000), TrainingYears: 4},
		},
		RefinanceOffers: []RefinanceOffer{
			{Rate: pct(0.055), TermYears: 10},
			{Rate: pct(0.06), TermYears: 7},
		},
	}
}
