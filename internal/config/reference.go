package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/medloans/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadReferenceData reads a reference-table override file and merges it over
// the built-in tables. Map entries in the file replace or extend the defaults;
// lists in the file replace the default list. An empty path returns the defaults.
func LoadReferenceData(path string) (*domain.ReferenceData, error) {
	ref := domain.DefaultReferenceData()
	if path == "" {
		return ref, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference data %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, ref); err != nil {
		return nil, fmt.Errorf("failed to parse reference data %s: %w", path, err)
	}

	if err := ValidateReferenceData(ref); err != nil {
		return nil, fmt.Errorf("reference data %s: %w", path, err)
	}
	return ref, nil
}

// ValidateReferenceData checks the invariants the engine relies on
func ValidateReferenceData(ref *domain.ReferenceData) error {
	var errs ValidationErrors

	if !ref.Poverty.Base.IsPositive() {
		errs = append(errs, &InputError{Field: "poverty_guideline.base", Message: "must be positive"})
	}
	if _, ok := ref.Plan(domain.PlanPAYE); !ok {
		errs = append(errs, &InputError{Field: "plans", Message: "must include PAYE"})
	}
	for name, plan := range ref.Plans {
		if plan.Name != name {
			errs = append(errs, &InputError{Field: "plans." + string(name) + ".name", Message: "must match its key"})
		}
		if plan.ForgivenessYears <= 0 {
			errs = append(errs, &InputError{Field: "plans." + string(name) + ".forgiveness_years", Message: "must be positive"})
		}
	}
	if len(ref.TrainingStages) == 0 {
		errs = append(errs, &InputError{Field: "training_stages", Message: "must not be empty"})
	}
	for status, brackets := range ref.FederalBrackets {
		for i := 1; i < len(brackets); i++ {
			if !brackets[i].Threshold.GreaterThan(brackets[i-1].Threshold) {
				errs = append(errs, &InputError{Field: "federal_brackets." + string(status), Message: "thresholds must be ascending"})
				break
			}
		}
	}
	if _, ok := ref.Specialties[domain.OtherSpecialty]; !ok {
		errs = append(errs, &InputError{Field: "specialties", Message: "must include \"other\""})
	}
	for i, offer := range ref.RefinanceOffers {
		if offer.TermYears <= 0 || offer.Rate.IsNegative() {
			errs = append(errs, &InputError{Field: fmt.Sprintf("refinance_offers[%d]", i), Message: "needs a positive term and non-negative rate"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MarshalReferenceData renders reference tables as YAML
func MarshalReferenceData(ref *domain.ReferenceData) ([]byte, error) {
	data, err := yaml.Marshal(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reference data: %w", err)
	}
	return data, nil
}
