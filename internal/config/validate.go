package config

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rgehrsitz/medloans/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	maxInterestRate = decimal.NewFromFloat(0.25)
	maxDiscountRate = decimal.NewFromFloat(0.20)
	decimalOne      = decimal.NewFromInt(1)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateInputs checks a full input record before it reaches the engine. The
// engine itself never rejects input; it falls back to defaults instead.
func ValidateInputs(inputs *domain.UserInputs) error {
	var errs ValidationErrors

	if err := validate.Struct(inputs); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return &InputError{Field: "inputs", Message: "could not be validated", Cause: err}
		}
		for _, fe := range fieldErrs {
			errs = append(errs, &InputError{Field: fieldPath(fe), Message: describe(fe)})
		}
	}

	loans := inputs.Loans
	if !loans.TotalBalance.IsPositive() {
		errs = append(errs, &InputError{Field: "loans.total_balance", Message: "must be positive"})
	}
	if loans.WeightedInterestRate.IsNegative() || loans.WeightedInterestRate.GreaterThan(maxInterestRate) {
		errs = append(errs, &InputError{Field: "loans.weighted_interest_rate", Message: "must be a decimal rate between 0 and 0.25"})
	}

	personal := inputs.Personal
	if personal.AGI.IsNegative() {
		errs = append(errs, &InputError{Field: "personal.agi", Message: "cannot be negative"})
	}
	if personal.SpouseAGI.IsNegative() {
		errs = append(errs, &InputError{Field: "personal.spouse_agi", Message: "cannot be negative"})
	}

	if s := inputs.Career.ExpectedAttendingSalary; s != nil && !s.IsPositive() {
		errs = append(errs, &InputError{Field: "career.expected_attending_salary", Message: "must be positive when set"})
	}

	prefs := inputs.Preferences
	if prefs.DiscountRate.IsNegative() || prefs.DiscountRate.GreaterThan(maxDiscountRate) {
		errs = append(errs, &InputError{Field: "preferences.discount_rate", Message: "must be a decimal rate between 0 and 0.20"})
	}
	if prefs.PSLFConfidence.IsNegative() || prefs.PSLFConfidence.GreaterThan(decimalOne) {
		errs = append(errs, &InputError{Field: "preferences.pslf_confidence", Message: "must be between 0 and 1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// fieldPath drops the root type name from a validator namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "len":
		return "must be " + fe.Param() + " characters"
	case "alpha":
		return "must contain only letters"
	default:
		return "failed " + fe.Tag() + " check"
	}
}
