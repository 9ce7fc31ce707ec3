package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rgehrsitz/medloans/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a borrower's inputs from a YAML file and validates them
func (ip *InputParser) LoadFromFile(filename string) (*domain.UserInputs, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	inputs, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return inputs, nil
}

// Parse decodes and validates an input document. Unknown keys are rejected so
// a misspelled field does not silently fall back to a zero value.
func (ip *InputParser) Parse(data []byte) (*domain.UserInputs, error) {
	var inputs domain.UserInputs

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&inputs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("input document is empty")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.applyDefaults(&inputs)

	if err := ValidateInputs(&inputs); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return &inputs, nil
}

// applyDefaults normalizes fields that have an obvious default
func (ip *InputParser) applyDefaults(inputs *domain.UserInputs) {
	inputs.Personal.State = strings.ToUpper(strings.TrimSpace(inputs.Personal.State))
	inputs.Career.Specialty = strings.ToLower(strings.TrimSpace(inputs.Career.Specialty))
	if inputs.Personal.FamilySize == 0 {
		inputs.Personal.FamilySize = 1
	}
	if inputs.Preferences.RiskTolerance == "" {
		inputs.Preferences.RiskTolerance = domain.RiskModerate
	}
}
