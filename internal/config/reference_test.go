package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/medloans/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadReferenceData_EmptyPath(t *testing.T) {
	ref, err := LoadReferenceData("")

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultReferenceData(), ref)
}

func TestLoadReferenceData_MergesOverDefaults(t *testing.T) {
	path := writeFile(t, "ref.yaml", `
metadata:
  data_year: 2025
poverty_guideline:
  base: 15650
  per_person: 5500
state_tax_rates:
  ZZ: 0.01
specialties:
  podiatry:
    name: Podiatry
    median_salary: 250000
    training_years: 3
refinance_offers:
  - rate: 0.049
    term_years: 5
`)

	ref, err := LoadReferenceData(path)

	require.NoError(t, err)
	assert.Equal(t, 2025, ref.Metadata.DataYear)
	assert.True(t, ref.Poverty.Base.Equal(decimal.NewFromInt(15650)))

	rate, ok := ref.StateRate("ZZ")
	assert.True(t, ok)
	assert.True(t, rate.Equal(decimal.NewFromFloat(0.01)))
	_, ok = ref.StateRate("CA")
	assert.True(t, ok, "default entries survive a partial override")

	spec, ok := ref.SpecialtyFor("podiatry")
	assert.True(t, ok)
	assert.Equal(t, 3, spec.TrainingYears)

	require.Len(t, ref.RefinanceOffers, 1)
	assert.Equal(t, 5, ref.RefinanceOffers[0].TermYears)

	_, ok = ref.Plan(domain.PlanSAVE)
	assert.True(t, ok)
}

func TestLoadReferenceData_Invalid(t *testing.T) {
	path := writeFile(t, "ref.yaml", `
plans:
  PAYE:
    name: PAYE
    discretionary_income_percent: 0.10
refinance_offers:
  - rate: 0.05
    term_years: 0
`)

	_, err := LoadReferenceData(path)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs), "got %v", err)
	assert.Contains(t, verrs.Fields(), "plans.PAYE.forgiveness_years")
	assert.Contains(t, verrs.Fields(), "refinance_offers[0]")
}

func TestLoadReferenceData_Malformed(t *testing.T) {
	path := writeFile(t, "ref.yaml", "poverty_guideline: [1, 2")

	_, err := LoadReferenceData(path)

	assert.ErrorContains(t, err, "failed to parse reference data")
}

func TestMarshalReferenceData_RoundTrip(t *testing.T) {
	data, err := MarshalReferenceData(domain.DefaultReferenceData())
	require.NoError(t, err)

	path := writeFile(t, "dump.yaml", string(data))
	ref, err := LoadReferenceData(path)

	require.NoError(t, err)
	plan, ok := ref.Plan(domain.PlanIBROld)
	require.True(t, ok)
	assert.Equal(t, 25, plan.ForgivenessYears)
	assert.True(t, plan.DiscretionaryIncomePercent.Equal(decimal.NewFromFloat(0.15)))
	assert.Len(t, ref.FederalBrackets[domain.FilingMFJ], 7)
}
