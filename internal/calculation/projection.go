package calculation

import (
	"github.com/rgehrsitz/medloans/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	decimalOne    = decimal.NewFromInt(1)
	decimalZero   = decimal.Zero
	decimalTwelve = decimal.NewFromInt(12)
)

// ProjectIncome builds a year-by-year income sequence covering training and
// attending years. Training salaries advance one stage per year and clamp to
// the last stage in the table; attending income grows from the transition year.
func (ce *CalculationEngine) ProjectIncome(career domain.CareerInfo, years int, growth decimal.Decimal) domain.IncomeProjection {
	if years <= 0 {
		years = 1
	}

	stages := ce.Reference.TrainingStages
	startIndex := ce.Reference.StageIndex(career.CurrentStage)
	if startIndex < 0 {
		if career.CurrentStage != domain.StageAttending {
			ce.Logger.Debugf("unknown training stage %q, starting at the first stage", career.CurrentStage)
		}
		startIndex = 0
	}

	trainingYears := career.TrainingYearsRemaining
	if trainingYears < 0 {
		trainingYears = 0
	}
	attendingBase := ce.AttendingSalary(career)
	growthFactor := decimalOne.Add(growth)

	projection := make(domain.IncomeProjection, years)
	for year := 0; year < years; year++ {
		if year < trainingYears && len(stages) > 0 {
			idx := startIndex + year
			if idx >= len(stages) {
				idx = len(stages) - 1
			}
			stage := stages[idx]
			projection[year] = domain.IncomeYear{
				Year:   year,
				Income: stage.Salary.Mul(powInt(growthFactor, year)).Round(0),
				Stage:  stage.Stage,
			}
			continue
		}

		projection[year] = domain.IncomeYear{
			Year:   year,
			Income: attendingBase.Mul(powInt(growthFactor, year-trainingYears)).Round(0),
			Stage:  domain.StageAttending,
		}
	}

	return projection
}

// powInt raises base to a non-negative integer power, holding precision steady
// so long horizons do not blow up the coefficient size.
func powInt(base decimal.Decimal, n int) decimal.Decimal {
	result := decimalOne
	for k := 0; k < n; k++ {
		result = result.Mul(base).Round(18)
	}
	return result
}
