package compare

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/rgehrsitz/medloans/internal/domain"
)

// CSVFormatter formats ranked strategy results as CSV
type CSVFormatter struct{}

// Format generates CSV output, one row per strategy in rank order
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Rank",
		"Strategy",
		"Kind",
		"Plan",
		"NPV",
		"Total Payments",
		"Forgiveness Amount",
		"Tax On Forgiveness",
		"Years",
		"Min Monthly",
		"Max Monthly",
		"Recommended",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	recommended := compSet.Recommended()
	for i := range compSet.Results {
		if err := writer.Write(cf.formatRow(i+1, &compSet.Results[i], i == recommended)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a strategy result as a CSV row
func (cf *CSVFormatter) formatRow(rank int, result *domain.StrategyResult, recommended bool) []string {
	return []string{
		strconv.Itoa(rank),
		result.StrategyName,
		string(result.Kind),
		string(result.Plan),
		result.NPV.StringFixed(2),
		result.TotalPayments.StringFixed(2),
		result.ForgivenessAmount.StringFixed(2),
		result.TaxOnForgiveness.StringFixed(2),
		strconv.Itoa(result.TotalYears),
		result.MonthlyPaymentRange.Min.StringFixed(2),
		result.MonthlyPaymentRange.Max.StringFixed(2),
		strconv.FormatBool(recommended),
	}
}
