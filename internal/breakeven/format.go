package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats break-even results for the console
type TableFormatter struct{}

// Format generates a formatted summary of a break-even search
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Target:      %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Challenger:  %s\n", result.Challenger))
	sb.WriteString(fmt.Sprintf("Incumbent:   %s (present cost $%s)\n", result.Incumbent, tf.formatCurrency(result.IncumbentNPV)))
	sb.WriteString(fmt.Sprintf("Range:       %s to %s\n", tf.formatValue(result.Target, result.Bounds.Min), tf.formatValue(result.Target, result.Bounds.Max)))
	sb.WriteString(fmt.Sprintf("Status:      %s\n", tf.formatStatus(result.Found)))
	sb.WriteString(fmt.Sprintf("Iterations:  %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence: %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	if result.Found {
		sb.WriteString(fmt.Sprintf("Break-even %s: %s\n", tf.label(result.Target), tf.formatValue(result.Target, result.Value)))
		below, above := result.Challenger, result.Incumbent
		if !result.ChallengerWinsBelow {
			below, above = above, below
		}
		sb.WriteString(fmt.Sprintf("  Below: %s is cheaper\n", below))
		sb.WriteString(fmt.Sprintf("  Above: %s is cheaper\n", above))
	}

	sb.WriteString("\nNPV GAP (challenger - incumbent)\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	sb.WriteString(fmt.Sprintf("  At %s: %s\n", tf.formatValue(result.Target, result.Bounds.Min), tf.formatSigned(result.GapAtMin)))
	sb.WriteString(fmt.Sprintf("  At %s: %s\n", tf.formatValue(result.Target, result.Bounds.Max), tf.formatSigned(result.GapAtMax)))

	return sb.String()
}

func (tf *TableFormatter) label(target Target) string {
	switch target {
	case TargetRefinanceRate:
		return "refinance rate"
	case TargetLivingExpenses:
		return "living expenses"
	default:
		return string(target)
	}
}

// formatValue renders rates as percentages and dollar targets as currency
func (tf *TableFormatter) formatValue(target Target, v decimal.Decimal) string {
	if target == TargetRefinanceRate {
		return v.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
	}
	return "$" + tf.formatCurrency(v) + "/yr"
}

func (tf *TableFormatter) formatStatus(found bool) string {
	if found {
		return "✅ Found"
	}
	return "➖ Not in range"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(0)
}

func (tf *TableFormatter) formatSigned(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + tf.formatCurrency(d.Abs())
	}
	return "+$" + tf.formatCurrency(d)
}

// JSONFormatter formats break-even results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a break-even result
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
