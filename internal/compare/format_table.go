package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/medloans/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table ranking the strategies
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("STUDENT LOAN STRATEGY COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 96) + "\n")
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Input: %s\n", compSet.ConfigPath))
	}
	loans := compSet.Inputs.Loans
	sb.WriteString(fmt.Sprintf("Balance: $%s at %s%%\n",
		loans.TotalBalance.StringFixed(0),
		loans.WeightedInterestRate.Mul(decimal.NewFromInt(100)).StringFixed(2)))
	sb.WriteString("\n")

	nameWidth := 24
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-4s %-*s %*s %*s %*s %*s %5s %*s\n",
		"#",
		nameWidth, "Strategy",
		numWidth, "NPV",
		numWidth, "Total Paid",
		numWidth, "Forgiven",
		numWidth, "Tax",
		"Years",
		numWidth+4, "Monthly"))
	sb.WriteString(strings.Repeat("-", 96) + "\n")

	recommended := compSet.Recommended()
	for i := range compSet.Results {
		sb.WriteString(tf.formatRow(i+1, &compSet.Results[i], nameWidth, numWidth, i == recommended))
	}
	sb.WriteString(strings.Repeat("=", 96) + "\n")

	rec := compSet.Recommendation
	if rec.PrimaryStrategy.StrategyName != "" {
		sb.WriteString("\nRECOMMENDATION\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		sb.WriteString(fmt.Sprintf("Primary:     %s\n", rec.PrimaryStrategy.StrategyName))
		if rec.AlternativeStrategy != nil {
			sb.WriteString(fmt.Sprintf("Alternative: %s\n", rec.AlternativeStrategy.StrategyName))
		}
		sb.WriteString(fmt.Sprintf("Confidence:  %s\n", rec.Confidence))
		sb.WriteString("\n")
		for _, reason := range rec.Reasoning {
			sb.WriteString(fmt.Sprintf("• %s\n", reason))
		}

		sb.WriteString("\nKEY METRICS\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		metrics := rec.KeyMetrics
		sb.WriteString(fmt.Sprintf("  Debt-to-Income:      %s\n", metrics.DebtToIncomeRatio.StringFixed(2)))
		sb.WriteString(fmt.Sprintf("  Savings vs Refi:     $%s\n", tf.formatDecimal(metrics.TotalSavingsVsRefi)))
		sb.WriteString(fmt.Sprintf("  Forgiveness Benefit: $%s\n", tf.formatDecimal(metrics.ForgivenessBenefit)))
		if metrics.PSLFSalaryPremium != nil {
			sb.WriteString(fmt.Sprintf("  PSLF Salary Premium: $%s/yr\n", tf.formatDecimal(*metrics.PSLFSalaryPremium)))
		}
	}

	if compSet.Payoff != nil {
		sb.WriteString(tf.FormatPayoff(compSet.Payoff))
	}

	return sb.String()
}

// formatRow formats a single strategy row
func (tf *TableFormatter) formatRow(rank int, result *domain.StrategyResult, nameWidth, numWidth int, recommended bool) string {
	marker := fmt.Sprintf("%d", rank)
	if recommended {
		marker += "*"
	}

	monthly := "$" + result.MonthlyPaymentRange.Min.StringFixed(0)
	if !result.MonthlyPaymentRange.Min.Equal(result.MonthlyPaymentRange.Max) {
		monthly += "-" + result.MonthlyPaymentRange.Max.StringFixed(0)
	}

	return fmt.Sprintf("%-4s %-*s %*s %*s %*s %*s %5d %*s\n",
		marker,
		nameWidth, tf.truncate(result.StrategyName, nameWidth),
		numWidth, "$"+tf.formatDecimal(result.NPV),
		numWidth, "$"+tf.formatDecimal(result.TotalPayments),
		numWidth, "$"+tf.formatDecimal(result.ForgivenessAmount),
		numWidth, "$"+tf.formatDecimal(result.TaxOnForgiveness),
		result.TotalYears,
		numWidth+4, monthly)
}

// FormatPayoff renders the aggressive payoff summary
func (tf *TableFormatter) FormatPayoff(payoff *domain.AggressivePayoffResult) string {
	var sb strings.Builder

	sb.WriteString("\nAGGRESSIVE PAYOFF\n")
	sb.WriteString(strings.Repeat("-", 96) + "\n")
	sb.WriteString(fmt.Sprintf("  Training (interest only): $%s/mo\n", payoff.TrainingMonthlyPayment.StringFixed(0)))
	sb.WriteString(fmt.Sprintf("  Aggressive:               $%s/mo\n", payoff.AggressiveMonthlyPayment.StringFixed(0)))
	if payoff.StandardMonthlyPayment.IsPositive() {
		sb.WriteString(fmt.Sprintf("  Standard (remainder):     $%s/mo\n", payoff.StandardMonthlyPayment.StringFixed(0)))
	}
	sb.WriteString(fmt.Sprintf("  Paid off in %d years (%d months)\n", payoff.YearsToPayoff, payoff.MonthsToPayoff))
	sb.WriteString(fmt.Sprintf("  Total Paid: $%s  Interest: $%s  NPV: $%s\n",
		tf.formatDecimal(payoff.TotalPayments),
		tf.formatDecimal(payoff.TotalInterest),
		tf.formatDecimal(payoff.NPV)))

	return sb.String()
}

// FormatPayoffSchedule renders the year-by-year aggressive payoff schedule
func (tf *TableFormatter) FormatPayoffSchedule(payoff *domain.AggressivePayoffResult) string {
	var sb strings.Builder

	sb.WriteString("\nPAYOFF SCHEDULE\n")
	sb.WriteString(fmt.Sprintf("%-5s %-11s %12s %12s %12s %14s\n", "Year", "Phase", "Payments", "Principal", "Interest", "End Balance"))
	sb.WriteString(strings.Repeat("-", 71) + "\n")
	for _, y := range payoff.YearlyBreakdown {
		sb.WriteString(fmt.Sprintf("%-5d %-11s %12s %12s %12s %14s\n",
			y.Year,
			y.Phase,
			"$"+y.Payments.StringFixed(0),
			"$"+y.Principal.StringFixed(0),
			"$"+y.Interest.StringFixed(0),
			"$"+y.EndingBalance.StringFixed(0)))
	}

	return sb.String()
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a single-line summary of the ranking
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	for i, r := range compSet.Results {
		if i > 0 {
			sb.WriteString(" | ")
		}
		sb.WriteString(fmt.Sprintf("%d. %s: $%s", i+1, r.StrategyName, tf.formatDecimal(r.NPV)))
	}

	return sb.String()
}
