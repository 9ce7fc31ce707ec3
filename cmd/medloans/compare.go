package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/medloans/internal/compare"
	"github.com/rgehrsitz/medloans/internal/config"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare repayment strategies for a borrower",
	Long: `Evaluate every applicable repayment strategy for the borrower described in
the input file and recommend the one with the lowest present cost.

Examples:
  ./medloans compare examples/resident-pslf.yaml
  ./medloans compare examples/surgeon-married.yaml --format json
  ./medloans compare examples/attending-private.yaml --payoff --living-expenses 120000 --aggressive-years 4
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		parser := config.NewInputParser()
		inputs, err := parser.LoadFromFile(inputFile)
		if err != nil {
			return err
		}

		compareEngine, err := newCompareEngine(cmd)
		if err != nil {
			return err
		}

		includePayoff, _ := cmd.Flags().GetBool("payoff")
		livingExpenses, _ := cmd.Flags().GetString("living-expenses")
		aggressiveYears, _ := cmd.Flags().GetInt("aggressive-years")
		if aggressiveYears < 0 {
			return fmt.Errorf("--aggressive-years must not be negative, got %d", aggressiveYears)
		}

		comparisonSet, err := compareEngine.Compare(context.Background(), *inputs, compare.CompareOptions{
			ConfigPath:      inputFile,
			IncludePayoff:   includePayoff,
			LivingExpenses:  config.SanitizeNumber(livingExpenses),
			AggressiveYears: aggressiveYears,
		})
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		return writeComparison(cmd.OutOrStdout(), comparisonSet, outputFormat)
	},
}

// writeComparison renders a comparison in the requested format
func writeComparison(w io.Writer, comparisonSet *compare.ComparisonSet, outputFormat string) error {
	switch strings.ToLower(outputFormat) {
	case "csv":
		formatter := &compare.CSVFormatter{}
		output, err := formatter.Format(comparisonSet)
		if err != nil {
			return fmt.Errorf("failed to format CSV: %w", err)
		}
		fmt.Fprint(w, output)

	case "json":
		formatter := &compare.JSONFormatter{Pretty: true}
		output, err := formatter.Format(comparisonSet)
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		fmt.Fprintln(w, output)

	case "table", "console", "":
		formatter := &compare.TableFormatter{}
		fmt.Fprint(w, formatter.Format(comparisonSet))

	default:
		return fmt.Errorf("unknown output format: %s (valid: table, csv, json)", outputFormat)
	}
	return nil
}

func init() {
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	compareCmd.Flags().Bool("payoff", false, "Also model an aggressive payoff")
	compareCmd.Flags().String("living-expenses", "80000", "Annual living expenses for the aggressive payoff")
	compareCmd.Flags().Int("aggressive-years", 5, "Years of surplus payments in the aggressive payoff")
}
