package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/medloans/internal/calculation"
	"github.com/rgehrsitz/medloans/internal/compare"
	"github.com/rgehrsitz/medloans/internal/config"
	"github.com/rgehrsitz/medloans/internal/domain"
	"github.com/spf13/cobra"
)

var payoffCmd = &cobra.Command{
	Use:   "payoff [input-file]",
	Short: "Model an aggressive payoff schedule",
	Long: `Model paying interest only during training, then putting all surplus
take-home pay toward the loans for a number of years, then amortizing any
remainder over ten years.

Parameters come from the input file when one is given; flags that are set
explicitly override them.

Examples:
  ./medloans payoff examples/attending-private.yaml --living-expenses 150000
  ./medloans payoff --balance 300000 --rate 0.068 --training-years 3 --salary 350000
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		compareEngine, err := newCompareEngine(cmd)
		if err != nil {
			return err
		}

		livingExpenses, _ := cmd.Flags().GetString("living-expenses")
		aggressiveYears, _ := cmd.Flags().GetInt("aggressive-years")

		params := domain.AggressivePayoffParams{
			InterestRate:    compare.QuickInterestRate,
			DiscountRate:    compare.QuickDiscountRate,
			LivingExpenses:  config.SanitizeNumber(livingExpenses),
			AggressiveYears: aggressiveYears,
		}
		if len(args) == 1 {
			inputs, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			params = compareEngine.PayoffParams(*inputs, params.LivingExpenses, aggressiveYears)
		}
		applyPayoffOverrides(cmd, &params)

		if !params.TotalBalance.IsPositive() {
			return fmt.Errorf("loan balance must be positive (use an input file or --balance)")
		}
		if !params.AttendingSalary.IsPositive() {
			return fmt.Errorf("attending salary must be positive (use an input file or --salary)")
		}
		if params.AggressiveYears < 0 || params.TrainingYearsRemaining < 0 {
			return fmt.Errorf("year counts must not be negative")
		}

		payoff := calculation.CalculateAggressivePayoff(params)

		out := cmd.OutOrStdout()
		outputFormat, _ := cmd.Flags().GetString("format")
		switch strings.ToLower(outputFormat) {
		case "json":
			formatter := &compare.JSONFormatter{Pretty: true}
			output, err := formatter.FormatPayoff(&payoff)
			if err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
			fmt.Fprintln(out, output)

		case "table", "console", "":
			formatter := &compare.TableFormatter{}
			fmt.Fprintf(out, "Balance: $%s at %s\n", params.TotalBalance.StringFixed(0), params.InterestRate.String())
			fmt.Fprint(out, formatter.FormatPayoff(&payoff))
			fmt.Fprint(out, formatter.FormatPayoffSchedule(&payoff))

		default:
			return fmt.Errorf("unknown output format: %s (valid: table, json)", outputFormat)
		}
		return nil
	},
}

// applyPayoffOverrides copies explicitly set flags over the derived parameters
func applyPayoffOverrides(cmd *cobra.Command, params *domain.AggressivePayoffParams) {
	flags := cmd.Flags()
	if flags.Changed("balance") {
		v, _ := flags.GetString("balance")
		params.TotalBalance = config.SanitizeNumber(v)
	}
	if flags.Changed("rate") {
		v, _ := flags.GetString("rate")
		params.InterestRate = config.SanitizeNumber(v)
	}
	if flags.Changed("salary") {
		v, _ := flags.GetString("salary")
		params.AttendingSalary = config.SanitizeNumber(v)
	}
	if flags.Changed("discount-rate") {
		v, _ := flags.GetString("discount-rate")
		params.DiscountRate = config.SanitizeNumber(v)
	}
	if flags.Changed("training-years") {
		params.TrainingYearsRemaining, _ = flags.GetInt("training-years")
	}
}

func init() {
	payoffCmd.Flags().String("balance", "", "Total loan balance")
	payoffCmd.Flags().String("rate", "", "Annual interest rate as a decimal (default 0.065 without an input file)")
	payoffCmd.Flags().Int("training-years", 0, "Years of training remaining")
	payoffCmd.Flags().String("salary", "", "Expected attending salary")
	payoffCmd.Flags().String("discount-rate", "", "Discount rate as a decimal (default 0.05 without an input file)")
	payoffCmd.Flags().String("living-expenses", "80000", "Annual living expenses once attending")
	payoffCmd.Flags().Int("aggressive-years", 5, "Years of surplus payments")
	payoffCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
}
