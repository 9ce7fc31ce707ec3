package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/medloans/internal/breakeven"
	"github.com/rgehrsitz/medloans/internal/config"
	"github.com/spf13/cobra"
)

var breakevenCmd = &cobra.Command{
	Use:   "breakeven [input-file]",
	Short: "Find where a refinance or aggressive payoff ties the best federal strategy",
	Long: `Search for the parameter value at which a challenger strategy costs the
same, in present value, as the cheapest federal strategy for the borrower.

Targets:
  refinance_rate   the fixed refinance rate that ties the best federal strategy
  living_expenses  the annual living expenses at which an aggressive payoff ties it

Examples:
  ./medloans breakeven examples/attending-private.yaml
  ./medloans breakeven examples/attending-private.yaml --target living_expenses --aggressive-years 3
  ./medloans breakeven examples/resident-pslf.yaml --term 5 --min 0.02 --max 0.09
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		compareEngine, err := newCompareEngine(cmd)
		if err != nil {
			return err
		}

		inputs, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}

		target, _ := cmd.Flags().GetString("target")
		term, _ := cmd.Flags().GetInt("term")
		aggressiveYears, _ := cmd.Flags().GetInt("aggressive-years")

		req := breakeven.Request{
			Inputs:             *inputs,
			Target:             breakeven.Target(strings.ToLower(target)),
			RefinanceTermYears: term,
			AggressiveYears:    aggressiveYears,
		}
		if cmd.Flags().Changed("min") || cmd.Flags().Changed("max") {
			if !cmd.Flags().Changed("min") || !cmd.Flags().Changed("max") {
				return fmt.Errorf("--min and --max must be given together")
			}
			minValue, _ := cmd.Flags().GetString("min")
			maxValue, _ := cmd.Flags().GetString("max")
			req.Bounds = &breakeven.Bounds{
				Min: config.SanitizeNumber(minValue),
				Max: config.SanitizeNumber(maxValue),
			}
		}

		solver := breakeven.NewDefaultSolver(compareEngine.CalcEngine)
		result, err := solver.Solve(context.Background(), req)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		outputFormat, _ := cmd.Flags().GetString("format")
		switch strings.ToLower(outputFormat) {
		case "json":
			formatter := &breakeven.JSONFormatter{Pretty: true}
			output, err := formatter.Format(result)
			if err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
			fmt.Fprintln(out, output)

		case "table", "console", "":
			formatter := &breakeven.TableFormatter{}
			fmt.Fprint(out, formatter.Format(result))

		default:
			return fmt.Errorf("unknown output format: %s (valid: table, json)", outputFormat)
		}
		return nil
	},
}

func init() {
	breakevenCmd.Flags().String("target", string(breakeven.TargetRefinanceRate), "Parameter to solve for (refinance_rate, living_expenses)")
	breakevenCmd.Flags().Int("term", 10, "Refinance term in years")
	breakevenCmd.Flags().Int("aggressive-years", 5, "Years of surplus payments for the aggressive payoff")
	breakevenCmd.Flags().String("min", "", "Lower search bound (rate as a decimal, or dollars)")
	breakevenCmd.Flags().String("max", "", "Upper search bound (rate as a decimal, or dollars)")
	breakevenCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
}
