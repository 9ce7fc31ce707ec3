package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/medloans/internal/config"
	"github.com/rgehrsitz/medloans/internal/domain"
	"github.com/spf13/cobra"
)

var quickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Quick strategy comparison from a handful of answers",
	Long: `Run a comparison without an input file. Everything not given on the command
line is filled in from the reference tables: income comes from the training
stage salary (or the specialty median for attendings), the interest rate is
6.5%, and state tax is estimated for California.

Examples:
  ./medloans quick --debt 250000 --specialty internal_medicine --stage pgy1 --pslf
  ./medloans quick --debt "410,000" --specialty orthopedic_surgery --stage pgy3 --married --spouse-income 90000
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		debt, _ := cmd.Flags().GetString("debt")
		specialty, _ := cmd.Flags().GetString("specialty")
		stage, _ := cmd.Flags().GetString("stage")
		pslf, _ := cmd.Flags().GetBool("pslf")
		married, _ := cmd.Flags().GetBool("married")
		spouseIncome, _ := cmd.Flags().GetString("spouse-income")

		compareEngine, err := newCompareEngine(cmd)
		if err != nil {
			return err
		}

		quick := domain.QuickStartInputs{
			TotalDebt:    config.SanitizeNumber(debt),
			Specialty:    strings.ToLower(strings.TrimSpace(specialty)),
			PSLFEligible: pslf,
			CurrentStage: domain.TrainingStage(strings.ToLower(strings.TrimSpace(stage))),
			Married:      married,
		}
		if quick.CurrentStage != domain.StageAttending && compareEngine.CalcEngine.Reference.StageIndex(quick.CurrentStage) < 0 {
			return fmt.Errorf("unknown training stage: %s", stage)
		}
		if married && cmd.Flags().Changed("spouse-income") {
			income := config.SanitizeNumber(spouseIncome)
			quick.SpouseIncome = &income
		}

		result, err := compareEngine.RunQuickAnalysis(quick)
		if err != nil {
			return err
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		return writeComparison(cmd.OutOrStdout(), result.ComparisonSet(), outputFormat)
	},
}

func init() {
	quickCmd.Flags().String("debt", "", "Total federal student loan balance (required)")
	quickCmd.Flags().String("specialty", "other", "Specialty key (e.g. internal_medicine, pediatrics)")
	quickCmd.Flags().String("stage", string(domain.StagePGY1), "Current stage (pgy1-pgy7, fellow, attending)")
	quickCmd.Flags().Bool("pslf", false, "Employer qualifies for PSLF")
	quickCmd.Flags().Bool("married", false, "Married, filing jointly")
	quickCmd.Flags().String("spouse-income", "", "Spouse's annual income when married")
	quickCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	_ = quickCmd.MarkFlagRequired("debt")
}
