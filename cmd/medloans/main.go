package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/medloans/internal/calculation"
	"github.com/rgehrsitz/medloans/internal/compare"
	"github.com/rgehrsitz/medloans/internal/config"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "medloans %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "medloans",
	Short: "Student loan repayment strategy calculator for physicians",
	Long: `Compare PSLF, income-driven repayment and private refinancing for a
medical professional's federal student loans.

Every strategy is projected over the borrower's training and attending years,
discounted to present value, and ranked. The cheapest strategy is recommended
with a confidence grade and the reasoning behind it.`,
	SilenceUsage: true,
}

// newCompareEngine builds an engine over the --reference tables and installs
// the CLI logger when --debug is set
func newCompareEngine(cmd *cobra.Command) (*compare.CompareEngine, error) {
	referenceFile, _ := cmd.Flags().GetString("reference")
	ref, err := config.LoadReferenceData(referenceFile)
	if err != nil {
		return nil, err
	}

	engine := calculation.NewCalculationEngineWithReference(ref)
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return compare.NewCompareEngine(engine), nil
}

func init() {
	rootCmd.PersistentFlags().String("reference", "", "Path to a reference data override file (YAML)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")

	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(quickCmd)
	rootCmd.AddCommand(payoffCmd)
	rootCmd.AddCommand(breakevenCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(referenceCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
