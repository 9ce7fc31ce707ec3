package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so package-level commands
// can be executed more than once in a test binary
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := rootCmd

	if cmd == nil {
		t.Fatal("Expected root command to be created")
	}

	if cmd.Use != "medloans" {
		t.Errorf("Expected root command use to be 'medloans', got %s", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Expected root command to have a short description")
	}

	if cmd.Long == "" {
		t.Error("Expected root command to have a long description")
	}
}

func TestRootCommand_Execute(t *testing.T) {
	out, _, err := execute(t)

	if err != nil {
		t.Errorf("Expected no error for root command execution, got %v", err)
	}
	if out == "" {
		t.Error("Expected root command to show help/usage")
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, _, err := execute(t, "--help")

	if err != nil {
		t.Errorf("Expected no error for help command, got %v", err)
	}
	if !strings.Contains(out, "compare") {
		t.Error("Expected help text to list the compare command")
	}
}

func TestCommandSubcommands(t *testing.T) {
	expectedCommands := []string{
		"compare",
		"quick",
		"payoff",
		"breakeven",
		"validate",
		"reference",
		"version",
	}

	cmd := rootCmd.Commands()
	for _, expectedCmd := range expectedCommands {
		found := false
		for _, c := range cmd {
			if c.Name() == expectedCmd {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected command '%s' to be registered with root command", expectedCmd)
		}
	}
}

func TestRootCommandFlags(t *testing.T) {
	cmd := rootCmd

	assert.NotNil(t, cmd.PersistentFlags().Lookup("reference"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
	assert.NotNil(t, cmd.Flag("help"))
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	_, _, err := execute(t, "invalid-command")

	if err == nil {
		t.Error("Expected error for invalid command")
	}
}

func TestRootCommand_InvalidFlag(t *testing.T) {
	_, _, err := execute(t, "--invalid-flag")

	if err == nil {
		t.Error("Expected error for invalid flag")
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "medloans dev (commit none, built unknown)")
}

func TestCompareCommand_Table(t *testing.T) {
	out, _, err := execute(t, "compare", "../../examples/resident-pslf.yaml")

	require.NoError(t, err)
	assert.Contains(t, out, "STUDENT LOAN STRATEGY COMPARISON")
	assert.Contains(t, out, "Input: ../../examples/resident-pslf.yaml")
	assert.Contains(t, out, "PSLF")
	assert.Contains(t, out, "RECOMMENDATION")
	assert.NotContains(t, out, "AGGRESSIVE PAYOFF")
}

func TestCompareCommand_JSONWithPayoff(t *testing.T) {
	out, _, err := execute(t, "compare", "../../examples/attending-private.yaml",
		"--format", "json", "--payoff", "--living-expenses", "150,000", "--aggressive-years", "3")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "results")
	assert.Contains(t, decoded, "recommendation")
	assert.Contains(t, decoded, "aggressivePayoff")
}

func TestCompareCommand_CSV(t *testing.T) {
	out, _, err := execute(t, "compare", "../../examples/surgeon-married.yaml", "-f", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "Rank,Strategy"))
	assert.True(t, strings.HasPrefix(lines[1], "1,"))
}

func TestCompareCommand_ReferenceOverride(t *testing.T) {
	out, _, err := execute(t, "compare", "../../examples/resident-pslf.yaml",
		"--reference", "../../examples/reference/2025-update.yaml")

	require.NoError(t, err)
	assert.Contains(t, out, "% / 5yr")
	assert.NotContains(t, out, "Refinance 5.5% / 10yr")
}

func TestCompareCommand_Errors(t *testing.T) {
	_, _, err := execute(t, "compare", "does-not-exist.yaml")
	assert.Error(t, err)

	_, _, err = execute(t, "compare", "../../examples/resident-pslf.yaml", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")

	_, _, err = execute(t, "compare")
	assert.Error(t, err)
}

func TestQuickCommand(t *testing.T) {
	out, _, err := execute(t, "quick",
		"--debt", "250,000", "--specialty", "Internal_Medicine", "--stage", "pgy1", "--pslf", "--format", "json")
	require.NoError(t, err)

	var decoded struct {
		Inputs struct {
			Career struct {
				TrainingYearsRemaining int `json:"trainingYearsRemaining"`
			} `json:"career"`
		} `json:"inputs"`
		Results []struct {
			StrategyName string `json:"strategyName"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 3, decoded.Inputs.Career.TrainingYearsRemaining)

	var names []string
	for _, r := range decoded.Results {
		names = append(names, r.StrategyName)
	}
	assert.Contains(t, names, "PSLF")
}

func TestQuickCommand_Errors(t *testing.T) {
	_, _, err := execute(t, "quick", "--specialty", "pediatrics")
	assert.Error(t, err, "--debt is required")

	_, _, err = execute(t, "quick", "--debt", "0")
	assert.Error(t, err)

	_, _, err = execute(t, "quick", "--debt", "100000", "--stage", "ms4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown training stage")
}

func TestPayoffCommand_FromFile(t *testing.T) {
	out, _, err := execute(t, "payoff", "../../examples/attending-private.yaml", "--living-expenses", "150000")

	require.NoError(t, err)
	assert.Contains(t, out, "Balance: $180000")
	assert.Contains(t, out, "AGGRESSIVE PAYOFF")
	assert.Contains(t, out, "PAYOFF SCHEDULE")
}

func TestPayoffCommand_FlagsOnly(t *testing.T) {
	out, _, err := execute(t, "payoff",
		"--balance", "200000", "--rate", "0.06", "--training-years", "3", "--salary", "300000", "--format", "json")
	require.NoError(t, err)

	var decoded struct {
		MonthsToPayoff         int    `json:"monthsToPayoff"`
		TrainingMonthlyPayment string `json:"trainingMonthlyPayment"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "1000", decoded.TrainingMonthlyPayment)
	assert.Greater(t, decoded.MonthsToPayoff, 36)
}

func TestPayoffCommand_Errors(t *testing.T) {
	_, _, err := execute(t, "payoff", "--salary", "300000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "balance")

	_, _, err = execute(t, "payoff", "--balance", "200000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "salary")
}

func TestBreakevenCommand(t *testing.T) {
	out, _, err := execute(t, "breakeven", "../../examples/attending-private.yaml")

	require.NoError(t, err)
	assert.Contains(t, out, "BREAK-EVEN ANALYSIS")
	assert.Contains(t, out, "Challenger:  Refinance / 10yr")
	assert.Contains(t, out, "Break-even refinance rate:")
}

func TestBreakevenCommand_LivingExpensesJSON(t *testing.T) {
	out, _, err := execute(t, "breakeven", "../../examples/attending-private.yaml",
		"--target", "living_expenses", "--aggressive-years", "3", "--format", "json")
	require.NoError(t, err)

	var decoded struct {
		Target     string `json:"target"`
		Found      bool   `json:"found"`
		Challenger string `json:"challenger"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "living_expenses", decoded.Target)
	assert.True(t, decoded.Found)
	assert.Equal(t, "Aggressive payoff / 3yr", decoded.Challenger)
}

func TestBreakevenCommand_Errors(t *testing.T) {
	_, _, err := execute(t, "breakeven")
	assert.Error(t, err)

	_, _, err = execute(t, "breakeven", "../../examples/attending-private.yaml", "--target", "salary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported target")

	_, _, err = execute(t, "breakeven", "../../examples/attending-private.yaml", "--min", "0.02")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be given together")

	_, _, err = execute(t, "breakeven", "../../examples/attending-private.yaml", "--min", "0.09", "--max", "0.03")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lower bound must be below")
}

func TestValidateCommand(t *testing.T) {
	out, _, err := execute(t, "validate", "../../examples/surgeon-married.yaml")

	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
}

func TestValidateCommand_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	doc := `loans:
  total_balance: -5
  weighted_interest_rate: 0.065
personal:
  agi: 64000
  filing_status: single
  state: CA
career:
  specialty: pediatrics
  current_stage: pgy1
preferences:
  discount_rate: 0.05
  pslf_confidence: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	_, errOut, err := execute(t, "validate", path)

	require.Error(t, err)
	assert.Contains(t, errOut, "  - loans.total_balance: must be positive")
}

func TestReferenceCommand(t *testing.T) {
	out, _, err := execute(t, "reference")
	require.NoError(t, err)
	assert.Contains(t, out, "poverty_guideline:")
	assert.Contains(t, out, "15060")

	out, _, err = execute(t, "reference", "--reference", "../../examples/reference/2025-update.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "15650")
	assert.Contains(t, out, "internal_medicine")
}
