package main

import (
	"github.com/rgehrsitz/medloans/internal/config"
	"github.com/spf13/cobra"
)

var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Print the effective reference tables as YAML",
	Long: `Print the poverty guideline, plan parameters, salaries, tax tables and
refinance offers the calculator uses. With --reference the override file is
merged over the built-in tables first, so the output shows what a comparison
would actually run against.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		referenceFile, _ := cmd.Flags().GetString("reference")
		ref, err := config.LoadReferenceData(referenceFile)
		if err != nil {
			return err
		}

		data, err := config.MarshalReferenceData(ref)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}
