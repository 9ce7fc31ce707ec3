package main

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/medloans/internal/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate an input file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		parser := config.NewInputParser()
		if _, err := parser.LoadFromFile(inputFile); err != nil {
			var verrs config.ValidationErrors
			if errors.As(err, &verrs) {
				for _, e := range verrs {
					fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", e.Error())
				}
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Input file %s is valid\n", inputFile)
		return nil
	},
}
