package main

import (
	"fmt"

	"github.com/rgehrsitz/sspricer/internal/calculation"
	"github.com/rgehrsitz/sspricer/internal/config"
	"github.com/spf13/cobra"
)

func (a *app) validateCmd() *cobra.Command {
	var rowsFile string
	cmd := &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate a pricing configuration file and, optionally, a row file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			parser := config.NewInputParser()
			cfg, err := parser.LoadPricingConfig(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Configuration file %s is valid\n", args[0])
			for _, name := range cfg.InvertedBounds() {
				fmt.Fprintf(out, "Warning: %s.min exceeds %s.max, low offers may exceed high offers\n", name, name)
			}

			if rowsFile == "" {
				return nil
			}
			rows, err := parser.LoadRows(rowsFile)
			if err != nil {
				return err
			}
			invalid := 0
			for _, row := range rows {
				if _, err := calculation.NormalizeRow(row, *cfg); err != nil {
					invalid++
					fmt.Fprintf(out, "  %v\n", err)
				}
			}
			fmt.Fprintf(out, "Rows file %s: %d rows, %d invalid\n", rowsFile, len(rows), invalid)
			if invalid > 0 {
				return fmt.Errorf("%d invalid rows in %s", invalid, rowsFile)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&rowsFile, "rows", "", "Row file to check against the configuration")
	return cmd
}
