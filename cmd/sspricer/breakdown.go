package main

import (
	"github.com/rgehrsitz/sspricer/internal/calculation"
	"github.com/rgehrsitz/sspricer/internal/output"
	"github.com/spf13/cobra"
)

func (a *app) breakdownCmd() *cobra.Command {
	var rf rowFlags
	var preview int
	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Show every intermediate figure behind a row's price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := rf.row()
			if err != nil {
				return err
			}
			cfg, err := a.pricingConfig()
			if err != nil {
				return err
			}

			b, err := a.engine().Breakdown(row, cfg, preview)
			if err != nil {
				return err
			}
			data, err := output.FormatBreakdown(b, a.setting(cmd, "format"))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	rf.register(cmd)
	cmd.Flags().IntVar(&preview, "preview", calculation.DefaultSchedulePreview, "Schedule entries to show")
	cmd.Flags().StringP("format", "f", "console", "Output format (console, json)")
	return cmd
}
