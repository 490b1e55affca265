package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rgehrsitz/sspricer/internal/calculation"
	"github.com/rgehrsitz/sspricer/internal/config"
	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/rgehrsitz/sspricer/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) priceCmd() *cobra.Command {
	var rf rowFlags
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a single payment stream",
		Example: `  sspricer price --gender male --age 45 --type LCP --frequency monthly \
    --start 2026-05-01 --end 2054-05-01 --amount 4090.86`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := rf.row()
			if err != nil {
				return err
			}
			cfg, err := a.pricingConfig()
			if err != nil {
				return err
			}
			formatter, err := formatterFor(a.setting(cmd, "format"))
			if err != nil {
				return err
			}

			res, err := a.engine().PriceRow(row, cfg)
			if err != nil {
				return err
			}
			batch := &domain.BatchResult{Rows: []domain.RowResult{{Row: row, Result: res}}}
			batch.Summarize()
			return output.WriteFormatted(cmd.OutOrStdout(), formatter, batch)
		},
	}
	rf.register(cmd)
	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	return cmd
}

func (a *app) batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [rows-file]",
		Short: "Price every row in a YAML row file",
		Long: `Price every row in a YAML row file. Invalid rows are reported alongside
the priced ones and do not stop the batch.

With --changed-since, only rows that are new or whose pricing inputs differ
from the previous row file are priced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			rows, err := parser.LoadRows(args[0])
			if err != nil {
				return err
			}
			cfg, err := a.pricingConfig()
			if err != nil {
				return err
			}
			formatter, err := formatterFor(a.setting(cmd, "format"))
			if err != nil {
				return err
			}

			if prevFile, _ := cmd.Flags().GetString("changed-since"); prevFile != "" {
				prev, err := parser.LoadRows(prevFile)
				if err != nil {
					return fmt.Errorf("failed to load previous rows: %w", err)
				}
				rows = rowsToReprice(prev, rows)
				a.logger.Info("repricing changed rows",
					zap.String("op", "main.batch"),
					zap.String("previous", prevFile),
					zap.Int("rows", len(rows)),
				)
			}

			engine := a.engine()
			if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
				engine.Workers = workers
			}
			batch, err := engine.PriceBatch(commandContext(cmd), rows, cfg)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if path, _ := cmd.Flags().GetString("output"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				w = f
			}
			return output.WriteFormatted(w, formatter, batch)
		},
	}
	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().StringP("output", "o", "", "Write results to this file instead of stdout")
	cmd.Flags().Int("workers", 0, "Parallel pricing workers (number of CPUs when 0)")
	cmd.Flags().String("changed-since", "", "Previous row file; price only new or changed rows")
	return cmd
}

// rowsToReprice keeps rows that are absent from prev or whose pricing
// inputs changed
func rowsToReprice(prev, next []domain.PricingRow) []domain.PricingRow {
	known := make(map[string]bool, len(prev))
	for _, r := range prev {
		known[r.ID] = true
	}
	changed := make(map[string]bool)
	for _, id := range calculation.RowsNeedingRecalculation(prev, next) {
		changed[id] = true
	}

	out := make([]domain.PricingRow, 0, len(next))
	for _, r := range next {
		if !known[r.ID] || changed[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

func formatterFor(name string) (output.Formatter, error) {
	f := output.GetFormatterByName(name)
	if f == nil {
		return nil, fmt.Errorf("unsupported format %q (available: %s)", name, strings.Join(output.AvailableFormatterNames(), ", "))
	}
	return f, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func writeString(w io.Writer, s string) error {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}
