package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/sspricer/internal/calculation"
	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/rgehrsitz/sspricer/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (a *app) sensitivityCmd() *cobra.Command {
	var (
		rf         rowFlags
		parameters []string
		valueRange string
		steps      int
		all        bool
	)
	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Re-price a row while sweeping one pricing parameter",
		Long: `Re-price a row while sweeping one pricing parameter across a range.

Examples:
  # Sweep the base rate over its predefined range
  sspricer sensitivity --gender female --age 52 --start 2026-01-01 --end 2046-01-01 \
    --amount 1500 --parameter base_rate

  # Custom range and step count
  sspricer sensitivity ... --parameter min_spread --range 0.005-0.025 --steps 9

  # Every predefined parameter
  sspricer sensitivity ... --all`,
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
			formatter, err := output.GetSensitivityFormatter(a.setting(cmd, "format"))
			if err != nil {
				return err
			}

			var params []domain.SensitivityParameter
			if all {
				params = domain.GetCommonParameters()
			} else {
				for _, name := range parameters {
					p, err := resolveParameter(name, valueRange, steps, cmd.Flags().Changed("steps"))
					if err != nil {
						return err
					}
					params = append(params, p)
				}
			}
			if len(params) == 0 {
				return fmt.Errorf("at least one --parameter or --all is required")
			}

			analyzer := calculation.NewSensitivityAnalyzer(a.engine())
			for i, p := range params {
				analysis, err := analyzer.AnalyzeSingleParameter(row, cfg, p)
				if err != nil {
					return err
				}
				s, err := formatter.FormatSensitivityAnalysis(analysis)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				if err := writeString(cmd.OutOrStdout(), s); err != nil {
					return err
				}
			}
			return nil
		},
	}
	rf.register(cmd)
	cmd.Flags().StringSliceVar(&parameters, "parameter", []string{"base_rate"}, "Parameter to sweep ("+strings.Join(parameterNames(), ", ")+")")
	cmd.Flags().StringVar(&valueRange, "range", "", "Range to sweep (format: min-max)")
	cmd.Flags().IntVar(&steps, "steps", 5, "Number of values in the sweep")
	cmd.Flags().BoolVar(&all, "all", false, "Sweep every predefined parameter")
	cmd.Flags().StringP("format", "f", "console", "Output format (console, json)")
	return cmd
}

func parameterNames() []string {
	var names []string
	for _, p := range domain.GetCommonParameters() {
		names = append(names, p.Name)
	}
	return append(names, "min_adjustment", "max_adjustment")
}

// resolveParameter starts from the predefined parameter of that name and
// applies any range and step overrides. Parameters without a predefined
// range require --range.
func resolveParameter(name, valueRange string, steps int, stepsSet bool) (domain.SensitivityParameter, error) {
	p, ok := domain.LookupParameter(name)
	if !ok {
		switch name {
		case "min_adjustment", "max_adjustment":
			p = domain.SensitivityParameter{Name: name, Steps: 5, Unit: "dollars"}
		default:
			return p, fmt.Errorf("unknown parameter %q (available: %s)", name, strings.Join(parameterNames(), ", "))
		}
		if valueRange == "" {
			return p, fmt.Errorf("parameter %s requires --range", name)
		}
	}

	if valueRange != "" {
		lo, hi, err := parseRange(valueRange)
		if err != nil {
			return p, err
		}
		p.MinValue, p.MaxValue = lo, hi
	}
	if stepsSet {
		if steps < 1 {
			return p, fmt.Errorf("--steps must be at least 1")
		}
		p.Steps = steps
	}
	return p, nil
}

func parseRange(s string) (decimal.Decimal, decimal.Decimal, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid range %q (format: min-max)", s)
	}
	lo, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid range minimum %q: %w", parts[0], err)
	}
	hi, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid range maximum %q: %w", parts[1], err)
	}
	if lo.GreaterThan(hi) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("range minimum %s exceeds maximum %s", lo, hi)
	}
	return lo, hi, nil
}
