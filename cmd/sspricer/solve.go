package main

import (
	"fmt"

	"github.com/rgehrsitz/sspricer/internal/breakeven"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) solveCmd() *cobra.Command {
	var rf rowFlags
	var price, minRate, maxRate string
	var maxIterations int
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve for the implied rate of a quoted price or the smallest payment that earns an offer",
		Long: `Runs the pricing engine backwards by bisection.

Targets:
  implied_rate   discount rate at which the stream is worth --price
  floor_amount   smallest payment amount whose high offer reaches the minimum offer`,
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

			constraints := breakeven.DefaultConstraints()
			if price != "" {
				p, err := decimal.NewFromString(price)
				if err != nil {
					return fmt.Errorf("invalid price %q: %w", price, err)
				}
				constraints.Price = &p
			}
			if minRate != "" {
				r, err := decimal.NewFromString(minRate)
				if err != nil {
					return fmt.Errorf("invalid min rate %q: %w", minRate, err)
				}
				constraints.MinRate = &r
			}
			if maxRate != "" {
				r, err := decimal.NewFromString(maxRate)
				if err != nil {
					return fmt.Errorf("invalid max rate %q: %w", maxRate, err)
				}
				constraints.MaxRate = &r
			}

			solver := breakeven.NewDefaultSolver(a.engine())
			result, err := solver.Solve(commandContext(cmd), breakeven.Request{
				Row:           row,
				Config:        cfg,
				Target:        breakeven.Target(a.setting(cmd, "target")),
				Constraints:   constraints,
				MaxIterations: maxIterations,
			})
			if err != nil {
				return err
			}
			a.logger.Debug("solver finished", zap.String("op", "main.solve"),
				zap.Int("iterations", result.Iterations), zap.Bool("converged", result.Success))

			data, err := breakeven.FormatResult(result, a.setting(cmd, "format"))
			if err != nil {
				return err
			}
			return writeString(cmd.OutOrStdout(), string(data))
		},
	}
	rf.register(cmd)
	cmd.Flags().StringP("target", "t", string(breakeven.TargetFloorAmount), "What to solve for (implied_rate, floor_amount)")
	cmd.Flags().StringVar(&price, "price", "", "Quoted purchase price, required for implied_rate")
	cmd.Flags().StringVar(&minRate, "min-rate", "", "Lower bound on the implied rate (default 0)")
	cmd.Flags().StringVar(&maxRate, "max-rate", "", "Upper bound on the implied rate (default 1)")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "Bisection step limit (0 uses the solver default)")
	cmd.Flags().StringP("format", "f", "console", "Output format (console, json)")
	return cmd
}
