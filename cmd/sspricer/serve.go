package main

import (
	"github.com/rgehrsitz/sspricer/internal/server"
	"github.com/spf13/cobra"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pricing API over HTTP",
		Long: `Serve the pricing API over HTTP until interrupted.

Endpoints:
  POST /api/price       price one row
  POST /api/batch       price a list of rows
  POST /api/breakdown   intermediate figures for one row
  GET  /api/config      the active pricing configuration
  GET  /api/health      liveness and version`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.pricingConfig()
			if err != nil {
				return err
			}
			h := server.NewHandler(cfg, a.logger, version)
			if n, _ := cmd.Flags().GetInt("max-batch-rows"); n > 0 {
				h.MaxBatchRows = n
			}

			opts := server.DefaultOptions()
			opts.Address = a.setting(cmd, "addr")
			return server.ListenAndServe(commandContext(cmd), h, opts)
		},
	}
	cmd.Flags().String("addr", server.DefaultOptions().Address, "Listen address (also SSPRICER_ADDR)")
	cmd.Flags().Int("max-batch-rows", server.DefaultMaxBatchRows, "Largest batch accepted by /api/batch")
	return cmd
}
