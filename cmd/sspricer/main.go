package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rgehrsitz/sspricer/internal/calculation"
	"github.com/rgehrsitz/sspricer/internal/config"
	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/rgehrsitz/sspricer/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries the settings and logger shared by every command
type app struct {
	v      *viper.Viper
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "sspricer",
		Short: "Structured settlement pricing CLI",
		Long: `Prices structured settlement payment streams: purchase offer range,
death benefit and payment count for guaranteed and life-contingent rows.

Settings may also be supplied as SSPRICER_* environment variables,
for example SSPRICER_CONFIG or SSPRICER_LOG_LEVEL.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initializeLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Pricing configuration file (built-in defaults when empty)")
	pf.String("log-level", "warn", "Log level (debug, info, warn, error)")
	pf.String("log-format", "console", "Log format (console, json)")
	pf.String("log-file", "", "Write logs to this file instead of stderr")
	pf.Bool("debug", false, "Log intermediate figures for every priced row")
	_ = a.v.BindPFlags(pf)

	a.v.SetEnvPrefix("SSPRICER")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		a.priceCmd(),
		a.batchCmd(),
		a.breakdownCmd(),
		a.sensitivityCmd(),
		a.compareCmd(),
		a.solveCmd(),
		a.validateCmd(),
		a.serveCmd(),
		versionCmd(),
	)
	return root
}

// initializeLogger builds the zap logger from flags and environment
func (a *app) initializeLogger() error {
	logger, err := logging.New(logging.Options{
		Level:      a.v.GetString("log-level"),
		Format:     a.v.GetString("log-format"),
		OutputFile: a.v.GetString("log-file"),
	})
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// setting binds a command-local flag to viper and reads it back, so the
// flag can also come from SSPRICER_<NAME>
func (a *app) setting(cmd *cobra.Command, name string) string {
	if f := cmd.Flags().Lookup(name); f != nil {
		_ = a.v.BindPFlag(name, f)
	}
	return a.v.GetString(name)
}

func (a *app) pricingConfig() (domain.PricingConfig, error) {
	path := a.v.GetString("config")
	if path == "" {
		return config.DefaultPricingConfig(), nil
	}
	cfg, err := config.NewInputParser().LoadPricingConfig(path)
	if err != nil {
		return domain.PricingConfig{}, err
	}
	a.logger.Debug("loaded pricing configuration", zap.String("op", "main.pricingConfig"), zap.String("path", path))
	if inverted := cfg.InvertedBounds(); len(inverted) > 0 {
		a.logger.Warn("pricing configuration has min above max",
			zap.String("op", "main.pricingConfig"), zap.String("path", path), zap.Strings("pairs", inverted))
	}
	return *cfg, nil
}

func (a *app) engine() *calculation.PricingEngine {
	engine := calculation.NewPricingEngine()
	engine.SetLogger(logging.NewEngineLogger(a.logger, "calculation"))
	engine.Debug = a.v.GetBool("debug")
	return engine
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sspricer %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
