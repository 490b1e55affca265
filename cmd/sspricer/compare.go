package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/sspricer/internal/compare"
	"github.com/rgehrsitz/sspricer/internal/config"
	"github.com/rgehrsitz/sspricer/internal/output"
	"github.com/spf13/cobra"
)

func (a *app) compareCmd() *cobra.Command {
	var (
		templates     string
		altConfigs    []string
		listTemplates bool
		showRows      bool
	)
	cmd := &cobra.Command{
		Use:   "compare [rows-file]",
		Short: "Price a row file under alternative pricing configurations",
		Long: `Price a row file under the base configuration and under each alternative,
then report aggregate and per-row differences.

Examples:
  sspricer compare leads.yaml --with rates_up_100bp,tight_spreads
  sspricer compare leads.yaml --config desk.yaml --alt-config aggressive.yaml
  sspricer compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if listTemplates {
				all := compare.BuiltInTemplates()
				fmt.Fprintln(out, "Available templates:")
				for _, name := range compare.TemplateNames() {
					fmt.Fprintf(out, "  %-18s %s\n", name, all[name].Description)
				}
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("a rows file is required")
			}

			parser := config.NewInputParser()
			rows, err := parser.LoadRows(args[0])
			if err != nil {
				return err
			}
			cfg, err := a.pricingConfig()
			if err != nil {
				return err
			}

			base := compare.Scenario{Name: "base", Description: "Base pricing configuration", Config: cfg}
			if path := a.v.GetString("config"); path != "" {
				base.Name = scenarioName(path)
			}

			var names []string
			for _, n := range strings.Split(templates, ",") {
				if n = strings.TrimSpace(n); n != "" {
					names = append(names, n)
				}
			}
			alternatives, err := compare.TemplateScenarios(base, names)
			if err != nil {
				return err
			}
			for _, path := range altConfigs {
				alt, err := parser.LoadPricingConfig(path)
				if err != nil {
					return fmt.Errorf("failed to load alternative config %s: %w", path, err)
				}
				alternatives = append(alternatives, compare.Scenario{
					Name:        scenarioName(path),
					Description: "Configuration from " + path,
					Config:      *alt,
				})
			}
			if len(alternatives) == 0 {
				return fmt.Errorf("nothing to compare: use --with or --alt-config")
			}

			ce := compare.NewCompareEngine(a.engine())
			set, err := ce.Compare(commandContext(cmd), rows, base, alternatives)
			if err != nil {
				return err
			}
			set.ConfigPath = a.v.GetString("config")

			format := a.setting(cmd, "format")
			switch strings.ToLower(format) {
			case "table", "console", "":
				tf := &compare.TableFormatter{ShowRows: showRows}
				return writeString(out, tf.Format(set))
			case "compact":
				tf := &compare.TableFormatter{}
				return writeString(out, tf.FormatCompact(set))
			case "csv":
				s, err := (&compare.CSVFormatter{}).Format(set)
				if err != nil {
					return err
				}
				return writeString(out, s)
			case "json":
				data, err := output.MarshalJSON(set, true)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			default:
				return fmt.Errorf("unsupported format %q (available: table, compact, csv, json)", format)
			}
		},
	}
	cmd.Flags().StringVar(&templates, "with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringSliceVar(&altConfigs, "alt-config", nil, "Alternative pricing configuration file (repeatable)")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List all available comparison templates")
	cmd.Flags().BoolVar(&showRows, "show-rows", false, "Include per-row differences in the table")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	return cmd
}

func scenarioName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
