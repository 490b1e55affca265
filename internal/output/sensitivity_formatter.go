package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityFormatter renders a single-parameter sensitivity sweep
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error)
	Name() string
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct{}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	if analysis == nil || len(analysis.Results) == 0 {
		return "", fmt.Errorf("no results in analysis")
	}

	var buf bytes.Buffer
	param := analysis.Parameter

	fmt.Fprintf(&buf, "SENSITIVITY ANALYSIS: %s\n", strings.ToUpper(strings.ReplaceAll(param.Name, "_", " ")))
	fmt.Fprintln(&buf, strings.Repeat("=", 65))
	fmt.Fprintf(&buf, "Base Case: %s = %s\n", param.Name, formatParameterValue(param.BaseValue, param.Unit))
	fmt.Fprintf(&buf, "Range: %s to %s (%d steps)\n",
		formatParameterValue(param.MinValue, param.Unit), formatParameterValue(param.MaxValue, param.Unit), param.Steps)
	if param.Description != "" {
		fmt.Fprintf(&buf, "Description: %s\n", param.Description)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-14s %16s %16s %16s %9s\n", param.Name, "Low Offer", "High Offer", "Death Benefit", "Change")
	fmt.Fprintln(&buf, strings.Repeat("-", 75))
	for _, r := range analysis.Results {
		value := formatParameterValue(r.ParameterValue, param.Unit)
		if r.ParameterValue.Equal(param.BaseValue) {
			value += " *"
		}
		fmt.Fprintf(&buf, "%-14s %16s %16s %16s %9s\n",
			value,
			FormatOffer(r.LowOffer, r.NoOffer),
			FormatOffer(r.HighOffer, r.NoOffer),
			FormatCurrency(r.DeathBenefit),
			FormatPercentage(r.HighChangePct),
		)
	}
	fmt.Fprintln(&buf)

	s := analysis.Summary
	fmt.Fprintln(&buf, "SUMMARY")
	fmt.Fprintf(&buf, "High offer range:     %s to %s\n", FormatCurrency(s.HighOfferMin), FormatCurrency(s.HighOfferMax))
	fmt.Fprintf(&buf, "Death benefit range:  %s to %s\n", FormatCurrency(s.DeathBenefitMin), FormatCurrency(s.DeathBenefitMax))
	fmt.Fprintf(&buf, "Swing:                %s\n", FormatPercentage(s.SwingPct))
	if s.NoOfferCount > 0 {
		fmt.Fprintf(&buf, "No-offer points:      %d\n", s.NoOfferCount)
	}
	fmt.Fprintf(&buf, "Risk level:           %s\n", s.RiskLevel)
	return buf.String(), nil
}

// SensitivityJSONFormatter formats sensitivity analysis output as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	data, err := MarshalJSON(analysis, true)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetSensitivityFormatter returns the sensitivity formatter for format
func GetSensitivityFormatter(format string) (SensitivityFormatter, error) {
	switch strings.ToLower(format) {
	case "", "console", "table", "text":
		return SensitivityConsoleFormatter{}, nil
	case "json":
		return SensitivityJSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported sensitivity format: %s", format)
	}
}

func formatParameterValue(v decimal.Decimal, unit string) string {
	switch unit {
	case "rate":
		return FormatRate(v)
	case "dollars":
		return FormatCurrency(v)
	case "percent":
		return FormatPercentage(v)
	default:
		return v.String()
	}
}
