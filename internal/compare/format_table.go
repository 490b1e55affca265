package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct {
	ShowRows bool // include the per-row deltas
}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("PRICING CONFIGURATION COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 25
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Low Offers",
		numWidth, "High Offers",
		numWidth, "Death Benefit",
		numWidth, "Offers"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  (%s)\n", alt.Description))
			}
			sb.WriteString(fmt.Sprintf("  High Offers:      %s$%s (%s%%)\n",
				tf.deltaSymbol(alt.HighDiffFromBase),
				tf.formatDecimal(alt.HighDiffFromBase.Abs()),
				alt.HighPctFromBase.StringFixed(1)))
			sb.WriteString(fmt.Sprintf("  Low Offers:       %s$%s\n",
				tf.deltaSymbol(alt.LowDiffFromBase),
				tf.formatDecimal(alt.LowDiffFromBase.Abs())))
			if !alt.DeathBenefitDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Death Benefit:    %s$%s\n",
					tf.deltaSymbol(alt.DeathBenefitDiffFromBase),
					tf.formatDecimal(alt.DeathBenefitDiffFromBase.Abs())))
			}
			if alt.OfferCountDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Offers:           %+d\n", alt.OfferCountDiff))
			}

			if tf.ShowRows {
				for _, d := range alt.RowDeltas {
					status := ""
					if d.OfferStatusChanged() {
						status = "  offer status changed"
					}
					sb.WriteString(fmt.Sprintf("    %-36s %s$%s%s\n",
						tf.truncate(d.RowID, 36),
						tf.deltaSymbol(d.HighOfferDiff),
						tf.formatDecimal(d.HighOfferDiff.Abs()),
						status))
				}
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*d\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "$"+tf.formatDecimal(result.TotalLowOffer),
		numWidth, "$"+tf.formatDecimal(result.TotalHighOffer),
		numWidth, "$"+tf.formatDecimal(result.TotalDeathBenefit),
		numWidth, result.Offers)
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns a + or - symbol for deltas
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.HighDiffFromBase.IsPositive() {
			change = fmt.Sprintf("+$%s", tf.formatDecimal(alt.HighDiffFromBase))
		} else if alt.HighDiffFromBase.IsNegative() {
			change = fmt.Sprintf("-$%s", tf.formatDecimal(alt.HighDiffFromBase.Abs()))
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
