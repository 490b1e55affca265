package breakeven

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/sspricer/internal/output"
)

// TableFormatter formats solver results as a table
type TableFormatter struct{}

// Format creates a formatted table of the result
func (f *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN SOLVER RESULTS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")

	if result.RowID != "" {
		sb.WriteString(fmt.Sprintf("Row:                  %s\n", result.RowID))
	}
	sb.WriteString(fmt.Sprintf("Target:               %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Adjusted rate:        %s\n", output.FormatRate(result.AdjustedRate)))

	switch result.Target {
	case TargetImpliedRate:
		sb.WriteString(fmt.Sprintf("Quoted price:         %s\n", output.FormatCurrency(result.Price)))
		if result.ImpliedRate != nil {
			sb.WriteString(fmt.Sprintf("Implied rate:         %s\n", output.FormatRate(*result.ImpliedRate)))
		}
		if result.SpreadOverAdjusted != nil {
			sb.WriteString(fmt.Sprintf("Spread over adjusted: %s\n", output.FormatRate(*result.SpreadOverAdjusted)))
		}
	case TargetFloorAmount:
		sb.WriteString(fmt.Sprintf("Minimum offer:        %s\n", output.FormatCurrency(result.Price)))
		if result.FloorAmount != nil {
			sb.WriteString(fmt.Sprintf("Floor amount:         %s per payment\n", output.FormatCurrency(*result.FloorAmount)))
		}
	}

	if p := result.Pricing; p != nil {
		sb.WriteString("\n" + strings.Repeat("-", 60) + "\n")
		sb.WriteString(fmt.Sprintf("Low offer:            %s\n", output.FormatOffer(p.LowOffer, p.NoOffer)))
		sb.WriteString(fmt.Sprintf("High offer:           %s\n", output.FormatOffer(p.HighOffer, p.NoOffer)))
		sb.WriteString(fmt.Sprintf("Death benefit:        %s\n", output.FormatCurrency(p.DeathBenefit)))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Iterations: %d  %s\n", result.Iterations, result.ConvergenceInfo))
	return sb.String()
}

// FormatResult renders result as console text or indented JSON
func FormatResult(result *Result, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "console", "table", "text":
		return []byte((&TableFormatter{}).Format(result)), nil
	case "json":
		return output.MarshalJSON(result, true)
	default:
		return nil, fmt.Errorf("unsupported solver format: %s", format)
	}
}
