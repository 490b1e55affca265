package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/sspricer/internal/calculation"
	"github.com/rgehrsitz/sspricer/internal/domain"
)

// FormatBreakdown renders a pricing breakdown as "console" or "json"
func FormatBreakdown(b *calculation.Breakdown, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return MarshalJSON(b, true)
	case "", "console", "table", "text":
		return formatBreakdownConsole(b), nil
	default:
		return nil, fmt.Errorf("unsupported breakdown format: %s", format)
	}
}

func formatBreakdownConsole(b *calculation.Breakdown) []byte {
	var buf bytes.Buffer
	in := b.Input

	fmt.Fprintln(&buf, "PRICING BREAKDOWN")
	fmt.Fprintln(&buf, strings.Repeat("=", 65))
	if in.RowID != "" {
		fmt.Fprintf(&buf, "Row:                  %s\n", in.RowID)
	}
	fmt.Fprintf(&buf, "Payee:                %s, age %d (band %s)\n", in.Gender, in.Age, b.AgeBand)
	fmt.Fprintf(&buf, "Stream:               %s %s of %s\n", in.PaymentType, in.Frequency, FormatCurrency(in.Amount))
	fmt.Fprintf(&buf, "Period:               %s to %s\n", in.Start.Format(domain.DateLayout), in.End.Format(domain.DateLayout))
	fmt.Fprintf(&buf, "Annual increase:      %s\n", FormatPercentage(in.AnnualIncrease))
	fmt.Fprintf(&buf, "Payments:             %d totalling %s\n", b.Result.PaymentCount, FormatCurrency(b.ScheduleTotal))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "RATES")
	fmt.Fprintln(&buf, strings.Repeat("-", 65))
	fmt.Fprintf(&buf, "Base rate:            %s\n", FormatRate(b.BaseRate))
	for _, c := range b.Risk.Components {
		fmt.Fprintf(&buf, "  %-19s %s\n", c.Key+":", FormatRate(c.Delta))
	}
	fmt.Fprintf(&buf, "Risk adjustment:      %s\n", FormatRate(b.Risk.Adjustment))
	fmt.Fprintf(&buf, "Adjusted rate:        %s\n", FormatRate(b.AdjustedRate))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "OFFERS")
	fmt.Fprintln(&buf, strings.Repeat("-", 65))
	fmt.Fprintf(&buf, "Low:   NPV %s at %s -> %s\n", FormatCurrency(b.Offer.LowNPV), FormatRate(b.Offer.LowRate), FormatCurrency(b.Offer.Low))
	fmt.Fprintf(&buf, "High:  NPV %s at %s -> %s\n", FormatCurrency(b.Offer.HighNPV), FormatRate(b.Offer.HighRate), FormatCurrency(b.Offer.High))
	fmt.Fprintf(&buf, "Minimum offer:        %s\n", FormatCurrency(b.MinimumOffer))
	if b.Result.NoOffer {
		fmt.Fprintf(&buf, "Result:               %s\n", NoOfferLabel)
	} else {
		fmt.Fprintf(&buf, "Result:               %s - %s\n", FormatCurrency(b.Result.LowOffer), FormatCurrency(b.Result.HighOffer))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "DEATH BENEFIT")
	fmt.Fprintln(&buf, strings.Repeat("-", 65))
	fmt.Fprintf(&buf, "Family protection:    NPV %s at %s\n", FormatCurrency(b.FamilyProtectionNPV), FormatRate(b.FamilyProtectionRate))
	if b.Exposure.PeakIndex >= 0 {
		fmt.Fprintf(&buf, "Peak exposure:        %s on %s (payment %d)\n",
			FormatCurrency(b.Exposure.MaxPV), b.Exposure.PeakDate.Format(domain.DateLayout), b.Exposure.PeakIndex+1)
	}
	fmt.Fprintf(&buf, "Death benefit:        %s\n", FormatCurrency(b.Result.DeathBenefit))
	fmt.Fprintln(&buf)

	if len(b.SchedulePreview) > 0 {
		fmt.Fprintf(&buf, "SCHEDULE (first %d)\n", len(b.SchedulePreview))
		fmt.Fprintln(&buf, strings.Repeat("-", 65))
		for i, e := range b.SchedulePreview {
			fmt.Fprintf(&buf, "%4d  %s  %14s\n", i+1, e.Date.Format(domain.DateLayout), FormatCurrency(e.Amount))
		}
	}
	return buf.Bytes()
}
