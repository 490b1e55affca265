package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/sspricer/internal/domain"
)

// ConsoleFormatter renders a batch as an aligned text table
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results *domain.BatchResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "STRUCTURED SETTLEMENT PRICING")
	fmt.Fprintln(&buf, strings.Repeat("=", 110))
	fmt.Fprintf(&buf, "%-38s %-4s %-13s %8s %16s %16s %16s\n",
		"Row", "Type", "Frequency", "Payments", "Low Offer", "High Offer", "Death Benefit")
	fmt.Fprintln(&buf, strings.Repeat("-", 110))

	for _, rr := range results.Rows {
		label := rowLabel(rr.Row)
		if rr.Result == nil {
			fmt.Fprintf(&buf, "%-38s %-4s INVALID: %s\n", label, rr.Row.PaymentType, rr.Error)
			continue
		}
		res := rr.Result
		fmt.Fprintf(&buf, "%-38s %-4s %-13s %8d %16s %16s %16s\n",
			label,
			rr.Row.PaymentType,
			frequencyLabel(rr.Row.Frequency),
			res.PaymentCount,
			FormatOffer(res.LowOffer, res.NoOffer),
			FormatOffer(res.HighOffer, res.NoOffer),
			FormatCurrency(res.DeathBenefit),
		)
	}

	s := results.Summary
	fmt.Fprintln(&buf, strings.Repeat("-", 110))
	fmt.Fprintf(&buf, "Rows: %d  Offers: %d  No Offer: %d  Invalid: %d\n", s.Total, s.Offers, s.NoOffers, s.Invalid)
	return buf.Bytes(), nil
}

func rowLabel(r domain.PricingRow) string {
	name := strings.TrimSpace(r.FirstName + " " + r.LastName)
	label := r.ID
	if name != "" {
		label = name
		if r.ID != "" {
			label = fmt.Sprintf("%s (%s)", name, shortID(r.ID))
		}
	}
	if len(label) > 38 {
		label = label[:35] + "..."
	}
	return label
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func frequencyLabel(f domain.PaymentFrequency) string {
	if f == "" {
		return "(default)"
	}
	return string(f)
}
