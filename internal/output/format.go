package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NoOfferLabel is shown instead of offers suppressed by the minimum-offer floor
const NoOfferLabel = "No Offer"

var hundred = decimal.NewFromInt(100)

// FormatCurrency formats a decimal as US dollars, e.g. "$1,234.56"
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatPercentage formats a decimal that is already a percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatRate formats a fractional rate as a percentage, e.g. 0.085 -> "8.500%"
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(hundred).StringFixed(3) + "%"
}

// FormatOffer formats an offer, or NoOfferLabel when it was suppressed
func FormatOffer(amount decimal.Decimal, noOffer bool) string {
	if noOffer {
		return NoOfferLabel
	}
	return FormatCurrency(amount)
}
