package calculation

import (
	"time"

	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
)

// GuaranteedNPV builds the schedule and discounts every payment back to the
// start date at discountRate.
func GuaranteedNPV(amount decimal.Decimal, start, end time.Time, frequency domain.PaymentFrequency, increasePercent, discountRate decimal.Decimal) decimal.Decimal {
	ref := CalendarDate(start)
	npv := decimal.Zero
	for entry := range BuildSchedule(amount, start, end, frequency, increasePercent) {
		npv = npv.Add(PresentValue(entry.Amount, MonthsBetween(ref, entry.Date), discountRate))
	}
	return npv
}
