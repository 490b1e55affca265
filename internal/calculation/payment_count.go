package calculation

import (
	"time"

	"github.com/rgehrsitz/sspricer/internal/domain"
)

// PaymentCount returns the number of payments BuildSchedule would produce
// for the same dates and frequency. Lump sums always count one; missing
// inputs count zero.
func PaymentCount(start, end time.Time, frequency domain.PaymentFrequency) int {
	if start.IsZero() || end.IsZero() || frequency == "" {
		return 0
	}
	n := 0
	for range paymentDates(start, end, frequency) {
		n++
	}
	return n
}

// PaymentCountISO is PaymentCount over ISO date strings. Blank or
// unparseable input counts zero.
func PaymentCountISO(startDate, endDate, frequency string) int {
	if startDate == "" || endDate == "" || frequency == "" {
		return 0
	}
	start, err := ParseDate(startDate)
	if err != nil {
		return 0
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return 0
	}
	return PaymentCount(start, end, domain.ParsePaymentFrequency(frequency))
}
