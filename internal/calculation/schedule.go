package calculation

import (
	"iter"
	"slices"
	"time"

	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// amountPrecision bounds the digits carried by an escalating payment
const amountPrecision int32 = 12

// CalendarDate truncates t to midnight UTC of its calendar day
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO YYYY-MM-DD date
func ParseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateLayout, s)
}

// AddMonthsClamped moves t forward by months keeping the day of month, but
// clamps to the last day when the target month is shorter (Jan 31 -> Feb 28).
func AddMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := daysInMonth(first); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// paymentDates yields every payment date from start through end inclusive.
// Each date is stepped from the previous one, so a clamped day carries
// forward. Both the schedule builder and the payment counter use it.
func paymentDates(start, end time.Time, frequency domain.PaymentFrequency) iter.Seq[time.Time] {
	start, end = CalendarDate(start), CalendarDate(end)
	return func(yield func(time.Time) bool) {
		if frequency.IsLumpSum() {
			yield(start)
			return
		}
		step := frequency.StepMonths()
		for d := start; !d.After(end); d = AddMonthsClamped(d, step) {
			if !yield(d) {
				return
			}
		}
	}
}

// BuildSchedule returns the payment schedule as a lazy sequence. Each range
// over the result starts from scratch. The running amount grows by
// increasePercent once every full year of payments, effective from the
// following payment.
func BuildSchedule(amount decimal.Decimal, start, end time.Time, frequency domain.PaymentFrequency, increasePercent decimal.Decimal) iter.Seq[domain.ScheduleEntry] {
	perYear := frequency.PaymentsPerYear()
	growth := one.Add(increasePercent.Div(hundred))
	return func(yield func(domain.ScheduleEntry) bool) {
		payment := amount
		i := 0
		for d := range paymentDates(start, end, frequency) {
			if !yield(domain.ScheduleEntry{Date: d, Amount: payment}) {
				return
			}
			if (i+1)%perYear == 0 {
				payment = payment.Mul(growth).Round(amountPrecision)
			}
			i++
		}
	}
}

// CollectSchedule materialises BuildSchedule into a slice
func CollectSchedule(amount decimal.Decimal, start, end time.Time, frequency domain.PaymentFrequency, increasePercent decimal.Decimal) domain.Schedule {
	return domain.Schedule(slices.Collect(BuildSchedule(amount, start, end, frequency, increasePercent)))
}
