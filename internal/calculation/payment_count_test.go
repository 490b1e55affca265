package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPaymentCount_MatchesScheduleLength(t *testing.T) {
	ranges := [][2]string{
		{"2026-05-01", "2054-05-01"},
		{"2026-01-31", "2027-03-30"},
		{"2024-02-29", "2032-02-28"},
		{"2026-06-15", "2026-06-15"},
		{"2026-06-15", "2026-06-14"},
		{"2030-01-01", "2026-01-01"},
	}
	frequencies := []domain.PaymentFrequency{
		domain.FrequencyMonthly, domain.FrequencyQuarterly, domain.FrequencySemiannually,
		domain.FrequencySemiAnnually, domain.FrequencyAnnually, domain.FrequencyLumpSum, "Weekly",
	}

	for _, r := range ranges {
		start, end := date(t, r[0]), date(t, r[1])
		for _, f := range frequencies {
			want := len(CollectSchedule(decimal.NewFromInt(1), start, end, f, decimal.Zero))
			assert.Equal(t, want, PaymentCount(start, end, f), "%s..%s %s", r[0], r[1], f)
		}
	}
}

func TestPaymentCount(t *testing.T) {
	start, end := date(t, "2026-05-01"), date(t, "2054-05-01")

	assert.Equal(t, 337, PaymentCount(start, end, domain.FrequencyMonthly))
	assert.Equal(t, 113, PaymentCount(start, end, domain.FrequencyQuarterly))
	assert.Equal(t, 29, PaymentCount(start, end, domain.FrequencyAnnually))
	assert.Equal(t, 1, PaymentCount(start, end, domain.FrequencyLumpSum))
	assert.Equal(t, 1, PaymentCount(end, start, domain.FrequencyLumpSum))

	assert.Equal(t, 0, PaymentCount(time.Time{}, end, domain.FrequencyMonthly))
	assert.Equal(t, 0, PaymentCount(start, time.Time{}, domain.FrequencyMonthly))
	assert.Equal(t, 0, PaymentCount(start, end, ""))
}

func TestPaymentCountISO(t *testing.T) {
	assert.Equal(t, 337, PaymentCountISO("2026-05-01", "2054-05-01", "Monthly"))
	assert.Equal(t, 57, PaymentCountISO("2026-05-01", "2054-05-01", "semi-annually"))
	assert.Equal(t, 1, PaymentCountISO("2026-05-01", "2054-05-01", "lump sum"))

	assert.Equal(t, 0, PaymentCountISO("", "2054-05-01", "Monthly"))
	assert.Equal(t, 0, PaymentCountISO("2026-05-01", "", "Monthly"))
	assert.Equal(t, 0, PaymentCountISO("2026-05-01", "2054-05-01", ""))
	assert.Equal(t, 0, PaymentCountISO("05/01/2026", "2054-05-01", "Monthly"))
}
