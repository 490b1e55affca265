package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func scheduleDates(s domain.Schedule) []string {
	out := make([]string, len(s))
	for i, e := range s {
		out[i] = e.Date.Format(domain.DateLayout)
	}
	return out
}

func TestBuildSchedule_MonthlyThroughEndDate(t *testing.T) {
	s := CollectSchedule(dec("4090.86"), date(t, "2026-05-01"), date(t, "2054-05-01"), domain.FrequencyMonthly, decimal.Zero)

	require.Len(t, s, 28*12+1, "end date is inclusive")
	assert.Equal(t, "2026-05-01", s[0].Date.Format(domain.DateLayout))
	assert.Equal(t, "2054-05-01", s[len(s)-1].Date.Format(domain.DateLayout))
	for _, e := range s {
		assert.True(t, e.Amount.Equal(dec("4090.86")))
	}
	assert.True(t, s.Total().Equal(dec("4090.86").Mul(decimal.NewFromInt(337))))
}

func TestBuildSchedule_Frequencies(t *testing.T) {
	start, end := date(t, "2026-01-01"), date(t, "2026-12-31")

	tests := []struct {
		frequency domain.PaymentFrequency
		want      []string
	}{
		{domain.FrequencyQuarterly, []string{"2026-01-01", "2026-04-01", "2026-07-01", "2026-10-01"}},
		{domain.FrequencySemiannually, []string{"2026-01-01", "2026-07-01"}},
		{domain.FrequencySemiAnnually, []string{"2026-01-01", "2026-07-01"}},
		{domain.FrequencyAnnually, []string{"2026-01-01"}},
		{domain.FrequencyLumpSum, []string{"2026-01-01"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.frequency), func(t *testing.T) {
			s := CollectSchedule(decimal.NewFromInt(100), start, end, tt.frequency, decimal.Zero)
			assert.Equal(t, tt.want, scheduleDates(s))
		})
	}
}

func TestBuildSchedule_UnknownFrequencyStepsMonthly(t *testing.T) {
	s := CollectSchedule(decimal.NewFromInt(100), date(t, "2026-01-01"), date(t, "2026-03-01"), "Fortnightly", decimal.Zero)
	assert.Equal(t, []string{"2026-01-01", "2026-02-01", "2026-03-01"}, scheduleDates(s))
}

func TestBuildSchedule_EndOfMonthClampCarriesForward(t *testing.T) {
	s := CollectSchedule(decimal.NewFromInt(100), date(t, "2026-01-31"), date(t, "2026-04-30"), domain.FrequencyMonthly, decimal.Zero)
	assert.Equal(t, []string{"2026-01-31", "2026-02-28", "2026-03-28", "2026-04-28"}, scheduleDates(s))
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		from   string
		months int
		want   string
	}{
		{"2024-01-31", 1, "2024-02-29"},
		{"2026-01-31", 1, "2026-02-28"},
		{"2026-03-31", 3, "2026-06-30"},
		{"2026-08-31", 6, "2027-02-28"},
		{"2026-05-15", 12, "2027-05-15"},
		{"2026-11-30", 3, "2027-02-28"},
	}
	for _, tt := range tests {
		got := AddMonthsClamped(date(t, tt.from), tt.months)
		assert.Equal(t, tt.want, got.Format(domain.DateLayout), "%s + %d", tt.from, tt.months)
	}
}

func TestBuildSchedule_Escalation(t *testing.T) {
	t.Run("annual", func(t *testing.T) {
		s := CollectSchedule(decimal.NewFromInt(1000), date(t, "2026-01-01"), date(t, "2028-01-01"), domain.FrequencyAnnually, decimal.NewFromInt(3))
		require.Len(t, s, 3)
		assert.True(t, s[0].Amount.Equal(dec("1000")))
		assert.True(t, s[1].Amount.Equal(dec("1030")))
		assert.True(t, s[2].Amount.Equal(dec("1060.9")))
	})

	t.Run("monthly steps up after twelve payments", func(t *testing.T) {
		s := CollectSchedule(decimal.NewFromInt(1000), date(t, "2026-01-01"), date(t, "2027-12-01"), domain.FrequencyMonthly, decimal.NewFromInt(5))
		require.Len(t, s, 24)
		assert.True(t, s[11].Amount.Equal(dec("1000")))
		assert.True(t, s[12].Amount.Equal(dec("1050")))
		assert.True(t, s[23].Amount.Equal(dec("1050")))
	})

	t.Run("zero increase leaves the amount unchanged", func(t *testing.T) {
		s := CollectSchedule(dec("123.45"), date(t, "2026-01-01"), date(t, "2030-01-01"), domain.FrequencyQuarterly, decimal.Zero)
		for _, e := range s {
			assert.True(t, e.Amount.Equal(dec("123.45")))
		}
	})
}

func TestBuildSchedule_EmptyAndLumpSum(t *testing.T) {
	start, end := date(t, "2030-01-01"), date(t, "2026-01-01")

	assert.Empty(t, CollectSchedule(decimal.NewFromInt(100), start, end, domain.FrequencyMonthly, decimal.Zero))

	lump := CollectSchedule(decimal.NewFromInt(100), start, end, domain.FrequencyLumpSum, decimal.NewFromInt(10))
	require.Len(t, lump, 1, "a lump sum always has exactly one payment")
	assert.Equal(t, "2030-01-01", lump[0].Date.Format(domain.DateLayout))
	assert.True(t, lump[0].Amount.Equal(decimal.NewFromInt(100)))

	same := CollectSchedule(decimal.NewFromInt(100), start, start, domain.FrequencyMonthly, decimal.Zero)
	assert.Len(t, same, 1)
}

func TestBuildSchedule_Restartable(t *testing.T) {
	seq := BuildSchedule(decimal.NewFromInt(500), date(t, "2026-01-31"), date(t, "2027-06-30"), domain.FrequencyMonthly, decimal.NewFromInt(2))

	var first, second []domain.ScheduleEntry
	for e := range seq {
		first = append(first, e)
	}
	for e := range seq {
		second = append(second, e)
	}
	assert.Equal(t, first, second)

	taken := 0
	for range seq {
		taken++
		if taken == 3 {
			break
		}
	}
	assert.Equal(t, 3, taken)
}

func TestCalendarDate(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	d := CalendarDate(time.Date(2026, 5, 1, 23, 30, 0, 0, loc))
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), d)
}
