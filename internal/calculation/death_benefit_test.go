package calculation

import (
	"testing"

	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxExposure_LumpSum(t *testing.T) {
	d := date(t, "2026-01-01")
	benefit := MaxExposure(decimal.NewFromInt(1000), d, d, domain.FrequencyLumpSum, decimal.Zero, dec("0.055"))
	assert.True(t, benefit.Equal(decimal.NewFromInt(30000)), "got %s", benefit)
}

func TestMaxExposure_EmptyScheduleIsBuffer(t *testing.T) {
	benefit := MaxExposure(decimal.NewFromInt(1000), date(t, "2030-01-01"), date(t, "2026-01-01"), domain.FrequencyMonthly, decimal.Zero, dec("0.055"))
	assert.True(t, benefit.Equal(decimal.NewFromInt(20000)), "got %s", benefit)
}

func TestMaxExposure_RoundsToMultiple(t *testing.T) {
	start, end := date(t, "2026-05-01"), date(t, "2054-05-01")
	benefit := MaxExposure(dec("4090.86"), start, end, domain.FrequencyMonthly, decimal.Zero, dec("0.055"))

	assert.True(t, benefit.Mod(decimal.NewFromInt(10000)).IsZero(), "got %s", benefit)

	exp := MaxExposureWith(dec("4090.86"), start, end, domain.FrequencyMonthly, decimal.Zero, dec("0.055"),
		DefaultDeathBenefitBuffer, DefaultDeathBenefitRounding)
	assert.True(t, exp.Benefit.Equal(benefit))
	assert.True(t, exp.Benefit.GreaterThanOrEqual(exp.MaxPV.Add(DefaultDeathBenefitBuffer)))
	assert.True(t, exp.Benefit.Sub(exp.MaxPV.Add(DefaultDeathBenefitBuffer)).LessThan(decimal.NewFromInt(10000)))
}

func TestMaxExposure_Monotonic(t *testing.T) {
	start, end := date(t, "2026-05-01"), date(t, "2046-05-01")

	prev := decimal.Zero
	for _, amount := range []int64{100, 1000, 2500, 5000, 10000} {
		b := MaxExposure(decimal.NewFromInt(amount), start, end, domain.FrequencyMonthly, decimal.NewFromInt(2), dec("0.055"))
		assert.True(t, b.GreaterThanOrEqual(prev), "amount %d", amount)
		prev = b
	}

	prev = MaxExposure(decimal.NewFromInt(3000), start, end, domain.FrequencyMonthly, decimal.Zero, dec("0.01"))
	for _, rate := range []string{"0.03", "0.055", "0.08", "0.12"} {
		b := MaxExposure(decimal.NewFromInt(3000), start, end, domain.FrequencyMonthly, decimal.Zero, dec(rate))
		assert.True(t, b.LessThanOrEqual(prev), "rate %s", rate)
		prev = b
	}
}

func TestExposureSweep(t *testing.T) {
	assert.Equal(t, -1, ExposureSweep(nil, dec("0.055")).PeakIndex)

	schedule := CollectSchedule(decimal.NewFromInt(1000), date(t, "2026-01-01"), date(t, "2028-01-01"), domain.FrequencyAnnually, decimal.Zero)
	exp := ExposureSweep(schedule, decimal.Zero)
	require.Equal(t, 0, exp.PeakIndex, "at a zero rate the full stream is worth most")
	assert.True(t, exp.MaxPV.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, "2026-01-01", exp.PeakDate.Format(domain.DateLayout))

	// A steep escalation pushes the peak past the first payment
	steep := CollectSchedule(decimal.NewFromInt(1000), date(t, "2026-01-01"), date(t, "2029-01-01"), domain.FrequencyAnnually, decimal.NewFromInt(400))
	exp = ExposureSweep(steep, dec("0.80"))
	assert.Greater(t, exp.PeakIndex, 0)
}

func TestRoundUpTo(t *testing.T) {
	m := decimal.NewFromInt(10000)
	tests := []struct {
		in, want string
	}{
		{"20000", "20000"},
		{"20000.0005", "20000"},
		{"20000.01", "30000"},
		{"21000", "30000"},
		{"0", "0"},
	}
	for _, tt := range tests {
		assert.True(t, RoundUpTo(dec(tt.in), m).Equal(dec(tt.want)), "RoundUpTo(%s)", tt.in)
	}
	assert.True(t, RoundUpTo(dec("123.4"), decimal.Zero).Equal(dec("123.4")))
}
