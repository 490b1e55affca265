package calculation

import (
	"testing"

	"github.com/rgehrsitz/sspricer/internal/config"
	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioInput(t *testing.T) MinMaxInput {
	cfg := config.DefaultPricingConfig()
	return MinMaxInput{
		Amount:         dec("4090.86"),
		Start:          date(t, "2026-05-01"),
		End:            date(t, "2054-05-01"),
		AdjustedRate:   dec("0.095"),
		Frequency:      domain.FrequencyMonthly,
		AnnualIncrease: decimal.Zero,
		MinSpread:      cfg.RateSpreads.Min,
		MaxSpread:      cfg.RateSpreads.Max,
		MinAdjustment:  cfg.AmountAdjustments.Min,
		MaxAdjustment:  cfg.AmountAdjustments.Max,
	}
}

func TestMinMaxOffer_Scenario(t *testing.T) {
	in := scenarioInput(t)
	o := MinMaxOffer(in)

	assert.True(t, o.Low.IsPositive())
	assert.True(t, o.High.IsPositive())
	assert.True(t, o.Low.LessThanOrEqual(o.High))

	assert.True(t, o.LowRate.Equal(dec("0.125")))
	assert.True(t, o.HighRate.Equal(dec("0.115")))
	assert.True(t, o.Low.Equal(o.LowNPV.Sub(in.MaxAdjustment)))
	assert.True(t, o.High.Equal(o.HighNPV.Sub(in.MinAdjustment)))

	expectedHigh := GuaranteedNPV(in.Amount, in.Start, in.End, in.Frequency, in.AnnualIncrease, dec("0.115")).Sub(in.MinAdjustment)
	assert.True(t, o.High.Equal(expectedHigh))

	undiscounted := CollectSchedule(in.Amount, in.Start, in.End, in.Frequency, in.AnnualIncrease).Total()
	assert.True(t, o.HighNPV.LessThan(undiscounted))
}

func TestMinMaxOffer_LowNeverAboveHighWithDefaults(t *testing.T) {
	in := scenarioInput(t)
	for _, rate := range []string{"0", "0.02", "0.085", "0.145"} {
		for _, f := range []domain.PaymentFrequency{domain.FrequencyMonthly, domain.FrequencyAnnually, domain.FrequencyLumpSum} {
			in.AdjustedRate = dec(rate)
			in.Frequency = f
			o := MinMaxOffer(in)
			require.True(t, o.Low.LessThanOrEqual(o.High), "rate %s %s: low %s high %s", rate, f, o.Low, o.High)
		}
	}
}

func TestMinMaxOffer_NoFloor(t *testing.T) {
	in := scenarioInput(t)
	in.Amount = decimal.NewFromInt(10)
	in.End = in.Start.AddDate(1, 0, 0)

	o := MinMaxOffer(in)
	assert.True(t, o.Low.IsNegative(), "offers below zero are reported as is")
	assert.True(t, o.High.IsNegative())
}
