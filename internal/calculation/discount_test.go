package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMonthsBetween(t *testing.T) {
	assert.Equal(t, 0, MonthsBetween(date(t, "2026-05-01"), date(t, "2026-05-31")))
	assert.Equal(t, 1, MonthsBetween(date(t, "2026-01-31"), date(t, "2026-02-01")))
	assert.Equal(t, 336, MonthsBetween(date(t, "2026-05-01"), date(t, "2054-05-01")))
	assert.Equal(t, -14, MonthsBetween(date(t, "2027-03-15"), date(t, "2026-01-01")))
}

func TestPresentValue(t *testing.T) {
	amount := decimal.NewFromInt(1000)

	t.Run("zero rate returns the amount", func(t *testing.T) {
		assert.True(t, PresentValue(amount, 120, decimal.Zero).Equal(amount))
	})

	t.Run("zero months returns the amount", func(t *testing.T) {
		assert.True(t, PresentValue(amount, 0, dec("0.12")).Equal(amount))
	})

	t.Run("monthly compounding", func(t *testing.T) {
		// 1000 / 1.01^12
		pv := PresentValue(amount, 12, dec("0.12"))
		assert.InDelta(t, 887.4491864, pv.InexactFloat64(), 1e-6)
	})

	t.Run("negative months compound forward", func(t *testing.T) {
		// 1000 * 1.01^12
		pv := PresentValue(amount, -12, dec("0.12"))
		assert.True(t, pv.GreaterThan(amount))
		assert.InDelta(t, 1126.8250301, pv.InexactFloat64(), 1e-6)
	})

	t.Run("higher rate lowers value", func(t *testing.T) {
		low := PresentValue(amount, 60, dec("0.05"))
		high := PresentValue(amount, 60, dec("0.10"))
		assert.True(t, high.LessThan(low))
	})
}

func TestDiscountFactor(t *testing.T) {
	rate := dec("0.085")

	assert.True(t, DiscountFactor(0, rate).Equal(decimal.NewFromInt(1)))

	f := DiscountFactor(240, rate)
	inv := DiscountFactor(-240, rate)
	assert.InDelta(t, 1.0, f.Mul(inv).InexactFloat64(), 1e-12)

	// precision stays bounded after many multiplications
	assert.LessOrEqual(t, -f.Exponent(), DiscountPrecision)
}

func TestDiscountTable(t *testing.T) {
	rate := dec("0.055")
	table := discountTable(24, rate)
	assert.Len(t, table, 25)
	for m, f := range table {
		assert.True(t, f.Equal(DiscountFactor(m, rate)), "month %d", m)
	}
	assert.Len(t, discountTable(-3, rate), 1)
}
