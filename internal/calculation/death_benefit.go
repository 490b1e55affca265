package calculation

import (
	"time"

	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// DefaultDeathBenefitBuffer is added to the peak exposure before rounding
	DefaultDeathBenefitBuffer = decimal.NewFromInt(20000)
	// DefaultDeathBenefitRounding is the multiple the benefit rounds up to
	DefaultDeathBenefitRounding = decimal.NewFromInt(10000)

	roundingEpsilon = decimal.NewFromFloat(0.001)
)

// Exposure describes the decreasing-term sweep over a schedule
type Exposure struct {
	MaxPV     decimal.Decimal `json:"maxPv"`
	PeakIndex int             `json:"peakIndex"`
	PeakDate  time.Time       `json:"peakDate"`
	Benefit   decimal.Decimal `json:"benefit"`
}

// MaxExposure returns the death benefit for a stream: the largest present
// value of the remaining payments seen at any payment date, plus a $20,000
// buffer, rounded up to the next $10,000.
func MaxExposure(amount decimal.Decimal, start, end time.Time, frequency domain.PaymentFrequency, increasePercent, familyProtectionRate decimal.Decimal) decimal.Decimal {
	return MaxExposureWith(amount, start, end, frequency, increasePercent, familyProtectionRate,
		DefaultDeathBenefitBuffer, DefaultDeathBenefitRounding).Benefit
}

// MaxExposureWith is MaxExposure with an explicit buffer and rounding step
func MaxExposureWith(amount decimal.Decimal, start, end time.Time, frequency domain.PaymentFrequency, increasePercent, familyProtectionRate, buffer, rounding decimal.Decimal) Exposure {
	schedule := CollectSchedule(amount, start, end, frequency, increasePercent)
	exp := ExposureSweep(schedule, familyProtectionRate)
	exp.Benefit = RoundUpTo(exp.MaxPV.Add(buffer), rounding)
	return exp
}

// ExposureSweep values, at every payment date i, all payments from i to the
// end, and keeps the maximum. Every point is evaluated since escalation can
// move the peak past the first payment. The maximum starts at zero, so an
// empty schedule reports PeakIndex -1.
func ExposureSweep(schedule domain.Schedule, rate decimal.Decimal) Exposure {
	exp := Exposure{MaxPV: decimal.Zero, PeakIndex: -1}
	if len(schedule) == 0 {
		return exp
	}
	factors := discountTable(MonthsBetween(schedule[0].Date, schedule[len(schedule)-1].Date), rate)
	for i := range schedule {
		ref := schedule[i].Date
		pv := decimal.Zero
		for _, p := range schedule[i:] {
			pv = pv.Add(discountBy(p.Amount, factors[MonthsBetween(ref, p.Date)]))
		}
		if pv.GreaterThan(exp.MaxPV) {
			exp.MaxPV = pv
			exp.PeakIndex = i
			exp.PeakDate = ref
		}
	}
	return exp
}

// RoundUpTo rounds value up to the next multiple. A small epsilon keeps
// values sitting exactly on a multiple from moving up a step.
func RoundUpTo(value, multiple decimal.Decimal) decimal.Decimal {
	if multiple.LessThanOrEqual(decimal.Zero) {
		return value
	}
	return value.Sub(roundingEpsilon).Div(multiple).Ceil().Mul(multiple)
}
