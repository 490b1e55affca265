package calculation

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountPrecision is the number of decimal places kept when compounding
// and dividing. Repeated multiplication would otherwise grow without bound.
const DiscountPrecision int32 = 20

// MonthsBetween is the calendar-month distance from ref to date. Days of the
// month are ignored, so every cash flow in the same month is simultaneous.
func MonthsBetween(ref, date time.Time) int {
	return (date.Year()-ref.Year())*12 + int(date.Month()) - int(ref.Month())
}

// DiscountFactor returns (1 + annualRate/12)^months. Negative months give
// the reciprocal.
func DiscountFactor(months int, annualRate decimal.Decimal) decimal.Decimal {
	base := one.Add(annualRate.DivRound(twelve, DiscountPrecision))
	if months < 0 {
		return one.DivRound(compound(base, -months), DiscountPrecision)
	}
	return compound(base, months)
}

// compound raises base to a non-negative integer power by squaring
func compound(base decimal.Decimal, n int) decimal.Decimal {
	result := one
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(DiscountPrecision)
		}
		base = base.Mul(base).Round(DiscountPrecision)
		n >>= 1
	}
	return result
}

// PresentValue discounts a cash flow paid monthsFromReference months after
// the valuation date under monthly compounding. A negative month count
// compounds forward and yields more than the nominal amount.
func PresentValue(amount decimal.Decimal, monthsFromReference int, annualRate decimal.Decimal) decimal.Decimal {
	if annualRate.IsZero() || monthsFromReference == 0 {
		return amount
	}
	if monthsFromReference < 0 {
		return amount.Mul(compound(one.Add(annualRate.DivRound(twelve, DiscountPrecision)), -monthsFromReference)).Round(DiscountPrecision)
	}
	return discountBy(amount, DiscountFactor(monthsFromReference, annualRate))
}

func discountBy(amount, factor decimal.Decimal) decimal.Decimal {
	if factor.IsZero() {
		return amount
	}
	return amount.DivRound(factor, DiscountPrecision)
}

// discountTable precomputes DiscountFactor for offsets 0..maxMonths so a
// sweep can reuse them within a single call.
func discountTable(maxMonths int, annualRate decimal.Decimal) []decimal.Decimal {
	if maxMonths < 0 {
		maxMonths = 0
	}
	table := make([]decimal.Decimal, maxMonths+1)
	for m := range table {
		table[m] = DiscountFactor(m, annualRate)
	}
	return table
}
