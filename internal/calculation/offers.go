package calculation

import (
	"time"

	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
)

// MinMaxInput holds everything needed to bound an offer. AdjustedRate must
// already include any age/gender risk delta.
type MinMaxInput struct {
	Amount         decimal.Decimal
	Start          time.Time
	End            time.Time
	AdjustedRate   decimal.Decimal
	Frequency      domain.PaymentFrequency
	AnnualIncrease decimal.Decimal
	MinSpread      decimal.Decimal
	MaxSpread      decimal.Decimal
	MinAdjustment  decimal.Decimal
	MaxAdjustment  decimal.Decimal
}

// Offer is the pair of purchase bounds with the intermediate figures used
// to reach them.
type Offer struct {
	Low      decimal.Decimal `json:"low"`
	High     decimal.Decimal `json:"high"`
	LowRate  decimal.Decimal `json:"lowRate"`
	HighRate decimal.Decimal `json:"highRate"`
	LowNPV   decimal.Decimal `json:"lowNpv"`
	HighNPV  decimal.Decimal `json:"highNpv"`
}

// MinMaxOffer prices the stream twice. The low bound discounts at
// AdjustedRate+MaxSpread and subtracts MaxAdjustment; the high bound uses
// MinSpread and MinAdjustment. No floor is applied here.
func MinMaxOffer(in MinMaxInput) Offer {
	o := Offer{
		LowRate:  in.AdjustedRate.Add(in.MaxSpread),
		HighRate: in.AdjustedRate.Add(in.MinSpread),
	}
	o.LowNPV = GuaranteedNPV(in.Amount, in.Start, in.End, in.Frequency, in.AnnualIncrease, o.LowRate)
	o.HighNPV = GuaranteedNPV(in.Amount, in.Start, in.End, in.Frequency, in.AnnualIncrease, o.HighRate)
	o.Low = o.LowNPV.Sub(in.MaxAdjustment)
	o.High = o.HighNPV.Sub(in.MinAdjustment)
	return o
}
