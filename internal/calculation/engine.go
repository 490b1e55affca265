package calculation

import (
	"runtime"

	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
)

// PricingEngine orchestrates the per-row pricing pipeline. It holds no
// pricing state; the configuration travels with every call.
type PricingEngine struct {
	Logger  Logger
	Workers int  // Parallelism for PriceBatch; <= 0 means runtime.NumCPU()
	Debug   bool // Log intermediate figures for every row
}

// NewPricingEngine creates an engine with a no-op logger
func NewPricingEngine() *PricingEngine {
	return &PricingEngine{
		Logger:  NopLogger{},
		Workers: runtime.NumCPU(),
	}
}

// SetLogger replaces the logger; nil installs NopLogger
func (pe *PricingEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

func (pe *PricingEngine) logger() Logger {
	if pe.Logger == nil {
		return NopLogger{}
	}
	return pe.Logger
}

// PriceRow validates a row and prices it against a private copy of cfg
func (pe *PricingEngine) PriceRow(row domain.PricingRow, cfg domain.PricingConfig) (*domain.PricingResult, error) {
	cfg = cfg.Clone()
	in, err := NormalizeRow(row, cfg)
	if err != nil {
		pe.logger().Warnf("skipping row %q: %v", row.ID, err)
		return nil, err
	}
	return pe.Price(in, cfg), nil
}

// Price runs the pipeline on an already validated input:
//  1. base rate by payment type (lump sums have their own rates)
//  2. age/gender risk delta, life-contingent streams only
//  3. low/high offer from the adjusted rate
//  4. death benefit, life-contingent streams only
//  5. payment count
//  6. the minimum-offer floor; the death benefit is reported either way
func (pe *PricingEngine) Price(in PricingInput, cfg domain.PricingConfig) *domain.PricingResult {
	log := pe.logger()

	baseRate := cfg.BaseRate(in.PaymentType, in.Frequency)
	risk := RiskAdjustment{Adjustment: decimal.Zero}
	lcp := in.PaymentType == domain.PaymentTypeLifeContingent
	if lcp {
		risk = ResolveRisk(in.Age, in.Gender, cfg.RiskProfile)
		if _, ok := ageBandFor(in.Age); !ok {
			log.Warnf("row %q: age %d is outside every risk band, no age adjustment applied", in.RowID, in.Age)
		}
	}
	adjustedRate := baseRate.Add(risk.Adjustment)

	offer := MinMaxOffer(MinMaxInput{
		Amount:         in.Amount,
		Start:          in.Start,
		End:            in.End,
		AdjustedRate:   adjustedRate,
		Frequency:      in.Frequency,
		AnnualIncrease: in.AnnualIncrease,
		MinSpread:      cfg.RateSpreads.Min,
		MaxSpread:      cfg.RateSpreads.Max,
		MinAdjustment:  cfg.AmountAdjustments.Min,
		MaxAdjustment:  cfg.AmountAdjustments.Max,
	})

	deathBenefit := decimal.Zero
	if lcp {
		deathBenefit = MaxExposureWith(in.Amount, in.Start, in.End, in.Frequency, in.AnnualIncrease,
			cfg.FamilyProtectionRate, cfg.DeathBenefitBuffer, cfg.DeathBenefitRounding).Benefit
	}

	result := &domain.PricingResult{
		RowID:          in.RowID,
		PaymentCount:   PaymentCount(in.Start, in.End, in.Frequency),
		LowOffer:       offer.Low,
		HighOffer:      offer.High,
		DeathBenefit:   deathBenefit,
		BaseRate:       baseRate,
		RiskAdjustment: risk.Adjustment,
		AdjustedRate:   adjustedRate,
		RiskKeys:       risk.Keys,
	}

	if offer.High.LessThan(cfg.MinimumOffer) {
		result.NoOffer = true
		result.LowOffer = decimal.Zero
		result.HighOffer = decimal.Zero
	}

	if pe.Debug {
		log.Debugf("row %q: base=%s risk=%s adjusted=%s low=%s high=%s death=%s payments=%d no_offer=%t",
			in.RowID, baseRate, risk.Adjustment, adjustedRate, offer.Low.StringFixed(2), offer.High.StringFixed(2),
			deathBenefit.StringFixed(2), result.PaymentCount, result.NoOffer)
	}
	return result
}
