package calculation

import (
	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultSchedulePreview is how many schedule entries a breakdown keeps
const DefaultSchedulePreview = 12

// Breakdown exposes every intermediate figure behind a row's price
type Breakdown struct {
	Input                PricingInput          `json:"input"`
	AgeBand              string                `json:"ageBand"`
	BaseRate             decimal.Decimal       `json:"baseRate"`
	Risk                 RiskAdjustment        `json:"risk"`
	AdjustedRate         decimal.Decimal       `json:"adjustedRate"`
	Offer                Offer                 `json:"offer"`
	MinimumOffer         decimal.Decimal       `json:"minimumOffer"`
	FamilyProtectionRate decimal.Decimal       `json:"familyProtectionRate"`
	FamilyProtectionNPV  decimal.Decimal       `json:"familyProtectionNpv"`
	Exposure             Exposure              `json:"exposure"`
	ScheduleTotal        decimal.Decimal       `json:"scheduleTotal"`
	SchedulePreview      domain.Schedule       `json:"schedulePreview"`
	Result               *domain.PricingResult `json:"result"`
}

// Breakdown prices a row and collects the intermediate values. Exposure is
// computed for guaranteed streams too, although their reported death
// benefit stays zero.
func (pe *PricingEngine) Breakdown(row domain.PricingRow, cfg domain.PricingConfig, preview int) (*Breakdown, error) {
	cfg = cfg.Clone()
	in, err := NormalizeRow(row, cfg)
	if err != nil {
		return nil, err
	}
	if preview <= 0 {
		preview = DefaultSchedulePreview
	}

	result := pe.Price(in, cfg)
	schedule := CollectSchedule(in.Amount, in.Start, in.End, in.Frequency, in.AnnualIncrease)

	risk := RiskAdjustment{Keys: []string{}, Components: []RiskComponent{}, Adjustment: decimal.Zero}
	if in.PaymentType == domain.PaymentTypeLifeContingent {
		risk = ResolveRisk(in.Age, in.Gender, cfg.RiskProfile)
	}

	b := &Breakdown{
		Input:                in,
		AgeBand:              AgeBand(in.Age),
		BaseRate:             result.BaseRate,
		Risk:                 risk,
		AdjustedRate:         result.AdjustedRate,
		MinimumOffer:         cfg.MinimumOffer,
		FamilyProtectionRate: cfg.FamilyProtectionRate,
		FamilyProtectionNPV: GuaranteedNPV(in.Amount, in.Start, in.End, in.Frequency, in.AnnualIncrease,
			cfg.FamilyProtectionRate),
		ScheduleTotal:   schedule.Total(),
		SchedulePreview: schedule[:min(preview, len(schedule))],
		Result:          result,
	}
	b.Offer = MinMaxOffer(MinMaxInput{
		Amount:         in.Amount,
		Start:          in.Start,
		End:            in.End,
		AdjustedRate:   result.AdjustedRate,
		Frequency:      in.Frequency,
		AnnualIncrease: in.AnnualIncrease,
		MinSpread:      cfg.RateSpreads.Min,
		MaxSpread:      cfg.RateSpreads.Max,
		MinAdjustment:  cfg.AmountAdjustments.Min,
		MaxAdjustment:  cfg.AmountAdjustments.Max,
	})
	b.Exposure = ExposureSweep(schedule, cfg.FamilyProtectionRate)
	b.Exposure.Benefit = RoundUpTo(b.Exposure.MaxPV.Add(cfg.DeathBenefitBuffer), cfg.DeathBenefitRounding)
	return b, nil
}
