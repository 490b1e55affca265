package config

import (
	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
)

// Override is a partial pricing configuration. Set fields replace the
// matching field of a base config; risk profile entries are merged key by
// key.
type Override struct {
	BaseRateGuaranteed            *decimal.Decimal   `json:"baseRateGuaranteed,omitempty" yaml:"base_rate_guaranteed,omitempty"`
	BaseRateLifeContingent        *decimal.Decimal   `json:"baseRateLifeContingent,omitempty" yaml:"base_rate_life_contingent,omitempty"`
	BaseRateLumpSumGuaranteed     *decimal.Decimal   `json:"baseRateLumpSumGuaranteed,omitempty" yaml:"base_rate_lump_sum_guaranteed,omitempty"`
	BaseRateLumpSumLifeContingent *decimal.Decimal   `json:"baseRateLumpSumLifeContingent,omitempty" yaml:"base_rate_lump_sum_life_contingent,omitempty"`
	FamilyProtectionRate          *decimal.Decimal   `json:"familyProtectionRate,omitempty" yaml:"family_protection_rate,omitempty"`
	MinSpread                     *decimal.Decimal   `json:"minSpread,omitempty" yaml:"min_spread,omitempty"`
	MaxSpread                     *decimal.Decimal   `json:"maxSpread,omitempty" yaml:"max_spread,omitempty"`
	MinAdjustment                 *decimal.Decimal   `json:"minAdjustment,omitempty" yaml:"min_adjustment,omitempty"`
	MaxAdjustment                 *decimal.Decimal   `json:"maxAdjustment,omitempty" yaml:"max_adjustment,omitempty"`
	RiskProfile                   domain.RiskProfile `json:"riskProfile,omitempty" yaml:"risk_profile,omitempty"`
	MinimumOffer                  *decimal.Decimal   `json:"minimumOffer,omitempty" yaml:"minimum_offer,omitempty"`
}

// IsEmpty reports whether the override changes nothing
func (o *Override) IsEmpty() bool {
	if o == nil {
		return true
	}
	return o.BaseRateGuaranteed == nil && o.BaseRateLifeContingent == nil &&
		o.BaseRateLumpSumGuaranteed == nil && o.BaseRateLumpSumLifeContingent == nil &&
		o.FamilyProtectionRate == nil && o.MinSpread == nil && o.MaxSpread == nil &&
		o.MinAdjustment == nil && o.MaxAdjustment == nil && len(o.RiskProfile) == 0 &&
		o.MinimumOffer == nil
}

// Apply returns a deep copy of base with the override applied and validated.
// base is never modified.
func (o *Override) Apply(base domain.PricingConfig) (domain.PricingConfig, error) {
	cfg := base.Clone()
	if o.IsEmpty() {
		return cfg, nil
	}

	set := func(dst *decimal.Decimal, v *decimal.Decimal) {
		if v != nil {
			*dst = *v
		}
	}
	set(&cfg.BaseRateGuaranteed, o.BaseRateGuaranteed)
	set(&cfg.BaseRateLifeContingent, o.BaseRateLifeContingent)
	set(&cfg.BaseRateLumpSumGuaranteed, o.BaseRateLumpSumGuaranteed)
	set(&cfg.BaseRateLumpSumLifeContingent, o.BaseRateLumpSumLifeContingent)
	set(&cfg.FamilyProtectionRate, o.FamilyProtectionRate)
	set(&cfg.RateSpreads.Min, o.MinSpread)
	set(&cfg.RateSpreads.Max, o.MaxSpread)
	set(&cfg.AmountAdjustments.Min, o.MinAdjustment)
	set(&cfg.AmountAdjustments.Max, o.MaxAdjustment)
	set(&cfg.MinimumOffer, o.MinimumOffer)

	if len(o.RiskProfile) > 0 {
		if cfg.RiskProfile == nil {
			cfg.RiskProfile = domain.RiskProfile{}
		}
		for k, v := range o.RiskProfile {
			cfg.RiskProfile[k] = v
		}
	}

	if err := NewInputParser().ValidatePricingConfig(&cfg); err != nil {
		return domain.PricingConfig{}, err
	}
	return cfg, nil
}
