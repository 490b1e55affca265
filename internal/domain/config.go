package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Risk profile keys
const (
	RiskKeyGenderMale   = "gender-male"
	RiskKeyGenderFemale = "gender-female"
)

// AgeBand is an inclusive age range with its own risk adjustment key
type AgeBand struct {
	Min int
	Max int
}

// Label returns the band label, e.g. "18-25"
func (b AgeBand) Label() string {
	return fmt.Sprintf("%d-%d", b.Min, b.Max)
}

// Key returns the risk profile key, e.g. "age-18-25"
func (b AgeBand) Key() string {
	return "age-" + b.Label()
}

// Contains reports whether age falls inside the band
func (b AgeBand) Contains(age int) bool {
	return age >= b.Min && age <= b.Max
}

// AgeBands are contiguous and non-overlapping
var AgeBands = []AgeBand{
	{18, 25},
	{26, 35},
	{36, 45},
	{46, 50},
	{51, 56},
	{57, 65},
}

// RiskProfile maps risk keys to additive discount-rate deltas
type RiskProfile map[string]decimal.Decimal

// Get returns the delta for key, or zero when the key is not configured
func (p RiskProfile) Get(key string) decimal.Decimal {
	if v, ok := p[key]; ok {
		return v
	}
	return decimal.Zero
}

// Clone returns an independent copy
func (p RiskProfile) Clone() RiskProfile {
	if p == nil {
		return nil
	}
	out := make(RiskProfile, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Spread is a min/max pair used for both rate spreads and dollar haircuts
type Spread struct {
	Min decimal.Decimal `yaml:"min" json:"min"`
	Max decimal.Decimal `yaml:"max" json:"max"`
}

// Inverted reports whether Min exceeds Max. Inverted pairs still price;
// the low offer may then exceed the high offer.
func (s Spread) Inverted() bool { return s.Min.GreaterThan(s.Max) }

// PricingConfig carries every tunable used by a pricing call. Callers own
// it; the engine reads a private copy per call.
type PricingConfig struct {
	BaseRateGuaranteed            decimal.Decimal  `yaml:"base_rate_guaranteed" json:"baseRateGuaranteed"`
	BaseRateLifeContingent        decimal.Decimal  `yaml:"base_rate_life_contingent" json:"baseRateLifeContingent"`
	BaseRateLumpSumGuaranteed     decimal.Decimal  `yaml:"base_rate_lump_sum_guaranteed" json:"baseRateLumpSumGuaranteed"`
	BaseRateLumpSumLifeContingent decimal.Decimal  `yaml:"base_rate_lump_sum_life_contingent" json:"baseRateLumpSumLifeContingent"`
	FamilyProtectionRate          decimal.Decimal  `yaml:"family_protection_rate" json:"familyProtectionRate"`
	RateSpreads                   Spread           `yaml:"rate_spreads" json:"rateSpreads"`
	AmountAdjustments             Spread           `yaml:"amount_adjustments" json:"amountAdjustments"`
	RiskProfile                   RiskProfile      `yaml:"risk_profile" json:"riskProfile"`
	MinimumOffer                  decimal.Decimal  `yaml:"minimum_offer" json:"minimumOffer"`
	DeathBenefitBuffer            decimal.Decimal  `yaml:"death_benefit_buffer" json:"deathBenefitBuffer"`
	DeathBenefitRounding          decimal.Decimal  `yaml:"death_benefit_rounding" json:"deathBenefitRounding"`
	DefaultFrequency              PaymentFrequency `yaml:"default_frequency" json:"defaultFrequency"`
	DefaultAnnualIncrease         decimal.Decimal  `yaml:"default_annual_increase" json:"defaultAnnualIncrease"`
}

// InvertedBounds names the min/max pairs whose min exceeds their max
func (c PricingConfig) InvertedBounds() []string {
	var names []string
	if c.RateSpreads.Inverted() {
		names = append(names, "rate_spreads")
	}
	if c.AmountAdjustments.Inverted() {
		names = append(names, "amount_adjustments")
	}
	return names
}

// Clone returns a deep copy safe to hand to another goroutine
func (c PricingConfig) Clone() PricingConfig {
	out := c
	out.RiskProfile = c.RiskProfile.Clone()
	return out
}

// BaseRate selects the base discount rate for a payment type. Lump sums use
// their own pair of rates.
func (c PricingConfig) BaseRate(t PaymentType, f PaymentFrequency) decimal.Decimal {
	lcp := t == PaymentTypeLifeContingent
	if f.IsLumpSum() {
		if lcp {
			return c.BaseRateLumpSumLifeContingent
		}
		return c.BaseRateLumpSumGuaranteed
	}
	if lcp {
		return c.BaseRateLifeContingent
	}
	return c.BaseRateGuaranteed
}
