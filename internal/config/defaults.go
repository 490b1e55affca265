package config

import (
	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultPricingConfig returns the shipped pricing configuration. The
// shipped values are 0.02/0.03 for rate spreads and 20000/30000 for dollar
// haircuts. Min is the pair used for the high offer, so the low offer never
// exceeds the high offer.
func DefaultPricingConfig() domain.PricingConfig {
	return domain.PricingConfig{
		BaseRateGuaranteed:            decimal.RequireFromString("0.085"),
		BaseRateLifeContingent:        decimal.RequireFromString("0.085"),
		BaseRateLumpSumGuaranteed:     decimal.RequireFromString("0.085"),
		BaseRateLumpSumLifeContingent: decimal.RequireFromString("0.085"),
		FamilyProtectionRate:          decimal.RequireFromString("0.055"),
		RateSpreads: domain.Spread{
			Min: decimal.RequireFromString("0.02"),
			Max: decimal.RequireFromString("0.03"),
		},
		AmountAdjustments: domain.Spread{
			Min: decimal.NewFromInt(20000),
			Max: decimal.NewFromInt(30000),
		},
		RiskProfile:           DefaultRiskProfile(),
		MinimumOffer:          decimal.NewFromInt(15000),
		DeathBenefitBuffer:    decimal.NewFromInt(20000),
		DeathBenefitRounding:  decimal.NewFromInt(10000),
		DefaultFrequency:      domain.FrequencyMonthly,
		DefaultAnnualIncrease: decimal.Zero,
	}
}

// DefaultRiskProfile returns the shipped age/gender rate deltas
func DefaultRiskProfile() domain.RiskProfile {
	return domain.RiskProfile{
		domain.RiskKeyGenderMale:   decimal.Zero,
		domain.RiskKeyGenderFemale: decimal.RequireFromString("-0.01"),
		"age-18-25":                decimal.Zero,
		"age-26-35":                decimal.RequireFromString("0.01"),
		"age-36-45":                decimal.RequireFromString("0.02"),
		"age-46-50":                decimal.RequireFromString("0.03"),
		"age-51-56":                decimal.RequireFromString("0.045"),
		"age-57-65":                decimal.RequireFromString("0.06"),
	}
}
