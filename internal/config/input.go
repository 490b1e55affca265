package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MissingFieldError reports a required configuration field that was absent
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// pricingFile mirrors the YAML pricing config. Required fields are pointers
// so an absent key can be told apart from an explicit zero.
type pricingFile struct {
	BaseRateGuaranteed            *decimal.Decimal   `yaml:"base_rate_guaranteed"`
	BaseRateLifeContingent        *decimal.Decimal   `yaml:"base_rate_life_contingent"`
	BaseRateLumpSumGuaranteed     *decimal.Decimal   `yaml:"base_rate_lump_sum_guaranteed"`
	BaseRateLumpSumLifeContingent *decimal.Decimal   `yaml:"base_rate_lump_sum_life_contingent"`
	FamilyProtectionRate          *decimal.Decimal   `yaml:"family_protection_rate"`
	RateSpreads                   spreadFile         `yaml:"rate_spreads"`
	AmountAdjustments             spreadFile         `yaml:"amount_adjustments"`
	RiskProfile                   domain.RiskProfile `yaml:"risk_profile"`
	MinimumOffer                  *decimal.Decimal   `yaml:"minimum_offer"`
	DeathBenefitBuffer            *decimal.Decimal   `yaml:"death_benefit_buffer"`
	DeathBenefitRounding          *decimal.Decimal   `yaml:"death_benefit_rounding"`
	DefaultFrequency              string             `yaml:"default_frequency"`
	DefaultAnnualIncrease         *decimal.Decimal   `yaml:"default_annual_increase"`
}

type spreadFile struct {
	Min *decimal.Decimal `yaml:"min"`
	Max *decimal.Decimal `yaml:"max"`
}

type rowsFile struct {
	Rows []domain.PricingRow `yaml:"rows"`
}

// InputParser handles parsing of pricing config and row files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadPricingConfig loads a pricing configuration from a YAML file
func (ip *InputParser) LoadPricingConfig(filename string) (*domain.PricingConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParsePricingConfig(data)
}

// ParsePricingConfig decodes and validates a YAML pricing configuration.
// Optional fields take the values of DefaultPricingConfig; the lump-sum base
// rates fall back to the matching periodic rate.
func (ip *InputParser) ParsePricingConfig(data []byte) (*domain.PricingConfig, error) {
	var f pricingFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	required := []struct {
		field string
		value *decimal.Decimal
	}{
		{"base_rate_guaranteed", f.BaseRateGuaranteed},
		{"base_rate_life_contingent", f.BaseRateLifeContingent},
		{"family_protection_rate", f.FamilyProtectionRate},
		{"rate_spreads.min", f.RateSpreads.Min},
		{"rate_spreads.max", f.RateSpreads.Max},
		{"amount_adjustments.min", f.AmountAdjustments.Min},
		{"amount_adjustments.max", f.AmountAdjustments.Max},
	}
	for _, r := range required {
		if r.value == nil {
			return nil, &MissingFieldError{Field: r.field}
		}
	}

	cfg := DefaultPricingConfig()
	cfg.BaseRateGuaranteed = *f.BaseRateGuaranteed
	cfg.BaseRateLifeContingent = *f.BaseRateLifeContingent
	cfg.BaseRateLumpSumGuaranteed = valueOr(f.BaseRateLumpSumGuaranteed, cfg.BaseRateGuaranteed)
	cfg.BaseRateLumpSumLifeContingent = valueOr(f.BaseRateLumpSumLifeContingent, cfg.BaseRateLifeContingent)
	cfg.FamilyProtectionRate = *f.FamilyProtectionRate
	cfg.RateSpreads = domain.Spread{Min: *f.RateSpreads.Min, Max: *f.RateSpreads.Max}
	cfg.AmountAdjustments = domain.Spread{Min: *f.AmountAdjustments.Min, Max: *f.AmountAdjustments.Max}
	if f.RiskProfile != nil {
		cfg.RiskProfile = f.RiskProfile
	}
	cfg.MinimumOffer = valueOr(f.MinimumOffer, cfg.MinimumOffer)
	cfg.DeathBenefitBuffer = valueOr(f.DeathBenefitBuffer, cfg.DeathBenefitBuffer)
	cfg.DeathBenefitRounding = valueOr(f.DeathBenefitRounding, cfg.DeathBenefitRounding)
	cfg.DefaultAnnualIncrease = valueOr(f.DefaultAnnualIncrease, cfg.DefaultAnnualIncrease)
	if f.DefaultFrequency != "" {
		cfg.DefaultFrequency = domain.ParsePaymentFrequency(f.DefaultFrequency)
	}

	if err := ip.ValidatePricingConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// ValidatePricingConfig checks rate ranges and min/max ordering
func (ip *InputParser) ValidatePricingConfig(cfg *domain.PricingConfig) error {
	rates := []struct {
		name  string
		value decimal.Decimal
	}{
		{"base_rate_guaranteed", cfg.BaseRateGuaranteed},
		{"base_rate_life_contingent", cfg.BaseRateLifeContingent},
		{"base_rate_lump_sum_guaranteed", cfg.BaseRateLumpSumGuaranteed},
		{"base_rate_lump_sum_life_contingent", cfg.BaseRateLumpSumLifeContingent},
		{"family_protection_rate", cfg.FamilyProtectionRate},
	}
	for _, r := range rates {
		if r.value.IsNegative() || r.value.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return fmt.Errorf("%s must be between 0 and 1, got %s", r.name, r.value)
		}
	}

	if err := validateSpread("rate_spreads", cfg.RateSpreads); err != nil {
		return err
	}
	if err := validateSpread("amount_adjustments", cfg.AmountAdjustments); err != nil {
		return err
	}

	for key := range cfg.RiskProfile {
		if !knownRiskKey(key) {
			return fmt.Errorf("unknown risk profile key %q", key)
		}
	}

	if cfg.MinimumOffer.IsNegative() {
		return fmt.Errorf("minimum_offer cannot be negative")
	}
	if cfg.DeathBenefitBuffer.IsNegative() {
		return fmt.Errorf("death_benefit_buffer cannot be negative")
	}
	if cfg.DeathBenefitRounding.IsNegative() {
		return fmt.Errorf("death_benefit_rounding cannot be negative")
	}
	if cfg.DefaultFrequency != "" && !cfg.DefaultFrequency.IsKnown() {
		return fmt.Errorf("unknown default_frequency %q", cfg.DefaultFrequency)
	}
	return nil
}

func validateSpread(name string, s domain.Spread) error {
	if s.Min.IsNegative() || s.Max.IsNegative() {
		return fmt.Errorf("%s cannot be negative", name)
	}
	return nil
}

func knownRiskKey(key string) bool {
	if key == domain.RiskKeyGenderMale || key == domain.RiskKeyGenderFemale {
		return true
	}
	for _, b := range domain.AgeBands {
		if key == b.Key() {
			return true
		}
	}
	return false
}

// LoadRows loads pricing rows from a YAML file with a top-level "rows" list.
// Rows without an ID get a generated one.
func (ip *InputParser) LoadRows(filename string) ([]domain.PricingRow, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseRows(data)
}

// ParseRows decodes a YAML row list. Rows are not validated here; the
// engine reports invalid rows individually.
func (ip *InputParser) ParseRows(data []byte) ([]domain.PricingRow, error) {
	var f rowsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(f.Rows) == 0 {
		return nil, fmt.Errorf("no rows provided")
	}

	seen := make(map[string]bool, len(f.Rows))
	for i, r := range f.Rows {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			continue
		}
		if seen[id] {
			return nil, fmt.Errorf("row %d: duplicate id %q", i, id)
		}
		seen[id] = true
	}
	domain.AssignRowIDs(f.Rows)
	return f.Rows, nil
}

func valueOr(v *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if v == nil {
		return fallback
	}
	return *v
}
