package domain

import (
	"github.com/shopspring/decimal"
)

// SensitivityParameter is a pricing input swept across a range
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"baseValue"`
	Unit        string          `yaml:"unit" json:"unit"` // "rate", "dollars", "percent"
	Description string          `yaml:"description" json:"description"`
}

// SensitivityResult is the row priced at one parameter value
type SensitivityResult struct {
	ParameterValue decimal.Decimal `json:"parameterValue"`
	LowOffer       decimal.Decimal `json:"lowOffer"`
	HighOffer      decimal.Decimal `json:"highOffer"`
	DeathBenefit   decimal.Decimal `json:"deathBenefit"`
	NoOffer        bool            `json:"noOffer"`
	HighChangePct  decimal.Decimal `json:"highChangePct"` // vs. the base value
}

// SensitivitySummary condenses a sweep
type SensitivitySummary struct {
	HighOfferMin    decimal.Decimal `json:"highOfferMin"`
	HighOfferMax    decimal.Decimal `json:"highOfferMax"`
	DeathBenefitMin decimal.Decimal `json:"deathBenefitMin"`
	DeathBenefitMax decimal.Decimal `json:"deathBenefitMax"`
	NoOfferCount    int             `json:"noOfferCount"`
	SwingPct        decimal.Decimal `json:"swingPct"` // (max-min)/base high offer
	RiskLevel       string          `json:"riskLevel"` // "LOW", "MEDIUM", "HIGH"
}

// ParameterSensitivityAnalysis is a complete single-parameter sweep
type ParameterSensitivityAnalysis struct {
	RowID      string               `json:"rowId,omitempty"`
	Parameter  SensitivityParameter `json:"parameter"`
	BaseResult SensitivityResult    `json:"baseResult"`
	Results    []SensitivityResult  `json:"results"`
	Summary    SensitivitySummary   `json:"summary"`
}

// Common sensitivity parameters
var (
	BaseRateParam = SensitivityParameter{
		Name:        "base_rate",
		MinValue:    decimal.NewFromFloat(0.065),
		MaxValue:    decimal.NewFromFloat(0.105),
		Steps:       5,
		BaseValue:   decimal.NewFromFloat(0.085),
		Unit:        "rate",
		Description: "Base discount rate for the row's payment type",
	}

	FamilyProtectionRateParam = SensitivityParameter{
		Name:        "family_protection_rate",
		MinValue:    decimal.NewFromFloat(0.035),
		MaxValue:    decimal.NewFromFloat(0.075),
		Steps:       5,
		BaseValue:   decimal.NewFromFloat(0.055),
		Unit:        "rate",
		Description: "Discount rate used for the death benefit exposure",
	}

	MinSpreadParam = SensitivityParameter{
		Name:        "min_spread",
		MinValue:    decimal.NewFromFloat(0.01),
		MaxValue:    decimal.NewFromFloat(0.03),
		Steps:       5,
		BaseValue:   decimal.NewFromFloat(0.02),
		Unit:        "rate",
		Description: "Rate spread applied to the high offer",
	}

	MaxSpreadParam = SensitivityParameter{
		Name:        "max_spread",
		MinValue:    decimal.NewFromFloat(0.02),
		MaxValue:    decimal.NewFromFloat(0.04),
		Steps:       5,
		BaseValue:   decimal.NewFromFloat(0.03),
		Unit:        "rate",
		Description: "Rate spread applied to the low offer",
	}

	AnnualIncreaseParam = SensitivityParameter{
		Name:        "annual_increase",
		MinValue:    decimal.Zero,
		MaxValue:    decimal.NewFromInt(4),
		Steps:       5,
		BaseValue:   decimal.Zero,
		Unit:        "percent",
		Description: "Annual payment escalation",
	}
)

// GetCommonParameters returns the predefined sensitivity parameters
func GetCommonParameters() []SensitivityParameter {
	return []SensitivityParameter{
		BaseRateParam,
		FamilyProtectionRateParam,
		MinSpreadParam,
		MaxSpreadParam,
		AnnualIncreaseParam,
	}
}

// LookupParameter returns the predefined parameter with the given name
func LookupParameter(name string) (SensitivityParameter, bool) {
	for _, p := range GetCommonParameters() {
		if p.Name == name {
			return p, true
		}
	}
	return SensitivityParameter{}, false
}
