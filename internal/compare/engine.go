package compare

import (
	"context"
	"fmt"
	"sort"

	"github.com/rgehrsitz/sspricer/internal/calculation"
	"github.com/rgehrsitz/sspricer/internal/config"
	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareEngine prices one row set under several pricing configurations
type CompareEngine struct {
	Pricing           *calculation.PricingEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(pricing *calculation.PricingEngine) *CompareEngine {
	if pricing == nil {
		pricing = calculation.NewPricingEngine()
	}
	return &CompareEngine{
		Pricing:           pricing,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// Compare prices rows under base and every alternative
func (ce *CompareEngine) Compare(
	ctx context.Context,
	rows []domain.PricingRow,
	base Scenario,
	alternatives []Scenario,
) (*ComparisonSet, error) {

	baseBatch, err := ce.Pricing.PriceBatch(ctx, rows, base.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to price base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(base.Name, baseBatch)
	baseResult.Description = base.Description

	results := make([]ComparisonResult, 0, len(alternatives))
	for _, alt := range alternatives {
		batch, err := ce.Pricing.PriceBatch(ctx, rows, alt.Config)
		if err != nil {
			return nil, fmt.Errorf("failed to price scenario %s: %w", alt.Name, err)
		}
		altResult := ce.MetricsCalculator.CalculateMetrics(alt.Name, batch)
		altResult.Description = alt.Description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		results = append(results, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

// CompareTemplates prices rows under base and under base with each named
// template applied
func (ce *CompareEngine) CompareTemplates(
	ctx context.Context,
	rows []domain.PricingRow,
	base Scenario,
	templateNames []string,
) (*ComparisonSet, error) {
	alternatives, err := TemplateScenarios(base, templateNames)
	if err != nil {
		return nil, err
	}
	return ce.Compare(ctx, rows, base, alternatives)
}

// TemplateScenarios derives one scenario per named template from base
func TemplateScenarios(base Scenario, templateNames []string) ([]Scenario, error) {
	templates := BuiltInTemplates()
	scenarios := make([]Scenario, 0, len(templateNames))
	for _, name := range templateNames {
		tmpl, ok := templates[name]
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		cfg, err := tmpl.Apply(base.Config)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", name, err)
		}
		scenarios = append(scenarios, Scenario{
			Name:        base.Name + "_" + name,
			Description: tmpl.Description,
			Config:      cfg,
		})
	}
	return scenarios, nil
}

// Template is a named, reusable adjustment to a pricing configuration
type Template struct {
	Description string
	Adjust      func(cfg *domain.PricingConfig)
}

// Apply returns an adjusted, validated copy of base
func (t Template) Apply(base domain.PricingConfig) (domain.PricingConfig, error) {
	cfg := base.Clone()
	t.Adjust(&cfg)
	if err := config.NewInputParser().ValidatePricingConfig(&cfg); err != nil {
		return domain.PricingConfig{}, err
	}
	return cfg, nil
}

func shiftBaseRates(delta decimal.Decimal) func(*domain.PricingConfig) {
	return func(cfg *domain.PricingConfig) {
		cfg.BaseRateGuaranteed = cfg.BaseRateGuaranteed.Add(delta)
		cfg.BaseRateLifeContingent = cfg.BaseRateLifeContingent.Add(delta)
		cfg.BaseRateLumpSumGuaranteed = cfg.BaseRateLumpSumGuaranteed.Add(delta)
		cfg.BaseRateLumpSumLifeContingent = cfg.BaseRateLumpSumLifeContingent.Add(delta)
	}
}

// BuiltInTemplates returns the predefined comparison templates
func BuiltInTemplates() map[string]Template {
	return map[string]Template{
		"rates_up_100bp": {
			Description: "All base rates +1.00%",
			Adjust:      shiftBaseRates(decimal.RequireFromString("0.01")),
		},
		"rates_down_100bp": {
			Description: "All base rates -1.00%",
			Adjust:      shiftBaseRates(decimal.RequireFromString("-0.01")),
		},
		"tight_spreads": {
			Description: "Rate spreads halved",
			Adjust: func(cfg *domain.PricingConfig) {
				cfg.RateSpreads.Min = cfg.RateSpreads.Min.Div(decimal.NewFromInt(2))
				cfg.RateSpreads.Max = cfg.RateSpreads.Max.Div(decimal.NewFromInt(2))
			},
		},
		"no_haircut": {
			Description: "Dollar adjustments removed",
			Adjust: func(cfg *domain.PricingConfig) {
				cfg.AmountAdjustments = domain.Spread{Min: decimal.Zero, Max: decimal.Zero}
			},
		},
		"no_risk": {
			Description: "Age and gender adjustments ignored",
			Adjust: func(cfg *domain.PricingConfig) {
				cfg.RiskProfile = domain.RiskProfile{}
			},
		},
	}
}

// TemplateNames returns the built-in template names, sorted
func TemplateNames() []string {
	names := make([]string, 0)
	for name := range BuiltInTemplates() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
