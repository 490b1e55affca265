package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/sspricer/internal/config"
	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
)

func compareRows() []domain.PricingRow {
	return []domain.PricingRow{
		{
			ID: "lcp", Gender: "male", Age: 45, PaymentType: domain.PaymentTypeLifeContingent,
			Frequency: domain.FrequencyMonthly, StartDate: "2026-05-01", EndDate: "2054-05-01",
			Amount: decimal.RequireFromString("4090.86"),
		},
		{
			ID: "gp", Gender: "female", Age: 30, PaymentType: domain.PaymentTypeGuaranteed,
			Frequency: domain.FrequencyAnnually, StartDate: "2027-01-01", EndDate: "2036-01-01",
			Amount: decimal.NewFromInt(25000),
		},
	}
}

func TestCompareEngine_CompareTemplates(t *testing.T) {
	ce := NewCompareEngine(nil)
	base := Scenario{Name: "default", Config: config.DefaultPricingConfig()}

	set, err := ce.CompareTemplates(context.Background(), compareRows(), base, []string{"rates_up_100bp", "no_haircut"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if set.BaseScenarioName != "default" {
		t.Errorf("Expected base name default, got %s", set.BaseScenarioName)
	}
	if len(set.AlternativeResults) != 2 {
		t.Fatalf("Expected 2 alternatives, got %d", len(set.AlternativeResults))
	}

	up := set.AlternativeResults[0]
	if up.ScenarioName != "default_rates_up_100bp" {
		t.Errorf("Unexpected scenario name %s", up.ScenarioName)
	}
	if !up.HighDiffFromBase.IsNegative() {
		t.Errorf("Higher discount rates should lower high offers, diff %s", up.HighDiffFromBase)
	}

	noHaircut := set.AlternativeResults[1]
	// 2 offer rows each lose the $20,000 min adjustment from the high offer
	if !noHaircut.HighDiffFromBase.Equal(decimal.NewFromInt(40000)) {
		t.Errorf("Expected high diff 40000 without haircuts, got %s", noHaircut.HighDiffFromBase)
	}
	if !noHaircut.DeathBenefitDiffFromBase.IsZero() {
		t.Errorf("Haircuts must not change the death benefit, diff %s", noHaircut.DeathBenefitDiffFromBase)
	}
}

func TestCompareEngine_UnknownTemplate(t *testing.T) {
	ce := NewCompareEngine(nil)
	base := Scenario{Name: "default", Config: config.DefaultPricingConfig()}

	if _, err := ce.CompareTemplates(context.Background(), compareRows(), base, []string{"nope"}); err == nil {
		t.Error("Expected error for unknown template")
	}
}

func TestCompareEngine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	base := Scenario{Name: "default", Config: config.DefaultPricingConfig()}
	if _, err := NewCompareEngine(nil).Compare(ctx, compareRows(), base, nil); err == nil {
		t.Error("Expected error for cancelled context")
	}
}

func TestBuiltInTemplates_ApplyLeavesBaseUntouched(t *testing.T) {
	base := config.DefaultPricingConfig()
	for _, name := range TemplateNames() {
		cfg, err := BuiltInTemplates()[name].Apply(base)
		if err != nil {
			t.Errorf("template %s: %v", name, err)
			continue
		}
		_ = cfg
	}
	if !base.BaseRateGuaranteed.Equal(decimal.RequireFromString("0.085")) || len(base.RiskProfile) != 8 {
		t.Error("Templates must not modify the base configuration")
	}
}

func TestTemplateScenarios(t *testing.T) {
	base := Scenario{Name: "desk", Config: config.DefaultPricingConfig()}

	scenarios, err := TemplateScenarios(base, []string{"tight_spreads"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(scenarios) != 1 || scenarios[0].Name != "desk_tight_spreads" {
		t.Fatalf("Unexpected scenarios %+v", scenarios)
	}
	if !scenarios[0].Config.RateSpreads.Min.Equal(decimal.RequireFromString("0.01")) {
		t.Errorf("Expected halved min spread, got %s", scenarios[0].Config.RateSpreads.Min)
	}

	if _, err := TemplateScenarios(base, []string{"rates_up_100bp", "missing"}); err == nil {
		t.Error("Expected error for unknown template")
	}
}
