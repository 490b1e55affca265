package compare

import (
	"testing"

	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
)

func priced(id string, low, high, death int64, noOffer bool) domain.RowResult {
	return domain.RowResult{
		Row: domain.PricingRow{ID: id},
		Result: &domain.PricingResult{
			RowID:        id,
			LowOffer:     decimal.NewFromInt(low),
			HighOffer:    decimal.NewFromInt(high),
			DeathBenefit: decimal.NewFromInt(death),
			NoOffer:      noOffer,
		},
	}
}

func batchOf(rows ...domain.RowResult) *domain.BatchResult {
	b := &domain.BatchResult{Rows: rows}
	b.Summarize()
	return b
}

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	calc := NewMetricsCalculator()

	batch := batchOf(
		priced("a", 100000, 120000, 200000, false),
		priced("b", 0, 0, 50000, true),
		domain.RowResult{Row: domain.PricingRow{ID: "c"}, Error: "invalid"},
	)

	result := calc.CalculateMetrics("Test Scenario", batch)

	if result.ScenarioName != "Test Scenario" {
		t.Errorf("Expected scenario name 'Test Scenario', got %s", result.ScenarioName)
	}
	if !result.TotalLowOffer.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("Expected total low offer 100000, got %s", result.TotalLowOffer)
	}
	if !result.TotalHighOffer.Equal(decimal.NewFromInt(120000)) {
		t.Errorf("Expected total high offer 120000, got %s", result.TotalHighOffer)
	}
	if !result.TotalDeathBenefit.Equal(decimal.NewFromInt(250000)) {
		t.Errorf("Expected total death benefit 250000, got %s", result.TotalDeathBenefit)
	}
	if result.Offers != 1 || result.NoOffers != 1 || result.Invalid != 1 {
		t.Errorf("Expected 1/1/1 offers/no offers/invalid, got %d/%d/%d", result.Offers, result.NoOffers, result.Invalid)
	}
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator()

	base := calc.CalculateMetrics("base", batchOf(
		priced("a", 100000, 120000, 200000, false),
		priced("b", 0, 0, 50000, true),
	))
	alt := calc.CalculateMetrics("alt", batchOf(
		priced("a", 90000, 110000, 190000, false),
		priced("b", 15000, 16000, 50000, false),
	))

	result := calc.CalculateComparison(alt, base)

	if !result.HighDiffFromBase.Equal(decimal.NewFromInt(6000)) {
		t.Errorf("Expected high diff 6000, got %s", result.HighDiffFromBase)
	}
	if !result.LowDiffFromBase.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("Expected low diff 5000, got %s", result.LowDiffFromBase)
	}
	if !result.HighPctFromBase.Equal(decimal.NewFromInt(5)) {
		t.Errorf("Expected high pct 5, got %s", result.HighPctFromBase)
	}
	if !result.DeathBenefitDiffFromBase.Equal(decimal.NewFromInt(-10000)) {
		t.Errorf("Expected death benefit diff -10000, got %s", result.DeathBenefitDiffFromBase)
	}
	if result.OfferCountDiff != 1 {
		t.Errorf("Expected offer count diff 1, got %d", result.OfferCountDiff)
	}
	if len(result.RowDeltas) != 2 {
		t.Fatalf("Expected 2 row deltas, got %d", len(result.RowDeltas))
	}
	if !result.RowDeltas[0].HighOfferDiff.Equal(decimal.NewFromInt(-10000)) {
		t.Errorf("Expected row a high diff -10000, got %s", result.RowDeltas[0].HighOfferDiff)
	}
	if result.RowDeltas[0].OfferStatusChanged() {
		t.Error("Row a should keep its offer status")
	}
	if !result.RowDeltas[1].OfferStatusChanged() {
		t.Error("Row b should change offer status")
	}
}

func TestMetricsCalculator_CalculateComparison_ZeroBase(t *testing.T) {
	calc := NewMetricsCalculator()

	base := calc.CalculateMetrics("base", batchOf(priced("a", 0, 0, 0, true)))
	alt := calc.CalculateMetrics("alt", batchOf(priced("a", 10, 20, 0, false)))

	result := calc.CalculateComparison(alt, base)
	if !result.HighPctFromBase.IsZero() {
		t.Errorf("Expected zero percentage against a zero base, got %s", result.HighPctFromBase)
	}
}

func TestGenerateRecommendations(t *testing.T) {
	calc := NewMetricsCalculator()
	base := calc.CalculateMetrics("base", batchOf(
		priced("a", 100000, 120000, 200000, false),
		priced("b", 0, 0, 50000, true),
	))
	alt := calc.CalculateComparison(calc.CalculateMetrics("alt", batchOf(
		priced("a", 80000, 100000, 200000, false),
		priced("b", 15000, 16000, 50000, false),
	)), base)

	recs := GenerateRecommendations(&ComparisonSet{
		BaseScenarioName:   "base",
		BaseResult:         &base,
		AlternativeResults: []ComparisonResult{alt},
	})

	if len(recs) != 3 {
		t.Fatalf("Expected 3 recommendations, got %d: %v", len(recs), recs)
	}
	if !contains(recs[0], "Lowest Cost: alt") {
		t.Errorf("Unexpected first recommendation: %s", recs[0])
	}
	if !contains(recs[1], "Most Offers: alt makes 1 more offers") {
		t.Errorf("Unexpected second recommendation: %s", recs[1])
	}
	if !contains(recs[2], "1 rows change offer status") {
		t.Errorf("Unexpected third recommendation: %s", recs[2])
	}
}

func TestGenerateRecommendations_NoAlternatives(t *testing.T) {
	base := NewMetricsCalculator().CalculateMetrics("base", batchOf())
	recs := GenerateRecommendations(&ComparisonSet{BaseResult: &base})
	if len(recs) != 0 {
		t.Errorf("Expected no recommendations, got %v", recs)
	}
}
