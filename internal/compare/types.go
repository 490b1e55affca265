package compare

import (
	"fmt"

	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
)

// Scenario is a named pricing configuration to run a row set under
type Scenario struct {
	Name        string
	Description string
	Config      domain.PricingConfig
}

// RowDelta is the change in one row's price between the base and an
// alternative scenario
type RowDelta struct {
	RowID            string          `json:"rowId"`
	BaseHighOffer    decimal.Decimal `json:"baseHighOffer"`
	AltHighOffer     decimal.Decimal `json:"altHighOffer"`
	HighOfferDiff    decimal.Decimal `json:"highOfferDiff"`
	LowOfferDiff     decimal.Decimal `json:"lowOfferDiff"`
	DeathBenefitDiff decimal.Decimal `json:"deathBenefitDiff"`
	BaseNoOffer      bool            `json:"baseNoOffer"`
	AltNoOffer       bool            `json:"altNoOffer"`
}

// OfferStatusChanged reports whether the row crossed the minimum-offer floor
func (d RowDelta) OfferStatusChanged() bool {
	return d.BaseNoOffer != d.AltNoOffer
}

// ComparisonResult holds the aggregate metrics for one scenario
type ComparisonResult struct {
	ScenarioName string              `json:"scenarioName"`
	Description  string              `json:"description"`
	Batch        *domain.BatchResult `json:"-"`

	// Key Metrics
	TotalLowOffer     decimal.Decimal `json:"totalLowOffer"`
	TotalHighOffer    decimal.Decimal `json:"totalHighOffer"`
	TotalDeathBenefit decimal.Decimal `json:"totalDeathBenefit"`
	Offers            int             `json:"offers"`
	NoOffers          int             `json:"noOffers"`
	Invalid           int             `json:"invalid"`

	// Comparison to Base
	HighDiffFromBase         decimal.Decimal `json:"highDiffFromBase"`
	HighPctFromBase          decimal.Decimal `json:"highPctFromBase"`
	LowDiffFromBase          decimal.Decimal `json:"lowDiffFromBase"`
	DeathBenefitDiffFromBase decimal.Decimal `json:"deathBenefitDiffFromBase"`
	OfferCountDiff           int             `json:"offerCountDiff"`
	RowDeltas                []RowDelta      `json:"rowDeltas,omitempty"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// MetricsCalculator extracts key metrics from priced batches
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics totals offers and death benefits across a batch.
// Suppressed offers contribute zero.
func (mc *MetricsCalculator) CalculateMetrics(name string, batch *domain.BatchResult) ComparisonResult {
	result := ComparisonResult{
		ScenarioName:      name,
		Batch:             batch,
		TotalLowOffer:     decimal.Zero,
		TotalHighOffer:    decimal.Zero,
		TotalDeathBenefit: decimal.Zero,
		Offers:            batch.Summary.Offers,
		NoOffers:          batch.Summary.NoOffers,
		Invalid:           batch.Summary.Invalid,
	}
	for _, rr := range batch.Rows {
		if rr.Result == nil {
			continue
		}
		result.TotalLowOffer = result.TotalLowOffer.Add(rr.Result.LowOffer)
		result.TotalHighOffer = result.TotalHighOffer.Add(rr.Result.HighOffer)
		result.TotalDeathBenefit = result.TotalDeathBenefit.Add(rr.Result.DeathBenefit)
	}
	return result
}

// CalculateComparison computes aggregate and per-row deltas against base.
// Rows are matched by position; both batches come from the same row set.
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.HighDiffFromBase = scenario.TotalHighOffer.Sub(base.TotalHighOffer)
	scenario.LowDiffFromBase = scenario.TotalLowOffer.Sub(base.TotalLowOffer)
	scenario.DeathBenefitDiffFromBase = scenario.TotalDeathBenefit.Sub(base.TotalDeathBenefit)
	scenario.OfferCountDiff = scenario.Offers - base.Offers

	if !base.TotalHighOffer.IsZero() {
		scenario.HighPctFromBase = scenario.HighDiffFromBase.
			Div(base.TotalHighOffer).
			Mul(decimal.NewFromInt(100))
	}

	if scenario.Batch == nil || base.Batch == nil {
		return scenario
	}
	n := min(len(scenario.Batch.Rows), len(base.Batch.Rows))
	scenario.RowDeltas = make([]RowDelta, 0, n)
	for i := 0; i < n; i++ {
		b, a := base.Batch.Rows[i].Result, scenario.Batch.Rows[i].Result
		if a == nil || b == nil {
			continue
		}
		scenario.RowDeltas = append(scenario.RowDeltas, RowDelta{
			RowID:            scenario.Batch.Rows[i].Row.ID,
			BaseHighOffer:    b.HighOffer,
			AltHighOffer:     a.HighOffer,
			HighOfferDiff:    a.HighOffer.Sub(b.HighOffer),
			LowOfferDiff:     a.LowOffer.Sub(b.LowOffer),
			DeathBenefitDiff: a.DeathBenefit.Sub(b.DeathBenefit),
			BaseNoOffer:      b.NoOffer,
			AltNoOffer:       a.NoOffer,
		})
	}
	return scenario
}

// GenerateRecommendations summarises the comparison in plain sentences
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	// Cheapest book for the buyer: the lowest total high offer
	cheapest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalHighOffer.LessThan(cheapest.TotalHighOffer) {
			cheapest = alt
		}
	}
	if cheapest != compSet.BaseResult {
		recommendations = append(recommendations,
			"Lowest Cost: "+cheapest.ScenarioName+" lowers total high offers by $"+
				cheapest.HighDiffFromBase.Abs().StringFixed(0))
	}

	// Most competitive: the most rows above the minimum offer
	mostOffers := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Offers > mostOffers.Offers {
			mostOffers = alt
		}
	}
	if mostOffers != compSet.BaseResult {
		recommendations = append(recommendations,
			"Most Offers: "+mostOffers.ScenarioName+" makes "+
				fmt.Sprintf("%d more offers", mostOffers.Offers-compSet.BaseResult.Offers))
	}

	for _, alt := range compSet.AlternativeResults {
		crossed := 0
		for _, d := range alt.RowDeltas {
			if d.OfferStatusChanged() {
				crossed++
			}
		}
		if crossed > 0 {
			recommendations = append(recommendations,
				fmt.Sprintf("Floor Crossings: %d rows change offer status under %s", crossed, alt.ScenarioName))
		}
	}

	return recommendations
}
