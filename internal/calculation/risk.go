package calculation

import (
	"strings"

	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
)

// RiskComponent is one matched risk key with its configured delta
type RiskComponent struct {
	Key   string          `json:"key"`
	Delta decimal.Decimal `json:"delta"`
}

// RiskAdjustment is the outcome of resolving age and gender against a profile
type RiskAdjustment struct {
	Keys       []string        `json:"keys"`
	Components []RiskComponent `json:"components"`
	Adjustment decimal.Decimal `json:"adjustment"`
}

// LCPKeys returns the gender key (male/female only) and the single age-band
// key matching age. Ages outside every band contribute no key.
func LCPKeys(age int, gender string) []string {
	keys := make([]string, 0, 2)
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case domain.GenderMale:
		keys = append(keys, domain.RiskKeyGenderMale)
	case domain.GenderFemale:
		keys = append(keys, domain.RiskKeyGenderFemale)
	}
	if band, ok := ageBandFor(age); ok {
		keys = append(keys, band.Key())
	}
	return keys
}

// AgeBand returns the band label for age, or "unknown"
func AgeBand(age int) string {
	if band, ok := ageBandFor(age); ok {
		return band.Label()
	}
	return "unknown"
}

func ageBandFor(age int) (domain.AgeBand, bool) {
	for _, b := range domain.AgeBands {
		if b.Contains(age) {
			return b, true
		}
	}
	return domain.AgeBand{}, false
}

// ResolveRisk sums the profile deltas for the keys matching age and gender.
// Keys missing from the profile count as zero.
func ResolveRisk(age int, gender string, profile domain.RiskProfile) RiskAdjustment {
	keys := LCPKeys(age, gender)
	adj := RiskAdjustment{
		Keys:       keys,
		Components: make([]RiskComponent, 0, len(keys)),
		Adjustment: decimal.Zero,
	}
	for _, k := range keys {
		delta := profile.Get(k)
		adj.Components = append(adj.Components, RiskComponent{Key: k, Delta: delta})
		adj.Adjustment = adj.Adjustment.Add(delta)
	}
	return adj
}
