package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV, one line per scenario
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Total Low Offer",
		"Total High Offer",
		"Total Death Benefit",
		"Offers",
		"No Offers",
		"Invalid",
		"High Diff from Base",
		"High % Change",
		"Low Diff from Base",
		"Death Benefit Diff",
		"Offer Count Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}
	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.TotalLowOffer.StringFixed(2),
		result.TotalHighOffer.StringFixed(2),
		result.TotalDeathBenefit.StringFixed(2),
		strconv.Itoa(result.Offers),
		strconv.Itoa(result.NoOffers),
		strconv.Itoa(result.Invalid),
		result.HighDiffFromBase.StringFixed(2),
		result.HighPctFromBase.StringFixed(2),
		result.LowDiffFromBase.StringFixed(2),
		result.DeathBenefitDiffFromBase.StringFixed(2),
		strconv.Itoa(result.OfferCountDiff),
	}
}
