package output

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/sspricer/internal/calculation"
	"github.com/rgehrsitz/sspricer/internal/config"
	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRow() domain.PricingRow {
	return domain.PricingRow{
		ID:          "lead-7",
		Gender:      "male",
		Age:         45,
		PaymentType: domain.PaymentTypeLifeContingent,
		Frequency:   domain.FrequencyMonthly,
		StartDate:   "2026-05-01",
		EndDate:     "2054-05-01",
		Amount:      decimal.RequireFromString("4090.86"),
	}
}

func TestFormatBreakdown_Console(t *testing.T) {
	b, err := calculation.NewPricingEngine().Breakdown(testRow(), config.DefaultPricingConfig(), 3)
	require.NoError(t, err)

	out, err := FormatBreakdown(b, "console")
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "PRICING BREAKDOWN")
	assert.Contains(t, s, "Row:                  lead-7")
	assert.Contains(t, s, "band 36-45")
	assert.Contains(t, s, "Base rate:            8.500%")
	assert.Contains(t, s, "age-36-45:")
	assert.Contains(t, s, "Adjusted rate:        10.500%")
	assert.Contains(t, s, "SCHEDULE (first 3)")
	assert.Contains(t, s, "2026-07-01")
}

func TestFormatBreakdown_JSON(t *testing.T) {
	b, err := calculation.NewPricingEngine().Breakdown(testRow(), config.DefaultPricingConfig(), 0)
	require.NoError(t, err)

	out, err := FormatBreakdown(b, "json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "36-45", decoded["ageBand"])
	assert.Len(t, decoded["schedulePreview"], calculation.DefaultSchedulePreview)
}

func TestFormatBreakdown_UnknownFormat(t *testing.T) {
	b, err := calculation.NewPricingEngine().Breakdown(testRow(), config.DefaultPricingConfig(), 0)
	require.NoError(t, err)

	_, err = FormatBreakdown(b, "html")
	assert.ErrorContains(t, err, "unsupported breakdown format")
}

func TestSensitivityFormatters(t *testing.T) {
	analyzer := calculation.NewSensitivityAnalyzer(nil)
	analysis, err := analyzer.AnalyzeSingleParameter(testRow(), config.DefaultPricingConfig(), domain.BaseRateParam)
	require.NoError(t, err)

	f, err := GetSensitivityFormatter("console")
	require.NoError(t, err)
	s, err := f.FormatSensitivityAnalysis(analysis)
	require.NoError(t, err)
	assert.Contains(t, s, "SENSITIVITY ANALYSIS: BASE RATE")
	assert.Contains(t, s, "8.500% *")
	assert.Contains(t, s, "Risk level:")

	jf, err := GetSensitivityFormatter("json")
	require.NoError(t, err)
	js, err := jf.FormatSensitivityAnalysis(analysis)
	require.NoError(t, err)
	var decoded domain.ParameterSensitivityAnalysis
	require.NoError(t, json.Unmarshal([]byte(js), &decoded))
	assert.Len(t, decoded.Results, domain.BaseRateParam.Steps)

	_, err = GetSensitivityFormatter("xml")
	assert.Error(t, err)

	_, err = SensitivityConsoleFormatter{}.FormatSensitivityAnalysis(&domain.ParameterSensitivityAnalysis{})
	assert.Error(t, err)
}
