package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/sspricer/internal/config"
	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRow() domain.PricingRow {
	return domain.PricingRow{
		ID:          "row-1",
		Gender:      "male",
		Age:         45,
		PaymentType: domain.PaymentTypeLifeContingent,
		Frequency:   domain.FrequencyMonthly,
		StartDate:   "2026-05-01",
		EndDate:     "2054-05-01",
		Amount:      dec("4090.86"),
	}
}

func TestNormalizeRow_Valid(t *testing.T) {
	in, err := NormalizeRow(validRow(), config.DefaultPricingConfig())
	require.NoError(t, err)

	assert.Equal(t, "row-1", in.RowID)
	assert.Equal(t, "male", in.Gender)
	assert.Equal(t, domain.FrequencyMonthly, in.Frequency)
	assert.Equal(t, "2026-05-01", in.Start.Format(domain.DateLayout))
	assert.True(t, in.AnnualIncrease.IsZero())
}

func TestNormalizeRow_Defaults(t *testing.T) {
	cfg := config.DefaultPricingConfig()
	cfg.DefaultFrequency = domain.FrequencyQuarterly
	cfg.DefaultAnnualIncrease = decimal.NewFromInt(3)

	row := validRow()
	row.Frequency = ""
	row.Gender = " Female "
	in, err := NormalizeRow(row, cfg)
	require.NoError(t, err)
	assert.Equal(t, domain.FrequencyQuarterly, in.Frequency)
	assert.True(t, in.AnnualIncrease.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, "female", in.Gender)

	override := decimal.NewFromInt(1)
	row.AnnualIncrease = &override
	row.Frequency = "semi-annually"
	in, err = NormalizeRow(row, cfg)
	require.NoError(t, err)
	assert.True(t, in.AnnualIncrease.Equal(override), "row value wins over the default")
	assert.Equal(t, domain.FrequencySemiannually, in.Frequency)

	cfg.DefaultFrequency = ""
	row.Frequency = ""
	in, err = NormalizeRow(row, cfg)
	require.NoError(t, err)
	assert.Equal(t, domain.FrequencyMonthly, in.Frequency)
}

func TestNormalizeRow_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*domain.PricingRow)
		field  string
	}{
		{"blank gender", func(r *domain.PricingRow) { r.Gender = "" }, "gender"},
		{"other gender", func(r *domain.PricingRow) { r.Gender = "unknown" }, "gender"},
		{"too young", func(r *domain.PricingRow) { r.Age = 17 }, "age"},
		{"too old", func(r *domain.PricingRow) { r.Age = 101 }, "age"},
		{"bad payment type", func(r *domain.PricingRow) { r.PaymentType = "XYZ" }, "payment type"},
		{"zero amount", func(r *domain.PricingRow) { r.Amount = decimal.Zero }, "payment amount"},
		{"negative amount", func(r *domain.PricingRow) { r.Amount = dec("-5") }, "payment amount"},
		{"bad start date", func(r *domain.PricingRow) { r.StartDate = "2026-13-01" }, "payment start date"},
		{"blank end date", func(r *domain.PricingRow) { r.EndDate = "" }, "payment end date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := validRow()
			tt.modify(&row)

			_, err := NormalizeRow(row, config.DefaultPricingConfig())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRow))

			var rve *RowValidationError
			require.True(t, errors.As(err, &rve))
			assert.Equal(t, tt.field, rve.Field)
			assert.Equal(t, "row-1", rve.RowID)
			assert.Contains(t, err.Error(), "row row-1: "+tt.field)
		})
	}
}

func TestNormalizeRow_InvertedRangeAccepted(t *testing.T) {
	row := validRow()
	row.StartDate, row.EndDate = row.EndDate, row.StartDate
	_, err := NormalizeRow(row, config.DefaultPricingConfig())
	assert.NoError(t, err)
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidAge(18))
	assert.True(t, ValidAge(100))
	assert.False(t, ValidAge(17))
	assert.False(t, ValidAge(101))

	assert.True(t, ValidGender("MALE"))
	assert.True(t, ValidGender("female"))
	assert.False(t, ValidGender("x"))

	assert.True(t, ValidDateRange("2026-01-01", "2026-01-02"))
	assert.False(t, ValidDateRange("2026-01-01", "2026-01-01"))
	assert.False(t, ValidDateRange("2026-01-02", "2026-01-01"))
	assert.False(t, ValidDateRange("bad", "2026-01-01"))
}

func TestRowValidationError_NoRowID(t *testing.T) {
	err := &RowValidationError{Field: "age", Reason: "must be positive"}
	assert.Equal(t, "age must be positive", err.Error())
}
