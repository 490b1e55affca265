package calculation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrInvalidRow is wrapped by every RowValidationError
var ErrInvalidRow = errors.New("invalid pricing row")

// Age limits accepted for a payee
const (
	MinPayeeAge = 18
	MaxPayeeAge = 100
)

// RowValidationError reports the first field that stops a row from pricing
type RowValidationError struct {
	RowID  string
	Field  string
	Reason string
}

func (e *RowValidationError) Error() string {
	if e.RowID != "" {
		return fmt.Sprintf("row %s: %s %s", e.RowID, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *RowValidationError) Unwrap() error { return ErrInvalidRow }

// PricingInput is a validated row with parsed dates and defaults applied
type PricingInput struct {
	RowID          string
	Gender         string
	Age            int
	PaymentType    domain.PaymentType
	Frequency      domain.PaymentFrequency
	Start          time.Time
	End            time.Time
	Amount         decimal.Decimal
	AnnualIncrease decimal.Decimal
}

// ValidAge reports whether age is an acceptable payee age
func ValidAge(age int) bool { return age >= MinPayeeAge && age <= MaxPayeeAge }

// ValidGender reports whether gender is male or female
func ValidGender(gender string) bool {
	g := strings.ToLower(strings.TrimSpace(gender))
	return g == domain.GenderMale || g == domain.GenderFemale
}

// ValidDateRange reports whether both dates parse and start precedes end
func ValidDateRange(startDate, endDate string) bool {
	start, err := ParseDate(startDate)
	if err != nil {
		return false
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return false
	}
	return start.Before(end)
}

// NormalizeRow validates a row and fills in the configured default frequency
// and annual increase. Inverted date ranges are accepted; they simply price
// to an empty schedule.
func NormalizeRow(row domain.PricingRow, cfg domain.PricingConfig) (PricingInput, error) {
	invalid := func(field, reason string) (PricingInput, error) {
		return PricingInput{}, &RowValidationError{RowID: row.ID, Field: field, Reason: reason}
	}

	if !ValidGender(row.Gender) {
		return invalid("gender", fmt.Sprintf("must be male or female, got %q", row.Gender))
	}
	if !ValidAge(row.Age) {
		return invalid("age", fmt.Sprintf("must be between %d and %d, got %d", MinPayeeAge, MaxPayeeAge, row.Age))
	}
	if !row.PaymentType.IsValid() {
		return invalid("payment type", fmt.Sprintf("must be LCP or GP, got %q", row.PaymentType))
	}
	if !row.Amount.IsPositive() {
		return invalid("payment amount", "must be positive")
	}
	start, err := ParseDate(row.StartDate)
	if err != nil {
		return invalid("payment start date", fmt.Sprintf("must be YYYY-MM-DD, got %q", row.StartDate))
	}
	end, err := ParseDate(row.EndDate)
	if err != nil {
		return invalid("payment end date", fmt.Sprintf("must be YYYY-MM-DD, got %q", row.EndDate))
	}

	frequency := row.Frequency
	if frequency == "" {
		frequency = cfg.DefaultFrequency
	}
	if frequency == "" {
		frequency = domain.FrequencyMonthly
	}
	increase := cfg.DefaultAnnualIncrease
	if row.AnnualIncrease != nil {
		increase = *row.AnnualIncrease
	}

	return PricingInput{
		RowID:          row.ID,
		Gender:         strings.ToLower(strings.TrimSpace(row.Gender)),
		Age:            row.Age,
		PaymentType:    row.PaymentType,
		Frequency:      domain.ParsePaymentFrequency(string(frequency)),
		Start:          start,
		End:            end,
		Amount:         row.Amount,
		AnnualIncrease: increase,
	}, nil
}
