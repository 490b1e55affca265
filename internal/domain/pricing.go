package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the ISO calendar-date layout used for every date the
// engine accepts or produces.
const DateLayout = "2006-01-02"

// PaymentFrequency identifies how often a settlement pays out
type PaymentFrequency string

const (
	FrequencyMonthly       PaymentFrequency = "Monthly"
	FrequencyQuarterly     PaymentFrequency = "Quarterly"
	FrequencySemiannually  PaymentFrequency = "Semiannually"
	FrequencySemiAnnually  PaymentFrequency = "Semi-Annually"
	FrequencyAnnually      PaymentFrequency = "Annually"
	FrequencyLumpSum       PaymentFrequency = "Lump Sum"
	defaultPaymentsPerYear                  = 12
)

var paymentsPerYear = map[PaymentFrequency]int{
	FrequencyMonthly:      12,
	FrequencyQuarterly:    4,
	FrequencySemiannually: 2,
	FrequencySemiAnnually: 2,
	FrequencyAnnually:     1,
	FrequencyLumpSum:      1,
}

// PaymentsPerYear returns the number of payments per year. Unknown or blank
// frequencies step monthly.
func (f PaymentFrequency) PaymentsPerYear() int {
	if n, ok := paymentsPerYear[f]; ok {
		return n
	}
	return defaultPaymentsPerYear
}

// StepMonths returns the number of months between consecutive payments
func (f PaymentFrequency) StepMonths() int {
	return 12 / f.PaymentsPerYear()
}

// IsLumpSum reports whether the stream is a single payment
func (f PaymentFrequency) IsLumpSum() bool {
	return f == FrequencyLumpSum
}

// IsKnown reports whether f is one of the recognised frequencies
func (f PaymentFrequency) IsKnown() bool {
	_, ok := paymentsPerYear[f]
	return ok
}

// ParsePaymentFrequency normalises user input such as "monthly",
// "semi-annually" or "lump_sum". Unrecognised values are returned unchanged
// so that they fall back to monthly stepping.
func ParsePaymentFrequency(s string) PaymentFrequency {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	switch key {
	case "monthly":
		return FrequencyMonthly
	case "quarterly":
		return FrequencyQuarterly
	case "semiannually", "semiannual":
		return FrequencySemiannually
	case "annually", "annual", "yearly":
		return FrequencyAnnually
	case "lumpsum":
		return FrequencyLumpSum
	}
	return PaymentFrequency(strings.TrimSpace(s))
}

// PaymentType distinguishes guaranteed from life-contingent streams
type PaymentType string

const (
	PaymentTypeLifeContingent PaymentType = "LCP"
	PaymentTypeGuaranteed     PaymentType = "GP"
)

// IsValid reports whether t is LCP or GP
func (t PaymentType) IsValid() bool {
	return t == PaymentTypeLifeContingent || t == PaymentTypeGuaranteed
}

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// ScheduleEntry is a single dated payment
type ScheduleEntry struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// Schedule is an ordered (ascending by date) list of payments
type Schedule []ScheduleEntry

// Total returns the undiscounted sum of all payments
func (s Schedule) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s {
		total = total.Add(e.Amount)
	}
	return total
}

// PricingRow is one lead as supplied by the pricing grid or a batch file.
// Dates are ISO YYYY-MM-DD strings; validation happens in the engine.
type PricingRow struct {
	ID               string           `yaml:"id,omitempty" json:"id,omitempty"`
	FirstName        string           `yaml:"first_name,omitempty" json:"firstName,omitempty"`
	LastName         string           `yaml:"last_name,omitempty" json:"lastName,omitempty"`
	InsuranceCompany string           `yaml:"insurance_company,omitempty" json:"insuranceCompany,omitempty"`
	Gender           string           `yaml:"gender" json:"gender"`
	Age              int              `yaml:"age" json:"age"`
	PaymentType      PaymentType      `yaml:"payment_type" json:"paymentType"`
	Frequency        PaymentFrequency `yaml:"payment_frequency,omitempty" json:"paymentFrequency,omitempty"`
	StartDate        string           `yaml:"payment_start_date" json:"paymentStartDate"`
	EndDate          string           `yaml:"payment_end_date" json:"paymentEndDate"`
	Amount           decimal.Decimal  `yaml:"payment_amount" json:"paymentAmount"`
	AnnualIncrease   *decimal.Decimal `yaml:"annual_increase,omitempty" json:"annualIncrease,omitempty"`
}

// SameInputs reports whether two rows share every field that feeds the
// pricing calculation. Frequencies compare after parsing; an unset annual
// increase only matches another unset one.
func (r PricingRow) SameInputs(other PricingRow) bool {
	return r.Gender == other.Gender &&
		r.Age == other.Age &&
		r.PaymentType == other.PaymentType &&
		ParsePaymentFrequency(string(r.Frequency)) == ParsePaymentFrequency(string(other.Frequency)) &&
		r.StartDate == other.StartDate &&
		r.EndDate == other.EndDate &&
		r.Amount.Equal(other.Amount) &&
		sameIncrease(r.AnnualIncrease, other.AnnualIncrease)
}

func sameIncrease(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// PricingResult is the priced outcome for a single row
type PricingResult struct {
	RowID          string          `json:"rowId,omitempty"`
	PaymentCount   int             `json:"paymentCount"`
	LowOffer       decimal.Decimal `json:"lowOffer"`
	HighOffer      decimal.Decimal `json:"highOffer"`
	DeathBenefit   decimal.Decimal `json:"deathBenefit"`
	NoOffer        bool            `json:"noOffer"`
	BaseRate       decimal.Decimal `json:"baseRate"`
	RiskAdjustment decimal.Decimal `json:"riskAdjustment"`
	AdjustedRate   decimal.Decimal `json:"adjustedRate"`
	RiskKeys       []string        `json:"riskKeys,omitempty"`
}

// RowResult pairs a row with its result or the reason it could not be priced
type RowResult struct {
	Row    PricingRow     `json:"row"`
	Result *PricingResult `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// BatchSummary counts outcomes across a batch
type BatchSummary struct {
	Total    int `json:"total"`
	Offers   int `json:"offers"`
	NoOffers int `json:"noOffers"`
	Invalid  int `json:"invalid"`
}

// BatchResult holds the results of a batch in input order
type BatchResult struct {
	Rows    []RowResult  `json:"rows"`
	Summary BatchSummary `json:"summary"`
}

// Summarize recomputes the batch summary from the row results
func (b *BatchResult) Summarize() {
	s := BatchSummary{Total: len(b.Rows)}
	for _, r := range b.Rows {
		switch {
		case r.Result == nil:
			s.Invalid++
		case r.Result.NoOffer:
			s.NoOffers++
		default:
			s.Offers++
		}
	}
	b.Summary = s
}

// AssignRowIDs gives every row without an ID a fresh UUID
func AssignRowIDs(rows []PricingRow) {
	for i := range rows {
		if strings.TrimSpace(rows[i].ID) == "" {
			rows[i].ID = uuid.NewString()
		}
	}
}
