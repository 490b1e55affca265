package breakeven

import (
	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
)

// Target defines what the solver searches for
type Target string

const (
	// TargetImpliedRate finds the discount rate at which the stream's present
	// value equals a quoted purchase price
	TargetImpliedRate Target = "implied_rate"
	// TargetFloorAmount finds the smallest payment amount whose high offer
	// reaches the minimum offer
	TargetFloorAmount Target = "floor_amount"
)

// Constraints bound the search
type Constraints struct {
	// Rate bounds for implied_rate (as decimal, e.g., 0.12 for 12%)
	MinRate *decimal.Decimal `json:"minRate,omitempty"`
	MaxRate *decimal.Decimal `json:"maxRate,omitempty"`

	// Quoted purchase price, required for implied_rate
	Price *decimal.Decimal `json:"price,omitempty"`
}

// DefaultConstraints searches rates between 0% and 100%
func DefaultConstraints() Constraints {
	minRate := decimal.Zero
	maxRate := decimal.NewFromInt(1)
	return Constraints{MinRate: &minRate, MaxRate: &maxRate}
}

// Request defines one solver run
type Request struct {
	Row           domain.PricingRow
	Config        domain.PricingConfig
	Target        Target
	Constraints   Constraints
	MaxIterations int             // Maximum bisection steps
	Tolerance     decimal.Decimal // Width at which the bracket counts as converged
}

// Result contains the outcome of a solver run
type Result struct {
	Target          Target `json:"target"`
	RowID           string `json:"rowId,omitempty"`
	Success         bool   `json:"success"`
	Iterations      int    `json:"iterations"`
	ConvergenceInfo string `json:"convergenceInfo"`

	ImpliedRate        *decimal.Decimal `json:"impliedRate,omitempty"`
	SpreadOverAdjusted *decimal.Decimal `json:"spreadOverAdjusted,omitempty"`
	FloorAmount        *decimal.Decimal `json:"floorAmount,omitempty"`

	// Price is the quoted price for implied_rate and the minimum offer for
	// floor_amount
	Price        decimal.Decimal       `json:"price"`
	AdjustedRate decimal.Decimal       `json:"adjustedRate"`
	Pricing      *domain.PricingResult `json:"pricing"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	MaxIterations   int
	RateTolerance   decimal.Decimal
	AmountTolerance decimal.Decimal
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations:   100,
		RateTolerance:   decimal.RequireFromString("0.0000001"),
		AmountTolerance: decimal.RequireFromString("0.01"),
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate(target Target) error {
	if c.MinRate != nil && c.MaxRate != nil && c.MinRate.GreaterThan(*c.MaxRate) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_rate cannot be greater than max_rate",
		}
	}
	if c.MinRate != nil && c.MinRate.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_rate must be greater than -100%",
		}
	}
	if target == TargetImpliedRate {
		if c.Price == nil {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "price is required for implied_rate",
			}
		}
		if !c.Price.IsPositive() {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "price must be positive",
			}
		}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
