package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/sspricer/internal/calculation"
	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// maxDoublings caps the search for an upper bound on the floor amount
const maxDoublings = 64

// Solver inverts the pricing engine by bisection
type Solver struct {
	Engine  *calculation.PricingEngine
	Options SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(engine *calculation.PricingEngine, options SolverOptions) *Solver {
	if engine == nil {
		engine = calculation.NewPricingEngine()
	}
	return &Solver{
		Engine:  engine,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(engine *calculation.PricingEngine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// rowContext is the validated row with its resolved rates
type rowContext struct {
	in       calculation.PricingInput
	cfg      domain.PricingConfig
	adjusted decimal.Decimal
}

// Solve runs the search selected by req.Target
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Constraints.Validate(req.Target); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}

	cfg := req.Config.Clone()
	in, err := calculation.NormalizeRow(req.Row, cfg)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "invalid row", Cause: err}
	}
	rc := rowContext{in: in, cfg: cfg, adjusted: cfg.BaseRate(in.PaymentType, in.Frequency)}
	if in.PaymentType == domain.PaymentTypeLifeContingent {
		rc.adjusted = rc.adjusted.Add(calculation.ResolveRisk(in.Age, in.Gender, cfg.RiskProfile).Adjustment)
	}
	if calculation.PaymentCount(in.Start, in.End, in.Frequency) == 0 {
		return nil, &BreakEvenError{Operation: "solve", Message: "row has no payments in its date range"}
	}

	switch req.Target {
	case TargetImpliedRate:
		if req.Tolerance.IsZero() {
			req.Tolerance = s.Options.RateTolerance
		}
		return s.solveImpliedRate(ctx, req, rc)
	case TargetFloorAmount:
		if req.Tolerance.IsZero() {
			req.Tolerance = s.Options.AmountTolerance
		}
		return s.solveFloorAmount(ctx, req, rc)
	default:
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("unsupported target: %s", req.Target),
		}
	}
}

// solveImpliedRate finds the rate at which the undiscounted stream is worth
// the quoted price. Present value falls as the rate rises.
func (s *Solver) solveImpliedRate(ctx context.Context, req Request, rc rowContext) (*Result, error) {
	defaults := DefaultConstraints()
	lo, hi := *defaults.MinRate, *defaults.MaxRate
	if req.Constraints.MinRate != nil {
		lo = *req.Constraints.MinRate
	}
	if req.Constraints.MaxRate != nil {
		hi = *req.Constraints.MaxRate
	}
	price := *req.Constraints.Price
	in := rc.in

	npvAt := func(rate decimal.Decimal) decimal.Decimal {
		return calculation.GuaranteedNPV(in.Amount, in.Start, in.End, in.Frequency, in.AnnualIncrease, rate)
	}
	maxPrice, minPrice := npvAt(lo), npvAt(hi)
	if price.GreaterThan(maxPrice) || price.LessThan(minPrice) {
		return nil, &BreakEvenError{
			Operation: "solve_implied_rate",
			Message: fmt.Sprintf("price %s is outside the range %s to %s reachable between rates %s and %s",
				price.StringFixed(2), minPrice.StringFixed(2), maxPrice.StringFixed(2), lo, hi),
		}
	}

	iterations := 0
	converged := false
	for iterations < req.MaxIterations {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two)
		if npvAt(mid).GreaterThan(price) {
			// Too valuable, discount harder
			lo = mid
		} else {
			hi = mid
		}

		if hi.Sub(lo).LessThan(req.Tolerance) {
			converged = true
			break
		}
	}

	rate := lo.Add(hi).Div(two).Round(10)
	spread := rate.Sub(rc.adjusted)

	pricing, err := s.Engine.PriceRow(req.Row, rc.cfg)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve_implied_rate", Message: "failed to price row", Cause: err}
	}

	result := &Result{
		Target:             TargetImpliedRate,
		RowID:              req.Row.ID,
		Success:            converged,
		Iterations:         iterations,
		ImpliedRate:        &rate,
		SpreadOverAdjusted: &spread,
		Price:              price,
		AdjustedRate:       rc.adjusted,
		Pricing:            pricing,
	}
	if converged {
		result.ConvergenceInfo = fmt.Sprintf("Binary search converged within %s", req.Tolerance)
	} else {
		result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	}
	return result, nil
}

// solveFloorAmount finds the smallest payment amount, to the cent, whose
// high offer is at least the minimum offer. The high offer grows with the
// amount.
func (s *Solver) solveFloorAmount(ctx context.Context, req Request, rc rowContext) (*Result, error) {
	in, cfg := rc.in, rc.cfg
	floor := cfg.MinimumOffer

	highAt := func(amount decimal.Decimal) decimal.Decimal {
		return calculation.MinMaxOffer(calculation.MinMaxInput{
			Amount:         amount,
			Start:          in.Start,
			End:            in.End,
			AdjustedRate:   rc.adjusted,
			Frequency:      in.Frequency,
			AnnualIncrease: in.AnnualIncrease,
			MinSpread:      cfg.RateSpreads.Min,
			MaxSpread:      cfg.RateSpreads.Max,
			MinAdjustment:  cfg.AmountAdjustments.Min,
			MaxAdjustment:  cfg.AmountAdjustments.Max,
		}).High
	}

	lo, hi := decimal.Zero, in.Amount
	for i := 0; highAt(hi).LessThan(floor); i++ {
		if i >= maxDoublings {
			return nil, &BreakEvenError{
				Operation: "solve_floor_amount",
				Message:   "no payment amount reaches the minimum offer",
			}
		}
		lo, hi = hi, hi.Mul(two)
	}

	iterations := 0
	converged := false
	for iterations < req.MaxIterations {
		if hi.Sub(lo).LessThanOrEqual(req.Tolerance) {
			converged = true
			break
		}
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two)
		if highAt(mid).LessThan(floor) {
			lo = mid
		} else {
			hi = mid
		}
	}

	// Settle on whole cents: the bracket may straddle one
	cent := decimal.RequireFromString("0.01")
	amount := hi.Mul(decimal.NewFromInt(100)).Ceil().Div(decimal.NewFromInt(100))
	for amount.GreaterThan(cent) && !highAt(amount.Sub(cent)).LessThan(floor) {
		amount = amount.Sub(cent)
	}

	row := req.Row
	row.Amount = amount
	pricing, err := s.Engine.PriceRow(row, cfg)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve_floor_amount", Message: "failed to price row", Cause: err}
	}

	result := &Result{
		Target:       TargetFloorAmount,
		RowID:        req.Row.ID,
		Success:      converged,
		Iterations:   iterations,
		FloorAmount:  &amount,
		Price:        floor,
		AdjustedRate: rc.adjusted,
		Pricing:      pricing,
	}
	if converged {
		result.ConvergenceInfo = fmt.Sprintf("Binary search converged within $%s", req.Tolerance)
	} else {
		result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	}
	return result, nil
}
