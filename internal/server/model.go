package server

import (
	"github.com/rgehrsitz/sspricer/internal/breakeven"
	"github.com/rgehrsitz/sspricer/internal/calculation"
	"github.com/rgehrsitz/sspricer/internal/config"
	"github.com/rgehrsitz/sspricer/internal/domain"
)

// PriceRequest prices a single row. Config, when present, is merged onto
// the server's pricing configuration for this request only.
type PriceRequest struct {
	Row    domain.PricingRow `json:"row"`
	Config *config.Override  `json:"config,omitempty"`
}

type BatchRequest struct {
	Rows   []domain.PricingRow `json:"rows"`
	Config *config.Override    `json:"config,omitempty"`
}

type BreakdownRequest struct {
	Row     domain.PricingRow `json:"row"`
	Config  *config.Override  `json:"config,omitempty"`
	Preview int               `json:"preview,omitempty"`
}

// SolveRequest runs the pricing engine backwards for one row
type SolveRequest struct {
	Row           domain.PricingRow     `json:"row"`
	Config        *config.Override      `json:"config,omitempty"`
	Target        breakeven.Target      `json:"target"`
	Constraints   breakeven.Constraints `json:"constraints"`
	MaxIterations int                   `json:"maxIterations,omitempty"`
}

// Metadata describes how a request was processed
type Metadata struct {
	RequestID   string `json:"requestId"`
	StartedAt   string `json:"startedAt"`
	CompletedAt string `json:"completedAt"`
	DurationMs  int64  `json:"durationMs"`
	Outcome     string `json:"outcome"`
}

type PriceResponse struct {
	Metadata Metadata              `json:"metadata"`
	Result   *domain.PricingResult `json:"result"`
}

type BatchResponse struct {
	Metadata Metadata            `json:"metadata"`
	Result   *domain.BatchResult `json:"result"`
}

type BreakdownResponse struct {
	Metadata  Metadata               `json:"metadata"`
	Breakdown *calculation.Breakdown `json:"breakdown"`
}

type SolveResponse struct {
	Metadata Metadata          `json:"metadata"`
	Result   *breakeven.Result `json:"result"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type ErrorResponse struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

const (
	OutcomeOffer     = "OFFER"
	OutcomeNoOffer   = "NO_OFFER"
	OutcomeCompleted = "COMPLETED"
)
