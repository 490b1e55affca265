// Package server exposes the pricing engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rgehrsitz/sspricer/internal/breakeven"
	"github.com/rgehrsitz/sspricer/internal/calculation"
	"github.com/rgehrsitz/sspricer/internal/config"
	"github.com/rgehrsitz/sspricer/internal/domain"
	"github.com/rgehrsitz/sspricer/internal/logging"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const (
	// DefaultMaxBatchRows caps the rows accepted by /api/batch
	DefaultMaxBatchRows = 10000
	// DefaultRequestTimeout bounds a single batch
	DefaultRequestTimeout = 60 * time.Second

	requestIDHeader = "X-Request-ID"
)

// Handler serves the pricing API. The pricing configuration is read-only
// after construction; overrides produce per-request copies.
type Handler struct {
	engine         *calculation.PricingEngine
	config         domain.PricingConfig
	logger         *zap.Logger
	version        string
	MaxBatchRows   int
	RequestTimeout time.Duration
}

// NewHandler constructs the API handler around a private copy of cfg
func NewHandler(cfg domain.PricingConfig, logger *zap.Logger, version string) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	version = strings.TrimSpace(version)
	if version == "" {
		version = "dev"
	}

	engine := calculation.NewPricingEngine()
	engine.SetLogger(logging.NewEngineLogger(logger, "calculation"))

	return &Handler{
		engine:         engine,
		config:         cfg.Clone(),
		logger:         logger,
		version:        version,
		MaxBatchRows:   DefaultMaxBatchRows,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// Handle routes a request to its endpoint
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	requestID := string(ctx.Request.Header.Peek(requestIDHeader))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx.Response.Header.Set(requestIDHeader, requestID)

	path := string(ctx.Path())
	switch path {
	case "/api/price":
		h.requirePost(ctx, requestID, h.handlePrice)
	case "/api/batch":
		h.requirePost(ctx, requestID, h.handleBatch)
	case "/api/breakdown":
		h.requirePost(ctx, requestID, h.handleBreakdown)
	case "/api/solve":
		h.requirePost(ctx, requestID, h.handleSolve)
	case "/api/config":
		h.requireGet(ctx, requestID, h.handleConfig)
	case "/api/health":
		h.requireGet(ctx, requestID, h.handleHealth)
	default:
		h.respondError(ctx, requestID, fasthttp.StatusNotFound, "no such endpoint: "+path, "server.Handle")
	}

	h.logger.Debug("request served",
		zap.String("op", "server.Handle"),
		zap.String("path", path),
		zap.String("method", string(ctx.Method())),
		zap.Int("status", ctx.Response.StatusCode()),
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
	)
}

type endpoint func(ctx *fasthttp.RequestCtx, requestID string)

func (h *Handler) requirePost(ctx *fasthttp.RequestCtx, requestID string, next endpoint) {
	if !ctx.IsPost() {
		ctx.Response.Header.Set("Allow", fasthttp.MethodPost)
		h.respondError(ctx, requestID, fasthttp.StatusMethodNotAllowed, "method not allowed", "server.Handle")
		return
	}
	next(ctx, requestID)
}

func (h *Handler) requireGet(ctx *fasthttp.RequestCtx, requestID string, next endpoint) {
	if !ctx.IsGet() {
		ctx.Response.Header.Set("Allow", fasthttp.MethodGet)
		h.respondError(ctx, requestID, fasthttp.StatusMethodNotAllowed, "method not allowed", "server.Handle")
		return
	}
	next(ctx, requestID)
}

func (h *Handler) handlePrice(ctx *fasthttp.RequestCtx, requestID string) {
	start := time.Now()
	var req PriceRequest
	if !h.decode(ctx, requestID, &req, "server.handlePrice") {
		return
	}
	cfg, ok := h.resolveConfig(ctx, requestID, req.Config, "server.handlePrice")
	if !ok {
		return
	}

	if req.Row.ID == "" {
		req.Row.ID = requestID
	}
	result, err := h.engine.PriceRow(req.Row, cfg)
	if err != nil {
		h.respondRowError(ctx, requestID, err, "server.handlePrice")
		return
	}

	outcome := OutcomeOffer
	if result.NoOffer {
		outcome = OutcomeNoOffer
	}
	h.writeJSON(ctx, fasthttp.StatusOK, PriceResponse{
		Metadata: newMetadata(requestID, start, outcome),
		Result:   result,
	})
}

func (h *Handler) handleBatch(ctx *fasthttp.RequestCtx, requestID string) {
	start := time.Now()
	var req BatchRequest
	if !h.decode(ctx, requestID, &req, "server.handleBatch") {
		return
	}
	if len(req.Rows) == 0 {
		h.respondError(ctx, requestID, fasthttp.StatusBadRequest, "at least one row is required", "server.handleBatch")
		return
	}
	if h.MaxBatchRows > 0 && len(req.Rows) > h.MaxBatchRows {
		h.respondError(ctx, requestID, fasthttp.StatusRequestEntityTooLarge,
			fmt.Sprintf("batch of %d rows exceeds limit of %d", len(req.Rows), h.MaxBatchRows), "server.handleBatch")
		return
	}
	cfg, ok := h.resolveConfig(ctx, requestID, req.Config, "server.handleBatch")
	if !ok {
		return
	}

	domain.AssignRowIDs(req.Rows)

	runCtx, cancel := context.WithTimeout(context.Background(), h.timeout())
	defer cancel()

	batch, err := h.engine.PriceBatch(runCtx, req.Rows, cfg)
	if err != nil {
		h.respondError(ctx, requestID, fasthttp.StatusServiceUnavailable,
			fmt.Sprintf("batch did not complete: %v", err), "server.handleBatch")
		return
	}

	h.logger.Info("batch priced",
		zap.String("op", "server.handleBatch"),
		zap.String("request_id", requestID),
		zap.Int("rows", batch.Summary.Total),
		zap.Int("offers", batch.Summary.Offers),
		zap.Int("no_offers", batch.Summary.NoOffers),
		zap.Int("invalid", batch.Summary.Invalid),
	)
	h.writeJSON(ctx, fasthttp.StatusOK, BatchResponse{
		Metadata: newMetadata(requestID, start, OutcomeCompleted),
		Result:   batch,
	})
}

func (h *Handler) handleBreakdown(ctx *fasthttp.RequestCtx, requestID string) {
	start := time.Now()
	var req BreakdownRequest
	if !h.decode(ctx, requestID, &req, "server.handleBreakdown") {
		return
	}
	cfg, ok := h.resolveConfig(ctx, requestID, req.Config, "server.handleBreakdown")
	if !ok {
		return
	}

	b, err := h.engine.Breakdown(req.Row, cfg, req.Preview)
	if err != nil {
		h.respondRowError(ctx, requestID, err, "server.handleBreakdown")
		return
	}

	outcome := OutcomeOffer
	if b.Result.NoOffer {
		outcome = OutcomeNoOffer
	}
	h.writeJSON(ctx, fasthttp.StatusOK, BreakdownResponse{
		Metadata:  newMetadata(requestID, start, outcome),
		Breakdown: b,
	})
}

func (h *Handler) handleSolve(ctx *fasthttp.RequestCtx, requestID string) {
	start := time.Now()
	var req SolveRequest
	if !h.decode(ctx, requestID, &req, "server.handleSolve") {
		return
	}
	cfg, ok := h.resolveConfig(ctx, requestID, req.Config, "server.handleSolve")
	if !ok {
		return
	}
	if req.Target == "" {
		req.Target = breakeven.TargetFloorAmount
	}

	solveCtx, cancel := context.WithTimeout(context.Background(), h.timeout())
	defer cancel()

	result, err := breakeven.NewDefaultSolver(h.engine).Solve(solveCtx, breakeven.Request{
		Row:           req.Row,
		Config:        cfg,
		Target:        req.Target,
		Constraints:   req.Constraints,
		MaxIterations: req.MaxIterations,
	})
	if err != nil {
		var be *breakeven.BreakEvenError
		switch {
		case errors.Is(err, calculation.ErrInvalidRow):
			h.respondError(ctx, requestID, fasthttp.StatusUnprocessableEntity, err.Error(), "server.handleSolve")
		case errors.As(err, &be):
			h.respondError(ctx, requestID, fasthttp.StatusBadRequest, err.Error(), "server.handleSolve")
		default:
			h.respondError(ctx, requestID, fasthttp.StatusServiceUnavailable, err.Error(), "server.handleSolve")
		}
		return
	}

	h.writeJSON(ctx, fasthttp.StatusOK, SolveResponse{
		Metadata: newMetadata(requestID, start, OutcomeCompleted),
		Result:   result,
	})
}

// timeout bounds one batch or solve; unset falls back to the default
func (h *Handler) timeout() time.Duration {
	if h.RequestTimeout <= 0 {
		return DefaultRequestTimeout
	}
	return h.RequestTimeout
}

func (h *Handler) handleConfig(ctx *fasthttp.RequestCtx, _ string) {
	h.writeJSON(ctx, fasthttp.StatusOK, h.config)
}

func (h *Handler) handleHealth(ctx *fasthttp.RequestCtx, _ string) {
	h.writeJSON(ctx, fasthttp.StatusOK, HealthResponse{Status: "ok", Version: h.version})
}

func (h *Handler) decode(ctx *fasthttp.RequestCtx, requestID string, v any, op string) bool {
	body := ctx.PostBody()
	if len(body) == 0 {
		h.respondError(ctx, requestID, fasthttp.StatusBadRequest, "request body is empty", op)
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		h.respondError(ctx, requestID, fasthttp.StatusBadRequest, "invalid request body: "+err.Error(), op)
		return false
	}
	return true
}

func (h *Handler) resolveConfig(ctx *fasthttp.RequestCtx, requestID string, o *config.Override, op string) (domain.PricingConfig, bool) {
	cfg, err := o.Apply(h.config)
	if err != nil {
		h.respondError(ctx, requestID, fasthttp.StatusBadRequest, "invalid config override: "+err.Error(), op)
		return domain.PricingConfig{}, false
	}
	return cfg, true
}

func (h *Handler) respondRowError(ctx *fasthttp.RequestCtx, requestID string, err error, op string) {
	if errors.Is(err, calculation.ErrInvalidRow) {
		h.respondError(ctx, requestID, fasthttp.StatusUnprocessableEntity, err.Error(), op)
		return
	}
	h.respondError(ctx, requestID, fasthttp.StatusInternalServerError, err.Error(), op)
}

func (h *Handler) respondError(ctx *fasthttp.RequestCtx, requestID string, status int, msg string, op string) {
	level := h.logger.Warn
	if status >= fasthttp.StatusInternalServerError {
		level = h.logger.Error
	}
	level("pricing request failed",
		zap.String("op", op),
		zap.String("path", string(ctx.Path())),
		zap.String("request_id", requestID),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	h.writeJSON(ctx, status, ErrorResponse{Status: status, Message: msg, RequestID: requestID})
}

func (h *Handler) writeJSON(ctx *fasthttp.RequestCtx, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to write JSON response", zap.String("op", "server.writeJSON"), zap.Error(err))
		ctx.Error(`{"status":500,"message":"failed to encode response"}`, fasthttp.StatusInternalServerError)
		ctx.SetContentType("application/json")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}

func newMetadata(requestID string, start time.Time, outcome string) Metadata {
	now := time.Now().UTC()
	return Metadata{
		RequestID:   requestID,
		StartedAt:   start.UTC().Format(time.RFC3339),
		CompletedAt: now.Format(time.RFC3339),
		DurationMs:  now.Sub(start).Milliseconds(),
		Outcome:     outcome,
	}
}
