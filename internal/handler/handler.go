package handler

import (
	"time"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"faraid-engine/internal/engine"
	"faraid-engine/internal/model"
)

const (
	PathInheritanceCalculate = "/api/v1/inheritance/calculate"
	PathInheritanceValidate  = "/api/v1/inheritance/validate"
	PathZakatCalculate       = "/api/v1/zakat/calculate"
	PathHealth               = "/healthz"
	PathMetrics              = "/metrics"

	calculationIDKey = "calculation_id"
)

type Handler struct {
	engine  *engine.Engine
	logger  *zap.Logger
	metrics fasthttp.RequestHandler
}

// New wires the calculation routes. gatherer backs /metrics; nil disables it.
func New(e *engine.Engine, logger *zap.Logger, gatherer prometheus.Gatherer) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{engine: e, logger: logger}
	if gatherer != nil {
		h.metrics = fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return h
}

// Router returns the request handler to serve, with request logging applied.
func (h *Handler) Router() fasthttp.RequestHandler {
	return h.logRequests(h.route)
}

func (h *Handler) route(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case PathInheritanceCalculate:
		if !requirePost(ctx) {
			return
		}
		var req model.InheritanceRequest
		if !decode(ctx, &req) {
			return
		}
		resp := h.engine.ProcessInheritance(&req)
		ctx.SetUserValue(calculationIDKey, resp.CalculationMetadata.CalculationID)
		writeJSON(ctx, fasthttp.StatusOK, resp)

	case PathInheritanceValidate:
		if !requirePost(ctx) {
			return
		}
		var req model.InheritanceRequest
		if !decode(ctx, &req) {
			return
		}
		resp := h.engine.ValidateInheritance(&req)
		ctx.SetUserValue(calculationIDKey, resp.CalculationMetadata.CalculationID)
		writeJSON(ctx, fasthttp.StatusOK, resp)

	case PathZakatCalculate:
		if !requirePost(ctx) {
			return
		}
		var req model.ZakatRequest
		if !decode(ctx, &req) {
			return
		}
		resp := h.engine.ProcessZakat(ctx, &req)
		ctx.SetUserValue(calculationIDKey, resp.CalculationMetadata.CalculationID)
		writeJSON(ctx, fasthttp.StatusOK, resp)

	case PathHealth:
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})

	case PathMetrics:
		if h.metrics == nil {
			writeError(ctx, fasthttp.StatusNotFound, "Not found")
			return
		}
		h.metrics(ctx)

	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) logRequests(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)

		fields := []zap.Field{
			zap.ByteString("method", ctx.Method()),
			zap.ByteString("path", ctx.Path()),
			zap.Int("status", ctx.Response.StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}
		if id, ok := ctx.UserValue(calculationIDKey).(string); ok {
			fields = append(fields, zap.String(calculationIDKey, id))
		}
		if ctx.Response.StatusCode() >= fasthttp.StatusInternalServerError {
			h.logger.Error("request failed", fields...)
			return
		}
		h.logger.Info("request completed", fields...)
	}
}

func requirePost(ctx *fasthttp.RequestCtx) bool {
	if ctx.IsPost() {
		return true
	}
	ctx.Response.Header.Set(fasthttp.HeaderAllow, fasthttp.MethodPost)
	writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
	return false
}

func decode(ctx *fasthttp.RequestCtx, v any) bool {
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
