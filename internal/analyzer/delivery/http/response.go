package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"idx-market-intel/internal/analyzer/dto"
	"idx-market-intel/pkg/common"
	"idx-market-intel/pkg/logger"
)

// RequestID assigns every request an id (X-Request-Id or a fresh UUID) and stores it in
// the request context for the logger.
func RequestID() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, id string) {
			ctx := logger.WithRequestID(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
		},
	})
}

type envelopeOption func(*dto.Envelope)

func withRequestID(id string) envelopeOption {
	return func(e *dto.Envelope) {
		if id != "" {
			e.RequestID = id
		}
	}
}

func withCached(cached bool) envelopeOption {
	return func(e *dto.Envelope) { e.Meta.Cached = cached }
}

func withLatency(start time.Time) envelopeOption {
	return func(e *dto.Envelope) { e.Meta.LatencyMs = time.Since(start).Milliseconds() }
}

// newEnvelope wraps data for tool and operation. The request id defaults to the one
// assigned by the RequestID middleware.
func newEnvelope(c echo.Context, tool, operation string, data any, opts ...envelopeOption) dto.Envelope {
	if data == nil {
		data = echo.Map{}
	}
	e := dto.Envelope{
		Tool:      tool,
		Operation: operation,
		RequestID: logger.RequestID(c.Request().Context()),
		Success:   true,
		TsUTC:     time.Now().UTC().Format(time.RFC3339Nano),
		Data:      data,
		Errors:    []dto.EnvelopeError{},
		Meta:      dto.Meta{Version: common.ServiceVersion},
	}
	if e.RequestID == "" {
		e.RequestID = uuid.NewString()
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

func respond(c echo.Context, tool, operation string, data any, opts ...envelopeOption) error {
	return c.JSON(http.StatusOK, newEnvelope(c, tool, operation, data, opts...))
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, dto.ErrorResponse{Error: msg})
}
