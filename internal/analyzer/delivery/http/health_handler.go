package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"idx-market-intel/internal/analyzer/dto"
	"idx-market-intel/pkg/common"
)

// HealthHandler serves liveness and service metadata.
type HealthHandler struct {
	cacheTTL time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cacheTTL time.Duration) *HealthHandler {
	return &HealthHandler{cacheTTL: cacheTTL}
}

// RegisterRoutes registers / and /health on the server root.
func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce  json
// @Success 200 {object} dto.Envelope
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	return respond(c, common.ToolStockAnalyzer, common.OperationHealth, h.status())
}

func (h *HealthHandler) status() dto.HealthResponse {
	return dto.HealthResponse{
		Status:      "ok",
		Version:     common.ServiceVersion,
		CacheTTLSec: int(h.cacheTTL.Seconds()),
	}
}

// Root godoc
// @Summary Service metadata
// @Tags health
// @Produce  json
// @Success 200 {object} dto.RootResponse
// @Router / [get]
func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.RootResponse{
		Name:    common.ServiceName,
		Version: common.ServiceVersion,
		Docs:    "/swagger/index.html",
	})
}
