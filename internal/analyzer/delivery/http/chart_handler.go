package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"idx-market-intel/internal/analyzer/repository"
	"idx-market-intel/internal/analyzer/service"
	"idx-market-intel/pkg/logger"
)

// ChartHandler serves price and quarterly statement charts.
type ChartHandler struct {
	chartService service.ChartService
	logger       *logger.Logger
}

// NewChartHandler creates a new ChartHandler.
func NewChartHandler(chartService service.ChartService, logger *logger.Logger) *ChartHandler {
	return &ChartHandler{chartService: chartService, logger: logger}
}

// RegisterRoutes registers the chart routes to the Echo group.
func (h *ChartHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/chart/:ticker", h.Chart)
	g.GET("/chart/fundamental/:ticker", h.Fundamental)
	g.GET("/chart/balance/:ticker", h.Balance)
	g.GET("/chart/cashflow/:ticker", h.Cashflow)
}

// Chart godoc
// @Summary Daily price chart
// @Description One year of daily bars with EMA20 and EMA50, plus syariah and suspend flags
// @Tags chart
// @Produce  json
// @Param   ticker  path    string  true  "IDX ticker"
// @Success 200 {object} dto.ChartResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/chart/{ticker} [get]
func (h *ChartHandler) Chart(c echo.Context) error {
	ticker := c.Param("ticker")
	if ticker == "" {
		return errorJSON(c, http.StatusBadRequest, "ticker is required")
	}

	res, err := h.chartService.Chart(c.Request().Context(), ticker)
	if err != nil {
		h.logger.ErrorContext(c.Request().Context(), "Failed to build chart", logger.StringField("ticker", ticker), logger.ErrorField(err))
		return errorJSON(c, http.StatusBadGateway, "Failed to get chart data")
	}
	return c.JSON(http.StatusOK, res)
}

// Fundamental godoc
// @Summary Quarterly income chart
// @Description Revenue, net income and net margin per quarter in IDR, with growth analytics and a SEHAT/NETRAL/BURUK verdict
// @Tags chart
// @Produce  json
// @Param   ticker  path    string  true  "IDX ticker"
// @Success 200 {object} dto.FundamentalChartResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/chart/fundamental/{ticker} [get]
func (h *ChartHandler) Fundamental(c echo.Context) error {
	return serveStatement(c, h, h.chartService.Fundamental, "Data fundamental tidak ditemukan")
}

// Balance godoc
// @Summary Quarterly balance sheet chart
// @Description Assets, liabilities, equity and DER per quarter in IDR, with a SEHAT/WASPADA/BAHAYA status
// @Tags chart
// @Produce  json
// @Param   ticker  path    string  true  "IDX ticker"
// @Success 200 {object} dto.BalanceChartResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/chart/balance/{ticker} [get]
func (h *ChartHandler) Balance(c echo.Context) error {
	return serveStatement(c, h, h.chartService.Balance, "Data neraca tidak ditemukan")
}

// Cashflow godoc
// @Summary Quarterly cash flow chart
// @Description Operating, investing and financing cash flow per quarter in IDR, with a SEHAT/WASPADA/BAHAYA status
// @Tags chart
// @Produce  json
// @Param   ticker  path    string  true  "IDX ticker"
// @Success 200 {object} dto.CashflowChartResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/chart/cashflow/{ticker} [get]
func (h *ChartHandler) Cashflow(c echo.Context) error {
	return serveStatement(c, h, h.chartService.Cashflow, "Data arus kas tidak ditemukan")
}

func serveStatement[T any](c echo.Context, h *ChartHandler, load func(context.Context, string) (*T, error), notFound string) error {
	ticker := c.Param("ticker")
	if ticker == "" {
		return errorJSON(c, http.StatusBadRequest, "ticker is required")
	}

	res, err := load(c.Request().Context(), ticker)
	switch {
	case errors.Is(err, repository.ErrNoData), errors.Is(err, repository.ErrSymbolNotFound):
		return errorJSON(c, http.StatusNotFound, notFound)
	case err != nil:
		h.logger.ErrorContext(c.Request().Context(), "Failed to build statement chart", logger.StringField("ticker", ticker), logger.ErrorField(err))
		return errorJSON(c, http.StatusBadGateway, "Failed to get statement data")
	}
	return c.JSON(http.StatusOK, res)
}
