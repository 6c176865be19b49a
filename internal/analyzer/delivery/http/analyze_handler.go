package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"idx-market-intel/internal/analyzer/dto"
	"idx-market-intel/internal/analyzer/service"
	"idx-market-intel/internal/entity"
	"idx-market-intel/pkg/common"
	"idx-market-intel/pkg/logger"
)

const operationWhaleAlert = "whale_alert"

// AnalyzeHandler handles HTTP requests for combined and whale analysis.
type AnalyzeHandler struct {
	analyzerService service.AnalyzerService
	logger          *logger.Logger
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(analyzerService service.AnalyzerService, logger *logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{analyzerService: analyzerService, logger: logger}
}

// RegisterRoutes registers the analysis routes to the Echo group.
func (h *AnalyzeHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/analyze/:ticker", h.AnalyzePost)
	g.GET("/analyze/:ticker", h.AnalyzeGet)
	g.GET("/whale/:ticker", h.Whale)
}

// AnalyzePost godoc
// @Summary Combined analysis
// @Description Runs fundamental, technical, whale, news and broker signals and fuses them into one action
// @Tags analysis
// @Accept  json
// @Produce  json
// @Param   ticker  path    string              true  "IDX ticker, e.g. BBCA or BBCA.JK"
// @Param   request body    dto.AnalyzeRequest  false "Analysis options"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /analyze/{ticker} [post]
func (h *AnalyzeHandler) AnalyzePost(c echo.Context) error {
	start := time.Now()
	req := &dto.AnalyzeRequest{}
	if verr := ReadAndValidateRequest(c, req); verr != nil {
		return BadRequest(c, verr)
	}

	res, cached, err := h.analyzerService.Analyze(c.Request().Context(), req.Ticker, AnalyzeOptionsFromRequest(req))
	if err != nil {
		return errorJSON(c, http.StatusUnprocessableEntity, err.Error())
	}
	return respond(c, common.ToolStockAnalyzer, common.OperationAnalyze, res, withCached(cached), withLatency(start))
}

type analyzeQuery struct {
	Ticker string `param:"ticker" validate:"required,min=2,max=12"`
	Style  string `query:"style" default:"ringkas" validate:"oneof=ringkas detail"`
}

// AnalyzeGet godoc
// @Summary Combined analysis with default options
// @Description Same as the POST variant with configured defaults and news disabled
// @Tags analysis
// @Produce  json
// @Param   ticker  path    string  true   "IDX ticker, e.g. BBCA or BBCA.JK"
// @Param   style   query   string  false  "ringkas or detail"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /analyze/{ticker} [get]
func (h *AnalyzeHandler) AnalyzeGet(c echo.Context) error {
	start := time.Now()
	req := &analyzeQuery{}
	if verr := ReadAndValidateRequest(c, req); verr != nil {
		return BadRequest(c, verr)
	}

	res, cached, err := h.analyzerService.Analyze(c.Request().Context(), req.Ticker, service.AnalyzeOptions{
		Style:    req.Style,
		WithNews: entity.ToggleDisabled,
	})
	if err != nil {
		return errorJSON(c, http.StatusUnprocessableEntity, err.Error())
	}
	return respond(c, common.ToolStockAnalyzer, common.OperationAnalyze, res, withCached(cached), withLatency(start))
}

// Whale godoc
// @Summary Whale alert
// @Description Compares the latest session volume with the trailing average
// @Tags whale
// @Produce  json
// @Param   ticker  path    string  true   "IDX ticker"
// @Param   days    query   int     false  "Window in sessions (3-30)"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /whale/{ticker} [get]
func (h *AnalyzeHandler) Whale(c echo.Context) error {
	start := time.Now()
	req := &dto.WhaleRequest{}
	if verr := ReadAndValidateRequest(c, req); verr != nil {
		return BadRequest(c, verr)
	}

	res := h.analyzerService.Whale(c.Request().Context(), req.Ticker, req.Days)
	return respond(c, common.ToolMarketIntel, operationWhaleAlert, res, withLatency(start))
}

// AnalyzeOptionsFromRequest maps the request body onto service options.
func AnalyzeOptionsFromRequest(req *dto.AnalyzeRequest) service.AnalyzeOptions {
	return service.AnalyzeOptions{
		Style:           req.Style,
		WithFundamental: req.WithFundamental,
		WithTechnical:   req.WithTechnical,
		WithWhale:       req.WithWhale,
		WithNews:        req.WithNews,
		WithBroker:      req.WithBroker,
		NewsItems:       req.NewsItems,
		FetchNews:       req.FetchNews,
		NewsQuery:       req.NewsQuery,
		WhalePayload:    req.Whale,
		Period:          req.Period,
		Interval:        req.Interval,
		RSIPeriod:       req.RSIPeriod,
		SMAFast:         req.SMAFast,
		SMASlow:         req.SMASlow,
	}
}
