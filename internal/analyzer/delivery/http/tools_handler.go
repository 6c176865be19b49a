package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"idx-market-intel/internal/analyzer/dto"
	"idx-market-intel/internal/analyzer/service"
	"idx-market-intel/internal/entity"
	"idx-market-intel/pkg/common"
	"idx-market-intel/pkg/logger"
)

const (
	msgTickerRequired = "input.ticker wajib diisi"
	msgUnknownTool    = "tool/operation tidak dikenali"

	defaultToolWhaleDays = 5
	defaultToolNewsDays  = 7
	defaultToolNewsLimit = 8
)

var knownTools = map[string]bool{
	common.ToolStockAnalyzer: true,
	common.ToolMarketIntel:   true,
	common.ToolUnified:       true,
}

// ToolsHandler dispatches tool-style calls to the analysis services.
type ToolsHandler struct {
	analyzerService service.AnalyzerService
	newsService     service.NewsService
	health          *HealthHandler
	logger          *logger.Logger
}

// NewToolsHandler creates a new ToolsHandler.
func NewToolsHandler(analyzerService service.AnalyzerService, newsService service.NewsService, health *HealthHandler, logger *logger.Logger) *ToolsHandler {
	return &ToolsHandler{
		analyzerService: analyzerService,
		newsService:     newsService,
		health:          health,
		logger:          logger,
	}
}

// RegisterRoutes registers the tools routes to the Echo group.
func (h *ToolsHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/execute", h.Execute)
}

// Execute godoc
// @Summary Execute a tool operation
// @Description Single entry point for agents: health, analyze, whale and news_engine
// @Tags tools
// @Accept  json
// @Produce  json
// @Param   request body    dto.ToolExecuteRequest  true  "Tool call"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /tools/execute [post]
func (h *ToolsHandler) Execute(c echo.Context) error {
	start := time.Now()
	req := &dto.ToolExecuteRequest{}
	if verr := ReadAndValidateRequest(c, req); verr != nil {
		return BadRequest(c, verr)
	}

	tool := strings.TrimSpace(req.Tool)
	op := strings.TrimSpace(req.Operation)
	in := req.Input
	if in == nil {
		in = map[string]any{}
	}
	ctx := c.Request().Context()
	if req.RequestID != "" {
		ctx = logger.WithRequestID(ctx, req.RequestID)
		c.SetRequest(c.Request().WithContext(ctx))
	}

	if !knownTools[tool] {
		return errorJSON(c, http.StatusNotFound, msgUnknownTool)
	}

	if op == common.OperationHealth {
		return respond(c, tool, op, h.health.status(), withRequestID(req.RequestID))
	}

	ticker := tickerFromInput(in)
	switch op {
	case common.OperationAnalyze, common.OperationWhale, common.OperationNewsEngine:
		if ticker == "" {
			return errorJSON(c, http.StatusUnprocessableEntity, msgTickerRequired)
		}
	default:
		return errorJSON(c, http.StatusNotFound, msgUnknownTool)
	}

	switch op {
	case common.OperationAnalyze:
		res, cached, err := h.analyzerService.Analyze(ctx, ticker, AnalyzeOptionsFromInput(in))
		if err != nil {
			return errorJSON(c, http.StatusUnprocessableEntity, err.Error())
		}
		return respond(c, tool, op, res, withRequestID(req.RequestID), withCached(cached), withLatency(start))

	case common.OperationWhale:
		res := h.analyzerService.Whale(ctx, ticker, intInput(in, "days", defaultToolWhaleDays))
		return respond(c, tool, op, res, withRequestID(req.RequestID), withLatency(start))

	default:
		res, err := h.newsService.Sentiment(ctx, ticker, intInput(in, "days", defaultToolNewsDays), intInput(in, "limit", defaultToolNewsLimit))
		if err != nil {
			return errorJSON(c, http.StatusBadGateway, err.Error())
		}
		return respond(c, tool, op, res, withRequestID(req.RequestID), withLatency(start))
	}
}

func tickerFromInput(in map[string]any) string {
	for _, key := range []string{"ticker", "symbol"} {
		if s := strings.TrimSpace(cast.ToString(in[key])); s != "" {
			return s
		}
	}
	return ""
}

func intInput(in map[string]any, key string, def int) int {
	raw, ok := in[key]
	if !ok || raw == nil {
		return def
	}
	v, err := cast.ToIntE(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func toggleInput(in map[string]any, key string) entity.Toggle {
	raw, ok := in[key]
	if !ok || raw == nil {
		return entity.ToggleDefault
	}
	b, err := cast.ToBoolE(raw)
	if err != nil {
		return entity.ToggleDefault
	}
	return entity.ToggleFromBool(&b)
}

// AnalyzeOptionsFromInput reads analyze options from a loosely typed tool payload.
// Values that cannot be coerced fall back to the configured defaults.
func AnalyzeOptionsFromInput(in map[string]any) service.AnalyzeOptions {
	opts := service.AnalyzeOptions{
		Style:           cast.ToString(in["style"]),
		WithFundamental: toggleInput(in, "with_fundamental"),
		WithTechnical:   toggleInput(in, "with_technical"),
		WithWhale:       toggleInput(in, "with_whale"),
		WithNews:        toggleInput(in, "with_news"),
		WithBroker:      toggleInput(in, "with_broker"),
		FetchNews:       cast.ToBool(in["fetch_news"]),
		NewsQuery:       cast.ToString(in["news_query"]),
		Period:          cast.ToString(in["period"]),
		Interval:        cast.ToString(in["interval"]),
		RSIPeriod:       intInput(in, "rsi_period", 0),
		SMAFast:         intInput(in, "sma_fast", 0),
		SMASlow:         intInput(in, "sma_slow", 0),
	}
	if raw, ok := in["whale"]; ok && raw != nil {
		if m, err := cast.ToStringMapE(raw); err == nil {
			opts.WhalePayload = m
		}
	}
	if raw, ok := in["news_items"]; ok && raw != nil {
		if list, err := cast.ToSliceE(raw); err == nil {
			opts.NewsItems = make([]entity.NewsItem, 0, len(list))
			for _, el := range list {
				m, err := cast.ToStringMapE(el)
				if err != nil {
					continue
				}
				opts.NewsItems = append(opts.NewsItems, entity.NewsItem{
					Title:       cast.ToString(m["title"]),
					Description: cast.ToString(m["description"]),
					Link:        cast.ToString(m["link"]),
					Source:      cast.ToString(m["source"]),
					Published:   cast.ToString(m["published"]),
				})
			}
		}
	}
	return opts
}
