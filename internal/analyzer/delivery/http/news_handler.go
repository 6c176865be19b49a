package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"idx-market-intel/internal/analyzer/dto"
	"idx-market-intel/internal/analyzer/service"
	"idx-market-intel/pkg/common"
	"idx-market-intel/pkg/logger"
)

const (
	operationNewsSentiment = "news_sentiment_engine"
	operationNewsAnalyze   = "news_analyze"
)

// NewsHandler handles HTTP requests for news sentiment.
type NewsHandler struct {
	newsService service.NewsService
	logger      *logger.Logger
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(newsService service.NewsService, logger *logger.Logger) *NewsHandler {
	return &NewsHandler{newsService: newsService, logger: logger}
}

// RegisterRoutes registers the news routes to the Echo group.
func (h *NewsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/sentiment", h.Sentiment)
	g.POST("/analyze", h.Analyze)
}

// Sentiment godoc
// @Summary News sentiment engine
// @Description Fetches recent Google News headlines for a ticker and scores them
// @Tags news
// @Produce  json
// @Param   ticker  query   string  true   "IDX ticker, e.g. BBCA"
// @Param   days    query   int     false  "Look-back window in days (1-30)"
// @Param   limit   query   int     false  "Maximum headlines (1-20)"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /news/sentiment [get]
func (h *NewsHandler) Sentiment(c echo.Context) error {
	start := time.Now()
	req := &dto.NewsSentimentRequest{}
	if verr := ReadAndValidateRequest(c, req); verr != nil {
		return BadRequest(c, verr)
	}

	res, err := h.newsService.Sentiment(c.Request().Context(), req.Ticker, req.Days, req.Limit)
	if err != nil {
		return errorJSON(c, http.StatusBadGateway, fmt.Sprintf("Failed to fetch/analyze news sentiment: %v", err))
	}
	return respond(c, common.ToolMarketIntel, operationNewsSentiment, res, withLatency(start))
}

// Analyze godoc
// @Summary Score supplied headlines
// @Description Rates caller-supplied news items without fetching anything
// @Tags news
// @Accept  json
// @Produce  json
// @Param   request body    dto.NewsAnalyzeRequest  true  "Headlines to score"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /news/analyze [post]
func (h *NewsHandler) Analyze(c echo.Context) error {
	req := &dto.NewsAnalyzeRequest{}
	if verr := ReadAndValidateRequest(c, req); verr != nil {
		return BadRequest(c, verr)
	}
	return respond(c, common.ToolMarketIntel, operationNewsAnalyze, h.newsService.Score(req.Emiten, req.Items))
}
