package dto

import (
	"idx-market-intel/internal/entity"
)

// AnalyzeRequest is the body of POST /v1/analyze/{ticker}. Toggles left out of the body
// fall back to the configured defaults.
type AnalyzeRequest struct {
	Ticker string `param:"ticker" json:"-" validate:"required,min=2,max=12"`

	WithFundamental entity.Toggle `json:"with_fundamental" swaggertype:"boolean"`
	WithTechnical   entity.Toggle `json:"with_technical" swaggertype:"boolean"`
	WithWhale       entity.Toggle `json:"with_whale" swaggertype:"boolean"`
	WithNews        entity.Toggle `json:"with_news" swaggertype:"boolean"`
	WithBroker      entity.Toggle `json:"with_broker" swaggertype:"boolean"`

	NewsItems []entity.NewsItem `json:"news_items"`
	FetchNews bool              `json:"fetch_news"`
	NewsQuery string            `json:"news_query"`
	Whale     map[string]any    `json:"whale" swaggertype:"object"`

	Period    string `json:"period" validate:"omitempty,oneof=1mo 3mo 6mo 1y 2y 5y 10y ytd max"`
	Interval  string `json:"interval" validate:"omitempty,oneof=1d 1wk 1mo"`
	RSIPeriod int    `json:"rsi_period" default:"14" validate:"gte=2,lte=100"`
	SMAFast   int    `json:"sma_fast" default:"20" validate:"gte=1,lte=400"`
	SMASlow   int    `json:"sma_slow" default:"50" validate:"gte=1,lte=400"`
	Style     string `json:"style" query:"style" default:"ringkas" validate:"oneof=ringkas detail"`
}

// WhaleRequest is the query of GET /v1/whale/{ticker}.
type WhaleRequest struct {
	Ticker string `param:"ticker" validate:"required,min=2,max=12"`
	Days   int    `query:"days" default:"5" validate:"gte=3,lte=30"`
}

// NewsSentimentRequest is the query of GET /v1/news/sentiment.
type NewsSentimentRequest struct {
	Ticker string `query:"ticker" validate:"required,min=2,max=12"`
	Days   int    `query:"days" default:"7" validate:"gte=1,lte=30"`
	Limit  int    `query:"limit" default:"8" validate:"gte=1,lte=20"`
}

// NewsAnalyzeRequest scores caller-supplied items without fetching.
type NewsAnalyzeRequest struct {
	Emiten string            `json:"emiten" validate:"required"`
	Items  []entity.NewsItem `json:"items" validate:"required,min=1,dive"`
}

// ToolExecuteRequest is the body of POST /v1/tools/execute.
type ToolExecuteRequest struct {
	Tool      string         `json:"tool" validate:"required"`
	Operation string         `json:"operation" validate:"required"`
	Input     map[string]any `json:"input" swaggertype:"object"`
	RequestID string         `json:"request_id"`
}
