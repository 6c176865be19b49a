package dto

import (
	"idx-market-intel/internal/entity"
	"idx-market-intel/internal/signal/news"
	"idx-market-intel/internal/signal/statement"
	"idx-market-intel/internal/signal/whale"
)

// Envelope wraps every tool-style response.
type Envelope struct {
	Tool      string          `json:"tool"`
	Operation string          `json:"operation"`
	RequestID string          `json:"request_id"`
	Success   bool            `json:"success"`
	TsUTC     string          `json:"ts_utc"`
	Data      any             `json:"data"`
	Errors    []EnvelopeError `json:"errors"`
	Meta      Meta            `json:"meta"`
}

type EnvelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Meta struct {
	Version   string `json:"version"`
	Cached    bool   `json:"cached,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

// HealthResponse is the payload of the health operation.
type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	CacheTTLSec int    `json:"cache_ttl_sec"`
}

// RootResponse is served at GET /.
type RootResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
}

// WhaleResponse is the payload of the whale operation.
type WhaleResponse = entity.Result[whale.Signal]

// NewsEngineItem is one scored headline in the news engine output.
type NewsEngineItem struct {
	Title     string              `json:"title"`
	Sentiment entity.NewsCategory `json:"sentiment"`
	Score     *float64            `json:"score"`
	Published string              `json:"published"`
	Link      string              `json:"link"`
	Source    string              `json:"source,omitempty"`
}

// NewsEngineResponse is the payload of the news sentiment engine.
type NewsEngineResponse struct {
	Source           string              `json:"source"`
	Ticker           string              `json:"ticker"`
	Window           string              `json:"window"`
	Query            string              `json:"query,omitempty"`
	Available        bool                `json:"available"`
	TotalNews        int                 `json:"total_news"`
	OverallSentiment entity.NewsCategory `json:"overall_sentiment,omitempty"`
	SentimentScore   *float64            `json:"sentiment_score,omitempty"`
	SentimentBias    string              `json:"sentiment_bias,omitempty"`
	Breakdown        *news.Breakdown     `json:"breakdown,omitempty"`
	Items            []NewsEngineItem    `json:"items,omitempty"`
	Reason           string              `json:"reason,omitempty"`
}

// ChartPoint is one daily bar with EMA overlays.
type ChartPoint struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Price  float64 `json:"price"`
	Volume int64   `json:"volume"`
	EMA20  float64 `json:"ema20"`
	EMA50  float64 `json:"ema50"`
}

// ChartResponse is served at GET /api/chart/{ticker}.
type ChartResponse struct {
	Ticker  string       `json:"ticker"`
	Syariah bool         `json:"syariah"`
	Suspend bool         `json:"suspend"`
	Data    []ChartPoint `json:"data"`
}

// StatementCurrency describes how statement amounts were converted to IDR.
type StatementCurrency struct {
	FinancialCurrency string  `json:"financial_currency"`
	Currency          string  `json:"currency"`
	FXRate            float64 `json:"fx_rate"`
	Converted         bool    `json:"converted"`
}

// FundamentalChartResponse is served at GET /api/chart/fundamental/{ticker}.
type FundamentalChartResponse struct {
	Ticker        string `json:"ticker"`
	PriceCurrency string `json:"price_currency"`
	StatementCurrency
	Chart     []statement.IncomePoint `json:"chart"`
	Analytics statement.Growth        `json:"analytics"`
	Score     statement.Verdict       `json:"score"`
}

// BalanceChartResponse is served at GET /api/chart/balance/{ticker}.
type BalanceChartResponse struct {
	Ticker string `json:"ticker"`
	StatementCurrency
	Chart []statement.BalancePoint `json:"chart"`
	Score statement.Status         `json:"score"`
}

// CashflowChartResponse is served at GET /api/chart/cashflow/{ticker}.
type CashflowChartResponse struct {
	Ticker string `json:"ticker"`
	StatementCurrency
	Chart []statement.CashflowPoint `json:"chart"`
	Score statement.Status          `json:"score"`
}
