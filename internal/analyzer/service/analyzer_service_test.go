package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idx-market-intel/internal/analyzer/repository"
	"idx-market-intel/internal/entity"
	"idx-market-intel/internal/signal/fundamental"
	"idx-market-intel/internal/signal/news"
	"idx-market-intel/pkg/cache"
	"idx-market-intel/pkg/logger"
)

func newTestAnalyzer(market *fakeMarketRepo, newsRepo *fakeNewsRepo, c cache.Cache) AnalyzerService {
	return NewAnalyzerService(testConfig(), logger.NewNop(), market, newsRepo, news.NewAnalyzer(news.NewVaderScorer(nil), nil), c)
}

func healthyMarket() *fakeMarketRepo {
	return &fakeMarketRepo{
		bars: trendBars(120),
		profile: fundamental.Profile{
			Price:  ptr(9000),
			Sector: "Financial Services",
			Ratios: entity.FundamentalRatios{PER: ptr(9), PBV: ptr(1.2), DER: ptr(0.5), ROEPct: ptr(18), DivYieldPct: ptr(4)},
		},
		ratings: entity.AnalystRatings{StrongBuy: 5, Buy: 10, Hold: 3, TargetPrice: ptr(11000), CurrentPrice: ptr(9000)},
	}
}

func TestAnalyzerService_Analyze_AllSignals(t *testing.T) {
	svc := newTestAnalyzer(healthyMarket(), &fakeNewsRepo{}, nil)

	res, cached, err := svc.Analyze(context.Background(), "bbca", AnalyzeOptions{})
	require.NoError(t, err)
	assert.False(t, cached)

	assert.Equal(t, "BBCA.JK", res.Ticker)
	assert.Equal(t, "ringkas", res.Style)
	assert.True(t, res.Fundamental.IsAvailable())
	assert.True(t, res.Technical.IsAvailable())
	assert.True(t, res.Whale.IsAvailable())
	assert.True(t, res.Broker.IsAvailable())

	// news is off by default
	assert.False(t, res.News.Available)
	assert.Equal(t, entity.ReasonDisabled, res.News.Reason)
	assert.Equal(t, entity.NewsNetral, res.News.Kategori)

	require.NotNil(t, res.Scores.CombinedScore)
	assert.GreaterOrEqual(t, *res.Scores.CombinedScore, 0.0)
	assert.LessOrEqual(t, *res.Scores.CombinedScore, 100.0)
	assert.Equal(t, 0.25, res.Scores.Weights.Broker)
	assert.NotEmpty(t, res.Summary)
}

func TestAnalyzerService_Analyze_TogglesDisableSignals(t *testing.T) {
	market := healthyMarket()
	svc := newTestAnalyzer(market, &fakeNewsRepo{}, nil)

	res, _, err := svc.Analyze(context.Background(), "BBCA.JK", AnalyzeOptions{
		WithTechnical: entity.ToggleDisabled,
		WithWhale:     entity.ToggleDisabled,
		WithBroker:    entity.ToggleDisabled,
	})
	require.NoError(t, err)

	assert.True(t, res.Fundamental.IsAvailable())
	assert.Equal(t, entity.ReasonDisabled, res.Technical.Reason())
	assert.Equal(t, entity.ReasonDisabled, res.Whale.Reason())
	assert.Equal(t, entity.ReasonDisabled, res.Broker.Reason())
	assert.Equal(t, int32(0), market.historyCalls.Load())
	assert.Equal(t, 0.55, res.Scores.Weights.Fundamental)
	assert.Nil(t, res.Scores.TechnicalScore)
}

func TestAnalyzerService_Analyze_FailuresBecomeUnavailable(t *testing.T) {
	market := &fakeMarketRepo{
		barsErr: repository.ErrNoData,
		profErr: repository.ErrSymbolNotFound,
		rateErr: errors.New("upstream 503"),
	}
	svc := newTestAnalyzer(market, &fakeNewsRepo{}, nil)

	res, _, err := svc.Analyze(context.Background(), "ZZZZ", AnalyzeOptions{})
	require.NoError(t, err)

	assert.Equal(t, entity.ReasonNoData, res.Technical.Reason())
	assert.Equal(t, entity.ReasonNoData, res.Whale.Reason())
	assert.Equal(t, "symbol_not_found", res.Fundamental.Reason())
	assert.Equal(t, "upstream 503", res.Broker.Reason())
	assert.Nil(t, res.Scores.CombinedScore)
	assert.Equal(t, entity.ActionPantau, res.Scores.Action)
}

func TestAnalyzerService_Analyze_Timeout(t *testing.T) {
	cfg := testConfig()
	cfg.Analyzer.SubSignalTimeout = 30 * time.Millisecond
	svc := NewAnalyzerService(cfg, logger.NewNop(), &fakeMarketRepo{block: true}, &fakeNewsRepo{}, news.NewAnalyzer(news.NewVaderScorer(nil), nil), nil)

	start := time.Now()
	res, _, err := svc.Analyze(context.Background(), "BBCA", AnalyzeOptions{})
	require.NoError(t, err)

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, entity.ReasonTimeout, res.Fundamental.Reason())
	assert.Equal(t, entity.ReasonTimeout, res.Technical.Reason())
	assert.Equal(t, entity.ReasonTimeout, res.Broker.Reason())
}

func TestAnalyzerService_Analyze_PanicIsContained(t *testing.T) {
	svc := newTestAnalyzer(&fakeMarketRepo{panicMsg: "boom"}, &fakeNewsRepo{}, nil)

	res, _, err := svc.Analyze(context.Background(), "BBCA", AnalyzeOptions{})
	require.NoError(t, err)

	assert.False(t, res.Fundamental.IsAvailable())
	assert.Contains(t, res.Fundamental.Reason(), "boom")
	assert.Equal(t, entity.ActionPantau, res.Scores.Action)
}

func TestAnalyzerService_Analyze_InjectedPayloads(t *testing.T) {
	market := healthyMarket()
	newsRepo := &fakeNewsRepo{}
	svc := newTestAnalyzer(market, newsRepo, nil)

	res, _, err := svc.Analyze(context.Background(), "BBCA", AnalyzeOptions{
		WithNews:      entity.ToggleEnabled,
		WithTechnical: entity.ToggleDisabled,
		NewsItems: []entity.NewsItem{
			{Title: "Laba BBCA naik tajam, kinerja sangat bagus"},
			{Title: "BBCA bagikan dividen jumbo"},
		},
		WhalePayload: map[string]any{"vol_ratio": "2.4", "is_whale_detected": true},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, newsRepo.calls)
	assert.True(t, res.News.Available)
	assert.Equal(t, 2, res.News.TotalItems)
	assert.Equal(t, "BBCA", res.News.Emiten)

	w, ok := res.Whale.Get()
	require.True(t, ok)
	assert.True(t, w.Detected)
	require.NotNil(t, w.VolRatio)
	assert.InDelta(t, 2.4, *w.VolRatio, 1e-9)
	assert.Equal(t, int32(0), market.historyCalls.Load())
}

func TestAnalyzerService_Analyze_FetchNews(t *testing.T) {
	newsRepo := &fakeNewsRepo{items: []entity.NewsItem{{Title: "Rumor akuisisi TLKM beredar"}}}
	svc := newTestAnalyzer(healthyMarket(), newsRepo, nil)

	res, _, err := svc.Analyze(context.Background(), "TLKM", AnalyzeOptions{WithNews: entity.ToggleEnabled, FetchNews: true})
	require.NoError(t, err)

	assert.Equal(t, 1, newsRepo.calls)
	assert.Equal(t, "TLKM saham IDX", newsRepo.lastQuery)
	assert.Equal(t, 7, newsRepo.lastDays)
	assert.Equal(t, entity.NewsRumor, res.News.Kategori)
}

func TestAnalyzerService_Analyze_NewsWithoutItems(t *testing.T) {
	newsRepo := &fakeNewsRepo{}
	svc := newTestAnalyzer(healthyMarket(), newsRepo, nil)

	res, _, err := svc.Analyze(context.Background(), "TLKM", AnalyzeOptions{WithNews: entity.ToggleEnabled})
	require.NoError(t, err)

	assert.Equal(t, 0, newsRepo.calls)
	assert.False(t, res.News.Available)
	assert.Equal(t, news.ReasonEmptyItems, res.News.Reason)
	assert.Equal(t, entity.NewsNetral, res.News.Kategori)
}

func TestAnalyzerService_Analyze_Cache(t *testing.T) {
	market := healthyMarket()
	mem := cache.NewMemory(time.Minute, time.Minute)
	svc := newTestAnalyzer(market, &fakeNewsRepo{}, mem)

	first, cached, err := svc.Analyze(context.Background(), "BBCA", AnalyzeOptions{})
	require.NoError(t, err)
	assert.False(t, cached)
	calls := market.historyCalls.Load()

	second, cached, err := svc.Analyze(context.Background(), "bbca.jk", AnalyzeOptions{})
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, calls, market.historyCalls.Load())
	assert.Equal(t, first.Scores.Action, second.Scores.Action)
	assert.Equal(t, first.Summary, second.Summary)

	// different options produce a different key
	_, cached, err = svc.Analyze(context.Background(), "BBCA", AnalyzeOptions{Style: "detail"})
	require.NoError(t, err)
	assert.False(t, cached)

	// injected payloads never touch the cache
	_, cached, err = svc.Analyze(context.Background(), "BBCA", AnalyzeOptions{WhalePayload: map[string]any{"vol_ratio": 1.0}})
	require.NoError(t, err)
	assert.False(t, cached)
}

func TestAnalyzerService_Whale(t *testing.T) {
	market := &fakeMarketRepo{bars: volumeBars(100, 100, 100, 100, 500)}
	svc := newTestAnalyzer(market, &fakeNewsRepo{}, nil)

	res := svc.Whale(context.Background(), "ANTM", 5)
	sig, ok := res.Get()
	require.True(t, ok)
	assert.Equal(t, "ANTM.JK", sig.Symbol)
	require.NotNil(t, sig.VolRatio)
	assert.InDelta(t, 5.0, *sig.VolRatio, 1e-9)
	assert.True(t, sig.Detected)
	assert.Equal(t, "Aktivitas volume 5.00x lebih tinggi dari rata-rata 4 hari terakhir.", sig.AnalysisNote)
	assert.Equal(t, "1mo", market.lastPeriod.Load())

	svc.Whale(context.Background(), "ANTM", 30)
	assert.Equal(t, "3mo", market.lastPeriod.Load())
}
