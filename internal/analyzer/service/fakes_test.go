package service

import (
	"context"
	"sync/atomic"
	"time"

	"idx-market-intel/internal/analyzer/config"
	"idx-market-intel/internal/entity"
	"idx-market-intel/internal/signal/fundamental"
)

type fakeMarketRepo struct {
	bars     []entity.PriceBar
	barsErr  error
	profile  fundamental.Profile
	profErr  error
	ratings  entity.AnalystRatings
	rateErr  error
	block    bool
	panicMsg string

	fxBars     []entity.PriceBar
	statements entity.FinancialStatements
	stmtErr    error
	stmtCalls  atomic.Int32

	historyCalls atomic.Int32
	lastPeriod   atomic.Value
}

func (f *fakeMarketRepo) wait(ctx context.Context) error {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (f *fakeMarketRepo) GetPriceHistory(ctx context.Context, symbol, period, interval string) ([]entity.PriceBar, error) {
	f.historyCalls.Add(1)
	f.lastPeriod.Store(period)
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if symbol == usdIDRSymbol {
		return f.fxBars, nil
	}
	return f.bars, f.barsErr
}

func (f *fakeMarketRepo) GetFinancialStatements(ctx context.Context, symbol string) (entity.FinancialStatements, error) {
	f.stmtCalls.Add(1)
	if err := f.wait(ctx); err != nil {
		return entity.FinancialStatements{}, err
	}
	return f.statements, f.stmtErr
}

func (f *fakeMarketRepo) GetFundamentals(ctx context.Context, symbol string) (fundamental.Profile, error) {
	if err := f.wait(ctx); err != nil {
		return fundamental.Profile{}, err
	}
	p := f.profile
	p.Symbol = symbol
	return p, f.profErr
}

func (f *fakeMarketRepo) GetAnalystRatings(ctx context.Context, symbol string) (entity.AnalystRatings, error) {
	if err := f.wait(ctx); err != nil {
		return entity.AnalystRatings{}, err
	}
	return f.ratings, f.rateErr
}

type fakeNewsRepo struct {
	items []entity.NewsItem
	err   error

	lastQuery string
	lastDays  int
	lastLimit int
	calls     int
}

func (f *fakeNewsRepo) Search(_ context.Context, query string, days, limit int) ([]entity.NewsItem, error) {
	f.calls++
	f.lastQuery = query
	f.lastDays = days
	f.lastLimit = limit
	return f.items, f.err
}

type fakeSyariahRepo map[string]bool

func (f fakeSyariahRepo) IsSyariah(symbol string) bool { return f[symbol] }
func (f fakeSyariahRepo) Count() int                   { return len(f) }

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Analyzer.SubSignalTimeout = time.Second
	return cfg
}

// trendBars builds n ascending sessions with a gentle uptrend and constant volume.
func trendBars(n int) []entity.PriceBar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]entity.PriceBar, n)
	for i := range bars {
		c := 1000 + float64(i)*5
		if i%3 == 0 {
			c -= 12
		}
		bars[i] = entity.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   c - 5,
			High:   c + 10,
			Low:    c - 10,
			Close:  c,
			Volume: 1_000_000,
		}
	}
	return bars
}

func volumeBars(volumes ...float64) []entity.PriceBar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]entity.PriceBar, len(volumes))
	for i, v := range volumes {
		bars[i] = entity.PriceBar{Date: start.AddDate(0, 0, i), Open: 100, High: 100, Low: 100, Close: 100, Volume: v}
	}
	return bars
}

func ptr(v float64) *float64 { return &v }
