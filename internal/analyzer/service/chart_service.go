package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"idx-market-intel/internal/analyzer/config"
	"idx-market-intel/internal/analyzer/dto"
	"idx-market-intel/internal/analyzer/metrics"
	"idx-market-intel/internal/analyzer/repository"
	"idx-market-intel/internal/entity"
	"idx-market-intel/internal/signal/indicator"
	"idx-market-intel/internal/signal/statement"
	"idx-market-intel/pkg/cache"
	"idx-market-intel/pkg/common"
	"idx-market-intel/pkg/logger"
	"idx-market-intel/pkg/utils"
)

const (
	chartPeriod     = "1y"
	chartInterval   = "1d"
	chartFastEMA    = 20
	chartSlowEMA    = 50
	suspendLookback = 5
	chartOperation  = "chart"
	chartDateLayout = "2006-01-02"

	fundamentalChartOperation = "chart_fundamental"
	balanceChartOperation     = "chart_balance"
	cashflowChartOperation    = "chart_cashflow"

	reportCurrency = "IDR"
	usdIDRSymbol   = "USDIDR=X"
)

// ChartService serves daily price history with EMA overlays and quarterly statement charts.
type ChartService interface {
	Chart(ctx context.Context, ticker string) (*dto.ChartResponse, error)
	// Fundamental charts quarterly revenue, net income and margin with a growth verdict.
	Fundamental(ctx context.Context, ticker string) (*dto.FundamentalChartResponse, error)
	// Balance charts quarterly assets, liabilities and equity with a leverage status.
	Balance(ctx context.Context, ticker string) (*dto.BalanceChartResponse, error)
	// Cashflow charts quarterly operating, investing and financing cash flow.
	Cashflow(ctx context.Context, ticker string) (*dto.CashflowChartResponse, error)
}

type chartService struct {
	cfg         *config.Config
	log         *logger.Logger
	marketRepo  repository.MarketDataRepository
	syariahRepo repository.SyariahRepository
	cache       cache.Cache
}

// NewChartService creates a new chart service.
func NewChartService(
	cfg *config.Config,
	log *logger.Logger,
	marketRepo repository.MarketDataRepository,
	syariahRepo repository.SyariahRepository,
	c cache.Cache,
) ChartService {
	if c == nil {
		c = cache.Noop{}
	}
	return &chartService{
		cfg:         cfg,
		log:         log,
		marketRepo:  marketRepo,
		syariahRepo: syariahRepo,
		cache:       c,
	}
}

func (s *chartService) Chart(ctx context.Context, ticker string) (*dto.ChartResponse, error) {
	symbol := utils.NormalizeIDXTicker(ticker)
	key := fmt.Sprintf(common.CacheKeyChart, symbol)

	return cachedBuild(ctx, s, chartOperation, key, s.cfg.Cache.ChartTTL, func() (*dto.ChartResponse, error) {
		bars, err := s.marketRepo.GetPriceHistory(ctx, symbol, chartPeriod, chartInterval)
		if err != nil && !errors.Is(err, repository.ErrNoData) {
			s.log.ErrorContext(ctx, "Failed to get chart history", logger.StringField("symbol", symbol), logger.ErrorField(err))
			return nil, fmt.Errorf("failed to get price history for %s: %w", symbol, err)
		}
		return BuildChart(symbol, bars, s.syariahRepo != nil && s.syariahRepo.IsSyariah(symbol)), nil
	})
}

func (s *chartService) Fundamental(ctx context.Context, ticker string) (*dto.FundamentalChartResponse, error) {
	symbol := utils.NormalizeIDXTicker(ticker)
	key := fmt.Sprintf(common.CacheKeyFundamentalChart, symbol)

	return cachedBuild(ctx, s, fundamentalChartOperation, key, s.cfg.Cache.StatementTTL, func() (*dto.FundamentalChartResponse, error) {
		st, cur, err := s.statements(ctx, symbol)
		if err != nil {
			return nil, err
		}
		points, growth, ok := statement.Income(st.Income, cur.FXRate)
		if !ok {
			return nil, fmt.Errorf("%s income statements: %w", symbol, repository.ErrNoData)
		}
		return &dto.FundamentalChartResponse{
			Ticker:            symbol,
			PriceCurrency:     st.PriceCurrency,
			StatementCurrency: cur,
			Chart:             points,
			Analytics:         growth,
			Score:             statement.ScoreIncome(growth),
		}, nil
	})
}

func (s *chartService) Balance(ctx context.Context, ticker string) (*dto.BalanceChartResponse, error) {
	symbol := utils.NormalizeIDXTicker(ticker)
	key := fmt.Sprintf(common.CacheKeyBalanceChart, symbol)

	return cachedBuild(ctx, s, balanceChartOperation, key, s.cfg.Cache.StatementTTL, func() (*dto.BalanceChartResponse, error) {
		st, cur, err := s.statements(ctx, symbol)
		if err != nil {
			return nil, err
		}
		points := statement.Balance(st.Balance, cur.FXRate)
		if len(points) == 0 {
			return nil, fmt.Errorf("%s balance sheets: %w", symbol, repository.ErrNoData)
		}
		return &dto.BalanceChartResponse{
			Ticker:            symbol,
			StatementCurrency: cur,
			Chart:             points,
			Score:             statement.ScoreBalance(points[len(points)-1]),
		}, nil
	})
}

func (s *chartService) Cashflow(ctx context.Context, ticker string) (*dto.CashflowChartResponse, error) {
	symbol := utils.NormalizeIDXTicker(ticker)
	key := fmt.Sprintf(common.CacheKeyCashflowChart, symbol)

	return cachedBuild(ctx, s, cashflowChartOperation, key, s.cfg.Cache.StatementTTL, func() (*dto.CashflowChartResponse, error) {
		st, cur, err := s.statements(ctx, symbol)
		if err != nil {
			return nil, err
		}
		points := statement.Cashflow(st.Cashflow, cur.FXRate)
		if len(points) == 0 {
			return nil, fmt.Errorf("%s cash flow statements: %w", symbol, repository.ErrNoData)
		}
		return &dto.CashflowChartResponse{
			Ticker:            symbol,
			StatementCurrency: cur,
			Chart:             points,
			Score:             statement.ScoreCashflow(points),
		}, nil
	})
}

// statements loads the quarterly statements and the rate that converts them to IDR.
// Only USD reports are converted.
func (s *chartService) statements(ctx context.Context, symbol string) (entity.FinancialStatements, dto.StatementCurrency, error) {
	cur := dto.StatementCurrency{Currency: reportCurrency, FXRate: 1}

	st, err := s.marketRepo.GetFinancialStatements(ctx, symbol)
	if err != nil {
		if !errors.Is(err, repository.ErrNoData) && !errors.Is(err, repository.ErrSymbolNotFound) {
			s.log.ErrorContext(ctx, "Failed to get financial statements", logger.StringField("symbol", symbol), logger.ErrorField(err))
		}
		return st, cur, fmt.Errorf("failed to get financial statements for %s: %w", symbol, err)
	}
	cur.FinancialCurrency = st.FinancialCurrency

	if st.FinancialCurrency == "USD" {
		rate, err := s.usdIDR(ctx)
		if err != nil {
			return st, cur, err
		}
		cur.FXRate = round2(rate)
		cur.Converted = true
	}
	return st, cur, nil
}

func (s *chartService) usdIDR(ctx context.Context) (float64, error) {
	key := fmt.Sprintf(common.CacheKeyFXRate, usdIDRSymbol)

	var rate float64
	if err := s.cache.Get(ctx, key, &rate); err == nil && rate > 0 {
		return rate, nil
	}

	bars, err := s.marketRepo.GetPriceHistory(ctx, usdIDRSymbol, "5d", chartInterval)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to get USD/IDR rate", logger.ErrorField(err))
		return 0, fmt.Errorf("failed to get USD/IDR rate: %w", err)
	}
	if len(bars) == 0 {
		return 0, fmt.Errorf("USD/IDR rate: %w", repository.ErrNoData)
	}
	rate = bars[len(bars)-1].Close

	if err := s.cache.Set(ctx, key, rate, s.cfg.Cache.StatementTTL); err != nil {
		s.log.WarnContext(ctx, "Failed to write fx cache", logger.StringField("key", key), logger.ErrorField(err))
	}
	return rate, nil
}

// cachedBuild serves key from the cache, or builds, stores and returns a fresh value.
// Failed builds are not cached.
func cachedBuild[T any](ctx context.Context, s *chartService, operation, key string, ttl time.Duration, build func() (*T, error)) (*T, error) {
	start := time.Now()
	defer func() {
		metrics.AnalyzeLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}()

	var cached T
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		metrics.CacheLookups.WithLabelValues(operation, "hit").Inc()
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.WarnContext(ctx, "Failed to read chart cache", logger.StringField("key", key), logger.ErrorField(err))
	}
	metrics.CacheLookups.WithLabelValues(operation, "miss").Inc()

	v, err := build()
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, v, ttl); err != nil {
		s.log.WarnContext(ctx, "Failed to write chart cache", logger.StringField("key", key), logger.ErrorField(err))
	}
	return v, nil
}

// BuildChart turns ascending bars into chart points. An empty history is reported as suspended.
func BuildChart(symbol string, bars []entity.PriceBar, syariah bool) *dto.ChartResponse {
	resp := &dto.ChartResponse{
		Ticker:  symbol,
		Syariah: syariah,
		Suspend: IsSuspended(bars),
		Data:    []dto.ChartPoint{},
	}
	if len(bars) == 0 {
		return resp
	}

	closes := entity.Closes(bars)
	fast := indicator.EMAAdjusted(closes, chartFastEMA)
	slow := indicator.EMAAdjusted(closes, chartSlowEMA)

	resp.Data = make([]dto.ChartPoint, 0, len(bars))
	for i, b := range bars {
		resp.Data = append(resp.Data, dto.ChartPoint{
			Date:   b.Date.Format(chartDateLayout),
			Open:   round2(b.Open),
			High:   round2(b.High),
			Low:    round2(b.Low),
			Close:  round2(b.Close),
			Price:  round2(b.Close),
			Volume: int64(b.Volume),
			EMA20:  round2(indicator.Some(fast[i]).V),
			EMA50:  round2(indicator.Some(slow[i]).V),
		})
	}
	return resp
}

// IsSuspended reports a symbol with no history, or with zero volume over the last sessions.
func IsSuspended(bars []entity.PriceBar) bool {
	if len(bars) == 0 {
		return true
	}
	for _, b := range entity.Tail(bars, suspendLookback) {
		if b.Volume != 0 {
			return false
		}
	}
	return true
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
