package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"idx-market-intel/internal/analyzer/config"
	"idx-market-intel/internal/analyzer/metrics"
	"idx-market-intel/internal/analyzer/repository"
	"idx-market-intel/internal/entity"
	"idx-market-intel/internal/signal/broker"
	"idx-market-intel/internal/signal/fundamental"
	"idx-market-intel/internal/signal/fusion"
	"idx-market-intel/internal/signal/news"
	"idx-market-intel/internal/signal/technical"
	"idx-market-intel/internal/signal/whale"
	"idx-market-intel/pkg/cache"
	"idx-market-intel/pkg/common"
	"idx-market-intel/pkg/logger"
	"idx-market-intel/pkg/utils"
)

const (
	outcomeAvailable = "available"
	outcomeDisabled  = "disabled"
	outcomeTimeout   = "timeout"
	outcomeError     = "error"
	outcomeNoData    = "unavailable"

	reasonSymbolNotFound = "symbol_not_found"
)

// AnalyzeOptions are the per-request knobs of Analyze. Zero values fall back to the
// configured defaults.
type AnalyzeOptions struct {
	Style string

	WithFundamental entity.Toggle
	WithTechnical   entity.Toggle
	WithWhale       entity.Toggle
	WithNews        entity.Toggle
	WithBroker      entity.Toggle

	// NewsItems, when non-nil, are scored instead of fetching the feed.
	NewsItems []entity.NewsItem
	FetchNews bool
	NewsQuery string
	// WhalePayload, when non-nil, replaces the whale price fetch.
	WhalePayload map[string]any

	Period    string
	Interval  string
	RSIPeriod int
	SMAFast   int
	SMASlow   int
}

// resolvedOptions is AnalyzeOptions with every default applied. It is also the cache key input.
type resolvedOptions struct {
	Style           string
	WithFundamental bool
	WithTechnical   bool
	WithWhale       bool
	WithNews        bool
	WithBroker      bool
	FetchNews       bool
	NewsQuery       string
	Period          string
	Interval        string
	RSIPeriod       int
	SMAFast         int
	SMASlow         int
}

func (o resolvedOptions) hash() string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%+v", o)))
	return hex.EncodeToString(sum[:8])
}

// AnalyzerService produces combined verdicts and standalone whale signals.
type AnalyzerService interface {
	// Analyze returns the combined result and whether it was served from cache.
	Analyze(ctx context.Context, ticker string, opts AnalyzeOptions) (fusion.CombinedResult, bool, error)
	Whale(ctx context.Context, ticker string, days int) entity.Result[whale.Signal]
}

type analyzerService struct {
	cfg        *config.Config
	log        *logger.Logger
	marketRepo repository.MarketDataRepository
	newsRepo   repository.NewsRepository
	analyzer   news.Analyzer
	cache      cache.Cache
}

// NewAnalyzerService creates a new analyzer service.
func NewAnalyzerService(
	cfg *config.Config,
	log *logger.Logger,
	marketRepo repository.MarketDataRepository,
	newsRepo repository.NewsRepository,
	analyzer news.Analyzer,
	c cache.Cache,
) AnalyzerService {
	if c == nil {
		c = cache.Noop{}
	}
	return &analyzerService{
		cfg:        cfg,
		log:        log,
		marketRepo: marketRepo,
		newsRepo:   newsRepo,
		analyzer:   analyzer,
		cache:      c,
	}
}

func (s *analyzerService) resolve(opts AnalyzeOptions) resolvedOptions {
	def := s.cfg.Analyzer
	r := resolvedOptions{
		Style:           opts.Style,
		WithFundamental: opts.WithFundamental.Resolve(def.WithFundamental),
		WithTechnical:   opts.WithTechnical.Resolve(def.WithTechnical),
		WithWhale:       opts.WithWhale.Resolve(def.WithWhale),
		WithNews:        opts.WithNews.Resolve(def.WithNews),
		WithBroker:      opts.WithBroker.Resolve(def.WithBroker),
		FetchNews:       opts.FetchNews,
		NewsQuery:       opts.NewsQuery,
		Period:          opts.Period,
		Interval:        opts.Interval,
		RSIPeriod:       opts.RSIPeriod,
		SMAFast:         opts.SMAFast,
		SMASlow:         opts.SMASlow,
	}
	if r.Style == "" {
		r.Style = fusion.DefaultStyle
	}
	if r.Period == "" {
		r.Period = def.DefaultPeriod
	}
	if r.Interval == "" {
		r.Interval = def.DefaultInterval
	}
	if r.RSIPeriod <= 0 {
		r.RSIPeriod = fusion.DefaultRSI
	}
	if r.SMAFast <= 0 {
		r.SMAFast = fusion.DefaultSMAFast
	}
	if r.SMASlow <= 0 {
		r.SMASlow = fusion.DefaultSMASlow
	}
	return r
}

func (s *analyzerService) Analyze(ctx context.Context, ticker string, opts AnalyzeOptions) (fusion.CombinedResult, bool, error) {
	start := time.Now()
	defer func() {
		metrics.AnalyzeLatency.WithLabelValues(common.OperationAnalyze).Observe(time.Since(start).Seconds())
	}()

	symbol := utils.NormalizeIDXTicker(ticker)
	if symbol == "" {
		return fusion.CombinedResult{}, false, errors.New("ticker is required")
	}

	r := s.resolve(opts)
	cacheable := opts.NewsItems == nil && opts.WhalePayload == nil
	key := fmt.Sprintf(common.CacheKeyAnalyze, symbol, r.hash())

	if cacheable {
		var cached fusion.CombinedResult
		err := s.cache.Get(ctx, key, &cached)
		switch {
		case err == nil:
			metrics.CacheLookups.WithLabelValues(common.OperationAnalyze, "hit").Inc()
			return cached, true, nil
		case errors.Is(err, cache.ErrCacheMiss):
			metrics.CacheLookups.WithLabelValues(common.OperationAnalyze, "miss").Inc()
		default:
			metrics.CacheLookups.WithLabelValues(common.OperationAnalyze, "error").Inc()
			s.log.WarnContext(ctx, "Failed to read analyze cache", logger.StringField("key", key), logger.ErrorField(err))
		}
	}

	in := fusion.Inputs{
		Symbol: symbol,
		Style:  r.Style,
		Params: fusion.TechnicalParams{RSIPeriod: r.RSIPeriod, SMAFast: r.SMAFast, SMASlow: r.SMASlow},
	}

	var wg sync.WaitGroup
	wg.Add(5)
	utils.GoSafe(func() {
		defer wg.Done()
		in.Fundamental = runSignal(ctx, s, symbol, common.SignalFundamental, r.WithFundamental, func(ctx context.Context) (entity.Result[fundamental.Analysis], error) {
			profile, err := s.marketRepo.GetFundamentals(ctx, symbol)
			if err != nil {
				return entity.Result[fundamental.Analysis]{}, err
			}
			return fundamental.Analyze(profile), nil
		})
	})
	utils.GoSafe(func() {
		defer wg.Done()
		in.Technical = runSignal(ctx, s, symbol, common.SignalTechnical, r.WithTechnical, func(ctx context.Context) (entity.Result[technical.Analysis], error) {
			bars, err := s.marketRepo.GetPriceHistory(ctx, symbol, r.Period, r.Interval)
			if err != nil {
				return entity.Result[technical.Analysis]{}, err
			}
			return technical.Analyze(symbol, bars, r.RSIPeriod), nil
		})
	})
	utils.GoSafe(func() {
		defer wg.Done()
		in.Whale = runSignal(ctx, s, symbol, common.SignalWhale, r.WithWhale, func(ctx context.Context) (entity.Result[whale.Signal], error) {
			if opts.WhalePayload != nil {
				return entity.Available(whale.FromPayload(symbol, opts.WhalePayload)), nil
			}
			return s.detectWhale(ctx, symbol, s.cfg.Analyzer.WhaleDays)
		})
	})
	utils.GoSafe(func() {
		defer wg.Done()
		in.Broker = runSignal(ctx, s, symbol, common.SignalBroker, r.WithBroker, func(ctx context.Context) (entity.Result[broker.Consensus], error) {
			ratings, err := s.marketRepo.GetAnalystRatings(ctx, symbol)
			if err != nil {
				return entity.Result[broker.Consensus]{}, err
			}
			return broker.Analyze(ratings), nil
		})
	})
	utils.GoSafe(func() {
		defer wg.Done()
		in.News = s.newsVerdict(ctx, symbol, r, opts.NewsItems)
	})
	wg.Wait()

	result := fusion.Fuse(in)

	if cacheable {
		if err := s.cache.Set(ctx, key, result, s.cfg.Cache.TTL); err != nil {
			s.log.WarnContext(ctx, "Failed to write analyze cache", logger.StringField("key", key), logger.ErrorField(err))
		}
	}
	return result, false, nil
}

func (s *analyzerService) newsVerdict(ctx context.Context, symbol string, r resolvedOptions, injected []entity.NewsItem) news.Verdict {
	emiten := utils.BareIDXCode(symbol)
	res := runSignal(ctx, s, symbol, common.SignalNews, r.WithNews, func(ctx context.Context) (entity.Result[news.Verdict], error) {
		items := injected
		if items == nil && r.FetchNews {
			query := r.NewsQuery
			if query == "" {
				query = emiten + " saham IDX"
			}
			fetched, err := s.newsRepo.Search(ctx, query, s.cfg.Analyzer.NewsDays, s.cfg.Analyzer.NewsLimit)
			if err != nil {
				return entity.Result[news.Verdict]{}, err
			}
			items = fetched
		}
		return entity.Available(s.analyzer.Aggregate(emiten, items)), nil
	})
	if v, ok := res.Get(); ok {
		return v
	}
	return news.UnavailableVerdict(res.Reason())
}

func (s *analyzerService) detectWhale(ctx context.Context, symbol string, days int) (entity.Result[whale.Signal], error) {
	period := "3mo"
	if whale.Window(days) <= 15 {
		period = "1mo"
	}
	bars, err := s.marketRepo.GetPriceHistory(ctx, symbol, period, "1d")
	if err != nil {
		return entity.Result[whale.Signal]{}, err
	}
	return whale.Detect(symbol, bars, days), nil
}

func (s *analyzerService) Whale(ctx context.Context, ticker string, days int) entity.Result[whale.Signal] {
	start := time.Now()
	defer func() {
		metrics.AnalyzeLatency.WithLabelValues(common.OperationWhale).Observe(time.Since(start).Seconds())
	}()

	symbol := utils.NormalizeIDXTicker(ticker)
	return runSignal(ctx, s, symbol, common.SignalWhale, true, func(ctx context.Context) (entity.Result[whale.Signal], error) {
		return s.detectWhale(ctx, symbol, days)
	})
}

type signalOutcome[T any] struct {
	result entity.Result[T]
	err    error
}

// runSignal evaluates one sub-signal under its own deadline. Errors, panics and timeouts
// all come back as Unavailable; nothing escapes to the caller.
func runSignal[T any](
	ctx context.Context,
	s *analyzerService,
	symbol, signal string,
	enabled bool,
	fn func(ctx context.Context) (entity.Result[T], error),
) entity.Result[T] {
	if !enabled {
		metrics.ObserveSubSignal(signal, outcomeDisabled)
		return entity.Disabled[T]()
	}

	timeout := s.cfg.Analyzer.SubSignalTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fields := []zap.Field{logger.StringField("symbol", symbol), logger.StringField("signal", signal)}

	done := make(chan signalOutcome[T], 1)
	utils.GoSafe(func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- signalOutcome[T]{err: fmt.Errorf("panic: %v", rec)}
			}
		}()
		res, err := fn(ctx)
		done <- signalOutcome[T]{result: res, err: err}
	})

	select {
	case <-ctx.Done():
		metrics.ObserveSubSignal(signal, outcomeTimeout)
		s.log.WarnContext(ctx, "Sub-signal timed out", fields...)
		return entity.Unavailable[T](entity.ReasonTimeout)
	case out := <-done:
		if out.err != nil {
			if errors.Is(out.err, context.DeadlineExceeded) {
				metrics.ObserveSubSignal(signal, outcomeTimeout)
				s.log.WarnContext(ctx, "Sub-signal timed out", fields...)
				return entity.Unavailable[T](entity.ReasonTimeout)
			}
			metrics.ObserveSubSignal(signal, outcomeError)
			s.log.WarnContext(ctx, "Sub-signal failed", append(fields, logger.ErrorField(out.err))...)
			return entity.Unavailable[T](reasonFor(out.err))
		}
		if out.result.IsAvailable() {
			metrics.ObserveSubSignal(signal, outcomeAvailable)
		} else {
			metrics.ObserveSubSignal(signal, outcomeNoData)
		}
		return out.result
	}
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, repository.ErrNoData):
		return entity.ReasonNoData
	case errors.Is(err, repository.ErrSymbolNotFound):
		return reasonSymbolNotFound
	default:
		return err.Error()
	}
}
