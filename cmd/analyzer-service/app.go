package main

import (
	"fmt"
	"io"

	"idx-market-intel/internal/analyzer/config"
	"idx-market-intel/internal/analyzer/repository"
	"idx-market-intel/internal/analyzer/service"
	"idx-market-intel/internal/signal/news"
	"idx-market-intel/pkg/cache"
	"idx-market-intel/pkg/logger"
	"idx-market-intel/pkg/redis"
)

// app holds the wired services shared by the serve and analyze commands.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	cache   cache.Cache
	closers []io.Closer

	analyzerService service.AnalyzerService
	newsService     service.NewsService
	chartService    service.ChartService
}

func newApp(cfg *config.Config, log *logger.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}

	switch cfg.Cache.Backend {
	case "redis":
		client, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis cache: %w", err)
		}
		a.closers = append(a.closers, client)
		a.cache = cache.NewRedis(client.Client, cfg.Cache.KeyPrefix)
	case "none":
		a.cache = cache.Noop{}
	default:
		a.cache = cache.NewMemory(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}
	log.Info("Response cache ready", logger.StringField("backend", cfg.Cache.Backend))

	syariahRepo, err := repository.NewSyariahRepository(cfg.Syariah.ListPath, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load syariah list: %w", err)
	}
	marketRepo := repository.NewYahooFinanceRepository(cfg, log)
	newsRepo := repository.NewGoogleNewsRepository(cfg, log)
	newsAnalyzer := news.NewAnalyzer(news.NewVaderScorer(nil), cfg.Analyzer.RumorKeywords)

	a.analyzerService = service.NewAnalyzerService(cfg, log, marketRepo, newsRepo, newsAnalyzer, a.cache)
	a.newsService = service.NewNewsService(cfg, log, newsRepo, newsAnalyzer)
	a.chartService = service.NewChartService(cfg, log, marketRepo, syariahRepo, a.cache)
	return a, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.log.Warn("Failed to close resource", logger.ErrorField(err))
		}
	}
}
