package service

import (
	"context"
	"fmt"
	"time"

	"idx-market-intel/internal/analyzer/config"
	"idx-market-intel/internal/analyzer/dto"
	"idx-market-intel/internal/analyzer/metrics"
	"idx-market-intel/internal/analyzer/repository"
	"idx-market-intel/internal/entity"
	"idx-market-intel/internal/signal/news"
	"idx-market-intel/pkg/common"
	"idx-market-intel/pkg/logger"
	"idx-market-intel/pkg/utils"
)

const newsSource = "google_news_rss"

// NewsService is the standalone news sentiment engine.
type NewsService interface {
	// Sentiment fetches recent headlines for ticker and scores them.
	Sentiment(ctx context.Context, ticker string, days, limit int) (*dto.NewsEngineResponse, error)
	// Score rates caller-supplied items without fetching anything.
	Score(emiten string, items []entity.NewsItem) news.Verdict
}

type newsService struct {
	cfg      *config.Config
	log      *logger.Logger
	newsRepo repository.NewsRepository
	analyzer news.Analyzer
}

// NewNewsService creates a new news service.
func NewNewsService(cfg *config.Config, log *logger.Logger, newsRepo repository.NewsRepository, analyzer news.Analyzer) NewsService {
	return &newsService{
		cfg:      cfg,
		log:      log,
		newsRepo: newsRepo,
		analyzer: analyzer,
	}
}

// EngineQuery is the feed query used for ticker.
func EngineQuery(ticker string) string {
	t := utils.BareIDXCode(ticker)
	return fmt.Sprintf("%s saham OR %s stock OR %s emiten", t, t, t)
}

func (s *newsService) Sentiment(ctx context.Context, ticker string, days, limit int) (*dto.NewsEngineResponse, error) {
	start := time.Now()
	defer func() {
		metrics.AnalyzeLatency.WithLabelValues(common.OperationNewsEngine).Observe(time.Since(start).Seconds())
	}()

	if days <= 0 {
		days = s.cfg.Analyzer.NewsDays
	}
	if limit <= 0 {
		limit = s.cfg.Analyzer.NewsLimit
	}
	code := utils.BareIDXCode(ticker)
	query := EngineQuery(code)

	resp := &dto.NewsEngineResponse{
		Source: newsSource,
		Ticker: code,
		Window: fmt.Sprintf("%dd", days),
		Query:  query,
	}

	items, err := s.newsRepo.Search(ctx, query, days, limit)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to fetch news", logger.StringField("ticker", code), logger.ErrorField(err))
		return nil, fmt.Errorf("failed to fetch news for %s: %w", code, err)
	}

	verdict := s.analyzer.Aggregate(code, items)
	if !verdict.Available {
		resp.Reason = "no news found"
		return resp, nil
	}

	resp.Available = true
	resp.TotalNews = verdict.TotalItems
	resp.OverallSentiment = verdict.Kategori
	resp.Breakdown = verdict.Breakdown
	if verdict.Rating != nil {
		score := *verdict.Rating
		resp.SentimentScore = &score
		resp.SentimentBias = news.Bias(score)
	}
	resp.Items = make([]dto.NewsEngineItem, 0, len(verdict.Items))
	for _, it := range verdict.Items {
		resp.Items = append(resp.Items, dto.NewsEngineItem{
			Title:     it.Title,
			Sentiment: it.Analysis.Kategori,
			Score:     it.Analysis.Rating,
			Published: it.Published,
			Link:      it.Link,
			Source:    it.Source,
		})
	}
	return resp, nil
}

func (s *newsService) Score(emiten string, items []entity.NewsItem) news.Verdict {
	return s.analyzer.Aggregate(utils.BareIDXCode(emiten), items)
}
