package repository

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"idx-market-intel/internal/analyzer/config"
	"idx-market-intel/internal/entity"
	"idx-market-intel/pkg/logger"
)

// NewsRepository searches headlines.
type NewsRepository interface {
	Search(ctx context.Context, query string, days, limit int) ([]entity.NewsItem, error)
}

type googleNewsRepository struct {
	cfg            config.GoogleNews
	log            *logger.Logger
	requestLimiter *rate.Limiter
}

// NewGoogleNewsRepository creates a NewsRepository over the Google News RSS search feed.
func NewGoogleNewsRepository(cfg *config.Config, log *logger.Logger) NewsRepository {
	perMinute := cfg.GoogleNews.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 30
	}
	return &googleNewsRepository{
		cfg:            cfg.GoogleNews,
		log:            log,
		requestLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

// FeedURL builds the RSS search URL for query restricted to the last days.
func (r *googleNewsRepository) FeedURL(query string, days int) string {
	q := strings.TrimSpace(query)
	if days > 0 {
		q = fmt.Sprintf("%s when:%dd", q, days)
	}
	v := url.Values{}
	v.Set("q", q)
	v.Set("hl", r.cfg.HL)
	v.Set("gl", r.cfg.GL)
	v.Set("ceid", r.cfg.CEID)
	return r.cfg.BaseURL + "?" + v.Encode()
}

func (r *googleNewsRepository) Search(ctx context.Context, query string, days, limit int) ([]entity.NewsItem, error) {
	feedURL := r.FeedURL(query, days)

	if err := r.requestLimiter.Wait(ctx); err != nil {
		r.log.ErrorContext(ctx, "Failed to wait for request limit", logger.ErrorField(err), logger.StringField("url", feedURL))
		return nil, err
	}

	r.log.DebugContext(ctx, "Processing RSS feed", logger.StringField("url", feedURL))
	fp := gofeed.NewParser()
	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to parse RSS feed", logger.ErrorField(err), logger.StringField("query", query))
		return nil, fmt.Errorf("failed to parse rss feed: %w", err)
	}

	sort.SliceStable(feed.Items, func(i, j int) bool {
		if feed.Items[i].PublishedParsed == nil || feed.Items[j].PublishedParsed == nil {
			return false
		}
		return feed.Items[i].PublishedParsed.After(*feed.Items[j].PublishedParsed)
	})

	items := make([]entity.NewsItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		if limit > 0 && len(items) >= limit {
			break
		}
		if strings.TrimSpace(it.Title) == "" {
			continue
		}
		items = append(items, entity.NewsItem{
			Title:       it.Title,
			Description: StripHTML(it.Description),
			Link:        it.Link,
			Source:      sourceFromTitle(it.Title),
			Published:   it.Published,
		})
	}
	return items, nil
}

// StripHTML returns the visible text of an HTML fragment.
func StripHTML(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.TrimSpace(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Google News titles carry the publisher after the last " - ".
func sourceFromTitle(title string) string {
	idx := strings.LastIndex(title, " - ")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(title[idx+3:])
}
