package job

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"idx-market-intel/internal/analyzer/config"
	"idx-market-intel/internal/analyzer/service"
	"idx-market-intel/internal/signal/fusion"
	"idx-market-intel/pkg/logger"
	"idx-market-intel/pkg/telegram"
	"idx-market-intel/pkg/utils"
)

// WatchlistJob analyzes the configured symbols on a cron schedule and posts a digest.
type WatchlistJob interface {
	// Start schedules the job and blocks until ctx is done.
	Start(ctx context.Context) error
	// Run analyzes every symbol once and notifies when configured.
	Run(ctx context.Context) []fusion.CombinedResult
}

type watchlistJob struct {
	cfg             config.Watchlist
	log             *logger.Logger
	analyzerService service.AnalyzerService
	notifier        telegram.Notifier
	cronParser      cron.Parser
}

// NewWatchlistJob creates a new watchlist job. notifier may be nil.
func NewWatchlistJob(cfg *config.Config, log *logger.Logger, analyzerService service.AnalyzerService, notifier telegram.Notifier) WatchlistJob {
	return &watchlistJob{
		cfg:             cfg.Watchlist,
		log:             log,
		analyzerService: analyzerService,
		notifier:        notifier,
		cronParser:      cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
}

func (j *watchlistJob) Start(ctx context.Context) error {
	c := cron.New(cron.WithParser(j.cronParser), cron.WithLocation(utils.GetWibTimeLocation()))
	if _, err := c.AddFunc(j.cfg.Cron, func() { j.Run(ctx) }); err != nil {
		return fmt.Errorf("invalid watchlist cron %q: %w", j.cfg.Cron, err)
	}

	j.log.Info("Watchlist job scheduled",
		logger.StringField("cron", j.cfg.Cron),
		logger.IntField("symbols", len(j.cfg.Symbols)),
	)
	c.Start()

	<-ctx.Done()
	j.log.Info("Watchlist job stopping")
	<-c.Stop().Done()
	return nil
}

func (j *watchlistJob) Run(ctx context.Context) []fusion.CombinedResult {
	results := make([]fusion.CombinedResult, 0, len(j.cfg.Symbols))
	for _, symbol := range j.cfg.Symbols {
		if ctx.Err() != nil {
			break
		}
		res, _, err := j.analyzerService.Analyze(ctx, symbol, service.AnalyzeOptions{})
		if err != nil {
			j.log.ErrorContext(ctx, "Failed to analyze watchlist symbol", logger.StringField("symbol", symbol), logger.ErrorField(err))
			j.alert(ctx, err, symbol)
			continue
		}
		results = append(results, res)
	}

	j.log.InfoContext(ctx, "Watchlist analyzed", logger.IntField("analyzed", len(results)), logger.IntField("symbols", len(j.cfg.Symbols)))

	if j.cfg.Notify && j.notifier != nil {
		parts := telegram.FormatWatchlistDigest(results, utils.TimeNowWIB())
		if err := telegram.SendAll(j.notifier, parts); err != nil {
			j.log.ErrorContext(ctx, "Failed to send watchlist digest", logger.ErrorField(err))
		}
	}
	return results
}

func (j *watchlistJob) alert(ctx context.Context, cause error, symbol string) {
	if !j.cfg.Notify || j.notifier == nil {
		return
	}
	msg := telegram.FormatErrorAlertMessage(utils.TimeNowWIB(), "watchlist", cause.Error(), symbol)
	if err := j.notifier.SendMessage(msg); err != nil {
		j.log.ErrorContext(ctx, "Failed to send error alert", logger.ErrorField(err))
	}
}
