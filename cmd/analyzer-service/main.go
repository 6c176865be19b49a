package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"idx-market-intel/internal/analyzer/config"
	delivery "idx-market-intel/internal/analyzer/delivery/http"
	_ "idx-market-intel/internal/analyzer/docs"
	"idx-market-intel/internal/analyzer/job"
	"idx-market-intel/internal/analyzer/metrics"
	"idx-market-intel/internal/analyzer/service"
	"idx-market-intel/internal/entity"
	"idx-market-intel/pkg/logger"
	"idx-market-intel/pkg/telegram"
	"idx-market-intel/pkg/utils"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the analyzer HTTP service",
	Run:   runServe,
}

var analyzeFlags struct {
	style     string
	news      bool
	fetchNews bool
	broker    bool
	whale     bool
	period    string
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <TICKER>",
	Short: "Runs one combined analysis and prints the JSON result",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func loadConfigAndLogger() (*config.Config, *logger.Logger) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(appLogger.Logger)
	return cfg, appLogger
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, appLogger := loadConfigAndLogger()
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Analyzer Service", logger.Field("name", cfg.App.Name), logger.Field("env", cfg.App.Env))

	a, err := newApp(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize application", logger.ErrorField(err))
	}
	defer a.Close()

	if cfg.Watchlist.Enabled {
		var notifier telegram.Notifier
		if cfg.Watchlist.Notify {
			notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
			if err != nil {
				appLogger.Warn("Telegram notifier disabled", logger.ErrorField(err))
			}
		}
		watchlist := job.NewWatchlistJob(cfg, appLogger, a.analyzerService, notifier)
		utils.GoSafe(func() {
			if err := watchlist.Start(ctx); err != nil {
				appLogger.Error("Watchlist job failed", logger.ErrorField(err))
			}
		})
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(delivery.RequestID())

	health := delivery.NewHealthHandler(cfg.Cache.TTL)
	health.RegisterRoutes(e)

	apiV1 := e.Group("/v1")
	delivery.NewAnalyzeHandler(a.analyzerService, appLogger).RegisterRoutes(apiV1)
	delivery.NewNewsHandler(a.newsService, appLogger).RegisterRoutes(apiV1.Group("/news"))
	delivery.NewToolsHandler(a.analyzerService, a.newsService, health, appLogger).RegisterRoutes(apiV1.Group("/tools"))
	delivery.NewChartHandler(a.chartService, appLogger).RegisterRoutes(e.Group("/api"))

	if cfg.Metrics.Enabled {
		metrics.Register()
		e.GET(cfg.Metrics.Path, echo.WrapHandler(promhttp.Handler()))
	}
	e.GET("/swagger/*", swagger.WrapHandler)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	timeout := cfg.API.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, appLogger := loadConfigAndLogger()
	defer func() { _ = appLogger.Sync() }()

	a, err := newApp(cfg, appLogger)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := service.AnalyzeOptions{
		Style:     analyzeFlags.style,
		FetchNews: analyzeFlags.fetchNews,
		Period:    analyzeFlags.period,
	}
	flags := cmd.Flags()
	if flags.Changed("news") {
		opts.WithNews = entity.ToggleFromBool(&analyzeFlags.news)
	}
	if flags.Changed("broker") {
		opts.WithBroker = entity.ToggleFromBool(&analyzeFlags.broker)
	}
	if flags.Changed("whale") {
		opts.WithWhale = entity.ToggleFromBool(&analyzeFlags.whale)
	}

	res, _, err := a.analyzerService.Analyze(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// @title IDX Market Intel API
// @version 1.3.0
// @description Signal fusion for IDX equities: fundamental, technical, whale, news and broker consensus.
// @BasePath /v1
func main() {
	rootCmd := &cobra.Command{Use: "analyzer-service"}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-analyzer.yaml", "Path to the configuration file")

	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.style, "style", "ringkas", "Output style: ringkas or detail")
	f.BoolVar(&analyzeFlags.news, "news", false, "Include news sentiment")
	f.BoolVar(&analyzeFlags.fetchNews, "fetch-news", true, "Fetch headlines from Google News when news is enabled")
	f.BoolVar(&analyzeFlags.broker, "broker", true, "Include analyst consensus")
	f.BoolVar(&analyzeFlags.whale, "whale", true, "Include whale detection")
	f.StringVar(&analyzeFlags.period, "period", "", "Price history period, e.g. 1y or 2y")

	rootCmd.AddCommand(serveCmd, analyzeCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing analyzer-service CLI: %s\n", err)
		os.Exit(1)
	}
}
