package config

import (
	"time"

	"idx-market-intel/pkg/config"
)

// Cache holds response cache configuration.
type Cache struct {
	Backend         string        `mapstructure:"backend"`
	TTL             time.Duration `mapstructure:"ttl"`
	ChartTTL        time.Duration `mapstructure:"chart_ttl"`
	StatementTTL    time.Duration `mapstructure:"statement_ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	KeyPrefix       string        `mapstructure:"key_prefix"`
}

// Analyzer holds defaults for the analyze operation.
type Analyzer struct {
	WithFundamental  bool          `mapstructure:"with_fundamental"`
	WithTechnical    bool          `mapstructure:"with_technical"`
	WithWhale        bool          `mapstructure:"with_whale"`
	WithNews         bool          `mapstructure:"with_news"`
	WithBroker       bool          `mapstructure:"with_broker"`
	DefaultPeriod    string        `mapstructure:"default_period"`
	DefaultInterval  string        `mapstructure:"default_interval"`
	SubSignalTimeout time.Duration `mapstructure:"sub_signal_timeout"`
	WhaleDays        int           `mapstructure:"whale_days"`
	NewsDays         int           `mapstructure:"news_days"`
	NewsLimit        int           `mapstructure:"news_limit"`
	RumorKeywords    []string      `mapstructure:"rumor_keywords"`
}

// YahooFinance holds the configuration for the Yahoo Finance API.
type YahooFinance struct {
	BaseURL             string        `mapstructure:"base_url"`
	CookieURL           string        `mapstructure:"cookie_url"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	Timeout             time.Duration `mapstructure:"timeout"`
}

// GoogleNews holds the configuration for the Google News RSS feed.
type GoogleNews struct {
	BaseURL             string `mapstructure:"base_url"`
	HL                  string `mapstructure:"hl"`
	GL                  string `mapstructure:"gl"`
	CEID                string `mapstructure:"ceid"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Syariah holds the location of the sharia-compliant stock list.
type Syariah struct {
	ListPath string `mapstructure:"list_path"`
}

// Watchlist holds the scheduled batch analysis configuration.
type Watchlist struct {
	Enabled bool     `mapstructure:"enabled"`
	Cron    string   `mapstructure:"cron"`
	Symbols []string `mapstructure:"symbols"`
	Notify  bool     `mapstructure:"notify"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the analyzer service.
type Config struct {
	App          config.App     `mapstructure:"app"`
	Logger       config.Logger  `mapstructure:"logger"`
	Redis        config.Redis   `mapstructure:"redis"`
	API          config.API     `mapstructure:"api"`
	Metrics      config.Metrics `mapstructure:"metrics"`
	Cache        Cache          `mapstructure:"cache"`
	Analyzer     Analyzer       `mapstructure:"analyzer"`
	YahooFinance YahooFinance   `mapstructure:"yahoo_finance"`
	GoogleNews   GoogleNews     `mapstructure:"google_news"`
	Syariah      Syariah        `mapstructure:"syariah"`
	Watchlist    Watchlist      `mapstructure:"watchlist"`
	Telegram     Telegram       `mapstructure:"telegram"`
}

func setDefaults() {
	config.SetDefault("app.name", "idx-market-intel")
	config.SetDefault("app.env", "development")
	config.SetDefault("logger.level", "info")
	config.SetDefault("logger.encoding", "json")
	config.SetDefault("api.host", "0.0.0.0")
	config.SetDefault("api.port", 8080)
	config.SetDefault("api.shutdown_timeout", 10*time.Second)
	config.SetDefault("metrics.enabled", true)
	config.SetDefault("metrics.path", "/metrics")

	config.SetDefault("cache.backend", "memory")
	config.SetDefault("cache.ttl", 5*time.Minute)
	config.SetDefault("cache.chart_ttl", 10*time.Minute)
	config.SetDefault("cache.statement_ttl", time.Hour)
	config.SetDefault("cache.cleanup_interval", 10*time.Minute)
	config.SetDefault("cache.key_prefix", "idx:")

	config.SetDefault("analyzer.with_fundamental", true)
	config.SetDefault("analyzer.with_technical", true)
	config.SetDefault("analyzer.with_whale", true)
	config.SetDefault("analyzer.with_news", false)
	config.SetDefault("analyzer.with_broker", true)
	config.SetDefault("analyzer.default_period", "2y")
	config.SetDefault("analyzer.default_interval", "1d")
	config.SetDefault("analyzer.sub_signal_timeout", 15*time.Second)
	config.SetDefault("analyzer.whale_days", 5)
	config.SetDefault("analyzer.news_days", 7)
	config.SetDefault("analyzer.news_limit", 8)

	config.SetDefault("yahoo_finance.base_url", "https://query1.finance.yahoo.com")
	config.SetDefault("yahoo_finance.cookie_url", "https://fc.yahoo.com")
	config.SetDefault("yahoo_finance.max_request_per_minute", 60)
	config.SetDefault("yahoo_finance.timeout", 10*time.Second)

	config.SetDefault("google_news.base_url", "https://news.google.com/rss/search")
	config.SetDefault("google_news.hl", "id")
	config.SetDefault("google_news.gl", "ID")
	config.SetDefault("google_news.ceid", "ID:id")
	config.SetDefault("google_news.max_request_per_minute", 30)

	config.SetDefault("watchlist.cron", "0 17 * * 1-5")
}

// Load loads the analyzer configuration from the given path.
func Load(path string) (*Config, error) {
	setDefaults()
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration built from defaults only.
func Default() *Config {
	return &Config{
		App:     config.App{Name: "idx-market-intel", Env: "development"},
		Logger:  config.Logger{Level: "info", Encoding: "json"},
		API:     config.API{Host: "0.0.0.0", Port: 8080, ShutdownTimeout: 10 * time.Second},
		Metrics: config.Metrics{Enabled: true, Path: "/metrics"},
		Cache: Cache{
			Backend:         "memory",
			TTL:             5 * time.Minute,
			ChartTTL:        10 * time.Minute,
			StatementTTL:    time.Hour,
			CleanupInterval: 10 * time.Minute,
			KeyPrefix:       "idx:",
		},
		Analyzer: Analyzer{
			WithFundamental:  true,
			WithTechnical:    true,
			WithWhale:        true,
			WithBroker:       true,
			DefaultPeriod:    "2y",
			DefaultInterval:  "1d",
			SubSignalTimeout: 15 * time.Second,
			WhaleDays:        5,
			NewsDays:         7,
			NewsLimit:        8,
		},
		YahooFinance: YahooFinance{
			BaseURL:             "https://query1.finance.yahoo.com",
			CookieURL:           "https://fc.yahoo.com",
			MaxRequestPerMinute: 60,
			Timeout:             10 * time.Second,
		},
		GoogleNews: GoogleNews{
			BaseURL:             "https://news.google.com/rss/search",
			HL:                  "id",
			GL:                  "ID",
			CEID:                "ID:id",
			MaxRequestPerMinute: 30,
		},
		Watchlist: Watchlist{Cron: "0 17 * * 1-5"},
	}
}
