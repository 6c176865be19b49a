package common

const (
	ServiceName    = "idx-market-intel"
	ServiceVersion = "1.3.0"

	ToolStockAnalyzer = "idx_stock_analyzer"
	ToolMarketIntel   = "idx_market_intel"
	ToolUnified       = "idx_unified"

	OperationHealth     = "health"
	OperationAnalyze    = "analyze"
	OperationWhale      = "whale"
	OperationNewsEngine = "news_engine"

	CacheKeyAnalyze          = "analyze:%s:%s"
	CacheKeyChart            = "chart:%s"
	CacheKeyFundamentalChart = "fundamental:%s"
	CacheKeyBalanceChart     = "balance:%s"
	CacheKeyCashflowChart    = "cashflow:%s"
	CacheKeyFXRate           = "fx:%s"

	SignalFundamental = "fundamental"
	SignalTechnical   = "technical"
	SignalWhale       = "whale"
	SignalNews        = "news"
	SignalBroker      = "broker"
)
