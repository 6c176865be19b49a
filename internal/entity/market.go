package entity

// FundamentalRatios are the valuation ratios the fundamental scorer consumes.
// A nil field means the provider did not supply it.
type FundamentalRatios struct {
	PER         *float64 `json:"per"`
	PBV         *float64 `json:"pbv"`
	DER         *float64 `json:"der"`
	ROEPct      *float64 `json:"roe_pct"`
	DivYieldPct *float64 `json:"div_yield_pct"`
}

// AnalystRatings is the analyst recommendation distribution for a symbol.
type AnalystRatings struct {
	StrongBuy    int      `json:"strong_buy"`
	Buy          int      `json:"buy"`
	Hold         int      `json:"hold"`
	Sell         int      `json:"sell"`
	StrongSell   int      `json:"strong_sell"`
	TargetPrice  *float64 `json:"target_price"`
	CurrentPrice *float64 `json:"current_price"`
}

// NewsItem is a single headline handed to the sentiment aggregator.
type NewsItem struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
	Source      string `json:"source,omitempty"`
	Published   string `json:"published,omitempty"`
}
