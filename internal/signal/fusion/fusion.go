// Package fusion folds the independently computed sub-signals into one score and action.
// It performs no I/O and reads nothing but its inputs, so equal inputs give equal output.
package fusion

import (
	"math"

	"idx-market-intel/internal/entity"
	"idx-market-intel/internal/signal/broker"
	"idx-market-intel/internal/signal/fundamental"
	"idx-market-intel/internal/signal/news"
	"idx-market-intel/internal/signal/technical"
	"idx-market-intel/internal/signal/whale"
)

const (
	AccumulateScore = 68.0
	DisposeScore    = 32.0

	WhaleBias      = 3.0
	RumorBias      = -2.0
	StrongUpside   = 20.0
	StrongUpBias   = 4.0
	Upside         = 10.0
	UpsideBias     = 2.0
	Downside       = -10.0
	DownsideBias   = -3.0
	DefaultStyle   = "ringkas"
	DefaultRSI     = 14
	DefaultSMAFast = 20
	DefaultSMASlow = 50
)

// Weights is one weight table. Absent sub-signals are dropped and the rest renormalised.
type Weights struct {
	Fundamental float64 `json:"fundamental"`
	Technical   float64 `json:"technical"`
	Broker      float64 `json:"broker"`
}

var (
	WeightsWithoutBroker = Weights{Fundamental: 0.55, Technical: 0.35}
	WeightsWithBroker    = Weights{Fundamental: 0.45, Technical: 0.30, Broker: 0.25}
)

// TechnicalParams are the caller's technical options, echoed in the score details.
type TechnicalParams struct {
	RSIPeriod int `json:"rsi_period"`
	SMAFast   int `json:"sma_fast"`
	SMASlow   int `json:"sma_slow"`
}

// Inputs are the outcomes of every sub-signal for one symbol.
type Inputs struct {
	Symbol      string
	Style       string
	Params      TechnicalParams
	Fundamental entity.Result[fundamental.Analysis]
	Technical   entity.Result[technical.Analysis]
	Whale       entity.Result[whale.Signal]
	News        news.Verdict
	Broker      entity.Result[broker.Consensus]
}

// TechnicalDetail is the technical tally behind the sub-score.
type TechnicalDetail struct {
	Signal       entity.TechnicalSignal `json:"signal"`
	BullishScore int                    `json:"bullish_score"`
	BearishScore int                    `json:"bearish_score"`
	TechnicalParams
}

// WhaleDetail is the volume anomaly read-out feeding the bias.
type WhaleDetail struct {
	VolRatio *float64 `json:"vol_ratio"`
	Detected bool     `json:"is_whale_detected"`
}

// NewsDetail is the news roll-up feeding the bias.
type NewsDetail struct {
	Kategori   entity.NewsCategory `json:"kategori"`
	Rating     *float64            `json:"rating"`
	TotalItems int                 `json:"total_items"`
	Reason     string              `json:"reason,omitempty"`
}

// BrokerDetail is the analyst consensus behind the broker sub-score.
type BrokerDetail struct {
	Consensus     string   `json:"consensus"`
	AverageRating float64  `json:"average_rating"`
	UpsidePct     *float64 `json:"upside_pct"`
}

// ScoreDetails echoes the inputs behind each sub-score. Absent sub-signals are null.
type ScoreDetails struct {
	Fundamental *entity.FundamentalRatios `json:"fundamental"`
	Technical   *TechnicalDetail          `json:"technical"`
	News        NewsDetail                `json:"news"`
	Whale       *WhaleDetail              `json:"whale"`
	Broker      *BrokerDetail             `json:"broker"`
}

// Scores holds the sub-scores, the combined score and the resulting action.
type Scores struct {
	FundamentalScore *float64      `json:"fundamental_score"`
	TechnicalScore   *float64      `json:"technical_score"`
	BrokerScore      *float64      `json:"broker_score"`
	CombinedScore    *float64      `json:"combined_score"`
	Bias             float64       `json:"bias"`
	Weights          Weights       `json:"weights"`
	Action           entity.Action `json:"action"`
	Details          ScoreDetails  `json:"details"`
}

// CombinedResult is the complete answer for one symbol. It is always well formed, even
// when every sub-signal is unavailable.
type CombinedResult struct {
	Ticker      string                              `json:"ticker"`
	Style       string                              `json:"style"`
	Scores      Scores                              `json:"scores"`
	Fundamental entity.Result[fundamental.Analysis] `json:"fundamental"`
	Technical   entity.Result[technical.Analysis]   `json:"technical"`
	Whale       entity.Result[whale.Signal]         `json:"whale"`
	News        news.Verdict                        `json:"news"`
	Broker      entity.Result[broker.Consensus]     `json:"broker"`
	Summary     string                              `json:"summary"`
}

// ActionFor maps a combined score to an action. No score means PANTAU.
func ActionFor(score *float64) entity.Action {
	switch {
	case score == nil:
		return entity.ActionPantau
	case *score >= AccumulateScore:
		return entity.ActionCicil
	case *score <= DisposeScore:
		return entity.ActionBuang
	default:
		return entity.ActionPantau
	}
}

// WeightsFor picks the weight table by whether the broker consensus contributes.
func WeightsFor(brokerAvailable bool) Weights {
	if brokerAvailable {
		return WeightsWithBroker
	}
	return WeightsWithoutBroker
}

// BiasFor sums the additive adjustments from whale activity, rumours and broker upside.
func BiasFor(in Inputs) float64 {
	bias := 0.0
	if w, ok := in.Whale.Get(); ok && w.Detected {
		bias += WhaleBias
	}
	if in.News.Kategori == entity.NewsRumor {
		bias += RumorBias
	}
	if c, ok := in.Broker.Get(); ok && c.UpsidePct != nil {
		switch u := *c.UpsidePct; {
		case u >= StrongUpside:
			bias += StrongUpBias
		case u >= Upside:
			bias += UpsideBias
		case u <= Downside:
			bias += DownsideBias
		}
	}
	return bias
}

// orDisabled treats an unset result as switched off so it always carries a reason.
func orDisabled[T any](r entity.Result[T]) entity.Result[T] {
	if !r.IsAvailable() && r.Reason() == "" {
		return entity.Disabled[T]()
	}
	return r
}

// Fuse computes the combined score, action and summary.
func Fuse(in Inputs) CombinedResult {
	if in.Style == "" {
		in.Style = DefaultStyle
	}
	if in.News.Kategori == "" {
		in.News = news.UnavailableVerdict(entity.ReasonDisabled)
	}
	in.Fundamental = orDisabled(in.Fundamental)
	in.Technical = orDisabled(in.Technical)
	in.Whale = orDisabled(in.Whale)
	in.Broker = orDisabled(in.Broker)

	var (
		scores      Scores
		weightedSum float64
		totalWeight float64
	)

	_, brokerOK := in.Broker.Get()
	weights := WeightsFor(brokerOK)
	scores.Weights = weights

	if f, ok := in.Fundamental.Get(); ok {
		s := f.Score.Score
		scores.FundamentalScore = &s
		details := f.Score.Details
		scores.Details.Fundamental = &details
		weightedSum += weights.Fundamental * s
		totalWeight += weights.Fundamental
	}

	if t, ok := in.Technical.Get(); ok {
		s := t.Score()
		scores.TechnicalScore = &s
		scores.Details.Technical = &TechnicalDetail{
			Signal:          t.Decision.Signal,
			BullishScore:    t.Decision.BullishScore,
			BearishScore:    t.Decision.BearishScore,
			TechnicalParams: in.Params,
		}
		weightedSum += weights.Technical * s
		totalWeight += weights.Technical
	}

	if c, ok := in.Broker.Get(); ok {
		s := c.Score()
		scores.BrokerScore = &s
		scores.Details.Broker = &BrokerDetail{
			Consensus:     c.Consensus,
			AverageRating: c.AverageRating,
			UpsidePct:     c.UpsidePct,
		}
		weightedSum += weights.Broker * s
		totalWeight += weights.Broker
	}

	if w, ok := in.Whale.Get(); ok {
		scores.Details.Whale = &WhaleDetail{VolRatio: w.VolRatio, Detected: w.Detected}
	}

	scores.Details.News = NewsDetail{
		Kategori:   in.News.Kategori,
		Rating:     in.News.Rating,
		TotalItems: in.News.TotalItems,
		Reason:     in.News.Reason,
	}

	if totalWeight > 0 {
		scores.Bias = BiasFor(in)
		combined := weightedSum/totalWeight + scores.Bias
		combined = math.Max(0, math.Min(100, combined))
		scores.CombinedScore = &combined
	}
	scores.Action = ActionFor(scores.CombinedScore)

	return CombinedResult{
		Ticker:      in.Symbol,
		Style:       in.Style,
		Scores:      scores,
		Fundamental: in.Fundamental,
		Technical:   in.Technical,
		Whale:       in.Whale,
		News:        in.News,
		Broker:      in.Broker,
		Summary:     Summary(in, scores.CombinedScore),
	}
}
