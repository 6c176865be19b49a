// Package technical turns an indicator snapshot into a BUY/SELL/HOLD decision.
package technical

import (
	"idx-market-intel/internal/entity"
	"idx-market-intel/internal/signal/indicator"
)

// Classification thresholds.
const (
	RSIOversold    = 30.0
	RSIOverbought  = 70.0
	MFIOversold    = 20.0
	MFIOverbought  = 80.0
	pointsRequired = 3
)

// Zone labels for bounded oscillators and trend labels for crossovers.
const (
	ZoneOversold   = "oversold"
	ZoneOverbought = "overbought"
	ZoneNeutral    = "neutral"

	TrendBullish = "bullish"
	TrendBearish = "bearish"
	TrendNone    = "unavailable"
)

// Sub-scores fed to the fusion engine.
const (
	ScoreBuy  = 70.0
	ScoreSell = 30.0
	ScoreHold = 50.0
)

// Decision is the tally behind a signal.
type Decision struct {
	BullishScore int                    `json:"bullish_score"`
	BearishScore int                    `json:"bearish_score"`
	Signal       entity.TechnicalSignal `json:"signal"`
}

// Oscillator is a bounded indicator reading with its oversold/overbought label.
type Oscillator struct {
	Value  indicator.Value `json:"value"`
	Signal string          `json:"signal"`
}

// MACDReading is the latest MACD line, signal line and histogram.
type MACDReading struct {
	MACD      indicator.Value `json:"macd"`
	Signal    indicator.Value `json:"signal"`
	Histogram indicator.Value `json:"histogram"`
	Trend     string          `json:"trend"`
}

// StochReading is the latest Stochastic-RSI %K and %D.
type StochReading struct {
	K     indicator.Value `json:"k"`
	D     indicator.Value `json:"d"`
	Trend string          `json:"trend"`
}

// Price is the last close and volume.
type Price struct {
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// Analysis is the full technical read-out for one symbol.
type Analysis struct {
	Symbol    string              `json:"symbol"`
	Price     Price               `json:"price"`
	RSI       Oscillator          `json:"rsi"`
	MACD      MACDReading         `json:"macd"`
	MFI       Oscillator          `json:"mfi"`
	StochRSI  StochReading        `json:"stoch_rsi"`
	Fibonacci indicator.Fibonacci `json:"fibonacci"`
	Pivot     indicator.Pivot     `json:"pivot"`
	Decision  Decision            `json:"decision"`
	Indicator indicator.Snapshot  `json:"indicators"`
}

// Score maps the decision signal to the fusion sub-score.
func (a Analysis) Score() float64 {
	return SignalScore(a.Decision.Signal)
}

func SignalScore(s entity.TechnicalSignal) float64 {
	switch s {
	case entity.SignalBuy:
		return ScoreBuy
	case entity.SignalSell:
		return ScoreSell
	default:
		return ScoreHold
	}
}

func zone(v indicator.Value, oversold, overbought float64) string {
	switch {
	case !v.Valid:
		return ZoneNeutral
	case v.V < oversold:
		return ZoneOversold
	case v.V > overbought:
		return ZoneOverbought
	default:
		return ZoneNeutral
	}
}

func cross(a, b indicator.Value) string {
	if !a.Valid || !b.Valid {
		return TrendNone
	}
	if a.V > b.V {
		return TrendBullish
	}
	return TrendBearish
}

// Decide tallies bullish and bearish points. Missing readings contribute nothing.
func Decide(snap indicator.Snapshot) Decision {
	var d Decision
	tally := func(label string) {
		switch label {
		case ZoneOversold, TrendBullish:
			d.BullishScore++
		case ZoneOverbought, TrendBearish:
			d.BearishScore++
		}
	}

	tally(zone(snap.RSI, RSIOversold, RSIOverbought))
	tally(zone(snap.MFI, MFIOversold, MFIOverbought))
	tally(cross(snap.MACD, snap.MACDSignal))
	tally(cross(snap.StochK, snap.StochD))

	switch {
	case d.BullishScore >= pointsRequired:
		d.Signal = entity.SignalBuy
	case d.BearishScore >= pointsRequired:
		d.Signal = entity.SignalSell
	default:
		d.Signal = entity.SignalHold
	}
	return d
}

// Analyze runs the indicator library over bars. An empty series is unavailable.
func Analyze(symbol string, bars []entity.PriceBar, rsiPeriod int) entity.Result[Analysis] {
	if len(bars) == 0 {
		return entity.Unavailable[Analysis](entity.ReasonNoData)
	}

	snap := indicator.Latest(bars, rsiPeriod)
	last := bars[len(bars)-1]

	return entity.Available(Analysis{
		Symbol: symbol,
		Price:  Price{Close: last.Close, Volume: int64(last.Volume)},
		RSI: Oscillator{
			Value:  snap.RSI,
			Signal: zone(snap.RSI, RSIOversold, RSIOverbought),
		},
		MACD: MACDReading{
			MACD:      snap.MACD,
			Signal:    snap.MACDSignal,
			Histogram: snap.MACDHistogram,
			Trend:     cross(snap.MACD, snap.MACDSignal),
		},
		MFI: Oscillator{
			Value:  snap.MFI,
			Signal: zone(snap.MFI, MFIOversold, MFIOverbought),
		},
		StochRSI: StochReading{
			K:     snap.StochK,
			D:     snap.StochD,
			Trend: cross(snap.StochK, snap.StochD),
		},
		Fibonacci: indicator.FibonacciLevels(bars, indicator.DefaultFibonacciLookback),
		Pivot:     indicator.PivotPoints(bars, indicator.DefaultPivotLookback),
		Decision:  Decide(snap),
		Indicator: snap,
	})
}
