package indicator

import (
	"math"

	"idx-market-intel/internal/entity"
)

const (
	DefaultFibonacciLookback = 60
	DefaultPivotLookback     = 15
)

// FibonacciRatios lists the emitted ratios in ascending order; the JSON keys use the same text.
var FibonacciRatios = []string{"0.0", "0.236", "0.382", "0.5", "0.618", "0.786", "1.0", "1.272", "1.618", "2.618"}

// Fibonacci is the retracement and extension ladder over a trailing swing.
type Fibonacci struct {
	SwingHigh Value            `json:"swing_high"`
	SwingLow  Value            `json:"swing_low"`
	Levels    map[string]Value `json:"levels"`
}

// Pivot holds classic floor-trader pivot levels.
type Pivot struct {
	Pivot Value `json:"pivot"`
	R1    Value `json:"r1"`
	S1    Value `json:"s1"`
	R2    Value `json:"r2"`
	S2    Value `json:"s2"`
}

func swing(bars []entity.PriceBar) (high, low float64, ok bool) {
	if len(bars) == 0 {
		return 0, 0, false
	}
	high, low = math.Inf(-1), math.Inf(1)
	for _, b := range bars {
		high = math.Max(high, b.High)
		low = math.Min(low, b.Low)
	}
	return high, low, true
}

// FibonacciLevels computes levels from max(High) and min(Low) over the trailing lookback bars.
// Extensions above 1.0 project upward from the swing high.
func FibonacciLevels(bars []entity.PriceBar, lookback int) Fibonacci {
	levels := make(map[string]Value, len(FibonacciRatios))
	high, low, ok := swing(entity.Tail(bars, lookback))
	if !ok {
		for _, k := range FibonacciRatios {
			levels[k] = None()
		}
		return Fibonacci{Levels: levels}
	}

	diff := high - low
	levels["0.0"] = Some(low)
	levels["0.236"] = Some(low + diff*0.236)
	levels["0.382"] = Some(low + diff*0.382)
	levels["0.5"] = Some(low + diff*0.5)
	levels["0.618"] = Some(low + diff*0.618)
	levels["0.786"] = Some(low + diff*0.786)
	levels["1.0"] = Some(high)
	levels["1.272"] = Some(high + diff*0.272)
	levels["1.618"] = Some(high + diff*0.618)
	levels["2.618"] = Some(high + diff*1.618)

	return Fibonacci{SwingHigh: Some(high), SwingLow: Some(low), Levels: levels}
}

// PivotPoints uses the trailing lookback range and the most recent close.
func PivotPoints(bars []entity.PriceBar, lookback int) Pivot {
	window := entity.Tail(bars, lookback)
	high, low, ok := swing(window)
	if !ok {
		return Pivot{}
	}
	last := window[len(window)-1].Close

	p := (high + low + last) / 3
	return Pivot{
		Pivot: Some(p),
		R1:    Some(2*p - low),
		S1:    Some(2*p - high),
		R2:    Some(p + (high - low)),
		S2:    Some(p - (high - low)),
	}
}
