package indicator

import "math"

// Default periods.
const (
	DefaultRSIPeriod      = 14
	DefaultMFIPeriod      = 14
	DefaultStochRSIPeriod = 14
	MACDFastSpan          = 12
	MACDSlowSpan          = 26
	MACDSignalSpan        = 9
	stochSmoothing        = 3
)

// RSI uses Wilder smoothing (alpha = 1/period) over gains and losses. A reading needs
// period price changes; a window with no losses has no defined RSI.
func RSI(closes []float64, period int) []float64 {
	if period < 1 {
		return nanSeries(len(closes))
	}
	delta := Diff(closes)
	gain := make([]float64, len(delta))
	loss := make([]float64, len(delta))
	for i, d := range delta {
		switch {
		case math.IsNaN(d):
			gain[i], loss[i] = nan, nan
		case d > 0:
			gain[i] = d
		default:
			loss[i] = -d
		}
	}

	opts := EWMOptions{Alpha: 1 / float64(period), Adjust: true, MinPeriods: period}
	avgGain := EWM(gain, opts)
	avgLoss := EWM(loss, opts)

	out := nanSeries(len(closes))
	for i := range out {
		if avgLoss[i] == 0 || math.IsNaN(avgLoss[i]) || math.IsNaN(avgGain[i]) {
			continue
		}
		rs := avgGain[i] / avgLoss[i]
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

// MACDSeries holds the line, signal and histogram series aligned with the input.
type MACDSeries struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// MACD computes the 12/26/9 MACD. Fewer than two closes carry no trend, so every
// element is missing in that case.
func MACD(closes []float64) MACDSeries {
	n := len(closes)
	if n < 2 {
		return MACDSeries{Line: nanSeries(n), Signal: nanSeries(n), Histogram: nanSeries(n)}
	}

	fast := EMA(closes, MACDFastSpan)
	slow := EMA(closes, MACDSlowSpan)
	line := make([]float64, n)
	for i := range line {
		line[i] = fast[i] - slow[i]
	}
	signal := EMA(line, MACDSignalSpan)
	hist := make([]float64, n)
	for i := range hist {
		hist[i] = line[i] - signal[i]
	}
	return MACDSeries{Line: line, Signal: signal, Histogram: hist}
}

// MFI is the money flow index. Inputs must be aligned by index.
func MFI(high, low, closes, volume []float64, period int) []float64 {
	n := len(closes)
	if len(high) != n || len(low) != n || len(volume) != n || period < 1 {
		return nanSeries(n)
	}

	tp := make([]float64, n)
	for i := range tp {
		tp[i] = (high[i] + low[i] + closes[i]) / 3
	}

	positive := make([]float64, n)
	negative := make([]float64, n)
	for i := 1; i < n; i++ {
		mf := tp[i] * volume[i]
		switch {
		case tp[i] > tp[i-1]:
			positive[i] = mf
		case tp[i] < tp[i-1]:
			negative[i] = mf
		}
	}

	posSum := RollingSum(positive, period)
	negSum := RollingSum(negative, period)

	out := nanSeries(n)
	for i := range out {
		if n < 2 || negSum[i] == 0 || math.IsNaN(negSum[i]) || math.IsNaN(posSum[i]) {
			continue
		}
		ratio := posSum[i] / negSum[i]
		out[i] = 100 - 100/(1+ratio)
	}
	return out
}

// StochRSISeries holds %K and %D, both on a 0..100 scale.
type StochRSISeries struct {
	K []float64
	D []float64
}

// StochRSI normalises RSI against its rolling range over period bars and smooths it with
// 3-bar means for %K and %D.
func StochRSI(closes []float64, period int) StochRSISeries {
	rsi := RSI(closes, period)
	lo := RollingMin(rsi, period)
	hi := RollingMax(rsi, period)

	stoch := nanSeries(len(rsi))
	for i := range stoch {
		rng := hi[i] - lo[i]
		if rng == 0 || math.IsNaN(rng) {
			continue
		}
		stoch[i] = (rsi[i] - lo[i]) / rng
	}

	k := RollingMean(stoch, stochSmoothing)
	for i := range k {
		k[i] *= 100
	}
	return StochRSISeries{K: k, D: RollingMean(k, stochSmoothing)}
}
