package indicator

import "math"

var nan = math.NaN()

func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = nan
	}
	return out
}

// EWMOptions configures an exponentially weighted mean.
type EWMOptions struct {
	Alpha float64
	// Adjust divides by the decaying sum of weights, which removes the start-up bias.
	Adjust bool
	// MinPeriods is the number of observations required before a value is emitted.
	MinPeriods int
}

// EWM computes an exponentially weighted mean. NaN inputs are skipped as observations but
// still decay the weight of earlier ones.
func EWM(series []float64, opts EWMOptions) []float64 {
	out := nanSeries(len(series))
	alpha := opts.Alpha
	if alpha <= 0 || alpha > 1 {
		return out
	}

	newWt := 1.0
	if !opts.Adjust {
		newWt = alpha
	}
	oldWtFactor := 1 - alpha
	oldWt := 1.0
	weighted := nan
	nobs := 0

	for i, x := range series {
		isObs := !math.IsNaN(x)
		if isObs {
			nobs++
		}

		if !math.IsNaN(weighted) {
			oldWt *= oldWtFactor
			if isObs {
				if weighted != x {
					weighted = (oldWt*weighted + newWt*x) / (oldWt + newWt)
				}
				if opts.Adjust {
					oldWt += newWt
				} else {
					oldWt = 1
				}
			}
		} else if isObs {
			weighted = x
		}

		if nobs >= opts.MinPeriods && nobs > 0 {
			out[i] = weighted
		}
	}
	return out
}

// EMA is the span-based exponential moving average, alpha = 2/(span+1), seeded by the first
// value without bias correction.
func EMA(series []float64, span int) []float64 {
	if span < 1 {
		return nanSeries(len(series))
	}
	return EWM(series, EWMOptions{Alpha: 2 / float64(span+1)})
}

// EMAAdjusted is the bias-corrected variant used for chart overlays.
func EMAAdjusted(series []float64, span int) []float64 {
	if span < 1 {
		return nanSeries(len(series))
	}
	return EWM(series, EWMOptions{Alpha: 2 / float64(span+1), Adjust: true})
}

// Diff returns x[i]-x[i-1]; the first element is NaN.
func Diff(series []float64) []float64 {
	out := nanSeries(len(series))
	for i := 1; i < len(series); i++ {
		out[i] = series[i] - series[i-1]
	}
	return out
}

func rolling(series []float64, window int, fold func(w []float64) float64) []float64 {
	out := nanSeries(len(series))
	if window < 1 {
		return out
	}
	for i := window - 1; i < len(series); i++ {
		w := series[i-window+1 : i+1]
		complete := true
		for _, x := range w {
			if math.IsNaN(x) {
				complete = false
				break
			}
		}
		if complete {
			out[i] = fold(w)
		}
	}
	return out
}

// RollingSum emits NaN until a full window of observations is available.
func RollingSum(series []float64, window int) []float64 {
	return rolling(series, window, func(w []float64) float64 {
		s := 0.0
		for _, x := range w {
			s += x
		}
		return s
	})
}

func RollingMean(series []float64, window int) []float64 {
	return rolling(series, window, func(w []float64) float64 {
		s := 0.0
		for _, x := range w {
			s += x
		}
		return s / float64(len(w))
	})
}

func RollingMin(series []float64, window int) []float64 {
	return rolling(series, window, func(w []float64) float64 {
		m := w[0]
		for _, x := range w[1:] {
			m = math.Min(m, x)
		}
		return m
	})
}

func RollingMax(series []float64, window int) []float64 {
	return rolling(series, window, func(w []float64) float64 {
		m := w[0]
		for _, x := range w[1:] {
			m = math.Max(m, x)
		}
		return m
	})
}
