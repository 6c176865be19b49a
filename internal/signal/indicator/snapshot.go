package indicator

import "idx-market-intel/internal/entity"

// Snapshot is the latest value of every indicator for one series.
type Snapshot struct {
	RSI           Value `json:"rsi"`
	MACD          Value `json:"macd"`
	MACDSignal    Value `json:"macd_signal"`
	MACDHistogram Value `json:"macd_histogram"`
	MFI           Value `json:"mfi"`
	StochK        Value `json:"stoch_k"`
	StochD        Value `json:"stoch_d"`
}

// Latest evaluates all momentum indicators over bars and keeps the final reading of each.
// rsiPeriod drives both RSI and Stochastic RSI; values below 1 fall back to the default.
func Latest(bars []entity.PriceBar, rsiPeriod int) Snapshot {
	if rsiPeriod < 1 {
		rsiPeriod = DefaultRSIPeriod
	}

	n := len(bars)
	closes := make([]float64, n)
	high := make([]float64, n)
	low := make([]float64, n)
	volume := make([]float64, n)
	for i, b := range bars {
		closes[i], high[i], low[i], volume[i] = b.Close, b.High, b.Low, b.Volume
	}

	macd := MACD(closes)
	stoch := StochRSI(closes, rsiPeriod)

	return Snapshot{
		RSI:           Last(RSI(closes, rsiPeriod)),
		MACD:          Last(macd.Line),
		MACDSignal:    Last(macd.Signal),
		MACDHistogram: Last(macd.Histogram),
		MFI:           Last(MFI(high, low, closes, volume, DefaultMFIPeriod)),
		StochK:        Last(stoch.K),
		StochD:        Last(stoch.D),
	}
}
