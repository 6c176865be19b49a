package entity

import "time"

// PriceBar is one OHLCV session. A sequence of bars is ordered ascending by Date
// with no duplicate dates.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Closes extracts the close column.
func Closes(bars []PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Volumes extracts the volume column.
func Volumes(bars []PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Volume
	}
	return out
}

// Tail returns the last n bars (all bars when n exceeds the length).
func Tail(bars []PriceBar, n int) []PriceBar {
	if n <= 0 {
		return nil
	}
	if n >= len(bars) {
		return bars
	}
	return bars[len(bars)-n:]
}
