// Package whale flags abnormal volume spikes against the trailing average.
package whale

import (
	"fmt"
	"math"

	"idx-market-intel/internal/entity"
)

const (
	// MinDays is the smallest window the detector looks at.
	MinDays = 5
	// Threshold is the volume ratio above which a session counts as whale activity.
	Threshold = 1.5
)

// Signal is the outcome of one detection.
type Signal struct {
	Symbol        string   `json:"symbol,omitempty"`
	TodayPrice    *float64 `json:"today_price,omitempty"`
	TodayTurnover *float64 `json:"today_turnover,omitempty"`
	VolRatio      *float64 `json:"vol_ratio"`
	Detected      bool     `json:"is_whale_detected"`
	AnalysisNote  string   `json:"analysis_note,omitempty"`
}

// Window returns the number of sessions inspected for a requested day count.
func Window(days int) int {
	if days < MinDays {
		return MinDays
	}
	return days
}

// Detect compares the latest session volume with the mean of the earlier sessions in the
// trailing window. Sessions without a usable volume are dropped first.
func Detect(symbol string, bars []entity.PriceBar, days int) entity.Result[Signal] {
	if len(bars) == 0 {
		return entity.Unavailable[Signal](entity.ReasonNoVolumeData)
	}

	window := make([]entity.PriceBar, 0, len(bars))
	for _, b := range entity.Tail(bars, Window(days)) {
		if math.IsNaN(b.Volume) || b.Volume < 0 {
			continue
		}
		window = append(window, b)
	}
	if len(window) < 2 {
		return entity.Unavailable[Signal](entity.ReasonInsufficientData)
	}

	last := window[len(window)-1]
	prev := window[:len(window)-1]
	sum := 0.0
	for _, b := range prev {
		sum += b.Volume
	}
	avg := sum / float64(len(prev))

	price := last.Close
	turnover := last.Volume * price
	sig := Signal{
		Symbol:        symbol,
		TodayPrice:    &price,
		TodayTurnover: &turnover,
	}
	if avg > 0 {
		ratio := last.Volume / avg
		sig.VolRatio = &ratio
		sig.Detected = ratio > Threshold
	}
	sig.AnalysisNote = Note(sig.VolRatio, len(prev))

	return entity.Available(sig)
}

// Note renders the human-readable description of a ratio.
func Note(ratio *float64, priorSessions int) string {
	if ratio == nil {
		return "Volume ratio tidak tersedia."
	}
	return fmt.Sprintf("Aktivitas volume %.2fx lebih tinggi dari rata-rata %d hari terakhir.", *ratio, priorSessions)
}
