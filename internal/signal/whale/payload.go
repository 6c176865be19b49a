package whale

import (
	"math"

	"github.com/spf13/cast"
)

// FromPayload reads a caller-supplied whale alert. Fields that cannot be coerced are left
// empty instead of failing the whole payload.
func FromPayload(symbol string, m map[string]any) Signal {
	sig := Signal{Symbol: symbol}
	if s, err := cast.ToStringE(m["symbol"]); err == nil && s != "" {
		sig.Symbol = s
	}
	sig.TodayPrice = floatField(m, "today_price")
	sig.TodayTurnover = floatField(m, "today_turnover")
	sig.VolRatio = floatField(m, "vol_ratio")
	if raw, ok := m["is_whale_detected"]; ok && raw != nil {
		if b, err := cast.ToBoolE(raw); err == nil {
			sig.Detected = b
		}
	} else if sig.VolRatio != nil {
		sig.Detected = *sig.VolRatio > Threshold
	}
	if note, err := cast.ToStringE(m["analysis_note"]); err == nil {
		sig.AnalysisNote = note
	}
	return sig
}

func floatField(m map[string]any, key string) *float64 {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
