// Package indicator implements the momentum and level indicators used by the technical
// decision engine. Every function is pure and works on oldest-first series. Missing values
// are carried internally as NaN and surfaced as Value so they never leak as zero.
package indicator

import (
	"encoding/json"
	"math"
)

// Value is a single indicator reading that may be absent.
type Value struct {
	V     float64
	Valid bool
}

// Some wraps v, treating NaN and ±Inf as absent.
func Some(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{V: v, Valid: true}
}

// None is the absent reading.
func None() Value { return Value{} }

// Ptr returns nil for absent readings.
func (v Value) Ptr() *float64 {
	if !v.Valid {
		return nil
	}
	f := v.V
	return &f
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.V)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var f *float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if f == nil {
		*v = Value{}
		return nil
	}
	*v = Some(*f)
	return nil
}

// Last returns the final element of a series.
func Last(series []float64) Value {
	if len(series) == 0 {
		return None()
	}
	return Some(series[len(series)-1])
}
