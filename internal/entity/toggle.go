package entity

import (
	"encoding/json"
)

// Toggle is a per-request sub-signal switch with an explicit "use the configured default" state.
type Toggle int

const (
	ToggleDefault Toggle = iota
	ToggleEnabled
	ToggleDisabled
)

// ToggleFromBool maps a nullable bool (absent means default) to a Toggle.
func ToggleFromBool(v *bool) Toggle {
	switch {
	case v == nil:
		return ToggleDefault
	case *v:
		return ToggleEnabled
	default:
		return ToggleDisabled
	}
}

// Resolve returns the effective on/off state given the configured default.
func (t Toggle) Resolve(def bool) bool {
	switch t {
	case ToggleEnabled:
		return true
	case ToggleDisabled:
		return false
	default:
		return def
	}
}

func (t Toggle) String() string {
	switch t {
	case ToggleEnabled:
		return "enabled"
	case ToggleDisabled:
		return "disabled"
	default:
		return "default"
	}
}

// MarshalJSON writes true, false or null.
func (t Toggle) MarshalJSON() ([]byte, error) {
	switch t {
	case ToggleEnabled:
		return []byte("true"), nil
	case ToggleDisabled:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts true, false or null.
func (t *Toggle) UnmarshalJSON(data []byte) error {
	var v *bool
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = ToggleFromBool(v)
	return nil
}
