package entity

import (
	"bytes"
	"encoding/json"
)

// Unavailability reasons shared by every sub-signal.
const (
	ReasonDisabled         = "disabled_by_flag"
	ReasonNoData           = "no_data"
	ReasonNoVolumeData     = "no_volume_data"
	ReasonInsufficientData = "insufficient_data"
	ReasonTimeout          = "timeout"
)

// Result is the outcome of one sub-signal: either Available(value) or Unavailable(reason).
// Unavailability is a normal state, not an error.
//
// JSON form: the value's own object with "available": true merged in, or
// {"available": false, "reason": "..."}.
type Result[T any] struct {
	value  T
	ok     bool
	reason string
}

func Available[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

func Unavailable[T any](reason string) Result[T] {
	return Result[T]{reason: reason}
}

// Disabled is the Unavailable state for a sub-signal switched off by the caller.
func Disabled[T any]() Result[T] {
	return Unavailable[T](ReasonDisabled)
}

// Get returns the value and whether it is available.
func (r Result[T]) Get() (T, bool) {
	return r.value, r.ok
}

func (r Result[T]) IsAvailable() bool {
	return r.ok
}

// Reason is empty for available results.
func (r Result[T]) Reason() string {
	return r.reason
}

type unavailableJSON struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason"`
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	if !r.ok {
		return json.Marshal(unavailableJSON{Available: false, Reason: r.reason})
	}

	body, err := json.Marshal(r.value)
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSpace(body)
	if len(body) < 2 || body[0] != '{' {
		return json.Marshal(struct {
			Available bool            `json:"available"`
			Value     json.RawMessage `json:"value"`
		}{true, body})
	}
	if bytes.Equal(body, []byte("{}")) {
		return []byte(`{"available":true}`), nil
	}

	out := make([]byte, 0, len(body)+18)
	out = append(out, `{"available":true,`...)
	return append(out, body[1:]...), nil
}

func (r *Result[T]) UnmarshalJSON(data []byte) error {
	var head struct {
		Available bool            `json:"available"`
		Reason    string          `json:"reason"`
		Value     json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	var zero T
	if !head.Available {
		*r = Result[T]{value: zero, reason: head.Reason}
		return nil
	}

	payload := data
	if len(head.Value) > 0 {
		payload = head.Value
	}
	if err := json.Unmarshal(payload, &zero); err != nil {
		return err
	}
	*r = Result[T]{value: zero, ok: true}
	return nil
}
