// Package fundamental scores valuation ratios on a 0..100 scale.
package fundamental

import (
	"math"
	"strings"

	"github.com/spf13/cast"

	"idx-market-intel/internal/entity"
)

const (
	Baseline        = 50.0
	AccumulateScore = 65.0
	DisposeScore    = 35.0
)

// Profile is the raw fundamentals snapshot of a symbol.
type Profile struct {
	Symbol string                   `json:"symbol"`
	Price  *float64                 `json:"price"`
	Sector string                   `json:"sector,omitempty"`
	Ratios entity.FundamentalRatios `json:"ratios"`
}

// Score is the outcome of the ratio rules.
type Score struct {
	Score   float64                  `json:"score"`
	Action  entity.Action            `json:"action"`
	Details entity.FundamentalRatios `json:"details"`
}

// Analysis combines the profile with its score.
type Analysis struct {
	Profile
	Score
}

// Evaluate applies the additive ratio rules. Absent ratios are skipped.
func Evaluate(r entity.FundamentalRatios) Score {
	score := Baseline

	if v, ok := num(r.PER); ok && v > 0 {
		switch {
		case v < 10:
			score += 12
		case v < 18:
			score += 6
		case v > 30:
			score -= 10
		}
	}

	if v, ok := num(r.PBV); ok && v > 0 {
		switch {
		case v < 1.5:
			score += 8
		case v > 5:
			score -= 8
		}
	}

	if v, ok := num(r.DER); ok {
		switch {
		case v < 1:
			score += 6
		case v > 3:
			score -= 6
		}
	}

	if v, ok := num(r.ROEPct); ok {
		switch {
		case v >= 15:
			score += 10
		case v < 5:
			score -= 6
		}
	}

	if v, ok := num(r.DivYieldPct); ok {
		switch {
		case v >= 4:
			score += 6
		case v < 1:
			score -= 3
		}
	}

	score = math.Max(0, math.Min(100, score))
	return Score{Score: score, Action: ActionFor(score), Details: r}
}

// ActionFor maps a fundamental score to the shared action taxonomy.
func ActionFor(score float64) entity.Action {
	switch {
	case score >= AccumulateScore:
		return entity.ActionCicil
	case score <= DisposeScore:
		return entity.ActionBuang
	default:
		return entity.ActionPantau
	}
}

// Analyze scores a profile. A profile with no price and no ratios carries no signal.
func Analyze(p Profile) entity.Result[Analysis] {
	r := p.Ratios
	if p.Price == nil && r.PER == nil && r.PBV == nil && r.DER == nil && r.ROEPct == nil && r.DivYieldPct == nil {
		return entity.Unavailable[Analysis](entity.ReasonNoData)
	}
	return entity.Available(Analysis{Profile: p, Score: Evaluate(r)})
}

func num(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, false
	}
	return *v, true
}

// RatiosFromMap coerces a loosely typed payload into ratios. Keys are matched
// case-insensitively; values that cannot be read as numbers are left nil.
func RatiosFromMap(m map[string]any) entity.FundamentalRatios {
	norm := make(map[string]any, len(m))
	for k, v := range m {
		norm[strings.ToLower(strings.TrimSpace(k))] = v
	}

	get := func(keys ...string) *float64 {
		for _, k := range keys {
			raw, ok := norm[k]
			if !ok || raw == nil {
				continue
			}
			f, err := cast.ToFloat64E(raw)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				continue
			}
			return &f
		}
		return nil
	}

	return entity.FundamentalRatios{
		PER:         get("per", "pe"),
		PBV:         get("pbv", "pb"),
		DER:         get("der"),
		ROEPct:      get("roe_pct", "roe"),
		DivYieldPct: get("div_yield_pct", "dividend_yield"),
	}
}
