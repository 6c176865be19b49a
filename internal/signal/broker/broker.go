// Package broker normalises analyst recommendation counts into a consensus and a sub-score.
package broker

import (
	"github.com/shopspring/decimal"

	"idx-market-intel/internal/entity"
)

// Consensus labels.
const (
	StrongBuy  = "Strong Buy"
	Buy        = "Buy"
	Hold       = "Hold"
	Sell       = "Sell"
	StrongSell = "Strong Sell"
)

const highConfidenceAnalysts = 10

type Breakdown struct {
	StrongBuy  int `json:"strong_buy"`
	Buy        int `json:"buy"`
	Hold       int `json:"hold"`
	Sell       int `json:"sell"`
	StrongSell int `json:"strong_sell"`
}

// Consensus is the normalised analyst view on a symbol.
type Consensus struct {
	Consensus     string    `json:"consensus"`
	AverageRating float64   `json:"average_rating"`
	TotalAnalysts int       `json:"total_analysts"`
	Confidence    string    `json:"confidence"`
	Breakdown     Breakdown `json:"breakdown"`
	TargetPrice   *float64  `json:"target_price"`
	CurrentPrice  *float64  `json:"current_price"`
	UpsidePct     *float64  `json:"upside_pct"`
}

// Score maps the average rating to the fusion sub-score.
func (c Consensus) Score() float64 {
	return RatingScore(c.AverageRating)
}

// Analyze weights StrongBuy..StrongSell as 1..5. No ratings means no consensus.
func Analyze(r entity.AnalystRatings) entity.Result[Consensus] {
	total := r.StrongBuy + r.Buy + r.Hold + r.Sell + r.StrongSell
	if total <= 0 {
		return entity.Unavailable[Consensus](entity.ReasonNoData)
	}

	weighted := r.StrongBuy*1 + r.Buy*2 + r.Hold*3 + r.Sell*4 + r.StrongSell*5
	avg := Round2(float64(weighted) / float64(total))

	c := Consensus{
		Consensus:     Label(avg),
		AverageRating: avg,
		TotalAnalysts: total,
		Confidence:    "Low",
		Breakdown: Breakdown{
			StrongBuy:  r.StrongBuy,
			Buy:        r.Buy,
			Hold:       r.Hold,
			Sell:       r.Sell,
			StrongSell: r.StrongSell,
		},
		TargetPrice:  r.TargetPrice,
		CurrentPrice: r.CurrentPrice,
		UpsidePct:    Upside(r.TargetPrice, r.CurrentPrice),
	}
	if total >= highConfidenceAnalysts {
		c.Confidence = "High"
	}
	return entity.Available(c)
}

// Label bands the average rating; each upper bound is inclusive.
func Label(avg float64) string {
	switch {
	case avg <= 1.5:
		return StrongBuy
	case avg <= 2.5:
		return Buy
	case avg <= 3.5:
		return Hold
	case avg <= 4.5:
		return Sell
	default:
		return StrongSell
	}
}

func RatingScore(avg float64) float64 {
	switch {
	case avg <= 1.5:
		return 75
	case avg <= 2.5:
		return 65
	case avg <= 3.5:
		return 50
	case avg <= 4.5:
		return 35
	default:
		return 25
	}
}

// Upside is the percentage distance from current to target price. Both prices must be
// present and non-zero.
func Upside(target, current *float64) *float64 {
	if target == nil || current == nil || *target == 0 || *current == 0 {
		return nil
	}
	u := Round2((*target - *current) / *current * 100)
	return &u
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
