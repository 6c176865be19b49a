package entity

// Action is the three-way recommendation shared by the fundamental scorer and the fusion engine.
type Action string

const (
	ActionCicil  Action = "CICIL"  // accumulate
	ActionPantau Action = "PANTAU" // watch
	ActionBuang  Action = "BUANG"  // dispose
)

// TechnicalSignal is the discrete output of the technical decision engine.
type TechnicalSignal string

const (
	SignalBuy  TechnicalSignal = "BUY"
	SignalSell TechnicalSignal = "SELL"
	SignalHold TechnicalSignal = "HOLD"
)

// NewsCategory is the sentiment verdict of a news item or a set of items.
type NewsCategory string

const (
	NewsPositif NewsCategory = "Positif"
	NewsNegatif NewsCategory = "Negatif"
	NewsNetral  NewsCategory = "Netral"
	NewsRumor   NewsCategory = "Rumor"
)
