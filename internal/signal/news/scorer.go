package news

import (
	"math"
	"strings"

	"github.com/jonreiter/govader"
)

// Polarity is a lexicon read-out of a text: proportions of positive, negative and neutral
// tokens plus the normalised compound valence in [-1, 1].
type Polarity struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Compound float64 `json:"compound"`
}

// Scorer computes text polarity.
type Scorer interface {
	PolarityScores(text string) Polarity
}

// boosterIncrement matches VADER's B_INCR.
const boosterIncrement = 0.293

type vaderScorer struct {
	sia *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer returns a VADER scorer whose English lexicon is extended with Indonesian
// market vocabulary, boosters and negators. extra entries override both.
// The analyzer is only read after construction, so the scorer is safe for concurrent use.
func NewVaderScorer(extra map[string]float64) Scorer {
	sia := govader.NewSentimentIntensityAnalyzer()
	for k, v := range indonesianLexicon {
		sia.Lexicon[k] = v
	}
	for k, v := range extra {
		sia.Lexicon[strings.ToLower(k)] = v
	}
	for _, w := range indonesianBoosters {
		sia.Constants.BoosterDict[w] = boosterIncrement
	}
	sia.Constants.NegateList = append(sia.Constants.NegateList, indonesianNegators...)
	return &vaderScorer{sia: sia}
}

func (s *vaderScorer) PolarityScores(text string) Polarity {
	p := s.sia.PolarityScores(text)
	return Polarity{
		Positive: round3(p.Positive),
		Negative: round3(p.Negative),
		Neutral:  round3(p.Neutral),
		Compound: round4(p.Compound),
	}
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
