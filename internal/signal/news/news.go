// Package news rates headlines with a lexicon scorer and rolls them up into a single
// sentiment verdict, flagging unconfirmed rumours.
package news

import (
	"strings"

	"github.com/shopspring/decimal"

	"idx-market-intel/internal/entity"
)

const (
	PositiveCompound = 0.05
	NegativeCompound = -0.05
	RumorRatingCap   = 45.0

	BullishScore = 65.0
	BearishScore = 40.0

	ReasonEmptyItems = "news_items kosong"
	ReasonEmptyText  = "judul/summary kosong"
)

// DefaultRumorKeywords are matched as case-insensitive substrings.
var DefaultRumorKeywords = []string{
	"rumor", "isu", "spekulasi", "bocoran", "gosip", "tidak terkonfirmasi", "katanya", "konon", "diduga",
}

// ItemAnalysis is the sentiment of one headline.
type ItemAnalysis struct {
	Available bool                `json:"available"`
	Kategori  entity.NewsCategory `json:"kategori"`
	Rating    *float64            `json:"rating"`
	Scores    *Polarity           `json:"sentiment_scores,omitempty"`
	RumorHits []string            `json:"rumor_hits,omitempty"`
	Reason    string              `json:"reason,omitempty"`
}

// ScoredItem is a news item annotated with its analysis.
type ScoredItem struct {
	entity.NewsItem
	Analysis ItemAnalysis `json:"veteran"`
}

// Breakdown counts items per category.
type Breakdown struct {
	Positif int `json:"Positif"`
	Negatif int `json:"Negatif"`
	Netral  int `json:"Netral"`
	Rumor   int `json:"Rumor"`
}

func (b *Breakdown) add(c entity.NewsCategory) {
	switch c {
	case entity.NewsPositif:
		b.Positif++
	case entity.NewsNegatif:
		b.Negatif++
	case entity.NewsRumor:
		b.Rumor++
	default:
		b.Netral++
	}
}

// Overall resolves the roll-up category: any rumour wins, then the larger of positive and
// negative, with ties falling back to neutral.
func (b Breakdown) Overall() entity.NewsCategory {
	switch {
	case b.Rumor > 0:
		return entity.NewsRumor
	case b.Positif > b.Negatif:
		return entity.NewsPositif
	case b.Negatif > b.Positif:
		return entity.NewsNegatif
	default:
		return entity.NewsNetral
	}
}

// Verdict is the roll-up over a set of items. Kategori is always set, even when the
// verdict is unavailable.
type Verdict struct {
	Available  bool                `json:"available"`
	Emiten     string              `json:"emiten,omitempty"`
	TotalItems int                 `json:"total_items"`
	Kategori   entity.NewsCategory `json:"kategori"`
	Rating     *float64            `json:"rating"`
	Breakdown  *Breakdown          `json:"kategori_breakdown,omitempty"`
	Items      []ScoredItem        `json:"items,omitempty"`
	Reason     string              `json:"reason,omitempty"`
}

// UnavailableVerdict is the neutral verdict carried when news is disabled or failed.
func UnavailableVerdict(reason string) Verdict {
	return Verdict{Kategori: entity.NewsNetral, Reason: reason}
}

// Analyzer scores headlines.
type Analyzer interface {
	AnalyzeItem(title, description string) ItemAnalysis
	Aggregate(emiten string, items []entity.NewsItem) Verdict
}

type analyzer struct {
	scorer   Scorer
	keywords []string
}

// NewAnalyzer builds an Analyzer. An empty keyword list uses DefaultRumorKeywords.
func NewAnalyzer(scorer Scorer, rumorKeywords []string) Analyzer {
	if len(rumorKeywords) == 0 {
		rumorKeywords = DefaultRumorKeywords
	}
	kw := make([]string, 0, len(rumorKeywords))
	for _, k := range rumorKeywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			kw = append(kw, k)
		}
	}
	return &analyzer{scorer: scorer, keywords: kw}
}

func (a *analyzer) rumorHits(text string) []string {
	lower := strings.ToLower(text)
	var hits []string
	for _, k := range a.keywords {
		if strings.Contains(lower, k) {
			hits = append(hits, k)
		}
	}
	return hits
}

func (a *analyzer) AnalyzeItem(title, description string) ItemAnalysis {
	text := strings.TrimSpace(strings.TrimSpace(title) + " " + strings.TrimSpace(description))
	if text == "" {
		return ItemAnalysis{Kategori: entity.NewsNetral, Reason: ReasonEmptyText}
	}

	pol := a.scorer.PolarityScores(text)
	rating := (pol.Compound + 1) / 2 * 100
	hits := a.rumorHits(text)

	var cat entity.NewsCategory
	switch {
	case len(hits) > 0:
		cat = entity.NewsRumor
		if rating > RumorRatingCap {
			rating = RumorRatingCap
		}
	case pol.Compound >= PositiveCompound:
		cat = entity.NewsPositif
	case pol.Compound <= NegativeCompound:
		cat = entity.NewsNegatif
	default:
		cat = entity.NewsNetral
	}

	rating = round2(rating)
	return ItemAnalysis{
		Available: true,
		Kategori:  cat,
		Rating:    &rating,
		Scores:    &pol,
		RumorHits: hits,
	}
}

func (a *analyzer) Aggregate(emiten string, items []entity.NewsItem) Verdict {
	if len(items) == 0 {
		v := UnavailableVerdict(ReasonEmptyItems)
		v.Emiten = emiten
		return v
	}

	var (
		breakdown Breakdown
		sum       float64
		rated     int
	)
	scored := make([]ScoredItem, 0, len(items))
	for _, it := range items {
		an := a.AnalyzeItem(it.Title, it.Description)
		breakdown.add(an.Kategori)
		if an.Rating != nil {
			sum += *an.Rating
			rated++
		}
		scored = append(scored, ScoredItem{NewsItem: it, Analysis: an})
	}

	var rating *float64
	if rated > 0 {
		r := round2(sum / float64(rated))
		rating = &r
	}

	return Verdict{
		Available:  true,
		Emiten:     emiten,
		TotalItems: len(scored),
		Kategori:   breakdown.Overall(),
		Rating:     rating,
		Breakdown:  &breakdown,
		Items:      scored,
	}
}

// Bias labels a mean rating as Bullish, Bearish or Neutral.
func Bias(score float64) string {
	switch {
	case score >= BullishScore:
		return "Bullish"
	case score <= BearishScore:
		return "Bearish"
	default:
		return "Neutral"
	}
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
