package fusion

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idx-market-intel/internal/entity"
	"idx-market-intel/internal/signal/broker"
	"idx-market-intel/internal/signal/fundamental"
	"idx-market-intel/internal/signal/news"
	"idx-market-intel/internal/signal/technical"
	"idx-market-intel/internal/signal/whale"
	"idx-market-intel/pkg/utils"
)

func fundamentalResult(ratios entity.FundamentalRatios) entity.Result[fundamental.Analysis] {
	return fundamental.Analyze(fundamental.Profile{Symbol: "BBCA.JK", Price: utils.ToPointer(9000.0), Ratios: ratios})
}

func technicalResult(signal entity.TechnicalSignal) entity.Result[technical.Analysis] {
	return entity.Available(technical.Analysis{Symbol: "BBCA.JK", Decision: technical.Decision{Signal: signal}})
}

func disabledInputs() Inputs {
	return Inputs{
		Symbol:      "BBCA.JK",
		Fundamental: entity.Disabled[fundamental.Analysis](),
		Technical:   entity.Disabled[technical.Analysis](),
		Whale:       entity.Disabled[whale.Signal](),
		News:        news.UnavailableVerdict(entity.ReasonDisabled),
		Broker:      entity.Disabled[broker.Consensus](),
	}
}

var strongRatios = entity.FundamentalRatios{
	PER:         utils.ToPointer(8.0),
	PBV:         utils.ToPointer(1.0),
	DER:         utils.ToPointer(0.5),
	ROEPct:      utils.ToPointer(20.0),
	DivYieldPct: utils.ToPointer(5.0),
}

func TestFuse_FundamentalOnly(t *testing.T) {
	in := disabledInputs()
	in.Fundamental = fundamentalResult(strongRatios)

	res := Fuse(in)
	require.NotNil(t, res.Scores.CombinedScore)
	assert.InDelta(t, 92.0, *res.Scores.CombinedScore, 1e-9)
	assert.Equal(t, entity.ActionCicil, res.Scores.Action)
	assert.Equal(t, "BBCA.JK | Skor: 92.0 | News: Netral", res.Summary)
}

func TestFuse_NothingActive(t *testing.T) {
	res := Fuse(disabledInputs())
	assert.Nil(t, res.Scores.CombinedScore)
	assert.Equal(t, entity.ActionPantau, res.Scores.Action)
	assert.Equal(t, entity.NewsNetral, res.News.Kategori)
	assert.Equal(t, "BBCA.JK | News: Netral", res.Summary)

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"combined_score":null`)
	assert.Contains(t, string(b), `"fundamental":{"available":false,"reason":"disabled_by_flag"}`)
}

func TestFuse_ZeroInputsCarryReasons(t *testing.T) {
	res := Fuse(Inputs{Symbol: "BBCA.JK"})
	assert.Nil(t, res.Scores.CombinedScore)
	assert.Equal(t, entity.ActionPantau, res.Scores.Action)
	assert.Equal(t, entity.ReasonDisabled, res.Fundamental.Reason())
	assert.Equal(t, entity.ReasonDisabled, res.Technical.Reason())
	assert.Equal(t, entity.ReasonDisabled, res.Whale.Reason())
	assert.Equal(t, entity.ReasonDisabled, res.Broker.Reason())

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"reason":""`)
}

func TestFuse_NoBiasWithoutWeight(t *testing.T) {
	in := disabledInputs()
	in.Whale = entity.Available(whale.Signal{Detected: true})
	in.News = news.Verdict{Available: true, Kategori: entity.NewsRumor}

	res := Fuse(in)
	assert.Nil(t, res.Scores.CombinedScore)
	assert.Equal(t, 0.0, res.Scores.Bias)
	assert.Equal(t, entity.ActionPantau, res.Scores.Action)
}

func TestFuse_WithoutBrokerWeights(t *testing.T) {
	in := disabledInputs()
	in.Fundamental = fundamentalResult(entity.FundamentalRatios{})
	in.Technical = technicalResult(entity.SignalBuy)

	res := Fuse(in)
	expected := (0.55*50 + 0.35*70) / 0.9
	require.NotNil(t, res.Scores.CombinedScore)
	assert.InDelta(t, expected, *res.Scores.CombinedScore, 1e-9)
	assert.Equal(t, WeightsWithoutBroker, res.Scores.Weights)
	assert.Equal(t, "BBCA.JK | Skor: 57.8 | Teknikal: BUY | News: Netral", res.Summary)
}

func TestFuse_WithBrokerAndBias(t *testing.T) {
	in := disabledInputs()
	in.Fundamental = fundamentalResult(strongRatios)
	in.Technical = technicalResult(entity.SignalHold)
	in.Broker = broker.Analyze(entity.AnalystRatings{
		StrongBuy:    6,
		Buy:          4,
		TargetPrice:  utils.ToPointer(11000.0),
		CurrentPrice: utils.ToPointer(9000.0),
	})
	in.Whale = entity.Available(whale.Signal{Detected: true, VolRatio: utils.ToPointer(2.4)})

	res := Fuse(in)
	base := 0.45*92 + 0.30*50 + 0.25*75
	require.NotNil(t, res.Scores.CombinedScore)
	assert.InDelta(t, base+WhaleBias+StrongUpBias, *res.Scores.CombinedScore, 1e-9)
	assert.Equal(t, WeightsWithBroker, res.Scores.Weights)
	assert.Equal(t, entity.ActionCicil, res.Scores.Action)
	expected := fmt.Sprintf("BBCA.JK | Skor: %.1f | Teknikal: HOLD | Broker: Strong Buy | Whale: terdeteksi | News: Netral", *res.Scores.CombinedScore)
	assert.Equal(t, expected, res.Summary)
	require.NotNil(t, res.Scores.Details.Whale)
	assert.True(t, res.Scores.Details.Whale.Detected)
}

func TestFuse_Clamped(t *testing.T) {
	in := disabledInputs()
	in.Fundamental = entity.Available(fundamental.Analysis{Score: fundamental.Score{Score: 100}})
	in.Whale = entity.Available(whale.Signal{Detected: true})

	res := Fuse(in)
	require.NotNil(t, res.Scores.CombinedScore)
	assert.Equal(t, 100.0, *res.Scores.CombinedScore)

	in = disabledInputs()
	in.Fundamental = entity.Available(fundamental.Analysis{Score: fundamental.Score{Score: 0}})
	in.News = news.Verdict{Available: true, Kategori: entity.NewsRumor}

	res = Fuse(in)
	require.NotNil(t, res.Scores.CombinedScore)
	assert.Equal(t, 0.0, *res.Scores.CombinedScore)
	assert.Equal(t, entity.ActionBuang, res.Scores.Action, "zero is a score, not a missing one")
}

func TestFuse_Idempotent(t *testing.T) {
	in := disabledInputs()
	in.Fundamental = fundamentalResult(strongRatios)
	in.Technical = technicalResult(entity.SignalSell)
	analyzer := news.NewAnalyzer(news.NewVaderScorer(nil), nil)
	in.News = analyzer.Aggregate("BBCA.JK", []entity.NewsItem{{Title: "Laba BBCA naik"}, {Title: "Isu merger beredar"}})

	a, err := json.Marshal(Fuse(in))
	require.NoError(t, err)
	b, err := json.Marshal(Fuse(in))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBiasFor(t *testing.T) {
	tests := []struct {
		name   string
		upside float64
		bias   float64
	}{
		{"strong upside", 20, 4},
		{"upside", 10, 2},
		{"flat", 5, 0},
		{"downside", -10, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := disabledInputs()
			in.Broker = entity.Available(broker.Consensus{UpsidePct: utils.ToPointer(tt.upside)})
			assert.Equal(t, tt.bias, BiasFor(in))
		})
	}
}

func TestActionFor(t *testing.T) {
	assert.Equal(t, entity.ActionPantau, ActionFor(nil))
	assert.Equal(t, entity.ActionCicil, ActionFor(utils.ToPointer(68.0)))
	assert.Equal(t, entity.ActionPantau, ActionFor(utils.ToPointer(50.0)))
	assert.Equal(t, entity.ActionBuang, ActionFor(utils.ToPointer(32.0)))
	assert.Equal(t, entity.ActionBuang, ActionFor(utils.ToPointer(0.0)))
}
