package whale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idx-market-intel/internal/entity"
)

func bars(volumes ...float64) []entity.PriceBar {
	out := make([]entity.PriceBar, len(volumes))
	for i, v := range volumes {
		out[i] = entity.PriceBar{Close: 1000, High: 1010, Low: 990, Open: 1000, Volume: v}
	}
	return out
}

func TestDetect_Spike(t *testing.T) {
	sig, ok := Detect("BBCA.JK", bars(100, 100, 100, 100, 500), 5).Get()
	require.True(t, ok)
	require.NotNil(t, sig.VolRatio)
	assert.InDelta(t, 5.0, *sig.VolRatio, 1e-9)
	assert.True(t, sig.Detected)
	assert.Equal(t, 500000.0, *sig.TodayTurnover)
	assert.Equal(t, "Aktivitas volume 5.00x lebih tinggi dari rata-rata 4 hari terakhir.", sig.AnalysisNote)
}

func TestDetect_UsesTrailingWindow(t *testing.T) {
	sig, ok := Detect("BBCA.JK", bars(10000, 100, 100, 100, 100, 150), 5).Get()
	require.True(t, ok)
	assert.InDelta(t, 1.5, *sig.VolRatio, 1e-9)
	assert.False(t, sig.Detected, "threshold is exclusive")
}

func TestDetect_MinimumWindow(t *testing.T) {
	assert.Equal(t, MinDays, Window(2))
	assert.Equal(t, 20, Window(20))
}

func TestDetect_Unavailable(t *testing.T) {
	res := Detect("BBCA.JK", nil, 5)
	assert.False(t, res.IsAvailable())
	assert.Equal(t, entity.ReasonNoVolumeData, res.Reason())

	res = Detect("BBCA.JK", bars(100), 5)
	assert.False(t, res.IsAvailable())
	assert.Equal(t, entity.ReasonInsufficientData, res.Reason())
}

func TestDetect_ZeroPriorVolume(t *testing.T) {
	sig, ok := Detect("BBCA.JK", bars(0, 0, 0, 0, 300), 5).Get()
	require.True(t, ok)
	assert.Nil(t, sig.VolRatio)
	assert.False(t, sig.Detected)
	assert.Equal(t, "Volume ratio tidak tersedia.", sig.AnalysisNote)
}

func TestFromPayload(t *testing.T) {
	sig := FromPayload("BBCA.JK", map[string]any{
		"vol_ratio":      "2.75",
		"today_price":    9150,
		"today_turnover": "not-a-number",
		"analysis_note":  "n8n",
	})
	require.NotNil(t, sig.VolRatio)
	assert.Equal(t, 2.75, *sig.VolRatio)
	assert.True(t, sig.Detected)
	assert.Equal(t, 9150.0, *sig.TodayPrice)
	assert.Nil(t, sig.TodayTurnover)
	assert.Equal(t, "BBCA.JK", sig.Symbol)

	sig = FromPayload("BBCA.JK", map[string]any{"vol_ratio": 3.0, "is_whale_detected": "false"})
	assert.False(t, sig.Detected, "explicit flag wins")
}
