package telegram

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idx-market-intel/internal/entity"
	"idx-market-intel/internal/signal/fusion"
	"idx-market-intel/internal/signal/whale"
)

func TestFormatWatchlistDigest_Empty(t *testing.T) {
	msgs := FormatWatchlistDigest(nil, time.Now())
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "Tidak ada hasil")
}

func TestFormatWatchlistDigest(t *testing.T) {
	score := 71.3
	results := []fusion.CombinedResult{
		{
			Ticker: "BBCA.JK",
			Scores: fusion.Scores{CombinedScore: &score, Action: entity.ActionCicil},
			Whale:  entity.Available(whale.Signal{Detected: true}),
		},
		{
			Ticker: "GOTO.JK",
			Scores: fusion.Scores{Action: entity.ActionPantau},
			Whale:  entity.Unavailable[whale.Signal](entity.ReasonNoData),
		},
	}

	msgs := FormatWatchlistDigest(results, time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC))
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "Watchlist Harian")
	assert.Contains(t, msgs[0], "Senin, 06 May 2024 17:00 WIB")
	assert.Contains(t, msgs[0], "🟢 *BBCA.JK* CICIL")
	assert.Contains(t, msgs[0], "Skor: 71.3")
	assert.Contains(t, msgs[0], "Whale terdeteksi")
	assert.Contains(t, msgs[0], "🟡 *GOTO.JK* PANTAU")
	assert.Contains(t, msgs[0], "Skor: -")
}

func TestFormatWatchlistDigest_SplitsLongDigests(t *testing.T) {
	results := make([]fusion.CombinedResult, 200)
	for i := range results {
		results[i] = fusion.CombinedResult{Ticker: "TICK" + strings.Repeat("X", i%5), Scores: fusion.Scores{Action: entity.ActionBuang}}
	}

	msgs := FormatWatchlistDigest(results, time.Now())
	require.Greater(t, len(msgs), 1)
	for _, m := range msgs {
		assert.LessOrEqual(t, len(m), maxMessageLen)
	}
	assert.Contains(t, msgs[1], "Part 2")
}

type recordingNotifier struct {
	sent   []string
	failAt int
}

func (r *recordingNotifier) SendMessage(text string) error {
	if r.failAt > 0 && len(r.sent)+1 == r.failAt {
		return errors.New("rate limited")
	}
	r.sent = append(r.sent, text)
	return nil
}

func TestSendAll(t *testing.T) {
	n := &recordingNotifier{}
	require.NoError(t, SendAll(n, []string{"a", "b"}))
	assert.Equal(t, []string{"a", "b"}, n.sent)

	n = &recordingNotifier{failAt: 2}
	err := SendAll(n, []string{"a", "b", "c"})
	assert.ErrorContains(t, err, "part 2/3")
	assert.Equal(t, []string{"a"}, n.sent)
}

func TestNewClient_NotConfigured(t *testing.T) {
	_, err := NewClient("", 0)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
