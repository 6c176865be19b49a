package telegram

import (
	"fmt"
	"strings"
	"time"

	"idx-market-intel/internal/entity"
	"idx-market-intel/internal/signal/fusion"
	"idx-market-intel/pkg/utils"
)

const maxMessageLen = 4090

// FormatWatchlistDigest formats combined results into Markdown messages for Telegram,
// splitting into parts so no message exceeds the Telegram limit.
func FormatWatchlistDigest(results []fusion.CombinedResult, at time.Time) []string {
	if len(results) == 0 {
		return []string{"Tidak ada hasil analisa watchlist untuk hari ini."}
	}

	var (
		messages []string
		current  strings.Builder
		part     = 1
	)
	startNewPart := func() {
		current.Reset()
		if part == 1 {
			current.WriteString(fmt.Sprintf("📊 *Watchlist Harian* 📊\n_%s_\n\n", utils.PrettyDate(at)))
			return
		}
		current.WriteString(fmt.Sprintf("---*Lanjutan Watchlist Harian Part %d*---\n\n", part))
	}
	startNewPart()

	for _, r := range results {
		entry := formatDigestEntry(r)
		if current.Len()+len(entry) > maxMessageLen {
			messages = append(messages, current.String())
			part++
			startNewPart()
		}
		current.WriteString(entry)
	}
	return append(messages, current.String())
}

func formatDigestEntry(r fusion.CombinedResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s *%s* %s\n", actionIcon(r.Scores.Action), r.Ticker, r.Scores.Action))
	if r.Scores.CombinedScore != nil {
		sb.WriteString(fmt.Sprintf("🎯 Skor: %.1f\n", *r.Scores.CombinedScore))
	} else {
		sb.WriteString("🎯 Skor: -\n")
	}
	if t, ok := r.Technical.Get(); ok {
		sb.WriteString(fmt.Sprintf("🔧 Teknikal: %s (%d/%d)\n", t.Decision.Signal, t.Decision.BullishScore, t.Decision.BearishScore))
	}
	if b, ok := r.Broker.Get(); ok {
		sb.WriteString(fmt.Sprintf("🏦 Broker: %s\n", b.Consensus))
	}
	if w, ok := r.Whale.Get(); ok && w.Detected {
		sb.WriteString("🐋 Whale terdeteksi\n")
	}
	if r.News.Available {
		sb.WriteString(fmt.Sprintf("📰 Berita: %s\n", r.News.Kategori))
	}
	sb.WriteString("\n")
	return sb.String()
}

func actionIcon(a entity.Action) string {
	switch a {
	case entity.ActionCicil:
		return "🟢"
	case entity.ActionBuang:
		return "🔴"
	default:
		return "🟡"
	}
}

// FormatErrorAlertMessage formats a failure notice.
func FormatErrorAlertMessage(t time.Time, errType string, errMsg string, data string) string {
	return fmt.Sprintf(`📛 [ERROR ALERT]
%s
🔧 %s
⚠️ %s

📄 Data: %s
`, utils.PrettyDate(t), errType, errMsg, data)
}
