package fusion

import (
	"fmt"
	"strings"
)

// Summary joins whichever parts are present with " | ".
func Summary(in Inputs, combined *float64) string {
	parts := []string{in.Symbol}
	if combined != nil {
		parts = append(parts, fmt.Sprintf("Skor: %.1f", *combined))
	}
	if t, ok := in.Technical.Get(); ok {
		parts = append(parts, "Teknikal: "+string(t.Decision.Signal))
	}
	if c, ok := in.Broker.Get(); ok {
		parts = append(parts, "Broker: "+c.Consensus)
	}
	if w, ok := in.Whale.Get(); ok && w.Detected {
		parts = append(parts, "Whale: terdeteksi")
	}
	if in.News.Kategori != "" {
		parts = append(parts, "News: "+string(in.News.Kategori))
	}

	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " | ")
}
