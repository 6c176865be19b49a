package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idx-market-intel/internal/analyzer/config"
	"idx-market-intel/pkg/logger"
)

const rssBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>BBCA saham</title>
<item><title>Laba BBCA naik 12% - Kontan</title><link>https://news.example/1</link>
<pubDate>Mon, 01 Jan 2024 08:00:00 GMT</pubDate>
<description>&lt;a href="https://news.example/1"&gt;Laba BBCA naik&lt;/a&gt;&amp;nbsp;&lt;font&gt;Kontan&lt;/font&gt;</description></item>
<item><title>BBCA rumor akuisisi bank digital - CNBC Indonesia</title><link>https://news.example/2</link>
<pubDate>Tue, 02 Jan 2024 08:00:00 GMT</pubDate><description>Isu beredar</description></item>
<item><title>BBCA dividen interim - Bisnis</title><link>https://news.example/3</link>
<pubDate>Sun, 31 Dec 2023 08:00:00 GMT</pubDate></item>
</channel></rss>`

func TestGoogleNews_Search(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "id", r.URL.Query().Get("hl"))
		assert.Equal(t, "ID:id", r.URL.Query().Get("ceid"))
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssBody)
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.GoogleNews.BaseURL = srv.URL
	cfg.GoogleNews.MaxRequestPerMinute = 6000
	repo := NewGoogleNewsRepository(cfg, logger.NewNop())

	items, err := repo.Search(context.Background(), "BBCA saham", 7, 2)
	require.NoError(t, err)
	assert.Equal(t, "BBCA saham when:7d", gotQuery)
	require.Len(t, items, 2)
	assert.Equal(t, "BBCA rumor akuisisi bank digital - CNBC Indonesia", items[0].Title, "newest first")
	assert.Equal(t, "CNBC Indonesia", items[0].Source)
	assert.Equal(t, "Laba BBCA naik Kontan", items[1].Description)
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "plain text", StripHTML("  plain text "))
	assert.Equal(t, "Judul Sumber", StripHTML(`<a href="x">Judul</a>&nbsp;<font>Sumber</font>`))
}
