package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaravbangsmetal/blaster/internal/logger"
)

func testCrawlerConfig() Config {
	return Config{
		Parallelism:    2,
		RequestTimeout: 5 * time.Second,
		UserAgent:      "blaster-test",
	}
}

func TestCrawl(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/one":
			_, _ = w.Write([]byte(`<html><head><title>Page One</title></head><body><p>First page text.</p></body></html>`))
		case "/two":
			_, _ = w.Write([]byte(`<html><head><title>Page Two</title></head><body><p>Second page text.</p></body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(testCrawlerConfig(), logger.Nop())

	pages, err := c.Crawl(context.Background(), []string{srv.URL + "/one", srv.URL + "/two"})
	require.NoError(t, err)
	require.Len(t, pages, 2)

	titles := make(map[string]string, 2)
	for _, p := range pages {
		titles[p.Title] = p.Text
		assert.NotEmpty(t, p.ContentHash)
		assert.False(t, p.FetchedAt.IsZero())
	}
	assert.Equal(t, "First page text.", titles["Page One"])
	assert.Equal(t, "Second page text.", titles["Page Two"])
}

func TestCrawlSkipsFailedPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok" {
			_, _ = w.Write([]byte(`<html><head><title>OK</title></head><body><p>Alive.</p></body></html>`))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(testCrawlerConfig(), logger.Nop())

	pages, err := c.Crawl(context.Background(), []string{srv.URL + "/ok", srv.URL + "/gone"})
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "OK", pages[0].Title)
}

func TestCrawlNoURLs(t *testing.T) {
	c := New(testCrawlerConfig(), logger.Nop())

	pages, err := c.Crawl(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestConfigWithDefaults(t *testing.T) {
	t.Parallel()

	cfg := Config{}.WithDefaults()

	assert.Equal(t, 3, cfg.Parallelism)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2*1024*1024, cfg.MaxBodyBytes)
}
