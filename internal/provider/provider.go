// Package provider implements the search backend adapters: DuckDuckGo web
// search, Unsplash/Pexels images, YouTube videos, Google News RSS, and the
// Twitter API with a generated fallback. Each adapter maps an external HTTP
// shape onto the domain types; failures log a warning and yield the next
// provider in the chain or an empty list.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aaravbangsmetal/blaster/internal/domain"
)

// maxResponseBodyBytes limits the size of provider responses.
const maxResponseBodyBytes = 5 * 1024 * 1024

// WebSearcher returns web search results for a query.
type WebSearcher interface {
	SearchWeb(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
}

// ImageSearcher returns image search results for a query.
type ImageSearcher interface {
	SearchImages(ctx context.Context, query string, limit int) ([]domain.ImageResult, error)
}

// VideoSearcher returns video search results for a query.
type VideoSearcher interface {
	SearchVideos(ctx context.Context, query string, limit int) ([]domain.VideoResult, error)
}

// NewsSearcher returns news items for a query.
type NewsSearcher interface {
	SearchNews(ctx context.Context, query string, limit int) ([]domain.NewsItem, error)
}

// TweetSearcher returns tweets matching a query. The bool reports whether the
// tweets were generated rather than fetched from the API.
type TweetSearcher interface {
	SearchTweets(ctx context.Context, query string, count int) ([]domain.Tweet, bool, error)
}

// newHTTPClient builds the shared provider HTTP client.
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// fetchBody performs a GET request and returns the size-limited body.
func fetchBody(ctx context.Context, client *http.Client, url, userAgent string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected http status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}

// fetchJSON performs a GET request with extra headers and decodes the JSON
// response into out.
func fetchJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("http fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected http status %d", resp.StatusCode)
	}

	limited := io.LimitReader(resp.Body, maxResponseBodyBytes)
	if err := json.NewDecoder(limited).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
