package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/aaravbangsmetal/blaster/internal/config"
	"github.com/aaravbangsmetal/blaster/internal/domain"
)

const sourceGoogleNews = "google-news"

// GoogleNews searches the Google News RSS endpoint.
type GoogleNews struct {
	baseURL   string
	userAgent string
	client    *http.Client
	parser    *gofeed.Parser
}

// NewGoogleNews creates the Google News RSS adapter.
func NewGoogleNews(cfg config.ProvidersConfig) *GoogleNews {
	return &GoogleNews{
		baseURL:   cfg.NewsURL,
		userAgent: cfg.UserAgent,
		client:    newHTTPClient(cfg.RequestTimeout),
		parser:    gofeed.NewParser(),
	}
}

// SearchNews implements NewsSearcher.
func (g *GoogleNews) SearchNews(ctx context.Context, query string, limit int) ([]domain.NewsItem, error) {
	feedURL := fmt.Sprintf("%s/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en",
		g.baseURL, url.QueryEscape(query))

	body, err := fetchBody(ctx, g.client, feedURL, g.userAgent)
	if err != nil {
		return nil, err
	}

	feed, err := g.parser.ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	seen := make(map[string]struct{}, limit)
	items := make([]domain.NewsItem, 0, limit)
	for _, entry := range feed.Items {
		if len(items) >= limit {
			break
		}
		link := entryLink(entry)
		if link == "" {
			continue
		}
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}

		title, publisher := splitNewsTitle(entry.Title)

		items = append(items, domain.NewsItem{
			Title:       title,
			URL:         link,
			Publisher:   publisher,
			PublishedAt: formatPublishedAt(entry.PublishedParsed),
			Source:      sourceGoogleNews,
		})
	}
	return items, nil
}

// entryLink returns the best available URL from a feed entry, preferring the
// explicit link and falling back to a URL-shaped GUID.
func entryLink(entry *gofeed.Item) string {
	if entry.Link != "" {
		return entry.Link
	}
	if strings.HasPrefix(entry.GUID, "http") {
		return entry.GUID
	}
	return ""
}

// splitNewsTitle splits a Google News item title into headline and publisher.
// Titles arrive as "Headline - Publisher"; a title without the separator is
// returned whole with an empty publisher.
func splitNewsTitle(title string) (headline, publisher string) {
	idx := strings.LastIndex(title, " - ")
	if idx <= 0 {
		return strings.TrimSpace(title), ""
	}
	return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+3:])
}

// formatPublishedAt converts a parsed time pointer to an RFC3339 string.
func formatPublishedAt(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
