package provider

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/aaravbangsmetal/blaster/internal/config"
	"github.com/aaravbangsmetal/blaster/internal/domain"
	"github.com/aaravbangsmetal/blaster/internal/logger"
)

// Source labels reported on web results.
const (
	sourceDuckDuckGo    = "duckduckgo"
	sourceInstantAnswer = "duckduckgo-instant"
)

// DuckDuckGo searches the DuckDuckGo HTML endpoint, falling back to the
// Instant Answer JSON API when the scrape fails or comes back empty.
type DuckDuckGo struct {
	htmlURL   string
	apiURL    string
	userAgent string
	client    *http.Client
	log       logger.Logger
}

// NewDuckDuckGo creates the DuckDuckGo web search adapter.
func NewDuckDuckGo(cfg config.ProvidersConfig, log logger.Logger) *DuckDuckGo {
	return &DuckDuckGo{
		htmlURL:   cfg.DuckDuckGoURL,
		apiURL:    cfg.InstantAPIURL,
		userAgent: cfg.UserAgent,
		client:    newHTTPClient(cfg.RequestTimeout),
		log:       log,
	}
}

// SearchWeb implements WebSearcher.
func (d *DuckDuckGo) SearchWeb(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	results, err := d.searchHTML(ctx, query, limit)
	if err != nil {
		d.log.Warn("duckduckgo html search failed, trying instant answer api",
			logger.String("query", query),
			logger.Err(err),
		)
		return d.searchInstant(ctx, query, limit)
	}
	if len(results) == 0 {
		return d.searchInstant(ctx, query, limit)
	}
	return results, nil
}

// searchHTML scrapes the DuckDuckGo HTML results page.
func (d *DuckDuckGo) searchHTML(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	searchURL := fmt.Sprintf("%s?q=%s", d.htmlURL, url.QueryEscape(query))

	body, err := fetchBody(ctx, d.client, searchURL, d.userAgent)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	seen := make(map[string]struct{}, limit)
	results := make([]domain.SearchResult, 0, limit)

	doc.Find("div.result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if sel.HasClass("result--ad") {
			return true
		}

		anchor := sel.Find("a.result__a").First()
		href, ok := anchor.Attr("href")
		if !ok {
			return true
		}

		resultURL := resolveRedirect(href)
		if resultURL == "" {
			return true
		}
		if _, dup := seen[resultURL]; dup {
			return true
		}
		seen[resultURL] = struct{}{}

		results = append(results, domain.SearchResult{
			Title:   strings.TrimSpace(anchor.Text()),
			URL:     resultURL,
			Snippet: strings.TrimSpace(sel.Find(".result__snippet").First().Text()),
			Source:  sourceDuckDuckGo,
		})

		return len(results) < limit
	})

	return results, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect links and drops
// anything that is not an absolute http(s) URL.
func resolveRedirect(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	if target := parsed.Query().Get("uddg"); target != "" {
		href = target
		parsed, err = url.Parse(target)
		if err != nil {
			return ""
		}
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ""
	}
	return href
}

// instantResponse is the subset of the Instant Answer API shape we read.
type instantResponse struct {
	Heading       string         `json:"Heading"`
	AbstractText  string         `json:"AbstractText"`
	AbstractURL   string         `json:"AbstractURL"`
	RelatedTopics []instantTopic `json:"RelatedTopics"`
}

// instantTopic is either a leaf topic or a named group of topics.
type instantTopic struct {
	Text     string         `json:"Text"`
	FirstURL string         `json:"FirstURL"`
	Topics   []instantTopic `json:"Topics"`
}

// searchInstant queries the Instant Answer API and flattens related topics.
func (d *DuckDuckGo) searchInstant(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	apiURL := fmt.Sprintf("%s?q=%s&format=json&no_html=1&skip_disambig=1",
		d.apiURL, url.QueryEscape(query))

	var resp instantResponse
	if err := fetchJSON(ctx, d.client, apiURL, map[string]string{"User-Agent": d.userAgent}, &resp); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, limit)
	results := make([]domain.SearchResult, 0, limit)

	if resp.AbstractURL != "" && resp.AbstractText != "" {
		seen[resp.AbstractURL] = struct{}{}
		results = append(results, domain.SearchResult{
			Title:   resp.Heading,
			URL:     resp.AbstractURL,
			Snippet: resp.AbstractText,
			Source:  sourceInstantAnswer,
		})
	}

	flattenTopics(resp.RelatedTopics, &results, seen, limit)
	return results, nil
}

// flattenTopics walks nested related-topic groups depth first, appending leaf
// topics until the limit is reached.
func flattenTopics(topics []instantTopic, out *[]domain.SearchResult, seen map[string]struct{}, limit int) {
	for _, t := range topics {
		if len(*out) >= limit {
			return
		}
		if len(t.Topics) > 0 {
			flattenTopics(t.Topics, out, seen, limit)
			continue
		}
		if t.FirstURL == "" || t.Text == "" {
			continue
		}
		if _, dup := seen[t.FirstURL]; dup {
			continue
		}
		seen[t.FirstURL] = struct{}{}
		*out = append(*out, domain.SearchResult{
			Title:   topicTitle(t.Text),
			URL:     t.FirstURL,
			Snippet: t.Text,
			Source:  sourceInstantAnswer,
		})
	}
}

// topicTitle derives a short title from a related-topic text blob.
func topicTitle(text string) string {
	if idx := strings.Index(text, " - "); idx > 0 {
		return text[:idx]
	}
	return text
}
