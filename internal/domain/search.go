// Package domain defines the request and result types shared by the API,
// services, and providers.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Search categories.
const (
	CategoryWeb    = "web"
	CategoryImages = "images"
	CategoryVideos = "videos"
	CategoryNews   = "news"
)

// Request bounds. Every result list in one response stays within these.
const (
	MaxResults     = 20
	MaxQueries     = 5
	MaxQueryLength = 500
	DefaultResults = 10
)

var (
	// ErrEmptyQuery is returned when a request carries no usable query.
	ErrEmptyQuery = errors.New("query is required")
	// ErrTooManyQueries is returned when a request exceeds the query cap.
	ErrTooManyQueries = fmt.Errorf("at most %d queries allowed", MaxQueries)
	// ErrQueryTooLong is returned when a query exceeds the length cap.
	ErrQueryTooLong = fmt.Errorf("query exceeds %d characters", MaxQueryLength)
	// ErrUnknownCategory is returned for an unsupported search category.
	ErrUnknownCategory = errors.New("unknown search category")
)

// AllCategories returns the supported search categories in display order.
func AllCategories() []string {
	return []string{CategoryWeb, CategoryImages, CategoryVideos, CategoryNews}
}

// SearchRequest represents an aggregated search request. Either Query or
// Queries must be set; Normalize folds Query into Queries.
type SearchRequest struct {
	Query      string   `json:"query,omitempty"`
	Queries    []string `json:"queries,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Limit      int      `json:"limit,omitempty"`
}

// Normalize trims and deduplicates queries, folds the single Query field into
// Queries, and applies category and limit defaults.
func (r *SearchRequest) Normalize() {
	candidates := append([]string{r.Query}, r.Queries...)
	seen := make(map[string]struct{}, len(candidates))
	ordered := make([]string, 0, len(candidates))
	for _, q := range candidates {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		ordered = append(ordered, q)
	}
	r.Queries = ordered
	r.Query = ""

	if len(r.Categories) == 0 {
		r.Categories = AllCategories()
	}
	for i, c := range r.Categories {
		r.Categories[i] = strings.ToLower(strings.TrimSpace(c))
	}

	if r.Limit <= 0 {
		r.Limit = DefaultResults
	}
	if r.Limit > MaxResults {
		r.Limit = MaxResults
	}
}

// Validate checks a normalized request against the request bounds.
func (r *SearchRequest) Validate() error {
	if len(r.Queries) == 0 {
		return ErrEmptyQuery
	}
	if len(r.Queries) > MaxQueries {
		return ErrTooManyQueries
	}
	for _, q := range r.Queries {
		if len(q) > MaxQueryLength {
			return ErrQueryTooLong
		}
	}
	known := map[string]struct{}{
		CategoryWeb:    {},
		CategoryImages: {},
		CategoryVideos: {},
		CategoryNews:   {},
	}
	for _, c := range r.Categories {
		if _, ok := known[c]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
		}
	}
	return nil
}

// SearchResult is a single web search hit.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
	Source  string `json:"source"`
}

// ImageResult is a single image search hit.
type ImageResult struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	PageURL      string `json:"page_url,omitempty"`
	Photographer string `json:"photographer,omitempty"`
	Source       string `json:"source"`
}

// VideoResult is a single video search hit.
type VideoResult struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	VideoID  string `json:"video_id"`
	Channel  string `json:"channel,omitempty"`
	Duration string `json:"duration,omitempty"`
	Source   string `json:"source"`
}

// NewsItem is a single news search hit.
type NewsItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Publisher   string `json:"publisher,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	Source      string `json:"source"`
}

// CategoryResults groups results by category. Categories that were not
// requested or yielded nothing stay empty.
type CategoryResults struct {
	Web    []SearchResult `json:"web,omitempty"`
	Images []ImageResult  `json:"images,omitempty"`
	Videos []VideoResult  `json:"videos,omitempty"`
	News   []NewsItem     `json:"news,omitempty"`
}

// Total returns the number of results across all categories.
func (c *CategoryResults) Total() int {
	return len(c.Web) + len(c.Images) + len(c.Videos) + len(c.News)
}

// SearchResponse is the aggregated response for one search request.
type SearchResponse struct {
	Queries      []string        `json:"queries"`
	Categories   []string        `json:"categories"`
	Results      CategoryResults `json:"results"`
	TotalResults int             `json:"total_results"`
	TookMs       int64           `json:"took_ms"`
}
