package domain

import (
	"fmt"
	"strings"
	"time"
)

// MaxCrawlPages caps how many result pages one crawl request may visit.
const MaxCrawlPages = 3

// CrawlRequest asks the service to search the web category for a query and
// crawl the top result pages for readable text.
type CrawlRequest struct {
	Query    string `json:"query"`
	MaxPages int    `json:"max_pages,omitempty"`
}

// Normalize trims the query and applies the page cap.
func (r *CrawlRequest) Normalize() {
	r.Query = strings.TrimSpace(r.Query)
	if r.MaxPages <= 0 || r.MaxPages > MaxCrawlPages {
		r.MaxPages = MaxCrawlPages
	}
}

// Validate checks a normalized crawl request.
func (r *CrawlRequest) Validate() error {
	if r.Query == "" {
		return ErrEmptyQuery
	}
	if len(r.Query) > MaxQueryLength {
		return ErrQueryTooLong
	}
	return nil
}

// CrawledPage is the readable content extracted from one fetched page.
type CrawledPage struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Author      string    `json:"author,omitempty"`
	Text        string    `json:"text"`
	ContentHash string    `json:"content_hash"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Excerpt returns the first n characters of the page text, cut at a word
// boundary where possible.
func (p *CrawledPage) Excerpt(n int) string {
	if len(p.Text) <= n {
		return p.Text
	}
	cut := p.Text[:n]
	if idx := strings.LastIndexByte(cut, ' '); idx > n/2 {
		cut = cut[:idx]
	}
	return cut
}

// CrawlResponse is the result of one crawl request.
type CrawlResponse struct {
	Query  string         `json:"query"`
	Pages  []*CrawledPage `json:"pages"`
	TookMs int64          `json:"took_ms"`
}

// AnswerRequest asks for an LLM-synthesized, cited answer.
type AnswerRequest struct {
	Query string `json:"query"`
}

// Validate checks the answer request.
func (r *AnswerRequest) Validate() error {
	r.Query = strings.TrimSpace(r.Query)
	if r.Query == "" {
		return ErrEmptyQuery
	}
	if len(r.Query) > MaxQueryLength {
		return ErrQueryTooLong
	}
	return nil
}

// AnswerSource identifies one cited source. Index matches the [n] markers in
// the answer text, starting at 1.
type AnswerSource struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Answer is an LLM-synthesized answer with its source list.
type Answer struct {
	Query   string         `json:"query"`
	Text    string         `json:"text"`
	Model   string         `json:"model"`
	Sources []AnswerSource `json:"sources"`
	TookMs  int64          `json:"took_ms"`
}

// String renders the answer with its numbered source list, for CLI output.
func (a *Answer) String() string {
	var b strings.Builder
	b.WriteString(a.Text)
	b.WriteString("\n\nSources:\n")
	for _, s := range a.Sources {
		fmt.Fprintf(&b, "  [%d] %s <%s>\n", s.Index, s.Title, s.URL)
	}
	return b.String()
}
