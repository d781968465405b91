// Package crawler fetches search result pages and extracts their readable
// text for the crawl and answer endpoints.
package crawler

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/aaravbangsmetal/blaster/internal/domain"
)

// strippedSelectors lists elements removed before extracting body text.
const strippedSelectors = "script, style, noscript, nav, header, footer, aside, form, iframe"

// PageExtractor turns raw HTML into a CrawledPage.
type PageExtractor struct {
	maxTextChars int
}

// NewPageExtractor creates an extractor that truncates page text to
// maxTextChars characters. A non-positive value disables truncation.
func NewPageExtractor(maxTextChars int) *PageExtractor {
	return &PageExtractor{maxTextChars: maxTextChars}
}

// Extract parses HTML and extracts the readable page content.
func (e *PageExtractor) Extract(pageURL string, body []byte) (*domain.CrawledPage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	text := e.truncate(extractText(doc))

	page := &domain.CrawledPage{
		URL:         pageURL,
		Title:       extractTitle(doc),
		Description: extractDescription(doc),
		Author:      metaContent(doc, "meta[name='author']"),
		Text:        text,
		ContentHash: hashText(text),
		FetchedAt:   time.Now().UTC(),
	}
	return page, nil
}

// truncate cuts text to the configured cap at a word boundary.
func (e *PageExtractor) truncate(text string) string {
	if e.maxTextChars <= 0 || len(text) <= e.maxTextChars {
		return text
	}
	cut := text[:e.maxTextChars]
	if idx := strings.LastIndexByte(cut, ' '); idx > e.maxTextChars/2 {
		cut = cut[:idx]
	}
	return cut
}

// extractTitle prefers <title>, then og:title.
func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return metaContent(doc, "meta[property='og:title']")
}

// extractDescription prefers the description meta tag, then og:description.
func extractDescription(doc *goquery.Document) string {
	if desc := metaContent(doc, "meta[name='description']"); desc != "" {
		return desc
	}
	return metaContent(doc, "meta[property='og:description']")
}

// metaContent returns the trimmed content attribute of the first match.
func metaContent(doc *goquery.Document, selector string) string {
	if content, ok := doc.Find(selector).First().Attr("content"); ok {
		return strings.TrimSpace(content)
	}
	return ""
}

// extractText extracts readable text, preferring <article>, then <main>,
// then the stripped <body>. All whitespace runs collapse to single spaces.
func extractText(doc *goquery.Document) string {
	for _, selector := range []string{"article", "main", "body"} {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		sel.Find(strippedSelectors).Remove()
		if text := collapseWhitespace(sel.Text()); text != "" {
			return text
		}
	}
	return ""
}

// collapseWhitespace joins all whitespace-separated tokens with single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// hashText returns the hex-encoded SHA-256 digest of the given text.
func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
