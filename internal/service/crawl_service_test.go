package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaravbangsmetal/blaster/internal/domain"
	"github.com/aaravbangsmetal/blaster/internal/logger"
)

// fakePageCrawler records the URLs it was asked to visit and returns one page
// per URL.
type fakePageCrawler struct {
	visited []string
	err     error
}

func (f *fakePageCrawler) Crawl(_ context.Context, urls []string) ([]*domain.CrawledPage, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.visited = urls
	pages := make([]*domain.CrawledPage, 0, len(urls))
	for _, u := range urls {
		pages = append(pages, &domain.CrawledPage{URL: u, Title: "Page " + u, Text: "text"})
	}
	return pages, nil
}

func TestCrawlTakesTopResults(t *testing.T) {
	t.Parallel()

	web := &fakeWebSearcher{results: map[string][]domain.SearchResult{
		"go": {
			{URL: "https://example.com/1"},
			{URL: "https://example.com/2"},
			{URL: "https://example.com/3"},
			{URL: "https://example.com/4"},
		},
	}}
	crawler := &fakePageCrawler{}
	svc := NewCrawlService(web, crawler, logger.Nop())

	resp, err := svc.Crawl(context.Background(), &domain.CrawlRequest{Query: "go"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://example.com/1",
		"https://example.com/2",
		"https://example.com/3",
	}, crawler.visited)
	assert.Len(t, resp.Pages, domain.MaxCrawlPages)
	assert.Equal(t, "go", resp.Query)
}

func TestCrawlMaxPagesOverride(t *testing.T) {
	t.Parallel()

	web := &fakeWebSearcher{results: map[string][]domain.SearchResult{
		"go": {{URL: "https://example.com/1"}, {URL: "https://example.com/2"}},
	}}
	crawler := &fakePageCrawler{}
	svc := NewCrawlService(web, crawler, logger.Nop())

	resp, err := svc.Crawl(context.Background(), &domain.CrawlRequest{Query: "go", MaxPages: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Pages, 1)
}

func TestCrawlNoResults(t *testing.T) {
	t.Parallel()

	svc := NewCrawlService(&fakeWebSearcher{}, &fakePageCrawler{}, logger.Nop())

	_, err := svc.Crawl(context.Background(), &domain.CrawlRequest{Query: "go"})
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestCrawlSearchFailure(t *testing.T) {
	t.Parallel()

	web := &fakeWebSearcher{err: errors.New("search down")}
	svc := NewCrawlService(web, &fakePageCrawler{}, logger.Nop())

	_, err := svc.Crawl(context.Background(), &domain.CrawlRequest{Query: "go"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search down")
}

func TestCrawlEmptyQuery(t *testing.T) {
	t.Parallel()

	svc := NewCrawlService(&fakeWebSearcher{}, &fakePageCrawler{}, logger.Nop())

	_, err := svc.Crawl(context.Background(), &domain.CrawlRequest{Query: " "})
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
}
