package service

import (
	"context"
	"errors"
	"time"

	"github.com/aaravbangsmetal/blaster/internal/domain"
	"github.com/aaravbangsmetal/blaster/internal/logger"
	"github.com/aaravbangsmetal/blaster/internal/provider"
)

// ErrNoResults is returned when the web search yields nothing to crawl.
var ErrNoResults = errors.New("no search results to crawl")

// PageCrawler fetches a bounded set of URLs and extracts readable text.
type PageCrawler interface {
	Crawl(ctx context.Context, urls []string) ([]*domain.CrawledPage, error)
}

// CrawlService searches the web category and crawls the top result pages.
type CrawlService struct {
	web     provider.WebSearcher
	crawler PageCrawler
	log     logger.Logger
}

// NewCrawlService creates a CrawlService.
func NewCrawlService(web provider.WebSearcher, crawler PageCrawler, log logger.Logger) *CrawlService {
	return &CrawlService{web: web, crawler: crawler, log: log}
}

// Crawl executes one crawl request.
func (s *CrawlService) Crawl(ctx context.Context, req *domain.CrawlRequest) (*domain.CrawlResponse, error) {
	start := time.Now()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	results, err := s.web.SearchWeb(ctx, req.Query, req.MaxPages)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	urls := make([]string, 0, req.MaxPages)
	for _, r := range results {
		if len(urls) >= req.MaxPages {
			break
		}
		urls = append(urls, r.URL)
	}

	pages, err := s.crawler.Crawl(ctx, urls)
	if err != nil {
		return nil, err
	}

	s.log.Info("crawl completed",
		logger.String("query", req.Query),
		logger.Int("requested", len(urls)),
		logger.Int("crawled", len(pages)),
	)

	return &domain.CrawlResponse{
		Query:  req.Query,
		Pages:  pages,
		TookMs: time.Since(start).Milliseconds(),
	}, nil
}
