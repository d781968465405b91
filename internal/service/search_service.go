// Package service orchestrates the search, crawl, answer, and tweet-stats
// operations over the provider, crawler, and llm packages.
package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aaravbangsmetal/blaster/internal/domain"
	"github.com/aaravbangsmetal/blaster/internal/logger"
	"github.com/aaravbangsmetal/blaster/internal/provider"
)

// HistoryRecorder records completed searches. Implementations must tolerate
// being called concurrently.
type HistoryRecorder interface {
	Record(ctx context.Context, query string, categories []string, resultCount int, tookMs int64) error
}

// SearchService fans queries out to the category providers and aggregates the
// results. Provider failures degrade to an empty category, never an error.
type SearchService struct {
	web     provider.WebSearcher
	images  provider.ImageSearcher
	videos  provider.VideoSearcher
	news    provider.NewsSearcher
	history HistoryRecorder // nil when history is disabled
	log     logger.Logger
}

// NewSearchService creates a SearchService. history may be nil.
func NewSearchService(
	web provider.WebSearcher,
	images provider.ImageSearcher,
	videos provider.VideoSearcher,
	news provider.NewsSearcher,
	history HistoryRecorder,
	log logger.Logger,
) *SearchService {
	return &SearchService{
		web:     web,
		images:  images,
		videos:  videos,
		news:    news,
		history: history,
		log:     log,
	}
}

// Search executes one aggregated search request.
func (s *SearchService) Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResponse, error) {
	start := time.Now()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.log.Info("executing search",
		logger.Int("queries", len(req.Queries)),
		logger.Any("categories", req.Categories),
		logger.Int("limit", req.Limit),
	)

	agg := newAggregator(req.Limit)

	// One goroutine per query x category; both dimensions are capped, so the
	// fan-out is at most MaxQueries x 4. Failures log and leave the category
	// to the other queries.
	g, gctx := errgroup.WithContext(ctx)
	for _, query := range req.Queries {
		for _, category := range req.Categories {
			g.Go(s.searchOne(gctx, query, category, req.Limit, agg))
		}
	}
	// Goroutines only ever return nil; partial failure is not request failure.
	_ = g.Wait()

	resp := &domain.SearchResponse{
		Queries:    req.Queries,
		Categories: req.Categories,
		Results:    agg.results(),
	}
	resp.TotalResults = resp.Results.Total()
	resp.TookMs = time.Since(start).Milliseconds()

	s.recordHistory(ctx, req, resp)

	s.log.Info("search completed",
		logger.Int("total_results", resp.TotalResults),
		logger.Int64("took_ms", resp.TookMs),
	)

	return resp, nil
}

// searchOne returns a closure running a single provider call.
func (s *SearchService) searchOne(ctx context.Context, query, category string, limit int, agg *aggregator) func() error {
	return func() error {
		switch category {
		case domain.CategoryWeb:
			results, err := s.web.SearchWeb(ctx, query, limit)
			if err != nil {
				s.warn(category, query, err)
				return nil
			}
			agg.addWeb(results)
		case domain.CategoryImages:
			results, err := s.images.SearchImages(ctx, query, limit)
			if err != nil {
				s.warn(category, query, err)
				return nil
			}
			agg.addImages(results)
		case domain.CategoryVideos:
			results, err := s.videos.SearchVideos(ctx, query, limit)
			if err != nil {
				s.warn(category, query, err)
				return nil
			}
			agg.addVideos(results)
		case domain.CategoryNews:
			results, err := s.news.SearchNews(ctx, query, limit)
			if err != nil {
				s.warn(category, query, err)
				return nil
			}
			agg.addNews(results)
		}
		return nil
	}
}

func (s *SearchService) warn(category, query string, err error) {
	s.log.Warn("provider search failed",
		logger.String("category", category),
		logger.String("query", query),
		logger.Err(err),
	)
}

// recordHistory persists the search when history is enabled.
func (s *SearchService) recordHistory(ctx context.Context, req *domain.SearchRequest, resp *domain.SearchResponse) {
	if s.history == nil {
		return
	}
	for _, query := range req.Queries {
		if err := s.history.Record(ctx, query, req.Categories, resp.TotalResults, resp.TookMs); err != nil {
			s.log.Warn("record search history failed", logger.Err(err))
			return
		}
	}
}

// aggregator merges per-provider result slices, deduplicating by URL or ID
// and capping each category at the request limit.
type aggregator struct {
	mu    sync.Mutex
	limit int

	web    []domain.SearchResult
	images []domain.ImageResult
	videos []domain.VideoResult
	news   []domain.NewsItem

	seenWeb    map[string]struct{}
	seenImages map[string]struct{}
	seenVideos map[string]struct{}
	seenNews   map[string]struct{}
}

func newAggregator(limit int) *aggregator {
	return &aggregator{
		limit:      limit,
		seenWeb:    make(map[string]struct{}),
		seenImages: make(map[string]struct{}),
		seenVideos: make(map[string]struct{}),
		seenNews:   make(map[string]struct{}),
	}
}

func (a *aggregator) addWeb(results []domain.SearchResult) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, r := range results {
		if len(a.web) >= a.limit {
			return
		}
		if _, dup := a.seenWeb[r.URL]; dup {
			continue
		}
		a.seenWeb[r.URL] = struct{}{}
		a.web = append(a.web, r)
	}
}

func (a *aggregator) addImages(results []domain.ImageResult) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, r := range results {
		if len(a.images) >= a.limit {
			return
		}
		if _, dup := a.seenImages[r.URL]; dup {
			continue
		}
		a.seenImages[r.URL] = struct{}{}
		a.images = append(a.images, r)
	}
}

func (a *aggregator) addVideos(results []domain.VideoResult) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, r := range results {
		if len(a.videos) >= a.limit {
			return
		}
		if _, dup := a.seenVideos[r.VideoID]; dup {
			continue
		}
		a.seenVideos[r.VideoID] = struct{}{}
		a.videos = append(a.videos, r)
	}
}

func (a *aggregator) addNews(results []domain.NewsItem) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, r := range results {
		if len(a.news) >= a.limit {
			return
		}
		if _, dup := a.seenNews[r.URL]; dup {
			continue
		}
		a.seenNews[r.URL] = struct{}{}
		a.news = append(a.news, r)
	}
}

func (a *aggregator) results() domain.CategoryResults {
	a.mu.Lock()
	defer a.mu.Unlock()
	return domain.CategoryResults{
		Web:    a.web,
		Images: a.images,
		Videos: a.videos,
		News:   a.news,
	}
}
