package api

import (
	"context"
	"time"

	"github.com/aaravbangsmetal/blaster/internal/domain"
	"github.com/aaravbangsmetal/blaster/internal/storage"
)

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

// Error codes returned by the API.
const (
	codeInvalidRequest = "INVALID_REQUEST"
	codeSearchError    = "SEARCH_ERROR"
	codeCrawlError     = "CRAWL_ERROR"
	codeAnswerError    = "ANSWER_ERROR"
	codeTweetError     = "TWEET_ERROR"
	codeHistoryError   = "HISTORY_ERROR"
	codeExportError    = "EXPORT_ERROR"
)

// Searcher executes aggregated searches.
type Searcher interface {
	Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResponse, error)
}

// Crawler executes search-and-crawl requests.
type Crawler interface {
	Crawl(ctx context.Context, req *domain.CrawlRequest) (*domain.CrawlResponse, error)
}

// Answerer executes answer-synthesis requests.
type Answerer interface {
	Answer(ctx context.Context, req *domain.AnswerRequest) (*domain.Answer, error)
}

// TweetStatter executes tweet-stats requests.
type TweetStatter interface {
	Stats(ctx context.Context, req *domain.StatsRequest) (*domain.TweetStatsReport, error)
}

// HistoryReader returns recent search history. May be nil-backed when
// history is disabled.
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]storage.SearchRecord, error)
}
