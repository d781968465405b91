package service

import (
	"context"
	"errors"
	"time"

	"github.com/aaravbangsmetal/blaster/internal/domain"
	"github.com/aaravbangsmetal/blaster/internal/logger"
)

// ErrNoSources is returned when no page could be crawled for synthesis.
var ErrNoSources = errors.New("no sources available for answer synthesis")

// Synthesizer produces an answer text with [n] citation markers from the
// given pages.
type Synthesizer interface {
	Synthesize(ctx context.Context, query string, pages []*domain.CrawledPage) (string, error)
	Model() string
}

// AnswerService runs search, crawl, and LLM synthesis for one question.
type AnswerService struct {
	crawl *CrawlService
	llm   Synthesizer
	log   logger.Logger
}

// NewAnswerService creates an AnswerService.
func NewAnswerService(crawl *CrawlService, llm Synthesizer, log logger.Logger) *AnswerService {
	return &AnswerService{crawl: crawl, llm: llm, log: log}
}

// Answer executes one answer request.
func (s *AnswerService) Answer(ctx context.Context, req *domain.AnswerRequest) (*domain.Answer, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	crawlResp, err := s.crawl.Crawl(ctx, &domain.CrawlRequest{Query: req.Query})
	if err != nil {
		return nil, err
	}
	if len(crawlResp.Pages) == 0 {
		return nil, ErrNoSources
	}

	text, err := s.llm.Synthesize(ctx, req.Query, crawlResp.Pages)
	if err != nil {
		return nil, err
	}

	sources := make([]domain.AnswerSource, 0, len(crawlResp.Pages))
	for i, page := range crawlResp.Pages {
		sources = append(sources, domain.AnswerSource{
			Index: i + 1,
			Title: page.Title,
			URL:   page.URL,
		})
	}

	answer := &domain.Answer{
		Query:   req.Query,
		Text:    text,
		Model:   s.llm.Model(),
		Sources: sources,
		TookMs:  time.Since(start).Milliseconds(),
	}

	s.log.Info("answer completed",
		logger.String("query", req.Query),
		logger.Int("sources", len(sources)),
		logger.Int64("took_ms", answer.TookMs),
	)

	return answer, nil
}
