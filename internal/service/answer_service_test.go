package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaravbangsmetal/blaster/internal/domain"
	"github.com/aaravbangsmetal/blaster/internal/llm"
	"github.com/aaravbangsmetal/blaster/internal/logger"
)

// fakeSynthesizer returns a canned answer or error.
type fakeSynthesizer struct {
	answer string
	err    error
	pages  []*domain.CrawledPage
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, _ string, pages []*domain.CrawledPage) (string, error) {
	f.pages = pages
	return f.answer, f.err
}

func (f *fakeSynthesizer) Model() string { return "test-model" }

func testAnswerService(web *fakeWebSearcher, synth Synthesizer) *AnswerService {
	crawl := NewCrawlService(web, &fakePageCrawler{}, logger.Nop())
	return NewAnswerService(crawl, synth, logger.Nop())
}

func TestAnswer(t *testing.T) {
	t.Parallel()

	web := &fakeWebSearcher{results: map[string][]domain.SearchResult{
		"how do goroutines work?": {
			{URL: "https://example.com/1"},
			{URL: "https://example.com/2"},
		},
	}}
	synth := &fakeSynthesizer{answer: "They are cheap threads [1]."}
	svc := testAnswerService(web, synth)

	answer, err := svc.Answer(context.Background(), &domain.AnswerRequest{Query: "how do goroutines work?"})
	require.NoError(t, err)

	assert.Equal(t, "They are cheap threads [1].", answer.Text)
	assert.Equal(t, "test-model", answer.Model)
	require.Len(t, answer.Sources, 2)
	assert.Equal(t, 1, answer.Sources[0].Index)
	assert.Equal(t, "https://example.com/1", answer.Sources[0].URL)
	assert.Equal(t, 2, answer.Sources[1].Index)

	// The synthesizer sees the crawled pages in source order.
	require.Len(t, synth.pages, 2)
	assert.Equal(t, "https://example.com/1", synth.pages[0].URL)
}

func TestAnswerNoSearchResults(t *testing.T) {
	t.Parallel()

	svc := testAnswerService(&fakeWebSearcher{}, &fakeSynthesizer{})

	_, err := svc.Answer(context.Background(), &domain.AnswerRequest{Query: "anything"})
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestAnswerSynthesisFailure(t *testing.T) {
	t.Parallel()

	web := &fakeWebSearcher{results: map[string][]domain.SearchResult{
		"q": {{URL: "https://example.com/1"}},
	}}
	svc := testAnswerService(web, &fakeSynthesizer{err: llm.ErrNotConfigured})

	_, err := svc.Answer(context.Background(), &domain.AnswerRequest{Query: "q"})
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
}

func TestAnswerEmptyQuery(t *testing.T) {
	t.Parallel()

	svc := testAnswerService(&fakeWebSearcher{}, &fakeSynthesizer{})

	_, err := svc.Answer(context.Background(), &domain.AnswerRequest{Query: ""})
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
}
