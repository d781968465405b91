package provider

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"github.com/aaravbangsmetal/blaster/internal/domain"
)

// Sample accounts used by the generator.
var generatedAuthors = []struct {
	Handle string
	Name   string
}{
	{"techdaily", "Tech Daily"},
	{"newswire_now", "Newswire Now"},
	{"dev_observer", "Dev Observer"},
	{"trendwatcher", "Trend Watcher"},
	{"daily_digest", "Daily Digest"},
	{"opinion_loop", "Opinion Loop"},
	{"signal_feed", "Signal Feed"},
	{"market_pulse", "Market Pulse"},
}

// Text templates. %s is replaced with the query. The mix deliberately
// includes positive and negative phrasing so sentiment tallies are non-trivial.
var generatedTemplates = []string{
	"Really impressed by the latest developments in %s. Great progress all around!",
	"Hot take: %s is overrated and the hype needs to stop. Disappointing results so far.",
	"Just published a deep dive on %s. Link in bio.",
	"Can anyone recommend good resources for learning about %s?",
	"The %s announcement today was amazing. Love to see it.",
	"Terrible news for anyone following %s this week. What a mess.",
	"Thread: 10 things nobody tells you about %s.",
	"%s keeps getting better every month. Excellent work by the community.",
	"Honestly tired of hearing about %s at this point.",
	"Breaking: major update in the %s space. Details still coming in.",
	"My favorite thing about %s is how fast it is evolving. Wonderful ecosystem.",
	"Avoid %s for now. Too many broken pieces and bad documentation.",
}

// TweetGenerator produces deterministic mock tweets for a query. The same
// query always yields the same batch, which keeps the fallback testable.
type TweetGenerator struct {
	// now is swappable in tests.
	now func() time.Time
}

// NewTweetGenerator creates the mock tweet generator.
func NewTweetGenerator() *TweetGenerator {
	return &TweetGenerator{now: time.Now}
}

// Generate returns count mock tweets for the query.
func (g *TweetGenerator) Generate(query string, count int) ([]domain.Tweet, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}
	if count <= 0 {
		count = domain.DefaultTweetCount
	}
	if count > domain.MaxTweetCount {
		count = domain.MaxTweetCount
	}

	rng := rand.New(rand.NewSource(seedFor(query)))
	base := g.now().Truncate(time.Minute)

	tweets := make([]domain.Tweet, 0, count)
	for i := 0; i < count; i++ {
		author := generatedAuthors[rng.Intn(len(generatedAuthors))]
		template := generatedTemplates[rng.Intn(len(generatedTemplates))]

		tweets = append(tweets, domain.Tweet{
			ID:           fmt.Sprintf("gen-%d-%d", seedFor(query), i),
			AuthorID:     "gen-" + author.Handle,
			AuthorHandle: author.Handle,
			AuthorName:   author.Name,
			Text:         fmt.Sprintf(template, query),
			CreatedAt:    base.Add(-time.Duration(i) * 7 * time.Minute),
			Likes:        rng.Intn(500),
			Retweets:     rng.Intn(120),
			Replies:      rng.Intn(60),
		})
	}
	return tweets, nil
}

// seedFor derives a stable RNG seed from the query text.
func seedFor(query string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(query))))
	return int64(h.Sum64())
}
