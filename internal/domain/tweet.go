package domain

import (
	"strings"
	"time"
)

// Tweet bounds.
const (
	MaxTweetCount     = 50
	DefaultTweetCount = 20
)

// Tweet is a single tweet from the API or the generated fallback.
type Tweet struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"author_id"`
	AuthorHandle string    `json:"author_handle"`
	AuthorName   string    `json:"author_name,omitempty"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"created_at"`
	Likes        int       `json:"likes"`
	Retweets     int       `json:"retweets"`
	Replies      int       `json:"replies"`
}

// StatsRequest asks for tweets matching a query plus aggregate statistics.
type StatsRequest struct {
	Query string `json:"query"`
	Count int    `json:"count,omitempty"`
}

// Normalize trims the query and applies count bounds.
func (r *StatsRequest) Normalize() {
	r.Query = strings.TrimSpace(r.Query)
	if r.Count <= 0 {
		r.Count = DefaultTweetCount
	}
	if r.Count > MaxTweetCount {
		r.Count = MaxTweetCount
	}
}

// Validate checks a normalized stats request.
func (r *StatsRequest) Validate() error {
	if r.Query == "" {
		return ErrEmptyQuery
	}
	if len(r.Query) > MaxQueryLength {
		return ErrQueryTooLong
	}
	return nil
}

// AuthorCount is one entry in the top-authors ranking.
type AuthorCount struct {
	Handle string `json:"handle"`
	Name   string `json:"name,omitempty"`
	Count  int    `json:"count"`
}

// KeywordCount is one entry in the keyword frequency ranking.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// SentimentTally counts tweets per naive sentiment bucket.
type SentimentTally struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// TweetStats holds the aggregates computed over one tweet batch.
type TweetStats struct {
	Query      string         `json:"query"`
	TweetCount int            `json:"tweet_count"`
	TopAuthors []AuthorCount  `json:"top_authors"`
	Keywords   []KeywordCount `json:"keywords"`
	Sentiment  SentimentTally `json:"sentiment"`
	// Generated is true when the tweets came from the fallback generator
	// rather than the Twitter API.
	Generated bool `json:"generated"`
}

// TweetStatsReport bundles the aggregates with the underlying tweets.
type TweetStatsReport struct {
	Stats  *TweetStats `json:"stats"`
	Tweets []Tweet     `json:"tweets"`
	TookMs int64       `json:"took_ms"`
}
