package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/aaravbangsmetal/blaster/internal/config"
	"github.com/aaravbangsmetal/blaster/internal/domain"
	"github.com/aaravbangsmetal/blaster/internal/logger"
)

// TwitterAPI searches the Twitter API v2 recent search endpoint.
type TwitterAPI struct {
	baseURL string
	bearer  string
	client  *http.Client
}

// NewTwitterAPI creates the Twitter API v2 adapter.
func NewTwitterAPI(cfg config.ProvidersConfig) *TwitterAPI {
	return &TwitterAPI{
		baseURL: cfg.TwitterURL,
		bearer:  cfg.TwitterBearer,
		client:  newHTTPClient(cfg.RequestTimeout),
	}
}

// Configured reports whether a bearer token is present.
func (t *TwitterAPI) Configured() bool {
	return t.bearer != ""
}

// twitterResponse is the subset of the v2 recent search shape we read.
type twitterResponse struct {
	Data []struct {
		ID            string    `json:"id"`
		Text          string    `json:"text"`
		AuthorID      string    `json:"author_id"`
		CreatedAt     time.Time `json:"created_at"`
		PublicMetrics struct {
			RetweetCount int `json:"retweet_count"`
			ReplyCount   int `json:"reply_count"`
			LikeCount    int `json:"like_count"`
		} `json:"public_metrics"`
	} `json:"data"`
	Includes struct {
		Users []struct {
			ID       string `json:"id"`
			Username string `json:"username"`
			Name     string `json:"name"`
		} `json:"users"`
	} `json:"includes"`
}

// twitterMinResults is the smallest max_results the v2 endpoint accepts.
const twitterMinResults = 10

// SearchTweets implements TweetSearcher. The returned bool is always false:
// these tweets come from the live API.
func (t *TwitterAPI) SearchTweets(ctx context.Context, query string, count int) ([]domain.Tweet, bool, error) {
	if !t.Configured() {
		return nil, false, ErrNoAPIKey
	}

	maxResults := count
	if maxResults < twitterMinResults {
		maxResults = twitterMinResults
	}

	searchURL := fmt.Sprintf(
		"%s/2/tweets/search/recent?query=%s&max_results=%d"+
			"&tweet.fields=created_at,public_metrics,author_id"+
			"&expansions=author_id&user.fields=username,name",
		t.baseURL, url.QueryEscape(query), maxResults)

	var resp twitterResponse
	headers := map[string]string{"Authorization": "Bearer " + t.bearer}
	if err := fetchJSON(ctx, t.client, searchURL, headers, &resp); err != nil {
		return nil, false, err
	}

	users := make(map[string]struct{ handle, name string }, len(resp.Includes.Users))
	for _, u := range resp.Includes.Users {
		users[u.ID] = struct{ handle, name string }{u.Username, u.Name}
	}

	seen := make(map[string]struct{}, count)
	tweets := make([]domain.Tweet, 0, count)
	for _, raw := range resp.Data {
		if len(tweets) >= count {
			break
		}
		if _, dup := seen[raw.ID]; dup {
			continue
		}
		seen[raw.ID] = struct{}{}

		tweet := domain.Tweet{
			ID:        raw.ID,
			AuthorID:  raw.AuthorID,
			Text:      raw.Text,
			CreatedAt: raw.CreatedAt,
			Likes:     raw.PublicMetrics.LikeCount,
			Retweets:  raw.PublicMetrics.RetweetCount,
			Replies:   raw.PublicMetrics.ReplyCount,
		}
		if u, ok := users[raw.AuthorID]; ok {
			tweet.AuthorHandle = u.handle
			tweet.AuthorName = u.name
		}
		tweets = append(tweets, tweet)
	}
	return tweets, false, nil
}

// TweetChain tries the Twitter API first and falls back to the generator when
// the API is unconfigured or fails.
type TweetChain struct {
	api       *TwitterAPI
	generator *TweetGenerator
	log       logger.Logger
}

// NewTweetChain builds the tweet provider fallback chain.
func NewTweetChain(api *TwitterAPI, generator *TweetGenerator, log logger.Logger) *TweetChain {
	return &TweetChain{api: api, generator: generator, log: log}
}

// SearchTweets implements TweetSearcher.
func (c *TweetChain) SearchTweets(ctx context.Context, query string, count int) ([]domain.Tweet, bool, error) {
	if c.api.Configured() {
		tweets, _, err := c.api.SearchTweets(ctx, query, count)
		if err == nil {
			return tweets, false, nil
		}
		c.log.Warn("twitter api search failed, using generated tweets",
			logger.String("query", query),
			logger.Err(err),
		)
	}
	tweets, err := c.generator.Generate(query, count)
	if err != nil {
		return nil, false, err
	}
	return tweets, true, nil
}
