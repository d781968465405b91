package service

import (
	"context"
	"time"

	"github.com/aaravbangsmetal/blaster/internal/domain"
	"github.com/aaravbangsmetal/blaster/internal/logger"
	"github.com/aaravbangsmetal/blaster/internal/provider"
	"github.com/aaravbangsmetal/blaster/internal/stats"
)

// TweetService fetches tweets and computes their aggregate statistics.
type TweetService struct {
	tweets provider.TweetSearcher
	log    logger.Logger
}

// NewTweetService creates a TweetService.
func NewTweetService(tweets provider.TweetSearcher, log logger.Logger) *TweetService {
	return &TweetService{tweets: tweets, log: log}
}

// Stats executes one tweet-stats request.
func (s *TweetService) Stats(ctx context.Context, req *domain.StatsRequest) (*domain.TweetStatsReport, error) {
	start := time.Now()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tweets, generated, err := s.tweets.SearchTweets(ctx, req.Query, req.Count)
	if err != nil {
		return nil, err
	}

	tweetStats := stats.Aggregate(req.Query, tweets)
	tweetStats.Generated = generated

	s.log.Info("tweet stats computed",
		logger.String("query", req.Query),
		logger.Int("tweets", len(tweets)),
		logger.Bool("generated", generated),
	)

	return &domain.TweetStatsReport{
		Stats:  tweetStats,
		Tweets: tweets,
		TookMs: time.Since(start).Milliseconds(),
	}, nil
}
