// Package common wires the shared dependency graph used by every subcommand:
// config, logger, providers, crawler, llm client, services, and the optional
// history repository.
package common

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aaravbangsmetal/blaster/internal/config"
	"github.com/aaravbangsmetal/blaster/internal/crawler"
	"github.com/aaravbangsmetal/blaster/internal/llm"
	"github.com/aaravbangsmetal/blaster/internal/logger"
	"github.com/aaravbangsmetal/blaster/internal/provider"
	"github.com/aaravbangsmetal/blaster/internal/service"
	"github.com/aaravbangsmetal/blaster/internal/storage"
)

// Deps holds the fully wired application dependencies.
type Deps struct {
	Config  *config.Config
	Logger  logger.Logger
	Search  *service.SearchService
	Crawl   *service.CrawlService
	Answer  *service.AnswerService
	Tweets  *service.TweetService
	History *storage.HistoryRepository // nil when history is disabled

	db *sqlx.DB
}

// New loads config and builds the dependency graph.
func New() (*Deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	deps := &Deps{Config: cfg, Logger: log}

	if cfg.Database.Enabled {
		db, dbErr := storage.Connect(cfg.Database)
		if dbErr != nil {
			return nil, fmt.Errorf("connect database: %w", dbErr)
		}
		deps.db = db

		repo := storage.NewHistoryRepository(db)
		if schemaErr := repo.EnsureSchema(context.Background()); schemaErr != nil {
			return nil, fmt.Errorf("ensure schema: %w", schemaErr)
		}
		deps.History = repo
	}

	web := provider.NewDuckDuckGo(cfg.Providers, log)
	images := provider.NewImageChain(log,
		provider.NewUnsplash(cfg.Providers),
		provider.NewPexels(cfg.Providers),
	)
	videos := provider.NewYouTube(cfg.Providers, log)
	news := provider.NewGoogleNews(cfg.Providers)
	tweetChain := provider.NewTweetChain(
		provider.NewTwitterAPI(cfg.Providers),
		provider.NewTweetGenerator(),
		log,
	)

	pageCrawler := crawler.New(crawler.Config{
		Parallelism:    cfg.Crawler.Parallelism,
		RequestTimeout: cfg.Crawler.RequestTimeout,
		MaxBodyBytes:   cfg.Crawler.MaxBodyBytes,
		MaxTextChars:   cfg.Crawler.MaxTextChars,
		UserAgent:      cfg.Providers.UserAgent,
	}, log)

	var history service.HistoryRecorder
	if deps.History != nil {
		history = deps.History
	}

	deps.Search = service.NewSearchService(web, images, videos, news, history, log)
	deps.Crawl = service.NewCrawlService(web, pageCrawler, log)
	deps.Answer = service.NewAnswerService(deps.Crawl, llm.New(cfg.LLM, log), log)
	deps.Tweets = service.NewTweetService(tweetChain, log)

	return deps, nil
}

// Close releases held resources.
func (d *Deps) Close() {
	if d.db != nil {
		if err := d.db.Close(); err != nil {
			d.Logger.Warn("close database failed", logger.Err(err))
		}
	}
	_ = d.Logger.Sync()
}
