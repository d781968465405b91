package crawler

import (
	"context"
	"sync"
	"time"

	colly "github.com/gocolly/colly/v2"

	"github.com/aaravbangsmetal/blaster/internal/domain"
	"github.com/aaravbangsmetal/blaster/internal/logger"
)

// Config holds crawler settings.
type Config struct {
	Parallelism    int
	RequestTimeout time.Duration
	MaxBodyBytes   int
	MaxTextChars   int
	UserAgent      string
}

// WithDefaults fills zero fields with sane values.
func (c Config) WithDefaults() Config {
	if c.Parallelism <= 0 {
		c.Parallelism = 3
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 10 * time.Second
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 2 * 1024 * 1024
	}
	return c
}

// Crawler fetches a bounded set of pages in parallel and extracts their
// readable text. Pages that fail to fetch or parse are skipped; the crawl
// succeeds with whatever was extracted.
type Crawler struct {
	cfg       Config
	extractor *PageExtractor
	log       logger.Logger
}

// New creates a Crawler.
func New(cfg Config, log logger.Logger) *Crawler {
	cfg = cfg.WithDefaults()
	return &Crawler{
		cfg:       cfg,
		extractor: NewPageExtractor(cfg.MaxTextChars),
		log:       log,
	}
}

// Crawl visits the given URLs and returns the extracted pages in completion
// order. Failed URLs are logged and dropped from the result.
func (c *Crawler) Crawl(ctx context.Context, urls []string) ([]*domain.CrawledPage, error) {
	if len(urls) == 0 {
		return []*domain.CrawledPage{}, nil
	}

	collector := colly.NewCollector(
		colly.MaxDepth(1),
		colly.Async(true),
		colly.UserAgent(c.cfg.UserAgent),
		colly.MaxBodySize(c.cfg.MaxBodyBytes),
		colly.StdlibContext(ctx),
		colly.IgnoreRobotsTxt(),
	)
	collector.SetRequestTimeout(c.cfg.RequestTimeout)

	if err := collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: c.cfg.Parallelism,
	}); err != nil {
		return nil, err
	}

	var mu sync.Mutex
	pages := make([]*domain.CrawledPage, 0, len(urls))

	collector.OnResponse(func(r *colly.Response) {
		pageURL := r.Request.URL.String()

		page, err := c.extractor.Extract(pageURL, r.Body)
		if err != nil {
			c.log.Warn("page extraction failed",
				logger.String("url", pageURL),
				logger.Err(err),
			)
			return
		}

		mu.Lock()
		pages = append(pages, page)
		mu.Unlock()
	})

	collector.OnError(func(r *colly.Response, err error) {
		c.log.Warn("page fetch failed",
			logger.String("url", r.Request.URL.String()),
			logger.Err(err),
		)
	})

	for _, u := range urls {
		if visitErr := collector.Visit(u); visitErr != nil {
			c.log.Warn("page visit rejected",
				logger.String("url", u),
				logger.Err(visitErr),
			)
		}
	}
	collector.Wait()

	return pages, nil
}
