// Package scheduler implements the cron-driven periodic tweet-stats export.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/aaravbangsmetal/blaster/cmd/common"
	"github.com/aaravbangsmetal/blaster/internal/config"
	"github.com/aaravbangsmetal/blaster/internal/domain"
	"github.com/aaravbangsmetal/blaster/internal/export"
	"github.com/aaravbangsmetal/blaster/internal/logger"
	"github.com/aaravbangsmetal/blaster/internal/service"
)

// jobTimeout bounds one scheduled export run.
const jobTimeout = 60 * time.Second

// Command returns the scheduler command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Run the periodic tweet-stats export",
		Long: `Run a cron-scheduled job that fetches tweets for the configured query,
computes aggregates, and writes a timestamped export file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}
}

// run starts the cron loop and blocks until interrupted.
func run(ctx context.Context) error {
	deps, err := common.New()
	if err != nil {
		return fmt.Errorf("initialize dependencies: %w", err)
	}
	defer deps.Close()

	cfg := deps.Config.Scheduler
	if cfg.Query == "" {
		return fmt.Errorf("scheduler.query is required")
	}

	c := cron.New()
	job := exportJob{
		tweets: deps.Tweets,
		cfg:    cfg,
		log:    deps.Logger,
	}

	if _, addErr := c.AddFunc(cfg.Spec, job.run); addErr != nil {
		return fmt.Errorf("register cron job: %w", addErr)
	}

	deps.Logger.Info("scheduler started",
		logger.String("spec", cfg.Spec),
		logger.String("query", cfg.Query),
		logger.String("format", cfg.Format),
	)
	c.Start()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	deps.Logger.Info("scheduler stopping")
	<-c.Stop().Done()
	return nil
}

// exportJob is one scheduled export.
type exportJob struct {
	tweets *service.TweetService
	cfg    config.SchedulerConfig
	log    logger.Logger
}

// run executes one export, writing a timestamped file to the output dir.
func (j exportJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	report, err := j.tweets.Stats(ctx, &domain.StatsRequest{Query: j.cfg.Query})
	if err != nil {
		j.log.Error("scheduled tweet stats failed", logger.Err(err))
		return
	}

	name := fmt.Sprintf("tweets-%s.%s", time.Now().UTC().Format("20060102T150405"), j.cfg.Format)
	path := filepath.Join(j.cfg.OutputDir, name)

	f, err := os.Create(path)
	if err != nil {
		j.log.Error("create export file failed", logger.String("path", path), logger.Err(err))
		return
	}
	defer f.Close()

	if err := export.Write(f, j.cfg.Format, report); err != nil {
		j.log.Error("write export failed", logger.String("path", path), logger.Err(err))
		return
	}

	j.log.Info("export written",
		logger.String("path", path),
		logger.Int("tweets", len(report.Tweets)),
	)
}
