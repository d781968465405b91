// Package httpd implements the HTTP server command.
package httpd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aaravbangsmetal/blaster/cmd/common"
	"github.com/aaravbangsmetal/blaster/internal/api"
	"github.com/aaravbangsmetal/blaster/internal/logger"
)

// shutdownTimeout bounds the graceful drain on SIGINT/SIGTERM.
const shutdownTimeout = 30 * time.Second

// Command returns the httpd command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Start the HTTP server",
		Long:  `Start the HTTP server serving the search UI and the JSON API.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}
}

// run starts the server and blocks until interrupted.
func run(ctx context.Context) error {
	deps, err := common.New()
	if err != nil {
		return fmt.Errorf("initialize dependencies: %w", err)
	}
	defer deps.Close()

	handler := api.NewHandler(
		deps.Search,
		deps.Crawl,
		deps.Answer,
		deps.Tweets,
		historyReader(deps),
		deps.Logger,
	)
	server := api.NewServer(deps.Config, handler, deps.Logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	deps.Logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		deps.Logger.Error("graceful shutdown failed", logger.Err(err))
		return err
	}

	return <-errCh
}

// historyReader adapts the optional repository to the api interface, keeping
// the nil check in one place.
func historyReader(deps *common.Deps) api.HistoryReader {
	if deps.History == nil {
		return nil
	}
	return deps.History
}
