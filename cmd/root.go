// Package cmd implements the blaster command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aaravbangsmetal/blaster/cmd/httpd"
	"github.com/aaravbangsmetal/blaster/cmd/scheduler"
	"github.com/aaravbangsmetal/blaster/cmd/search"
	"github.com/aaravbangsmetal/blaster/cmd/tweets"
	"github.com/aaravbangsmetal/blaster/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "blaster",
		Short: "A search aggregation service",
		Long: `Blaster fans a query out to public search backends (web, images,
videos, news, tweets), optionally crawls the top result pages for readable
text, and optionally asks a hosted LLM for a cited answer.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

// initConfig runs after flag parsing so --config is honored.
func initConfig() {
	// Load .env early so environment variables are available to viper.
	_ = godotenv.Load()

	if err := config.Init(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing configuration: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "blaster version %s\n", version)
		},
	})

	rootCmd.AddCommand(httpd.Command())
	rootCmd.AddCommand(search.Command())
	rootCmd.AddCommand(tweets.Command())
	rootCmd.AddCommand(scheduler.Command())
}
