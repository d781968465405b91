// Package tweets implements the tweet statistics command.
package tweets

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/aaravbangsmetal/blaster/cmd/common"
	"github.com/aaravbangsmetal/blaster/internal/domain"
	"github.com/aaravbangsmetal/blaster/internal/export"
)

// Command returns the tweets command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tweets",
		Short: "Fetch tweets for a query and compute aggregate statistics",
		Long: `Fetch tweets matching a query (Twitter API v2 when a bearer token is
configured, generated tweets otherwise), compute top authors, keyword
frequencies, and a naive sentiment tally, and optionally export the batch.

Examples:
  # Print stats tables
  blaster tweets -q "golang"

  # Export the batch as CSV
  blaster tweets -q "golang" --export csv -o tweets.csv
`,
		RunE: runTweets,
	}

	cmd.Flags().StringP("query", "q", "", "Query string to search for")
	cmd.Flags().IntP("count", "n", domain.DefaultTweetCount, "Number of tweets to fetch")
	cmd.Flags().String("export", "", "Export format (csv or json)")
	cmd.Flags().StringP("out", "o", "", "Export file path (defaults to stdout)")

	if err := cmd.MarkFlagRequired("query"); err != nil {
		fmt.Fprintf(os.Stderr, "Error marking query flag as required: %v\n", err)
		os.Exit(1)
	}

	return cmd
}

// runTweets executes the tweets command.
func runTweets(cmd *cobra.Command, _ []string) error {
	query, _ := cmd.Flags().GetString("query")
	count, _ := cmd.Flags().GetInt("count")
	format, _ := cmd.Flags().GetString("export")
	outPath, _ := cmd.Flags().GetString("out")

	deps, err := common.New()
	if err != nil {
		return fmt.Errorf("initialize dependencies: %w", err)
	}
	defer deps.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), deps.Config.Service.SearchTimeout)
	defer cancel()

	report, err := deps.Tweets.Stats(ctx, &domain.StatsRequest{Query: query, Count: count})
	if err != nil {
		return fmt.Errorf("tweet stats failed: %w", err)
	}

	if format != "" {
		return writeExport(report, format, outPath)
	}

	renderStats(report)
	return nil
}

// writeExport writes the report to the given path or stdout.
func writeExport(report *domain.TweetStatsReport, format, outPath string) error {
	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := export.Write(out, format, report); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	if outPath != "" {
		fmt.Printf("Exported %d tweets to %s\n", len(report.Tweets), outPath)
	}
	return nil
}

// renderStats prints the aggregates as tables.
func renderStats(report *domain.TweetStatsReport) {
	s := report.Stats

	fmt.Printf("Query: %s\nTweets: %d", s.Query, s.TweetCount)
	if s.Generated {
		fmt.Print(" (generated)")
	}
	fmt.Println()

	authors := table.NewWriter()
	authors.SetOutputMirror(os.Stdout)
	authors.SetTitle("Top Authors")
	authors.SetStyle(table.StyleLight)
	authors.AppendHeader(table.Row{"Handle", "Name", "Tweets"})
	for _, a := range s.TopAuthors {
		authors.AppendRow(table.Row{"@" + a.Handle, a.Name, a.Count})
	}
	authors.Render()

	keywords := table.NewWriter()
	keywords.SetOutputMirror(os.Stdout)
	keywords.SetTitle("Keywords")
	keywords.SetStyle(table.StyleLight)
	keywords.AppendHeader(table.Row{"Keyword", "Count"})
	for _, k := range s.Keywords {
		keywords.AppendRow(table.Row{k.Keyword, k.Count})
	}
	keywords.Render()

	fmt.Printf("Sentiment: %d positive / %d negative / %d neutral\n",
		s.Sentiment.Positive, s.Sentiment.Negative, s.Sentiment.Neutral)
}
