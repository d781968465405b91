// Package search implements the CLI search command.
package search

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/aaravbangsmetal/blaster/cmd/common"
	"github.com/aaravbangsmetal/blaster/internal/domain"
)

// snippetPreviewLength truncates snippets in table output.
const snippetPreviewLength = 100

// Command returns the search command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run an aggregated search from the command line",
		Long: `Run an aggregated search and print the results as tables.

Examples:
  # Search all categories
  blaster search -q "golang concurrency"

  # Web results only, 5 hits
  blaster search -q "golang" -c web -s 5
`,
		RunE: runSearch,
	}

	cmd.Flags().StringP("query", "q", "", "Query string to search for")
	cmd.Flags().StringSliceP("categories", "c", nil, "Categories to search (web, images, videos, news)")
	cmd.Flags().IntP("size", "s", domain.DefaultResults, "Number of results per category")

	if err := cmd.MarkFlagRequired("query"); err != nil {
		fmt.Fprintf(os.Stderr, "Error marking query flag as required: %v\n", err)
		os.Exit(1)
	}

	return cmd
}

// runSearch executes the search command.
func runSearch(cmd *cobra.Command, _ []string) error {
	query, _ := cmd.Flags().GetString("query")
	categories, _ := cmd.Flags().GetStringSlice("categories")
	size, _ := cmd.Flags().GetInt("size")

	deps, err := common.New()
	if err != nil {
		return fmt.Errorf("initialize dependencies: %w", err)
	}
	defer deps.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), deps.Config.Service.SearchTimeout)
	defer cancel()

	resp, err := deps.Search.Search(ctx, &domain.SearchRequest{
		Query:      query,
		Categories: categories,
		Limit:      size,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	renderResults(resp)
	fmt.Printf("\n%d results in %d ms\n", resp.TotalResults, resp.TookMs)
	return nil
}

// renderResults prints one table per non-empty category.
func renderResults(resp *domain.SearchResponse) {
	if len(resp.Results.Web) > 0 {
		t := newTable("Web")
		t.AppendHeader(table.Row{"#", "Title", "URL", "Snippet"})
		for i, r := range resp.Results.Web {
			t.AppendRow(table.Row{i + 1, r.Title, r.URL, truncate(r.Snippet)})
		}
		t.Render()
	}

	if len(resp.Results.News) > 0 {
		t := newTable("News")
		t.AppendHeader(table.Row{"#", "Title", "Publisher", "Published"})
		for i, n := range resp.Results.News {
			t.AppendRow(table.Row{i + 1, n.Title, n.Publisher, n.PublishedAt})
		}
		t.Render()
	}

	if len(resp.Results.Videos) > 0 {
		t := newTable("Videos")
		t.AppendHeader(table.Row{"#", "Title", "Channel", "Duration", "URL"})
		for i, v := range resp.Results.Videos {
			t.AppendRow(table.Row{i + 1, v.Title, v.Channel, v.Duration, v.URL})
		}
		t.Render()
	}

	if len(resp.Results.Images) > 0 {
		t := newTable("Images")
		t.AppendHeader(table.Row{"#", "Title", "Photographer", "URL"})
		for i, im := range resp.Results.Images {
			t.AppendRow(table.Row{i + 1, im.Title, im.Photographer, im.URL})
		}
		t.Render()
	}
}

// newTable builds a stdout table writer with a title.
func newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(title)
	t.SetStyle(table.StyleLight)
	return t
}

// truncate shortens a snippet for table display.
func truncate(s string) string {
	if len(s) <= snippetPreviewLength {
		return s
	}
	return s[:snippetPreviewLength] + "..."
}
