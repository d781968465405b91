// Package export writes tweet-stats reports as CSV or JSON. The writers are
// shared by the CLI, the scheduler, and the export API endpoint.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/aaravbangsmetal/blaster/internal/domain"
)

// Supported export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Write renders the report in the given format.
func Write(w io.Writer, format string, report *domain.TweetStatsReport) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, report)
	case FormatJSON:
		return WriteJSON(w, report)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// ContentType returns the MIME type for a format, or "" if unsupported.
func ContentType(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv"
	case FormatJSON:
		return "application/json"
	default:
		return ""
	}
}

// WriteJSON writes the full report as indented JSON.
func WriteJSON(w io.Writer, report *domain.TweetStatsReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// csvHeader is the tweet row header.
var csvHeader = []string{"id", "author_handle", "author_name", "created_at", "likes", "retweets", "replies", "text"}

// WriteCSV writes the report's tweets as CSV rows.
func WriteCSV(w io.Writer, report *domain.TweetStatsReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, t := range report.Tweets {
		row := []string{
			t.ID,
			t.AuthorHandle,
			t.AuthorName,
			t.CreatedAt.Format(time.RFC3339),
			strconv.Itoa(t.Likes),
			strconv.Itoa(t.Retweets),
			strconv.Itoa(t.Replies),
			t.Text,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
