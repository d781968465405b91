package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaravbangsmetal/blaster/internal/domain"
)

func sampleReport() *domain.TweetStatsReport {
	return &domain.TweetStatsReport{
		Stats: &domain.TweetStats{
			Query:      "golang",
			TweetCount: 2,
		},
		Tweets: []domain.Tweet{
			{
				ID:           "t1",
				AuthorHandle: "alice",
				AuthorName:   "Alice",
				Text:         "hello, \"quoted\" world",
				CreatedAt:    time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC),
				Likes:        5,
				Retweets:     2,
				Replies:      1,
			},
			{
				ID:           "t2",
				AuthorHandle: "bob",
				Text:         "second tweet",
				CreatedAt:    time.Date(2026, 8, 27, 11, 0, 0, 0, time.UTC),
			},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleReport()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{"t1", "alice", "Alice", "2026-08-27T10:00:00Z", "5", "2", "1", `hello, "quoted" world`}, records[1])
	assert.Equal(t, "t2", records[2][0])
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReport()))

	var decoded domain.TweetStatsReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "golang", decoded.Stats.Query)
	require.Len(t, decoded.Tweets, 2)
	assert.Equal(t, "t1", decoded.Tweets[0].ID)
}

func TestWriteDispatch(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleReport()))
	assert.NotZero(t, buf.Len())

	buf.Reset()
	require.NoError(t, Write(&buf, FormatCSV, sampleReport()))
	assert.NotZero(t, buf.Len())

	err := Write(&buf, "xml", sampleReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestContentType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "text/csv", ContentType(FormatCSV))
	assert.Equal(t, "application/json", ContentType(FormatJSON))
	assert.Empty(t, ContentType("xml"))
}
