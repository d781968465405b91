package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/aaravbangsmetal/blaster/internal/config"
	"github.com/aaravbangsmetal/blaster/internal/domain"
	"github.com/aaravbangsmetal/blaster/internal/logger"
)

const sourceYouTube = "youtube"

// Patterns over the ytInitialData blob embedded in the results page. Each
// videoRenderer block is located first, then fields are matched inside it so
// titles and channels stay paired with their video ID.
var (
	videoRendererRe = regexp.MustCompile(`"videoRenderer":\{"videoId":"([a-zA-Z0-9_-]{11})"`)
	videoTitleRe    = regexp.MustCompile(`"title":\{"runs":\[\{"text":"((?:[^"\\]|\\.)*)"`)
	videoOwnerRe    = regexp.MustCompile(`"ownerText":\{"runs":\[\{"text":"((?:[^"\\]|\\.)*)"`)
	videoLengthRe   = regexp.MustCompile(`"lengthText":\{.*?"simpleText":"([0-9:]+)"`)
)

// YouTube scrapes the YouTube results page for video hits.
type YouTube struct {
	baseURL   string
	userAgent string
	client    *http.Client
	log       logger.Logger
}

// NewYouTube creates the YouTube video search adapter.
func NewYouTube(cfg config.ProvidersConfig, log logger.Logger) *YouTube {
	return &YouTube{
		baseURL:   cfg.YouTubeURL,
		userAgent: cfg.UserAgent,
		client:    newHTTPClient(cfg.RequestTimeout),
		log:       log,
	}
}

// SearchVideos implements VideoSearcher.
func (y *YouTube) SearchVideos(ctx context.Context, query string, limit int) ([]domain.VideoResult, error) {
	searchURL := fmt.Sprintf("%s/results?search_query=%s", y.baseURL, url.QueryEscape(query))

	body, err := fetchBody(ctx, y.client, searchURL, y.userAgent)
	if err != nil {
		return nil, err
	}

	return parseVideoResults(string(body), y.baseURL, limit), nil
}

// parseVideoResults extracts video hits from a results page body.
func parseVideoResults(body, baseURL string, limit int) []domain.VideoResult {
	locs := videoRendererRe.FindAllStringSubmatchIndex(body, -1)

	seen := make(map[string]struct{}, limit)
	results := make([]domain.VideoResult, 0, limit)

	for i, loc := range locs {
		if len(results) >= limit {
			break
		}

		videoID := body[loc[2]:loc[3]]
		if _, dup := seen[videoID]; dup {
			continue
		}
		seen[videoID] = struct{}{}

		// Field matching is confined to this renderer's chunk.
		end := len(body)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		chunk := body[loc[0]:end]

		results = append(results, domain.VideoResult{
			Title:    unescapeJSONString(firstGroup(videoTitleRe, chunk)),
			URL:      baseURL + "/watch?v=" + videoID,
			VideoID:  videoID,
			Channel:  unescapeJSONString(firstGroup(videoOwnerRe, chunk)),
			Duration: firstGroup(videoLengthRe, chunk),
			Source:   sourceYouTube,
		})
	}

	return results
}

// firstGroup returns the first capture group of the first match, or "".
func firstGroup(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// unescapeJSONString decodes JSON string escapes captured by the regexes.
func unescapeJSONString(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err != nil {
		return s
	}
	return out
}
