package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaravbangsmetal/blaster/internal/config"
	"github.com/aaravbangsmetal/blaster/internal/domain"
	"github.com/aaravbangsmetal/blaster/internal/logger"
)

func TestUnsplashSearchImages(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/photos", r.URL.Path)
		assert.Equal(t, "sunset", r.URL.Query().Get("query"))
		assert.Equal(t, "Client-ID test-key", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"results": [
			{
				"id": "p1",
				"description": "",
				"alt_description": "orange sunset over water",
				"urls": {"regular": "https://images.example.com/p1", "thumb": "https://images.example.com/p1-t"},
				"links": {"html": "https://unsplash.example.com/p1"},
				"user": {"name": "Ana Reyes"}
			},
			{
				"id": "p2",
				"description": "Dunes at dusk",
				"urls": {"regular": "https://images.example.com/p2", "thumb": "https://images.example.com/p2-t"},
				"links": {"html": "https://unsplash.example.com/p2"},
				"user": {"name": "Sam Ortiz"}
			},
			{
				"id": "p3",
				"urls": {"regular": "", "thumb": ""}
			}
		]}`))
	}))
	defer srv.Close()

	u := NewUnsplash(testImageConfig(srv.URL, ""))
	u.accessKey = "test-key"

	results, err := u.SearchImages(context.Background(), "sunset", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "orange sunset over water", results[0].Title)
	assert.Equal(t, "https://images.example.com/p1", results[0].URL)
	assert.Equal(t, "https://images.example.com/p1-t", results[0].ThumbnailURL)
	assert.Equal(t, "https://unsplash.example.com/p1", results[0].PageURL)
	assert.Equal(t, "Ana Reyes", results[0].Photographer)
	assert.Equal(t, sourceUnsplash, results[0].Source)

	assert.Equal(t, "Dunes at dusk", results[1].Title)
}

func TestUnsplashNoKey(t *testing.T) {
	t.Parallel()

	u := NewUnsplash(testImageConfig("http://unused.invalid", ""))

	_, err := u.SearchImages(context.Background(), "sunset", 10)
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestPexelsSearchImages(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "pexels-key", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"photos": [
			{
				"id": 42,
				"url": "https://pexels.example.com/photo/42",
				"photographer": "Kim Lee",
				"alt": "forest trail",
				"src": {"large": "https://images.example.com/42-l", "tiny": "https://images.example.com/42-s"}
			}
		]}`))
	}))
	defer srv.Close()

	p := NewPexels(testImageConfig("", srv.URL))
	p.apiKey = "pexels-key"

	results, err := p.SearchImages(context.Background(), "forest", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "forest trail", results[0].Title)
	assert.Equal(t, "https://images.example.com/42-l", results[0].URL)
	assert.Equal(t, "https://pexels.example.com/photo/42", results[0].PageURL)
	assert.Equal(t, "Kim Lee", results[0].Photographer)
	assert.Equal(t, sourcePexels, results[0].Source)
}

// stubImageSearcher returns canned results or a canned error.
type stubImageSearcher struct {
	results []domain.ImageResult
	err     error
}

func (s *stubImageSearcher) SearchImages(context.Context, string, int) ([]domain.ImageResult, error) {
	return s.results, s.err
}

func TestImageChainFallback(t *testing.T) {
	t.Parallel()

	hit := []domain.ImageResult{{Title: "hit", URL: "https://example.com/hit"}}

	tests := []struct {
		name      string
		providers []ImageSearcher
		want      int
	}{
		{
			name: "first provider unconfigured, second serves",
			providers: []ImageSearcher{
				&stubImageSearcher{err: ErrNoAPIKey},
				&stubImageSearcher{results: hit},
			},
			want: 1,
		},
		{
			name: "first provider fails, second serves",
			providers: []ImageSearcher{
				&stubImageSearcher{err: errors.New("boom")},
				&stubImageSearcher{results: hit},
			},
			want: 1,
		},
		{
			name: "first provider empty, second serves",
			providers: []ImageSearcher{
				&stubImageSearcher{},
				&stubImageSearcher{results: hit},
			},
			want: 1,
		},
		{
			name: "chain exhausted yields empty list",
			providers: []ImageSearcher{
				&stubImageSearcher{err: ErrNoAPIKey},
				&stubImageSearcher{err: ErrNoAPIKey},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			chain := NewImageChain(logger.Nop(), tt.providers...)

			results, err := chain.SearchImages(context.Background(), "q", 10)
			require.NoError(t, err)
			assert.Len(t, results, tt.want)
		})
	}
}

func testImageConfig(unsplashURL, pexelsURL string) config.ProvidersConfig {
	return config.ProvidersConfig{
		UnsplashURL:    unsplashURL,
		PexelsURL:      pexelsURL,
		RequestTimeout: 5 * time.Second,
	}
}
