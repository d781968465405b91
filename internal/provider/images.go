package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/aaravbangsmetal/blaster/internal/config"
	"github.com/aaravbangsmetal/blaster/internal/domain"
	"github.com/aaravbangsmetal/blaster/internal/logger"
)

// Source labels reported on image results.
const (
	sourceUnsplash = "unsplash"
	sourcePexels   = "pexels"
)

// ErrNoAPIKey is returned by image providers configured without credentials.
var ErrNoAPIKey = errors.New("api key not configured")

// Unsplash searches the Unsplash photo API.
type Unsplash struct {
	baseURL   string
	accessKey string
	client    *http.Client
}

// NewUnsplash creates the Unsplash image search adapter.
func NewUnsplash(cfg config.ProvidersConfig) *Unsplash {
	return &Unsplash{
		baseURL:   cfg.UnsplashURL,
		accessKey: cfg.UnsplashKey,
		client:    newHTTPClient(cfg.RequestTimeout),
	}
}

// unsplashResponse is the subset of the Unsplash search shape we read.
type unsplashResponse struct {
	Results []struct {
		ID             string `json:"id"`
		Description    string `json:"description"`
		AltDescription string `json:"alt_description"`
		URLs           struct {
			Regular string `json:"regular"`
			Thumb   string `json:"thumb"`
		} `json:"urls"`
		Links struct {
			HTML string `json:"html"`
		} `json:"links"`
		User struct {
			Name string `json:"name"`
		} `json:"user"`
	} `json:"results"`
}

// SearchImages implements ImageSearcher.
func (u *Unsplash) SearchImages(ctx context.Context, query string, limit int) ([]domain.ImageResult, error) {
	if u.accessKey == "" {
		return nil, ErrNoAPIKey
	}

	searchURL := fmt.Sprintf("%s/search/photos?query=%s&per_page=%d",
		u.baseURL, url.QueryEscape(query), limit)

	var resp unsplashResponse
	headers := map[string]string{"Authorization": "Client-ID " + u.accessKey}
	if err := fetchJSON(ctx, u.client, searchURL, headers, &resp); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, limit)
	results := make([]domain.ImageResult, 0, limit)
	for _, photo := range resp.Results {
		if len(results) >= limit {
			break
		}
		if photo.URLs.Regular == "" {
			continue
		}
		if _, dup := seen[photo.URLs.Regular]; dup {
			continue
		}
		seen[photo.URLs.Regular] = struct{}{}

		title := photo.Description
		if title == "" {
			title = photo.AltDescription
		}

		results = append(results, domain.ImageResult{
			Title:        strings.TrimSpace(title),
			URL:          photo.URLs.Regular,
			ThumbnailURL: photo.URLs.Thumb,
			PageURL:      photo.Links.HTML,
			Photographer: photo.User.Name,
			Source:       sourceUnsplash,
		})
	}
	return results, nil
}

// Pexels searches the Pexels photo API.
type Pexels struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewPexels creates the Pexels image search adapter.
func NewPexels(cfg config.ProvidersConfig) *Pexels {
	return &Pexels{
		baseURL: cfg.PexelsURL,
		apiKey:  cfg.PexelsKey,
		client:  newHTTPClient(cfg.RequestTimeout),
	}
}

// pexelsResponse is the subset of the Pexels search shape we read.
type pexelsResponse struct {
	Photos []struct {
		ID           int    `json:"id"`
		URL          string `json:"url"`
		Photographer string `json:"photographer"`
		Alt          string `json:"alt"`
		Src          struct {
			Large string `json:"large"`
			Tiny  string `json:"tiny"`
		} `json:"src"`
	} `json:"photos"`
}

// SearchImages implements ImageSearcher.
func (p *Pexels) SearchImages(ctx context.Context, query string, limit int) ([]domain.ImageResult, error) {
	if p.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	searchURL := fmt.Sprintf("%s/v1/search?query=%s&per_page=%d",
		p.baseURL, url.QueryEscape(query), limit)

	var resp pexelsResponse
	headers := map[string]string{"Authorization": p.apiKey}
	if err := fetchJSON(ctx, p.client, searchURL, headers, &resp); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, limit)
	results := make([]domain.ImageResult, 0, limit)
	for _, photo := range resp.Photos {
		if len(results) >= limit {
			break
		}
		if photo.Src.Large == "" {
			continue
		}
		if _, dup := seen[photo.Src.Large]; dup {
			continue
		}
		seen[photo.Src.Large] = struct{}{}

		results = append(results, domain.ImageResult{
			Title:        strings.TrimSpace(photo.Alt),
			URL:          photo.Src.Large,
			ThumbnailURL: photo.Src.Tiny,
			PageURL:      photo.URL,
			Photographer: photo.Photographer,
			Source:       sourcePexels,
		})
	}
	return results, nil
}

// ImageChain tries each image provider in order and returns the first
// non-empty result set. Exhausting the chain yields an empty list, not an
// error: a missing image column is not a failed search.
type ImageChain struct {
	providers []ImageSearcher
	log       logger.Logger
}

// NewImageChain builds the image provider fallback chain.
func NewImageChain(log logger.Logger, providers ...ImageSearcher) *ImageChain {
	return &ImageChain{providers: providers, log: log}
}

// SearchImages implements ImageSearcher.
func (c *ImageChain) SearchImages(ctx context.Context, query string, limit int) ([]domain.ImageResult, error) {
	for _, p := range c.providers {
		results, err := p.SearchImages(ctx, query, limit)
		if err != nil {
			if !errors.Is(err, ErrNoAPIKey) {
				c.log.Warn("image provider failed, trying next",
					logger.String("query", query),
					logger.Err(err),
				)
			}
			continue
		}
		if len(results) > 0 {
			return results, nil
		}
	}
	return []domain.ImageResult{}, nil
}
