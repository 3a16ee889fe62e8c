// Package omdb is a small client for the OMDb API (https://www.omdbapi.com).
//
// Only the two lookups the service needs are implemented: title search and
// lookup by IMDb id. OMDb answers most failures with HTTP 200 and a body of
// {"Response":"False","Error":"..."}; the client turns those into ErrNotFound
// or ErrUnavailable.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrNotFound means OMDb has no record for the requested identifier.
	ErrNotFound = errors.New("omdb: movie not found")
	// ErrUnavailable covers transport, HTTP and provider-side failures.
	ErrUnavailable = errors.New("omdb: provider unavailable")
)

// Answers OMDb gives for a search with no usable results.
var emptySearchErrors = []string{"movie not found!", "too many results."}

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(config Config, log *zap.Logger) (*Client, error) {
	base, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse omdb base url %q: %w", config.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("omdb base url %q must be absolute", config.BaseURL)
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: base,
		apiKey:  config.APIKey,
		http:    &http.Client{Timeout: timeout},
		log:     log.With(zap.String("provider", "omdb")),
	}, nil
}

// Search returns the movies whose title matches query, in provider order.
// A search without matches returns an empty slice.
func (c *Client) Search(ctx context.Context, query string) ([]SearchItem, error) {
	params := url.Values{}
	params.Set("s", query)
	params.Set("type", "movie")

	var result searchResponse
	if err := c.get(ctx, params, &result); err != nil {
		return nil, err
	}

	if !strings.EqualFold(result.Response, "True") {
		for _, msg := range emptySearchErrors {
			if strings.EqualFold(result.Error, msg) {
				return []SearchItem{}, nil
			}
		}
		c.log.Warn("Search rejected by provider", zap.String("error", result.Error))
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, result.Error)
	}

	if result.Search == nil {
		return []SearchItem{}, nil
	}
	return result.Search, nil
}

// GetByID looks up a single movie with its full plot.
func (c *Client) GetByID(ctx context.Context, imdbID string) (*Movie, error) {
	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("plot", "full")

	var movie Movie
	if err := c.get(ctx, params, &movie); err != nil {
		return nil, err
	}

	if !strings.EqualFold(movie.Response, "True") {
		return nil, fmt.Errorf("%w: %s: %s", ErrNotFound, imdbID, movie.Error)
	}

	return &movie, nil
}

func (c *Client) get(ctx context.Context, params url.Values, dest any) error {
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}

	reqURL := *c.baseURL
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("build omdb request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("Provider request failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.log.Debug("Provider request",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	// OMDb reports a bad key with 401 and a JSON error body
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Error("Provider returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		c.log.Error("Failed to decode provider response", zap.Error(err))
		return fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}

	return nil
}
