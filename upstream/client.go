// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/danielhkuo/pokepick/models"
)

const (
	// SpriteBase prefixes the numeric id to form a creature's artwork URL.
	SpriteBase = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/"

	rateLimitDelay = 50 * time.Millisecond // 20 req/sec
	requestTimeout = 5 * time.Second
	maxRetries     = 3
	initialBackoff = 500 * time.Millisecond
	maxBackoff     = 8 * time.Second
)

var ErrNotFound = errors.New("upstream resource not found")

// Client fetches creature data from a PokeAPI-compatible service.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit replaces the default limiter.
func WithRateLimit(l *rate.Limiter) Option {
	return func(c *Client) { c.rateLimiter = l }
}

// NewClient creates a rate-limited client for baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		userAgent:   "pokepick/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type countResponse struct {
	Count int `json:"count"`
}

type indexResponse struct {
	Count   int `json:"count"`
	Results []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"results"`
}

type detailResponse struct {
	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`
	Types []struct {
		Slot int `json:"slot"`
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
}

// Index fetches every creature name in upstream order. Entries carry
// Index, Name, URL and ImgURL; stats and types are left empty.
func (c *Client) Index(ctx context.Context) ([]models.CreatureSummary, error) {
	var count countResponse
	if err := c.doRequest(ctx, c.baseURL+"/pokemon", &count); err != nil {
		return nil, fmt.Errorf("failed to get creature count: %w", err)
	}

	var index indexResponse
	url := fmt.Sprintf("%s/pokemon?limit=%d&offset=0", c.baseURL, count.Count)
	if err := c.doRequest(ctx, url, &index); err != nil {
		return nil, fmt.Errorf("failed to get creature index: %w", err)
	}

	creatures := make([]models.CreatureSummary, 0, len(index.Results))
	for i, r := range index.Results {
		creatures = append(creatures, models.CreatureSummary{
			Index:  i + 1,
			Name:   r.Name,
			URL:    r.URL,
			ImgURL: SpriteBase + IDFromURL(r.URL) + ".png",
		})
	}

	return creatures, nil
}

// Detail fetches stats and types for the creature at detailURL.
func (c *Client) Detail(ctx context.Context, detailURL string) (models.Stats, []string, error) {
	var detail detailResponse
	if err := c.doRequest(ctx, detailURL, &detail); err != nil {
		return models.Stats{}, nil, fmt.Errorf("failed to get creature detail %s: %w", detailURL, err)
	}

	var stats models.Stats
	for _, s := range detail.Stats {
		stats.Set(s.Stat.Name, s.BaseStat)
	}

	types := make([]string, 0, len(detail.Types))
	for _, t := range detail.Types {
		types = append(types, t.Type.Name)
	}

	return stats, types, nil
}

// IDFromURL returns the last path segment of an upstream detail URL,
// e.g. ".../pokemon/25/" yields "25".
func IDFromURL(url string) string {
	parts := strings.Split(strings.TrimRight(url, "/"), "/")
	return parts[len(parts)-1]
}

// doRequest performs a GET with rate limiting and retry on transient failures.
func (c *Client) doRequest(ctx context.Context, url string, result any) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, backoff); err != nil {
				return err
			}
			backoff = min(backoff*2, maxBackoff)
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		retry, err := c.once(ctx, url, result)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry {
			return err
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// once performs a single attempt and reports whether a failure is retryable.
func (c *Client) once(ctx context.Context, url string, result any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return true, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return true, fmt.Errorf("failed to read response body: %w", err)
		}
		if err := json.Unmarshal(body, result); err != nil {
			return false, fmt.Errorf("failed to parse JSON response: %w", err)
		}
		return false, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, fmt.Errorf("%w: %s", ErrNotFound, url)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return true, fmt.Errorf("upstream returned HTTP %d", resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return false, fmt.Errorf("upstream returned HTTP %d: %s", resp.StatusCode, string(body))
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
