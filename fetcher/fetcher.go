// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/pokepick/models"
)

const requestTimeout = 10 * time.Second

var (
	// ErrStatus wraps non-2xx responses.
	ErrStatus = errors.New("unexpected response status")
	// ErrMalformed wraps bodies that do not decode or break the page contract.
	ErrMalformed = errors.New("malformed response")
)

// Lister fetches one page of the catalog.
type Lister interface {
	Fetch(ctx context.Context, page int, query string) (models.PageResult, error)
}

// Client talks to the catalog API. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New returns a Client for the catalog API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch requests page with query passed through verbatim. A result without
// data or with num_pages below 1 is ErrMalformed.
func (c *Client) Fetch(ctx context.Context, page int, query string) (models.PageResult, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("filters", query)

	var result models.PageResult
	if err := c.get(ctx, "/api/pokemon/list?"+params.Encode(), &result); err != nil {
		return models.PageResult{}, err
	}

	if result.Data == nil {
		return models.PageResult{}, fmt.Errorf("%w: missing data", ErrMalformed)
	}
	if result.NumPages < 1 {
		return models.PageResult{}, fmt.Errorf("%w: num_pages %d", ErrMalformed, result.NumPages)
	}
	return result, nil
}

// Random fetches one random creature.
func (c *Client) Random(ctx context.Context) (models.CreatureSummary, error) {
	var creature models.CreatureSummary
	if err := c.get(ctx, "/api/pokemon/random", &creature); err != nil {
		return models.CreatureSummary{}, err
	}
	if creature.Name == "" {
		return models.CreatureSummary{}, fmt.Errorf("%w: missing name", ErrMalformed)
	}
	return creature, nil
}

// ByID fetches the creature at a 1-based catalog index.
func (c *Client) ByID(ctx context.Context, id int) (models.CreatureSummary, error) {
	var creature models.CreatureSummary
	if err := c.get(ctx, "/api/pokemon/?id="+strconv.Itoa(id), &creature); err != nil {
		return models.CreatureSummary{}, err
	}
	if creature.Name == "" {
		return models.CreatureSummary{}, fmt.Errorf("%w: missing name", ErrMalformed)
	}
	return creature, nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr models.ErrorResponse
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%w: HTTP %d: %s", ErrStatus, resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("%w: HTTP %d", ErrStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}
