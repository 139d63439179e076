// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/pokepick/cliparse"
	"github.com/danielhkuo/pokepick/db"
	"github.com/danielhkuo/pokepick/models"
)

// SetupTestDB opens a fresh in-memory SQLite database with the catalog schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every pooled connection would otherwise get its own empty database
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            5328,
		DatabaseURL:     ":memory:",
		DatabaseType:    cliparse.DatabaseSQLite,
		UpstreamURL:     "http://upstream.test",
		PageSize:        20,
		RefreshInterval: 24 * time.Hour,
		AdminKey:        "test-admin-key",
	}
}

// FakeSource is an in-memory catalog source that counts its calls
type FakeSource struct {
	mu          sync.Mutex
	Creatures   []models.CreatureSummary
	Details     map[string]models.CreatureSummary // by URL
	IndexCalls  int
	DetailCalls int
	DetailErr   error
}

// NewFakeSource builds a source with n creatures named creature-001 ...
// Names listed in extra are appended after them. Every creature has
// details available.
func NewFakeSource(n int, extra ...string) *FakeSource {
	src := &FakeSource{Details: map[string]models.CreatureSummary{}}
	names := make([]string, 0, n+len(extra))
	for i := 1; i <= n; i++ {
		names = append(names, fmt.Sprintf("creature-%03d", i))
	}
	names = append(names, extra...)

	for i, name := range names {
		idx := i + 1
		c := models.CreatureSummary{
			Index:  idx,
			Name:   name,
			URL:    fmt.Sprintf("http://upstream.test/pokemon/%d/", idx),
			ImgURL: fmt.Sprintf("http://sprites.test/%d.png", idx),
		}
		src.Creatures = append(src.Creatures, c)

		detail := c
		detail.Types = []string{models.TypeNormal}
		detail.Stats = models.Stats{HP: idx, Attack: 10, Defense: 20, SpecialAttack: 30, SpecialDefense: 40, Speed: 50}
		src.Details[c.URL] = detail
	}
	return src
}

func (s *FakeSource) Index(ctx context.Context) ([]models.CreatureSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.IndexCalls++
	out := make([]models.CreatureSummary, len(s.Creatures))
	copy(out, s.Creatures)
	return out, nil
}

func (s *FakeSource) Detail(ctx context.Context, url string) (models.Stats, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DetailCalls++
	if s.DetailErr != nil {
		return models.Stats{}, nil, s.DetailErr
	}
	d, ok := s.Details[url]
	if !ok {
		return models.Stats{}, nil, fmt.Errorf("no detail for %s", url)
	}
	return d.Stats, d.Types, nil
}

// Calls returns the index and detail call counts
func (s *FakeSource) Calls() (index, detail int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.IndexCalls, s.DetailCalls
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
