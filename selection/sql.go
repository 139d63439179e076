// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package selection

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/pokepick/db"
)

// SQLStore keeps the selection in a SQLite key/value table.
type SQLStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	closed bool
}

// OpenSQLite opens or creates a SQLite file at path.
func OpenSQLite(path string) (*SQLStore, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open selection db: %w", err)
	}
	conn.SetMaxOpenConns(1)

	store, err := NewSQLStore(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return store, nil
}

// NewSQLStore wraps an open database, creating the table if needed.
func NewSQLStore(conn *sql.DB) (*SQLStore, error) {
	if err := db.CreateSelectionSchema(conn); err != nil {
		return nil, err
	}
	return &SQLStore{db: conn}, nil
}

// Close closes the database. Later calls return ErrClosed.
func (s *SQLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Get returns the stored selection. ok is false before the first Set.
func (s *SQLStore) Get(ctx context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, ErrClosed
	}

	var name string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = $1`, Key).Scan(&name)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read selection: %w", err)
	}
	return name, true, nil
}

// Set upserts name.
func (s *SQLStore) Set(ctx context.Context, name string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, Key, name)
	if err != nil {
		return fmt.Errorf("write selection: %w", err)
	}
	return nil
}
