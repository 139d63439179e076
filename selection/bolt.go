// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package selection

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.etcd.io/bbolt"
)

const selectionBucket = "selection"

// BoltStore keeps the selection in a bbolt file.
type BoltStore struct {
	mu     sync.RWMutex
	db     *bbolt.DB
	closed bool
}

// OpenBolt opens or creates the store at path.
func OpenBolt(path string) (*BoltStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open selection db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(selectionBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create selection bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying file. It waits for in-progress reads and
// writes.
func (s *BoltStore) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Get returns the stored selection. ok is false before the first Set.
func (s *BoltStore) Get(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if s == nil {
		return "", false, ErrClosed
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, ErrClosed
	}

	var name string
	var ok bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(selectionBucket))
		if bucket == nil {
			return fmt.Errorf("selection bucket is missing")
		}
		payload := bucket.Get([]byte(Key))
		if payload == nil {
			return nil
		}
		if err := json.Unmarshal(payload, &name); err != nil {
			return fmt.Errorf("unmarshal selection: %w", err)
		}
		ok = true
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return name, ok, nil
}

// Set writes name and syncs it to disk before returning.
func (s *BoltStore) Set(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil {
		return ErrClosed
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	// JSON keeps the empty name distinguishable from a missing key
	payload, err := json.Marshal(name)
	if err != nil {
		return fmt.Errorf("marshal selection: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(selectionBucket))
		if bucket == nil {
			return fmt.Errorf("selection bucket is missing")
		}
		return bucket.Put([]byte(Key), payload)
	})
}
