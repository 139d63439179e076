// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package selection

import (
	"context"
	"errors"
	"sync"
)

// Key is the fixed key the selected creature name is stored under.
const Key = "selectedPokemon"

var ErrClosed = errors.New("selection store is closed")

// Store is a durable cell holding the selected creature name.
// Get reports ok=false when nothing was ever stored. An empty name is a
// valid stored value meaning "no selection".
type Store interface {
	Get(ctx context.Context) (name string, ok bool, err error)
	Set(ctx context.Context, name string) error
}

// MemoryStore keeps the selection in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	name   string
	set    bool
	writes int
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the stored selection. ok is false before the first Set.
func (s *MemoryStore) Get(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name, s.set, nil
}

// Set stores name.
func (s *MemoryStore) Set(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name, s.set = name, true
	s.writes++
	return nil
}

// Writes returns how many times Set succeeded.
func (s *MemoryStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
