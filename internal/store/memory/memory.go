// Package memory keeps the shared lists in plain slices.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vovakirdan/homeboard/internal/store"
)

// MemoryStore implements store.Store with mutex-guarded slices.
type MemoryStore struct {
	mu    sync.RWMutex
	lists map[store.List][]string
}

var _ store.Store = (*MemoryStore)(nil)

// New creates an empty in-memory store.
func New() *MemoryStore {
	lists := make(map[store.List][]string, len(store.Lists))
	for _, l := range store.Lists {
		lists[l] = nil
	}
	return &MemoryStore{lists: lists}
}

// Append adds value to the end of list l.
func (s *MemoryStore) Append(_ context.Context, l store.List, value string) error {
	if !l.Valid() {
		return fmt.Errorf("append %q: %w", l, store.ErrUnknownList)
	}

	s.mu.Lock()
	s.lists[l] = append(s.lists[l], value)
	s.mu.Unlock()
	return nil
}

// List returns a copy of list l.
func (s *MemoryStore) List(_ context.Context, l store.List) ([]string, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("list %q: %w", l, store.ErrUnknownList)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.lists[l]), nil
}

// Snapshot returns a copy of all lists taken under one lock.
func (s *MemoryStore) Snapshot(_ context.Context) (store.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var snap store.Snapshot
	for _, l := range store.Lists {
		snap.Set(l, clone(s.lists[l]))
	}
	return snap, nil
}

// Close is a no-op; the lists die with the process.
func (s *MemoryStore) Close() error {
	return nil
}

func clone(entries []string) []string {
	out := make([]string, len(entries))
	copy(out, entries)
	return out
}
