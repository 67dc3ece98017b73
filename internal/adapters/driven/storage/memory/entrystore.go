package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/otuscan/internal/core/domain"
	"github.com/custodia-labs/otuscan/internal/core/ports/driven"
)

// Ensure EntryStore implements the interface.
var _ driven.EntryStore = (*EntryStore)(nil)

// EntryStore is an in-memory implementation of driven.EntryStore.
// It backs queries run directly against an OTU table file.
type EntryStore struct {
	mu      sync.RWMutex
	entries []domain.OtuEntry
	info    *domain.DatabaseInfo
}

// NewEntryStore creates a new, empty in-memory entry store.
func NewEntryStore() *EntryStore {
	return &EntryStore{}
}

// ReplaceAll swaps the stored collection.
func (s *EntryStore) ReplaceAll(_ context.Context, entries []domain.OtuEntry, info domain.DatabaseInfo) error {
	cp := make([]domain.OtuEntry, len(entries))
	copy(cp, entries)

	if info.BuildID == "" {
		info.BuildID = uuid.New().String()
	}
	if info.Location == "" {
		info.Location = ":memory:"
	}
	info.Entries = len(cp)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = cp
	s.info = &info
	return nil
}

// All returns every stored entry in insertion order.
func (s *EntryStore) All(_ context.Context) ([]domain.OtuEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]domain.OtuEntry, len(s.entries))
	copy(cp, s.entries)
	return cp, nil
}

// Info returns the metadata of the current build.
func (s *EntryStore) Info(_ context.Context) (*domain.DatabaseInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.info == nil {
		return nil, domain.ErrNotFound
	}
	info := *s.info
	return &info, nil
}

// Count returns the number of stored entries.
func (s *EntryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

// Close is a no-op for the memory store.
func (s *EntryStore) Close() error {
	return nil
}
