package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
	"github.com/custodia-labs/iajur-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
// It keeps the encoded document so callers never share slices with it.
type HistoryStore struct {
	mu    sync.RWMutex
	doc   []byte
	saves int
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Load decodes the stored document.
func (s *HistoryStore) Load(_ context.Context) ([]domain.Query, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.doc == nil {
		return []domain.Query{}, nil
	}

	var entries []domain.Query
	if err := json.Unmarshal(s.doc, &entries); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return entries, nil
}

// Save encodes and replaces the stored document.
func (s *HistoryStore) Save(_ context.Context, entries []domain.Query) error {
	if entries == nil {
		entries = []domain.Query{}
	}
	doc, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.saves++
	return nil
}

// SaveCount returns how many times Save succeeded.
func (s *HistoryStore) SaveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// SetRaw replaces the stored document with raw bytes.
func (s *HistoryStore) SetRaw(doc []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = append([]byte(nil), doc...)
}

// Close is a no-op for the memory store.
func (s *HistoryStore) Close() error {
	return nil
}
