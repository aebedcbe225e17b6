package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
	"github.com/custodia-labs/iajur-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore keeps the history log in a single JSON file.
type HistoryStore struct {
	mu   sync.Mutex
	path string
}

// NewHistoryStore creates a store in dataDir.
// If dataDir is empty, defaults to ~/.iajur/data.
func NewHistoryStore(dataDir string) (*HistoryStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".iajur", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &HistoryStore{
		path: filepath.Join(dataDir, driven.HistoryKey+".json"),
	}, nil
}

// Path returns the history file path.
func (s *HistoryStore) Path() string {
	return s.path
}

// Load reads the history file. A missing file is an empty log.
func (s *HistoryStore) Load(_ context.Context) ([]domain.Query, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.Query{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading history: %w", domain.ErrStorage, err)
	}

	if len(data) == 0 {
		return []domain.Query{}, nil
	}

	var entries []domain.Query
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: decoding history: %w", domain.ErrStorage, err)
	}
	if entries == nil {
		entries = []domain.Query{}
	}
	return entries, nil
}

// Save replaces the history file.
func (s *HistoryStore) Save(_ context.Context, entries []domain.Query) error {
	if entries == nil {
		entries = []domain.Query{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding history: %w", domain.ErrStorage, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".history-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %w", domain.ErrStorage, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing history: %w", domain.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing history: %w", domain.ErrStorage, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replacing history: %w", domain.ErrStorage, err)
	}
	return nil
}

// Close is a no-op; the file is not held open.
func (s *HistoryStore) Close() error {
	return nil
}
