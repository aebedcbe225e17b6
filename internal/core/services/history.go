package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
	"github.com/custodia-labs/iajur-cli/internal/core/ports/driven"
	"github.com/custodia-labs/iajur-cli/internal/core/ports/driving"
	"github.com/custodia-labs/iajur-cli/internal/core/render"
	"github.com/custodia-labs/iajur-cli/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService owns the history log: most recent first, at most
// domain.MaxHistoryEntries long, with at most one entry per artifact name.
// Every mutation persists the whole log. Persistence is best-effort.
type HistoryService struct {
	mu        sync.Mutex
	store     driven.HistoryStore
	artifacts driven.ArtifactSource
	entries   []domain.Query

	newID func() string
	now   func() time.Time
}

// NewHistoryService creates a history service. artifacts may be nil.
func NewHistoryService(store driven.HistoryStore, artifacts driven.ArtifactSource) *HistoryService {
	return &HistoryService{
		store:     store,
		artifacts: artifacts,
		entries:   []domain.Query{},
		newID:     newQueryID,
		now:       time.Now,
	}
}

// newQueryID returns a UUIDv7: time-ordered with random low bits.
func newQueryID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Load reads the stored log and reconciles it with the server's artifacts.
func (s *HistoryService) Load(ctx context.Context) []domain.Query {
	logger.Section("History Load")

	s.Reload(ctx)

	if err := s.Sync(ctx); err != nil {
		logger.Warn("artifact listing failed: %v", err)
	}

	return s.List()
}

// Reload replaces the in-memory log with the stored one. A corrupt or
// unreadable document yields an empty log.
func (s *HistoryService) Reload(ctx context.Context) []domain.Query {
	entries, err := s.store.Load(ctx)
	if err != nil {
		logger.Error("load history: %v", err)
		entries = []domain.Query{}
	}
	if len(entries) > domain.MaxHistoryEntries {
		entries = entries[:domain.MaxHistoryEntries]
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	logger.Debug("history loaded: %d entries", len(entries))
	return s.List()
}

// Sync fetches the server's artifact list and reconciles it.
func (s *HistoryService) Sync(ctx context.Context) error {
	if s.artifacts == nil {
		return nil
	}

	artifacts, err := s.artifacts.ListArtifacts(ctx)
	if err != nil {
		return fmt.Errorf("list artifacts: %w", err)
	}

	added := s.Reconcile(ctx, artifacts)
	logger.Debug("reconciled %d artifacts, %d new", len(artifacts), added)
	return nil
}

// Reconcile appends an entry for every artifact whose name is not in the
// log yet, in the order given. Existing entries are never touched.
func (s *HistoryService) Reconcile(ctx context.Context, artifacts []domain.Artifact) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	known := make(map[string]struct{}, len(s.entries))
	for i := range s.entries {
		if s.entries[i].IsArtifact() {
			known[s.entries[i].Origin.ArtifactName] = struct{}{}
		}
	}

	added := 0
	for _, a := range artifacts {
		if _, ok := known[a.Name]; ok {
			continue
		}
		known[a.Name] = struct{}{}

		ts := a.ModifiedTime()
		if ts.IsZero() {
			ts = s.now()
		}
		s.entries = append(s.entries, domain.Query{
			ID:        s.newID(),
			Question:  domain.QuestionFromArtifactName(a.Name),
			Answer:    domain.PlainTextAnswer(domain.ArtifactPlaceholderBody),
			Body:      domain.ArtifactPlaceholderBody,
			Timestamp: ts,
			Origin:    domain.ArtifactOrigin(a),
		})
		added++
	}

	if added == 0 {
		return 0
	}

	s.truncate()
	s.persist(ctx)
	return added
}

// Record prepends an interactive entry and returns it.
func (s *HistoryService) Record(
	ctx context.Context,
	question string,
	resp *domain.AnswerResponse,
	durationSeconds float64,
) domain.Query {
	if resp == nil {
		resp = &domain.AnswerResponse{}
	}

	q := domain.Query{
		ID:              s.newID(),
		Question:        question,
		Answer:          resp.Answer,
		Body:            render.Flatten(resp.Answer, question),
		DurationSeconds: domain.Float(durationSeconds),
		SourceCount:     domain.Int(resp.SourceCount),
		Timestamp:       s.now().UTC(),
		WorkflowID:      domain.String(resp.WorkflowOrDefault()),
		Origin:          domain.InteractiveOrigin(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]domain.Query{q}, s.entries...)
	s.truncate()
	s.persist(ctx)

	return q
}

// Clear empties the log.
func (s *HistoryService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = []domain.Query{}
	s.persist(ctx)
	logger.Info("history cleared")
}

// Remove deletes one entry by id.
func (s *HistoryService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return fmt.Errorf("history entry %s: %w", id, domain.ErrNotFound)
}

// Lookup returns a copy of one entry by id.
func (s *HistoryService) Lookup(id string) (*domain.Query, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			q := s.entries[i]
			return &q, nil
		}
	}
	return nil, fmt.Errorf("history entry %s: %w", id, domain.ErrNotFound)
}

// List returns a copy of the log.
func (s *HistoryService) List() []domain.Query {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Query, len(s.entries))
	copy(out, s.entries)
	return out
}

// truncate drops the oldest entries beyond the bound (caller holds lock).
func (s *HistoryService) truncate() {
	if len(s.entries) > domain.MaxHistoryEntries {
		s.entries = s.entries[:domain.MaxHistoryEntries]
	}
}

// persist writes the whole log (caller holds lock). Failures are logged.
func (s *HistoryService) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.entries); err != nil {
		logger.Error("save history: %v", err)
	}
}
