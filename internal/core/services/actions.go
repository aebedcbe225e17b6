package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
	"github.com/custodia-labs/iajur-cli/internal/core/ports/driven"
	"github.com/custodia-labs/iajur-cli/internal/core/ports/driving"
	"github.com/custodia-labs/iajur-cli/internal/core/render"
	"github.com/custodia-labs/iajur-cli/internal/logger"
)

// Ensure HistoryActionService implements the interface.
var _ driving.HistoryActionService = (*HistoryActionService)(nil)

// HistoryActionService provides repeat, copy and download actions on
// history entries and the answer on screen.
type HistoryActionService struct {
	history    driving.HistoryService
	controller driving.QueryController
	artifacts  driven.ArtifactSource
	clipboard  driven.Clipboard

	identity    render.Identity
	downloadDir string
	now         func() time.Time
}

// NewHistoryActionService creates a new history action service.
// artifacts and clipboard may be nil.
func NewHistoryActionService(
	history driving.HistoryService,
	controller driving.QueryController,
	artifacts driven.ArtifactSource,
	clipboard driven.Clipboard,
	identity render.Identity,
	downloadDir string,
) *HistoryActionService {
	return &HistoryActionService{
		history:     history,
		controller:  controller,
		artifacts:   artifacts,
		clipboard:   clipboard,
		identity:    identity,
		downloadDir: downloadDir,
		now:         time.Now,
	}
}

// Repeat resubmits an interactive entry's question.
func (s *HistoryActionService) Repeat(ctx context.Context, id string) (*domain.QueryOutcome, error) {
	q, err := s.interactive(id)
	if err != nil {
		return nil, err
	}
	if s.controller == nil {
		return nil, fmt.Errorf("repeat: %w", domain.ErrServiceUnavailable)
	}
	return s.controller.Submit(ctx, q.Question)
}

// CopyQuestion copies an interactive entry's question to the clipboard.
func (s *HistoryActionService) CopyQuestion(_ context.Context, id string) error {
	q, err := s.interactive(id)
	if err != nil {
		return err
	}
	return s.copy(q.Question)
}

// CopyAnswer copies the flattened answer of an outcome to the clipboard.
func (s *HistoryActionService) CopyAnswer(_ context.Context, outcome *domain.QueryOutcome) error {
	if outcome == nil {
		return domain.ErrNoAnswer
	}
	body := outcome.Query.Body
	if body == "" {
		body = render.Flatten(outcome.Query.Answer, outcome.Query.Question)
	}
	return s.copy(body)
}

// Transcript builds the downloadable document for a history entry.
func (s *HistoryActionService) Transcript(ctx context.Context, id string) (*domain.Transcript, error) {
	q, err := s.history.Lookup(id)
	if err != nil {
		return nil, err
	}

	if !q.IsArtifact() {
		t := render.HistoryTranscript(s.identity, *q)
		return &t, nil
	}

	if s.artifacts == nil {
		return nil, fmt.Errorf("download artifact: %w", domain.ErrServiceUnavailable)
	}
	content, err := s.artifacts.DownloadArtifact(ctx, q.Origin.ArtifactName)
	if err != nil {
		return nil, fmt.Errorf("download artifact %s: %w", q.Origin.ArtifactName, err)
	}
	return &domain.Transcript{
		Name:    filepath.Base(q.Origin.ArtifactName),
		Content: content,
	}, nil
}

// CurrentTranscript builds the downloadable document for an outcome.
func (s *HistoryActionService) CurrentTranscript(outcome *domain.QueryOutcome) (*domain.Transcript, error) {
	if outcome == nil {
		return nil, domain.ErrNoAnswer
	}
	body := outcome.Query.Body
	if body == "" {
		body = render.Flatten(outcome.Query.Answer, outcome.Query.Question)
	}
	t := render.CurrentTranscript(s.identity, outcome.Query.Question, body, s.now())
	return &t, nil
}

// SaveTranscript writes a transcript into the download directory.
func (s *HistoryActionService) SaveTranscript(t *domain.Transcript) (string, error) {
	if t == nil {
		return "", domain.ErrNoAnswer
	}

	name := filepath.Base(t.Name)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", fmt.Errorf("%w: transcript name %q", domain.ErrInvalidInput, t.Name)
	}

	dir := s.downloadDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, t.Content, 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}

	logger.Info("saved %s (%d bytes)", path, len(t.Content))
	return path, nil
}

// interactive looks up an entry and rejects artifacts.
func (s *HistoryActionService) interactive(id string) (*domain.Query, error) {
	q, err := s.history.Lookup(id)
	if err != nil {
		return nil, err
	}
	if q.IsArtifact() {
		return nil, domain.ErrNotReplayable
	}
	return q, nil
}

func (s *HistoryActionService) copy(text string) error {
	if s.clipboard == nil {
		return fmt.Errorf("clipboard: %w", domain.ErrServiceUnavailable)
	}
	if err := s.clipboard.Copy(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
