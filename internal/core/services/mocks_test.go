package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
)

// --- Mock implementations ---

// mockAnswering implements driven.AnsweringService for testing.
type mockAnswering struct {
	mu        sync.Mutex
	resp      *domain.AnswerResponse
	err       error
	questions []string
}

func (m *mockAnswering) Consult(_ context.Context, question string) (*domain.AnswerResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions = append(m.questions, question)
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func (m *mockAnswering) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.questions...)
}

// mockArtifacts implements driven.ArtifactSource for testing.
type mockArtifacts struct {
	artifacts   []domain.Artifact
	listErr     error
	content     map[string][]byte
	downloadErr error
}

func (m *mockArtifacts) ListArtifacts(_ context.Context) ([]domain.Artifact, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.artifacts, nil
}

func (m *mockArtifacts) DownloadArtifact(_ context.Context, name string) ([]byte, error) {
	if m.downloadErr != nil {
		return nil, m.downloadErr
	}
	content, ok := m.content[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return content, nil
}

// mockMetricsSource implements driven.MetricsSource for testing.
type mockMetricsSource struct {
	remote *domain.RemoteMetrics
	err    error
}

func (m *mockMetricsSource) FetchMetrics(_ context.Context) (*domain.RemoteMetrics, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.remote, nil
}

// mockClipboard implements driven.Clipboard for testing.
type mockClipboard struct {
	copied []string
	err    error
}

func (m *mockClipboard) Copy(text string) error {
	if m.err != nil {
		return m.err
	}
	m.copied = append(m.copied, text)
	return nil
}

// mockWatcher implements driven.HistoryWatcher for testing.
type mockWatcher struct {
	ch     chan struct{}
	closed bool
}

func newMockWatcher() *mockWatcher {
	return &mockWatcher{ch: make(chan struct{}, 1)}
}

func (m *mockWatcher) Changes() <-chan struct{} {
	return m.ch
}

func (m *mockWatcher) Close() error {
	m.closed = true
	return nil
}

// failingHistoryStore implements driven.HistoryStore and always fails.
type failingHistoryStore struct{}

var errDiskFull = errors.New("disk full")

func (failingHistoryStore) Load(_ context.Context) ([]domain.Query, error) {
	return nil, errDiskFull
}

func (failingHistoryStore) Save(_ context.Context, _ []domain.Query) error {
	return errDiskFull
}

func (failingHistoryStore) Close() error {
	return nil
}

// plainResponse builds a plain-text answer response.
func plainResponse(text string, sources int, workflow string) *domain.AnswerResponse {
	return &domain.AnswerResponse{
		Answer:      domain.PlainTextAnswer(text),
		SourceCount: sources,
		WorkflowID:  workflow,
	}
}
