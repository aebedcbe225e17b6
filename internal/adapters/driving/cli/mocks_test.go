package cli

import (
	"context"
	"testing"

	"github.com/custodia-labs/iajur-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/iajur-cli/internal/core/domain"
	"github.com/custodia-labs/iajur-cli/internal/core/render"
	"github.com/custodia-labs/iajur-cli/internal/core/services"
)

// stubAnswering implements driven.AnsweringService for CLI tests.
type stubAnswering struct {
	resp      *domain.AnswerResponse
	err       error
	questions []string
}

func (s *stubAnswering) Consult(_ context.Context, question string) (*domain.AnswerResponse, error) {
	s.questions = append(s.questions, question)
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

// stubArtifacts implements driven.ArtifactSource for CLI tests.
type stubArtifacts struct {
	artifacts []domain.Artifact
	content   map[string][]byte
}

func (s *stubArtifacts) ListArtifacts(_ context.Context) ([]domain.Artifact, error) {
	return s.artifacts, nil
}

func (s *stubArtifacts) DownloadArtifact(_ context.Context, name string) ([]byte, error) {
	c, ok := s.content[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// stubMetrics implements driven.MetricsSource for CLI tests.
type stubMetrics struct {
	remote *domain.RemoteMetrics
}

func (s *stubMetrics) FetchMetrics(_ context.Context) (*domain.RemoteMetrics, error) {
	if s.remote == nil {
		return nil, domain.ErrTransport
	}
	return s.remote, nil
}

// stubClipboard implements driven.Clipboard for CLI tests.
type stubClipboard struct {
	copied []string
}

func (s *stubClipboard) Copy(text string) error {
	s.copied = append(s.copied, text)
	return nil
}

// testEnv is a fully wired service graph over in-memory stores.
type testEnv struct {
	answering *stubAnswering
	artifacts *stubArtifacts
	metrics   *stubMetrics
	clipboard *stubClipboard
	store     *memory.HistoryStore
	config    *memory.ConfigStore
	history   *services.HistoryService
	dir       string
}

func plainResponse(text string) *domain.AnswerResponse {
	return &domain.AnswerResponse{
		Answer:      domain.PlainTextAnswer(text),
		SourceCount: 2,
		WorkflowID:  "wf-1",
	}
}

// setupTestServices wires services over in-memory stores and resets flags.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		answering: &stubAnswering{resp: plainResponse("Resposta **firme**.")},
		artifacts: &stubArtifacts{content: map[string][]byte{}},
		metrics:   &stubMetrics{},
		clipboard: &stubClipboard{},
		store:     memory.NewHistoryStore(),
		config:    memory.NewConfigStore(),
		dir:       t.TempDir(),
	}

	env.history = services.NewHistoryService(env.store, env.artifacts)
	metrics := services.NewMetricsService(env.metrics)
	ctrl := services.NewQueryController(env.answering, env.history, metrics)
	identity := render.Identity{AppName: domain.DefaultAppName, SystemName: domain.DefaultSystemName}
	actions := services.NewHistoryActionService(env.history, ctrl, env.artifacts, env.clipboard, identity, env.dir)

	SetServices(&Services{
		Controller: ctrl,
		History:    env.history,
		Metrics:    metrics,
		Actions:    actions,
		Settings:   services.NewSettingsService(env.config),
		AppName:    domain.DefaultAppName,
	})

	askJSON, askSave, askCopy = false, false, false
	historyJSON, historyYes = false, false
	metricsJSON = false

	t.Cleanup(func() {
		_ = Shutdown()
		SetServices(nil)
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})
	return env
}
