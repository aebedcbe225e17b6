package mcp

import (
	"context"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
)

// mockController is a mock implementation of driving.QueryController.
type mockController struct {
	outcome   *domain.QueryOutcome
	err       error
	questions []string
}

func (m *mockController) Start(_ context.Context) error {
	return nil
}

func (m *mockController) Submit(_ context.Context, question string) (*domain.QueryOutcome, error) {
	m.questions = append(m.questions, question)
	return m.outcome, m.err
}

func (m *mockController) Retry(_ context.Context) (*domain.QueryOutcome, error) {
	return m.outcome, m.err
}

func (m *mockController) NewConsult() {}

func (m *mockController) State() domain.ControllerState {
	return domain.StateIdle
}

func (m *mockController) LastError() error {
	return m.err
}

func (m *mockController) LastOutcome() *domain.QueryOutcome {
	return m.outcome
}

func (m *mockController) LastQuestion() string {
	if len(m.questions) == 0 {
		return ""
	}
	return m.questions[len(m.questions)-1]
}

func (m *mockController) Close() error {
	return nil
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	entries []domain.Query
}

func (m *mockHistoryService) Load(_ context.Context) []domain.Query {
	return m.entries
}

func (m *mockHistoryService) Reload(_ context.Context) []domain.Query {
	return m.entries
}

func (m *mockHistoryService) Sync(_ context.Context) error {
	return nil
}

func (m *mockHistoryService) Reconcile(_ context.Context, _ []domain.Artifact) int {
	return 0
}

func (m *mockHistoryService) Record(
	_ context.Context,
	question string,
	_ *domain.AnswerResponse,
	_ float64,
) domain.Query {
	return domain.Query{Question: question}
}

func (m *mockHistoryService) Clear(_ context.Context) {
	m.entries = nil
}

func (m *mockHistoryService) Remove(_ context.Context, _ string) error {
	return nil
}

func (m *mockHistoryService) Lookup(id string) (*domain.Query, error) {
	for i := range m.entries {
		if m.entries[i].ID == id {
			q := m.entries[i]
			return &q, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockHistoryService) List() []domain.Query {
	out := make([]domain.Query, len(m.entries))
	copy(out, m.entries)
	return out
}

// mockMetricsService is a mock implementation of driving.MetricsService.
type mockMetricsService struct {
	snapshot  domain.MetricsSnapshot
	refreshed int
}

func (m *mockMetricsService) Recompute(_ []domain.Query, _ float64, _ int) domain.MetricsSnapshot {
	return m.snapshot
}

func (m *mockMetricsService) RefreshFromRemote(_ context.Context) domain.MetricsSnapshot {
	m.refreshed++
	return m.snapshot
}

func (m *mockMetricsService) Snapshot() domain.MetricsSnapshot {
	return m.snapshot
}

func validPorts() *Ports {
	return &Ports{
		Controller: &mockController{},
		History:    &mockHistoryService{},
	}
}
