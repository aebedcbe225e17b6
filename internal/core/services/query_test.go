package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/iajur-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/iajur-cli/internal/core/domain"
)

// blockingAnswering holds Consult until release is closed.
type blockingAnswering struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingAnswering) Consult(ctx context.Context, _ string) (*domain.AnswerResponse, error) {
	close(b.started)
	select {
	case <-b.release:
		return plainResponse("ok", 1, "wf"), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type controllerFixture struct {
	answering *mockAnswering
	store     *memory.HistoryStore
	history   *HistoryService
	metrics   *MetricsService
	ctrl      *QueryController
}

func newControllerFixture(resp *domain.AnswerResponse) *controllerFixture {
	f := &controllerFixture{
		answering: &mockAnswering{resp: resp},
		store:     memory.NewHistoryStore(),
	}
	f.history = newTestHistory(f.store, nil)
	f.metrics = NewMetricsService(nil)
	f.ctrl = NewQueryController(f.answering, f.history, f.metrics)
	return f
}

func TestQueryController_InitialState(t *testing.T) {
	f := newControllerFixture(nil)

	assert.Equal(t, domain.StateIdle, f.ctrl.State())
	assert.Nil(t, f.ctrl.LastError())
	assert.Nil(t, f.ctrl.LastOutcome())
	assert.Empty(t, f.ctrl.LastQuestion())
}

func TestQueryController_Submit_Success(t *testing.T) {
	f := newControllerFixture(plainResponse("Texto simples", 2, "wf-42"))

	outcome, err := f.ctrl.Submit(context.Background(), "O que é usucapião?")

	require.NoError(t, err)
	require.NotNil(t, outcome)
	assert.Equal(t, domain.StateIdle, f.ctrl.State())
	assert.Same(t, outcome, f.ctrl.LastOutcome())

	require.Len(t, outcome.Blocks, 1)
	assert.Equal(t, domain.BlockText, outcome.Blocks[0].Kind)
	assert.Equal(t, domain.Markup("Texto simples"), outcome.Blocks[0].Content)
	assert.Equal(t, 2, outcome.SourceCount)
	assert.Equal(t, "wf-42", outcome.WorkflowID)
	assert.GreaterOrEqual(t, outcome.DurationSeconds, 0.0)

	list := f.history.List()
	require.Len(t, list, 1)
	assert.Equal(t, "O que é usucapião?", list[0].Question)
	assert.Equal(t, "2", list[0].SourcesLabel())
	assert.Equal(t, outcome.Query.ID, list[0].ID)

	snap := f.metrics.Snapshot()
	assert.Equal(t, 1, snap.TotalQueries)
	assert.Equal(t, 2, snap.TotalSources)
	assert.NotNil(t, snap.MeanDurationSeconds)

	assert.Equal(t, []string{"O que é usucapião?"}, f.answering.calls())
}

func TestQueryController_Submit_StructuredAnswer(t *testing.T) {
	disclaimer := "Consulte um advogado."
	resp := &domain.AnswerResponse{
		Answer: domain.StructuredAnswer(domain.AnswerDocument{
			ImmediateAnswer:  &domain.TextSection{Title: "Resposta", Content: "**Sim**"},
			ConsultedSources: &domain.SourcesSection{Title: "Fontes", Items: []string{"CC art. 1238"}},
			LegalDisclaimer:  &disclaimer,
		}),
		SourceCount: 1,
	}
	f := newControllerFixture(resp)

	outcome, err := f.ctrl.Submit(context.Background(), "Pergunta")

	require.NoError(t, err)
	require.Len(t, outcome.Blocks, 3)
	assert.Equal(t, domain.Markup("<strong>Sim</strong>"), outcome.Blocks[0].Content)
	assert.Equal(t, []string{"CC art. 1238"}, outcome.Blocks[1].Items)
	assert.Equal(t, domain.BlockNotice, outcome.Blocks[2].Kind)
	assert.Equal(t, domain.NotAvailable, outcome.WorkflowID)
}

func TestQueryController_Submit_TransportFailure(t *testing.T) {
	f := newControllerFixture(nil)
	f.answering.err = &domain.TransportError{StatusCode: 500}

	outcome, err := f.ctrl.Submit(context.Background(), "Pergunta")

	require.Error(t, err)
	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Contains(t, err.Error(), "500")

	assert.Equal(t, domain.StateFailed, f.ctrl.State())
	require.Error(t, f.ctrl.LastError())
	assert.Contains(t, f.ctrl.LastError().Error(), "500")
	assert.Nil(t, f.ctrl.LastOutcome())

	assert.Empty(t, f.history.List())
	assert.Equal(t, 0, f.store.SaveCount())
	assert.Equal(t, 0, f.metrics.Snapshot().TotalQueries)
}

func TestQueryController_Submit_FailedAcceptsNewSubmit(t *testing.T) {
	f := newControllerFixture(nil)
	f.answering.err = &domain.TransportError{StatusCode: 503}

	_, err := f.ctrl.Submit(context.Background(), "Pergunta")
	require.Error(t, err)
	require.True(t, f.ctrl.State().AcceptsSubmit())

	f.answering.err = nil
	f.answering.resp = plainResponse("ok", 1, "")

	_, err = f.ctrl.Submit(context.Background(), "Pergunta")
	require.NoError(t, err)
	assert.Equal(t, domain.StateIdle, f.ctrl.State())
	assert.Nil(t, f.ctrl.LastError())
}

func TestQueryController_Submit_EmptyInput(t *testing.T) {
	f := newControllerFixture(plainResponse("ok", 1, ""))

	for _, q := range []string{"", "   ", "\n\t"} {
		outcome, err := f.ctrl.Submit(context.Background(), q)
		assert.ErrorIs(t, err, domain.ErrEmptyInput)
		assert.Nil(t, outcome)
	}

	assert.Equal(t, domain.StateIdle, f.ctrl.State())
	assert.Empty(t, f.answering.calls())
	assert.Empty(t, f.history.List())
}

func TestQueryController_Submit_EmptyInputKeepsFailedState(t *testing.T) {
	f := newControllerFixture(nil)
	f.answering.err = &domain.TransportError{StatusCode: 500}
	_, _ = f.ctrl.Submit(context.Background(), "Pergunta")

	_, err := f.ctrl.Submit(context.Background(), " ")

	assert.ErrorIs(t, err, domain.ErrEmptyInput)
	assert.Equal(t, domain.StateFailed, f.ctrl.State())
	assert.Equal(t, "Pergunta", f.ctrl.LastQuestion())
}

func TestQueryController_Submit_ReportsSubmitting(t *testing.T) {
	answering := &blockingAnswering{started: make(chan struct{}), release: make(chan struct{})}
	ctrl := NewQueryController(answering, newTestHistory(memory.NewHistoryStore(), nil), NewMetricsService(nil))

	done := make(chan error, 1)
	go func() {
		_, err := ctrl.Submit(context.Background(), "Pergunta")
		done <- err
	}()

	<-answering.started
	assert.Equal(t, domain.StateSubmitting, ctrl.State())

	close(answering.release)
	require.NoError(t, <-done)
	assert.Equal(t, domain.StateIdle, ctrl.State())
}

func TestQueryController_Submit_MeasuresElapsed(t *testing.T) {
	f := newControllerFixture(plainResponse("ok", 0, ""))
	clock := []time.Time{fixedNow, fixedNow.Add(1234 * time.Millisecond)}
	f.ctrl.now = func() time.Time {
		next := clock[0]
		clock = clock[1:]
		return next
	}

	outcome, err := f.ctrl.Submit(context.Background(), "Pergunta")

	require.NoError(t, err)
	assert.InDelta(t, 1.23, outcome.DurationSeconds, 1e-9)
	assert.Equal(t, "1.23", outcome.DurationLabel())
	assert.Equal(t, "1.23", f.history.List()[0].DurationLabel())
}

func TestQueryController_Retry(t *testing.T) {
	f := newControllerFixture(nil)
	f.answering.err = &domain.TransportError{StatusCode: 500}
	_, _ = f.ctrl.Submit(context.Background(), "Pergunta original")

	f.answering.err = nil
	f.answering.resp = plainResponse("ok", 1, "")

	outcome, err := f.ctrl.Retry(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Pergunta original", outcome.Query.Question)
	assert.Equal(t, []string{"Pergunta original", "Pergunta original"}, f.answering.calls())
}

func TestQueryController_Retry_NothingToRetry(t *testing.T) {
	f := newControllerFixture(nil)

	_, err := f.ctrl.Retry(context.Background())

	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestQueryController_NewConsult(t *testing.T) {
	f := newControllerFixture(plainResponse("ok", 3, ""))
	_, err := f.ctrl.Submit(context.Background(), "Pergunta")
	require.NoError(t, err)

	f.ctrl.NewConsult()

	assert.Equal(t, domain.StateIdle, f.ctrl.State())
	assert.Nil(t, f.ctrl.LastOutcome())
	assert.Empty(t, f.ctrl.LastQuestion())
	assert.Len(t, f.history.List(), 1)
	assert.Equal(t, 1, f.metrics.Snapshot().TotalQueries)
}

func TestQueryController_Start_LoadsHistoryAndMetrics(t *testing.T) {
	store := memory.NewHistoryStore()
	seed := newTestHistory(store, nil)
	seed.Record(context.Background(), "antiga", plainResponse("r", 1, ""), 1)

	history := newTestHistory(store, &mockArtifacts{artifacts: []domain.Artifact{{Name: "x_(salva).txt"}}})
	metrics := NewMetricsService(&mockMetricsSource{remote: &domain.RemoteMetrics{Uptime: domain.String("1h")}})
	ctrl := NewQueryController(&mockAnswering{}, history, metrics)

	require.NoError(t, ctrl.Start(context.Background()))

	list := history.List()
	require.Len(t, list, 2)
	assert.Equal(t, "antiga", list[0].Question)
	assert.True(t, list[1].IsArtifact())
	assert.Equal(t, "1h", metrics.Snapshot().Uptime)
	assert.NoError(t, ctrl.Close())
}

func TestQueryController_Watcher_ReloadsOnChange(t *testing.T) {
	store := memory.NewHistoryStore()
	history := newTestHistory(store, nil)
	watcher := newMockWatcher()
	ctrl := NewQueryController(&mockAnswering{}, history, NewMetricsService(nil))
	ctrl.SetWatcher(watcher)

	require.NoError(t, ctrl.Start(context.Background()))
	assert.Empty(t, history.List())

	other := newTestHistory(store, nil)
	other.Record(context.Background(), "de outra janela", plainResponse("r", 1, ""), 1)
	watcher.ch <- struct{}{}

	assert.Eventually(t, func() bool {
		list := history.List()
		return len(list) == 1 && list[0].Question == "de outra janela"
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, ctrl.Close())
	assert.True(t, watcher.closed)
	assert.NoError(t, ctrl.Close())
}
