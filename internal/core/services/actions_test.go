package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/iajur-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/iajur-cli/internal/core/domain"
	"github.com/custodia-labs/iajur-cli/internal/core/render"
)

var testIdentity = render.Identity{AppName: "IA-JUR", SystemName: "IA-JUR - Teste"}

type actionsFixture struct {
	answering *mockAnswering
	history   *HistoryService
	ctrl      *QueryController
	artifacts *mockArtifacts
	clipboard *mockClipboard
	actions   *HistoryActionService

	interactive domain.Query
	artifact    domain.Query
}

func newActionsFixture(t *testing.T) *actionsFixture {
	t.Helper()

	f := &actionsFixture{
		answering: &mockAnswering{resp: plainResponse("Resposta", 2, "wf-1")},
		artifacts: &mockArtifacts{content: map[string][]byte{
			"../consulta_(usucapiao).txt": []byte("conteúdo salvo"),
		}},
		clipboard: &mockClipboard{},
	}
	f.history = newTestHistory(memory.NewHistoryStore(), nil)
	f.ctrl = NewQueryController(f.answering, f.history, NewMetricsService(nil))
	f.actions = NewHistoryActionService(f.history, f.ctrl, f.artifacts, f.clipboard, testIdentity, t.TempDir())
	f.actions.now = func() time.Time { return fixedNow }

	ctx := context.Background()
	f.interactive = f.history.Record(ctx, "Pergunta gravada", plainResponse("Resposta gravada", 2, "wf-1"), 1.5)
	f.history.Reconcile(ctx, []domain.Artifact{{Name: "../consulta_(usucapiao).txt"}})
	for _, q := range f.history.List() {
		if q.IsArtifact() {
			f.artifact = q
		}
	}
	require.NotEmpty(t, f.artifact.ID)
	return f
}

func TestHistoryActionService_Repeat(t *testing.T) {
	f := newActionsFixture(t)

	outcome, err := f.actions.Repeat(context.Background(), f.interactive.ID)

	require.NoError(t, err)
	assert.Equal(t, "Pergunta gravada", outcome.Query.Question)
	assert.Equal(t, []string{"Pergunta gravada"}, f.answering.calls())
	assert.Len(t, f.history.List(), 3)
}

func TestHistoryActionService_Repeat_ArtifactRejected(t *testing.T) {
	f := newActionsFixture(t)

	_, err := f.actions.Repeat(context.Background(), f.artifact.ID)

	assert.ErrorIs(t, err, domain.ErrNotReplayable)
	assert.Empty(t, f.answering.calls())
}

func TestHistoryActionService_Repeat_NotFound(t *testing.T) {
	f := newActionsFixture(t)

	_, err := f.actions.Repeat(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryActionService_CopyQuestion(t *testing.T) {
	f := newActionsFixture(t)

	require.NoError(t, f.actions.CopyQuestion(context.Background(), f.interactive.ID))
	assert.Equal(t, []string{"Pergunta gravada"}, f.clipboard.copied)

	err := f.actions.CopyQuestion(context.Background(), f.artifact.ID)
	assert.ErrorIs(t, err, domain.ErrNotReplayable)
	assert.Len(t, f.clipboard.copied, 1)
}

func TestHistoryActionService_CopyQuestion_ClipboardError(t *testing.T) {
	f := newActionsFixture(t)
	f.clipboard.err = errors.New("no display")

	err := f.actions.CopyQuestion(context.Background(), f.interactive.ID)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no display")
}

func TestHistoryActionService_CopyAnswer(t *testing.T) {
	f := newActionsFixture(t)

	assert.ErrorIs(t, f.actions.CopyAnswer(context.Background(), nil), domain.ErrNoAnswer)

	outcome := &domain.QueryOutcome{Query: f.interactive}
	require.NoError(t, f.actions.CopyAnswer(context.Background(), outcome))
	require.Len(t, f.clipboard.copied, 1)
	assert.Equal(t, f.interactive.Body, f.clipboard.copied[0])
}

func TestHistoryActionService_CopyAnswer_NoClipboard(t *testing.T) {
	f := newActionsFixture(t)
	f.actions.clipboard = nil

	err := f.actions.CopyAnswer(context.Background(), &domain.QueryOutcome{Query: f.interactive})

	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestHistoryActionService_Transcript_Interactive(t *testing.T) {
	f := newActionsFixture(t)

	tr, err := f.actions.Transcript(context.Background(), f.interactive.ID)

	require.NoError(t, err)
	assert.Equal(t, "consulta_ia_jur_2024-05-02_"+f.interactive.ID+".txt", tr.Name)
	content := string(tr.Content)
	assert.Contains(t, content, "Pergunta: Pergunta gravada")
	assert.Contains(t, content, "Duração: 1.50s")
	assert.Contains(t, content, "Fontes: 2")
	assert.Contains(t, content, "Workflow ID: wf-1")
	assert.Contains(t, content, "Sistema: IA-JUR - Teste")
}

func TestHistoryActionService_Transcript_ArtifactDownloadsVerbatim(t *testing.T) {
	f := newActionsFixture(t)

	tr, err := f.actions.Transcript(context.Background(), f.artifact.ID)

	require.NoError(t, err)
	assert.Equal(t, "consulta_(usucapiao).txt", tr.Name)
	assert.Equal(t, []byte("conteúdo salvo"), tr.Content)
}

func TestHistoryActionService_Transcript_ArtifactDownloadError(t *testing.T) {
	f := newActionsFixture(t)
	f.artifacts.downloadErr = &domain.TransportError{StatusCode: 404}

	_, err := f.actions.Transcript(context.Background(), f.artifact.ID)

	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestHistoryActionService_CurrentTranscript(t *testing.T) {
	f := newActionsFixture(t)

	_, err := f.actions.CurrentTranscript(nil)
	assert.ErrorIs(t, err, domain.ErrNoAnswer)

	tr, err := f.actions.CurrentTranscript(&domain.QueryOutcome{Query: f.interactive})
	require.NoError(t, err)
	assert.Equal(t, "consulta_ia_jur_2024-05-02.txt", tr.Name)
	assert.Contains(t, string(tr.Content), "Resposta gravada")
	assert.NotContains(t, string(tr.Content), "Workflow ID")
}

func TestHistoryActionService_SaveTranscript(t *testing.T) {
	f := newActionsFixture(t)

	path, err := f.actions.SaveTranscript(&domain.Transcript{Name: "../../escape.txt", Content: []byte("abc")})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.actions.downloadDir, "escape.txt"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
}

func TestHistoryActionService_SaveTranscript_Invalid(t *testing.T) {
	f := newActionsFixture(t)

	_, err := f.actions.SaveTranscript(nil)
	assert.ErrorIs(t, err, domain.ErrNoAnswer)

	_, err = f.actions.SaveTranscript(&domain.Transcript{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClipboardCommand(t *testing.T) {
	found := func(string) (string, error) { return "/usr/bin/x", nil }
	missing := func(string) (string, error) { return "", errors.New("not found") }

	cmd, err := clipboardCommand(osDarwin, missing)
	require.NoError(t, err)
	assert.Equal(t, "pbcopy", filepath.Base(cmd.Path))

	cmd, err = clipboardCommand(osLinux, found)
	require.NoError(t, err)
	assert.Equal(t, []string{"xclip", "-selection", "clipboard"}, cmd.Args)

	_, err = clipboardCommand(osLinux, missing)
	assert.Error(t, err)

	cmd, err = clipboardCommand(osWindows, missing)
	require.NoError(t, err)
	assert.Equal(t, []string{"cmd", "/c", "clip"}, cmd.Args)

	_, err = clipboardCommand("plan9", found)
	assert.Error(t, err)
}
