package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
)

// seedHistory stores entries before the controller loads them.
func seedHistory(t *testing.T, env *testEnv) {
	t.Helper()
	at := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	entries := []domain.Query{
		{
			ID:              "q-1",
			Question:        "O que é usucapião?",
			Answer:          domain.PlainTextAnswer("Aquisição pela posse."),
			Body:            "Aquisição pela posse.",
			DurationSeconds: domain.Float(1.5),
			SourceCount:     domain.Int(2),
			WorkflowID:      domain.String("wf-1"),
			Timestamp:       at,
			Origin:          domain.InteractiveOrigin(),
		},
		{
			ID:        "q-2",
			Question:  "consulta_salva.txt",
			Timestamp: at.Add(-time.Hour),
			Origin: domain.ArtifactOrigin(domain.Artifact{
				Name:      "consulta_salva.txt",
				SizeBytes: 1024,
			}),
		},
	}
	require.NoError(t, env.store.Save(context.Background(), entries))
}

func TestHistoryCmd_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range historyCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"list", "show", "remove", "clear", "copy", "download", "sync"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestHistoryList_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "history", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Nenhuma consulta no histórico.")
}

func TestHistoryList_Entries(t *testing.T) {
	env := setupTestServices(t)
	seedHistory(t, env)

	out, err := execute(t, "", "history")

	require.NoError(t, err)
	assert.Contains(t, out, "Histórico (2):")
	assert.Contains(t, out, "q-1  O que é usucapião?")
	assert.Contains(t, out, "1.50s · 2 fontes")
	assert.Contains(t, out, "1.0 KB · salvo automaticamente")
}

func TestHistoryList_JSON(t *testing.T) {
	env := setupTestServices(t)
	seedHistory(t, env)

	out, err := execute(t, "", "history", "list", "--json")

	require.NoError(t, err)
	var entries []domain.Query
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.True(t, entries[1].IsArtifact())
}

func TestHistoryList_ReconcilesArtifacts(t *testing.T) {
	env := setupTestServices(t)
	env.artifacts.artifacts = []domain.Artifact{{Name: "nova.txt", SizeBytes: 512}}

	out, err := execute(t, "", "history", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "salvo automaticamente")
	require.Len(t, env.history.List(), 1)
	assert.Equal(t, "nova.txt", env.history.List()[0].Origin.ArtifactName)
}

func TestHistoryShow(t *testing.T) {
	env := setupTestServices(t)
	seedHistory(t, env)

	out, err := execute(t, "", "history", "show", "q-1")

	require.NoError(t, err)
	assert.Contains(t, out, "Pergunta:  O que é usucapião?")
	assert.Contains(t, out, "Workflow:  wf-1")
	assert.Contains(t, out, "Aquisição pela posse.")
}

func TestHistoryShow_NotFound(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "history", "show", "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryRemove(t *testing.T) {
	env := setupTestServices(t)
	seedHistory(t, env)

	out, err := execute(t, "", "history", "remove", "q-1")

	require.NoError(t, err)
	assert.Contains(t, out, "Removed: q-1")
	require.Len(t, env.history.List(), 1)
	assert.Equal(t, "q-2", env.history.List()[0].ID)
}

func TestHistoryClear_RequiresYesWithoutTerminal(t *testing.T) {
	env := setupTestServices(t)
	seedHistory(t, env)
	restore := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = restore })

	_, err := execute(t, "", "history", "clear")

	assert.ErrorIs(t, err, errClearNeedsConfirmation)
	assert.Len(t, env.history.List(), 2)
}

func TestHistoryClear_PromptDeclined(t *testing.T) {
	env := setupTestServices(t)
	seedHistory(t, env)
	restore := isTerminal
	isTerminal = func() bool { return true }
	t.Cleanup(func() { isTerminal = restore })

	out, err := execute(t, "n\n", "history", "clear")

	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.Len(t, env.history.List(), 2)
}

func TestHistoryClear_PromptAccepted(t *testing.T) {
	env := setupTestServices(t)
	seedHistory(t, env)
	restore := isTerminal
	isTerminal = func() bool { return true }
	t.Cleanup(func() { isTerminal = restore })

	out, err := execute(t, "sim\n", "history", "clear")

	require.NoError(t, err)
	assert.Contains(t, out, "Histórico limpo.")
	assert.Empty(t, env.history.List())
}

func TestHistoryClear_Yes(t *testing.T) {
	env := setupTestServices(t)
	seedHistory(t, env)

	_, err := execute(t, "", "history", "clear", "--yes")

	require.NoError(t, err)
	assert.Empty(t, env.history.List())
}

func TestHistoryCopy(t *testing.T) {
	env := setupTestServices(t)
	seedHistory(t, env)

	_, err := execute(t, "", "history", "copy", "q-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"O que é usucapião?"}, env.clipboard.copied)

	_, err = execute(t, "", "history", "copy", "q-2")
	assert.ErrorIs(t, err, domain.ErrNotReplayable)
}

func TestHistoryDownload_Interactive(t *testing.T) {
	env := setupTestServices(t)
	seedHistory(t, env)

	out, err := execute(t, "", "history", "download", "q-1")

	require.NoError(t, err)
	path := filepath.Join(env.dir, "consulta_ia_jur_2024-05-02_q-1.txt")
	assert.Contains(t, out, path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Workflow ID: wf-1")
}

func TestHistoryDownload_Artifact(t *testing.T) {
	env := setupTestServices(t)
	seedHistory(t, env)
	env.artifacts.content["consulta_salva.txt"] = []byte("conteúdo do servidor")

	_, err := execute(t, "", "history", "download", "q-2")

	require.NoError(t, err)
	content, err := os.ReadFile(filepath.Join(env.dir, "consulta_salva.txt"))
	require.NoError(t, err)
	assert.Equal(t, "conteúdo do servidor", string(content))
}

func TestHistorySync(t *testing.T) {
	env := setupTestServices(t)
	seedHistory(t, env)

	env.artifacts.artifacts = []domain.Artifact{{Name: "outra.txt", SizeBytes: 10}}

	out, err := execute(t, "", "history", "sync")

	require.NoError(t, err)
	assert.Contains(t, out, "Synced. 3 entries")
	assert.Equal(t, "outra.txt", env.history.List()[2].Origin.ArtifactName)
}
