package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/iajur-cli/internal/logger"
)

// execute runs the root command with args and returns its output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "iajur", rootCmd.Use)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config-dir"))
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"ask", "retry", "history", "metrics", "config", "tui", "mcp", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestBootstrap_UsesConfigDir(t *testing.T) {
	SetServices(nil)
	t.Cleanup(func() {
		SetBootstrap(nil)
		SetServices(nil)
		configDir = ""
		verbose = false
		logger.SetVerbose(false)
	})

	var gotDir string
	closed := false
	SetBootstrap(func(_ context.Context, dir string) (*Services, error) {
		gotDir = dir
		env := setupTestServices(t)
		s := &Services{
			Controller: controller,
			History:    env.history,
			Metrics:    metricsService,
			Actions:    actionService,
			Settings:   settingsService,
			Close: func() error {
				closed = true
				return nil
			},
		}
		SetServices(nil)
		return s, nil
	})

	out, err := execute(t, "", "--config-dir", "/tmp/iajur-test", "--verbose", "history", "list")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/iajur-test", gotDir)
	assert.True(t, logger.IsVerbose())
	assert.True(t, closed)
	assert.Contains(t, out, "Nenhuma consulta no histórico.")
}

func TestBootstrap_Error(t *testing.T) {
	SetServices(nil)
	SetBootstrap(func(_ context.Context, _ string) (*Services, error) {
		return nil, errors.New("open history: locked")
	})
	t.Cleanup(func() { SetBootstrap(nil) })

	_, err := execute(t, "", "metrics")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "initialise: open history: locked")
}

func TestBootstrap_SkippedForVersion(t *testing.T) {
	SetServices(nil)
	called := false
	SetBootstrap(func(_ context.Context, _ string) (*Services, error) {
		called = true
		return nil, errors.New("unreachable")
	})
	t.Cleanup(func() { SetBootstrap(nil) })

	_, err := execute(t, "", "version")

	require.NoError(t, err)
	assert.False(t, called)
}

func TestCommands_WithoutServices(t *testing.T) {
	SetServices(nil)

	for _, args := range [][]string{
		{"ask", "pergunta"},
		{"history", "list"},
		{"metrics"},
		{"config", "show"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := execute(t, "", args...)
			assert.ErrorIs(t, err, errNotConfigured)
		})
	}
}
