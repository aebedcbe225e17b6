package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServeCmd_Flags(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"mcp", "serve"})

	require.NoError(t, err)
	assert.Equal(t, "serve", cmd.Name())
	port := cmd.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "p", port.Shorthand)
	assert.Equal(t, "0", port.DefValue)
}

func TestMCPServe_InvalidPort(t *testing.T) {
	setupTestServices(t)
	t.Cleanup(func() { mcpPort = 0 })

	_, err := execute(t, "", "mcp", "serve", "--port", "70000")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port 70000")
}

func TestMCPServe_WithoutServices(t *testing.T) {
	SetServices(nil)
	t.Cleanup(func() { mcpPort = 0 })

	_, err := execute(t, "", "mcp", "serve", "--port", "0")

	assert.ErrorIs(t, err, errNotConfigured)
}
