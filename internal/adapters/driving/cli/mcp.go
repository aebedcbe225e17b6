package cli

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/mcp"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol integration",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve IA-JUR to MCP-compatible assistants",
	Long: `Serve the consult, history and metrics tools and the iajur://history
resources over the Model Context Protocol.

Without --port the server speaks JSON-RPC on stdio, which is what desktop
assistants expect:

  {
    "mcpServers": {
      "iajur": { "command": "/path/to/iajur", "args": ["mcp", "serve"] }
    }
  }

With --port it serves the streamable HTTP transport on localhost, which
is handy for the MCP Inspector:

  iajur mcp serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "serve HTTP on this port instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if mcpPort < 0 || mcpPort > 65535 {
		return fmt.Errorf("invalid port %d", mcpPort)
	}

	ctx := commandContext(cmd)
	if err := startController(ctx); err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Controller: controller,
		History:    historyService,
		Metrics:    metricsService,
		AppName:    appName,
	})
	if err != nil {
		return err
	}

	if mcpPort == 0 {
		return server.Run(ctx)
	}

	addr := net.JoinHostPort("localhost", strconv.Itoa(mcpPort))
	cmd.PrintErrf("MCP server listening on http://%s\n", addr)
	return server.RunHTTP(ctx, addr)
}
