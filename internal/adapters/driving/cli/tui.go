package cli

import (
	"bytes"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/iajur-cli/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for IA-JUR.

The TUI lets you ask questions, browse and download past answers,
follow usage metrics, and edit settings with keyboard navigation.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Submit / Select
  Esc      - Back
  q        - Quit (from the menu)`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctx := commandContext(cmd)
	if err := startController(ctx); err != nil {
		return err
	}

	ports := tui.NewPorts(controller, historyService, metricsService, actionService)
	ports.Settings = settingsService
	ports.AppName = appName

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	// Log lines are held back while the alternate screen is active.
	var held bytes.Buffer
	restore := logger.Redirect(&held)
	defer func() {
		restore()
		if held.Len() > 0 {
			cmd.PrintErr(held.String())
		}
	}()

	if err := app.WithContext(ctx).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
