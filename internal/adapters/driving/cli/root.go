// Package cli provides the cobra command tree for the iajur binary.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/iajur-cli/internal/core/ports/driving"
	"github.com/custodia-labs/iajur-cli/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services holds the driving ports used by commands.
type Services struct {
	Controller driving.QueryController
	History    driving.HistoryService
	Metrics    driving.MetricsService
	Actions    driving.HistoryActionService
	Settings   driving.SettingsService

	// AppName is shown in titles and the MCP implementation name.
	AppName string

	// Close releases stores and watchers. May be nil.
	Close func() error
}

// Bootstrap builds the services for a config directory. Empty means the
// default directory.
type Bootstrap func(ctx context.Context, configDir string) (*Services, error)

var (
	bootstrap Bootstrap

	controller      driving.QueryController
	historyService  driving.HistoryService
	metricsService  driving.MetricsService
	actionService   driving.HistoryActionService
	settingsService driving.SettingsService
	appName         string
	closeServices   func() error

	// started is set once the controller has loaded history for this run.
	started bool

	verbose   bool
	configDir string
)

// errNotConfigured is returned when a command runs without wired services.
var errNotConfigured = errors.New("service not configured")

// skipBootstrap marks commands that never touch services.
const skipBootstrap = "skip-bootstrap"

var rootCmd = &cobra.Command{
	Use:   "iajur",
	Short: "IA-JUR legal research client",
	Long: `iajur is a client for the IA-JUR legal research service.

Ask questions in natural language, browse and download past answers,
and follow usage metrics from the terminal, the interactive TUI, or
an MCP-compatible assistant.`,
	SilenceUsage:       true,
	PersistentPreRunE:  runBootstrap,
	PersistentPostRunE: runShutdown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.iajur)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that wires services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices wires services directly.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	controller = s.Controller
	historyService = s.History
	metricsService = s.Metrics
	actionService = s.Actions
	settingsService = s.Settings
	appName = s.AppName
	closeServices = s.Close
	started = false
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[skipBootstrap] == "true" || bootstrap == nil || controller != nil {
		return nil
	}

	s, err := bootstrap(cmd.Context(), configDir)
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(s)
	return nil
}

func runShutdown(_ *cobra.Command, _ []string) error {
	return Shutdown()
}

// Shutdown closes the controller and services. Safe to call more than once.
func Shutdown() error {
	var errs []error
	if controller != nil && started {
		errs = append(errs, controller.Close())
		started = false
	}
	if closeServices != nil {
		errs = append(errs, closeServices())
		closeServices = nil
	}
	return errors.Join(errs...)
}

// startController loads history and metrics once per run.
func startController(ctx context.Context) error {
	if controller == nil {
		return fmt.Errorf("query controller: %w", errNotConfigured)
	}
	if started {
		return nil
	}
	if err := controller.Start(ctx); err != nil {
		return err
	}
	started = true
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
