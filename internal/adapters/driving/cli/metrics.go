package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var metricsJSON bool

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show usage metrics",
	Long: `Shows the usage metrics, refreshed from the server when it is
reachable. Local values are kept for anything the server omits.`,
	Args: cobra.NoArgs,
	RunE: runMetrics,
}

func init() {
	metricsCmd.Flags().BoolVar(&metricsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(metricsCmd)
}

func runMetrics(cmd *cobra.Command, _ []string) error {
	if metricsService == nil {
		return fmt.Errorf("metrics service: %w", errNotConfigured)
	}
	if err := startController(commandContext(cmd)); err != nil {
		return err
	}

	s := metricsService.Snapshot()
	if metricsJSON {
		return printJSON(cmd, s)
	}

	cmd.Printf("Total de consultas:     %d\n", s.TotalQueries)
	cmd.Printf("Consultas de pesquisa:  %d\n", s.ResearchQueries)
	cmd.Printf("Tempo médio (s):        %s\n", s.MeanLabel())
	cmd.Printf("Fontes consultadas:     %d\n", s.TotalSources)
	if s.Uptime != "" {
		cmd.Printf("Uptime:                 %s\n", s.Uptime)
	}
	return nil
}
