package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
	"github.com/custodia-labs/iajur-cli/internal/core/render"
)

var (
	historyJSON bool
	historyYes  bool
)

// isTerminal reports whether stdin is interactive.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var errClearNeedsConfirmation = errors.New("refusing to clear history without confirmation; pass --yes")

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the consult history",
	Long: `List, inspect, repeat, download, or remove past consults.

The history keeps the 50 most recent entries. Answers saved on the
server are merged in automatically.`,
	RunE: runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List history entries",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one history entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove one history entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryRemove,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every history entry",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

var historyCopyCmd = &cobra.Command{
	Use:   "copy [id]",
	Short: "Copy a question to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryCopy,
}

var historyDownloadCmd = &cobra.Command{
	Use:   "download [id]",
	Short: "Save a transcript of a history entry",
	Long: `Saves a transcript of an interactive entry, or the server copy of a
saved answer, into the download directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistoryDownload,
}

var historySyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Merge answers saved on the server",
	Args:  cobra.NoArgs,
	RunE:  runHistorySync,
}

func init() {
	historyCmd.PersistentFlags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyClearCmd.Flags().BoolVarP(&historyYes, "yes", "y", false, "do not ask for confirmation")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyRemoveCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyCopyCmd)
	historyCmd.AddCommand(historyDownloadCmd)
	historyCmd.AddCommand(historySyncCmd)
	rootCmd.AddCommand(historyCmd)
}

func requireHistory(cmd *cobra.Command) error {
	if historyService == nil {
		return fmt.Errorf("history service: %w", errNotConfigured)
	}
	return startController(commandContext(cmd))
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if err := requireHistory(cmd); err != nil {
		return err
	}

	entries := historyService.List()
	if historyJSON {
		return printJSON(cmd, entries)
	}

	if len(entries) == 0 {
		cmd.Println("Nenhuma consulta no histórico.")
		return nil
	}

	cmd.Printf("Histórico (%d):\n\n", len(entries))
	for i := range entries {
		q := &entries[i]
		cmd.Printf("  %s  %s\n", q.ID, q.ListingQuestion())
		cmd.Printf("      %s\n", render.EntryDetails(q))
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if err := requireHistory(cmd); err != nil {
		return err
	}

	q, err := historyService.Lookup(args[0])
	if err != nil {
		return fmt.Errorf("history entry %s: %w", args[0], err)
	}
	if historyJSON {
		return printJSON(cmd, q)
	}

	cmd.Printf("ID:        %s\n", q.ID)
	cmd.Printf("Pergunta:  %s\n", q.Question)
	cmd.Printf("Data:      %s\n", render.EntryDetails(q))
	if !q.IsArtifact() {
		cmd.Printf("Workflow:  %s\n", q.WorkflowLabel())
	}
	cmd.Println()

	body := q.Body
	if body == "" {
		body = render.Flatten(q.Answer, q.Question)
	}
	if body == "" {
		body = "(resposta disponível via download)"
	}
	cmd.Println(body)
	return nil
}

func runHistoryRemove(cmd *cobra.Command, args []string) error {
	if err := requireHistory(cmd); err != nil {
		return err
	}
	if err := historyService.Remove(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("remove %s: %w", args[0], err)
	}
	cmd.Printf("Removed: %s\n", args[0])
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if err := requireHistory(cmd); err != nil {
		return err
	}

	if !historyYes {
		if !isTerminal() {
			return errClearNeedsConfirmation
		}
		cmd.Print("Tem certeza que deseja limpar todo o histórico? [y/N]: ")
		answer := readLine(bufio.NewReader(cmd.InOrStdin()))
		if !confirmed(answer) {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	historyService.Clear(commandContext(cmd))
	cmd.Println("Histórico limpo.")
	return nil
}

func runHistoryCopy(cmd *cobra.Command, args []string) error {
	if err := requireHistory(cmd); err != nil {
		return err
	}
	if err := requireActions(); err != nil {
		return err
	}
	if err := actionService.CopyQuestion(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("copy question: %w", err)
	}
	cmd.Println("Pergunta copiada.")
	return nil
}

func runHistoryDownload(cmd *cobra.Command, args []string) error {
	if err := requireHistory(cmd); err != nil {
		return err
	}
	if err := requireActions(); err != nil {
		return err
	}

	t, err := actionService.Transcript(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("download %s: %w", args[0], err)
	}
	path, err := actionService.SaveTranscript(t)
	if err != nil {
		return err
	}
	cmd.Printf("Salvo em %s\n", path)
	return nil
}

func runHistorySync(cmd *cobra.Command, _ []string) error {
	if err := requireHistory(cmd); err != nil {
		return err
	}

	before := len(historyService.List())
	if err := historyService.Sync(commandContext(cmd)); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	after := len(historyService.List())
	cmd.Printf("Synced. %d entries (%+d).\n", after, after-before)
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func confirmed(answer string) bool {
	switch strings.ToLower(answer) {
	case "y", "yes", "s", "sim":
		return true
	default:
		return false
	}
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
