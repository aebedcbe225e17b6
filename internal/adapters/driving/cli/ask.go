package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
	"github.com/custodia-labs/iajur-cli/internal/core/render"
)

var (
	askJSON bool
	askSave bool
	askCopy bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a legal question",
	Long: `Sends a question to the IA-JUR service and prints the answer.

The question and answer are recorded in the local history and the
usage metrics are updated.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var retryCmd = &cobra.Command{
	Use:   "retry",
	Short: "Resubmit the most recent question",
	Long:  `Resubmits the most recent interactive question from the history.`,
	Args:  cobra.NoArgs,
	RunE:  runRetry,
}

func init() {
	for _, c := range []*cobra.Command{askCmd, retryCmd} {
		c.Flags().BoolVar(&askJSON, "json", false, "output the outcome as JSON")
		c.Flags().BoolVar(&askSave, "save", false, "save a transcript of the answer")
		c.Flags().BoolVar(&askCopy, "copy", false, "copy the answer to the clipboard")
		rootCmd.AddCommand(c)
	}
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := startController(ctx); err != nil {
		return err
	}

	question := strings.Join(args, " ")
	outcome, err := controller.Submit(ctx, question)
	if err != nil {
		return fmt.Errorf("consult failed: %w", err)
	}
	return printOutcome(cmd, outcome)
}

func runRetry(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	if err := startController(ctx); err != nil {
		return err
	}
	if actionService == nil || historyService == nil {
		return fmt.Errorf("history actions: %w", errNotConfigured)
	}

	for _, q := range historyService.List() {
		if q.IsArtifact() {
			continue
		}
		cmd.Printf("Repeating: %s\n\n", q.ListingQuestion())
		outcome, err := actionService.Repeat(ctx, q.ID)
		if err != nil {
			return fmt.Errorf("consult failed: %w", err)
		}
		return printOutcome(cmd, outcome)
	}
	return fmt.Errorf("no previous question to retry: %w", domain.ErrNotFound)
}

func printOutcome(cmd *cobra.Command, outcome *domain.QueryOutcome) error {
	if askJSON {
		data, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal outcome: %w", err)
		}
		cmd.Println(string(data))
	} else {
		cmd.Println(render.BlocksText(outcome.Blocks))
		cmd.Println()
		cmd.Println(outcomeFooter(outcome))
	}

	if askCopy {
		if err := requireActions(); err != nil {
			return err
		}
		if err := actionService.CopyAnswer(commandContext(cmd), outcome); err != nil {
			return fmt.Errorf("copy answer: %w", err)
		}
		cmd.Println("Resposta copiada.")
	}

	if askSave {
		if err := requireActions(); err != nil {
			return err
		}
		t, err := actionService.CurrentTranscript(outcome)
		if err != nil {
			return fmt.Errorf("transcript: %w", err)
		}
		path, err := actionService.SaveTranscript(t)
		if err != nil {
			return err
		}
		cmd.Printf("Salvo em %s\n", path)
	}
	return nil
}

func outcomeFooter(o *domain.QueryOutcome) string {
	line := fmt.Sprintf("Duração: %ss · Fontes: %d · Workflow ID: %s",
		o.DurationLabel(), o.SourceCount, o.WorkflowID)
	if o.IsFollowup {
		line += " · continuação"
	}
	return line
}

func requireActions() error {
	if actionService == nil {
		return fmt.Errorf("history actions: %w", errNotConfigured)
	}
	return nil
}
