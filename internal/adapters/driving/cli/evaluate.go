package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
)

var (
	evaluateAnswer   string
	evaluateLimit    int
	evaluateStatus   string
	evaluateCategory string
	evaluateJSON     bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [question]",
	Short: "Score an answer's faithfulness to retrieved context",
	Long: `Retrieves the chunks the question would have been answered from, then
asks the judge model how faithfully the given answer is supported by them.
A score below the configured threshold marks the answer as needing prompt
enhancement.

Pass the same --status and --category filters the answer was generated
with so the judge sees the same context.

Without a configured judge model the evaluation reports status "disabled".`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateAnswer, "answer", "a", "", "the generated answer to score (required)")
	evaluateCmd.Flags().IntVarP(&evaluateLimit, "limit", "n", 5, "number of context chunks to retrieve")
	evaluateCmd.Flags().StringVar(&evaluateStatus, "status", "", "retrieve context from this proposal outcome only (accepted, rejected, unknown)")
	evaluateCmd.Flags().StringVar(&evaluateCategory, "category", "", "retrieve context from this document category only (requirement, response)")
	evaluateCmd.Flags().BoolVar(&evaluateJSON, "json", false, "output the evaluation as JSON")
	evaluateCmd.MarkFlagRequired("answer") //nolint:errcheck
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}
	if evaluationService == nil {
		return errors.New("evaluation service not configured")
	}

	question := args[0]
	retrieved, err := retrievalService.Retrieve(cmd.Context(), question,
		domain.RetrieveOptions{
			K:        evaluateLimit,
			Status:   domain.Status(evaluateStatus),
			Category: domain.Category(evaluateCategory),
		})
	if err != nil {
		return fmt.Errorf("retrieve context: %w", err)
	}

	eval := evaluationService.Evaluate(cmd.Context(), question, evaluateAnswer, retrieved)

	if evaluateJSON {
		data, err := json.MarshalIndent(eval, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal evaluation: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Status: %s\n", eval.Status)
	if eval.Score != nil {
		cmd.Printf("Score: %.2f\n", *eval.Score)
	}
	if eval.Reason != "" {
		cmd.Printf("Reason: %s\n", eval.Reason)
	}
	cmd.Printf("Context chunks: %d\n", eval.RetrievedCount)
	if eval.NeedsEnhancement {
		cmd.Println("Needs enhancement: yes")
	}
	return nil
}
