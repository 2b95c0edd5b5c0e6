package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
	"github.com/rfplens/rfplens-cli/internal/core/ports/driven"
	"github.com/rfplens/rfplens-cli/internal/core/ports/driving"
	"github.com/rfplens/rfplens-cli/internal/logger"
)

// Ensure EvaluationService implements the interface.
var _ driving.Evaluator = (*EvaluationService)(nil)

// judgeMaxTokens bounds the judge response; the expected payload is a tiny
// JSON object.
const judgeMaxTokens = 256

// EvaluationService scores generated answers against their retrieved
// context using a judge model, and proposes prompt rewrites when scores
// fall below the threshold. The judge is optional: without one, every
// evaluation is a disabled record rather than an error.
type EvaluationService struct {
	llm       driven.LLMService
	prompts   driven.PromptStore
	threshold float64
}

// NewEvaluationService creates a new evaluation service. llm may be nil.
func NewEvaluationService(llm driven.LLMService, prompts driven.PromptStore, threshold float64) *EvaluationService {
	if threshold <= 0 || threshold > 1 {
		threshold = domain.DefaultFaithfulnessThreshold
	}
	return &EvaluationService{
		llm:       llm,
		prompts:   prompts,
		threshold: threshold,
	}
}

// judgeVerdict is the JSON shape the judge model is instructed to return.
type judgeVerdict struct {
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// Evaluate scores how faithfully the answer is entailed by the retrieved
// chunk text.
func (s *EvaluationService) Evaluate(
	ctx context.Context, question, answer string, retrieved []domain.RetrievedChunk,
) domain.Evaluation {
	logger.Section("Faithfulness Evaluation")

	if s.llm == nil {
		logger.Debug("No judge model configured, evaluation disabled")
		return domain.Evaluation{
			Reason:         "evaluation disabled: no judge model configured",
			Status:         domain.EvaluationDisabled,
			RetrievedCount: len(retrieved),
		}
	}

	if strings.TrimSpace(answer) == "" || len(retrieved) == 0 {
		logger.Debug("Nothing to score: answer empty=%t, retrieved=%d",
			strings.TrimSpace(answer) == "", len(retrieved))
		return domain.Evaluation{
			Reason:         "nothing to score: empty answer or no retrieved context",
			Status:         domain.EvaluationInsufficientData,
			RetrievedCount: len(retrieved),
		}
	}

	template, err := s.prompts.Load(driven.PromptFaithfulnessJudge)
	if err != nil {
		return s.errored(fmt.Errorf("load judge prompt: %w", err), len(retrieved))
	}

	prompt := fmt.Sprintf(template, question, answer, ContextWithSources(retrieved))
	raw, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   judgeMaxTokens,
		Temperature: 0.0,
	})
	if err != nil {
		return s.errored(fmt.Errorf("judge call: %w", err), len(retrieved))
	}

	verdict, err := parseVerdict(raw)
	if err != nil {
		return s.errored(fmt.Errorf("parse verdict: %w", err), len(retrieved))
	}

	score := clamp01(verdict.Score)
	logger.Info("Faithfulness score: %.2f (threshold %.2f)", score, s.threshold)

	return domain.Evaluation{
		Score:            &score,
		Reason:           verdict.Reason,
		NeedsEnhancement: score < s.threshold,
		Status:           domain.EvaluationDone,
		RetrievedCount:   len(retrieved),
	}
}

// Enhance proposes a rewritten prompt from a prior evaluation's score and
// reason.
func (s *EvaluationService) Enhance(ctx context.Context, prompt string, eval domain.Evaluation) (string, error) {
	if s.llm == nil {
		return "", fmt.Errorf("enhance: %w", domain.ErrJudgeUnavailable)
	}
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt is required: %w", domain.ErrInvalidInput)
	}
	if !eval.NeedsEnhancement {
		logger.Debug("Evaluation does not call for enhancement, returning prompt unchanged")
		return prompt, nil
	}

	template, err := s.prompts.Load(driven.PromptEnhance)
	if err != nil {
		return "", fmt.Errorf("load enhance prompt: %w", err)
	}

	rewritten, err := s.llm.Generate(ctx,
		fmt.Sprintf(template, eval.Reason, prompt),
		driven.GenerateOptions{Temperature: 0.3},
	)
	if err != nil {
		return "", fmt.Errorf("enhance call: %w", err)
	}

	rewritten = strings.TrimSpace(rewritten)
	if rewritten == "" {
		return "", fmt.Errorf("enhance: model returned empty prompt")
	}

	logger.Info("Prompt enhanced (%d -> %d chars)", len(prompt), len(rewritten))
	return rewritten, nil
}

// Threshold returns the faithfulness threshold in effect.
func (s *EvaluationService) Threshold() float64 {
	return s.threshold
}

func (s *EvaluationService) errored(err error, retrieved int) domain.Evaluation {
	logger.Warn("Evaluation failed: %v", err)
	return domain.Evaluation{
		Reason:         err.Error(),
		Status:         domain.EvaluationError,
		RetrievedCount: retrieved,
	}
}

// parseVerdict extracts the judge's JSON verdict from a model response.
// Models wrap JSON in code fences or prefix commentary often enough that
// strict decoding alone is not workable; the parser takes the first
// top-level JSON object it can find.
func parseVerdict(raw string) (judgeVerdict, error) {
	var verdict judgeVerdict

	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return verdict, fmt.Errorf("no JSON object in judge response %q", truncate(raw, 120))
	}

	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &verdict); err != nil {
		return verdict, fmt.Errorf("malformed judge response %q: %w", truncate(raw, 120), err)
	}
	return verdict, nil
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
