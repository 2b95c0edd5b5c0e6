package driving

import (
	"context"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
)

// Evaluator scores generated answers against the chunks that produced them.
// Evaluation runs strictly after answer generation: it consumes the actual
// retrieved chunks, never a prediction of what might be retrieved.
type Evaluator interface {
	// Evaluate scores how faithfully the answer is entailed by the
	// retrieved chunk text. An unavailable judge yields a disabled record,
	// not an error.
	Evaluate(ctx context.Context, question, answer string, retrieved []domain.RetrievedChunk) domain.Evaluation

	// Enhance proposes a rewritten prompt from a prior evaluation's score
	// and reason. Best-effort advisory with no guarantee of improvement;
	// intended to run between analysis runs, not inside the hot path.
	Enhance(ctx context.Context, prompt string, eval domain.Evaluation) (string, error)
}
