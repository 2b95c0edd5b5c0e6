package domain

// DefaultFaithfulnessThreshold is the score below which an answer is
// considered insufficiently grounded in its retrieved context.
const DefaultFaithfulnessThreshold = 0.7

// EvaluationStatus describes how an evaluation concluded.
type EvaluationStatus string

const (
	// EvaluationDone means the judge produced a score.
	EvaluationDone EvaluationStatus = "evaluated"

	// EvaluationDisabled means no judge model was configured; the caller
	// should treat the answer as unscored, not as failed.
	EvaluationDisabled EvaluationStatus = "disabled"

	// EvaluationError means the judge call failed; the reason carries the
	// error text.
	EvaluationError EvaluationStatus = "error"

	// EvaluationInsufficientData means the answer or the retrieved context
	// was empty, so there was nothing to score.
	EvaluationInsufficientData EvaluationStatus = "insufficient_data"
)

// Evaluation is the ephemeral result of scoring one
// (question, answer, retrieved-chunks) triple. It is not persisted.
type Evaluation struct {
	// Score is the faithfulness score in [0,1]. Nil when the judge was
	// unavailable or errored.
	Score *float64 `json:"score"`

	// Reason is the judge's natural-language justification.
	Reason string `json:"reason"`

	// NeedsEnhancement is true when Score is present and below the
	// threshold the evaluation ran with.
	NeedsEnhancement bool `json:"needs_enhancement"`

	// Status describes how the evaluation concluded.
	Status EvaluationStatus `json:"status"`

	// RetrievedCount is the number of context chunks the answer was
	// judged against.
	RetrievedCount int `json:"retrieved_count"`
}
