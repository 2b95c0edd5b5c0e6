package driven

// Prompt template names. Each maps to a user-editable file in the prompt
// directory.
const (
	// PromptFaithfulnessJudge scores an answer against retrieved context.
	PromptFaithfulnessJudge = "faithfulness_judge"

	// PromptEnhance rewrites a generation prompt after a low
	// faithfulness score.
	PromptEnhance = "prompt_enhance"
)

// PromptStore loads LLM prompt templates. Implementations fall back to
// embedded defaults when no user override exists.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached templates, forcing fresh loads.
	Reload()
}
