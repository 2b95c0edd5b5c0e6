package driven

import "context"

// LLMService provides language model text generation. It backs the
// faithfulness judge and the prompt enhancer. This is an optional service -
// when nil, evaluation degrades to a disabled record and enhancement is
// unavailable.
//
// Implementations may include:
//   - OpenAI (and OpenAI-compatible endpoints such as Together)
//   - Ollama (local models)
type LLMService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Chat conducts a multi-turn conversation.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// VisionService transcribes text from rasterised document page images.
// Used for scanned PDFs that have no native text layer. Optional - when nil,
// scanned documents degrade to the native extraction path.
type VisionService interface {
	// TranscribePage extracts all visible text from one PNG-encoded page
	// image. The result contains only the transcribed text, no commentary.
	TranscribePage(ctx context.Context, png []byte) (string, error)

	// ModelName returns the name of the vision model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
