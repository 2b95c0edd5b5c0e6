package services

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/rfplens/rfplens-cli/internal/core/ports/driven"
)

// stubEmbedding produces deterministic vectors from text content, so tests
// get stable nearest-neighbour ordering without a model.
type stubEmbedding struct {
	dims    int
	failErr error
	calls   int
}

var _ driven.EmbeddingService = (*stubEmbedding)(nil)

func newStubEmbedding() *stubEmbedding {
	return &stubEmbedding{dims: 4}
}

func (s *stubEmbedding) Embed(_ context.Context, text string) ([]float32, error) {
	if s.failErr != nil {
		return nil, s.failErr
	}
	s.calls++
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()
	vec := make([]float32, s.dims)
	for i := range vec {
		vec[i] = float32((seed>>(uint(i)*8))&0xff) / 255.0
	}
	return vec, nil
}

func (s *stubEmbedding) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := s.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (s *stubEmbedding) Dimensions() int              { return s.dims }
func (s *stubEmbedding) ModelName() string            { return "stub-embed" }
func (s *stubEmbedding) Ping(_ context.Context) error { return nil }
func (s *stubEmbedding) Close() error                 { return nil }

// stubLLM returns canned responses in order, or a fixed error.
type stubLLM struct {
	responses []string
	failErr   error
	prompts   []string
}

var _ driven.LLMService = (*stubLLM)(nil)

func (s *stubLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	if s.failErr != nil {
		return "", s.failErr
	}
	s.prompts = append(s.prompts, prompt)
	if len(s.responses) == 0 {
		return "", fmt.Errorf("stub: no responses left")
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func (s *stubLLM) Chat(ctx context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("stub: no messages")
	}
	return s.Generate(ctx, messages[len(messages)-1].Content, driven.GenerateOptions{})
}

func (s *stubLLM) ModelName() string            { return "stub-llm" }
func (s *stubLLM) Ping(_ context.Context) error { return nil }
func (s *stubLLM) Close() error                 { return nil }

// stubPrompts serves in-memory templates.
type stubPrompts struct {
	templates map[string]string
}

var _ driven.PromptStore = (*stubPrompts)(nil)

func newStubPrompts() *stubPrompts {
	return &stubPrompts{templates: map[string]string{
		driven.PromptFaithfulnessJudge: "Q: %s\nA: %s\nCTX: %s",
		driven.PromptEnhance:           "REASON: %s\nPROMPT: %s",
	}}
}

func (s *stubPrompts) Load(name string) (string, error) {
	t, ok := s.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt %q", name)
	}
	return t, nil
}

func (s *stubPrompts) Reload() {}
