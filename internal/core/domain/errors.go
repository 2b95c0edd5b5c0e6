package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Neither index building nor retrieval can run without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrJudgeUnavailable indicates the judge model is not configured.
	// Evaluations degrade to a disabled record rather than failing.
	ErrJudgeUnavailable = errors.New("judge model unavailable")

	// ErrVisionUnavailable indicates the vision model is not configured.
	// Scanned documents fall back to the native text path.
	ErrVisionUnavailable = errors.New("vision model unavailable")

	// ErrIndexCorrupted indicates the persisted vector index failed to load.
	// Callers recover by rebuilding the index wholesale from stored chunks.
	ErrIndexCorrupted = errors.New("vector index corrupted")

	// ErrIndexUnavailable indicates no vector index has been built or loaded.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrNoDocuments indicates an ingest pass found nothing to process.
	ErrNoDocuments = errors.New("no documents found")
)
