package postprocessors

import (
	"github.com/rfplens/rfplens-cli/internal/core/ports/driven"
	"github.com/rfplens/rfplens-cli/internal/postprocessors/chunker"
)

// DefaultPipeline builds the standard chunking pipeline with the given
// chunk size and overlap. Zero values fall back to the chunker defaults.
func DefaultPipeline(chunkSize, overlap int) driven.PostProcessorPipeline {
	var opts []chunker.Option
	if chunkSize > 0 {
		opts = append(opts, chunker.WithChunkSize(chunkSize))
	}
	if overlap >= 0 {
		opts = append(opts, chunker.WithOverlap(overlap))
	}
	return NewPipeline(chunker.New(opts...))
}
