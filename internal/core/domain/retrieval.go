package domain

// RetrieveOptions configures a retrieval query.
type RetrieveOptions struct {
	// K is the number of chunks requested. Defaults to 5 when <= 0.
	K int

	// Status restricts results to chunks with this proposal outcome.
	// Empty means no status filter.
	Status Status

	// Category restricts results to requirement or response chunks.
	// Empty means no category filter.
	Category Category
}

// Filtered reports whether any metadata filter is set.
func (o RetrieveOptions) Filtered() bool {
	return o.Status != "" || o.Category != ""
}

// RetrievedChunk is a single retrieval hit: the chunk plus its similarity
// score. Results are ordered by descending score.
type RetrievedChunk struct {
	Chunk Chunk

	// Score is the cosine similarity between the query and the chunk.
	Score float64
}

// PatternComparison holds the accepted-side and rejected-side retrievals for
// one topic, used by win/loss pattern analysis in the orchestration layer.
type PatternComparison struct {
	Topic    string
	Accepted []RetrievedChunk
	Rejected []RetrievedChunk
}
