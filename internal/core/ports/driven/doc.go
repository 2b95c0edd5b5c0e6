// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): embeddings, the vector index, language models,
// document and registry storage, and external command execution.
package driven
