// Package domain contains the core business entities for the RFP retrieval
// core: documents, chunks, project mappings, retrieval results and
// faithfulness evaluations. It has no dependencies on adapters or services.
package domain
