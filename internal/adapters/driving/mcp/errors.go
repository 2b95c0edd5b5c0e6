// Package mcp provides an MCP (Model Context Protocol) server adapter for
// rfplens. It exposes retrieval and faithfulness evaluation to the external
// orchestration layer that generates and refines RFP answers.
package mcp

import "errors"

// ErrMissingRetriever is returned when the retriever port is not provided.
var ErrMissingRetriever = errors.New("mcp: retriever is required")
