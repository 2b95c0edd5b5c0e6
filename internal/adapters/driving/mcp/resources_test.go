package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfplens/rfplens-cli/internal/core/domain"
)

// Helper to create a ReadResourceRequest with the given URI.
func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleRegistryResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns registry entries", func(t *testing.T) {
		ingestor := &mockIngestor{registry: map[string]domain.RegistryEntry{
			"doc-1": {
				File:          "requirement1.pdf",
				Type:          domain.ExtractionNativeText,
				Status:        domain.StatusAccepted,
				Category:      domain.CategoryRequirement,
				ProjectNumber: "1",
			},
		}}
		server, err := NewServer(&Ports{Retriever: &mockRetriever{}, Ingestor: ingestor})
		require.NoError(t, err)

		result, err := server.handleRegistryResource(ctx, readRequest(uriScheme+"registry"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "requirement1.pdf")
		assert.Contains(t, result.Contents[0].Text, "\"project_number\": \"1\"")
	})

	t.Run("empty object without an ingestor", func(t *testing.T) {
		server, err := NewServer(&Ports{Retriever: &mockRetriever{}})
		require.NoError(t, err)

		result, err := server.handleRegistryResource(ctx, readRequest(uriScheme+"registry"))

		require.NoError(t, err)
		assert.Equal(t, "{}", result.Contents[0].Text)
	})

	t.Run("propagates load errors", func(t *testing.T) {
		ingestor := &mockIngestor{err: errors.New("sidecar unreadable")}
		server, err := NewServer(&Ports{Retriever: &mockRetriever{}, Ingestor: ingestor})
		require.NoError(t, err)

		_, err = server.handleRegistryResource(ctx, readRequest(uriScheme+"registry"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "sidecar unreadable")
	})
}

func TestServer_handleProjectsResource(t *testing.T) {
	ctx := context.Background()

	ingestor := &mockIngestor{mapping: map[string]domain.ProjectMapping{
		"1": {RequirementDocID: "doc-1", ResponseDocID: "doc-2", Status: domain.StatusAccepted},
	}}
	server, err := NewServer(&Ports{Retriever: &mockRetriever{}, Ingestor: ingestor})
	require.NoError(t, err)

	result, err := server.handleProjectsResource(ctx, readRequest(uriScheme+"projects"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Contains(t, result.Contents[0].Text, "\"requirement_doc_id\": \"doc-1\"")
	assert.Contains(t, result.Contents[0].Text, "\"response_doc_id\": \"doc-2\"")
}
