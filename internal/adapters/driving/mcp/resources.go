package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for rfplens resources.
const uriScheme = "rfplens://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "registry",
		Name:        "registry",
		Description: "Registry of all ingested documents with their labelling",
		MIMEType:    "application/json",
	}, s.handleRegistryResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "projects",
		Name:        "projects",
		Description: "Requirement/response document pairing per project",
		MIMEType:    "application/json",
	}, s.handleProjectsResource)
}

// handleRegistryResource returns the document registry.
func (s *Server) handleRegistryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Ingestor == nil {
		return emptyJSONResource(req), nil
	}

	registry, err := s.ports.Ingestor.Registry(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}

	data, err := json.MarshalIndent(registry, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling registry: %w", err)
	}

	return jsonResource(req, string(data)), nil
}

// handleProjectsResource returns the project mapping.
func (s *Server) handleProjectsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Ingestor == nil {
		return emptyJSONResource(req), nil
	}

	mapping, err := s.ports.Ingestor.Mapping(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading mapping: %w", err)
	}

	data, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling mapping: %w", err)
	}

	return jsonResource(req, string(data)), nil
}

func jsonResource(req *mcp.ReadResourceRequest, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

func emptyJSONResource(req *mcp.ReadResourceRequest) *mcp.ReadResourceResult {
	return jsonResource(req, "{}")
}
