package mcp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is advertised to MCP clients during initialization.
const Version = "0.1.0"

// Server exposes retrieval, pattern comparison and faithfulness evaluation
// as MCP tools, and the ingestion sidecars as MCP resources, so an
// orchestrating agent can drive the corpus without shelling out to the CLI.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer builds a server around the given ports and registers every
// tool and resource handler. Only the retriever is mandatory; see Ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "rfplens",
			Version: Version,
		}, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves MCP over stdio, the transport used when an agent launches the
// binary as a subprocess. Blocks until ctx is cancelled or the peer hangs up.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves MCP over streamable HTTP on addr for clients that connect
// over the network instead of stdio. Blocks until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ctx cancellation drives shutdown, matching the stdio transport
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
