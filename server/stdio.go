package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aafjes/clinicaltrials-mcp-server/pkg/registry"

	"github.com/mark3labs/mcp-go/server"
)

// MCPServer wraps the stdio server and its dependencies
type MCPServer struct {
	server      *server.MCPServer
	stdioServer *server.StdioServer
	client      *registry.Client
	config      *serverConfig
}

// NewStdioServer creates a new ClinicalTrials.gov MCP server for stdin/stdout
func NewStdioServer(opts ...ServerOption) (*MCPServer, error) {
	// Set defaults
	config := defaultServerConfig

	// Apply options
	for _, opt := range opts {
		opt(&config)
	}

	s, client := newMCPServer(&config)
	stdioServer := server.NewStdioServer(s)

	return &MCPServer{
		server:      s,
		stdioServer: stdioServer,
		client:      client,
		config:      &config,
	}, nil
}

// Start starts the MCP server and blocks until shutdown
func (m *MCPServer) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer m.client.Close()

	errC := make(chan error, 1)
	go func() {
		in, out := io.Reader(os.Stdin), io.Writer(os.Stdout)
		errC <- m.stdioServer.Listen(ctx, in, out)
	}()

	m.config.logger.Info("ClinicalTrials.gov MCP Server running on stdio")

	select {
	case <-ctx.Done():
		m.config.logger.Info("Shutting down...")
		return nil
	case err := <-errC:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}
