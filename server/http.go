package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aafjes/clinicaltrials-mcp-server/pkg/registry"

	"github.com/gorilla/mux"
	"github.com/mark3labs/mcp-go/server"
)

// WithPort sets the HTTP server port
func WithPort(port int) ServerOption {
	return func(c *serverConfig) {
		c.port = port
	}
}

// WithStateless sets whether the server should be stateless
func WithStateless(stateless bool) ServerOption {
	return func(c *serverConfig) {
		c.stateless = stateless
	}
}

// MCPHTTPServer wraps the HTTP server and its dependencies
type MCPHTTPServer struct {
	httpServer *http.Server
	client     *registry.Client
	config     *serverConfig
}

// NewHTTPServer creates a new ClinicalTrials.gov MCP server served over streamable HTTP
func NewHTTPServer(opts ...ServerOption) (*MCPHTTPServer, error) {
	// Set defaults
	config := defaultServerConfig

	// Apply options
	for _, opt := range opts {
		opt(&config)
	}

	s, client := newMCPServer(&config)

	streamable := server.NewStreamableHTTPServer(s,
		server.WithStateLess(config.stateless),
	)

	r := mux.NewRouter()
	r.Handle("/mcp", streamable)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.port),
		Handler: r,
	}

	return &MCPHTTPServer{
		httpServer: httpServer,
		client:     client,
		config:     &config,
	}, nil
}

// Start starts the HTTP server and blocks until shutdown
func (m *MCPHTTPServer) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer m.client.Close()

	errC := make(chan error, 1)
	go func() {
		errC <- m.httpServer.ListenAndServe()
	}()

	m.config.logger.Info("ClinicalTrials.gov MCP Server running on http", "addr", m.httpServer.Addr)

	select {
	case <-ctx.Done():
		m.config.logger.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return m.httpServer.Shutdown(shutdownCtx)
	case err := <-errC:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}

// Port returns the configured port
func (m *MCPHTTPServer) Port() int {
	return m.config.port
}
