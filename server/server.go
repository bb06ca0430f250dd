package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aafjes/clinicaltrials-mcp-server/pkg/registry"
	"github.com/aafjes/clinicaltrials-mcp-server/pkg/tools"

	"github.com/mark3labs/mcp-go/server"
)

var defaultServerConfig = serverConfig{
	apiURL:        registry.DefaultBaseURL,
	serverName:    "clinicaltrials-mcp-server",
	serverVersion: "1.0.0",
	logger:        slog.Default(),
	// HTTP server options
	port:      8080,
	stateless: true,
}

type Server interface {
	Start(ctx context.Context) error
}

type ServerType string

const (
	StdioServerType ServerType = "stdio"
	HTTPServerType  ServerType = "http"
)

func CreateServer(serverType ServerType, opts ...ServerOption) (Server, error) {
	switch serverType {
	case StdioServerType:
		return NewStdioServer(opts...)
	case HTTPServerType:
		return NewHTTPServer(opts...)
	default:
		return nil, fmt.Errorf("invalid server type: %s", serverType)
	}
}

// newMCPServer builds the MCP server and the shared registry client. The client owns
// the process-wide connection pool: created here, released by the transport wrapper
// at shutdown.
func newMCPServer(config *serverConfig) (*server.MCPServer, *registry.Client) {
	client := registry.NewClient(registry.WithBaseURL(config.apiURL))

	s := server.NewMCPServer(config.serverName, config.serverVersion)
	tools.Register(s, client)

	return s, client
}

// serverConfig holds internal configuration
type serverConfig struct {
	apiURL        string
	serverName    string
	serverVersion string
	logger        *slog.Logger

	// HTTP server options
	port      int
	stateless bool
}

// ServerOption configures the MCP server
type ServerOption func(*serverConfig)

// WithAPIURL sets the registry API URL
func WithAPIURL(url string) ServerOption {
	return func(c *serverConfig) {
		c.apiURL = url
	}
}

// WithServerName sets the server name
func WithServerName(name string) ServerOption {
	return func(c *serverConfig) {
		c.serverName = name
	}
}

// WithServerVersion sets the server version
func WithServerVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.serverVersion = version
	}
}

func WithLogger(logger *slog.Logger) ServerOption {
	return func(c *serverConfig) {
		c.logger = logger
	}
}
