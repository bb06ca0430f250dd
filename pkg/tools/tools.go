package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/aafjes/clinicaltrials-mcp-server/pkg/registry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Client abstracts the registry client for the tool handlers.
type Client interface {
	SearchStudies(ctx context.Context, req *registry.SearchRequest) (registry.Document, error)
	GetStudy(ctx context.Context, req *registry.StudyRequest) (registry.Document, error)
	GetStatistics(ctx context.Context, req *registry.StatsRequest) (registry.Document, error)
}

// NewHandler returns the dispatching handler shared by all registry tools. Every
// outcome is delivered as a text result; errors are converted at this boundary and
// never propagate to the host as a protocol fault.
func NewHandler(client Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		switch request.Params.Name {
		case SearchToolName:
			return handleSearch(ctx, client, request), nil
		case GetStudyToolName:
			return handleGetStudy(ctx, client, request), nil
		case StatisticsToolName:
			return handleStatistics(ctx, client, request), nil
		default:
			return mcp.NewToolResultError("Unknown tool: " + request.Params.Name), nil
		}
	}
}

// Register adds the registry tools to the MCP server.
func Register(s *server.MCPServer, client Client) {
	handler := NewHandler(client)
	s.AddTool(SearchTool(), handler)
	s.AddTool(GetStudyTool(), handler)
	s.AddTool(StatisticsTool(), handler)
}

// errorResult converts a registry error into an error-flavored text result. Status
// and transport errors already carry their full message; anything else gets the
// generic prefix.
func errorResult(err error) *mcp.CallToolResult {
	var statusErr *registry.StatusError
	var unavailableErr *registry.UnavailableError
	if errors.As(err, &statusErr) || errors.As(err, &unavailableErr) {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err))
}
