package tools

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// optionalParam fetches a parameter from the request if present.
// It does the following checks:
// 1. Checks if the parameter is present in the request, if not, it returns its zero-value
// 2. If it is present, it checks if the parameter is of the expected type and returns it
func optionalParam[T any](r mcp.CallToolRequest, p string) (T, error) {
	var zero T

	if _, ok := r.GetArguments()[p]; !ok {
		return zero, nil
	}

	if _, ok := r.GetArguments()[p].(T); !ok {
		return zero, fmt.Errorf("parameter %s is not of type %T, is %T", p, zero, r.GetArguments()[p])
	}

	return r.GetArguments()[p].(T), nil
}

// stringSliceParam fetches an array parameter. MCP arguments decode arrays as []any;
// non-string elements are silently skipped.
func stringSliceParam(r mcp.CallToolRequest, p string) []string {
	list, ok := r.GetArguments()[p].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
