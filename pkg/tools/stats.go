package tools

import (
	"context"

	"github.com/aafjes/clinicaltrials-mcp-server/pkg/registry"
	"github.com/mark3labs/mcp-go/mcp"
)

// StatisticsToolName is the tool name for the aggregate statistics operation.
const StatisticsToolName = "get_trial_statistics"

// StatisticsTool creates the tool to fetch aggregate trial statistics.
func StatisticsTool() mcp.Tool {
	return mcp.NewTool(StatisticsToolName,
		mcp.WithDescription(`Get aggregate statistics about clinical trials in the database.

This provides summary statistics and counts across different dimensions:
- Total number of studies
- Distribution by status
- Geographic distribution
- Trends over time

Useful for understanding the overall landscape of clinical research in a particular area.`),
		mcp.WithArray("filter_overallStatus",
			mcp.Description("Filter statistics by recruitment status"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("filter_geo",
			mcp.Description("Geographic filter for statistics"),
		),
		mcp.WithString("agg_filters",
			mcp.Description("Aggregation filter expression"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func handleStatistics(ctx context.Context, client Client, request mcp.CallToolRequest) *mcp.CallToolResult {
	req := &registry.StatsRequest{
		OverallStatus: stringSliceParam(request, "filter_overallStatus"),
	}
	req.Geo, _ = optionalParam[string](request, "filter_geo")
	req.AggFilters, _ = optionalParam[string](request, "agg_filters")

	stats, err := client.GetStatistics(ctx, req)
	if err != nil {
		return errorResult(err)
	}

	return mcp.NewToolResultText(formatStatistics(stats))
}
