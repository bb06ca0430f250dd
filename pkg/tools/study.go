package tools

import (
	"context"

	"github.com/aafjes/clinicaltrials-mcp-server/pkg/registry"
	"github.com/mark3labs/mcp-go/mcp"
)

// GetStudyToolName is the tool name for the single-record fetch operation.
const GetStudyToolName = "get_clinical_trial"

// GetStudyTool creates the tool to fetch one study by NCT ID.
func GetStudyTool() mcp.Tool {
	return mcp.NewTool(GetStudyToolName,
		mcp.WithDescription(`Get detailed information about a specific clinical trial by its NCT ID.

This retrieves the complete record for a single study, including:
- Full protocol information
- Detailed eligibility criteria
- Complete intervention details
- All outcome measures
- Contact information and locations
- Study design and methodology
- Results (if available)

Use this after finding a study of interest via search to get comprehensive details.`),
		mcp.WithString("nct_id",
			mcp.Required(),
			mcp.Description("The NCT ID of the study (e.g., 'NCT04267848')"),
		),
		mcp.WithArray("fields",
			mcp.Description("Optional: Specific fields to return (if not specified, returns all fields)"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func handleGetStudy(ctx context.Context, client Client, request mcp.CallToolRequest) *mcp.CallToolResult {
	// The identifier is checked before any network call is attempted.
	nctID, err := request.RequireString("nct_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: nct_id")
	}

	req := &registry.StudyRequest{
		NCTID:  nctID,
		Fields: stringSliceParam(request, "fields"),
	}

	result, err := client.GetStudy(ctx, req)
	if err != nil {
		return errorResult(err)
	}

	studies := result.Docs("studies")
	if len(studies) == 0 {
		return mcp.NewToolResultText("No study found with NCT ID: " + nctID)
	}

	return mcp.NewToolResultText(formatStudyDetail(studies[0]))
}
