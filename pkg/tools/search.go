package tools

import (
	"context"

	"github.com/aafjes/clinicaltrials-mcp-server/pkg/registry"
	"github.com/mark3labs/mcp-go/mcp"
)

// SearchToolName is the tool name for the study search operation.
const SearchToolName = "search_clinical_trials"

// SearchTool creates the tool to search the ClinicalTrials.gov database.
func SearchTool() mcp.Tool {
	return mcp.NewTool(SearchToolName,
		mcp.WithDescription(`Search for clinical trials in the ClinicalTrials.gov database.

This tool allows you to search across multiple fields including conditions, interventions,
sponsors, locations, and more. You can combine multiple search parameters to narrow results.

Common search scenarios:
- Search by condition: Use query_cond (e.g., "Depression", "Breast Cancer")
- Search by intervention/drug: Use query_intr (e.g., "Pembrolizumab", "CBT")
- Search by location: Use query_locn (e.g., "New York", "Stanford")
- Search everything: Use query_term for general search
- Filter by status: Use filter_overallStatus (e.g., ["RECRUITING"])

Results include NCT ID, title, status, conditions, interventions, and eligibility info.
Use page_token from results to paginate through additional results.`),
		mcp.WithString("query_cond",
			mcp.Description("Search for specific conditions or diseases (e.g., 'Depression', 'Type 2 Diabetes')"),
		),
		mcp.WithString("query_term",
			mcp.Description("Search across all study fields with keywords"),
		),
		mcp.WithString("query_intr",
			mcp.Description("Search for specific interventions or treatments (e.g., 'Pembrolizumab', 'Cognitive Behavioral Therapy')"),
		),
		mcp.WithString("query_titles",
			mcp.Description("Search within study titles"),
		),
		mcp.WithString("query_outc",
			mcp.Description("Search in outcome measures"),
		),
		mcp.WithString("query_spons",
			mcp.Description("Search for sponsors (e.g., 'Pfizer', 'National Institute of Mental Health')"),
		),
		mcp.WithString("query_lead",
			mcp.Description("Search for lead sponsors"),
		),
		mcp.WithString("query_id",
			mcp.Description("Search by study identifiers (NCT ID)"),
		),
		mcp.WithString("query_patient",
			mcp.Description("Search conditions using patient-friendly language"),
		),
		mcp.WithString("query_locn",
			mcp.Description("Search by location/facility (e.g., 'New York', 'Mayo Clinic')"),
		),
		mcp.WithArray("filter_overallStatus",
			mcp.Description("Filter by recruitment status. Options: RECRUITING, NOT_YET_RECRUITING, ACTIVE_NOT_RECRUITING, COMPLETED, SUSPENDED, TERMINATED, WITHDRAWN, ENROLLING_BY_INVITATION, AVAILABLE, NO_LONGER_AVAILABLE, APPROVED_FOR_MARKETING, WITHHELD, TEMPORARILY_NOT_AVAILABLE"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("filter_geo",
			mcp.Description("Geographic filter using distance formula (e.g., 'distance(40.7,-74,50mi)' for studies within 50 miles of NYC)"),
		),
		mcp.WithString("filter_advanced",
			mcp.Description("Advanced filter expression for complex queries"),
		),
		mcp.WithNumber("page_size",
			mcp.Description("Number of results to return (default 20, max 1000)"),
			mcp.DefaultNumber(registry.DefaultPageSize),
		),
		mcp.WithString("page_token",
			mcp.Description("Token for pagination (from previous results)"),
		),
		mcp.WithBoolean("count_total",
			mcp.Description("Whether to include total count of matching studies"),
		),
		mcp.WithArray("sort",
			mcp.Description("Sort order (e.g., ['@relevance'], ['LastUpdatePostDate:desc'])"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func handleSearch(ctx context.Context, client Client, request mcp.CallToolRequest) *mcp.CallToolResult {
	req := &registry.SearchRequest{}

	req.Condition, _ = optionalParam[string](request, "query_cond")
	req.Term, _ = optionalParam[string](request, "query_term")
	req.Intervention, _ = optionalParam[string](request, "query_intr")
	req.Titles, _ = optionalParam[string](request, "query_titles")
	req.Outcome, _ = optionalParam[string](request, "query_outc")
	req.Sponsor, _ = optionalParam[string](request, "query_spons")
	req.LeadSponsor, _ = optionalParam[string](request, "query_lead")
	req.ID, _ = optionalParam[string](request, "query_id")
	req.Patient, _ = optionalParam[string](request, "query_patient")
	req.Location, _ = optionalParam[string](request, "query_locn")

	req.OverallStatus = stringSliceParam(request, "filter_overallStatus")
	req.Geo, _ = optionalParam[string](request, "filter_geo")
	req.Advanced, _ = optionalParam[string](request, "filter_advanced")

	if size, _ := optionalParam[float64](request, "page_size"); size > 0 {
		req.PageSize = int(size)
	}
	req.PageToken, _ = optionalParam[string](request, "page_token")
	req.CountTotal, _ = optionalParam[bool](request, "count_total")
	req.Sort = stringSliceParam(request, "sort")

	results, err := client.SearchStudies(ctx, req)
	if err != nil {
		return errorResult(err)
	}

	return mcp.NewToolResultText(formatSearchResults(results))
}
