package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aafjes/clinicaltrials-mcp-server/pkg/registry"
)

const (
	notAvailable = "N/A"

	// Free-text fields longer than this are cut at the character boundary.
	maxFreeTextLen = 500

	maxInterventions = 5
	maxLocations     = 3
)

var sectionRule = strings.Repeat("=", 80)

// formatStudySummary renders one study record into a fixed-order multi-line digest.
// Sections with no data are omitted entirely. The output is deterministic: the same
// record always renders byte-identically.
func formatStudySummary(study registry.Document) string {
	protocol := study.Doc("protocolSection")
	identification := protocol.Doc("identificationModule")
	status := protocol.Doc("statusModule")
	description := protocol.Doc("descriptionModule")
	conditions := protocol.Doc("conditionsModule")
	interventions := protocol.Doc("armsInterventionsModule")
	eligibility := protocol.Doc("eligibilityModule")
	contacts := protocol.Doc("contactsLocationsModule")

	var summary []string

	summary = append(summary, "NCT ID: "+identification.StrOr("nctId", notAvailable))
	summary = append(summary, "Title: "+identification.StrOr("briefTitle", notAvailable))
	summary = append(summary, "Official Title: "+identification.StrOr("officialTitle", notAvailable))
	summary = append(summary, "")

	summary = append(summary, "Overall Status: "+status.StrOr("overallStatus", notAvailable))
	summary = append(summary, "Study Start Date: "+status.Doc("startDateStruct").StrOr("date", notAvailable))
	summary = append(summary, "Completion Date: "+status.Doc("completionDateStruct").StrOr("date", notAvailable))
	summary = append(summary, "")

	if brief := description.Str("briefSummary"); brief != "" {
		summary = append(summary, "Brief Summary: "+truncate(brief, maxFreeTextLen))
		summary = append(summary, "")
	}

	if conds := conditions.Strings("conditions"); len(conds) > 0 {
		summary = append(summary, "Conditions: "+strings.Join(conds, ", "))
		summary = append(summary, "")
	}

	if items := interventions.Docs("interventions"); len(items) > 0 {
		summary = append(summary, "Interventions:")
		// Entries beyond the cap are dropped without a marker.
		if len(items) > maxInterventions {
			items = items[:maxInterventions]
		}
		for _, item := range items {
			summary = append(summary, fmt.Sprintf("  - %s: %s",
				item.StrOr("type", notAvailable), item.StrOr("name", notAvailable)))
		}
		summary = append(summary, "")
	}

	if criteria := eligibility.Str("eligibilityCriteria"); criteria != "" {
		summary = append(summary, "Eligibility Criteria:")
		summary = append(summary, truncate(criteria, maxFreeTextLen))
		summary = append(summary, "")
	}

	if locations := contacts.Docs("locations"); len(locations) > 0 {
		summary = append(summary, fmt.Sprintf("Number of Locations: %d", len(locations)))
		shown := locations
		if len(shown) > maxLocations {
			shown = shown[:maxLocations]
		}
		for _, location := range shown {
			line := location.StrOr("facility", notAvailable) + ", " + location.StrOr("city", notAvailable)
			if state := location.Str("state"); state != "" {
				line += ", " + state
			}
			line += ", " + location.StrOr("country", notAvailable)
			summary = append(summary, "  - "+line)
		}
		if len(locations) > maxLocations {
			summary = append(summary, fmt.Sprintf("  ... and %d more locations", len(locations)-maxLocations))
		}
		summary = append(summary, "")
	}

	return strings.Join(summary, "\n")
}

// formatSearchResults renders a results page: a banner with the page count, optional
// total count and next-page token, then each study digest separated by an 80-char rule.
func formatSearchResults(resp registry.Document) string {
	studies := resp.Docs("studies")

	var output []string
	output = append(output, fmt.Sprintf("Found %d studies in this page", len(studies)))
	if total := resp.Int("totalCount"); total > 0 {
		output = append(output, fmt.Sprintf("Total matching studies: %d", total))
	}
	if token := resp.Str("nextPageToken"); token != "" {
		output = append(output, "Next page token: "+token)
	}
	output = append(output, "\n"+sectionRule+"\n")

	for i, study := range studies {
		output = append(output, fmt.Sprintf("Study %d:", i+1))
		output = append(output, formatStudySummary(study))
		output = append(output, sectionRule+"\n")
	}

	return strings.Join(output, "\n")
}

// formatStudyDetail renders a single record digest with the raw JSON of the record
// appended below a rule for detailed analysis.
func formatStudyDetail(study registry.Document) string {
	output := formatStudySummary(study)
	output += "\n\n" + sectionRule + "\n"
	output += "Full JSON Response (for detailed analysis):\n"
	output += indentJSON(study)
	return output
}

// formatStatistics renders the aggregate document as indented raw JSON. Its shape is
// open-ended, so no structural summarization is applied.
func formatStatistics(stats registry.Document) string {
	return "Clinical Trials Statistics\n" + sectionRule + "\n\n" + indentJSON(stats)
}

func indentJSON(doc registry.Document) string {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Sprintf("failed to render JSON: %v", err)
	}
	return string(data)
}

// truncate cuts s at max characters and appends an ellipsis marker. The cut happens
// at the character boundary, not the word boundary.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
