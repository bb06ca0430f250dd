package tools

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/aafjes/clinicaltrials-mcp-server/pkg/registry"
)

func mustDoc(t *testing.T, raw string) registry.Document {
	t.Helper()
	var doc registry.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("failed to unmarshal test document: %v", err)
	}
	return doc
}

func studyWith(t *testing.T, protocolJSON string) registry.Document {
	t.Helper()
	return mustDoc(t, `{"protocolSection": `+protocolJSON+`}`)
}

func TestFormatStudySummaryDefaults(t *testing.T) {
	got := formatStudySummary(registry.Document{})

	for _, want := range []string{
		"NCT ID: N/A",
		"Title: N/A",
		"Official Title: N/A",
		"Overall Status: N/A",
		"Study Start Date: N/A",
		"Completion Date: N/A",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}

	// Optional sections are omitted entirely, not rendered empty.
	for _, absent := range []string{"Brief Summary", "Conditions", "Interventions", "Eligibility", "Locations"} {
		if strings.Contains(got, absent) {
			t.Errorf("summary should not contain %q when data is absent:\n%s", absent, got)
		}
	}
}

func TestFormatStudySummaryIdempotent(t *testing.T) {
	study := studyWith(t, `{
		"identificationModule": {"nctId": "NCT04267848", "briefTitle": "A Study"},
		"conditionsModule": {"conditions": ["Depression", "Anxiety"]}
	}`)

	first := formatStudySummary(study)
	second := formatStudySummary(study)
	if first != second {
		t.Error("formatting the same record twice should yield byte-identical text")
	}
}

func TestFormatStudySummaryFields(t *testing.T) {
	study := studyWith(t, `{
		"identificationModule": {
			"nctId": "NCT04267848",
			"briefTitle": "Brief",
			"officialTitle": "Official"
		},
		"statusModule": {
			"overallStatus": "RECRUITING",
			"startDateStruct": {"date": "2021-03-01"},
			"completionDateStruct": {"date": "2024-06-30"}
		},
		"descriptionModule": {"briefSummary": "A short summary."},
		"conditionsModule": {"conditions": ["Depression", "Anxiety"]}
	}`)

	got := formatStudySummary(study)

	for _, want := range []string{
		"NCT ID: NCT04267848",
		"Title: Brief",
		"Official Title: Official",
		"Overall Status: RECRUITING",
		"Study Start Date: 2021-03-01",
		"Completion Date: 2024-06-30",
		"Brief Summary: A short summary.",
		"Conditions: Depression, Anxiety",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 600)
	got := truncate(long, maxFreeTextLen)

	if utf8.RuneCountInString(got) != 503 {
		t.Errorf("truncated length = %d runes, want 503", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated text should end with ellipsis marker")
	}
	if !strings.HasPrefix(long, strings.TrimSuffix(got, "...")) {
		t.Error("truncated text should be a prefix of the input")
	}

	short := strings.Repeat("b", 500)
	if truncate(short, maxFreeTextLen) != short {
		t.Error("text at the limit should pass through unchanged")
	}

	// Cut happens at the character boundary, not the byte boundary.
	wide := strings.Repeat("ä", 600)
	if utf8.RuneCountInString(truncate(wide, maxFreeTextLen)) != 503 {
		t.Error("multi-byte text should truncate by characters")
	}
}

func TestInterventionsCappedWithoutMarker(t *testing.T) {
	var items []string
	for i := 0; i < 7; i++ {
		items = append(items, fmt.Sprintf(`{"type": "DRUG", "name": "drug-%d"}`, i))
	}
	study := studyWith(t, `{"armsInterventionsModule": {"interventions": [`+strings.Join(items, ",")+`]}}`)

	got := formatStudySummary(study)

	count := 0
	for _, line := range strings.Split(got, "\n") {
		if strings.HasPrefix(line, "  - DRUG:") {
			count++
		}
	}
	if count != 5 {
		t.Errorf("rendered %d intervention lines, want 5", count)
	}
	if strings.Contains(got, "more") {
		t.Errorf("interventions must truncate silently, got:\n%s", got)
	}
}

func TestLocationsCappedWithOverflowMarker(t *testing.T) {
	var items []string
	for i := 0; i < 7; i++ {
		items = append(items, fmt.Sprintf(`{"facility": "Hospital %d", "city": "City", "state": "NY", "country": "United States"}`, i))
	}
	study := studyWith(t, `{"contactsLocationsModule": {"locations": [`+strings.Join(items, ",")+`]}}`)

	got := formatStudySummary(study)

	if !strings.Contains(got, "Number of Locations: 7") {
		t.Errorf("missing location count:\n%s", got)
	}
	count := 0
	for _, line := range strings.Split(got, "\n") {
		if strings.HasPrefix(line, "  - Hospital") {
			count++
		}
	}
	if count != 3 {
		t.Errorf("rendered %d location lines, want 3", count)
	}
	if !strings.Contains(got, "  ... and 4 more locations") {
		t.Errorf("missing overflow marker:\n%s", got)
	}
}

func TestLocationStateOmittedWhenBlank(t *testing.T) {
	study := studyWith(t, `{"contactsLocationsModule": {"locations": [
		{"facility": "Charité", "city": "Berlin", "country": "Germany"}
	]}}`)

	got := formatStudySummary(study)
	if !strings.Contains(got, "  - Charité, Berlin, Germany") {
		t.Errorf("location line should omit blank state:\n%s", got)
	}
}

func TestFormatSearchResultsBanner(t *testing.T) {
	resp := mustDoc(t, `{
		"studies": [{"protocolSection": {}}, {"protocolSection": {}}],
		"totalCount": 1523,
		"nextPageToken": "tok42"
	}`)

	got := formatSearchResults(resp)

	for _, want := range []string{
		"Found 2 studies in this page",
		"Total matching studies: 1523",
		"Next page token: tok42",
		"Study 1:",
		"Study 2:",
		sectionRule,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("results missing %q:\n%s", want, got)
		}
	}
}

func TestFormatSearchResultsWithoutOptionalBannerLines(t *testing.T) {
	resp := mustDoc(t, `{"studies": []}`)
	got := formatSearchResults(resp)

	if !strings.Contains(got, "Found 0 studies in this page") {
		t.Errorf("missing banner:\n%s", got)
	}
	if strings.Contains(got, "Total matching studies") || strings.Contains(got, "Next page token") {
		t.Errorf("optional banner lines should be omitted:\n%s", got)
	}
}

func TestFormatStudyDetailAppendsRawJSON(t *testing.T) {
	study := studyWith(t, `{"identificationModule": {"nctId": "NCT04267848"}}`)
	got := formatStudyDetail(study)

	if !strings.Contains(got, "NCT ID: NCT04267848") {
		t.Errorf("missing digest:\n%s", got)
	}
	if !strings.Contains(got, "Full JSON Response (for detailed analysis):") {
		t.Errorf("missing raw JSON header:\n%s", got)
	}
	if !strings.Contains(got, `"nctId": "NCT04267848"`) {
		t.Errorf("missing raw JSON content:\n%s", got)
	}
}

func TestFormatStatistics(t *testing.T) {
	stats := mustDoc(t, `{"totalStudies": 450000, "averageSizeBytes": 120000}`)
	got := formatStatistics(stats)

	if !strings.HasPrefix(got, "Clinical Trials Statistics\n"+sectionRule) {
		t.Errorf("missing header:\n%s", got)
	}
	if !strings.Contains(got, `"totalStudies": 450000`) {
		t.Errorf("content should round-trip unchanged:\n%s", got)
	}
}
