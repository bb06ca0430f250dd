package registry

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize is used when a request does not specify a page size.
	DefaultPageSize = 20
	// MaxPageSize is the upstream hard limit; larger requests are clamped, not rejected.
	MaxPageSize = 1000
)

// SearchRequest holds the optional search, filter, sort and pagination inputs for the
// /studies endpoint. Zero-valued fields are omitted from the outgoing query entirely,
// since the registry treats an explicitly empty parameter differently from an absent one.
type SearchRequest struct {
	Condition    string
	Term         string
	Intervention string
	Titles       string
	Outcome      string
	Sponsor      string
	LeadSponsor  string
	ID           string
	Patient      string
	Location     string

	OverallStatus []string
	Geo           string
	IDs           []string
	Advanced      string

	// Defined by the registry API but not exposed through the tool surface.
	PostFilterOverallStatus []string
	PostFilterGeo           string
	AggFilters              string
	GeoDecay                string

	Fields []string
	Sort   []string

	PageSize   int
	PageToken  string
	CountTotal bool
	Format     string
}

// StudyRequest identifies a single study fetch from /studies/{id}.
type StudyRequest struct {
	NCTID  string
	Fields []string
	Format string
}

// StatsRequest holds the filter inputs for the /stats endpoint.
type StatsRequest struct {
	OverallStatus []string
	Geo           string
	AggFilters    string
}

type paramKind int

const (
	scalarParam   paramKind = iota // one key=value pair
	repeatedParam                  // one key=value pair per element
	pipedParam                     // elements pipe-joined into a single value
)

// searchParams maps each optional request field to its registry query key and encoding
// rule. Iterating the table once replaces a conditional per field while keeping the
// omit-when-absent contract.
var searchParams = []struct {
	key  string
	kind paramKind
	get  func(r *SearchRequest) any
}{
	{"query.cond", scalarParam, func(r *SearchRequest) any { return r.Condition }},
	{"query.term", scalarParam, func(r *SearchRequest) any { return r.Term }},
	{"query.intr", scalarParam, func(r *SearchRequest) any { return r.Intervention }},
	{"query.titles", scalarParam, func(r *SearchRequest) any { return r.Titles }},
	{"query.outc", scalarParam, func(r *SearchRequest) any { return r.Outcome }},
	{"query.spons", scalarParam, func(r *SearchRequest) any { return r.Sponsor }},
	{"query.lead", scalarParam, func(r *SearchRequest) any { return r.LeadSponsor }},
	{"query.id", scalarParam, func(r *SearchRequest) any { return r.ID }},
	{"query.patient", scalarParam, func(r *SearchRequest) any { return r.Patient }},
	{"query.locn", scalarParam, func(r *SearchRequest) any { return r.Location }},
	{"filter.overallStatus", repeatedParam, func(r *SearchRequest) any { return r.OverallStatus }},
	{"filter.geo", scalarParam, func(r *SearchRequest) any { return r.Geo }},
	{"filter.ids", repeatedParam, func(r *SearchRequest) any { return r.IDs }},
	{"filter.advanced", scalarParam, func(r *SearchRequest) any { return r.Advanced }},
	{"postFilter.overallStatus", repeatedParam, func(r *SearchRequest) any { return r.PostFilterOverallStatus }},
	{"postFilter.geo", scalarParam, func(r *SearchRequest) any { return r.PostFilterGeo }},
	{"aggFilters", scalarParam, func(r *SearchRequest) any { return r.AggFilters }},
	{"geoDecay", scalarParam, func(r *SearchRequest) any { return r.GeoDecay }},
	{"fields", pipedParam, func(r *SearchRequest) any { return r.Fields }},
	{"sort", repeatedParam, func(r *SearchRequest) any { return r.Sort }},
}

func addParam(v url.Values, key string, kind paramKind, value any) {
	switch kind {
	case scalarParam:
		if s := value.(string); s != "" {
			v.Add(key, s)
		}
	case repeatedParam:
		for _, s := range value.([]string) {
			v.Add(key, s)
		}
	case pipedParam:
		if elems := value.([]string); len(elems) > 0 {
			v.Add(key, strings.Join(elems, "|"))
		}
	}
}

// Values encodes the request into the registry's query parameters. It cannot fail:
// out-of-range page sizes are clamped and malformed filter expressions pass through
// for the registry to reject.
func (r *SearchRequest) Values() url.Values {
	v := url.Values{}
	for _, p := range searchParams {
		addParam(v, p.key, p.kind, p.get(r))
	}

	v.Set("pageSize", strconv.Itoa(clampPageSize(r.PageSize)))
	if r.PageToken != "" {
		v.Set("pageToken", r.PageToken)
	}
	if r.CountTotal {
		v.Set("countTotal", "true")
	}
	v.Set("format", defaultFormat(r.Format))

	return v
}

// Values encodes the single-study request parameters.
func (r *StudyRequest) Values() url.Values {
	v := url.Values{}
	if len(r.Fields) > 0 {
		v.Set("fields", strings.Join(r.Fields, "|"))
	}
	v.Set("format", defaultFormat(r.Format))
	return v
}

// Values encodes the statistics request parameters.
func (r *StatsRequest) Values() url.Values {
	v := url.Values{}
	for _, s := range r.OverallStatus {
		v.Add("filter.overallStatus", s)
	}
	if r.Geo != "" {
		v.Set("filter.geo", r.Geo)
	}
	if r.AggFilters != "" {
		v.Set("aggFilters", r.AggFilters)
	}
	return v
}

func clampPageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

func defaultFormat(format string) string {
	if format == "" {
		return "json"
	}
	return format
}
