// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the metasearch pipeline:
// the raw records providers return, the normalized records the core ranks,
// preference profiles, and the request/response envelope.
package types

// RawResult is one record as returned by a provider. Optional text fields are
// empty when the provider has nothing to offer. A RawResult carries no identity
// beyond its position in the provider response.
type RawResult struct {
	Title   string   `json:"title" yaml:"title"`
	URL     string   `json:"url" yaml:"url"`
	Snippet string   `json:"snippet,omitempty" yaml:"snippet,omitempty"`
	Lang    string   `json:"lang,omitempty" yaml:"lang,omitempty"`
	Date    string   `json:"date,omitempty" yaml:"date,omitempty"`
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Venue   string   `json:"venue,omitempty" yaml:"venue,omitempty"`
	DOI     string   `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Citations is nil when the provider does not report a citation count.
	// A reported count of zero is distinct from an absent one.
	Citations *int `json:"citations,omitempty" yaml:"citations,omitempty"`

	// RelevanceHint is the provider's own relevance signal. It is carried
	// for display only and never feeds the score.
	RelevanceHint float64 `json:"rawScore,omitempty" yaml:"raw_score,omitempty"`
}

// Result is a normalized record. Score and Why are written only by the
// scoring engine.
type Result struct {
	// ID is a content hash over the first present of DOI, URL, title.
	ID string `json:"id" yaml:"id"`

	Title   string   `json:"title" yaml:"title"`
	URL     string   `json:"url" yaml:"url"`
	Snippet string   `json:"snippet,omitempty" yaml:"snippet,omitempty"`
	Lang    string   `json:"lang,omitempty" yaml:"lang,omitempty"`
	Date    string   `json:"date,omitempty" yaml:"date,omitempty"`
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Venue   string   `json:"venue,omitempty" yaml:"venue,omitempty"`
	DOI     string   `json:"doi,omitempty" yaml:"doi,omitempty"`

	Citations *int `json:"citations,omitempty" yaml:"citations,omitempty"`

	// Source is the identifier of the provider that produced the record.
	Source string `json:"source" yaml:"source"`

	Score float64    `json:"score" yaml:"score"`
	Why   []WhyEntry `json:"why" yaml:"why"`
}

// CitationCount returns the citation count, treating an absent count as zero.
func (r Result) CitationCount() int {
	if r.Citations == nil {
		return 0
	}
	return *r.Citations
}

// Factor names one component of the relevance score. The string values are
// the wire keys rendered to clients.
type Factor string

const (
	FactorLanguageMatch     Factor = "lang_match"
	FactorLanguageExcluded  Factor = "lang_excluded"
	FactorScholarlySource   Factor = "scholarly"
	FactorFreshness         Factor = "freshness"
	FactorCitationWeight    Factor = "citations"
	FactorDomainBoost       Factor = "domain_boost"
	FactorDomainBlock       Factor = "domain_block"
	FactorMainstreamPenalty Factor = "mainstream_penalty"
)

// Factors lists every scoring factor in evaluation order.
func Factors() []Factor {
	return []Factor{
		FactorLanguageMatch,
		FactorLanguageExcluded,
		FactorScholarlySource,
		FactorFreshness,
		FactorCitationWeight,
		FactorDomainBoost,
		FactorDomainBlock,
		FactorMainstreamPenalty,
	}
}

// Valid reports whether f is one of the known factors.
func (f Factor) Valid() bool {
	for _, k := range Factors() {
		if f == k {
			return true
		}
	}
	return false
}

// WhyEntry explains one signed contribution to a record's score.
type WhyEntry struct {
	Key    Factor  `json:"key" yaml:"key"`
	Weight float64 `json:"weight" yaml:"weight"`
	Note   string  `json:"note,omitempty" yaml:"note,omitempty"`
}

// TimeRange bounds publication dates. Both ends are optional ISO dates
// (YYYY-MM-DD). The range is forwarded to providers and never used in scoring.
type TimeRange struct {
	From string `json:"from,omitempty" yaml:"from,omitempty"`
	To   string `json:"to,omitempty" yaml:"to,omitempty"`
}

// IsZero reports whether neither bound is set.
func (t *TimeRange) IsZero() bool {
	return t == nil || (t.From == "" && t.To == "")
}

// DomainRules lists hostname suffixes to boost or block.
type DomainRules struct {
	Boost []string `json:"boost,omitempty" yaml:"boost,omitempty"`
	Block []string `json:"block,omitempty" yaml:"block,omitempty"`
}

// Profile is a caller-supplied preference profile. It is read-only for the
// duration of one search.
type Profile struct {
	PreferredLangs []string   `json:"preferredLangs" yaml:"preferred_langs"`
	ExcludeLangs   []string   `json:"excludeLangs,omitempty" yaml:"exclude_langs,omitempty"`
	TimeRange      *TimeRange `json:"timeRange,omitempty" yaml:"time_range,omitempty"`

	// MainstreamPenalty is a coefficient in [0,1] applied to hosts under
	// commercial top-level suffixes.
	MainstreamPenalty float64 `json:"mainstreamPenalty,omitempty" yaml:"mainstream_penalty,omitempty"`

	Domain DomainRules `json:"domain" yaml:"domain"`
}

// Request is one search request.
type Request struct {
	Query    string   `json:"q" yaml:"q"`
	Page     int      `json:"page,omitempty" yaml:"page,omitempty"`
	PageSize int      `json:"pageSize,omitempty" yaml:"page_size,omitempty"`
	Sources  []string `json:"sources" yaml:"sources"`
	Profile  Profile  `json:"profile" yaml:"profile"`
}

// Response is the ranked result list plus per-source accounting.
type Response struct {
	Query   string   `json:"q" yaml:"q"`
	Results []Result `json:"results" yaml:"results"`
	Meta    Meta     `json:"meta" yaml:"meta"`
}

// Meta carries timing and per-source accounting for one search.
type Meta struct {
	TookMs int64 `json:"tookMs" yaml:"took_ms"`

	// DuplicatesRemoved counts records merged away by deduplication.
	DuplicatesRemoved int `json:"duplicatesRemoved" yaml:"duplicates_removed"`

	// PerSource has one entry for every dispatched source, including
	// sources that failed.
	PerSource map[string]SourceMeta `json:"perSource" yaml:"per_source"`
}

// SourceMeta reports how one source fared.
type SourceMeta struct {
	TookMs int64    `json:"tookMs" yaml:"took_ms"`
	Count  int      `json:"count" yaml:"count"`
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Failed reports whether the source recorded an error.
func (m SourceMeta) Failed() bool { return len(m.Errors) > 0 }

// ProviderQuery is what the orchestrator passes to each provider.
type ProviderQuery struct {
	Text      string
	Page      int
	PageSize  int
	TimeRange *TimeRange
}

// Offset returns the zero-based index of the first record on the page.
func (q ProviderQuery) Offset() int {
	if q.Page <= 1 || q.PageSize <= 0 {
		return 0
	}
	return (q.Page - 1) * q.PageSize
}
