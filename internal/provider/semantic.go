// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/metasearch/internal/httputil"
	"github.com/pdiddy/metasearch/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,url,abstract,venue,authors.name,externalIds,publicationDate,citationCount,year,isOpenAccess"

// SemanticScholar queries the Semantic Scholar Graph API. Without an API
// key the service rate limits aggressively; 401, 403, and 429 responses
// therefore yield an empty result instead of an error.
type SemanticScholar struct {
	Client *httputil.Client
	APIKey string
}

// Name returns the source identifier.
func (p *SemanticScholar) Name() string { return "semanticscholar" }

// Search queries Semantic Scholar and maps papers to raw results.
func (p *SemanticScholar) Search(ctx context.Context, query types.ProviderQuery) ([]types.RawResult, error) {
	q := strings.TrimSpace(query.Text)
	if q == "" {
		return nil, fmt.Errorf("empty Semantic Scholar query")
	}

	limit := query.PageSize
	if limit <= 0 {
		limit = 5
	}
	query.PageSize = limit

	params := url.Values{
		"query":  {q},
		"limit":  {strconv.Itoa(limit)},
		"fields": {semanticFields},
	}
	if off := query.Offset(); off > 0 {
		params.Set("offset", strconv.Itoa(off))
	}
	if yr := buildYearRange(query.TimeRange); yr != "" {
		params.Set("year", yr)
	}

	header := http.Header{}
	if p.APIKey != "" {
		header.Set("x-api-key", p.APIKey)
	}

	var sr semanticResponse
	err := p.Client.GetJSON(ctx, "Semantic Scholar", semanticAPIBase+"?"+params.Encode(), header, &sr)
	if err != nil {
		switch httputil.StatusCode(err) {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
			return []types.RawResult{}, nil
		}
		return nil, err
	}

	results := make([]types.RawResult, 0, len(sr.Data))
	for _, paper := range sr.Data {
		doi := paper.ExternalIDs.DOI
		if doi == "" {
			doi = paper.ExternalIDs.ArXiv
		}

		r := types.RawResult{
			Title:     paper.Title,
			URL:       paper.URL,
			Snippet:   paper.Abstract,
			Lang:      "en",
			Date:      paper.PublicationDate,
			Venue:     paper.Venue,
			DOI:       doi,
			Citations: paper.CitationCount,
		}
		if r.Title == "" {
			r.Title = "Untitled"
		}
		if r.URL == "" && doi != "" {
			r.URL = "https://doi.org/" + doi
		}
		if r.Date == "" && paper.Year > 0 {
			r.Date = fmt.Sprintf("%d-01-01", paper.Year)
		}
		for _, a := range paper.Authors {
			if a.Name != "" {
				r.Authors = append(r.Authors, a.Name)
			}
		}
		if paper.IsOpenAccess {
			r.RelevanceHint = 0.2
		}
		results = append(results, r)
	}
	return results, nil
}

// buildYearRange returns a Semantic Scholar year filter (e.g. "2020-2023")
// from the leading year of each bound.
func buildYearRange(tr *types.TimeRange) string {
	if tr.IsZero() {
		return ""
	}
	from, to := leadingYear(tr.From), leadingYear(tr.To)
	switch {
	case from != "" && to != "":
		return from + "-" + to
	case from != "":
		return from + "-"
	case to != "":
		return "-" + to
	default:
		return ""
	}
}

func leadingYear(date string) string {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return ""
	}
	if _, err := strconv.Atoi(date[:4]); err != nil {
		return ""
	}
	return date[:4]
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID         string              `json:"paperId"`
	Title           string              `json:"title"`
	URL             string              `json:"url"`
	Abstract        string              `json:"abstract"`
	Venue           string              `json:"venue"`
	Year            int                 `json:"year"`
	PublicationDate string              `json:"publicationDate"`
	CitationCount   *int                `json:"citationCount"`
	IsOpenAccess    bool                `json:"isOpenAccess"`
	Authors         []semanticAuthor    `json:"authors"`
	ExternalIDs     semanticExternalIDs `json:"externalIds"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticExternalIDs struct {
	DOI      string `json:"DOI"`
	ArXiv    string `json:"ArXiv"`
	CorpusID int    `json:"CorpusId"`
}
