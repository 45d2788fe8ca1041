// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/metasearch/internal/httputil"
	"github.com/pdiddy/metasearch/pkg/types"
)

// openAlexSearchBase is the OpenAlex Works search endpoint. Declared as a
// var so tests can substitute an httptest server.
var openAlexSearchBase = "https://api.openalex.org/works"

// OpenAlex queries the OpenAlex Works API.
type OpenAlex struct {
	Client *httputil.Client
	// Email is sent as mailto parameter for polite pool access.
	Email string
}

// Name returns the source identifier.
func (p *OpenAlex) Name() string { return "openalex" }

// Search queries OpenAlex and maps works to raw results.
func (p *OpenAlex) Search(ctx context.Context, query types.ProviderQuery) ([]types.RawResult, error) {
	q := strings.TrimSpace(query.Text)
	if q == "" {
		return nil, fmt.Errorf("empty OpenAlex query")
	}

	perPage := query.PageSize
	if perPage <= 0 {
		perPage = 10
	}
	if perPage > 200 {
		perPage = 200
	}
	page := query.Page
	if page <= 0 {
		page = 1
	}

	params := url.Values{
		"search":   {q},
		"per_page": {strconv.Itoa(perPage)},
		"page":     {strconv.Itoa(page)},
	}

	var filters []string
	if tr := query.TimeRange; !tr.IsZero() {
		if tr.From != "" {
			filters = append(filters, "from_publication_date:"+tr.From)
		}
		if tr.To != "" {
			filters = append(filters, "to_publication_date:"+tr.To)
		}
	}
	if len(filters) > 0 {
		params.Set("filter", strings.Join(filters, ","))
	}
	if p.Email != "" {
		params.Set("mailto", p.Email)
	}

	var oar openAlexResponse
	if err := p.Client.GetJSON(ctx, "OpenAlex", openAlexSearchBase+"?"+params.Encode(), nil, &oar); err != nil {
		return nil, err
	}

	results := make([]types.RawResult, 0, len(oar.Results))
	for _, work := range oar.Results {
		doi := strings.TrimPrefix(work.DOI, "https://doi.org/")
		r := types.RawResult{
			Title:     work.Title,
			Snippet:   reconstructAbstract(work.AbstractInvertedIndex),
			Lang:      work.Language,
			Date:      work.PublicationDate,
			Venue:     work.PrimaryLocation.Source.DisplayName,
			DOI:       doi,
			Citations: work.CitedByCount,
		}
		if r.Title == "" {
			r.Title = "Untitled"
		}
		switch {
		case work.DOI != "":
			r.URL = work.DOI
		case work.PrimaryLocation.LandingPageURL != "":
			r.URL = work.PrimaryLocation.LandingPageURL
		default:
			r.URL = work.ID
		}
		if r.Date == "" && work.PublicationYear > 0 {
			r.Date = fmt.Sprintf("%d-01-01", work.PublicationYear)
		}
		for _, authorship := range work.Authorships {
			if authorship.Author.DisplayName != "" {
				r.Authors = append(r.Authors, authorship.Author.DisplayName)
			}
		}
		if work.OpenAccess.IsOA {
			r.RelevanceHint = 0.2
		}
		results = append(results, r)
	}
	return results, nil
}

// reconstructAbstract converts OpenAlex's abstract_inverted_index back to
// plain text. The inverted index maps each word to a list of positions
// where that word appears.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Meta    openAlexMeta   `json:"meta"`
	Results []openAlexWork `json:"results"`
}

type openAlexMeta struct {
	Count   int `json:"count"`
	PerPage int `json:"per_page"`
	Page    int `json:"page"`
}

type openAlexWork struct {
	ID                    string               `json:"id"`
	Title                 string               `json:"title"`
	DOI                   string               `json:"doi"`
	Language              string               `json:"language"`
	PublicationDate       string               `json:"publication_date"`
	PublicationYear       int                  `json:"publication_year"`
	CitedByCount          *int                 `json:"cited_by_count"`
	Authorships           []openAlexAuthorship `json:"authorships"`
	AbstractInvertedIndex map[string][]int     `json:"abstract_inverted_index"`
	OpenAccess            openAlexOpenAccess   `json:"open_access"`
	PrimaryLocation       openAlexLocation     `json:"primary_location"`
}

type openAlexAuthorship struct {
	Author openAlexAuthor `json:"author"`
}

type openAlexAuthor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type openAlexOpenAccess struct {
	IsOA     bool   `json:"is_oa"`
	OAStatus string `json:"oa_status"`
	OAURL    string `json:"oa_url"`
}

type openAlexLocation struct {
	LandingPageURL string         `json:"landing_page_url"`
	Source         openAlexSource `json:"source"`
}

type openAlexSource struct {
	DisplayName string `json:"display_name"`
}
