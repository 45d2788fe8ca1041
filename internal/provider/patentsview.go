// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/metasearch/internal/httputil"
	"github.com/pdiddy/metasearch/pkg/types"
)

// patentsViewSearchBase is the PatentsView patent search endpoint. Declared
// as a var so tests can substitute an httptest server.
var patentsViewSearchBase = "https://search.patentsview.org/api/v1/patent/"

// patentsViewFields lists the fields requested from the API.
const patentsViewFields = `["patent_id","patent_title","patent_abstract","patent_date","patent_type","inventors.inventor_name_first","inventors.inventor_name_last"]`

// PatentsView queries the USPTO PatentsView API. The service requires an
// API key, so the registry only adds this provider when one is configured.
type PatentsView struct {
	Client *httputil.Client
	APIKey string
}

// Name returns the source identifier.
func (p *PatentsView) Name() string { return "patentsview" }

// Search queries PatentsView and maps patents to raw results.
func (p *PatentsView) Search(ctx context.Context, query types.ProviderQuery) ([]types.RawResult, error) {
	q := buildPatentsViewQuery(query)
	if q == "" {
		return nil, fmt.Errorf("empty PatentsView query")
	}

	size := query.PageSize
	if size <= 0 {
		size = 10
	}
	if size > 1000 {
		size = 1000
	}
	page := query.Page
	if page <= 0 {
		page = 1
	}

	params := url.Values{
		"q": {q},
		"f": {patentsViewFields},
		"o": {fmt.Sprintf(`{"size":%d,"page":%d}`, size, page)},
	}

	header := http.Header{}
	if p.APIKey != "" {
		header.Set("X-Api-Key", p.APIKey)
	}

	var pvr patentsViewResponse
	if err := p.Client.GetJSON(ctx, "PatentsView", patentsViewSearchBase+"?"+params.Encode(), header, &pvr); err != nil {
		return nil, err
	}

	results := make([]types.RawResult, 0, len(pvr.Patents))
	for _, patent := range pvr.Patents {
		r := types.RawResult{
			Title:   patent.PatentTitle,
			URL:     "https://patents.google.com/patent/US" + patent.PatentID,
			Snippet: patent.PatentAbstract,
			Lang:    "en",
			Date:    patent.PatentDate,
			Venue:   "USPTO",
		}
		for _, inv := range patent.Inventors {
			name := strings.TrimSpace(inv.InventorNameFirst + " " + inv.InventorNameLast)
			if name != "" {
				r.Authors = append(r.Authors, name)
			}
		}
		results = append(results, r)
	}
	return results, nil
}

// buildPatentsViewQuery constructs the JSON query parameter: a text match on
// title or abstract, and'ed with the patent date window when set.
func buildPatentsViewQuery(q types.ProviderQuery) string {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return ""
	}

	conditions := []string{
		fmt.Sprintf(`{"_or":[{"_text_any":{"patent_title":"%s"}},{"_text_any":{"patent_abstract":"%s"}}]}`,
			escapeJSON(text), escapeJSON(text)),
	}
	if tr := q.TimeRange; !tr.IsZero() {
		if tr.From != "" {
			conditions = append(conditions,
				fmt.Sprintf(`{"_gte":{"patent_date":"%s"}}`, escapeJSON(tr.From)))
		}
		if tr.To != "" {
			conditions = append(conditions,
				fmt.Sprintf(`{"_lte":{"patent_date":"%s"}}`, escapeJSON(tr.To)))
		}
	}

	if len(conditions) == 1 {
		return conditions[0]
	}
	return fmt.Sprintf(`{"_and":[%s]}`, strings.Join(conditions, ","))
}

// escapeJSON escapes a string for safe inclusion in a JSON string value.
func escapeJSON(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

// PatentsView API JSON structures.
type patentsViewResponse struct {
	Patents []patentsViewPatent `json:"patents"`
	Count   int                 `json:"count"`
	Total   int                 `json:"total_hits"`
}

type patentsViewPatent struct {
	PatentID       string                `json:"patent_id"`
	PatentTitle    string                `json:"patent_title"`
	PatentAbstract string                `json:"patent_abstract"`
	PatentDate     string                `json:"patent_date"`
	PatentType     string                `json:"patent_type"`
	Inventors      []patentsViewInventor `json:"inventors"`
}

type patentsViewInventor struct {
	InventorNameFirst string `json:"inventor_name_first"`
	InventorNameLast  string `json:"inventor_name_last"`
}
