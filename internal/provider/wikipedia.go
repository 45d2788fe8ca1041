// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/metasearch/internal/httputil"
	"github.com/pdiddy/metasearch/pkg/types"
)

// wikipediaBase overrides the per-language Wikipedia host. Tests point it
// at an httptest server; empty means https://<lang>.wikipedia.org.
var wikipediaBase = ""

// Wikipedia queries the Wikipedia REST title search.
type Wikipedia struct {
	Client *httputil.Client

	// Lang is the edition to query (default "en").
	Lang string
}

// Name returns the source identifier.
func (p *Wikipedia) Name() string { return "wikipedia" }

func (p *Wikipedia) lang() string {
	if p.Lang == "" {
		return "en"
	}
	return p.Lang
}

func (p *Wikipedia) base() string {
	if wikipediaBase != "" {
		return strings.TrimRight(wikipediaBase, "/")
	}
	return "https://" + p.lang() + ".wikipedia.org"
}

// Search runs a title search and maps pages to raw results.
func (p *Wikipedia) Search(ctx context.Context, query types.ProviderQuery) ([]types.RawResult, error) {
	q := strings.TrimSpace(query.Text)
	if q == "" {
		return nil, fmt.Errorf("empty Wikipedia query")
	}

	limit := query.PageSize
	if limit <= 0 {
		limit = 10
	}

	base := p.base()
	params := url.Values{
		"q":     {q},
		"limit": {strconv.Itoa(limit)},
	}
	reqURL := base + "/w/rest.php/v1/search/title?" + params.Encode()

	var wr wikipediaResponse
	if err := p.Client.GetJSON(ctx, "Wikipedia", reqURL, nil, &wr); err != nil {
		return nil, err
	}

	results := make([]types.RawResult, 0, len(wr.Pages))
	for _, page := range wr.Pages {
		if page.Title == "" {
			continue
		}
		r := types.RawResult{
			Title:         page.Title,
			URL:           base + "/wiki/" + articlePath(page.Title),
			Snippet:       page.Description,
			Lang:          p.lang(),
			Date:          page.Timestamp,
			Venue:         "Wikipedia",
			RelevanceHint: page.Score,
		}
		if r.Snippet == "" {
			r.Snippet = stripTags(page.Excerpt)
		}
		results = append(results, r)
	}
	return results, nil
}

// articlePath turns a page title into its /wiki/ path segment.
func articlePath(title string) string {
	return url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}

// stripTags removes the <span class="searchmatch"> markup Wikipedia puts in
// excerpts.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Wikipedia REST search JSON structures.
type wikipediaResponse struct {
	Pages []wikipediaPage `json:"pages"`
}

type wikipediaPage struct {
	ID          int     `json:"id"`
	Key         string  `json:"key"`
	Title       string  `json:"title"`
	Excerpt     string  `json:"excerpt"`
	Description string  `json:"description"`
	Timestamp   string  `json:"timestamp"`
	Score       float64 `json:"score"`
}
