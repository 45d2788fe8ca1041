// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pdiddy/metasearch/internal/httputil"
	"github.com/pdiddy/metasearch/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// Arxiv queries the arXiv Atom API.
type Arxiv struct {
	Client *httputil.Client
}

// Name returns the source identifier.
func (p *Arxiv) Name() string { return "arxiv" }

// Search queries the arXiv API and maps feed entries to raw results.
func (p *Arxiv) Search(ctx context.Context, query types.ProviderQuery) ([]types.RawResult, error) {
	q := buildArxivQuery(query)
	if q == "" {
		return nil, fmt.Errorf("empty arXiv query")
	}

	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	query.PageSize = pageSize

	reqURL := fmt.Sprintf("%s?search_query=%s&start=%d&max_results=%d",
		arxivAPIBase, q, query.Offset(), pageSize)

	var feed arxivFeed
	if err := p.Client.GetXML(ctx, "arXiv", reqURL, nil, &feed); err != nil {
		return nil, err
	}

	results := make([]types.RawResult, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		r := types.RawResult{
			Title:   collapseSpace(entry.Title),
			URL:     entry.link(),
			Snippet: strings.TrimSpace(entry.Summary),
			Lang:    "en",
			Date:    strings.TrimSpace(entry.Published),
			Venue:   "arXiv",
			DOI:     strings.TrimSpace(entry.DOI),
		}
		if r.Title == "" {
			r.Title = "Untitled"
		}
		for _, a := range entry.Authors {
			if name := strings.TrimSpace(a.Name); name != "" {
				r.Authors = append(r.Authors, name)
			}
		}
		if strings.TrimSpace(entry.Comment) != "" {
			r.RelevanceHint = 0.1
		}
		results = append(results, r)
	}
	return results, nil
}

// buildArxivQuery constructs the search_query parameter: every term under
// all:, plus a submittedDate window when the time range is set.
func buildArxivQuery(q types.ProviderQuery) string {
	terms := strings.Fields(q.Text)
	if len(terms) == 0 {
		return ""
	}
	for i, t := range terms {
		terms[i] = url.QueryEscape(t)
	}
	s := "all:" + strings.Join(terms, "+")

	if !q.TimeRange.IsZero() {
		from, to := "*", "*"
		if d := compactDate(q.TimeRange.From); d != "" {
			from = d + "0000"
		}
		if d := compactDate(q.TimeRange.To); d != "" {
			to = d + "2359"
		}
		s += "+AND+submittedDate:[" + from + "+TO+" + to + "]"
	}
	return s
}

// compactDate turns "2023-04-05" into "20230405"; anything else yields "".
func compactDate(s string) string {
	d := strings.ReplaceAll(strings.TrimSpace(s), "-", "")
	if len(d) != 8 {
		return ""
	}
	for _, c := range d {
		if c < '0' || c > '9' {
			return ""
		}
	}
	return d
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
	Links     []arxivLink   `xml:"link"`
	DOI       string        `xml:"http://arxiv.org/schemas/atom doi"`
	Comment   string        `xml:"http://arxiv.org/schemas/atom comment"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

// link returns the first link href, falling back to the entry id.
func (e arxivEntry) link() string {
	if len(e.Links) > 0 && e.Links[0].Href != "" {
		return e.Links[0].Href
	}
	return strings.TrimSpace(e.ID)
}
