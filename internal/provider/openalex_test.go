// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"net/http"
	"testing"

	"github.com/pdiddy/metasearch/pkg/types"
)

func TestReconstructAbstract(t *testing.T) {
	tests := []struct {
		name  string
		index map[string][]int
		want  string
	}{
		{"nil map", nil, ""},
		{"single word", map[string][]int{"hello": {0}}, "hello"},
		{
			"repeated word",
			map[string][]int{"the": {0, 4}, "cat": {1}, "sat": {2}, "on": {3}, "mat": {5}},
			"the cat sat on the mat",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reconstructAbstract(tt.index); got != tt.want {
				t.Errorf("reconstructAbstract() = %q, want %q", got, tt.want)
			}
		})
	}
}

const sampleOpenAlexJSON = `{
  "meta": {"count": 3, "per_page": 3, "page": 1},
  "results": [
    {
      "id": "https://openalex.org/W2741809807",
      "title": "Attention Is All You Need",
      "doi": "https://doi.org/10.5555/3295222.3295349",
      "language": "en",
      "publication_date": "2017-06-12",
      "publication_year": 2017,
      "cited_by_count": 120000,
      "authorships": [{"author": {"id": "A1", "display_name": "Ashish Vaswani"}}],
      "abstract_inverted_index": {"We": [0], "propose": [1], "transformers": [2]},
      "open_access": {"is_oa": true},
      "primary_location": {"landing_page_url": "https://papers.nips.cc/x", "source": {"display_name": "NeurIPS"}}
    },
    {
      "id": "https://openalex.org/W2",
      "title": "Landing only",
      "doi": null,
      "language": "de",
      "publication_date": "",
      "publication_year": 2018,
      "cited_by_count": 0,
      "primary_location": {"landing_page_url": "https://example.de/paper"}
    },
    {
      "id": "https://openalex.org/W3",
      "title": null
    }
  ]
}`

func TestOpenAlexSearch(t *testing.T) {
	ts := newFixedServer(t, http.StatusOK, "application/json", sampleOpenAlexJSON)
	swapBase(t, &openAlexSearchBase, ts.URL)

	p := &OpenAlex{Client: testClient(ts.Server), Email: "me@example.org"}
	got, err := p.Search(context.Background(), types.ProviderQuery{
		Text:      "attention",
		Page:      2,
		PageSize:  3,
		TimeRange: &types.TimeRange{From: "2017-01-01", To: "2019-12-31"},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	q := ts.last.URL.Query()
	for param, want := range map[string]string{
		"search":   "attention",
		"per_page": "3",
		"page":     "2",
		"filter":   "from_publication_date:2017-01-01,to_publication_date:2019-12-31",
		"mailto":   "me@example.org",
	} {
		if v := q.Get(param); v != want {
			t.Errorf("%s = %q, want %q", param, v, want)
		}
	}

	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}

	r := got[0]
	if r.DOI != "10.5555/3295222.3295349" {
		t.Errorf("DOI = %q", r.DOI)
	}
	if r.URL != "https://doi.org/10.5555/3295222.3295349" {
		t.Errorf("URL = %q", r.URL)
	}
	if r.Snippet != "We propose transformers" {
		t.Errorf("Snippet = %q", r.Snippet)
	}
	if r.Venue != "NeurIPS" || r.Lang != "en" {
		t.Errorf("Venue/Lang = %q/%q", r.Venue, r.Lang)
	}
	if r.Citations == nil || *r.Citations != 120000 {
		t.Errorf("Citations = %v", r.Citations)
	}
	if r.RelevanceHint != 0.2 {
		t.Errorf("RelevanceHint = %v", r.RelevanceHint)
	}

	r = got[1]
	if r.URL != "https://example.de/paper" {
		t.Errorf("landing URL = %q", r.URL)
	}
	if r.Date != "2018-01-01" {
		t.Errorf("Date = %q", r.Date)
	}
	if r.Citations == nil || *r.Citations != 0 {
		t.Errorf("Citations = %v, want explicit 0", r.Citations)
	}

	r = got[2]
	if r.Title != "Untitled" || r.URL != "https://openalex.org/W3" {
		t.Errorf("Title/URL = %q/%q", r.Title, r.URL)
	}
	if r.Citations != nil {
		t.Errorf("Citations = %d, want nil", *r.Citations)
	}
}

func TestOpenAlexSearchDefaults(t *testing.T) {
	ts := newFixedServer(t, http.StatusOK, "application/json", `{"results":[]}`)
	swapBase(t, &openAlexSearchBase, ts.URL)

	p := &OpenAlex{Client: testClient(ts.Server)}
	got, err := p.Search(context.Background(), types.ProviderQuery{Text: "x", PageSize: 500})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d results", len(got))
	}
	q := ts.last.URL.Query()
	if v := q.Get("per_page"); v != "200" {
		t.Errorf("per_page = %q, want capped 200", v)
	}
	if v := q.Get("page"); v != "1" {
		t.Errorf("page = %q, want 1", v)
	}
	if q.Has("filter") || q.Has("mailto") {
		t.Errorf("unexpected params: %v", q)
	}
}

func TestOpenAlexSearchErrors(t *testing.T) {
	ts := newFixedServer(t, http.StatusTooManyRequests, "application/json", `{}`)
	swapBase(t, &openAlexSearchBase, ts.URL)

	p := &OpenAlex{Client: testClient(ts.Server)}
	if _, err := p.Search(context.Background(), types.ProviderQuery{Text: "x"}); err == nil {
		t.Error("expected error for 429")
	}
	if _, err := p.Search(context.Background(), types.ProviderQuery{}); err == nil {
		t.Error("expected error for empty query")
	}
}
