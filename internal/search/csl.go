// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/metasearch/pkg/types"
)

// FormatCSL writes ranked results as a CSL-YAML list to w.
func FormatCSL(resp types.Response, w io.Writer) error {
	items := make([]types.CSLItem, len(resp.Results))
	for i, r := range resp.Results {
		items[i] = ToCSLItem(r)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// ToCSLItem converts a Result to a CSLItem. Encyclopedia pages map to
// entry-encyclopedia and PatentsView records to patent; everything else is
// an article.
func ToCSLItem(r types.Result) types.CSLItem {
	item := types.CSLItem{
		ID:             r.ID,
		Type:           cslType(r),
		Title:          r.Title,
		Abstract:       r.Snippet,
		DOI:            r.DOI,
		URL:            r.URL,
		ContainerTitle: r.Venue,
		Language:       r.Lang,
		Source:         r.Source,
		CitationCount:  r.Citations,
	}

	if item.Type == "patent" {
		item.Authority = "United States Patent and Trademark Office"
		if i := strings.LastIndex(r.URL, "/"); i >= 0 {
			item.Number = r.URL[i+1:]
		}
	}

	for _, a := range r.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}

	if t, ok := ParseDate(r.Date); ok {
		parts := []int{t.Year(), int(t.Month()), t.Day()}
		switch len(strings.TrimSpace(r.Date)) {
		case 4:
			parts = parts[:1]
		case 7:
			parts = parts[:2]
		}
		item.Issued = &types.CSLDate{DateParts: [][]int{parts}}
	}
	return item
}

func cslType(r types.Result) string {
	switch {
	case r.Source == "wikipedia":
		return "entry-encyclopedia"
	case r.Source == "patentsview":
		return "patent"
	default:
		return "article"
	}
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) types.CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return types.CSLName{Literal: name}
	}
	return types.CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
