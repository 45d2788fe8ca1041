// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/pdiddy/metasearch/pkg/types"
)

// Normalize maps provider records one-to-one onto the shared Result shape,
// tagging each with source. Input order is preserved. Score starts at zero
// and Why empty.
func Normalize(source string, raw []types.RawResult) []types.Result {
	out := make([]types.Result, len(raw))
	for i, r := range raw {
		out[i] = types.Result{
			ID:        resultID(r),
			Title:     r.Title,
			URL:       r.URL,
			Snippet:   r.Snippet,
			Lang:      r.Lang,
			Date:      r.Date,
			Authors:   slices.Clone(r.Authors),
			Venue:     r.Venue,
			DOI:       r.DOI,
			Citations: cloneInt(r.Citations),
			Source:    source,
			Why:       []types.WhyEntry{},
		}
	}
	return out
}

// resultID hashes the first present of DOI, URL, title. Records with the
// same hashable key share an ID; dedup uses its own key.
func resultID(r types.RawResult) string {
	key := r.DOI
	if key == "" {
		key = r.URL
	}
	if key == "" {
		key = r.Title
	}
	return strconv.FormatUint(xxhash.Sum64String(key), 16)
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
