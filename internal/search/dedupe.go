// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"net/url"
	"strings"

	"github.com/pdiddy/metasearch/pkg/types"
)

// Dedupe merges records that share a dedup key. The output keeps the order
// in which each key was first seen. Records without DOI, URL, or title have
// no key and are always kept.
func Dedupe(results []types.Result) []types.Result {
	index := make(map[string]int, len(results)) // dedup key → position in out
	out := make([]types.Result, 0, len(results))

	for _, r := range results {
		key := DedupKey(r)
		if key == "" {
			out = append(out, r)
			continue
		}
		if i, ok := index[key]; ok {
			out[i] = merge(out[i], r)
			continue
		}
		index[key] = len(out)
		out = append(out, r)
	}
	return out
}

// DedupKey derives the identity used for cross-source merging: the
// lower-cased DOI, else the normalized URL, else the lower-cased trimmed
// title. It returns "" when none is present.
func DedupKey(r types.Result) string {
	if r.DOI != "" {
		return "doi:" + strings.ToLower(r.DOI)
	}
	if u := normalizeURL(r.URL); u != "" {
		return "url:" + u
	}
	if t := strings.ToLower(strings.TrimSpace(r.Title)); t != "" {
		return "title:" + t
	}
	return ""
}

// normalizeURL returns host+path with trailing slashes stripped. Strings
// that do not parse as absolute URLs fall back to their lower-cased form.
func normalizeURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return strings.ToLower(raw)
	}
	return strings.ToLower(u.Hostname()) + strings.TrimRight(u.Path, "/")
}

// merge folds incoming into existing. The winner is whichever has more
// citations, ties going to existing. Fields not taken from the winner keep
// existing's value, so the first-seen record's fields persist unless the
// rules below say otherwise.
func merge(existing, incoming types.Result) types.Result {
	winner := existing
	if incoming.CitationCount() > existing.CitationCount() {
		winner = incoming
	}

	m := existing
	if winner.Title != "" {
		m.Title = winner.Title
	}
	if winner.URL != "" {
		m.URL = winner.URL
	}
	if m.Snippet == "" {
		m.Snippet = winner.Snippet
	}
	if m.Venue == "" {
		m.Venue = winner.Venue
	}
	if m.Date == "" {
		m.Date = winner.Date
	}
	if m.DOI == "" {
		m.DOI = winner.DOI
	}
	if len(m.Authors) == 0 {
		m.Authors = winner.Authors
	}
	m.Citations = maxCitations(existing.Citations, incoming.Citations)

	if incoming.Score > m.Score {
		m.Score = incoming.Score
	}
	if len(m.Why) == 0 && len(incoming.Why) > 0 {
		m.Why = incoming.Why
	}
	return m
}

// maxCitations keeps the larger count. An absent count only survives when
// both sides are absent.
func maxCitations(a, b *int) *int {
	switch {
	case a == nil:
		return cloneInt(b)
	case b == nil:
		return cloneInt(a)
	case *b > *a:
		return cloneInt(b)
	default:
		return cloneInt(a)
	}
}
