// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pdiddy/metasearch/pkg/types"
)

// FormatTable writes a response as a human-readable table to w.
func FormatTable(resp types.Response, w io.Writer) {
	if len(resp.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
	} else {
		fmt.Fprintf(w, "%-4s  %-56s  %-16s  %-6s  %s\n",
			"Rank", "Title", "Source", "Score", "Why")
		fmt.Fprintln(w, strings.Repeat("-", 110))

		for i, r := range resp.Results {
			fmt.Fprintf(w, "%-4d  %-56s  %-16s  %6.2f  %s\n",
				i+1, truncate(r.Title, 56), r.Source, r.Score, formatWhy(r.Why))
		}
		fmt.Fprintf(w, "\n%d results", len(resp.Results))
		if resp.Meta.DuplicatesRemoved > 0 {
			fmt.Fprintf(w, " (%d duplicates removed)", resp.Meta.DuplicatesRemoved)
		}
		fmt.Fprintf(w, " in %dms\n", resp.Meta.TookMs)
	}

	for _, name := range sortedSources(resp.Meta) {
		sm := resp.Meta.PerSource[name]
		if sm.Failed() {
			fmt.Fprintf(w, "  %-16s  failed after %dms: %s\n", name, sm.TookMs, strings.Join(sm.Errors, "; "))
			continue
		}
		fmt.Fprintf(w, "  %-16s  %d results in %dms\n", name, sm.Count, sm.TookMs)
	}
}

// FormatJSON writes the full response as indented JSON to w.
func FormatJSON(resp types.Response, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// formatWhy renders rationale entries compactly, e.g. "lang_match+0.30 scholarly+0.25".
func formatWhy(why []types.WhyEntry) string {
	parts := make([]string, len(why))
	for i, e := range why {
		parts[i] = fmt.Sprintf("%s%+.2f", e.Key, e.Weight)
	}
	return strings.Join(parts, " ")
}

func sortedSources(meta types.Meta) []string {
	names := make([]string, 0, len(meta.PerSource))
	for name := range meta.PerSource {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// truncate shortens s to at most max runes, ending in "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
