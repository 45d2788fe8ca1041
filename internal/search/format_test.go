// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/metasearch/pkg/types"
)

func sampleResponse() types.Response {
	return types.Response{
		Query: "attention",
		Results: []types.Result{
			{
				ID:     "1",
				Title:  strings.Repeat("Very long title ", 8),
				Source: "arxiv",
				Score:  0.55,
				Why: []types.WhyEntry{
					{Key: types.FactorLanguageMatch, Weight: 0.3, Note: "en"},
					{Key: types.FactorScholarlySource, Weight: 0.25, Note: "arxiv"},
				},
			},
			{ID: "2", Title: "Blocked", Source: "wikipedia", Score: -0.5,
				Why: []types.WhyEntry{{Key: types.FactorDomainBlock, Weight: -0.5}}},
		},
		Meta: types.Meta{
			TookMs:            42,
			DuplicatesRemoved: 1,
			PerSource: map[string]types.SourceMeta{
				"wikipedia":       {TookMs: 10, Count: 1},
				"arxiv":           {TookMs: 20, Count: 2},
				"semanticscholar": {TookMs: 30, Errors: []string{"Semantic Scholar responded with 500"}},
			},
		},
	}
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(sampleResponse(), &buf)
	out := buf.String()

	assert.Contains(t, out, "lang_match+0.30 scholarly+0.25")
	assert.Contains(t, out, "domain_block-0.50")
	assert.Contains(t, out, "...")
	assert.Contains(t, out, "2 results (1 duplicates removed) in 42ms")
	assert.Contains(t, out, "failed after 30ms: Semantic Scholar responded with 500")

	// Footer lists sources alphabetically.
	ai := strings.Index(out, "  arxiv ")
	si := strings.Index(out, "  semanticscholar ")
	wi := strings.LastIndex(out, "  wikipedia ")
	require.True(t, ai >= 0 && si >= 0 && wi >= 0, out)
	assert.Less(t, ai, si)
	assert.Less(t, si, wi)
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(types.Response{Meta: types.Meta{PerSource: map[string]types.SourceMeta{
		"arxiv": {Count: 0},
	}}}, &buf)
	assert.Contains(t, buf.String(), "No results found.")
	assert.Contains(t, buf.String(), "arxiv")
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(sampleResponse(), &buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "attention", decoded["q"])

	meta := decoded["meta"].(map[string]any)
	assert.EqualValues(t, 1, meta["duplicatesRemoved"])
	per := meta["perSource"].(map[string]any)
	assert.Contains(t, per, "semanticscholar")

	results := decoded["results"].([]any)
	first := results[0].(map[string]any)
	why := first["why"].([]any)
	assert.Equal(t, "lang_match", why[0].(map[string]any)["key"])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))

	long := strings.Repeat("ø", 40)
	got := truncate(long, 10)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("ø", 7)+"...", got)
	assert.Equal(t, "Ørsted", truncate("Ørsted", 10))
}
