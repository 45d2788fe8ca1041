// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/metasearch/pkg/types"
)

var frozenNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func frozenRanker() *Ranker {
	return &Ranker{Now: func() time.Time { return frozenNow }}
}

func intp(n int) *int { return &n }

func whyByKey(why []types.WhyEntry) map[types.Factor]types.WhyEntry {
	m := make(map[types.Factor]types.WhyEntry, len(why))
	for _, e := range why {
		m[e.Key] = e
	}
	return m
}

func sumWhy(why []types.WhyEntry) float64 {
	var s float64
	for _, e := range why {
		s += e.Weight
	}
	return s
}

func TestScoreScholarlyExample(t *testing.T) {
	r := types.Result{
		Title:     "Fresh paper",
		URL:       "https://cs.stanford.edu/paper",
		Lang:      "en",
		Source:    "arxiv",
		Date:      frozenNow.Format("2006-01-02T15:04:05Z07:00"),
		Citations: intp(100),
	}
	profile := types.Profile{
		PreferredLangs: []string{"en"},
		Domain:         types.DomainRules{Boost: []string{".edu"}},
	}

	got := Score(r, profile, frozenNow)
	why := whyByKey(got.Why)

	require.Len(t, got.Why, 5)
	assert.InDelta(t, 0.30, why[types.FactorLanguageMatch].Weight, 1e-9)
	assert.Equal(t, "en", why[types.FactorLanguageMatch].Note)
	assert.InDelta(t, 0.25, why[types.FactorScholarlySource].Weight, 1e-9)
	assert.InDelta(t, 0.20, why[types.FactorFreshness].Weight, 1e-9)
	assert.InDelta(t, 0.25*math.Log1p(100)/5, why[types.FactorCitationWeight].Weight, 1e-9)
	assert.Equal(t, "100", why[types.FactorCitationWeight].Note)
	assert.InDelta(t, 0.20, why[types.FactorDomainBoost].Weight, 1e-9)
	assert.Equal(t, "cs.stanford.edu", why[types.FactorDomainBoost].Note)

	assert.NotContains(t, why, types.FactorMainstreamPenalty)
	assert.NotContains(t, why, types.FactorDomainBlock)
	assert.InDelta(t, 1.1807, got.Score, 1e-3)
	assert.InDelta(t, sumWhy(got.Why), got.Score, 1e-9)
}

func TestScoreCitationsSaturate(t *testing.T) {
	got := Score(types.Result{Citations: intp(1000)}, types.Profile{}, frozenNow)
	require.Len(t, got.Why, 1)
	assert.Equal(t, types.FactorCitationWeight, got.Why[0].Key)
	assert.InDelta(t, 0.25, got.Why[0].Weight, 1e-9)
}

func TestScoreBoundaries(t *testing.T) {
	t.Run("unparseable date has no freshness entry", func(t *testing.T) {
		got := Score(types.Result{Date: "sometime last spring"}, types.Profile{}, frozenNow)
		assert.Empty(t, got.Why)
		assert.Zero(t, got.Score)
		assert.NotNil(t, got.Why)
	})

	t.Run("zero citations contribute zero weight", func(t *testing.T) {
		got := Score(types.Result{Citations: intp(0)}, types.Profile{}, frozenNow)
		require.Len(t, got.Why, 1)
		assert.Equal(t, types.FactorCitationWeight, got.Why[0].Key)
		assert.Zero(t, got.Why[0].Weight)
	})

	t.Run("absent citations have no entry", func(t *testing.T) {
		got := Score(types.Result{}, types.Profile{}, frozenNow)
		assert.Empty(t, got.Why)
	})

	t.Run("old date decays to zero", func(t *testing.T) {
		got := Score(types.Result{Date: "2001-01-01"}, types.Profile{}, frozenNow)
		assert.Empty(t, got.Why)
	})
}

func TestScoreLanguageAndDomainRules(t *testing.T) {
	profile := types.Profile{
		PreferredLangs:    []string{"no", "sv"},
		ExcludeLangs:      []string{"ru"},
		MainstreamPenalty: 0.5,
		Domain: types.DomainRules{
			Boost: []string{".no"},
			Block: []string{".com"},
		},
	}

	got := Score(types.Result{Lang: "ru", URL: "https://news.example.com/a"}, profile, frozenNow)
	why := whyByKey(got.Why)
	assert.InDelta(t, -0.40, why[types.FactorLanguageExcluded].Weight, 1e-9)
	assert.InDelta(t, -0.50, why[types.FactorDomainBlock].Weight, 1e-9)
	assert.InDelta(t, -0.15, why[types.FactorMainstreamPenalty].Weight, 1e-9)
	assert.Equal(t, "news.example.com", why[types.FactorMainstreamPenalty].Note)
	assert.NotContains(t, why, types.FactorLanguageMatch)
	assert.InDelta(t, -1.05, got.Score, 1e-9)

	got = Score(types.Result{Lang: "no", URL: "https://UIO.NO/x", Source: "wikipedia"}, profile, frozenNow)
	why = whyByKey(got.Why)
	assert.Contains(t, why, types.FactorLanguageMatch)
	assert.Contains(t, why, types.FactorDomainBoost)
	assert.NotContains(t, why, types.FactorScholarlySource)
	assert.NotContains(t, why, types.FactorMainstreamPenalty)

	// Mainstream penalty needs a positive coefficient.
	got = Score(types.Result{URL: "https://shop.example.com"}, types.Profile{}, frozenNow)
	assert.Empty(t, got.Why)
}

func TestScoreMatchesLanguagesAndSuffixesExactly(t *testing.T) {
	profile := types.Profile{
		PreferredLangs: []string{"EN"},
		ExcludeLangs:   []string{"RU"},
		Domain: types.DomainRules{
			Boost: []string{".EDU"},
			Block: []string{".COM"},
		},
	}
	for _, r := range []types.Result{
		{Lang: "en", URL: "https://mit.edu/x"},
		{Lang: "ru", URL: "https://shop.com/x"},
	} {
		got := Score(r, profile, frozenNow)
		assert.Empty(t, got.Why, "%s %s", r.Lang, r.URL)
	}
}

func TestScoreMonotonicInMainstreamPenalty(t *testing.T) {
	tests := []struct {
		url        string
		mainstream bool
	}{
		{"https://news.example.com/a", true},
		{"https://start.co/a", true},
		{"https://channel.tv/a", true},
		{"https://cs.stanford.edu/a", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			r := types.Result{Lang: "en", URL: tt.url, Citations: intp(7)}
			var scores []float64
			for _, p := range []float64{0, 0.5, 1} {
				profile := types.Profile{PreferredLangs: []string{"en"}, MainstreamPenalty: p}
				scores = append(scores, Score(r, profile, frozenNow).Score)
			}
			for i := 1; i < len(scores); i++ {
				if tt.mainstream {
					assert.Less(t, scores[i], scores[i-1])
				} else {
					assert.Equal(t, scores[i-1], scores[i])
				}
			}
		})
	}
}

func TestScoreEmitsOnlyKnownFactors(t *testing.T) {
	profile := types.Profile{
		PreferredLangs:    []string{"en"},
		ExcludeLangs:      []string{"en"},
		MainstreamPenalty: 1,
		Domain: types.DomainRules{
			Boost: []string{".com"},
			Block: []string{".com"},
		},
	}
	r := types.Result{
		Lang:      "en",
		Source:    "arxiv",
		Date:      "2025-01-01",
		Citations: intp(3),
		URL:       "https://example.com/paper",
	}
	got := Score(r, profile, frozenNow)

	seen := make(map[types.Factor]bool)
	for _, e := range got.Why {
		assert.True(t, e.Key.Valid(), "unknown factor %q", e.Key)
		seen[e.Key] = true
	}
	for _, f := range types.Factors() {
		assert.True(t, seen[f], "factor %q never fired", f)
	}
	assert.False(t, types.Factor("bogus").Valid())
}

func TestScoreReplacesPreviousRationale(t *testing.T) {
	r := types.Result{Score: 9, Why: []types.WhyEntry{{Key: types.FactorDomainBlock, Weight: 9}}}
	got := Score(r, types.Profile{}, frozenNow)
	assert.Zero(t, got.Score)
	assert.Empty(t, got.Why)
}

func TestRankOrderingAndStability(t *testing.T) {
	in := []types.Result{
		{ID: "a", Source: "wikipedia"},
		{ID: "b", Source: "arxiv"},
		{ID: "c", Source: "wikipedia"},
		{ID: "d", Source: "semanticscholar", Citations: intp(10)},
	}
	got := frozenRanker().Rank(in, types.Profile{})

	ids := make([]string, len(got))
	for i, r := range got {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"d", "b", "a", "c"}, ids)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
	assert.Zero(t, in[1].Score, "input must not be modified")
}

func TestRankDeterministic(t *testing.T) {
	in := []types.Result{
		{ID: "a", Lang: "en", Date: "2024-01-01", URL: "https://a.org"},
		{ID: "b", Lang: "de", Date: "2020-05-05", URL: "https://b.com", Citations: intp(3)},
		{ID: "c", Source: "arxiv", Date: "2025"},
	}
	profile := types.Profile{PreferredLangs: []string{"en"}, MainstreamPenalty: 0.3}
	rk := frozenRanker()
	assert.Equal(t, rk.Rank(in, profile), rk.Rank(in, profile))
}

func TestRankMonotonicInCitations(t *testing.T) {
	rk := frozenRanker()
	prev := math.Inf(-1)
	for _, c := range []int{0, 1, 5, 50, 500, 5000} {
		got := rk.Rank([]types.Result{{Citations: intp(c)}}, types.Profile{})
		assert.GreaterOrEqual(t, got[0].Score, prev)
		prev = got[0].Score
	}
}

func TestRecency(t *testing.T) {
	assert.InDelta(t, 1.0, Recency("2025-06-01", frozenNow), 0.01)
	assert.InDelta(t, 0.5, Recency("2020-06-02", frozenNow), 0.01)
	assert.Zero(t, Recency("1990-01-01", frozenNow))
	assert.Zero(t, Recency("", frozenNow))
	assert.Zero(t, Recency("not a date", frozenNow))
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{
		"2017-06-12T17:57:34Z",
		"2017-06-12T17:57:34.123+02:00",
		"2017-06-12",
		"2017-06",
		"2017",
		" 2017-06-12 ",
	} {
		d, ok := ParseDate(s)
		assert.True(t, ok, s)
		assert.Equal(t, 2017, d.Year(), s)
	}
	_, ok := ParseDate("12/06/2017")
	assert.False(t, ok)
}

func TestHostname(t *testing.T) {
	assert.Equal(t, "example.com", Hostname("https://Example.COM:8080/path"))
	assert.Empty(t, Hostname("not a url"))
	assert.Empty(t, Hostname(""))
}
