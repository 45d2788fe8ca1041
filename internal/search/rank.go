// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"cmp"
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/metasearch/pkg/types"
)

// Factor weights.
const (
	weightLanguageMatch     = 0.30
	weightLanguageExcluded  = -0.40
	weightScholarlySource   = 0.25
	weightFreshness         = 0.20
	weightCitations         = 0.25
	weightDomainBoost       = 0.20
	weightDomainBlock       = -0.50
	weightMainstreamPenalty = 0.30

	// freshnessHorizonYears is the age at which freshness decays to zero.
	freshnessHorizonYears = 10.0

	// citationSaturation divides ln(1+citations); the factor saturates at 1.
	citationSaturation = 5.0
)

// scholarlySources receive the scholarly-source boost.
var scholarlySources = map[string]bool{
	"arxiv":           true,
	"semanticscholar": true,
}

// mainstreamSuffixes mark commercial hosts eligible for the mainstream penalty.
var mainstreamSuffixes = []string{".com", ".co", ".tv"}

// dateLayouts are tried in order when parsing a record date.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
	time.RFC1123Z,
	time.RFC1123,
}

// Ranker scores and orders records against a profile. Now is the clock used
// for freshness; tests freeze it.
type Ranker struct {
	Now func() time.Time
}

// NewRanker returns a Ranker on the wall clock.
func NewRanker() *Ranker {
	return &Ranker{Now: time.Now}
}

// Rank scores every record and returns them sorted by descending score.
// Equal scores keep their input order. The input slice is not modified.
func (rk *Ranker) Rank(results []types.Result, profile types.Profile) []types.Result {
	now := time.Now()
	if rk != nil && rk.Now != nil {
		now = rk.Now()
	}

	out := make([]types.Result, len(results))
	for i, r := range results {
		out[i] = Score(r, profile, now)
	}
	slices.SortStableFunc(out, func(a, b types.Result) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}

// Score computes a record's score and rationale from scratch. Any previous
// score and why list on r are replaced.
func Score(r types.Result, profile types.Profile, now time.Time) types.Result {
	var (
		score float64
		why   = []types.WhyEntry{}
	)
	add := func(key types.Factor, weight float64, note string) {
		score += weight
		why = append(why, types.WhyEntry{Key: key, Weight: weight, Note: note})
	}

	if r.Lang != "" {
		if slices.Contains(profile.PreferredLangs, r.Lang) {
			add(types.FactorLanguageMatch, weightLanguageMatch, r.Lang)
		}
		if slices.Contains(profile.ExcludeLangs, r.Lang) {
			add(types.FactorLanguageExcluded, weightLanguageExcluded, r.Lang)
		}
	}

	if scholarlySources[r.Source] {
		add(types.FactorScholarlySource, weightScholarlySource, r.Source)
	}

	if recency := Recency(r.Date, now); recency > 0 {
		add(types.FactorFreshness, weightFreshness*recency, r.Date)
	}

	if r.Citations != nil {
		c := float64(*r.Citations)
		add(types.FactorCitationWeight, math.Min(1, math.Log1p(c)/citationSaturation)*weightCitations, strconv.Itoa(*r.Citations))
	}

	if host := Hostname(r.URL); host != "" {
		if hasAnySuffix(host, profile.Domain.Boost) {
			add(types.FactorDomainBoost, weightDomainBoost, host)
		}
		if hasAnySuffix(host, profile.Domain.Block) {
			add(types.FactorDomainBlock, weightDomainBlock, host)
		}
		if profile.MainstreamPenalty > 0 && hasAnySuffix(host, mainstreamSuffixes) {
			add(types.FactorMainstreamPenalty, -weightMainstreamPenalty*profile.MainstreamPenalty, host)
		}
	}

	r.Score = score
	r.Why = why
	return r
}

// Recency returns the linear freshness measure for date: 1 at publication,
// 0 after ten years. Missing or unparseable dates yield 0.
func Recency(date string, now time.Time) float64 {
	t, ok := ParseDate(date)
	if !ok {
		return 0
	}
	ageYears := now.Sub(t).Hours() / 24 / 365
	return math.Max(0, 1-math.Min(1, ageYears/freshnessHorizonYears))
}

// ParseDate accepts the date shapes providers emit: RFC 3339 timestamps,
// plain dates, year-month, and bare years.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Hostname returns the lower-cased host of rawURL, or "" when the string is
// not an absolute URL. Hosts are case-insensitive; language codes and
// profile suffixes are matched exactly.
func Hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

func hasAnySuffix(host string, suffixes []string) bool {
	for _, s := range suffixes {
		if s != "" && strings.HasSuffix(host, s) {
			return true
		}
	}
	return false
}
