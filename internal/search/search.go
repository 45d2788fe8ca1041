// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search is the aggregation core: it fans a query out to providers,
// normalizes their records, merges duplicates across sources, and ranks the
// survivors with an explainable score.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/metasearch/pkg/types"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// Provider searches one content source.
type Provider interface {
	Name() string
	Search(ctx context.Context, query types.ProviderQuery) ([]types.RawResult, error)
}

// Recorder observes the outcome of each provider dispatch.
type Recorder interface {
	ObserveDispatch(source string, took time.Duration, count int, err error)
}

// Orchestrator runs searches over a fixed set of providers. It holds no
// per-request state and is safe for concurrent use.
type Orchestrator struct {
	providers map[string]Provider
	defaults  []string
	ranker    *Ranker
	logger    *slog.Logger
	recorder  Recorder
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger used for per-source diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithRecorder attaches a dispatch recorder (e.g. Prometheus metrics).
func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

// WithRanker replaces the default wall-clock ranker.
func WithRanker(r *Ranker) Option {
	return func(o *Orchestrator) { o.ranker = r }
}

// New returns an Orchestrator over providers. The default source set is
// every provider, in the order given.
func New(providers []Provider, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		providers: make(map[string]Provider, len(providers)),
		ranker:    NewRanker(),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, p := range providers {
		name := p.Name()
		if _, dup := o.providers[name]; dup {
			continue
		}
		o.providers[name] = p
		o.defaults = append(o.defaults, name)
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Sources returns the default source set.
func (o *Orchestrator) Sources() []string {
	return append([]string(nil), o.defaults...)
}

// ResolveSources filters requested to registered sources, dropping
// duplicates. An empty request selects the default set.
func (o *Orchestrator) ResolveSources(requested []string) ([]string, error) {
	if len(requested) == 0 {
		if len(o.defaults) == 0 {
			return nil, ErrNoValidSources
		}
		return o.Sources(), nil
	}

	seen := make(map[string]bool, len(requested))
	var sources []string
	for _, s := range requested {
		s = strings.TrimSpace(s)
		if _, ok := o.providers[s]; !ok || seen[s] {
			continue
		}
		seen[s] = true
		sources = append(sources, s)
	}
	if len(sources) == 0 {
		return nil, ErrNoValidSources
	}
	return sources, nil
}

// dispatchOutcome is what one provider task reports back. Each task owns
// exactly one slot, so no locking is needed.
type dispatchOutcome struct {
	source  string
	results []types.Result
	took    time.Duration
	err     error
}

// Run executes req: it dispatches one task per resolved source, waits for
// all of them, then normalizes, deduplicates, and ranks the combined
// records. Provider failures are recorded in the response metadata and
// never returned as errors; only request validation fails the call.
func (o *Orchestrator) Run(ctx context.Context, req types.Request) (types.Response, error) {
	if strings.TrimSpace(req.Query) == "" {
		return types.Response{}, ErrEmptyQuery
	}
	sources, err := o.ResolveSources(req.Sources)
	if err != nil {
		return types.Response{}, err
	}

	start := time.Now()
	query := types.ProviderQuery{
		Text:      req.Query,
		Page:      req.Page,
		PageSize:  req.PageSize,
		TimeRange: req.Profile.TimeRange,
	}
	if query.Page <= 0 {
		query.Page = defaultPage
	}
	if query.PageSize <= 0 {
		query.PageSize = defaultPageSize
	}

	outcomes := make([]dispatchOutcome, len(sources))
	var wg sync.WaitGroup
	for i, name := range sources {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()
			outcomes[i] = o.dispatch(ctx, p, query)
		}(i, o.providers[name])
	}
	wg.Wait()

	meta := types.Meta{PerSource: make(map[string]types.SourceMeta, len(sources))}
	var collected []types.Result
	for _, out := range outcomes {
		sm := types.SourceMeta{TookMs: out.took.Milliseconds(), Count: len(out.results)}
		if out.err != nil {
			sm.Count = 0
			sm.Errors = []string{out.err.Error()}
		}
		meta.PerSource[out.source] = sm
		collected = append(collected, out.results...)
	}

	deduped := Dedupe(collected)
	meta.DuplicatesRemoved = len(collected) - len(deduped)
	ranked := o.ranker.Rank(deduped, req.Profile)
	meta.TookMs = time.Since(start).Milliseconds()

	o.logger.Debug("search complete",
		"query", req.Query,
		"sources", len(sources),
		"results", len(ranked),
		"duplicates", meta.DuplicatesRemoved,
		"took", time.Since(start))

	return types.Response{
		Query:   req.Query,
		Results: ranked,
		Meta:    meta,
	}, nil
}

// dispatch calls one provider and normalizes its records. A panicking
// provider is reported like any other failure.
func (o *Orchestrator) dispatch(ctx context.Context, p Provider, query types.ProviderQuery) (out dispatchOutcome) {
	name := p.Name()
	start := time.Now()
	out.source = name

	defer func() {
		if r := recover(); r != nil {
			out.results = nil
			out.err = fmt.Errorf("provider panicked: %v", r)
		}
		out.took = time.Since(start)
		if out.err != nil {
			o.logger.Warn("source failed", "source", name, "took", out.took, "err", out.err)
		} else {
			o.logger.Debug("source complete", "source", name, "took", out.took, "count", len(out.results))
		}
		if o.recorder != nil {
			o.recorder.ObserveDispatch(name, out.took, len(out.results), out.err)
		}
	}()

	raw, err := p.Search(ctx, query)
	if err != nil {
		out.err = err
		return out
	}
	out.results = Normalize(name, raw)
	return out
}
