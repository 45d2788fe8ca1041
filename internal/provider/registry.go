// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider holds the concrete search sources the orchestrator
// dispatches to and the registry that names them.
package provider

import (
	"fmt"

	"github.com/pdiddy/metasearch/internal/httputil"
	"github.com/pdiddy/metasearch/internal/library"
	"github.com/pdiddy/metasearch/internal/search"
	"github.com/pdiddy/metasearch/pkg/types"
)

// Registry holds providers keyed by name, remembering registration order.
type Registry struct {
	byName map[string]search.Provider
	order  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]search.Provider)}
}

// Register adds p. Registering a second provider under the same name is an
// error.
func (r *Registry) Register(p search.Provider) error {
	name := p.Name()
	if name == "" {
		return fmt.Errorf("provider has empty name")
	}
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("provider %q already registered", name)
	}
	r.byName[name] = p
	r.order = append(r.order, name)
	return nil
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (search.Provider, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// Names returns provider names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Providers returns the registered providers in registration order.
func (r *Registry) Providers() []search.Provider {
	out := make([]search.Provider, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Descriptions maps source names to a one-line summary for listings.
var Descriptions = map[string]string{
	"arxiv":           "arXiv preprints (Atom API)",
	"wikipedia":       "Wikipedia title search",
	"semanticscholar": "Semantic Scholar Graph API",
	"openalex":        "OpenAlex scholarly works",
	"patentsview":     "USPTO patents via PatentsView",
	"library":         "local bibliography (SQLite)",
}

// NewDefaultRegistry builds the configured source set. arxiv, wikipedia, and
// semanticscholar are always present; openalex unless disabled; patentsview
// only with an API key; library only when store is non-nil.
func NewDefaultRegistry(cfg types.Config, client *httputil.Client, store *library.Store) (*Registry, error) {
	providers := []search.Provider{
		&Arxiv{Client: client},
		&Wikipedia{Client: client, Lang: cfg.Providers.WikipediaLang},
		&SemanticScholar{Client: client, APIKey: cfg.Providers.SemanticScholarAPIKey},
	}
	if !cfg.Providers.DisableOpenAlex {
		providers = append(providers, &OpenAlex{Client: client, Email: cfg.Providers.OpenAlexEmail})
	}
	if cfg.Providers.PatentsViewAPIKey != "" {
		providers = append(providers, &PatentsView{Client: client, APIKey: cfg.Providers.PatentsViewAPIKey})
	}
	if store != nil {
		providers = append(providers, &Library{Store: store})
	}

	r := NewRegistry()
	for _, p := range providers {
		if err := r.Register(p); err != nil {
			return nil, fmt.Errorf("building registry: %w", err)
		}
	}
	return r, nil
}
