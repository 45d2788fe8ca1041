// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"

	"github.com/pdiddy/metasearch/internal/httputil"
	"github.com/pdiddy/metasearch/internal/library"
	"github.com/pdiddy/metasearch/internal/profile"
	"github.com/pdiddy/metasearch/internal/provider"
	"github.com/pdiddy/metasearch/internal/search"
	"github.com/pdiddy/metasearch/pkg/types"
)

// app bundles the collaborators built from configuration.
type app struct {
	cfg      types.Config
	registry *provider.Registry
	orch     *search.Orchestrator
	catalog  *profile.Catalog
	store    *library.Store
}

// newApp opens the optional library, builds the provider registry, and
// loads profile presets. Extra options are passed to the orchestrator.
func newApp(cfg types.Config, opts ...search.Option) (*app, error) {
	a := &app{cfg: cfg}

	if cfg.Library.Path != "" {
		store, err := library.Open(cfg.Library.Path)
		if err != nil {
			return nil, err
		}
		a.store = store
	}

	client := httputil.New(&http.Client{Timeout: cfg.HTTP.Timeout}, cfg.HTTP.UserAgent)
	reg, err := provider.NewDefaultRegistry(cfg, client, a.store)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.registry = reg

	a.catalog = profile.NewCatalog()
	if cfg.ProfilesFile != "" {
		if err := a.catalog.LoadFile(cfg.ProfilesFile); err != nil {
			a.Close()
			return nil, err
		}
	}
	if _, ok := a.catalog.Lookup(a.defaultPreset()); !ok {
		a.Close()
		return nil, fmt.Errorf("default profile %q is not a known preset", cfg.DefaultProfile)
	}

	opts = append([]search.Option{search.WithLogger(logger)}, opts...)
	a.orch = search.New(a.registry.Providers(), opts...)
	return a, nil
}

func (a *app) defaultPreset() string {
	if a.cfg.DefaultProfile == "" {
		return profile.DefaultPreset
	}
	return a.cfg.DefaultProfile
}

// Close releases the library database, if open.
func (a *app) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}
