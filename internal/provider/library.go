// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"

	"github.com/pdiddy/metasearch/internal/library"
	"github.com/pdiddy/metasearch/pkg/types"
)

// Library searches the local SQLite bibliography.
type Library struct {
	Store *library.Store
}

// Name returns the source identifier.
func (p *Library) Name() string { return "library" }

// Search matches query terms against stored records.
func (p *Library) Search(ctx context.Context, query types.ProviderQuery) ([]types.RawResult, error) {
	if p.Store == nil {
		return nil, fmt.Errorf("library not opened")
	}
	opts := library.SearchOptions{
		Limit:  query.PageSize,
		Offset: query.Offset(),
	}
	if tr := query.TimeRange; !tr.IsZero() {
		opts.From, opts.To = tr.From, tr.To
	}
	results, err := p.Store.Search(ctx, query.Text, opts)
	if err != nil {
		return nil, fmt.Errorf("searching library: %w", err)
	}
	return results, nil
}
