// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import "errors"

var (
	// ErrEmptyQuery is returned when the request carries no query text.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrNoValidSources is returned when none of the requested sources is
	// registered.
	ErrNoValidSources = errors.New("no valid sources selected")
)
