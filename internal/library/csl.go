// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/metasearch/pkg/types"
)

// ReadCSLFile loads a CSL-YAML bibliography (a list of items, as written by
// `metasearch search --format csl`) and maps it to raw results.
func ReadCSLFile(path string) ([]types.RawResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bibliography: %w", err)
	}
	var items []types.CSLItem
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing bibliography %s: %w", path, err)
	}

	records := make([]types.RawResult, 0, len(items))
	for _, item := range items {
		records = append(records, FromCSLItem(item))
	}
	return records, nil
}

// FromCSLItem maps one CSL item to a raw result.
func FromCSLItem(item types.CSLItem) types.RawResult {
	r := types.RawResult{
		Title:     strings.TrimSpace(item.Title),
		URL:       item.URL,
		Snippet:   item.Abstract,
		Lang:      item.Language,
		Date:      cslDate(item.Issued),
		Venue:     item.ContainerTitle,
		DOI:       item.DOI,
		Citations: item.CitationCount,
	}
	if r.URL == "" && r.DOI != "" {
		r.URL = "https://doi.org/" + r.DOI
	}
	for _, a := range item.Author {
		if name := a.String(); name != "" {
			r.Authors = append(r.Authors, name)
		}
	}
	return r
}

// cslDate renders the first date-parts entry as YYYY, YYYY-MM, or YYYY-MM-DD.
func cslDate(d *types.CSLDate) string {
	if d == nil || len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return ""
	}
	parts := d.DateParts[0]
	switch len(parts) {
	case 1:
		return fmt.Sprintf("%04d", parts[0])
	case 2:
		return fmt.Sprintf("%04d-%02d", parts[0], parts[1])
	default:
		return fmt.Sprintf("%04d-%02d-%02d", parts[0], parts[1], parts[2])
	}
}
