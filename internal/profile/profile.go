// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profile provides named preference-profile presets and the merge
// used to layer caller overrides on top of a preset.
package profile

import (
	"fmt"
	"os"
	"slices"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/metasearch/pkg/types"
)

// DefaultPreset is used when a request carries no profile.
const DefaultPreset = "default"

// Preset is a named profile.
type Preset struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Profile     types.Profile `json:"profile" yaml:"profile"`
}

func builtin() []Preset {
	return []Preset{
		{
			ID:          "default",
			Name:        "Balanced",
			Description: "English first, light penalty on mainstream sources.",
			Profile: types.Profile{
				PreferredLangs:    []string{"en"},
				MainstreamPenalty: 0.2,
				Domain:            types.DomainRules{Boost: []string{".edu", ".org"}},
			},
		},
		{
			ID:          "nordic",
			Name:        "Nordic",
			Description: "Prefers Norwegian, Swedish, and Danish; blocks commercial domains.",
			Profile: types.Profile{
				PreferredLangs:    []string{"no", "sv", "da"},
				ExcludeLangs:      []string{"ru", "zh"},
				MainstreamPenalty: 0.4,
				Domain: types.DomainRules{
					Boost: []string{".no", ".se", ".dk"},
					Block: []string{".com"},
				},
			},
		},
		{
			ID:          "scholarly",
			Name:        "Scholarly",
			Description: "Favours institutional domains.",
			Profile: types.Profile{
				PreferredLangs:    []string{"en"},
				MainstreamPenalty: 0.5,
				Domain: types.DomainRules{
					Boost: []string{".edu", ".ac.uk", ".org"},
					Block: []string{".com"},
				},
			},
		},
	}
}

// Catalog is an ordered set of presets.
type Catalog struct {
	presets []Preset
}

// NewCatalog returns a catalog holding the built-in presets.
func NewCatalog() *Catalog {
	return &Catalog{presets: builtin()}
}

// Presets returns a copy of every preset in catalog order.
func (c *Catalog) Presets() []Preset {
	out := make([]Preset, len(c.presets))
	for i, p := range c.presets {
		out[i] = p
		out[i].Profile = Clone(p.Profile)
	}
	return out
}

// Lookup returns a copy of the preset with the given id.
func (c *Catalog) Lookup(id string) (Preset, bool) {
	for _, p := range c.presets {
		if p.ID == id {
			p.Profile = Clone(p.Profile)
			return p, true
		}
	}
	return Preset{}, false
}

// Default returns the default preset's profile.
func (c *Catalog) Default() types.Profile {
	p, _ := c.Lookup(DefaultPreset)
	return p.Profile
}

// Add inserts p, replacing any preset with the same id in place.
func (c *Catalog) Add(p Preset) error {
	if p.ID == "" {
		return fmt.Errorf("preset has no id")
	}
	for i := range c.presets {
		if c.presets[i].ID == p.ID {
			c.presets[i] = p
			return nil
		}
	}
	c.presets = append(c.presets, p)
	return nil
}

// presetFile is the YAML layout of a presets file.
type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// LoadFile adds the presets defined in a YAML file to the catalog.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading presets: %w", err)
	}
	var pf presetFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return fmt.Errorf("parsing presets %s: %w", path, err)
	}
	for _, p := range pf.Presets {
		if err := c.Add(p); err != nil {
			return fmt.Errorf("presets %s: %w", path, err)
		}
	}
	return nil
}

// Patch lists profile fields to override. Nil fields leave the base value.
type Patch struct {
	PreferredLangs    []string
	ExcludeLangs      []string
	TimeRange         *types.TimeRange
	MainstreamPenalty *float64
	Boost             []string
	Block             []string
}

// Merge applies patch on top of base. Boost and block override
// independently, so a patch that only sets Block keeps base's boost list.
func Merge(base types.Profile, patch Patch) types.Profile {
	out := Clone(base)
	if patch.PreferredLangs != nil {
		out.PreferredLangs = slices.Clone(patch.PreferredLangs)
	}
	if patch.ExcludeLangs != nil {
		out.ExcludeLangs = slices.Clone(patch.ExcludeLangs)
	}
	if patch.TimeRange != nil {
		tr := *patch.TimeRange
		out.TimeRange = &tr
	}
	if patch.MainstreamPenalty != nil {
		out.MainstreamPenalty = *patch.MainstreamPenalty
	}
	if patch.Boost != nil {
		out.Domain.Boost = slices.Clone(patch.Boost)
	}
	if patch.Block != nil {
		out.Domain.Block = slices.Clone(patch.Block)
	}
	return out
}

// IsZero reports whether p carries no preferences at all.
func IsZero(p types.Profile) bool {
	return len(p.PreferredLangs) == 0 &&
		len(p.ExcludeLangs) == 0 &&
		p.TimeRange.IsZero() &&
		p.MainstreamPenalty == 0 &&
		len(p.Domain.Boost) == 0 &&
		len(p.Domain.Block) == 0
}

// Clone returns a deep copy of p.
func Clone(p types.Profile) types.Profile {
	out := p
	out.PreferredLangs = slices.Clone(p.PreferredLangs)
	out.ExcludeLangs = slices.Clone(p.ExcludeLangs)
	out.Domain.Boost = slices.Clone(p.Domain.Boost)
	out.Domain.Block = slices.Clone(p.Domain.Block)
	if p.TimeRange != nil {
		tr := *p.TimeRange
		out.TimeRange = &tr
	}
	return out
}
