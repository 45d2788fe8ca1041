// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Language       string    `yaml:"language,omitempty"`
	Source         string    `yaml:"source,omitempty"`

	// Number and Authority are set for patents.
	Number    string `yaml:"number,omitempty"`
	Authority string `yaml:"authority,omitempty"`

	// CitationCount is not part of CSL; reference managers ignore it.
	CitationCount *int `yaml:"citation-count,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// String joins the name parts back into a display name.
func (n CSLName) String() string {
	if n.Literal != "" {
		return n.Literal
	}
	switch {
	case n.Given != "" && n.Family != "":
		return n.Given + " " + n.Family
	case n.Family != "":
		return n.Family
	default:
		return n.Given
	}
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}
