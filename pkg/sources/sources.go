// Package sources provides configuration and validation for taxonomy
// sources.
//
// This package defines the schema for taxonomies.yaml, which users
// provide to specify which taxonomy checklists to load into the
// cross-reference graph. It handles source validation and the mapping
// of nomenclatural code names to parser codes.
package sources

import (
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
)

type Sources interface {
	Load() (*SourcesConfig, error)
}

// SourcesConfig represents the complete taxonomies.yaml configuration
// file.
type SourcesConfig struct {
	// Taxonomies is the list of taxonomy checklists to load.
	Taxonomies []TaxonomyConfig `yaml:"taxonomies"`

	// Warnings holds non-fatal validation warnings (not serialized).
	Warnings []ValidationWarning `yaml:"-"`
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	TaxonomyID string // ID of the taxonomy
	Field      string // Field name that has the issue
	Message    string // Description of the issue
	Suggestion string // How to fix it
}

// TaxonomyConfig represents configuration for a single taxonomy
// checklist.
type TaxonomyConfig struct {
	// ID identifies the taxonomy across loads. Convention: a short
	// upper-case acronym of the checklist, for example "IOC" or "HM".
	ID string `yaml:"id"`

	// Path points to the JSON file with the taxonomy records.
	Path string `yaml:"path"`

	// Title is the human-readable name of the checklist.
	Title string `yaml:"title,omitempty"`

	// Version is the checklist release, for example "14.2". When
	// empty the loader falls back to the version embedded in the
	// records file, if any.
	Version string `yaml:"version,omitempty"`

	// Code is the nomenclatural code used for parsing scientific
	// names: "zoological", "botanical" or empty for the configured
	// default.
	Code string `yaml:"code,omitempty"`
}

// NomCode maps the configured code name to a parser code. It returns
// false for names it does not know.
func (t *TaxonomyConfig) NomCode() (nomcode.Code, bool) {
	switch strings.ToLower(strings.TrimSpace(t.Code)) {
	case "", "any":
		return nomcode.Unknown, true
	case "zoological", "iczn":
		return nomcode.Zoological, true
	case "botanical", "icn":
		return nomcode.Botanical, true
	}
	return nomcode.Unknown, false
}
