// Package templates provides embedded YAML configuration templates.
package templates

import _ "embed"

// SourcesYAML contains the default taxonomies.yaml template for
// taxonomy checklists.
//
//go:embed taxonomies.yaml
var SourcesYAML string

// ConfigYAML contains the default config.yaml template for application
// configuration.
//
//go:embed config.yaml
var ConfigYAML string
