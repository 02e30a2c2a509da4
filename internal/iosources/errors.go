package iosources

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnxref/pkg/errcode"
)

// SourcesConfigError creates an error for when taxonomies.yaml
// cannot be loaded.
func SourcesConfigError(path string, err error) error {
	msg := `Cannot load taxonomy sources configuration

<em>Configuration file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - Permission denied

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax
  3. Run <em>gnxref</em> once to generate an example file`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.SourcesConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load sources config: %w", err),
	}
}

// UnknownIDError creates an error for when a requested taxonomy ID is
// not present in taxonomies.yaml.
func UnknownIDError(id string) error {
	msg := `Taxonomy <em>%s</em> is not configured

<em>How to fix:</em>
  1. Check <em>taxonomies.yaml</em> for the list of configured IDs
  2. Add an entry for <em>%s</em> or drop it from the command line`

	vars := []any{id, id}

	return &gn.Error{
		Code: errcode.SourcesUnknownIDError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown taxonomy id '%s'", id),
	}
}
