package ioingest

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnxref/pkg/errcode"
)

// ReadError creates an error for when a taxonomy records file cannot
// be read.
func ReadError(path string, err error) error {
	msg := `Cannot read taxonomy records

<em>Records file:</em> %s

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Check the <em>path</em> setting in taxonomies.yaml`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.IngestReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to read records file: %w", err),
	}
}

// DecodeError creates an error for when a taxonomy records file is not
// valid JSON.
func DecodeError(path string, err error) error {
	msg := `Cannot decode taxonomy records

<em>Records file:</em> %s

<em>Possible causes:</em>
  - File is not JSON
  - Records do not follow the expected structure

<em>How to fix:</em>
  1. Validate the JSON syntax of <em>%s</em>`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.IngestDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to decode records file: %w", err),
	}
}

// AllSourcesFailedError creates an error for when every requested
// taxonomy failed to load.
func AllSourcesFailedError(count int) error {
	msg := `All %d taxonomies failed to load

<em>How to fix:</em>
  1. Check the log output for per-taxonomy errors
  2. Fix the offending records or taxonomies.yaml entries`

	vars := []any{count}

	return &gn.Error{
		Code: errcode.IngestAllSourcesFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("all %d sources failed", count),
	}
}
