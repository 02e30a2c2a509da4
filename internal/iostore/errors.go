package iostore

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnxref/pkg/errcode"
)

// OpenError creates an error for when the graph database cannot be
// opened or initialized.
func OpenError(path string, err error) error {
	msg := `Cannot open graph database

<em>Database file:</em> %s

<em>Possible causes:</em>
  - Directory does not exist
  - Permission denied
  - File is not a SQLite database

<em>How to fix:</em>
  1. Check the directory: <em>ls -l %s</em>
  2. Remove the file if it is corrupted, then run <em>gnxref load</em>`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.StoreOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to open store: %w", err),
	}
}

// SaveError creates an error for a failed graph save.
func SaveError(err error) error {
	msg := `Cannot save the cross-reference graph

<em>How to fix:</em>
  1. Check free disk space
  2. Check write permission on the data directory`

	return &gn.Error{
		Code: errcode.StoreSaveError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to save graph: %w", err),
	}
}

// RestoreError creates an error for a failed graph restore.
func RestoreError(err error) error {
	msg := `Cannot restore the cross-reference graph

<em>Possible causes:</em>
  - Database was written by an incompatible version
  - Database file is corrupted

<em>How to fix:</em>
  1. Run <em>gnxref load</em> to rebuild the graph from sources`

	return &gn.Error{
		Code: errcode.StoreRestoreError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to restore graph: %w", err),
	}
}
