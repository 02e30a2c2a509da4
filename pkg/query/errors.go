package query

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnxref/pkg/errcode"
)

// InvalidParameterError creates an error for a malformed request
// parameter. The error is local to one request and never affects graph
// state.
func InvalidParameterError(param, value string) error {
	msg := `Invalid request parameter

<em>Parameter:</em> %s
<em>Value:</em> %q`

	vars := []any{param, value}

	return &gn.Error{
		Code: errcode.QueryInvalidParameterError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid parameter %s: %q", param, value),
	}
}

// UnknownOperationError creates an error for an unrecognized request
// operation.
func UnknownOperationError(op string) error {
	msg := `Unknown operation

<em>Operation:</em> %s

Supported: search_scientific, search_vernacular, ancestors,
descendants, relationships, stats.`

	vars := []any{op}

	return &gn.Error{
		Code: errcode.QueryInvalidParameterError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown operation %q", op),
	}
}
