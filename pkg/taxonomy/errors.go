package taxonomy

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnxref/pkg/errcode"
)

// InvalidRecordError creates an error for a record without a usable
// name or rank.
func InvalidRecordError(taxonomyID, name, reason string) error {
	msg := `Taxon record is not usable

<em>Taxonomy:</em> %s
<em>Record:</em> %q
<em>Problem:</em> %s

<em>How to fix:</em> correct the record in the source adapter output.`

	vars := []any{taxonomyID, name, reason}

	return &gn.Error{
		Code: errcode.TreeInvalidRecordError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("invalid record %q in %q: %s",
			name, taxonomyID, reason),
	}
}

// NoRootError creates an error for a taxonomy without a root record.
func NoRootError(taxonomyID string) error {
	msg := `Taxonomy has no root

<em>Taxonomy:</em> %s

Every taxonomy needs exactly one record without a parent reference.
An empty record set also fails this way.`

	vars := []any{taxonomyID}

	return &gn.Error{
		Code: errcode.TreeNoRootError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("taxonomy %q has no root", taxonomyID),
	}
}

// MultipleRootsError creates an error for a taxonomy with more than
// one record lacking a parent reference.
func MultipleRootsError(taxonomyID string, roots []string) error {
	msg := `Taxonomy has multiple roots

<em>Taxonomy:</em> %s
<em>Roots found:</em> %s

Only one record may omit the parent reference.`

	vars := []any{taxonomyID, strings.Join(roots, ", ")}

	return &gn.Error{
		Code: errcode.TreeMultipleRootsError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("taxonomy %q has %d roots",
			taxonomyID, len(roots)),
	}
}

// UnknownParentError creates an error for a record whose parent
// reference does not resolve to exactly one record in the same
// collection.
func UnknownParentError(taxonomyID, child, parent string) error {
	msg := `Parent reference does not resolve

<em>Taxonomy:</em> %s
<em>Taxon:</em> %s
<em>Parent reference:</em> %s

The parent must match exactly one other record of the same taxonomy.`

	vars := []any{taxonomyID, child, parent}

	return &gn.Error{
		Code: errcode.TreeUnknownParentError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("taxon %q in %q: unresolved parent %q",
			child, taxonomyID, parent),
	}
}

// CycleDetectedError creates an error for a parent chain that revisits
// a record.
func CycleDetectedError(taxonomyID string, path []string) error {
	msg := `Cycle detected in parent references

<em>Taxonomy:</em> %s
<em>Path:</em> %s

Parent references must form a tree rooted at the taxonomy root.`

	vars := []any{taxonomyID, strings.Join(path, " -> ")}

	return &gn.Error{
		Code: errcode.TreeCycleError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("cycle in %q: %s",
			taxonomyID, strings.Join(path, " -> ")),
	}
}

// RankOrderViolationError creates an error for a child whose rank does
// not follow its parent's rank in the fixed rank order.
func RankOrderViolationError(
	taxonomyID, parent, parentRank, child, childRank string,
) error {
	msg := `Rank order violation

<em>Taxonomy:</em> %s
<em>Parent:</em> %s (%s)
<em>Child:</em> %s (%s)

A child's rank must be strictly narrower than its parent's.`

	vars := []any{taxonomyID, parent, parentRank, child, childRank}

	return &gn.Error{
		Code: errcode.TreeRankOrderError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("rank order violation in %q: %s (%s) under %s (%s)",
			taxonomyID, child, childRank, parent, parentRank),
	}
}

// DuplicateNameError creates an error for two records sharing a
// scientific name at the same rank.
func DuplicateNameError(taxonomyID, name, rankName string) error {
	msg := `Duplicate scientific name

<em>Taxonomy:</em> %s
<em>Name:</em> %s
<em>Rank:</em> %s

Scientific names must be unique within a taxonomy and rank.`

	vars := []any{taxonomyID, name, rankName}

	return &gn.Error{
		Code: errcode.TreeDuplicateNameError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("duplicate name %q at rank %s in %q",
			name, rankName, taxonomyID),
	}
}

// InvalidTypeSpecimenRankError creates an error for type specimens
// attached to a taxon above species rank.
func InvalidTypeSpecimenRankError(taxonomyID, name, rankName string) error {
	msg := `Type specimens at invalid rank

<em>Taxonomy:</em> %s
<em>Taxon:</em> %s (%s)

Only species and subspecies may carry type specimens.`

	vars := []any{taxonomyID, name, rankName}

	return &gn.Error{
		Code: errcode.TreeTypeSpecimenRankError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("type specimens on %q (%s) in %q",
			name, rankName, taxonomyID),
	}
}
