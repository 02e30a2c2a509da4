package graph

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnxref/pkg/errcode"
)

// UnknownEndpointError creates an error for an edge referencing a
// taxon absent from the published set.
func UnknownEndpointError(taxonomyID, taxonID string) error {
	msg := `Cross-reference edge has an unknown endpoint

<em>Taxonomy:</em> %s
<em>Taxon ID:</em> %s

Every edge endpoint must belong to the taxonomy being published or to
one already in the graph.`

	vars := []any{taxonomyID, taxonID}

	return &gn.Error{
		Code: errcode.GraphUnknownEndpointError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("unknown edge endpoint %q in taxonomy %q",
			taxonID, taxonomyID),
	}
}

// SameTaxonomyEdgeError creates an error for an edge connecting two
// taxa of the same taxonomy.
func SameTaxonomyEdgeError(taxonomyID string) error {
	msg := `Cross-reference edge within one taxonomy

<em>Taxonomy:</em> %s

Edges only relate taxa across different taxonomies.`

	vars := []any{taxonomyID}

	return &gn.Error{
		Code: errcode.GraphSameTaxonomyEdgeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("edge inside taxonomy %q", taxonomyID),
	}
}

// EdgeConflictError creates an error for a taxon pair tagged as both
// synonym and homonym.
func EdgeConflictError(taxonA, taxonB string) error {
	msg := `Conflicting cross-reference edges

<em>Taxon A:</em> %s
<em>Taxon B:</em> %s

A pair of taxa cannot be both synonym and homonym: a shared concept
precludes a mere name collision.`

	vars := []any{taxonA, taxonB}

	return &gn.Error{
		Code: errcode.GraphEdgeConflictError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("pair %q/%q tagged both synonym and homonym",
			taxonA, taxonB),
	}
}

// TaxonNotFoundError creates an error for a taxon ID absent from the
// graph.
func TaxonNotFoundError(taxonID string) error {
	msg := `Taxon not found

<em>Taxon ID:</em> %s`

	vars := []any{taxonID}

	return &gn.Error{
		Code: errcode.QueryNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("taxon %q not found", taxonID),
	}
}
