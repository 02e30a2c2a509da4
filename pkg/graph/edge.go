package graph

import (
	"fmt"
	"strings"
)

// EdgeType is the typed relationship between two taxa of different
// taxonomies. The zero value EdgeAny is only valid as a query filter.
type EdgeType int

const (
	EdgeAny EdgeType = iota
	EdgeSynonym
	EdgeHomonym
)

var edgeNames = []string{"any", "synonym", "homonym"}

// NewEdgeType converts a string to an EdgeType. An empty string maps
// to EdgeAny.
func NewEdgeType(s string) (EdgeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return EdgeAny, nil
	case "synonym":
		return EdgeSynonym, nil
	case "homonym":
		return EdgeHomonym, nil
	}
	return EdgeAny, fmt.Errorf("unknown edge type: %q", s)
}

func (e EdgeType) String() string {
	if e < EdgeAny || e > EdgeHomonym {
		return "any"
	}
	return edgeNames[e]
}

// MarshalText implements encoding.TextMarshaler.
func (e EdgeType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *EdgeType) UnmarshalText(data []byte) error {
	res, err := NewEdgeType(string(data))
	if err != nil {
		return err
	}
	*e = res
	return nil
}

// Edge is an undirected, typed cross-reference between one taxon in
// taxonomy A and one taxon in taxonomy B. Edges are derived data,
// recomputed whenever either endpoint taxonomy changes.
type Edge struct {
	Type EdgeType `json:"type"`

	TaxonomyA string `json:"taxonomy_a"`
	TaxonA    string `json:"taxon_a"`

	TaxonomyB string `json:"taxonomy_b"`
	TaxonB    string `json:"taxon_b"`
}

// Other returns the opposite endpoint's taxon ID, or an empty string
// when taxonID is not an endpoint of the edge.
func (e Edge) Other(taxonID string) string {
	switch taxonID {
	case e.TaxonA:
		return e.TaxonB
	case e.TaxonB:
		return e.TaxonA
	}
	return ""
}

// Touches reports whether the edge has an endpoint in the given
// taxonomy.
func (e Edge) Touches(taxonomyID string) bool {
	return e.TaxonomyA == taxonomyID || e.TaxonomyB == taxonomyID
}

// pairKey is direction-independent: the same taxon pair always yields
// the same key no matter which endpoint is A.
func (e Edge) pairKey() string {
	a, b := e.TaxonA, e.TaxonB
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}
