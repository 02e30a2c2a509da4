// Package matcher classifies relationships between taxa of two
// different taxonomies: a shared concept makes a synonym pair, a
// shared canonical name without a shared concept makes a homonym pair.
//
// Candidate pairs are generated through canonical-name and concept
// indices, so the comparison never degenerates into a full cross
// product of the two taxonomies.
package matcher

import (
	"fmt"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnxref/pkg/graph"
	"github.com/gnames/gnxref/pkg/parserpool"
	"github.com/gnames/gnxref/pkg/taxon"
	"github.com/gnames/gnxref/pkg/taxonomy"
)

// Matcher computes cross-reference edge candidates between two
// taxonomies. It never mutates the graph; the computed set is handed
// to the caller for atomic publication.
type Matcher interface {
	// Match returns all synonym and homonym edges between taxa of a
	// and b. The result is deterministic for a given input pair.
	Match(a, b *taxonomy.Taxonomy) ([]graph.Edge, error)
}

type matcher struct {
	pool parserpool.Pool
	code nomcode.Code
}

// New creates a Matcher that normalizes scientific names with the
// given nomenclatural code.
func New(pool parserpool.Pool, code nomcode.Code) Matcher {
	return &matcher{pool: pool, code: code}
}

func (m *matcher) Match(
	a, b *taxonomy.Taxonomy,
) ([]graph.Edge, error) {
	if a.ID() == b.ID() {
		return nil, fmt.Errorf(
			"cannot match taxonomy %q against itself", a.ID())
	}

	// Index the second taxonomy once.
	canonB := make(map[string]string, b.Len())
	byCanon := make(map[string][]*taxon.Taxon)
	byConcept := make(map[string][]*taxon.Taxon)
	for _, t := range b.Preorder() {
		canon, err := m.canonical(t.Name)
		if err != nil {
			return nil, err
		}
		canonB[t.ID] = canon
		byCanon[canon] = append(byCanon[canon], t)
		if !t.Concept.IsZero() {
			key := t.Concept.Key()
			byConcept[key] = append(byConcept[key], t)
		}
	}

	seen := make(map[string]bool)
	var res []graph.Edge
	for _, ta := range a.Preorder() {
		canon, err := m.canonical(ta.Name)
		if err != nil {
			return nil, err
		}
		candidates := byCanon[canon]
		if !ta.Concept.IsZero() {
			candidates = append(candidates[:len(candidates):len(candidates)],
				byConcept[ta.Concept.Key()]...)
		}
		for _, tb := range candidates {
			pair := pairKey(ta.ID, tb.ID)
			if seen[pair] {
				continue
			}

			var edgeType graph.EdgeType
			switch {
			case ta.Concept.Equal(tb.Concept):
				// Same concept is a synonym pair no matter how the
				// names are spelled.
				edgeType = graph.EdgeSynonym
			case canon == canonB[tb.ID]:
				// Equal names with differing or unknown concepts stay
				// a homonym pair; missing concept data is never
				// promoted to a synonym claim.
				edgeType = graph.EdgeHomonym
			default:
				continue
			}

			seen[pair] = true
			res = append(res, graph.Edge{
				Type:      edgeType,
				TaxonomyA: a.ID(),
				TaxonA:    ta.ID,
				TaxonomyB: b.ID(),
				TaxonB:    tb.ID,
			})
		}
	}

	return res, nil
}

// canonical reduces a scientific name to its case-normalized canonical
// form: genus plus epithets without authorship or annotations.
// Unparseable names fall back to a whitespace-collapsed lower-case
// form so they can still collide on exact spelling.
func (m *matcher) canonical(name string) (string, error) {
	p, err := m.pool.Parse(name, m.code)
	if err != nil {
		return "", err
	}
	if p.Parsed {
		return strings.ToLower(p.Canonical.Simple), nil
	}
	return strings.ToLower(strings.Join(strings.Fields(name), " ")), nil
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}
