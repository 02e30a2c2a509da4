// Package graph holds all published taxonomy trees plus the synonym
// and homonym edges computed between them, and answers read-only
// structural and lexical queries over the merged structure.
//
// The graph is updated exclusively through Publish, which builds a
// fresh immutable snapshot off to the side and swaps a single pointer.
// Readers always observe the graph entirely before or entirely after a
// publish, never a partial state; reads never block on a writer.
package graph

import (
	"iter"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gnames/gnfmt/gnlang"
	"github.com/gnames/gnxref/pkg/taxon"
	"github.com/gnames/gnxref/pkg/taxonomy"
)

// Match selects between exact and prefix name lookup.
type Match int

const (
	MatchExact Match = iota
	MatchPrefix
)

// NewMatch converts a string to a Match. An empty string maps to
// MatchExact.
func NewMatch(s string) (Match, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exact":
		return MatchExact, true
	case "prefix":
		return MatchPrefix, true
	}
	return MatchExact, false
}

// TaxonomyInfo is a summary of one published taxonomy.
type TaxonomyInfo struct {
	ID      string         `json:"id"`
	Version string         `json:"version,omitempty"`
	Root    string         `json:"root"`
	Stats   taxonomy.Stats `json:"stats"`
}

// Graph is the authoritative in-memory cross-reference store.
// The zero value is not usable; create with New.
type Graph struct {
	mu   sync.Mutex
	snap atomic.Pointer[snapshot]
}

type nameEntry struct {
	key    string
	taxPos int
	pos    int
	id     string
}

type snapshot struct {
	taxonomies map[string]*taxonomy.Taxonomy
	order      []string
	taxPos     map[string]int
	taxa       map[string]*taxon.Taxon
	incident   map[string][]Edge
	edges      []Edge
	sci        []nameEntry
	vern       map[string][]nameEntry
}

// New creates an empty cross-reference graph.
func New() *Graph {
	g := &Graph{}
	g.snap.Store(buildSnapshot(map[string]*taxonomy.Taxonomy{}, nil))
	return g
}

// Publish atomically adds or replaces one taxonomy together with all
// edges referencing it. Existing edges touching the taxonomy are
// dropped and replaced by the given set; edges of other taxonomy pairs
// are carried over. Publishes are serialized; readers keep the
// previous snapshot until the swap.
func (g *Graph) Publish(tx *taxonomy.Taxonomy, edges []Edge) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	cur := g.snap.Load()

	taxonomies := make(map[string]*taxonomy.Taxonomy, len(cur.taxonomies)+1)
	for id, t := range cur.taxonomies {
		taxonomies[id] = t
	}
	taxonomies[tx.ID()] = tx

	var next []Edge
	for _, e := range cur.edges {
		if !e.Touches(tx.ID()) {
			next = append(next, e)
		}
	}
	for _, e := range edges {
		if e.TaxonomyA == e.TaxonomyB {
			return SameTaxonomyEdgeError(e.TaxonomyA)
		}
		norm := e
		if norm.TaxonomyA > norm.TaxonomyB {
			norm.TaxonomyA, norm.TaxonomyB = norm.TaxonomyB, norm.TaxonomyA
			norm.TaxonA, norm.TaxonB = norm.TaxonB, norm.TaxonA
		}
		for _, ep := range []struct{ taxonomyID, taxonID string }{
			{norm.TaxonomyA, norm.TaxonA},
			{norm.TaxonomyB, norm.TaxonB},
		} {
			owner, ok := taxonomies[ep.taxonomyID]
			if !ok {
				return UnknownEndpointError(ep.taxonomyID, ep.taxonID)
			}
			if _, ok = owner.Taxon(ep.taxonID); !ok {
				return UnknownEndpointError(ep.taxonomyID, ep.taxonID)
			}
		}
		next = append(next, norm)
	}

	// Per pair: at most one edge of each type, and never both types.
	types := make(map[string]EdgeType, len(next))
	deduped := next[:0]
	for _, e := range next {
		key := e.pairKey()
		prev, ok := types[key]
		if !ok {
			types[key] = e.Type
			deduped = append(deduped, e)
			continue
		}
		if prev != e.Type {
			return EdgeConflictError(e.TaxonA, e.TaxonB)
		}
	}

	g.snap.Store(buildSnapshot(taxonomies, deduped))
	return nil
}

func buildSnapshot(
	taxonomies map[string]*taxonomy.Taxonomy,
	edges []Edge,
) *snapshot {
	snap := &snapshot{
		taxonomies: taxonomies,
		taxPos:     make(map[string]int, len(taxonomies)),
		taxa:       make(map[string]*taxon.Taxon),
		incident:   make(map[string][]Edge),
		edges:      edges,
		vern:       make(map[string][]nameEntry),
	}

	for id := range taxonomies {
		snap.order = append(snap.order, id)
	}
	sort.Strings(snap.order)
	for i, id := range snap.order {
		snap.taxPos[id] = i
	}

	for _, id := range snap.order {
		tx := taxonomies[id]
		taxPos := snap.taxPos[id]
		for pos, t := range tx.Preorder() {
			snap.taxa[t.ID] = t
			snap.sci = append(snap.sci, nameEntry{
				key:    normKey(t.Name),
				taxPos: taxPos,
				pos:    pos,
				id:     t.ID,
			})
			for lang, names := range t.VernacularNames {
				langKey := normLang(lang)
				for _, name := range names {
					snap.vern[langKey] = append(snap.vern[langKey], nameEntry{
						key:    normKey(name),
						taxPos: taxPos,
						pos:    pos,
						id:     t.ID,
					})
				}
			}
		}
	}

	sortEntries(snap.sci)
	for _, entries := range snap.vern {
		sortEntries(entries)
	}

	sort.Slice(snap.edges, func(i, j int) bool {
		a, b := snap.edges[i], snap.edges[j]
		if a.TaxonomyA != b.TaxonomyA {
			return a.TaxonomyA < b.TaxonomyA
		}
		if a.TaxonomyB != b.TaxonomyB {
			return a.TaxonomyB < b.TaxonomyB
		}
		if a.TaxonA != b.TaxonA {
			return a.TaxonA < b.TaxonA
		}
		return a.TaxonB < b.TaxonB
	})
	for _, e := range snap.edges {
		snap.incident[e.TaxonA] = append(snap.incident[e.TaxonA], e)
		snap.incident[e.TaxonB] = append(snap.incident[e.TaxonB], e)
	}

	return snap
}

func sortEntries(entries []nameEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.key != b.key {
			return a.key < b.key
		}
		if a.taxPos != b.taxPos {
			return a.taxPos < b.taxPos
		}
		return a.pos < b.pos
	})
}

// LookupByScientificName returns a lazy, restartable sequence of taxa
// across all taxonomies whose scientific name matches the query,
// ordered by taxonomy then pre-order position. Matching is
// case-insensitive.
func (g *Graph) LookupByScientificName(
	name string,
	m Match,
) iter.Seq[*taxon.Taxon] {
	snap := g.snap.Load()
	return snap.lookup(snap.sci, name, m)
}

// LookupByVernacularName is LookupByScientificName scoped by a
// language tag. Tags are normalized, so "en", "EN" and "eng" address
// the same index.
func (g *Graph) LookupByVernacularName(
	lang, name string,
	m Match,
) iter.Seq[*taxon.Taxon] {
	snap := g.snap.Load()
	return snap.lookup(snap.vern[normLang(lang)], name, m)
}

func (s *snapshot) lookup(
	entries []nameEntry,
	name string,
	m Match,
) iter.Seq[*taxon.Taxon] {
	return func(yield func(*taxon.Taxon) bool) {
		key := normKey(name)
		if key == "" {
			return
		}
		lo := sort.Search(len(entries), func(i int) bool {
			return entries[i].key >= key
		})
		var res []nameEntry
		for i := lo; i < len(entries); i++ {
			if m == MatchExact && entries[i].key != key {
				break
			}
			if m == MatchPrefix && !strings.HasPrefix(entries[i].key, key) {
				break
			}
			res = append(res, entries[i])
		}
		sort.Slice(res, func(i, j int) bool {
			if res[i].taxPos != res[j].taxPos {
				return res[i].taxPos < res[j].taxPos
			}
			return res[i].pos < res[j].pos
		})
		for _, e := range res {
			if !yield(s.taxa[e.id]) {
				return
			}
		}
	}
}

// Ancestors returns the chain from the taxon's immediate parent to the
// root of its own taxonomy.
func (g *Graph) Ancestors(taxonID string) ([]*taxon.Taxon, error) {
	snap := g.snap.Load()
	t, ok := snap.taxa[taxonID]
	if !ok {
		return nil, TaxonNotFoundError(taxonID)
	}
	res, _ := snap.taxonomies[t.TaxonomyID].Ancestors(taxonID)
	return res, nil
}

// Descendants returns the full subtree of the taxon in pre-order,
// within its own taxonomy only.
func (g *Graph) Descendants(taxonID string) ([]*taxon.Taxon, error) {
	snap := g.snap.Load()
	t, ok := snap.taxa[taxonID]
	if !ok {
		return nil, TaxonNotFoundError(taxonID)
	}
	res, _ := snap.taxonomies[t.TaxonomyID].Descendants(taxonID)
	return res, nil
}

// RelationshipsOf returns all cross-reference edges incident to the
// taxon, optionally filtered by type (EdgeAny returns all).
func (g *Graph) RelationshipsOf(
	taxonID string,
	t EdgeType,
) ([]Edge, error) {
	snap := g.snap.Load()
	if _, ok := snap.taxa[taxonID]; !ok {
		return nil, TaxonNotFoundError(taxonID)
	}
	var res []Edge
	for _, e := range snap.incident[taxonID] {
		if t == EdgeAny || e.Type == t {
			res = append(res, e)
		}
	}
	return res, nil
}

// Taxon returns a taxon by ID from any published taxonomy.
func (g *Graph) Taxon(taxonID string) (*taxon.Taxon, bool) {
	snap := g.snap.Load()
	t, ok := snap.taxa[taxonID]
	return t, ok
}

// TaxonomyByID returns a published taxonomy.
func (g *Graph) TaxonomyByID(id string) (*taxonomy.Taxonomy, bool) {
	snap := g.snap.Load()
	tx, ok := snap.taxonomies[id]
	return tx, ok
}

// Taxonomies returns summaries of all published taxonomies ordered by
// ID.
func (g *Graph) Taxonomies() []TaxonomyInfo {
	snap := g.snap.Load()
	res := make([]TaxonomyInfo, 0, len(snap.order))
	for _, id := range snap.order {
		tx := snap.taxonomies[id]
		res = append(res, TaxonomyInfo{
			ID:      tx.ID(),
			Version: tx.Version(),
			Root:    tx.Root().Name,
			Stats:   tx.Stats(),
		})
	}
	return res
}

// Edges returns all cross-reference edges in deterministic order.
func (g *Graph) Edges() []Edge {
	snap := g.snap.Load()
	res := make([]Edge, len(snap.edges))
	copy(res, snap.edges)
	return res
}

// Len returns the number of published taxonomies.
func (g *Graph) Len() int {
	return len(g.snap.Load().order)
}

func normKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func normLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if code := gnlang.LangCode(lang); code != "" {
		return code
	}
	return lang
}
