// Package taxonomy assembles flat taxon records from one source into a
// validated, immutable rooted tree.
//
// Validation is all-or-nothing: on any failure the whole taxonomy is
// rejected and no partial tree is ever returned. The checks run in a
// fixed order: root cardinality, parent resolution, cycles, rank
// order, name uniqueness, type-specimen rank restriction.
package taxonomy

import (
	"sort"
	"strings"

	"github.com/gnames/gnxref/pkg/rank"
	"github.com/gnames/gnxref/pkg/taxon"
)

// Taxonomy is a validated rooted tree of taxa from one source. It is
// immutable after Build; all accessors are safe for concurrent use.
type Taxonomy struct {
	id       string
	version  string
	rootID   string
	taxa     map[string]*taxon.Taxon
	children map[string][]string
	preorder []string
	pos      map[string]int
	stats    Stats
}

// Stats holds per-rank taxon counts for one taxonomy.
type Stats struct {
	ByRank map[rank.Rank]int `json:"by_rank"`
	Total  int               `json:"total"`
}

// Build assembles an unordered collection of taxon records into a
// Taxonomy, or fails with a structural error. Input records are not
// mutated; parent references are resolved by scientific name and the
// child index is derived, never taken from the input.
func Build(id, version string, records []taxon.Taxon) (*Taxonomy, error) {
	taxa := make([]*taxon.Taxon, len(records))
	byName := make(map[string][]*taxon.Taxon)
	for i := range records {
		t := records[i].Clone()
		t.Name = normSpace(t.Name)
		t.Parent = normSpace(t.Parent)
		if t.Name == "" {
			return nil, InvalidRecordError(id, t.Name, "empty scientific name")
		}
		if t.Rank == rank.Unknown {
			return nil, InvalidRecordError(id, t.Name, "unknown rank")
		}
		t.TaxonomyID = id
		t.ID = taxon.MakeID(id, t.Rank, t.Name)
		taxa[i] = &t
		byName[t.Name] = append(byName[t.Name], &t)
	}

	// Exactly one root.
	var roots []string
	for _, t := range taxa {
		if t.Parent == "" {
			roots = append(roots, t.Name)
		}
	}
	if len(roots) == 0 {
		return nil, NoRootError(id)
	}
	if len(roots) > 1 {
		sort.Strings(roots)
		return nil, MultipleRootsError(id, roots)
	}

	byID := make(map[string]*taxon.Taxon, len(taxa))
	for _, t := range taxa {
		if prev, ok := byID[t.ID]; ok {
			// Same taxonomy, rank and name collapse to one identity.
			return nil, DuplicateNameError(id, prev.Name, prev.Rank.String())
		}
		byID[t.ID] = t
	}

	// Resolve parent references.
	for _, t := range taxa {
		if t.Parent == "" {
			continue
		}
		candidates := byName[t.Parent]
		if len(candidates) != 1 {
			return nil, UnknownParentError(id, t.Name, t.Parent)
		}
		t.ParentID = candidates[0].ID
	}

	// No cycles reachable through parent chains.
	safe := make(map[string]bool, len(taxa))
	for _, t := range taxa {
		if path, ok := findCycle(t, byID, safe); !ok {
			return nil, CycleDetectedError(id, path)
		}
	}

	// Parent rank strictly precedes the child's rank.
	for _, t := range taxa {
		if t.ParentID == "" {
			continue
		}
		parent := byID[t.ParentID]
		if !parent.Rank.Above(t.Rank) {
			return nil, RankOrderViolationError(id,
				parent.Name, parent.Rank.String(),
				t.Name, t.Rank.String())
		}
	}

	// Name uniqueness within rank.
	seen := make(map[string]bool, len(taxa))
	for _, t := range taxa {
		key := t.Rank.String() + "|" + strings.ToLower(t.Name)
		if seen[key] {
			return nil, DuplicateNameError(id, t.Name, t.Rank.String())
		}
		seen[key] = true
	}

	// Type specimens only at species rank and below.
	for _, t := range taxa {
		if len(t.TypeSpecimens) > 0 && !t.Rank.AllowsTypeSpecimens() {
			return nil, InvalidTypeSpecimenRankError(
				id, t.Name, t.Rank.String())
		}
	}

	res := &Taxonomy{
		id:       id,
		version:  version,
		taxa:     byID,
		children: make(map[string][]string),
		pos:      make(map[string]int, len(taxa)),
		stats:    Stats{ByRank: make(map[rank.Rank]int), Total: len(taxa)},
	}
	for _, t := range taxa {
		res.stats.ByRank[t.Rank]++
		if t.ParentID == "" {
			res.rootID = t.ID
			continue
		}
		res.children[t.ParentID] = append(res.children[t.ParentID], t.ID)
	}
	for _, kids := range res.children {
		sort.Slice(kids, func(i, j int) bool {
			a, b := byID[kids[i]], byID[kids[j]]
			if a.Rank != b.Rank {
				return a.Rank < b.Rank
			}
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		})
	}

	res.preorder = make([]string, 0, len(taxa))
	res.walk(res.rootID)
	return res, nil
}

// findCycle walks the parent chain from t. It returns (path, false)
// when the chain revisits a taxon, with the path of names leading into
// the cycle. Chains already known to terminate are skipped via safe.
func findCycle(
	t *taxon.Taxon,
	byID map[string]*taxon.Taxon,
	safe map[string]bool,
) ([]string, bool) {
	visited := make(map[string]bool)
	var chain []string
	curr := t
	for {
		if safe[curr.ID] {
			break
		}
		if visited[curr.ID] {
			return append(chain, curr.Name), false
		}
		visited[curr.ID] = true
		chain = append(chain, curr.Name)
		if curr.ParentID == "" {
			break
		}
		curr = byID[curr.ParentID]
	}
	for id := range visited {
		safe[id] = true
	}
	return nil, true
}

func (t *Taxonomy) walk(id string) {
	t.pos[id] = len(t.preorder)
	t.preorder = append(t.preorder, id)
	for _, child := range t.children[id] {
		t.walk(child)
	}
}

// ID returns the taxonomy identifier.
func (t *Taxonomy) ID() string { return t.id }

// Version returns the source version of the taxonomy.
func (t *Taxonomy) Version() string { return t.version }

// Len returns the number of taxa.
func (t *Taxonomy) Len() int { return len(t.taxa) }

// Root returns the root taxon.
func (t *Taxonomy) Root() *taxon.Taxon { return t.taxa[t.rootID] }

// Taxon returns a taxon by its derived identity. The returned value is
// shared and must be treated as read-only.
func (t *Taxonomy) Taxon(id string) (*taxon.Taxon, bool) {
	res, ok := t.taxa[id]
	return res, ok
}

// Pos returns the pre-order position of a taxon within the taxonomy.
func (t *Taxonomy) Pos(id string) (int, bool) {
	pos, ok := t.pos[id]
	return pos, ok
}

// Children returns the immediate subtaxa in deterministic order.
func (t *Taxonomy) Children(id string) []*taxon.Taxon {
	kids := t.children[id]
	res := make([]*taxon.Taxon, len(kids))
	for i, k := range kids {
		res[i] = t.taxa[k]
	}
	return res
}

// Ancestors returns the chain from the taxon's immediate parent up to
// the root. The chain's length equals the taxon's depth; ranks grow
// strictly broader toward the root.
func (t *Taxonomy) Ancestors(id string) ([]*taxon.Taxon, bool) {
	curr, ok := t.taxa[id]
	if !ok {
		return nil, false
	}
	var res []*taxon.Taxon
	for curr.ParentID != "" {
		curr = t.taxa[curr.ParentID]
		res = append(res, curr)
	}
	return res, true
}

// Descendants returns the full subtree of a taxon in pre-order,
// starting with the taxon itself.
func (t *Taxonomy) Descendants(id string) ([]*taxon.Taxon, bool) {
	if _, ok := t.taxa[id]; !ok {
		return nil, false
	}
	var res []*taxon.Taxon
	var walk func(string)
	walk = func(curr string) {
		res = append(res, t.taxa[curr])
		for _, child := range t.children[curr] {
			walk(child)
		}
	}
	walk(id)
	return res, true
}

// Preorder returns all taxa in pre-order. The slice is freshly
// allocated, the taxa are shared and read-only.
func (t *Taxonomy) Preorder() []*taxon.Taxon {
	res := make([]*taxon.Taxon, len(t.preorder))
	for i, id := range t.preorder {
		res[i] = t.taxa[id]
	}
	return res
}

// Records returns deep copies of all taxa in pre-order, suitable for
// serialization. Feeding them back to Build reproduces an equivalent
// taxonomy.
func (t *Taxonomy) Records() []taxon.Taxon {
	res := make([]taxon.Taxon, len(t.preorder))
	for i, id := range t.preorder {
		res[i] = t.taxa[id].Clone()
	}
	return res
}

// Stats returns per-rank taxon counts.
func (t *Taxonomy) Stats() Stats {
	byRank := make(map[rank.Rank]int, len(t.stats.ByRank))
	for r, n := range t.stats.ByRank {
		byRank[r] = n
	}
	return Stats{ByRank: byRank, Total: t.stats.Total}
}

func normSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
