package matcher_test

import (
	"testing"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnxref/pkg/graph"
	"github.com/gnames/gnxref/pkg/matcher"
	"github.com/gnames/gnxref/pkg/parserpool"
	"github.com/gnames/gnxref/pkg/rank"
	"github.com/gnames/gnxref/pkg/taxon"
	"github.com/gnames/gnxref/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pool = parserpool.New(2)

func build(t *testing.T, id string, records []taxon.Taxon) *taxonomy.Taxonomy {
	t.Helper()
	tx, err := taxonomy.Build(id, "1.0", records)
	require.NoError(t, err)
	return tx
}

func TestSynonymByConcept(t *testing.T) {
	assert := assert.New(t)

	// IOC knows the Subalpine Warbler as Sylvia cantillans, HM places
	// it in Curruca; both cite the same original description.
	ioc := build(t, "IOC", []taxon.Taxon{
		{Rank: rank.Genus, Name: "Sylvia"},
		{Rank: rank.Species, Name: "Sylvia cantillans", Parent: "Sylvia",
			Concept: taxon.Concept{RefKey: "Pallas, 1764"}},
		{Rank: rank.Subspecies, Name: "Sylvia cantillans cantillans",
			Parent: "Sylvia cantillans"},
	})
	hm := build(t, "HM", []taxon.Taxon{
		{Rank: rank.Genus, Name: "Curruca"},
		{Rank: rank.Species, Name: "Curruca cantillans", Parent: "Curruca",
			Concept: taxon.Concept{RefKey: "Pallas, 1764"}},
	})

	m := matcher.New(pool, nomcode.Zoological)
	edges, err := m.Match(ioc, hm)
	require.NoError(t, err)
	require.Len(t, edges, 1)

	e := edges[0]
	assert.Equal(graph.EdgeSynonym, e.Type)
	assert.Equal(taxon.MakeID("IOC", rank.Species, "Sylvia cantillans"),
		e.TaxonA)
	assert.Equal(taxon.MakeID("HM", rank.Species, "Curruca cantillans"),
		e.TaxonB)
}

func TestHomonymByName(t *testing.T) {
	assert := assert.New(t)

	// Identical spelling, unrelated descriptions.
	a := build(t, "A", []taxon.Taxon{
		{Rank: rank.Genus, Name: "Sylvia"},
		{Rank: rank.Species, Name: "Sylvia cantillans", Parent: "Sylvia",
			Concept: taxon.Concept{RefKey: "Pallas, 1764"}},
	})
	b := build(t, "B", []taxon.Taxon{
		{Rank: rank.Genus, Name: "Sylvia"},
		{Rank: rank.Species, Name: "Sylvia cantillans", Parent: "Sylvia",
			Concept: taxon.Concept{RefKey: "Brehm, 1831"}},
	})

	m := matcher.New(pool, nomcode.Zoological)
	edges, err := m.Match(a, b)
	require.NoError(t, err)
	require.Len(t, edges, 2)
	for _, e := range edges {
		assert.Equal(graph.EdgeHomonym, e.Type,
			"differing concepts never make a synonym")
	}
}

func TestAbsentConceptStaysHomonym(t *testing.T) {
	a := build(t, "A", []taxon.Taxon{
		{Rank: rank.Species, Name: "Sylvia cantillans"},
	})
	b := build(t, "B", []taxon.Taxon{
		{Rank: rank.Species, Name: "Sylvia cantillans"},
	})

	m := matcher.New(pool, nomcode.Zoological)
	edges, err := m.Match(a, b)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, graph.EdgeHomonym, edges[0].Type,
		"missing concept data must not be promoted to a synonym claim")
}

func TestAuthorshipIgnoredInNameMatch(t *testing.T) {
	a := build(t, "A", []taxon.Taxon{
		{Rank: rank.Species, Name: "Sylvia cantillans (Pallas, 1764)"},
	})
	b := build(t, "B", []taxon.Taxon{
		{Rank: rank.Species, Name: "Sylvia cantillans"},
	})

	m := matcher.New(pool, nomcode.Zoological)
	edges, err := m.Match(a, b)
	require.NoError(t, err)
	require.Len(t, edges, 1,
		"canonical forms collide regardless of authorship strings")
	assert.Equal(t, graph.EdgeHomonym, edges[0].Type)
}

func TestNoOverlapNoEdges(t *testing.T) {
	a := build(t, "A", []taxon.Taxon{
		{Rank: rank.Species, Name: "Sylvia cantillans",
			Concept: taxon.Concept{RefKey: "Pallas, 1764"}},
	})
	b := build(t, "B", []taxon.Taxon{
		{Rank: rank.Species, Name: "Passer domesticus",
			Concept: taxon.Concept{RefKey: "Linnaeus, 1758"}},
	})

	m := matcher.New(pool, nomcode.Zoological)
	edges, err := m.Match(a, b)
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestMatchSameTaxonomyFails(t *testing.T) {
	a := build(t, "A", []taxon.Taxon{
		{Rank: rank.Genus, Name: "Sylvia"},
	})
	m := matcher.New(pool, nomcode.Zoological)
	_, err := m.Match(a, a)
	assert.Error(t, err)
}

func TestSplitSpeciesYieldsPairwiseEdges(t *testing.T) {
	assert := assert.New(t)

	// B splits A's species into two, both citing A's description.
	a := build(t, "A", []taxon.Taxon{
		{Rank: rank.Genus, Name: "Sylvia"},
		{Rank: rank.Species, Name: "Sylvia cantillans", Parent: "Sylvia",
			Concept: taxon.Concept{RefKey: "Pallas, 1764"}},
	})
	b := build(t, "B", []taxon.Taxon{
		{Rank: rank.Genus, Name: "Curruca"},
		{Rank: rank.Species, Name: "Curruca cantillans", Parent: "Curruca",
			Concept: taxon.Concept{RefKey: "Pallas, 1764"}},
		{Rank: rank.Species, Name: "Curruca iberiae", Parent: "Curruca",
			Concept: taxon.Concept{RefKey: "Pallas, 1764"}},
	})

	m := matcher.New(pool, nomcode.Zoological)
	edges, err := m.Match(a, b)
	require.NoError(t, err)
	require.Len(t, edges, 2)
	for _, e := range edges {
		assert.Equal(graph.EdgeSynonym, e.Type)
	}
}
