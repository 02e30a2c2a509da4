package taxonomy_test

import (
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnxref/pkg/errcode"
	"github.com/gnames/gnxref/pkg/rank"
	"github.com/gnames/gnxref/pkg/taxon"
	"github.com/gnames/gnxref/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iocRecords() []taxon.Taxon {
	return []taxon.Taxon{
		{Rank: rank.Genus, Name: "Sylvia"},
		{Rank: rank.Species, Name: "Sylvia cantillans", Parent: "Sylvia",
			Concept: taxon.Concept{RefKey: "Pallas, 1764"},
			VernacularNames: map[string][]string{
				"en": {"Subalpine Warbler"},
				"sv": {"Rödstrupig sångare"},
			}},
		{Rank: rank.Subspecies, Name: "Sylvia cantillans cantillans",
			Parent: "Sylvia cantillans"},
		{Rank: rank.Subspecies, Name: "Sylvia cantillans albistriata",
			Parent: "Sylvia cantillans"},
		{Rank: rank.Species, Name: "Sylvia atricapilla", Parent: "Sylvia",
			Concept: taxon.Concept{RefKey: "Linnaeus, 1758"}},
	}
}

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "expected *gn.Error, got %T", err)
	return gnErr.Code
}

func TestBuild(t *testing.T) {
	assert := assert.New(t)

	tx, err := taxonomy.Build("IOC 7.3", "7.3", iocRecords())
	require.NoError(t, err)

	assert.Equal("IOC 7.3", tx.ID())
	assert.Equal("7.3", tx.Version())
	assert.Equal(5, tx.Len())
	assert.Equal("Sylvia", tx.Root().Name)

	// Input records are not mutated.
	recs := iocRecords()
	_, err = taxonomy.Build("IOC 7.3", "7.3", recs)
	require.NoError(t, err)
	assert.Empty(recs[0].ID)
	assert.Empty(recs[0].TaxonomyID)
}

func TestBuildSingleRootOnly(t *testing.T) {
	tx, err := taxonomy.Build("tiny", "1.0", []taxon.Taxon{
		{Rank: rank.Genus, Name: "Sylvia"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.Len())
	assert.Equal(t, tx.Root().ID, tx.Preorder()[0].ID)
}

func TestBuildFailures(t *testing.T) {
	tests := []struct {
		name    string
		records []taxon.Taxon
		code    gn.ErrorCode
	}{
		{
			name:    "empty input",
			records: nil,
			code:    errcode.TreeNoRootError,
		},
		{
			name: "no root",
			records: []taxon.Taxon{
				{Rank: rank.Species, Name: "Sylvia cantillans", Parent: "Sylvia"},
				{Rank: rank.Genus, Name: "Sylvia", Parent: "Sylviidae"},
				{Rank: rank.Family, Name: "Sylviidae", Parent: "Sylvia cantillans"},
			},
			code: errcode.TreeNoRootError,
		},
		{
			name: "multiple roots",
			records: []taxon.Taxon{
				{Rank: rank.Genus, Name: "Sylvia"},
				{Rank: rank.Genus, Name: "Curruca"},
			},
			code: errcode.TreeMultipleRootsError,
		},
		{
			name: "unknown parent",
			records: []taxon.Taxon{
				{Rank: rank.Genus, Name: "Sylvia"},
				{Rank: rank.Species, Name: "Sylvia cantillans", Parent: "Silvia"},
			},
			code: errcode.TreeUnknownParentError,
		},
		{
			name: "cycle off the root",
			records: []taxon.Taxon{
				{Rank: rank.Genus, Name: "Sylvia"},
				{Rank: rank.Species, Name: "Sylvia cantillans",
					Parent: "Sylvia cantillans cantillans"},
				{Rank: rank.Subspecies, Name: "Sylvia cantillans cantillans",
					Parent: "Sylvia cantillans"},
			},
			code: errcode.TreeCycleError,
		},
		{
			name: "self parent",
			records: []taxon.Taxon{
				{Rank: rank.Genus, Name: "Sylvia"},
				{Rank: rank.Species, Name: "Sylvia cantillans",
					Parent: "Sylvia cantillans"},
			},
			code: errcode.TreeCycleError,
		},
		{
			name: "rank order violation",
			records: []taxon.Taxon{
				{Rank: rank.Species, Name: "Sylvia cantillans"},
				{Rank: rank.Genus, Name: "Sylvia", Parent: "Sylvia cantillans"},
			},
			code: errcode.TreeRankOrderError,
		},
		{
			name: "equal ranks violate order",
			records: []taxon.Taxon{
				{Rank: rank.Genus, Name: "Sylvia"},
				{Rank: rank.Genus, Name: "Curruca", Parent: "Sylvia"},
			},
			code: errcode.TreeRankOrderError,
		},
		{
			name: "duplicate name within rank",
			records: []taxon.Taxon{
				{Rank: rank.Genus, Name: "Sylvia"},
				{Rank: rank.Species, Name: "Sylvia cantillans", Parent: "Sylvia"},
				{Rank: rank.Species, Name: "Sylvia cantillans", Parent: "Sylvia"},
			},
			code: errcode.TreeDuplicateNameError,
		},
		{
			// Records collapsing to one identity are caught before
			// parent chains are walked.
			name: "identical records inside a cycle",
			records: []taxon.Taxon{
				{Rank: rank.Genus, Name: "Sylvia"},
				{Rank: rank.Species, Name: "Sylvia cantillans",
					Parent: "Sylvia cantillans cantillans"},
				{Rank: rank.Subspecies, Name: "Sylvia cantillans cantillans",
					Parent: "Sylvia cantillans"},
				{Rank: rank.Subspecies, Name: "Sylvia cantillans cantillans",
					Parent: "Sylvia cantillans"},
			},
			code: errcode.TreeDuplicateNameError,
		},
		{
			name: "type specimens above species",
			records: []taxon.Taxon{
				{Rank: rank.Genus, Name: "Sylvia",
					TypeSpecimens: []taxon.TypeSpecimen{{Institution: "NHMUK"}}},
			},
			code: errcode.TreeTypeSpecimenRankError,
		},
		{
			name: "empty name",
			records: []taxon.Taxon{
				{Rank: rank.Genus, Name: "   "},
			},
			code: errcode.TreeInvalidRecordError,
		},
		{
			name: "unknown rank",
			records: []taxon.Taxon{
				{Rank: rank.Unknown, Name: "Sylvia"},
			},
			code: errcode.TreeInvalidRecordError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := taxonomy.Build("bad", "1.0", tt.records)
			require.Error(t, err)
			assert.Nil(t, tx, "no partial tree on failure")
			assert.Equal(t, tt.code, errCode(t, err))
		})
	}
}

func TestAncestors(t *testing.T) {
	assert := assert.New(t)

	tx, err := taxonomy.Build("IOC 7.3", "7.3", iocRecords())
	require.NoError(t, err)

	leafID := taxon.MakeID("IOC 7.3", rank.Subspecies,
		"Sylvia cantillans cantillans")
	chain, ok := tx.Ancestors(leafID)
	require.True(t, ok)
	require.Len(t, chain, 2, "chain length equals the leaf's depth")
	assert.Equal("Sylvia cantillans", chain[0].Name)
	assert.Equal("Sylvia", chain[1].Name)
	for i := 1; i < len(chain); i++ {
		assert.True(chain[i].Rank.Above(chain[i-1].Rank),
			"ranks grow strictly broader toward the root")
	}

	_, ok = tx.Ancestors("no-such-id")
	assert.False(ok)
}

func TestDescendants(t *testing.T) {
	assert := assert.New(t)

	tx, err := taxonomy.Build("IOC 7.3", "7.3", iocRecords())
	require.NoError(t, err)

	spID := taxon.MakeID("IOC 7.3", rank.Species, "Sylvia cantillans")
	sub, ok := tx.Descendants(spID)
	require.True(t, ok)
	require.Len(t, sub, 3)
	assert.Equal("Sylvia cantillans", sub[0].Name)
	// Children are ordered deterministically by name.
	assert.Equal("Sylvia cantillans albistriata", sub[1].Name)
	assert.Equal("Sylvia cantillans cantillans", sub[2].Name)

	all, ok := tx.Descendants(tx.Root().ID)
	require.True(t, ok)
	assert.Len(all, tx.Len())
}

func TestPreorderPositions(t *testing.T) {
	assert := assert.New(t)

	tx, err := taxonomy.Build("IOC 7.3", "7.3", iocRecords())
	require.NoError(t, err)

	order := tx.Preorder()
	for i, tax := range order {
		pos, ok := tx.Pos(tax.ID)
		assert.True(ok)
		assert.Equal(i, pos)
	}
	assert.Equal(tx.Root().ID, order[0].ID)
}

func TestStats(t *testing.T) {
	assert := assert.New(t)

	tx, err := taxonomy.Build("IOC 7.3", "7.3", iocRecords())
	require.NoError(t, err)

	stats := tx.Stats()
	assert.Equal(5, stats.Total)
	assert.Equal(1, stats.ByRank[rank.Genus])
	assert.Equal(2, stats.ByRank[rank.Species])
	assert.Equal(2, stats.ByRank[rank.Subspecies])
}

func TestRecordsRoundTrip(t *testing.T) {
	assert := assert.New(t)

	tx, err := taxonomy.Build("IOC 7.3", "7.3", iocRecords())
	require.NoError(t, err)

	rebuilt, err := taxonomy.Build(tx.ID(), tx.Version(), tx.Records())
	require.NoError(t, err)

	assert.Equal(tx.Len(), rebuilt.Len())
	for i, tax := range tx.Preorder() {
		assert.Equal(tax.ID, rebuilt.Preorder()[i].ID)
	}
}
