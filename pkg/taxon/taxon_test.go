package taxon_test

import (
	"testing"

	"github.com/gnames/gnxref/pkg/rank"
	"github.com/gnames/gnxref/pkg/taxon"
	"github.com/stretchr/testify/assert"
)

func TestMakeID(t *testing.T) {
	assert := assert.New(t)

	id1 := taxon.MakeID("IOC 7.3", rank.Species, "Sylvia cantillans")
	id2 := taxon.MakeID("IOC 7.3", rank.Species, "Sylvia cantillans")
	assert.Equal(id1, id2, "identity must be deterministic")

	other := taxon.MakeID("HM 4.1", rank.Species, "Sylvia cantillans")
	assert.NotEqual(id1, other, "identity is scoped by taxonomy")

	genus := taxon.MakeID("IOC 7.3", rank.Genus, "Sylvia cantillans")
	assert.NotEqual(id1, genus, "identity is scoped by rank")
}

func TestConceptEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b taxon.Concept
		want bool
	}{
		{
			name: "same key",
			a:    taxon.Concept{RefKey: "Pallas, 1764"},
			b:    taxon.Concept{RefKey: "Pallas, 1764"},
			want: true,
		},
		{
			name: "case and spacing normalized",
			a:    taxon.Concept{RefKey: "Pallas,  1764"},
			b:    taxon.Concept{RefKey: "pallas, 1764"},
			want: true,
		},
		{
			name: "different keys",
			a:    taxon.Concept{RefKey: "Pallas, 1764"},
			b:    taxon.Concept{RefKey: "Linnaeus, 1758"},
			want: false,
		},
		{
			name: "absent never equals absent",
			a:    taxon.Concept{},
			b:    taxon.Concept{},
			want: false,
		},
		{
			name: "absent never equals present",
			a:    taxon.Concept{},
			b:    taxon.Concept{RefKey: "Pallas, 1764"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func TestClone(t *testing.T) {
	assert := assert.New(t)

	orig := taxon.Taxon{
		Rank: rank.Species,
		Name: "Sylvia cantillans",
		VernacularNames: map[string][]string{
			"en": {"Subalpine Warbler"},
		},
		TypeSpecimens: []taxon.TypeSpecimen{{Institution: "NHMUK"}},
	}
	cp := orig.Clone()
	cp.VernacularNames["en"][0] = "changed"
	cp.TypeSpecimens[0].Institution = "changed"

	assert.Equal("Subalpine Warbler", orig.VernacularNames["en"][0])
	assert.Equal("NHMUK", orig.TypeSpecimens[0].Institution)
}
