// Package taxon defines the normalized taxon record. External adapters
// produce these records, the tree builder validates them, and the
// cross-reference graph serves them back to queries.
package taxon

import (
	"strings"

	"github.com/gnames/gnuuid"
	"github.com/gnames/gnxref/pkg/rank"
)

// Concept is an opaque reference to the description or diagnosis that
// identifies which real-world entity a taxon name denotes. Two taxa
// with an equal concept are the same biological entity regardless of
// spelling.
type Concept struct {
	// RefKey is the bibliographic key of the original description,
	// for example "Pallas, 1764: Cat. Adumbr. 4".
	RefKey string `json:"ref_key,omitempty"`

	// Text is a free-form diagnosis, kept verbatim from the source.
	Text string `json:"text,omitempty"`
}

// IsZero reports whether the concept reference is absent.
func (c Concept) IsZero() bool {
	return strings.TrimSpace(c.RefKey) == ""
}

// Key returns the normalized concept identity used for comparison.
func (c Concept) Key() string {
	return strings.ToLower(strings.Join(strings.Fields(c.RefKey), " "))
}

// Equal reports whether two concept references resolve to the same
// underlying description. Absent concepts are never equal to anything,
// including each other.
func (c Concept) Equal(o Concept) bool {
	if c.IsZero() || o.IsZero() {
		return false
	}
	return c.Key() == o.Key()
}

// TypeSpecimen describes a physical specimen anchoring a species or
// subspecies description.
type TypeSpecimen struct {
	// Institution holds the collection acronym, e.g. "NHMUK".
	Institution string `json:"institution,omitempty"`

	// CatalogNumber is the specimen's identifier in the collection.
	CatalogNumber string `json:"catalog_number,omitempty"`

	// Locality is the collecting locality as written on the label.
	Locality string `json:"locality,omitempty"`
}

// Taxon is a named, ranked entity belonging to one source taxonomy.
// As an ingestion record only Rank, Name and Parent are required; ID
// and ParentID are derived by the tree builder and must not be set by
// adapters.
type Taxon struct {
	// ID is the deterministic identity of the taxon, a UUID v5 derived
	// from taxonomy ID, rank and scientific name.
	ID string `json:"id,omitempty"`

	// TaxonomyID identifies the source classification, e.g. "IOC 7.3".
	TaxonomyID string `json:"taxonomy_id,omitempty"`

	// Rank is the taxonomic rank from the fixed rank scale.
	Rank rank.Rank `json:"rank"`

	// Name is the scientific name: uninomial, binomial or trinomial
	// depending on rank.
	Name string `json:"name"`

	// Author of the original description.
	Author string `json:"author,omitempty"`

	// Year of publication of the original description.
	Year int `json:"year,omitempty"`

	// Concept references the description that fixes the taxon's
	// identity; may be absent.
	Concept Concept `json:"concept,omitzero"`

	// TypeSpecimens anchor the description. Only species and
	// subspecies may carry them.
	TypeSpecimens []TypeSpecimen `json:"type_specimens,omitempty"`

	// VernacularNames maps a language tag to the common names in that
	// language. A language may carry several names.
	VernacularNames map[string][]string `json:"vernacular_names,omitempty"`

	// Parent is the scientific name of the immediate supertaxon within
	// the same taxonomy. Empty only for the taxonomy root.
	Parent string `json:"parent,omitempty"`

	// ParentID is the resolved identity of the parent taxon, derived
	// by the tree builder.
	ParentID string `json:"-"`

	// Extinct marks taxa flagged as extinct by the source.
	Extinct bool `json:"extinct,omitempty"`

	// Code is the source's short species code, when provided.
	Code string `json:"code,omitempty"`
}

// MakeID derives the deterministic taxon identity from its coordinates
// within a taxonomy. Identical input always produces the same UUID v5.
func MakeID(taxonomyID string, r rank.Rank, name string) string {
	return gnuuid.New(taxonomyID + "|" + r.String() + "|" + name).String()
}

// Clone returns a deep copy of the taxon.
func (t *Taxon) Clone() Taxon {
	res := *t
	if t.TypeSpecimens != nil {
		res.TypeSpecimens = make([]TypeSpecimen, len(t.TypeSpecimens))
		copy(res.TypeSpecimens, t.TypeSpecimens)
	}
	if t.VernacularNames != nil {
		res.VernacularNames = make(map[string][]string, len(t.VernacularNames))
		for lang, names := range t.VernacularNames {
			cp := make([]string, len(names))
			copy(cp, names)
			res.VernacularNames[lang] = cp
		}
	}
	return res
}
