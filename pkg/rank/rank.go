// Package rank provides the closed set of taxonomic ranks used by all
// taxonomies in the cross-reference graph.
//
// The order of ranks is total and fixed: Kingdom is the broadest rank,
// Subspecies the narrowest. Sources are allowed to skip ranks (a Genus
// directly under an Order is valid), but a child's rank must always be
// strictly narrower than its parent's.
package rank

import (
	"fmt"
	"strings"
)

// Rank is a taxonomic rank. The zero value is Unknown and never valid
// in a published taxonomy.
type Rank int

const (
	Unknown Rank = iota
	Kingdom
	Phylum
	Class
	Infraclass
	Order
	Family
	Genus
	Species
	Subspecies
)

var rankNames = []string{
	"unknown",
	"kingdom",
	"phylum",
	"class",
	"infraclass",
	"order",
	"family",
	"genus",
	"species",
	"subspecies",
}

// All returns every valid rank in order from broadest to narrowest.
func All() []Rank {
	return []Rank{
		Kingdom, Phylum, Class, Infraclass, Order,
		Family, Genus, Species, Subspecies,
	}
}

// New converts a rank string to a Rank. The match is case-insensitive
// and ignores surrounding whitespace. Unrecognized strings return
// Unknown with an error.
func New(s string) (Rank, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range rankNames {
		if i == 0 {
			continue
		}
		if n == name {
			return Rank(i), nil
		}
	}
	return Unknown, fmt.Errorf("unknown rank: %q", s)
}

func (r Rank) String() string {
	if r < Kingdom || r > Subspecies {
		return rankNames[0]
	}
	return rankNames[r]
}

// Above reports whether r strictly precedes o in the rank order, with
// Unknown never above or below anything.
func (r Rank) Above(o Rank) bool {
	if r == Unknown || o == Unknown {
		return false
	}
	return r < o
}

// AllowsTypeSpecimens reports whether taxa of this rank may carry type
// specimens. Only Species and Subspecies descriptions are anchored by
// physical specimens.
func (r Rank) AllowsTypeSpecimens() bool {
	return r == Species || r == Subspecies
}

// MarshalText implements encoding.TextMarshaler. Ranks serialize as
// their lower-case names.
func (r Rank) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rank) UnmarshalText(data []byte) error {
	res, err := New(string(data))
	if err != nil {
		return err
	}
	*r = res
	return nil
}
