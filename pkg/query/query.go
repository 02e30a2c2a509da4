// Package query translates external requests into graph operations.
// The engine is stateless: it holds nothing but a reference to the
// graph and the configured result limit, enforces pagination on name
// lookups, and maps internal error kinds to externally visible ones.
package query

import (
	"github.com/gnames/gnxref/pkg/graph"
	"github.com/gnames/gnxref/pkg/taxon"
)

// Op names a query operation.
type Op string

const (
	OpSearchScientific Op = "search_scientific"
	OpSearchVernacular Op = "search_vernacular"
	OpAncestors        Op = "ancestors"
	OpDescendants      Op = "descendants"
	OpRelationships    Op = "relationships"
	OpStats            Op = "stats"
)

// Request is a transport-neutral query request.
type Request struct {
	Op Op `json:"op"`

	// Name is the query string for search operations.
	Name string `json:"name,omitempty"`

	// Language scopes vernacular searches.
	Language string `json:"language,omitempty"`

	// TaxonID addresses hierarchy and relationship operations.
	TaxonID string `json:"taxon_id,omitempty"`

	// Match is "exact" (default) or "prefix".
	Match string `json:"match,omitempty"`

	// EdgeType filters relationships: "synonym", "homonym" or empty
	// for all.
	EdgeType string `json:"edge_type,omitempty"`

	// Limit caps search results. Zero or anything beyond the engine's
	// maximum falls back to the maximum.
	Limit int `json:"limit,omitempty"`
}

// TaxonView is the external projection of a taxon.
type TaxonView struct {
	ID         string              `json:"id"`
	TaxonomyID string              `json:"taxonomy_id"`
	Rank       string              `json:"rank"`
	Name       string              `json:"name"`
	Author     string              `json:"author,omitempty"`
	Year       int                 `json:"year,omitempty"`
	Parent     string              `json:"parent,omitempty"`
	Vernacular map[string][]string `json:"vernacular_names,omitempty"`
	Extinct    bool                `json:"extinct,omitempty"`
	Code       string              `json:"code,omitempty"`
}

// EdgeView is the external projection of a cross-reference edge, with
// endpoint names resolved.
type EdgeView struct {
	Type      string `json:"type"`
	TaxonomyA string `json:"taxonomy_a"`
	TaxonA    string `json:"taxon_a"`
	NameA     string `json:"name_a"`
	TaxonomyB string `json:"taxonomy_b"`
	TaxonB    string `json:"taxon_b"`
	NameB     string `json:"name_b"`
}

// Response carries the ordered projections for one request.
type Response struct {
	Taxa       []TaxonView          `json:"taxa,omitempty"`
	Edges      []EdgeView           `json:"edges,omitempty"`
	Taxonomies []graph.TaxonomyInfo `json:"taxonomies,omitempty"`

	// Truncated is true when a search result hit the limit.
	Truncated bool `json:"truncated,omitempty"`
}

// Engine answers query requests over the current graph snapshot.
type Engine struct {
	g        *graph.Graph
	maxLimit int
}

// New creates an Engine with the given maximum result count per search
// call.
func New(g *graph.Graph, maxLimit int) *Engine {
	if maxLimit <= 0 {
		maxLimit = 50
	}
	return &Engine{g: g, maxLimit: maxLimit}
}

// Do executes one request. Errors are always typed query errors and
// leave the graph untouched.
func (e *Engine) Do(req *Request) (*Response, error) {
	switch req.Op {
	case OpSearchScientific:
		return e.searchScientific(req)
	case OpSearchVernacular:
		return e.searchVernacular(req)
	case OpAncestors:
		return e.ancestors(req)
	case OpDescendants:
		return e.descendants(req)
	case OpRelationships:
		return e.relationships(req)
	case OpStats:
		return &Response{Taxonomies: e.g.Taxonomies()}, nil
	}
	return nil, UnknownOperationError(string(req.Op))
}

func (e *Engine) searchScientific(req *Request) (*Response, error) {
	match, name, limit, err := e.searchParams(req)
	if err != nil {
		return nil, err
	}
	return e.collect(e.g.LookupByScientificName(name, match), limit), nil
}

func (e *Engine) searchVernacular(req *Request) (*Response, error) {
	match, name, limit, err := e.searchParams(req)
	if err != nil {
		return nil, err
	}
	if req.Language == "" {
		return nil, InvalidParameterError("language", req.Language)
	}
	seq := e.g.LookupByVernacularName(req.Language, name, match)
	return e.collect(seq, limit), nil
}

func (e *Engine) searchParams(
	req *Request,
) (graph.Match, string, int, error) {
	if req.Name == "" {
		return 0, "", 0, InvalidParameterError("name", req.Name)
	}
	match, ok := graph.NewMatch(req.Match)
	if !ok {
		return 0, "", 0, InvalidParameterError("match", req.Match)
	}
	limit := req.Limit
	if limit <= 0 || limit > e.maxLimit {
		limit = e.maxLimit
	}
	return match, req.Name, limit, nil
}

func (e *Engine) collect(
	seq func(func(*taxon.Taxon) bool),
	limit int,
) *Response {
	res := &Response{}
	for t := range seq {
		if len(res.Taxa) == limit {
			res.Truncated = true
			break
		}
		res.Taxa = append(res.Taxa, newTaxonView(t))
	}
	return res
}

func (e *Engine) ancestors(req *Request) (*Response, error) {
	if req.TaxonID == "" {
		return nil, InvalidParameterError("taxon_id", req.TaxonID)
	}
	taxa, err := e.g.Ancestors(req.TaxonID)
	if err != nil {
		return nil, err
	}
	return &Response{Taxa: newTaxonViews(taxa)}, nil
}

func (e *Engine) descendants(req *Request) (*Response, error) {
	if req.TaxonID == "" {
		return nil, InvalidParameterError("taxon_id", req.TaxonID)
	}
	taxa, err := e.g.Descendants(req.TaxonID)
	if err != nil {
		return nil, err
	}
	return &Response{Taxa: newTaxonViews(taxa)}, nil
}

func (e *Engine) relationships(req *Request) (*Response, error) {
	if req.TaxonID == "" {
		return nil, InvalidParameterError("taxon_id", req.TaxonID)
	}
	edgeType, err := graph.NewEdgeType(req.EdgeType)
	if err != nil {
		return nil, InvalidParameterError("edge_type", req.EdgeType)
	}
	edges, err := e.g.RelationshipsOf(req.TaxonID, edgeType)
	if err != nil {
		return nil, err
	}
	res := &Response{}
	for _, edge := range edges {
		res.Edges = append(res.Edges, e.newEdgeView(edge))
	}
	return res, nil
}

func (e *Engine) newEdgeView(edge graph.Edge) EdgeView {
	view := EdgeView{
		Type:      edge.Type.String(),
		TaxonomyA: edge.TaxonomyA,
		TaxonA:    edge.TaxonA,
		TaxonomyB: edge.TaxonomyB,
		TaxonB:    edge.TaxonB,
	}
	if t, ok := e.g.Taxon(edge.TaxonA); ok {
		view.NameA = t.Name
	}
	if t, ok := e.g.Taxon(edge.TaxonB); ok {
		view.NameB = t.Name
	}
	return view
}

func newTaxonView(t *taxon.Taxon) TaxonView {
	return TaxonView{
		ID:         t.ID,
		TaxonomyID: t.TaxonomyID,
		Rank:       t.Rank.String(),
		Name:       t.Name,
		Author:     t.Author,
		Year:       t.Year,
		Parent:     t.Parent,
		Vernacular: t.VernacularNames,
		Extinct:    t.Extinct,
		Code:       t.Code,
	}
}

func newTaxonViews(taxa []*taxon.Taxon) []TaxonView {
	res := make([]TaxonView, len(taxa))
	for i, t := range taxa {
		res[i] = newTaxonView(t)
	}
	return res
}
