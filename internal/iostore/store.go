// Package iostore persists the published cross-reference graph in a
// SQLite database so it survives between runs.
//
// The layout is one row per taxonomy with its records serialized as a
// JSON blob, and one row per taxonomy pair with the edge set between
// them. Restore replays the rows through the usual build and publish
// path, so a restored graph passes the same validation as a freshly
// ingested one.
package iostore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnxref/pkg/gnxref"
	"github.com/gnames/gnxref/pkg/graph"
	"github.com/gnames/gnxref/pkg/taxon"
	"github.com/gnames/gnxref/pkg/taxonomy"
	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS taxonomies (
  id TEXT PRIMARY KEY,
  version TEXT NOT NULL,
  seq INTEGER NOT NULL,
  data BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS edge_sets (
  taxonomy_a TEXT NOT NULL,
  taxonomy_b TEXT NOT NULL,
  data BLOB NOT NULL,
  PRIMARY KEY (taxonomy_a, taxonomy_b)
);
`

// taxonomyDoc is the serialized form of one taxonomy.
type taxonomyDoc struct {
	ID      string        `json:"id"`
	Version string        `json:"version"`
	Records []taxon.Taxon `json:"records"`
}

type iostore struct {
	db  *sql.DB
	enc gnfmt.Encoder
}

// New opens or creates the SQLite database at the given path.
func New(path string) (gnxref.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, OpenError(path, err)
	}

	// SQLite supports one writer at a time
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err = db.Exec(pragma); err != nil {
			db.Close()
			return nil, OpenError(path, err)
		}
	}

	if _, err = db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, OpenError(path, err)
	}

	res := iostore{db: db, enc: gnfmt.GNjson{}}
	return &res, nil
}

func (s *iostore) Save(ctx context.Context, g *graph.Graph) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SaveError(err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, "DELETE FROM taxonomies"); err != nil {
		return SaveError(err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM edge_sets"); err != nil {
		return SaveError(err)
	}

	for seq, info := range g.Taxonomies() {
		txn, ok := g.TaxonomyByID(info.ID)
		if !ok {
			return SaveError(
				fmt.Errorf("taxonomy '%s' disappeared during save", info.ID),
			)
		}
		doc := taxonomyDoc{
			ID:      txn.ID(),
			Version: txn.Version(),
			Records: txn.Records(),
		}
		data, err := s.enc.Encode(doc)
		if err != nil {
			return SaveError(err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO taxonomies (id, version, seq, data) VALUES (?, ?, ?, ?)",
			doc.ID, doc.Version, seq, data,
		)
		if err != nil {
			return SaveError(err)
		}
	}

	for pair, edges := range edgesByPair(g.Edges()) {
		data, err := s.enc.Encode(edges)
		if err != nil {
			return SaveError(err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO edge_sets (taxonomy_a, taxonomy_b, data) VALUES (?, ?, ?)",
			pair[0], pair[1], data,
		)
		if err != nil {
			return SaveError(err)
		}
	}

	if err = tx.Commit(); err != nil {
		return SaveError(err)
	}
	return nil
}

func (s *iostore) Restore(ctx context.Context, g *graph.Graph) error {
	docs, err := s.readTaxonomies(ctx)
	if err != nil {
		return err
	}
	pairs, err := s.readEdgeSets(ctx)
	if err != nil {
		return err
	}

	published := make(map[string]bool, len(docs))
	for _, doc := range docs {
		txn, err := taxonomy.Build(doc.ID, doc.Version, doc.Records)
		if err != nil {
			return RestoreError(err)
		}

		// Edges of a pair go in when its second member is published.
		var edges []graph.Edge
		for pair, set := range pairs {
			other := pair[0]
			if other == doc.ID {
				other = pair[1]
			}
			if published[other] {
				edges = append(edges, set...)
			}
		}

		if err = g.Publish(txn, edges); err != nil {
			return RestoreError(err)
		}
		published[doc.ID] = true
	}

	return nil
}

func (s *iostore) Close() error {
	return s.db.Close()
}

func (s *iostore) readTaxonomies(
	ctx context.Context,
) ([]taxonomyDoc, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT data FROM taxonomies ORDER BY seq",
	)
	if err != nil {
		return nil, RestoreError(err)
	}
	defer rows.Close()

	var res []taxonomyDoc
	for rows.Next() {
		var data []byte
		if err = rows.Scan(&data); err != nil {
			return nil, RestoreError(err)
		}
		var doc taxonomyDoc
		if err = s.enc.Decode(data, &doc); err != nil {
			return nil, RestoreError(err)
		}
		res = append(res, doc)
	}
	if err = rows.Err(); err != nil {
		return nil, RestoreError(err)
	}
	return res, nil
}

func (s *iostore) readEdgeSets(
	ctx context.Context,
) (map[[2]string][]graph.Edge, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT taxonomy_a, taxonomy_b, data FROM edge_sets",
	)
	if err != nil {
		return nil, RestoreError(err)
	}
	defer rows.Close()

	res := make(map[[2]string][]graph.Edge)
	for rows.Next() {
		var a, b string
		var data []byte
		if err = rows.Scan(&a, &b, &data); err != nil {
			return nil, RestoreError(err)
		}
		var edges []graph.Edge
		if err = s.enc.Decode(data, &edges); err != nil {
			return nil, RestoreError(err)
		}
		res[[2]string{a, b}] = edges
	}
	if err = rows.Err(); err != nil {
		return nil, RestoreError(err)
	}
	return res, nil
}

func edgesByPair(edges []graph.Edge) map[[2]string][]graph.Edge {
	res := make(map[[2]string][]graph.Edge)
	for _, e := range edges {
		pair := [2]string{e.TaxonomyA, e.TaxonomyB}
		res[pair] = append(res[pair], e)
	}
	return res
}
