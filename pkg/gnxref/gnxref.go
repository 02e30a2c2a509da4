// Package gnxref defines the interfaces between the pure
// cross-reference engine and its impure I/O implementations.
package gnxref

import (
	"context"

	"github.com/gnames/gnxref/pkg/graph"
)

// Ingester loads taxonomy checklists into the graph. Implementations
// read the configured source files, build and validate the trees,
// compute cross-reference edges against every taxonomy already
// published, and publish each result atomically.
type Ingester interface {
	// Load ingests the taxonomies with the given IDs. An empty list
	// means all configured taxonomies. Failures of individual
	// taxonomies are logged and skipped; Load returns an error only
	// when no taxonomy could be ingested.
	Load(ctx context.Context, ids []string) error
}

// Store persists the published graph between runs.
type Store interface {
	// Save writes every published taxonomy and edge set, replacing
	// the previous content.
	Save(ctx context.Context, g *graph.Graph) error

	// Restore republishes the saved taxonomies and edges into the
	// graph in their original publish order.
	Restore(ctx context.Context, g *graph.Graph) error

	// Close releases the underlying database handle.
	Close() error
}
