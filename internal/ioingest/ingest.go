// Package ioingest implements the Ingester interface for loading
// taxonomy checklists into the cross-reference graph.
// This is an impure I/O package that reads taxon-record JSON documents
// and drives the build, match and publish pipeline.
package ioingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnxref/internal/iosources"
	"github.com/gnames/gnxref/pkg/config"
	"github.com/gnames/gnxref/pkg/gnxref"
	"github.com/gnames/gnxref/pkg/graph"
	"github.com/gnames/gnxref/pkg/matcher"
	"github.com/gnames/gnxref/pkg/parserpool"
	"github.com/gnames/gnxref/pkg/sources"
	"github.com/gnames/gnxref/pkg/taxon"
	"github.com/gnames/gnxref/pkg/taxonomy"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// phase names the stage of the pipeline a source is in. Every source
// starts at phaseIdle and returns there, successful or not; the graph
// is touched only in phasePublishing.
type phase int

const (
	phaseIdle phase = iota
	phaseLoading
	phaseValidating
	phaseMatching
	phasePublishing
)

var phaseNames = []string{
	"idle", "loading", "validating", "matching", "publishing",
}

func (p phase) String() string { return phaseNames[p] }

// sourceDoc is the on-disk format of one taxonomy checklist.
type sourceDoc struct {
	ID      string        `json:"id,omitempty"`
	Version string        `json:"version,omitempty"`
	Records []taxon.Taxon `json:"records"`

	// Vernaculars holds per-language vernacular names keyed by
	// scientific name. They are merged into the records before the
	// tree is built.
	Vernaculars map[string]map[string][]string `json:"vernacular_names,omitempty"`
}

type ingester struct {
	cfg   *config.Config
	g     *graph.Graph
	store gnxref.Store
	pool  parserpool.Pool
	enc   gnfmt.Encoder

	mu    sync.Mutex
	phase phase
}

// New creates an Ingester. The store may be nil, in which case the
// graph is not persisted after a load.
func New(
	cfg *config.Config,
	g *graph.Graph,
	store gnxref.Store,
) gnxref.Ingester {
	res := ingester{
		cfg:   cfg,
		g:     g,
		store: store,
		pool:  parserpool.New(cfg.JobsNumber),
		enc:   gnfmt.GNjson{},
	}
	return &res
}

func (ing *ingester) Load(ctx context.Context, ids []string) error {
	runID := uuid.NewString()
	startTime := time.Now()
	slog.Info("Starting taxonomy ingestion", "run_id", runID)

	src := iosources.New(ing.cfg)
	sourcesConfig, err := src.Load()
	if err != nil {
		return err
	}

	toProcess, err := collectSources(sourcesConfig, ids)
	if err != nil {
		return err
	}

	successCount := 0
	errorCount := 0
	for i, source := range toProcess {
		sourceStartTime := time.Now()

		slog.Info("Processing taxonomy",
			"run_id", runID,
			"index", i+1,
			"total", len(toProcess),
			"taxonomy_id", source.ID,
			"title", source.Title,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := ing.processSource(ctx, source); err != nil {
			errorCount++
			slog.Error("Failed to process taxonomy",
				"run_id", runID,
				"taxonomy_id", source.ID,
				"error", err,
			)
			// Continue with next source instead of failing
			continue
		}

		successCount++
		sourceDuration := time.Since(sourceStartTime)
		slog.Info("Taxonomy published",
			"run_id", runID,
			"taxonomy_id", source.ID,
			"duration", gnfmt.TimeString(sourceDuration.Seconds()),
		)
	}

	if successCount > 0 && ing.store != nil {
		if err = ing.store.Save(ctx, ing.g); err != nil {
			return err
		}
	}

	totalDuration := time.Since(startTime)
	slog.Info("Ingestion complete",
		"run_id", runID,
		"success", successCount,
		"errors", errorCount,
		"total", len(toProcess),
		"duration", gnfmt.TimeString(totalDuration.Seconds()),
	)
	gn.Info(`Ingestion complete
Taxonomies succeeded: %d, failed %d, total %d.
Elapsed time: <em>%s</em>
`,
		successCount,
		errorCount,
		len(toProcess),
		gnfmt.TimeString(totalDuration.Seconds()),
	)

	if errorCount > 0 && successCount == 0 {
		return AllSourcesFailedError(errorCount)
	}

	if errorCount > 0 {
		slog.Warn("Some taxonomies failed to load",
			"failed", errorCount,
			"succeeded", successCount)
	}
	return nil
}

func collectSources(
	sourcesConfig *sources.SourcesConfig,
	ids []string,
) ([]sources.TaxonomyConfig, error) {
	if len(ids) == 0 {
		slog.Info("Processing all taxonomies",
			"count", len(sourcesConfig.Taxonomies))
		return sourcesConfig.Taxonomies, nil
	}

	byID := make(map[string]sources.TaxonomyConfig)
	for _, src := range sourcesConfig.Taxonomies {
		byID[src.ID] = src
	}

	var res []sources.TaxonomyConfig
	for _, id := range ids {
		src, ok := byID[id]
		if !ok {
			return nil, iosources.UnknownIDError(id)
		}
		res = append(res, src)
	}
	return res, nil
}

// processSource drives one taxonomy through the pipeline. Any failure
// before the publishing phase leaves the graph untouched.
func (ing *ingester) processSource(
	ctx context.Context,
	source sources.TaxonomyConfig,
) error {
	defer ing.setPhase(source.ID, phaseIdle)

	ing.setPhase(source.ID, phaseLoading)
	doc, err := ing.readDoc(source)
	if err != nil {
		return err
	}

	version := source.Version
	if version == "" {
		version = doc.Version
	}
	records := mergeVernaculars(doc.Records, doc.Vernaculars)

	ing.setPhase(source.ID, phaseValidating)
	txn, err := taxonomy.Build(source.ID, version, records)
	if err != nil {
		return err
	}
	slog.Info("Taxonomy validated",
		"taxonomy_id", source.ID,
		"taxa", humanize.Comma(int64(txn.Len())),
	)

	ing.setPhase(source.ID, phaseMatching)
	edges, err := ing.matchAll(ctx, source, txn)
	if err != nil {
		return err
	}

	ing.setPhase(source.ID, phasePublishing)
	return ing.g.Publish(txn, edges)
}

func (ing *ingester) readDoc(
	source sources.TaxonomyConfig,
) (*sourceDoc, error) {
	path := ing.expandPath(source.Path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadError(path, err)
	}

	var doc sourceDoc
	if err = ing.enc.Decode(data, &doc); err != nil {
		return nil, DecodeError(path, err)
	}
	return &doc, nil
}

// matchAll computes the edges between the new taxonomy and every
// taxonomy already published, running one matcher per pair
// concurrently.
func (ing *ingester) matchAll(
	ctx context.Context,
	source sources.TaxonomyConfig,
	txn *taxonomy.Taxonomy,
) ([]graph.Edge, error) {
	var others []*taxonomy.Taxonomy
	for _, info := range ing.g.Taxonomies() {
		if info.ID == txn.ID() {
			continue
		}
		if other, ok := ing.g.TaxonomyByID(info.ID); ok {
			others = append(others, other)
		}
	}
	if len(others) == 0 {
		return nil, nil
	}
	sort.Slice(others, func(i, j int) bool {
		return others[i].ID() < others[j].ID()
	})

	m := matcher.New(ing.pool, ing.nomCode(source))

	bar := pb.Full.Start(len(others))
	bar.Set("prefix", fmt.Sprintf("Matching %s: ", txn.ID()))
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	perPair := make([][]graph.Edge, len(others))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(ing.cfg.JobsNumber)
	for i, other := range others {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			edges, err := m.Match(txn, other)
			if err != nil {
				return err
			}
			perPair[i] = edges
			bar.Increment()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var res []graph.Edge
	for _, edges := range perPair {
		res = append(res, edges...)
	}
	slog.Info("Matching finished",
		"taxonomy_id", txn.ID(),
		"pairs", len(others),
		"edges", humanize.Comma(int64(len(res))),
	)
	return res, nil
}

// nomCode picks the parser code: the source's own setting wins,
// otherwise the configured default applies.
func (ing *ingester) nomCode(source sources.TaxonomyConfig) nomcode.Code {
	if code, ok := source.NomCode(); ok && code != nomcode.Unknown {
		return code
	}
	if ing.cfg.Graph.Code == "botanical" {
		return nomcode.Botanical
	}
	return nomcode.Zoological
}

func (ing *ingester) expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(ing.cfg.HomeDir, path[2:])
	}
	return path
}

func (ing *ingester) setPhase(taxonomyID string, p phase) {
	ing.mu.Lock()
	ing.phase = p
	ing.mu.Unlock()
	if p != phaseIdle {
		slog.Debug("Pipeline phase",
			"taxonomy_id", taxonomyID, "phase", p.String())
	}
}

// mergeVernaculars folds per-language vernacular names into the
// records, keyed by scientific name. Existing names are kept; new ones
// are appended without duplicates.
func mergeVernaculars(
	records []taxon.Taxon,
	vern map[string]map[string][]string,
) []taxon.Taxon {
	if len(vern) == 0 {
		return records
	}
	for i := range records {
		for lang, byName := range vern {
			names, ok := byName[records[i].Name]
			if !ok {
				continue
			}
			if records[i].VernacularNames == nil {
				records[i].VernacularNames = make(map[string][]string)
			}
			existing := records[i].VernacularNames[lang]
			seen := make(map[string]bool, len(existing))
			for _, n := range existing {
				seen[n] = true
			}
			for _, n := range names {
				if !seen[n] {
					existing = append(existing, n)
					seen[n] = true
				}
			}
			records[i].VernacularNames[lang] = existing
		}
	}
	return records
}
