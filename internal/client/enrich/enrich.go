// Package enrich joins the donor list with document counts and critical
// findings for the table view.
package enrich

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/donorbase/internal/domain"
	dto "github.com/heartmarshall/donorbase/pkg/api"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

// ErrStale is returned by Rows when a newer run started before this one finished.
var ErrStale = errors.New("enrich: superseded by a newer run")

type source interface {
	DocumentCounts(ctx context.Context, donorIDs []string) ([]dto.DocumentCount, error)
	Findings(ctx context.Context, severity string) ([]dto.Finding, error)
}

// Row is one donor with its derived display state.
type Row struct {
	Donor dto.Donor
	// Documents is meaningful only when DocumentsKnown is true.
	Documents      int
	DocumentsKnown bool
	Critical       bool
}

// Enricher builds table rows. Only the most recent run is kept.
type Enricher struct {
	src    source
	logger *slog.Logger
	gen    atomic.Uint64

	mu      sync.RWMutex
	latest  []Row
	applied uint64
}

func New(src source, logger *slog.Logger) *Enricher {
	return &Enricher{src: src, logger: logger.With("component", "enrich")}
}

// Rows looks up document counts for every donor and fetches critical findings
// concurrently, then merges them in donor order. Failed lookups and a failed
// findings fetch degrade to "unknown" and "no badge"; they are never
// returned as errors. If another Rows call starts before this one finishes,
// the result is discarded and ErrStale is returned.
func (e *Enricher) Rows(ctx context.Context, donors []dto.Donor) ([]Row, error) {
	gen := e.gen.Add(1)

	ids := make([]string, len(donors))
	for i, d := range donors {
		ids[i] = d.ID
	}

	var (
		counts   []*int
		findings []dto.Finding
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		counts = e.countDocuments(gctx, ids)
		return nil
	})
	g.Go(func() error {
		fs, err := e.src.Findings(gctx, dto.SeverityCritical)
		if err != nil {
			e.logger.DebugContext(ctx, "findings fetch failed", slog.String("error", err.Error()))
			return nil
		}
		findings = fs
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	byDonor := make(map[string][]domain.Finding)
	for _, f := range findings {
		byDonor[f.DonorID] = append(byDonor[f.DonorID], domain.Finding{Severity: domain.Severity(f.Severity)})
	}

	rows := make([]Row, len(donors))
	for i, d := range donors {
		row := Row{Donor: d}
		if c := counts[i]; c != nil {
			row.Documents = *c
			row.DocumentsKnown = true
		}
		row.Critical = row.DocumentsKnown && domain.ShowCriticalBadge(row.Documents, byDonor[d.ID])
		rows[i] = row
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen.Load() {
		return nil, ErrStale
	}
	e.latest = rows
	e.applied = gen
	return rows, nil
}

// Latest returns the rows of the last run that was not superseded.
func (e *Enricher) Latest() []Row {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Row, len(e.latest))
	copy(out, e.latest)
	return out
}

// countDocuments loads one count per id through a batching loader; nil marks an
// unknown count.
func (e *Enricher) countDocuments(ctx context.Context, ids []string) []*int {
	loader := dataloader.NewBatchedLoader(
		e.countsBatchFn(),
		dataloader.WithWait[string, int](wait),
		dataloader.WithBatchCapacity[string, int](maxBatch),
	)

	thunks := make([]dataloader.Thunk[int], len(ids))
	for i, id := range ids {
		thunks[i] = loader.Load(ctx, id)
	}

	out := make([]*int, len(ids))
	for i, thunk := range thunks {
		n, err := thunk()
		if err != nil {
			continue
		}
		out[i] = &n
	}
	return out
}

var errNoCount = errors.New("enrich: donor missing from counts response")

func (e *Enricher) countsBatchFn() dataloader.BatchFunc[string, int] {
	return func(ctx context.Context, keys []string) []*dataloader.Result[int] {
		counts, err := e.src.DocumentCounts(ctx, keys)
		if err != nil {
			e.logger.DebugContext(ctx, "document count lookup failed",
				slog.Int("donors", len(keys)), slog.String("error", err.Error()))
			return errorResults(len(keys), err)
		}

		byID := make(map[string]int, len(counts))
		for _, c := range counts {
			byID[c.DonorID] = c.Count
		}

		results := make([]*dataloader.Result[int], len(keys))
		for i, k := range keys {
			if n, ok := byID[k]; ok {
				results[i] = &dataloader.Result[int]{Data: n}
			} else {
				results[i] = &dataloader.Result[int]{Error: errNoCount}
			}
		}
		return results
	}
}

func errorResults(n int, err error) []*dataloader.Result[int] {
	results := make([]*dataloader.Result[int], n)
	for i := range results {
		results[i] = &dataloader.Result[int]{Error: err}
	}
	return results
}
