// Package sweep drives a scan and cleans every project it finds.
package sweep

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/cleanall/internal/cleaner"
	"github.com/taigrr/cleanall/internal/types"
	"github.com/taigrr/cleanall/internal/walker"
)

// Scanner produces scan outcomes for a root.
type Scanner interface {
	Scan(ctx context.Context, root string) *walker.Stream
}

// Options configures a Service.
type Options struct {
	// Jobs bounds how many cleanups run at once (0 or 1 = one at a time).
	Jobs int
}

// Service feeds matches from a Scanner into a Cleaner.
type Service struct {
	scanner Scanner
	cleaner cleaner.Cleaner
	opts    Options
}

// New creates a Service.
func New(scanner Scanner, c cleaner.Cleaner, opts Options) *Service {
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	return &Service{scanner: scanner, cleaner: c, opts: opts}
}

// Run scans root to completion, cleans each match once and passes every
// outcome to report. report is never called concurrently. Individual
// failures are reported and counted; they never stop the run.
func (s *Service) Run(ctx context.Context, root string, report func(types.Report)) types.Summary {
	var (
		mu      sync.Mutex
		summary types.Summary
	)
	deliver := func(r types.Report) {
		mu.Lock()
		defer mu.Unlock()
		summary.Add(r)
		if report != nil {
			report(r)
		}
	}

	var g errgroup.Group
	g.SetLimit(s.opts.Jobs)

	seen := make(map[string]struct{})
	for outcome := range s.scanner.Scan(ctx, root).All() {
		if !outcome.IsMatch() {
			deliver(FromScan(outcome))
			continue
		}
		if _, ok := seen[outcome.Path]; ok {
			continue
		}
		seen[outcome.Path] = struct{}{}

		path := outcome.Path
		g.Go(func() error {
			deliver(FromAction(cleaner.Run(ctx, path, s.cleaner)))
			return nil
		})
	}
	_ = g.Wait()

	return summary
}

// FromScan converts a scan failure into a report.
func FromScan(o types.ScanOutcome) types.Report {
	return types.Report{Kind: types.ReportScanError, Path: o.Path, Err: o.Err}
}

// FromAction converts a cleanup outcome into a report.
func FromAction(o types.ActionOutcome) types.Report {
	r := types.Report{Kind: types.ReportCleaned, Path: o.Path, Output: o.Output, Duration: o.Duration}
	if o.Kind == types.ActionFailed {
		r.Kind = types.ReportActionError
		r.Err = o.Err
	}
	return r
}
