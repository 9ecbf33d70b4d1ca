// Package walker finds project directories below a root using a pool of
// concurrent directory readers.
//
// Directories are expanded breadth-wise by several workers at once, so the
// order in which outcomes arrive is not depth-first and differs between runs.
// Only the set of outcomes is stable for a given tree.
package walker

import (
	"context"
	"iter"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/taigrr/cleanall/internal/pathfilter"
	"github.com/taigrr/cleanall/internal/types"
)

// Predicate decides whether a directory is a project root.
type Predicate interface {
	IsProjectRoot(dir string) (bool, error)
}

// Options configures a Walker.
type Options struct {
	// MaxDepth bounds expansion: a directory at depth d is listed only when
	// d < MaxDepth. types.Unlimited disables the bound.
	MaxDepth int
	// Workers is the number of concurrent directory readers (0 = NumCPU).
	Workers int
	// DescendMatches keeps expanding directories that matched, allowing
	// nested matches.
	DescendMatches bool
	// Filter skips ignored directories entirely. Nil ignores nothing.
	Filter *pathfilter.PathFilter
}

// Walker scans directory trees for project roots.
type Walker struct {
	predicate Predicate
	opts      Options
}

// DefaultOptions returns options for an unlimited walk on NumCPU workers.
func DefaultOptions() Options {
	return Options{MaxDepth: types.Unlimited}
}

// New creates a Walker. Note that the zero Options value has MaxDepth 0,
// which tests the root and lists nothing; start from DefaultOptions.
func New(predicate Predicate, opts Options) *Walker {
	if opts.MaxDepth < 0 {
		opts.MaxDepth = types.Unlimited
	}
	return &Walker{predicate: predicate, opts: opts}
}

// Workers returns the size of the worker pool.
func (w *Walker) Workers() int {
	if w.opts.Workers > 0 {
		return w.opts.Workers
	}
	return max(runtime.NumCPU(), 1)
}

// Scan prepares a walk of root. Nothing is read until the returned stream
// is consumed.
func (w *Walker) Scan(ctx context.Context, root string) *Stream {
	return &Stream{ctx: ctx, walker: w, root: root}
}

// Stream is a single-use sequence of scan outcomes.
type Stream struct {
	ctx    context.Context
	walker *Walker
	root   string
	used   atomic.Bool
}

// All yields every match and every scan error as it is found. The walk starts
// on the first range and can only be ranged over once; later ranges yield
// nothing. Breaking out of the loop stops new directories from being listed
// and waits for in-flight listings to finish.
func (s *Stream) All() iter.Seq[types.ScanOutcome] {
	return func(yield func(types.ScanOutcome) bool) {
		if !s.used.CompareAndSwap(false, true) {
			return
		}

		ctx, cancel := context.WithCancel(s.ctx)
		defer cancel()

		out := s.walker.start(ctx, s.root)
		for outcome := range out {
			if !yield(outcome) {
				cancel()
				for range out {
				}
				return
			}
		}
	}
}

// Collect consumes the stream and returns all outcomes.
func (s *Stream) Collect() []types.ScanOutcome {
	var outcomes []types.ScanOutcome
	for o := range s.All() {
		outcomes = append(outcomes, o)
	}
	return outcomes
}

// scan holds the state of one walk.
type scan struct {
	*Walker
	root  string
	out   chan types.ScanOutcome
	queue *queue
}

func (w *Walker) start(ctx context.Context, root string) <-chan types.ScanOutcome {
	numWorkers := w.Workers()
	s := &scan{
		Walker: w,
		out:    make(chan types.ScanOutcome, numWorkers),
		queue:  newQueue(),
	}

	go func() {
		defer close(s.out)

		absRoot, err := filepath.Abs(root)
		if err != nil {
			s.emit(ctx, types.ScanError(root, err))
			return
		}
		s.root = absRoot

		info, err := os.Stat(absRoot)
		if err != nil {
			s.emit(ctx, types.ScanError(absRoot, err))
			return
		}
		if !info.IsDir() {
			s.emit(ctx, types.ScanError(absRoot, notDirectory(absRoot)))
			return
		}

		rootEntry := types.DirectoryEntry{Path: absRoot, Depth: 0, Kind: types.KindDir}
		if !s.visit(ctx, rootEntry) {
			return
		}
		s.queue.push(rootEntry)

		stop := context.AfterFunc(ctx, s.queue.close)
		defer stop()

		var wg sync.WaitGroup
		for range numWorkers {
			wg.Go(func() {
				for {
					entry, ok := s.queue.pop()
					if !ok {
						return
					}
					s.expand(ctx, entry)
					s.queue.done()
				}
			})
		}
		wg.Wait()
	}()

	return s.out
}

// visit tests a directory against the predicate, emits the outcome if any,
// and reports whether the directory should be expanded.
func (s *scan) visit(ctx context.Context, entry types.DirectoryEntry) bool {
	matched, err := s.predicate.IsProjectRoot(entry.Path)
	if err != nil {
		s.emit(ctx, types.ScanError(entry.Path, err))
		return false
	}
	if matched {
		if !s.emit(ctx, types.Matched(entry.Path)) {
			return false
		}
		if !s.opts.DescendMatches {
			return false
		}
	}
	return s.opts.MaxDepth == types.Unlimited || entry.Depth < s.opts.MaxDepth
}

// expand lists a directory and visits its subdirectories. A listing error
// is reported once; entries read before the error are still visited.
func (s *scan) expand(ctx context.Context, entry types.DirectoryEntry) {
	if ctx.Err() != nil {
		return
	}

	children, err := os.ReadDir(entry.Path)
	if err != nil {
		if !s.emit(ctx, types.ScanError(entry.Path, err)) {
			return
		}
	}

	for _, child := range children {
		if ctx.Err() != nil {
			return
		}
		// Symlinks report a non-directory type and are not followed.
		if !child.IsDir() {
			continue
		}

		childPath := filepath.Join(entry.Path, child.Name())
		if s.opts.Filter != nil {
			rel, err := filepath.Rel(s.root, childPath)
			if err == nil && s.opts.Filter.Ignored(rel) {
				continue
			}
		}

		childEntry := types.DirectoryEntry{Path: childPath, Depth: entry.Depth + 1, Kind: types.KindDir}
		if s.visit(ctx, childEntry) {
			s.queue.push(childEntry)
		}
	}
}

// emit sends an outcome unless the walk has been cancelled.
func (s *scan) emit(ctx context.Context, outcome types.ScanOutcome) bool {
	select {
	case s.out <- outcome:
		return true
	case <-ctx.Done():
		return false
	}
}
