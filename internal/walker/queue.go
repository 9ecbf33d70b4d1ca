package walker

import (
	"sync"

	"github.com/taigrr/cleanall/internal/types"
)

// queue is an unbounded work list of directories waiting to be expanded.
// pending counts queued and in-progress entries; when it drops to zero the
// walk is complete and every blocked pop returns false.
type queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	items   []types.DirectoryEntry
	pending int
	closed  bool
}

func newQueue() *queue {
	q := &queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *queue) push(e types.DirectoryEntry) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.items = append(q.items, e)
	q.pending++
	q.cond.Signal()
}

// pop blocks until an entry is available, the walk is complete, or the queue
// is closed.
func (q *queue) pop() (types.DirectoryEntry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && q.pending > 0 && !q.closed {
		q.cond.Wait()
	}
	if q.closed || len(q.items) == 0 {
		return types.DirectoryEntry{}, false
	}
	last := len(q.items) - 1
	e := q.items[last]
	q.items[last] = types.DirectoryEntry{}
	q.items = q.items[:last]
	return e, true
}

// done marks one popped entry as fully expanded.
func (q *queue) done() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending--
	if q.pending == 0 {
		q.cond.Broadcast()
	}
}

// close drops queued work and releases every waiting worker.
func (q *queue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.items = nil
	q.cond.Broadcast()
}
