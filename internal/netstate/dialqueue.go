package netstate

import (
	"sync"

	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/peerinfo"
)

// DialQueue is the unbounded, FIFO queue of PeerInfo descriptors from
// spec §3/§5: producers are the bootstrap phase and the Discovery Loop,
// the sole consumer is the Dialer Loop. Pop blocks until an item is
// available; DrainNonBlocking never blocks, letting the Dialer drain a
// whole batch in one pass without re-blocking between items (spec §4.D,
// §5).
type DialQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []peerinfo.Info
	closed bool
}

// NewDialQueue constructs an empty DialQueue.
func NewDialQueue() *DialQueue {
	q := &DialQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push enqueues an item, preserving the relative order of items pushed
// within one call (spec §5: "the relative order within one enqueue call
// is preserved").
func (q *DialQueue) Push(item peerinfo.Info) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()
	q.cond.Signal()
}

// Pop blocks until an item is available (or the queue is closed), then
// returns it. The second return is false only when the queue was closed
// with nothing left to drain.
func (q *DialQueue) Pop() (peerinfo.Info, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return peerinfo.Info{}, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

// DrainNonBlocking returns every item currently queued without waiting,
// for the Dialer Loop's batch-drain step (spec §4.D: "pop one element
// blockingly, then non-blockingly drain everything else currently
// queued").
func (q *DialQueue) DrainNonBlocking() []peerinfo.Info {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	drained := q.items
	q.items = nil
	return drained
}

// Len returns the number of items currently queued, for the periodic
// peer-summary log line.
func (q *DialQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close unblocks any pending Pop, used at shutdown.
func (q *DialQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
}
