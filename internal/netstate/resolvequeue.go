package netstate

import (
	"context"

	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/peerid"
)

// ResolveQueueCapacity is the fixed bound from spec §4.F/§5: producers
// drop silently when full, making enrichment best-effort.
const ResolveQueueCapacity = 10

// ResolveQueue is the bounded queue of PeerIdentity values observed on
// subscribed topics for peers not yet in the live table (spec §3/§4.F).
// It is a thin wrapper over a buffered channel, which already gives us
// FIFO order, a blocking receive, and a non-blocking best-effort send.
type ResolveQueue struct {
	ch chan peerid.Identity
}

// NewResolveQueue constructs a ResolveQueue at the spec-mandated capacity.
func NewResolveQueue() *ResolveQueue {
	return &ResolveQueue{ch: make(chan peerid.Identity, ResolveQueueCapacity)}
}

// TryPush enqueues id if there is room, and silently drops it otherwise
// (spec §4.F: "producers drop silently when full"). Returns whether it
// was enqueued, purely for test/metric purposes — callers never branch
// on it to decide whether to retry.
func (q *ResolveQueue) TryPush(id peerid.Identity) bool {
	select {
	case q.ch <- id:
		return true
	default:
		return false
	}
}

// Len returns the number of identities currently queued, for the
// periodic peer-summary log line.
func (q *ResolveQueue) Len() int { return len(q.ch) }

// Pop blocks until an identity is available or ctx is done.
func (q *ResolveQueue) Pop(ctx context.Context) (peerid.Identity, bool) {
	select {
	case id := <-q.ch:
		return id, true
	case <-ctx.Done():
		return peerid.Identity{}, false
	}
}
