// Package netstate holds the engine's only long-lived shared state: the
// live peer table and the two queues that couple discovery, dialing, and
// resolution (spec §3, §5). The spec's source is a single-threaded
// cooperative scheduler where these are safe to touch without locks
// "by construction"; ported to real goroutines, that invariant becomes a
// mutex per the design notes in spec §9 ("wrap LivePeerTable and the
// queues behind a mutex or channel").
package netstate

import (
	"sync"

	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/peerid"
	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/peerinfo"
)

// Table is the LivePeerTable from spec §3: a mapping from PeerIdentity to
// PeerInfo, mutated by the Dialer (on connect) and Resolver (on
// enrichment), read by the Discovery Loop to compute target - |table|.
// This engine never evicts entries; size is monotone nondecreasing over a
// run (spec §8).
type Table struct {
	mu      sync.RWMutex
	entries map[string]peerinfo.Info
}

// NewTable constructs an empty live peer table.
func NewTable() *Table {
	return &Table{entries: make(map[string]peerinfo.Info)}
}

// Put inserts or overwrites the entry for id. Dialer uses this on
// successful connect; Resolver uses it to overwrite on enrichment.
func (t *Table) Put(id peerid.Identity, info peerinfo.Info) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[id.String()] = info
}

// Get returns the entry for id, if any.
func (t *Table) Get(id peerid.Identity) (peerinfo.Info, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	info, ok := t.entries[id.String()]
	return info, ok
}

// Has reports whether id is already present.
func (t *Table) Has(id peerid.Identity) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.entries[id.String()]
	return ok
}

// Len returns the current table size, used by the Discovery Loop to
// compute target - |table|.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
