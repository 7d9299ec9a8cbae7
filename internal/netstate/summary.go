package netstate

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// SummaryInterval is the cadence of the periodic peer-summary log line,
// matching the Prysm beacon-chain/p2p service's 1-minute "Peer summary"
// tick (other_examples/ca14a224…service.go.go).
const SummaryInterval = time.Minute

// RunSummaryLoop periodically logs the live-table size and both queue
// depths, a read-only diagnostic that affects no invariant (SPEC_FULL.md
// §4: "Peer summary logging"). It returns when ctx is canceled.
func RunSummaryLoop(ctx context.Context, table *Table, dial *DialQueue, resolve *ResolveQueue, log logrus.FieldLogger) {
	ticker := time.NewTicker(SummaryInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.WithFields(logrus.Fields{
				"livePeers":    table.Len(),
				"dialQueue":    dial.Len(),
				"resolveQueue": resolve.Len(),
			}).Info("peer summary")
		}
	}
}
