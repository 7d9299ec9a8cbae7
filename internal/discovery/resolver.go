package discovery

import (
	"context"

	"github.com/ethereum/go-ethereum/p2p/enode"
	"github.com/sirupsen/logrus"

	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/enr"
	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/netstate"
	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/peerid"
	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/peerinfo"
)

// Resolver is the Resolver Loop (spec §4.F): it drains ResolveQueue and
// enriches LivePeerTable entries with a freshly-resolved discovery
// record.
type Resolver struct {
	listener Listener
	queue    *netstate.ResolveQueue
	table    *netstate.Table
	log      logrus.FieldLogger
}

// NewResolver builds a Resolver Loop bound to listener and queue.
func NewResolver(listener Listener, queue *netstate.ResolveQueue, table *netstate.Table, log logrus.FieldLogger) *Resolver {
	return &Resolver{listener: listener, queue: queue, table: table, log: log}
}

// Run blocks on ResolveQueue until ctx is canceled.
func (r *Resolver) Run(ctx context.Context) {
	for {
		id, ok := r.queue.Pop(ctx)
		if !ok {
			return
		}
		r.resolveOne(id)
	}
}

func (r *Resolver) resolveOne(id peerid.Identity) {
	nodeID, err := peerid.ToNodeId(id)
	if err != nil {
		r.log.WithError(err).Warn("resolver: cannot derive node id")
		return
	}

	node, err := r.lookupExact(enode.ID(nodeID))
	if err != nil {
		r.log.WithError(err).Warn("resolver: lookup failed")
		return
	}
	if node == nil {
		r.log.WithField("peer", id.String()).Trace("resolver: empty result")
		return
	}

	dr, err := enr.Decode(node)
	if err != nil {
		r.log.WithError(err).Warn("record is invalid")
		return
	}
	info, err := peerinfo.FromRecord(dr, peerinfo.RoleDiscovery)
	if err != nil {
		r.log.WithError(err).Warn("record is invalid")
		return
	}
	r.table.Put(id, info)
}

// lookupExact walks the discv5 table for target and returns the entry
// whose ID matches exactly, or nil if the walk surfaced no such node.
// discv5's Lookup never itself returns an error; we recover from a panic
// as the "throws" outcome from spec §4.F, which the original cooperative
// scheduler's resolve() call could hit on a malformed table entry.
func (r *Resolver) lookupExact(target enode.ID) (node *enode.Node, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errFromRecover(rec)
		}
	}()
	for _, n := range r.listener.Lookup(target) {
		if n.ID() == target {
			return n, nil
		}
	}
	return nil, nil
}
