package discovery

import (
	"context"
	"time"

	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/sirupsen/logrus"

	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/enr"
	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/netstate"
	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/peerinfo"
)

// TickInterval is the fixed 1s cadence from spec §4.E.
const TickInterval = time.Second

// Loop is the Discovery Loop: active only while at least one DISCV5BN
// bootstrap was supplied and discovery was not disabled by configuration
// (spec §4.E). The caller decides whether to start it at all.
type Loop struct {
	listener Listener
	host     host.Host
	table    *netstate.Table
	dial     *netstate.DialQueue
	target   int
	log      logrus.FieldLogger
}

// New builds a Discovery Loop targeting at most target live peers.
func New(listener Listener, h host.Host, table *netstate.Table, dial *netstate.DialQueue, target int, log logrus.FieldLogger) *Loop {
	return &Loop{listener: listener, host: h, table: table, dial: dial, target: target, log: log}
}

// Run ticks every TickInterval until ctx is canceled.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.tick()
		}
	}
}

func (l *Loop) tick() {
	need := l.target - l.table.Len()
	if need <= 0 {
		return
	}

	it := l.listener.RandomNodes()
	defer it.Close()

	for n := 0; n < need && it.Next(); n++ {
		node := it.Node()
		dr, err := enr.Decode(node)
		if err != nil {
			l.log.WithError(err).Debug("discovery tick: record decode failed")
			continue
		}
		info, err := peerinfo.FromRecord(dr, peerinfo.RoleDiscovery)
		if err != nil {
			l.log.WithError(err).Debug("discovery tick: peerinfo build failed")
			continue
		}
		if !info.HasTCP() {
			l.log.WithField("peer", info.Identity.String()).Trace("discovery only peer")
			continue
		}
		if l.host.Network().Connectedness(info.Identity.Libp2p()) == network.Connected {
			continue
		}
		l.dial.Push(info)
	}
}
