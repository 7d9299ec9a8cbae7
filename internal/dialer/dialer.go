// Package dialer implements the Dialer Loop (spec §4.D): a single
// long-lived goroutine that drains the DialQueue in batches and issues
// parallel dials against one shared deadline per batch.
//
// Grounded on the teacher's connection loop in gossip.go
// (h.Connect(ctx, *info) per bootnode, with per-attempt logging) and the
// Prysm grounding file's connectWithAllPeers/connectWithPeer
// (other_examples/ca14a224…service.go.go), which races a context timeout
// against host.Connect the same way.
package dialer

import (
	"context"
	"sync"
	"time"

	"github.com/libp2p/go-libp2p/core/host"
	"github.com/sirupsen/logrus"

	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/netstate"
	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/peerinfo"
)

// DefaultDialTimeout is the shared per-batch dial deadline (spec §4.D).
const DefaultDialTimeout = 10 * time.Second

// Loop is the Dialer Loop's runtime state.
type Loop struct {
	host    host.Host
	queue   *netstate.DialQueue
	table   *netstate.Table
	timeout time.Duration
	log     logrus.FieldLogger
}

// New builds a Dialer Loop bound to host h and queue q. A zero timeout
// selects DefaultDialTimeout.
func New(h host.Host, q *netstate.DialQueue, table *netstate.Table, timeout time.Duration, log logrus.FieldLogger) *Loop {
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	return &Loop{host: h, queue: q, table: table, timeout: timeout, log: log}
}

// Run drains the queue until ctx is canceled. A dial error is never
// fatal; the loop never terminates on its own otherwise (spec §4.D).
func (l *Loop) Run(ctx context.Context) {
	for {
		first, ok := l.queue.Pop()
		if !ok {
			return // queue closed, nothing left
		}
		if ctx.Err() != nil {
			return
		}
		batch := append([]peerinfo.Info{first}, l.queue.DrainNonBlocking()...)
		l.runBatch(ctx, batch)
	}
}

type batchCounts struct {
	succeed, failed, timed, total int
}

func (l *Loop) runBatch(ctx context.Context, batch []peerinfo.Info) {
	deadlineCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	var (
		mu     sync.Mutex
		counts = batchCounts{total: len(batch)}
		wg     sync.WaitGroup
	)
	for _, info := range batch {
		wg.Add(1)
		go func(info peerinfo.Info) {
			defer wg.Done()
			entry := l.log.WithField("peer", info.Identity.String())
			err := l.host.Connect(deadlineCtx, info.AddrInfo())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				l.table.Put(info.Identity, info)
				counts.succeed++
				entry.Info("connected")
			case deadlineCtx.Err() != nil:
				counts.timed++
				entry.Warn("timed out")
			default:
				counts.failed++
				entry.WithError(err).Warn("unable to connect")
			}
		}(info)
	}
	wg.Wait()

	l.log.WithFields(logrus.Fields{
		"succeed": counts.succeed,
		"failed":  counts.failed,
		"timed":   counts.timed,
		"total":   counts.total,
	}).Info("dial batch complete")
}
