package netstate

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestRunSummaryLoopReturnsOnCancel(t *testing.T) {
	table := NewTable()
	dial := NewDialQueue()
	resolve := NewResolveQueue()
	log := logrus.New().WithField("component", "test")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunSummaryLoop(ctx, table, dial, resolve, log)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunSummaryLoop did not return after cancel")
	}
}
