package netstate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/peerid"
	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/peerinfo"
)

func TestDialQueuePopBlocksUntilPush(t *testing.T) {
	q := NewDialQueue()
	done := make(chan peerinfo.Info, 1)
	go func() {
		item, ok := q.Pop()
		require.True(t, ok)
		done <- item
	}()

	select {
	case <-done:
		t.Fatal("Pop returned before Push")
	case <-time.After(20 * time.Millisecond):
	}

	want := peerinfo.Info{Role: peerinfo.RoleOverlayPeer}
	q.Push(want)

	select {
	case got := <-done:
		require.Equal(t, want, got)
	case <-time.After(time.Second):
		t.Fatal("Pop never returned after Push")
	}
}

func TestDialQueueDrainNonBlocking(t *testing.T) {
	q := NewDialQueue()
	require.Empty(t, q.DrainNonBlocking())

	q.Push(peerinfo.Info{Role: peerinfo.RoleOverlayPeer})
	q.Push(peerinfo.Info{Role: peerinfo.RoleDiscovery})

	first, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, peerinfo.RoleOverlayPeer, first.Role)

	drained := q.DrainNonBlocking()
	require.Len(t, drained, 1)
	require.Equal(t, peerinfo.RoleDiscovery, drained[0].Role)
}

func TestDialQueueCloseUnblocksPop(t *testing.T) {
	q := NewDialQueue()
	done := make(chan bool, 1)
	go func() {
		_, ok := q.Pop()
		done <- ok
	}()
	time.Sleep(10 * time.Millisecond)
	q.Close()
	select {
	case ok := <-done:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Pop never unblocked after Close")
	}
}

func TestResolveQueueDropsWhenFull(t *testing.T) {
	q := NewResolveQueue()
	for i := 0; i < ResolveQueueCapacity; i++ {
		require.True(t, q.TryPush(peerid.Identity{}))
	}
	require.False(t, q.TryPush(peerid.Identity{}))
}

func TestResolveQueuePopRespectsContext(t *testing.T) {
	q := NewResolveQueue()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok := q.Pop(ctx)
	require.False(t, ok)
}

func TestDialQueueLen(t *testing.T) {
	q := NewDialQueue()
	require.Equal(t, 0, q.Len())
	q.Push(peerinfo.Info{Role: peerinfo.RoleOverlayPeer})
	q.Push(peerinfo.Info{Role: peerinfo.RoleDiscovery})
	require.Equal(t, 2, q.Len())
	_, _ = q.Pop()
	require.Equal(t, 1, q.Len())
}

func TestResolveQueueLen(t *testing.T) {
	q := NewResolveQueue()
	require.Equal(t, 0, q.Len())
	q.TryPush(peerid.Identity{})
	require.Equal(t, 1, q.Len())
}

func TestTableMonotoneLen(t *testing.T) {
	table := NewTable()
	require.Equal(t, 0, table.Len())
	id := peerid.FromLibp2p("")
	table.Put(id, peerinfo.Info{})
	require.Equal(t, 1, table.Len())
	table.Put(id, peerinfo.Info{Role: peerinfo.RoleDiscovery})
	require.Equal(t, 1, table.Len())
	require.True(t, table.Has(id))
}
