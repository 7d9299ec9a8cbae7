package peerid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentityIsZero(t *testing.T) {
	var id Identity
	require.True(t, id.IsZero())
}

func TestIdentityShortTruncatesLongStrings(t *testing.T) {
	id := FromLibp2p("16Uiu2HAmEsbKBkd9iUYcqfjwwK8ZmMjrZAJbEYQ6EP3Lm7XXJMQa")
	short := id.Short()
	require.Less(t, len(short), len(id.String()))
	require.Contains(t, short, "…")
}

func TestIdentityShortLeavesShortStringsAlone(t *testing.T) {
	id := FromLibp2p("short")
	require.Equal(t, id.String(), id.Short())
}

func TestToNodeIdRejectsNonSecp256k1(t *testing.T) {
	id := FromLibp2p("not-a-real-peer-id")
	_, err := ToNodeId(id)
	require.Error(t, err)
}
