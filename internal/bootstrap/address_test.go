package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyRejectsUnrecognizedMultiaddr(t *testing.T) {
	_, err := Classify("/ip4/1.2.3.4/tcp/9000")
	require.Error(t, err)
}

func TestClassifyETH2BN(t *testing.T) {
	addr, err := Classify("/ip4/1.2.3.4/tcp/9000/p2p/16Uiu2HAmEsbKBkd9iUYcqfjwwK8ZmMjrZAJbEYQ6EP3Lm7XXJMQa")
	require.NoError(t, err)
	require.True(t, addr.IsETH2BN())
	require.False(t, addr.IsDISCV5BN())
}

func TestClassifyDISCV5BN(t *testing.T) {
	addr, err := Classify("/ip4/1.2.3.4/udp/9001/p2p/16Uiu2HAmEsbKBkd9iUYcqfjwwK8ZmMjrZAJbEYQ6EP3Lm7XXJMQa")
	require.NoError(t, err)
	require.True(t, addr.IsDISCV5BN())
}

func TestClassifyRoundTrip(t *testing.T) {
	raw := "/ip4/1.2.3.4/tcp/9000/p2p/16Uiu2HAmEsbKBkd9iUYcqfjwwK8ZmMjrZAJbEYQ6EP3Lm7XXJMQa"
	addr, err := Classify(raw)
	require.NoError(t, err)
	require.Equal(t, raw, addr.String())
}
