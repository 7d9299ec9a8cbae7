package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseForkDigestAcceptsWithAndWithout0x(t *testing.T) {
	a, err := parseForkDigest("0x01020304")
	require.NoError(t, err)
	b, err := parseForkDigest("01020304")
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Equal(t, [4]byte{0x01, 0x02, 0x03, 0x04}, a)
}

func TestParseForkDigestRejectsWrongLength(t *testing.T) {
	_, err := parseForkDigest("0x0102")
	require.Error(t, err)
}

func TestParseForkDigestRejectsNonHex(t *testing.T) {
	_, err := parseForkDigest("zzzzzzzz")
	require.Error(t, err)
}
