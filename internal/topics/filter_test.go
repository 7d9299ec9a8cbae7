package topics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseShortCodesEmptyIsAll(t *testing.T) {
	require.Equal(t, All(), ParseShortCodes(nil))
	require.Equal(t, All(), ParseShortCodes([]string{}))
}

func TestParseShortCodesStar(t *testing.T) {
	require.Equal(t, All(), ParseShortCodes([]string{"*"}))
}

func TestParseShortCodesUnknownIgnoredSilently(t *testing.T) {
	got := ParseShortCodes([]string{"a", "zz"})
	require.Equal(t, []Filter{Attestations}, got)
}

func TestParseShortCodesAllInvalidYieldsEmpty(t *testing.T) {
	got := ParseShortCodes([]string{"zz", "nope"})
	require.Empty(t, got)
	require.NotEqual(t, All(), got)
}

func TestParseShortCodesCaseInsensitive(t *testing.T) {
	got := ParseShortCodes([]string{"B", "As"})
	require.Equal(t, []Filter{Blocks, AttesterSlashings}, got)
}

func TestExpandAllTopicsCount(t *testing.T) {
	fd := [4]byte{0x01, 0x02, 0x03, 0x04}
	names := Expand(All(), fd)
	require.Len(t, names, AttestationSubnetCount+4)
	for _, n := range names {
		require.True(t, strings.HasSuffix(n, "_snappy"))
	}
}

func TestExpandBlocksAndAttestations(t *testing.T) {
	fd := [4]byte{0x01, 0x02, 0x03, 0x04}
	names := Expand([]Filter{Attestations, Blocks}, fd)
	require.Len(t, names, AttestationSubnetCount+1)
}

func TestExpandIsPure(t *testing.T) {
	fd := [4]byte{0xde, 0xad, 0xbe, 0xef}
	a := Expand([]Filter{Blocks}, fd)
	b := Expand([]Filter{Blocks}, fd)
	require.Equal(t, a, b)
}
