package ssztypes

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckpointUnmarshal(t *testing.T) {
	buf := make([]byte, 8+32)
	binary.LittleEndian.PutUint64(buf[0:8], 42)
	buf[8] = 0xaa

	var cp Checkpoint
	require.NoError(t, cp.UnmarshalSSZ(buf))
	require.Equal(t, uint64(42), cp.Epoch)
	require.Equal(t, byte(0xaa), cp.Root[0])
}

func TestCheckpointUnmarshalRejectsWrongSize(t *testing.T) {
	var cp Checkpoint
	require.Error(t, cp.UnmarshalSSZ(make([]byte, 10)))
}

func TestSignedVoluntaryExitUnmarshal(t *testing.T) {
	buf := make([]byte, 8+8+96)
	binary.LittleEndian.PutUint64(buf[0:8], 7)
	binary.LittleEndian.PutUint64(buf[8:16], 99)

	var e SignedVoluntaryExit
	require.NoError(t, e.UnmarshalSSZ(buf))
	require.Equal(t, uint64(7), e.Exit.Epoch)
	require.Equal(t, uint64(99), e.Exit.ValidatorIndex)
}

func TestBeaconBlockHeaderUnmarshal(t *testing.T) {
	buf := make([]byte, 8+8+32+32+32)
	binary.LittleEndian.PutUint64(buf[0:8], 100)
	binary.LittleEndian.PutUint64(buf[8:16], 5)

	var h BeaconBlockHeader
	require.NoError(t, h.UnmarshalSSZ(buf))
	require.Equal(t, uint64(100), h.Slot)
	require.Equal(t, uint64(5), h.ProposerIndex)
}

func TestSignedBeaconBlockTooShort(t *testing.T) {
	var b SignedBeaconBlock
	require.Error(t, b.UnmarshalSSZ(make([]byte, 10)))
}

func TestBeaconBlockUnmarshal(t *testing.T) {
	body := []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02}
	const fixedSize = 8 + 8 + 32 + 32 + 4
	buf := make([]byte, fixedSize+len(body))
	binary.LittleEndian.PutUint64(buf[0:8], 55)
	binary.LittleEndian.PutUint64(buf[8:16], 3)
	buf[16] = 0xcc // ParentRoot[0]
	buf[48] = 0xdd // StateRoot[0]
	binary.LittleEndian.PutUint32(buf[80:84], uint32(fixedSize))
	copy(buf[fixedSize:], body)

	var b BeaconBlock
	require.NoError(t, b.UnmarshalSSZ(buf))
	require.Equal(t, uint64(55), b.Slot)
	require.Equal(t, uint64(3), b.ProposerIndex)
	require.Equal(t, byte(0xcc), b.ParentRoot[0])
	require.Equal(t, byte(0xdd), b.StateRoot[0])
	require.Equal(t, body, b.Body)
}

func TestSignedBeaconBlockUnmarshal(t *testing.T) {
	body := []byte{0x01, 0x02, 0x03}
	const fixedSize = 8 + 8 + 32 + 32 + 4
	block := make([]byte, fixedSize+len(body))
	binary.LittleEndian.PutUint64(block[0:8], 9)
	binary.LittleEndian.PutUint32(block[80:84], uint32(fixedSize))
	copy(block[fixedSize:], body)

	const signedFixedSize = 4 + 96 // message offset + signature
	buf := make([]byte, signedFixedSize+len(block))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(signedFixedSize))
	buf[4] = 0xab // signature byte
	copy(buf[signedFixedSize:], block)

	var signed SignedBeaconBlock
	require.NoError(t, signed.UnmarshalSSZ(buf))
	require.Equal(t, uint64(9), signed.Block.Slot)
	require.Equal(t, body, signed.Block.Body)
	require.Equal(t, byte(0xab), signed.Signature[0])
}
