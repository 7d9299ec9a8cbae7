// Package ssztypes holds the canonical SSZ message shapes the Message
// Decoder (spec §4.H) dispatches to. Each type implements
// github.com/prysmaticlabs/fastssz's Unmarshaler, grounded on the field
// shapes used throughout Prysm's p2p packages (other_examples/
// 787ce297_prysmaticlabs-prysm__tools-p2p-rpc-fetcher-main.go.go treats
// gossip payloads as ssz.Unmarshaler the same way).
//
// The engine is a passive inspector, not a validating client: bodies
// that carry deeply nested, spec-versioned operation lists (the full
// BeaconBlockBody) are captured as their raw post-header bytes rather
// than exploded field-by-field, since nothing downstream of the decoder
// needs more than the block envelope and a size for its log line.
package ssztypes

import (
	"fmt"

	ssz "github.com/prysmaticlabs/fastssz"
)

const (
	rootSize  = 32
	sigSize   = 96
	slotSize  = 8
	epochSize = 8
	idxSize   = 8
)

// Checkpoint is the phase0 Checkpoint container.
type Checkpoint struct {
	Epoch uint64
	Root  [rootSize]byte
}

func (c *Checkpoint) UnmarshalSSZ(buf []byte) error {
	if len(buf) != epochSize+rootSize {
		return fmt.Errorf("ssztypes: invalid Checkpoint size %d", len(buf))
	}
	c.Epoch = ssz.UnmarshallUint64(buf[0:epochSize])
	copy(c.Root[:], buf[epochSize:])
	return nil
}

// AttestationData is the phase0 AttestationData container.
type AttestationData struct {
	Slot            uint64
	CommitteeIndex  uint64
	BeaconBlockRoot [rootSize]byte
	Source          Checkpoint
	Target          Checkpoint
}

const attestationDataSize = slotSize + idxSize + rootSize + 2*(epochSize+rootSize)

func (d *AttestationData) UnmarshalSSZ(buf []byte) error {
	if len(buf) != attestationDataSize {
		return fmt.Errorf("ssztypes: invalid AttestationData size %d", len(buf))
	}
	off := 0
	d.Slot = ssz.UnmarshallUint64(buf[off : off+slotSize])
	off += slotSize
	d.CommitteeIndex = ssz.UnmarshallUint64(buf[off : off+idxSize])
	off += idxSize
	copy(d.BeaconBlockRoot[:], buf[off:off+rootSize])
	off += rootSize
	if err := d.Source.UnmarshalSSZ(buf[off : off+epochSize+rootSize]); err != nil {
		return err
	}
	off += epochSize + rootSize
	return d.Target.UnmarshalSSZ(buf[off : off+epochSize+rootSize])
}

// Attestation is the phase0 Attestation container: a variable-length
// aggregation bitlist, fixed AttestationData, and a BLS signature.
type Attestation struct {
	AggregationBits []byte
	Data            AttestationData
	Signature       [sigSize]byte
}

func (a *Attestation) UnmarshalSSZ(buf []byte) error {
	if len(buf) < 4+attestationDataSize+sigSize {
		return fmt.Errorf("ssztypes: Attestation too short: %d bytes", len(buf))
	}
	offset := ssz.UnmarshallUint32(buf[0:4])
	if int(offset) > len(buf) {
		return fmt.Errorf("ssztypes: Attestation offset %d out of range", offset)
	}
	if err := a.Data.UnmarshalSSZ(buf[4 : 4+attestationDataSize]); err != nil {
		return err
	}
	copy(a.Signature[:], buf[4+attestationDataSize:4+attestationDataSize+sigSize])
	a.AggregationBits = append([]byte(nil), buf[offset:]...)
	return nil
}

// VoluntaryExit is the phase0 VoluntaryExit container.
type VoluntaryExit struct {
	Epoch          uint64
	ValidatorIndex uint64
}

// SignedVoluntaryExit wraps VoluntaryExit with its BLS signature.
type SignedVoluntaryExit struct {
	Exit      VoluntaryExit
	Signature [sigSize]byte
}

func (e *SignedVoluntaryExit) UnmarshalSSZ(buf []byte) error {
	if len(buf) != epochSize+idxSize+sigSize {
		return fmt.Errorf("ssztypes: invalid SignedVoluntaryExit size %d", len(buf))
	}
	e.Exit.Epoch = ssz.UnmarshallUint64(buf[0:epochSize])
	e.Exit.ValidatorIndex = ssz.UnmarshallUint64(buf[epochSize : epochSize+idxSize])
	copy(e.Signature[:], buf[epochSize+idxSize:])
	return nil
}

// BeaconBlockHeader is the phase0 BeaconBlockHeader container.
type BeaconBlockHeader struct {
	Slot          uint64
	ProposerIndex uint64
	ParentRoot    [rootSize]byte
	StateRoot     [rootSize]byte
	BodyRoot      [rootSize]byte
}

const blockHeaderSize = slotSize + idxSize + 3*rootSize

func (h *BeaconBlockHeader) UnmarshalSSZ(buf []byte) error {
	if len(buf) != blockHeaderSize {
		return fmt.Errorf("ssztypes: invalid BeaconBlockHeader size %d", len(buf))
	}
	off := 0
	h.Slot = ssz.UnmarshallUint64(buf[off : off+slotSize])
	off += slotSize
	h.ProposerIndex = ssz.UnmarshallUint64(buf[off : off+idxSize])
	off += idxSize
	copy(h.ParentRoot[:], buf[off:off+rootSize])
	off += rootSize
	copy(h.StateRoot[:], buf[off:off+rootSize])
	off += rootSize
	copy(h.BodyRoot[:], buf[off:])
	return nil
}

// SignedBeaconBlockHeader wraps BeaconBlockHeader with its signature.
type SignedBeaconBlockHeader struct {
	Header    BeaconBlockHeader
	Signature [sigSize]byte
}

func (h *SignedBeaconBlockHeader) UnmarshalSSZ(buf []byte) error {
	if len(buf) != blockHeaderSize+sigSize {
		return fmt.Errorf("ssztypes: invalid SignedBeaconBlockHeader size %d", len(buf))
	}
	if err := h.Header.UnmarshalSSZ(buf[:blockHeaderSize]); err != nil {
		return err
	}
	copy(h.Signature[:], buf[blockHeaderSize:])
	return nil
}

// ProposerSlashing is the phase0 ProposerSlashing container.
type ProposerSlashing struct {
	Header1 SignedBeaconBlockHeader
	Header2 SignedBeaconBlockHeader
}

func (s *ProposerSlashing) UnmarshalSSZ(buf []byte) error {
	want := 2 * (blockHeaderSize + sigSize)
	if len(buf) != want {
		return fmt.Errorf("ssztypes: invalid ProposerSlashing size %d", len(buf))
	}
	half := blockHeaderSize + sigSize
	if err := s.Header1.UnmarshalSSZ(buf[:half]); err != nil {
		return err
	}
	return s.Header2.UnmarshalSSZ(buf[half:])
}

// IndexedAttestation is the phase0 IndexedAttestation container: a
// variable-length validator index list, fixed AttestationData, and a
// BLS signature.
type IndexedAttestation struct {
	AttestingIndices []uint64
	Data             AttestationData
	Signature        [sigSize]byte
}

func (a *IndexedAttestation) UnmarshalSSZ(buf []byte) error {
	if len(buf) < 4+attestationDataSize+sigSize {
		return fmt.Errorf("ssztypes: IndexedAttestation too short: %d bytes", len(buf))
	}
	offset := ssz.UnmarshallUint32(buf[0:4])
	if int(offset) > len(buf) || (len(buf)-int(offset))%idxSize != 0 {
		return fmt.Errorf("ssztypes: IndexedAttestation offset %d invalid", offset)
	}
	if err := a.Data.UnmarshalSSZ(buf[4 : 4+attestationDataSize]); err != nil {
		return err
	}
	copy(a.Signature[:], buf[4+attestationDataSize:4+attestationDataSize+sigSize])
	tail := buf[offset:]
	a.AttestingIndices = make([]uint64, 0, len(tail)/idxSize)
	for i := 0; i+idxSize <= len(tail); i += idxSize {
		a.AttestingIndices = append(a.AttestingIndices, ssz.UnmarshallUint64(tail[i:i+idxSize]))
	}
	return nil
}

// AttesterSlashing is the phase0 AttesterSlashing container.
type AttesterSlashing struct {
	Attestation1 IndexedAttestation
	Attestation2 IndexedAttestation
}

func (s *AttesterSlashing) UnmarshalSSZ(buf []byte) error {
	if len(buf) < 8 {
		return fmt.Errorf("ssztypes: AttesterSlashing too short: %d bytes", len(buf))
	}
	off1 := ssz.UnmarshallUint32(buf[0:4])
	off2 := ssz.UnmarshallUint32(buf[4:8])
	if int(off1) > len(buf) || int(off2) > len(buf) || off2 < off1 {
		return fmt.Errorf("ssztypes: AttesterSlashing offsets invalid")
	}
	if err := s.Attestation1.UnmarshalSSZ(buf[off1:off2]); err != nil {
		return err
	}
	return s.Attestation2.UnmarshalSSZ(buf[off2:])
}

// AggregateAndProof is the phase0 AggregateAndProof container, decoded
// without requiring a live subscription to its gossip topic — this
// engine never subscribes to aggregate-and-proof messages directly, but
// the decode path exists for completeness and for reuse if a future
// topic filter adds it.
type AggregateAndProof struct {
	AggregatorIndex uint64
	Aggregate       Attestation
	SelectionProof  [sigSize]byte
}

func (a *AggregateAndProof) UnmarshalSSZ(buf []byte) error {
	if len(buf) < idxSize+4+sigSize {
		return fmt.Errorf("ssztypes: AggregateAndProof too short: %d bytes", len(buf))
	}
	a.AggregatorIndex = ssz.UnmarshallUint64(buf[0:idxSize])
	aggOffset := ssz.UnmarshallUint32(buf[idxSize : idxSize+4])
	if int(aggOffset) < idxSize+4+sigSize || int(aggOffset) > len(buf) {
		return fmt.Errorf("ssztypes: AggregateAndProof offset %d invalid", aggOffset)
	}
	copy(a.SelectionProof[:], buf[idxSize+4:idxSize+4+sigSize])
	return a.Aggregate.UnmarshalSSZ(buf[aggOffset:])
}

// BeaconBlock is the phase0 BeaconBlock envelope. Body is kept as the
// raw post-header bytes (see package doc).
type BeaconBlock struct {
	Slot          uint64
	ProposerIndex uint64
	ParentRoot    [rootSize]byte
	StateRoot     [rootSize]byte
	Body          []byte
}

func (b *BeaconBlock) UnmarshalSSZ(buf []byte) error {
	if len(buf) < blockHeaderSize-rootSize+4 {
		return fmt.Errorf("ssztypes: BeaconBlock too short: %d bytes", len(buf))
	}
	off := 0
	b.Slot = ssz.UnmarshallUint64(buf[off : off+slotSize])
	off += slotSize
	b.ProposerIndex = ssz.UnmarshallUint64(buf[off : off+idxSize])
	off += idxSize
	copy(b.ParentRoot[:], buf[off:off+rootSize])
	off += rootSize
	copy(b.StateRoot[:], buf[off:off+rootSize])
	off += rootSize
	offset := ssz.UnmarshallUint32(buf[off : off+4])
	if int(offset) > len(buf) {
		return fmt.Errorf("ssztypes: BeaconBlock offset %d out of range", offset)
	}
	b.Body = append([]byte(nil), buf[offset:]...)
	return nil
}

// SignedBeaconBlock wraps BeaconBlock with its proposer signature.
type SignedBeaconBlock struct {
	Block     BeaconBlock
	Signature [sigSize]byte
}

func (b *SignedBeaconBlock) UnmarshalSSZ(buf []byte) error {
	if len(buf) < 4+sigSize {
		return fmt.Errorf("ssztypes: SignedBeaconBlock too short: %d bytes", len(buf))
	}
	offset := ssz.UnmarshallUint32(buf[0:4])
	if int(offset) < 4+sigSize || int(offset) > len(buf) {
		return fmt.Errorf("ssztypes: SignedBeaconBlock offset %d invalid", offset)
	}
	copy(b.Signature[:], buf[4:4+sigSize])
	return b.Block.UnmarshalSSZ(buf[offset:])
}

var (
	_ ssz.Unmarshaler = (*Attestation)(nil)
	_ ssz.Unmarshaler = (*SignedVoluntaryExit)(nil)
	_ ssz.Unmarshaler = (*ProposerSlashing)(nil)
	_ ssz.Unmarshaler = (*AttesterSlashing)(nil)
	_ ssz.Unmarshaler = (*AggregateAndProof)(nil)
	_ ssz.Unmarshaler = (*SignedBeaconBlock)(nil)
)
