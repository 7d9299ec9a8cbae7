// Package peerid models the two identifiers the inspector deals with for a
// single network participant: the overlay's own PeerIdentity (a libp2p
// peer.ID) and the discovery layer's NodeId (a keccak256 digest of the raw
// secp256k1 public key). The two are derived from the same key but are
// never interchangeable without an explicit, partial conversion.
package peerid

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	libp2pcrypto "github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"
	"golang.org/x/crypto/sha3"
)

// Identity is the overlay's canonical peer identifier.
type Identity struct {
	id peer.ID
}

// FromLibp2p wraps an already-derived libp2p peer.ID.
func FromLibp2p(id peer.ID) Identity { return Identity{id: id} }

// FromPublicKey derives the overlay PeerIdentity from a secp256k1 public
// key, mirroring the overlay's canonical peer-ID rule
// (peer.IDFromPublicKey, as used throughout the Prysm p2p grounding
// files for the same derivation).
func FromPublicKey(pub libp2pcrypto.PubKey) (Identity, error) {
	id, err := peer.IDFromPublicKey(pub)
	if err != nil {
		return Identity{}, fmt.Errorf("derive peer identity: %w", err)
	}
	return Identity{id: id}, nil
}

// Libp2p returns the underlying peer.ID for use with the pubsub/host APIs.
func (p Identity) Libp2p() peer.ID { return p.id }

// String renders the identity in full (base58) form.
func (p Identity) String() string { return p.id.String() }

// Short renders a shortened identity for compact log lines, honoring the
// engine's -p/--fullpeerid toggle at the call site.
func (p Identity) Short() string {
	s := p.id.String()
	if len(s) <= 12 {
		return s
	}
	return s[:6] + "…" + s[len(s)-6:]
}

// IsZero reports whether this Identity was never assigned.
func (p Identity) IsZero() bool { return p.id == "" }

// NodeId is the discovery overlay's 256-bit identifier: keccak256 of the
// raw, uncompressed 64-byte secp256k1 public key, read big-endian.
type NodeId [32]byte

// String renders the NodeId as a hex string.
func (n NodeId) String() string { return fmt.Sprintf("%x", [32]byte(n)) }

// ErrNotSecp256k1 is returned by ToNodeId when the identity was not derived
// from a secp256k1 key, or its raw public key cannot be recovered — the
// conversion PeerIdentity -> NodeId is partial by construction.
var ErrNotSecp256k1 = errors.New("peerid: identity has no extractable secp256k1 public key")

// ToNodeId converts an overlay PeerIdentity to the discovery layer's NodeId.
// It is defined only for secp256k1-keyed identities with an extractable raw
// public key; every other case returns ErrNotSecp256k1.
func ToNodeId(p Identity) (NodeId, error) {
	pub, err := p.id.ExtractPublicKey()
	if err != nil {
		return NodeId{}, fmt.Errorf("%w: %v", ErrNotSecp256k1, err)
	}
	secpPub, ok := pub.(*libp2pcrypto.Secp256k1PublicKey)
	if !ok {
		return NodeId{}, ErrNotSecp256k1
	}
	raw, err := rawUncompressed(secpPub)
	if err != nil {
		return NodeId{}, fmt.Errorf("%w: %v", ErrNotSecp256k1, err)
	}
	return keccak256NodeId(raw), nil
}

// rawUncompressed recovers the 64-byte uncompressed X||Y encoding from a
// libp2p secp256k1 public key, the form go-ethereum's enode/crypto package
// expects and the form the discovery layer's node ids are derived from.
func rawUncompressed(pub *libp2pcrypto.Secp256k1PublicKey) ([]byte, error) {
	raw, err := pub.Raw()
	if err != nil {
		return nil, err
	}
	point, err := btcec.ParsePubKey(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid compressed secp256k1 point: %w", err)
	}
	// SerializeUncompressed is 0x04 || X(32) || Y(32); drop the prefix.
	return point.SerializeUncompressed()[1:], nil
}

// keccak256NodeId derives a NodeId the way the discovery overlay does:
// keccak256(raw 64-byte pubkey), read big-endian. Mirrors the teacher's
// keccak() helper in utils.go.
func keccak256NodeId(rawPub []byte) NodeId {
	h := sha3.NewLegacyKeccak256()
	h.Write(rawPub)
	var out NodeId
	copy(out[:], h.Sum(nil))
	return out
}
