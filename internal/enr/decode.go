// Package enr decodes a discovery record into the pieces the rest of the
// engine needs: the node's identity, its dialable transport addresses,
// its fork digest, and its eth2/attnets field pair (spec §3, §4.B).
//
// Grounded on the Prysm grounding file's ENR handling
// (other_examples/bb2edb15…discovery.go.go: convertToSingleMultiAddr,
// convertToUdpMultiAddr, enr.IPv4/enr.IPv6/enr.TCP/enr.UDP loads) and on
// the teacher's use of github.com/ethereum/go-ethereum for secp256k1/ENR
// primitives (gossip.go already imports ethcrypto from the same module).
package enr

import (
	"encoding/binary"
	"fmt"
	"net"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/p2p/enode"
	gethenr "github.com/ethereum/go-ethereum/p2p/enr"
	libp2pcrypto "github.com/libp2p/go-libp2p/core/crypto"
	multiaddr "github.com/multiformats/go-multiaddr"

	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/peerid"
)

// AttestationSubnetCount is ATTESTATION_SUBNET_COUNT from the eth2 spec:
// there are this many attestation-subnet topics, and the attnets bitfield
// below is sized to cover exactly this many bits.
const AttestationSubnetCount = 64

// ForkID is the decoded "eth2" ENR field: a 4-byte fork digest, a 4-byte
// next fork version, and a next-fork epoch, SSZ-encoded as 16 bytes.
type ForkID struct {
	ForkDigest      [4]byte
	NextForkVersion [4]byte
	NextForkEpoch   uint64
}

// FieldPair is the ENRFieldPair from spec §3: the raw eth2 and attnets ENR
// values, compared by Eth2 only (the invariant spec §9 calls out: "ENR
// FieldPair equality intentionally ignores attnets").
type FieldPair struct {
	Eth2    []byte
	Attnets []byte
}

// Equal compares two FieldPairs by Eth2 bytes only, per spec §3/§9.
func (f FieldPair) Equal(o FieldPair) bool {
	if len(f.Eth2) != len(o.Eth2) {
		return false
	}
	for i := range f.Eth2 {
		if f.Eth2[i] != o.Eth2[i] {
			return false
		}
	}
	return true
}

// DecodedRecord is the Record Decoder's output (spec §4.B): the node's
// overlay identity, its composite transport addresses, and whatever
// fork/field data the record carried.
type DecodedRecord struct {
	Identity  peerid.Identity
	Addresses []multiaddr.Multiaddr
	ForkID    *ForkID
	FieldPair *FieldPair
}

// eth2Entry implements gethenr.Entry for the opaque "eth2" key.
type eth2Entry []byte

func (eth2Entry) ENRKey() string { return "eth2" }

// attnetsEntry implements gethenr.Entry for the opaque "attnets" key.
type attnetsEntry []byte

func (attnetsEntry) ENRKey() string { return "attnets" }

// Decode extracts identity, transport addresses, fork digest, and field
// pair from a discovery record. It never fails solely because fork/field
// data is absent — those come back nil — but it does fail if the public
// key cannot be recovered (spec §4.C path 2).
func Decode(node *enode.Node) (DecodedRecord, error) {
	identity, err := identityFromNode(node)
	if err != nil {
		return DecodedRecord{}, err
	}

	return DecodedRecord{
		Identity:  identity,
		Addresses: transportAddresses(node),
		ForkID:    forkID(node),
		FieldPair: fieldPair(node),
	}, nil
}

func identityFromNode(node *enode.Node) (peerid.Identity, error) {
	pub := node.Pubkey()
	if pub == nil {
		return peerid.Identity{}, fmt.Errorf("enr: record has no secp256k1 public key")
	}
	compressed := gethcrypto.CompressPubkey(pub)
	libp2pPub, err := libp2pcrypto.UnmarshalSecp256k1PublicKey(compressed)
	if err != nil {
		return peerid.Identity{}, fmt.Errorf("enr: malformed public key: %w", err)
	}
	identity, err := peerid.FromPublicKey(libp2pPub)
	if err != nil {
		return peerid.Identity{}, fmt.Errorf("enr: %w", err)
	}
	return identity, nil
}

// transportAddresses builds one composite multiaddr per (ip × transport)
// combination present in the record: up to ip4/tcp, ip4/udp, ip6/tcp,
// ip6/udp (spec §4.B). A record with neither TCP nor UDP present yields
// an empty list — it still may carry fork/field data (see Decode).
func transportAddresses(node *enode.Node) []multiaddr.Multiaddr {
	var (
		ip4  gethenr.IPv4
		ip6  gethenr.IPv6
		tcp4 gethenr.TCP
		tcp6 gethenr.TCP6
		udp4 gethenr.UDP
		udp6 gethenr.UDP6
	)
	hasIP4 := node.Load(&ip4) == nil
	hasIP6 := node.Load(&ip6) == nil
	hasTCP4 := node.Load(&tcp4) == nil
	hasTCP6 := node.Load(&tcp6) == nil
	hasUDP4 := node.Load(&udp4) == nil
	hasUDP6 := node.Load(&udp6) == nil

	var out []multiaddr.Multiaddr
	add := func(ok bool, ip net.IP, transport string, port int) {
		if !ok {
			return
		}
		family := "ip4"
		if ip.To4() == nil {
			family = "ip6"
		}
		addr, err := multiaddr.NewMultiaddr(fmt.Sprintf("/%s/%s/%s/%d", family, ip.String(), transport, port))
		if err != nil {
			return
		}
		out = append(out, addr)
	}
	add(hasIP4 && hasTCP4, net.IP(ip4), "tcp", int(tcp4))
	add(hasIP4 && hasUDP4, net.IP(ip4), "udp", int(udp4))
	add(hasIP6 && hasTCP6, net.IP(ip6), "tcp", int(tcp6))
	add(hasIP6 && hasUDP6, net.IP(ip6), "udp", int(udp6))
	return out
}

// forkID decodes the "eth2" ENR field, if present, into a ForkID. The
// wire shape is the 16-byte SSZ encoding of
// {fork_digest: 4, next_fork_version: 4, next_fork_epoch: u64 LE}.
func forkID(node *enode.Node) *ForkID {
	var entry eth2Entry
	if node.Load(&entry) != nil || len(entry) < 16 {
		return nil
	}
	f := &ForkID{}
	copy(f.ForkDigest[:], entry[0:4])
	copy(f.NextForkVersion[:], entry[4:8])
	f.NextForkEpoch = binary.LittleEndian.Uint64(entry[8:16])
	return f
}

// fieldPair decodes the raw eth2/attnets ENR fields into a FieldPair. The
// attnets bitfield is capped at AttestationSubnetCount/8 bytes, the
// canonical Bitvector[ATTESTATION_SUBNET_COUNT] size — replacing the
// List[byte, 9999999] placeholder spec §9's Open Questions flags as a
// TODO in the original source.
func fieldPair(node *enode.Node) *FieldPair {
	var eth2 eth2Entry
	var attnets attnetsEntry
	hasEth2 := node.Load(&eth2) == nil
	hasAttnets := node.Load(&attnets) == nil
	if !hasEth2 && !hasAttnets {
		return nil
	}
	fp := &FieldPair{}
	if hasEth2 {
		fp.Eth2 = append([]byte(nil), eth2...)
	}
	if hasAttnets {
		const maxAttnetsBytes = AttestationSubnetCount / 8
		if len(attnets) > maxAttnetsBytes {
			attnets = attnets[:maxAttnetsBytes]
		}
		fp.Attnets = append([]byte(nil), attnets...)
	}
	return fp
}
