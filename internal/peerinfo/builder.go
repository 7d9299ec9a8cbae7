// Package peerinfo builds PeerInfo descriptors (spec §3, §4.C) from the
// two sources the engine ever sees a peer from: a composite multiaddress
// with an embedded identity, or a decoded discovery record.
package peerinfo

import (
	"fmt"

	"github.com/libp2p/go-libp2p/core/peer"
	multiaddr "github.com/multiformats/go-multiaddr"

	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/enr"
	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/peerid"
)

// Role records which joining path a PeerInfo was built for, so the
// invariant in spec §3/§8 (overlay peers carry a TCP address, discovery
// peers carry a UDP address) can be checked at the call site.
type Role int

const (
	RoleOverlayPeer Role = iota
	RoleDiscovery
)

// Info is the PeerInfo descriptor from spec §3: an identity plus an
// ordered, non-empty list of transport addresses.
type Info struct {
	Identity  peerid.Identity
	Addresses []multiaddr.Multiaddr
	Role      Role
}

// AddrInfo converts to the libp2p shape host.Connect expects.
func (i Info) AddrInfo() peer.AddrInfo {
	return peer.AddrInfo{ID: i.Identity.Libp2p(), Addrs: i.Addresses}
}

// HasTCP reports whether any address advertises a TCP transport.
func (i Info) HasTCP() bool { return hasProtocol(i.Addresses, multiaddr.P_TCP) }

// HasUDP reports whether any address advertises a UDP transport.
func (i Info) HasUDP() bool { return hasProtocol(i.Addresses, multiaddr.P_UDP) }

func hasProtocol(addrs []multiaddr.Multiaddr, code int) bool {
	for _, a := range addrs {
		for _, p := range a.Protocols() {
			if p.Code == code {
				return true
			}
		}
	}
	return false
}

// FromMultiaddr builds a PeerInfo from a composite multiaddress with an
// embedded identity (".../p2p/<id>"), the direct-dial path (spec §4.C
// path 1). role should be RoleOverlayPeer for a TCP/ETH2BN address and
// RoleDiscovery for a UDP/DISCV5BN one, so the TCP/UDP invariant in spec
// §3/§8 stays checkable at the call site the way FromRecord already
// does. Fails if the identity cannot be parsed or the shape is
// unexpected.
func FromMultiaddr(m multiaddr.Multiaddr, role Role) (Info, error) {
	addrInfo, err := peer.AddrInfoFromP2pAddr(m)
	if err != nil {
		return Info{}, fmt.Errorf("peerinfo: %w", err)
	}
	if len(addrInfo.Addrs) == 0 {
		return Info{}, fmt.Errorf("peerinfo: multiaddr %q has no transport prefix", m)
	}
	return Info{
		Identity:  peerid.FromLibp2p(addrInfo.ID),
		Addresses: addrInfo.Addrs,
		Role:      role,
	}, nil
}

// FromRecord builds a PeerInfo from a decoded discovery record (spec
// §4.C path 2). Fails if the record carried no extractable public key —
// enr.Decode already enforces that, so this only rejects a zero Identity
// reaching here some other way — or if the record has no TCP or UDP
// address at all.
func FromRecord(dr enr.DecodedRecord, role Role) (Info, error) {
	if dr.Identity.IsZero() {
		return Info{}, fmt.Errorf("peerinfo: record has no usable identity")
	}
	if len(dr.Addresses) == 0 {
		return Info{}, fmt.Errorf("peerinfo: record has no tcp or udp address")
	}
	return Info{
		Identity:  dr.Identity,
		Addresses: dr.Addresses,
		Role:      role,
	}, nil
}
