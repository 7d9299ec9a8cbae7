// Package bootstrap ingests and normalizes bootstrap addresses: an
// optional newline-delimited file plus a repeatable CLI list, each entry
// classified into the BootstrapAddress sum type described in spec §3.
//
// Grounded on the teacher's parseBootnode (gossip.go), generalized from
// "enode-or-multiaddr" to "ENR-or-multiaddr" (the spec's actual wire
// format), and on the Prysm grounding file's parseGenericAddrs /
// parseBootStrapAddrs (other_examples/bb2edb15 …discovery.go.go), which
// shows the same enode-vs-multiaddr split this engine performs between
// ENR and multiaddr.
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/p2p/enode"
	multiaddr "github.com/multiformats/go-multiaddr"
)

// Kind tags which variant of Address is populated.
type Kind int

const (
	// KindRecord is a signed, self-describing discovery record (enr:...).
	KindRecord Kind = iota
	// KindMulti is a layered multiaddress embedding a peer identity.
	KindMulti
)

// Address is the BootstrapAddress sum type from spec §3: exactly one of
// Record or Multi is populated, selected by Kind. Every instance that
// exists was produced by a successful parse; malformed inputs never reach
// this type (see Classify).
type Address struct {
	Kind   Kind
	Record *enode.Node
	Multi  multiaddr.Multiaddr
}

// String re-encodes the address in its original wire form, used by the
// round-trip invariant in spec §8.
func (a Address) String() string {
	switch a.Kind {
	case KindRecord:
		return a.Record.String()
	case KindMulti:
		return a.Multi.String()
	default:
		return ""
	}
}

// IsETH2BN reports whether this is a direct overlay-peer address: a TCP
// multiaddr carrying a /p2p/<id> component (spec §4.A, ETH2BN shape).
func (a Address) IsETH2BN() bool {
	return a.Kind == KindMulti && hasProtocol(a.Multi, multiaddr.P_TCP) && hasComponent(a.Multi, multiaddr.P_P2P)
}

// IsDISCV5BN reports whether this is a discovery endpoint: a UDP
// multiaddr carrying a /p2p/<id> component (spec §4.A, DISCV5BN shape).
func (a Address) IsDISCV5BN() bool {
	return a.Kind == KindMulti && hasProtocol(a.Multi, multiaddr.P_UDP) && hasComponent(a.Multi, multiaddr.P_P2P)
}

func hasProtocol(m multiaddr.Multiaddr, code int) bool {
	for _, p := range m.Protocols() {
		if p.Code == code {
			return true
		}
	}
	return false
}

func hasComponent(m multiaddr.Multiaddr, code int) bool {
	return hasProtocol(m, code)
}

// Classify parses a single trimmed, non-empty candidate string into an
// Address. The "enr:" prefix selects the discovery-record parser;
// otherwise the candidate must parse as a multiaddr and match one of the
// two recognized shapes (ETH2BN or DISCV5BN), or it is rejected.
func Classify(raw string) (Address, error) {
	if strings.HasPrefix(raw, "enr:") {
		node, err := enode.Parse(enode.ValidSchemes, raw)
		if err != nil {
			return Address{}, fmt.Errorf("parse enr %q: %w", raw, err)
		}
		return Address{Kind: KindRecord, Record: node}, nil
	}

	m, err := multiaddr.NewMultiaddr(raw)
	if err != nil {
		return Address{}, fmt.Errorf("parse multiaddr %q: %w", raw, err)
	}
	candidate := Address{Kind: KindMulti, Multi: m}
	if candidate.IsETH2BN() || candidate.IsDISCV5BN() {
		return candidate, nil
	}
	return Address{}, fmt.Errorf("multiaddr %q is neither a TCP nor UDP /p2p/ address", raw)
}
