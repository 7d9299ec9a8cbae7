// Package discovery implements the Discovery Loop and Resolver Loop
// (spec §4.E, §4.F) against a discv5 Listener.
//
// The Listener interface is grounded on Prysm's p2p discovery.go
// (other_examples/bb2edb15_prysmaticlabs-prysm__beacon-chain-p2p-discovery.go.go),
// trimmed to the methods this engine actually calls; the concrete
// implementation wraps go-ethereum's p2p/discover.UDPv5, the same discv5
// stack Prysm itself wraps.
package discovery

import (
	"github.com/ethereum/go-ethereum/p2p/discover"
	"github.com/ethereum/go-ethereum/p2p/enode"
)

// Listener is the discv5 network surface the Discovery and Resolver
// Loops depend on. *discover.UDPv5 satisfies it directly.
type Listener interface {
	Self() *enode.Node
	Close()
	Lookup(enode.ID) []*enode.Node
	Resolve(*enode.Node) *enode.Node
	RandomNodes() enode.Iterator
}

var _ Listener = (*discover.UDPv5)(nil)
