package discovery

import (
	"crypto/ecdsa"
	"fmt"
	"net"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/p2p/discover"
	"github.com/ethereum/go-ethereum/p2p/enode"
	libp2pcrypto "github.com/libp2p/go-libp2p/core/crypto"
)

// NewUDPv5Listener starts a discv5 listener bound to bindIP:udpPort,
// reusing the same secp256k1 key the libp2p host was built with (the
// engine generates exactly one identity at startup, spec §5). bootnodes
// seeds the discv5 routing table directly: the ENR records observed at
// bootstrap plus the unsigned nodes built from UDP /p2p/ multiaddrs.
func NewUDPv5Listener(priv libp2pcrypto.PrivKey, bindIP net.IP, udpPort int, bootnodes []*enode.Node) (*discover.UDPv5, error) {
	ecdsaKey, err := toECDSA(priv)
	if err != nil {
		return nil, fmt.Errorf("discovery: derive discv5 key: %w", err)
	}

	udpAddr := &net.UDPAddr{IP: bindIP, Port: udpPort}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("discovery: listen udp: %w", err)
	}

	db, err := enode.OpenDB("")
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("discovery: open node db: %w", err)
	}
	localNode := enode.NewLocalNode(db, ecdsaKey)
	localNode.SetFallbackIP(bindIP)
	localNode.SetFallbackUDP(udpPort)

	cfg := discover.Config{
		PrivateKey: ecdsaKey,
		Bootnodes:  bootnodes,
	}
	listener, err := discover.ListenV5(conn, localNode, cfg)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("discovery: listen v5: %w", err)
	}
	return listener, nil
}

// toECDSA recovers the raw secp256k1 scalar from a libp2p private key and
// rebuilds it as the *ecdsa.PrivateKey go-ethereum's discovery stack
// expects.
func toECDSA(priv libp2pcrypto.PrivKey) (*ecdsa.PrivateKey, error) {
	secpPriv, ok := priv.(*libp2pcrypto.Secp256k1PrivateKey)
	if !ok {
		return nil, fmt.Errorf("discovery: identity key is not secp256k1")
	}
	raw, err := secpPriv.Raw()
	if err != nil {
		return nil, err
	}
	return gethcrypto.ToECDSA(raw)
}
