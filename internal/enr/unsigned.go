package enr

import (
	"fmt"
	"net"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/p2p/enode"
	libp2pcrypto "github.com/libp2p/go-libp2p/core/crypto"

	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/peerid"
)

// NewUnsignedNode is the mirror of identityFromNode: given a PeerIdentity
// observed as a DISCV5BN multiaddr (a UDP /p2p/<id> bootstrap that never
// carried a signed discovery record, spec §4.A), it recovers the
// secp256k1 public key embedded in the libp2p peer ID and wraps it as an
// unsigned discv5 node the same way enode.NewV4 wraps a bare enode://
// URL's components, so the address can still seed the discv5 listener's
// bootnode table.
func NewUnsignedNode(identity peerid.Identity, ip net.IP, tcpPort, udpPort int) (*enode.Node, error) {
	pub, err := identity.Libp2p().ExtractPublicKey()
	if err != nil {
		return nil, fmt.Errorf("enr: extract public key: %w", err)
	}
	secpPub, ok := pub.(*libp2pcrypto.Secp256k1PublicKey)
	if !ok {
		return nil, fmt.Errorf("enr: identity has no extractable secp256k1 public key")
	}
	raw, err := secpPub.Raw()
	if err != nil {
		return nil, fmt.Errorf("enr: %w", err)
	}
	ecdsaPub, err := gethcrypto.DecompressPubkey(raw)
	if err != nil {
		return nil, fmt.Errorf("enr: decompress public key: %w", err)
	}
	return enode.NewV4(ecdsaPub, ip, tcpPort, udpPort), nil
}
