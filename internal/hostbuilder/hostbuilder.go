// Package hostbuilder constructs the libp2p host and pub/sub router the
// rest of the engine runs on top of, grounded on the teacher's
// libp2p.New/pubsub.NewGossipSub call pair in gossip.go.
//
// Open Question (preserved, not "fixed" — spec §9): the CLI still
// exposes both -f/--floodsub and -g/--gossipsub, mirroring the source's
// flags, but Build always constructs a GossipSub router exactly like the
// teacher always did regardless of which of its own flags were set.
// Nothing in this engine ever constructs a FloodSub router.
package hostbuilder

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	crypto "github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"

	libp2p "github.com/libp2p/go-libp2p"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
	multiaddr "github.com/multiformats/go-multiaddr"

	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/config"
)

// Result bundles the constructed host and pub/sub router.
type Result struct {
	Host   host.Host
	PubSub *pubsub.PubSub
	Key    crypto.PrivKey
}

// Build generates a fresh secp256k1 identity (spec §5: "never persisted,
// never logged"), constructs the libp2p host bound to cfg.BindAddress and
// cfg.EthPort, and wraps it in a GossipSub router. A malformed bind
// address is a fatal condition (spec §7).
func Build(ctx context.Context, cfg config.Config) (Result, error) {
	priv, _, err := crypto.GenerateSecp256k1Key(rand.Reader)
	if err != nil {
		return Result{}, fmt.Errorf("hostbuilder: generate identity: %w", err)
	}

	listen, err := listenAddr(cfg.BindAddress, cfg.EthPort)
	if err != nil {
		return Result{}, fmt.Errorf("hostbuilder: bind address: %w", err)
	}

	h, err := libp2p.New(
		libp2p.Identity(priv),
		libp2p.ListenAddrs(listen),
		libp2p.EnableRelay(),
		libp2p.EnableNATService(),
		libp2p.EnableHolePunching(),
	)
	if err != nil {
		return Result{}, fmt.Errorf("hostbuilder: libp2p host: %w", err)
	}

	signaturePolicy := pubsub.StrictNoSign
	if cfg.Sign {
		signaturePolicy = pubsub.StrictSign
	}

	ps, err := pubsub.NewGossipSub(ctx, h,
		pubsub.WithMessageIdFn(MessageIDFn()),
		pubsub.WithMessageSignaturePolicy(signaturePolicy),
		pubsub.WithPeerScore(&pubsub.PeerScoreParams{
			AppSpecificScore: func(peer.ID) float64 { return 0 },
			DecayInterval:    time.Second,
			DecayToZero:      0.01,
		}, &pubsub.PeerScoreThresholds{}),
		pubsub.WithFloodPublish(true),
	)
	if err != nil {
		return Result{}, fmt.Errorf("hostbuilder: gossipsub: %w", err)
	}

	return Result{Host: h, PubSub: ps, Key: priv}, nil
}

func listenAddr(bind string, port int) (multiaddr.Multiaddr, error) {
	return multiaddr.NewMultiaddr(fmt.Sprintf("%s/tcp/%d", bind, port))
}

// MessageIDFn is the domain-separated snappy message-ID function, ported
// from the teacher's msgIDFn in gossip.go unchanged in algorithm: a
// sha256 over a validity-domain prefix plus either the decompressed or
// raw payload, truncated to 20 bytes.
func MessageIDFn() pubsub.MsgIdFunction {
	return msgIDFn
}
