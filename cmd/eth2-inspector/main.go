// Command eth2-inspector is a passive observer of a beacon-chain p2p
// overlay: it dials bootstrap peers, discovers more via discv5, and logs
// (optionally decoding) whatever gossip arrives on the subscribed
// topics. It never produces or forwards traffic of its own.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/ethereum/go-ethereum/p2p/discover"
	"github.com/ethereum/go-ethereum/p2p/enode"
	"github.com/libp2p/go-libp2p/core/peer"
	multiaddr "github.com/multiformats/go-multiaddr"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/apperr"
	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/bootstrap"
	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/config"
	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/dialer"
	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/discovery"
	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/enr"
	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/gossip"
	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/hostbuilder"
	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/logging"
	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/netstate"
	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/peerid"
	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/peerinfo"
	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/topics"
)

func main() {
	app := &cli.App{
		Name:  "eth2-inspector",
		Usage: "passive beacon-chain p2p network inspector",
		Flags: config.Flags(),
		Action: func(c *cli.Context) error {
			return run(c)
		},
	}
	if err := app.Run(os.Args); err != nil {
		if apperr.IsFatal(err) {
			fmt.Fprintln(os.Stderr, "fatal:", err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.FromContext(c)
	if err != nil {
		return apperr.Fatal(err)
	}

	root := logging.New(cfg.Verbosity)
	log := logging.Component(root, "engine")

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	addrs, _ := bootstrap.Load(bootstrap.LoaderConfig{FilePath: cfg.BootFile, CLI: cfg.Bootnodes}, logging.Component(root, "bootstrap"))
	if len(addrs) == 0 {
		return apperr.Fatal(fmt.Errorf("empty bootstrap list"))
	}

	table := netstate.NewTable()
	dialQueue := netstate.NewDialQueue()
	resolveQueue := netstate.NewResolveQueue()
	aggregator := enr.NewAggregator(logging.Component(root, "record-decoder"), cfg.ForkDigest)

	var (
		overlayCount       int
		discoveryBootnodes []*enode.Node
	)
	for _, addr := range addrs {
		switch addr.Kind {
		case bootstrap.KindRecord:
			discoveryBootnodes = append(discoveryBootnodes, addr.Record)
			dr, derr := enr.Decode(addr.Record)
			if derr != nil {
				log.WithError(derr).Warn("skipping unusable bootstrap record")
				continue
			}
			aggregator.Observe(dr)
			if info, ierr := peerinfo.FromRecord(dr, peerinfo.RoleOverlayPeer); ierr == nil && info.HasTCP() {
				dialQueue.Push(info)
				overlayCount++
			}
		case bootstrap.KindMulti:
			switch {
			case addr.IsETH2BN():
				if info, ierr := peerinfo.FromMultiaddr(addr.Multi, peerinfo.RoleOverlayPeer); ierr == nil {
					dialQueue.Push(info)
					overlayCount++
				}
			case addr.IsDISCV5BN():
				node, derr := discv5BootnodeFromMultiaddr(addr.Multi)
				if derr != nil {
					log.WithError(derr).Warn("skipping unusable discovery bootstrap")
					continue
				}
				discoveryBootnodes = append(discoveryBootnodes, node)
				log.WithField("node_id", node.ID().String()).Debug("discovery-only bootstrap kept for discv5 seeding")
			}
		}
	}
	if overlayCount == 0 {
		return apperr.Fatal(fmt.Errorf("no usable overlay bootstraps"))
	}

	forkDigest, err := aggregator.Resolve()
	if err != nil {
		return apperr.Fatal(err)
	}
	log.WithField("fork_digest", fmt.Sprintf("%x", forkDigest)).Info("resolved fork digest")

	hb, err := hostbuilder.Build(ctx, cfg)
	if err != nil {
		return apperr.Fatal(err)
	}
	log.WithField("peer_id", renderIdentity(peerid.FromLibp2p(hb.Host.ID()), cfg.FullPeerID)).Info("host constructed")

	decoder := gossip.New(cfg.Decode, logging.Component(root, "decoder"))
	resolveHook := func(topic string, from peer.ID, data []byte) {
		decoder.Handle(topic, from, data)
		id := peerid.FromLibp2p(from)
		if !table.Has(id) {
			resolveQueue.TryPush(id)
		}
	}

	topicNames := topics.Expand(topics.ParseShortCodes(cfg.TopicCodes), forkDigest)
	if err := topics.Subscribe(ctx, hb.PubSub, topicNames, cfg.CustomTopics, resolveHook, logging.Component(root, "topics")); err != nil {
		return apperr.Fatal(fmt.Errorf("subscribe: %w", err))
	}

	dialLoop := dialer.New(hb.Host, dialQueue, table, 0, logging.Component(root, "dialer"))
	go dialLoop.Run(ctx)
	go netstate.RunSummaryLoop(ctx, table, dialQueue, resolveQueue, logging.Component(root, "engine"))

	if !cfg.NoDiscovery && len(discoveryBootnodes) > 0 {
		listener, derr := startDiscV5(hb, cfg, discoveryBootnodes, log)
		if derr != nil {
			log.WithError(derr).Warn("discovery disabled: listener failed to start")
		} else {
			defer listener.Close()
			discLoop := discovery.New(listener, hb.Host, table, dialQueue, cfg.MaxPeers, logging.Component(root, "discovery"))
			go discLoop.Run(ctx)

			resolver := discovery.NewResolver(listener, resolveQueue, table, logging.Component(root, "resolver"))
			go resolver.Run(ctx)
		}
	}

	<-ctx.Done()
	log.Info("shutting down")
	dialQueue.Close()
	_ = hb.Host.Close()
	return nil
}

func renderIdentity(id peerid.Identity, full bool) string {
	if full {
		return id.String()
	}
	return id.Short()
}

func startDiscV5(hb hostbuilder.Result, cfg config.Config, bootnodes []*enode.Node, log logrus.FieldLogger) (*discover.UDPv5, error) {
	ip, err := bindIP(cfg.BindAddress)
	if err != nil {
		return nil, err
	}
	listener, err := discovery.NewUDPv5Listener(hb.Key, ip, cfg.DiscoveryPort, bootnodes)
	if err != nil {
		return nil, err
	}
	log.WithField("node_id", listener.Self().ID().String()).Info("discv5 listener started")
	return listener, nil
}

// discv5BootnodeFromMultiaddr turns a DISCV5BN multiaddr (UDP + /p2p/<id>,
// spec §4.A) into an unsigned discv5 node: it never carried a signed
// record, so FromMultiaddr's recovered identity and udpEndpoint's
// extracted ip/port are fed through enr.NewUnsignedNode the same way a
// bare enode:// URL's components would be. The resulting PeerInfo is
// deliberately not pushed to the dial queue — it has no TCP address and
// exists only to seed discv5 (spec §3's overlay/discovery split).
func discv5BootnodeFromMultiaddr(m multiaddr.Multiaddr) (*enode.Node, error) {
	info, err := peerinfo.FromMultiaddr(m, peerinfo.RoleDiscovery)
	if err != nil {
		return nil, err
	}
	ip, udpPort, err := udpEndpoint(info.Addresses)
	if err != nil {
		return nil, err
	}
	return enr.NewUnsignedNode(info.Identity, ip, 0, udpPort)
}

// udpEndpoint extracts the ip/udp-port pair from a PeerInfo's addresses,
// the components a DISCV5BN multiaddr is required to carry.
func udpEndpoint(addrs []multiaddr.Multiaddr) (net.IP, int, error) {
	for _, a := range addrs {
		var ipStr string
		if v, err := a.ValueForProtocol(multiaddr.P_IP4); err == nil {
			ipStr = v
		} else if v, err := a.ValueForProtocol(multiaddr.P_IP6); err == nil {
			ipStr = v
		} else {
			continue
		}
		portStr, err := a.ValueForProtocol(multiaddr.P_UDP)
		if err != nil {
			continue
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			continue
		}
		ip := net.ParseIP(ipStr)
		if ip == nil {
			continue
		}
		return ip, port, nil
	}
	return nil, 0, fmt.Errorf("multiaddr carries no ip/udp endpoint")
}

func bindIP(bindAddress string) (net.IP, error) {
	m, err := multiaddr.NewMultiaddr(bindAddress)
	if err != nil {
		return nil, fmt.Errorf("parse bind address %q: %w", bindAddress, err)
	}
	if v, err := m.ValueForProtocol(multiaddr.P_IP4); err == nil {
		return net.ParseIP(v), nil
	}
	if v, err := m.ValueForProtocol(multiaddr.P_IP6); err == nil {
		return net.ParseIP(v), nil
	}
	return nil, fmt.Errorf("bind address %q carries no ip4/ip6 component", bindAddress)
}
