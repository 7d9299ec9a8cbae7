// Package config binds the CLI surface from spec §6 onto a plain
// Config struct, read once at startup by cmd/eth2-inspector.
package config

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli/v2"
)

// Config is the fully-parsed CLI surface (spec §6).
type Config struct {
	Verbosity     string
	FullPeerID    bool
	FloodSub      bool
	GossipSub     bool
	ForkDigest    *[4]byte
	Sign          bool
	TopicCodes    []string
	CustomTopics  []string
	BootFile      string
	Bootnodes     []string
	Decode        bool
	DiscoveryPort int
	EthPort       int
	BindAddress   string
	MaxPeers      int
	NoDiscovery   bool
}

// Flags returns the urfave/cli flag set for the engine's single command.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "verbosity", Aliases: []string{"v"}, Value: "trace", Usage: "log level"},
		&cli.BoolFlag{Name: "fullpeerid", Aliases: []string{"p"}, Usage: "render full vs. short peer identities in logs"},
		&cli.BoolFlag{Name: "floodsub", Aliases: []string{"f"}, Value: true, Usage: "select FloodSub engine"},
		&cli.BoolFlag{Name: "gossipsub", Aliases: []string{"g"}, Usage: "select GossipSub engine"},
		&cli.StringFlag{Name: "forkdigest", Usage: "4-byte hex fork digest override"},
		&cli.BoolFlag{Name: "sign", Aliases: []string{"s"}, Usage: "sign and verify pub/sub envelopes"},
		&cli.StringSliceFlag{Name: "topics", Aliases: []string{"t"}, Usage: "repeatable short-code or *"},
		&cli.StringSliceFlag{Name: "custom", Aliases: []string{"c"}, Usage: "repeatable verbatim topic name"},
		&cli.StringFlag{Name: "bootfile", Aliases: []string{"l"}, Usage: "path to bootstrap list file"},
		&cli.StringSliceFlag{Name: "bootnodes", Aliases: []string{"b"}, Usage: "repeatable bootstrap entry"},
		&cli.BoolFlag{Name: "decode", Aliases: []string{"d"}, Usage: "enable canonical decoding"},
		&cli.IntFlag{Name: "discoveryPort", Value: 9000, Usage: "UDP port"},
		&cli.IntFlag{Name: "ethPort", Value: 9000, Usage: "TCP port"},
		&cli.StringFlag{Name: "bindAddress", Value: "/ip4/0.0.0.0", Usage: "bind multiaddress"},
		&cli.IntFlag{Name: "maxPeers", Value: 100, Usage: "discovery target population"},
		&cli.BoolFlag{Name: "noDiscovery", Usage: "disable the Discovery Loop"},
	}
}

// FromContext reads a Config from a parsed cli.Context.
func FromContext(c *cli.Context) (Config, error) {
	cfg := Config{
		Verbosity:     c.String("verbosity"),
		FullPeerID:    c.Bool("fullpeerid"),
		FloodSub:      c.Bool("floodsub"),
		GossipSub:     c.Bool("gossipsub"),
		Sign:          c.Bool("sign"),
		TopicCodes:    c.StringSlice("topics"),
		CustomTopics:  c.StringSlice("custom"),
		BootFile:      c.String("bootfile"),
		Bootnodes:     c.StringSlice("bootnodes"),
		Decode:        c.Bool("decode"),
		DiscoveryPort: c.Int("discoveryPort"),
		EthPort:       c.Int("ethPort"),
		BindAddress:   c.String("bindAddress"),
		MaxPeers:      c.Int("maxPeers"),
		NoDiscovery:   c.Bool("noDiscovery"),
	}
	if raw := c.String("forkdigest"); raw != "" {
		fd, err := parseForkDigest(raw)
		if err != nil {
			return Config{}, err
		}
		cfg.ForkDigest = &fd
	}
	return cfg, nil
}

func parseForkDigest(raw string) ([4]byte, error) {
	var fd [4]byte
	trimmed := raw
	if len(trimmed) >= 2 && trimmed[0:2] == "0x" {
		trimmed = trimmed[2:]
	}
	b, err := hex.DecodeString(trimmed)
	if err != nil {
		return fd, fmt.Errorf("config: invalid forkdigest %q: %w", raw, err)
	}
	if len(b) != 4 {
		return fd, fmt.Errorf("config: forkdigest must be 4 bytes, got %d", len(b))
	}
	copy(fd[:], b)
	return fd, nil
}
