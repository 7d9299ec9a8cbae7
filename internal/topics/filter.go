// Package topics implements the Topic Engine (spec §4.G): translating a
// TopicFilter set and fork digest into the canonical gossip topic-name
// set, and wiring subscriptions on the pub/sub router.
package topics

import (
	"fmt"
	"strings"
)

// Filter is the closed TopicFilter enumeration from spec §3.
type Filter int

const (
	Blocks Filter = iota
	Attestations
	VoluntaryExits
	ProposerSlashings
	AttesterSlashings
)

// AttestationSubnetCount is ATTESTATION_SUBNET_COUNT from spec §4.G.
const AttestationSubnetCount = 64

// All is the full category set, used for "*" and the empty-list default.
func All() []Filter {
	return []Filter{Blocks, Attestations, VoluntaryExits, ProposerSlashings, AttesterSlashings}
}

// ParseShortCode maps one operator-supplied short code (spec §4.G) to a
// Filter. Matching is case-insensitive; an unknown code reports ok=false
// so the caller can silently ignore it.
func ParseShortCode(code string) (Filter, bool) {
	switch strings.ToLower(code) {
	case "a":
		return Attestations, true
	case "b":
		return Blocks, true
	case "e":
		return VoluntaryExits, true
	case "ps":
		return ProposerSlashings, true
	case "as":
		return AttesterSlashings, true
	default:
		return 0, false
	}
}

// ParseShortCodes expands the operator's short-code list into a Filter
// set: "*" or an empty list means every category; unknown codes are
// dropped silently and contribute no subscription (spec §4.G, §8) — a
// non-empty list that matches nothing returns an empty set, never a
// fallback to All().
func ParseShortCodes(codes []string) []Filter {
	if len(codes) == 0 {
		return All()
	}
	var out []Filter
	for _, c := range codes {
		if c == "*" {
			return All()
		}
		if f, ok := ParseShortCode(c); ok {
			out = append(out, f)
		}
	}
	return out
}

// Expand translates filters and a fork digest into the concrete
// `_snappy`-suffixed topic-name list per spec §4.G's table.
func Expand(filters []Filter, forkDigest [4]byte) []string {
	fd := fmt.Sprintf("%x", forkDigest[:])
	var names []string
	for _, f := range filters {
		switch f {
		case Blocks:
			names = append(names, beaconBlocksTopic(fd))
		case VoluntaryExits:
			names = append(names, voluntaryExitsTopic(fd))
		case ProposerSlashings:
			names = append(names, proposerSlashingsTopic(fd))
		case AttesterSlashings:
			names = append(names, attesterSlashingsTopic(fd))
		case Attestations:
			for i := 0; i < AttestationSubnetCount; i++ {
				names = append(names, attestationTopic(fd, i))
			}
		}
	}
	return names
}

func beaconBlocksTopic(fd string) string {
	return fmt.Sprintf("/eth2/%s/beacon_block/ssz_snappy", fd)
}

func voluntaryExitsTopic(fd string) string {
	return fmt.Sprintf("/eth2/%s/voluntary_exit/ssz_snappy", fd)
}

func proposerSlashingsTopic(fd string) string {
	return fmt.Sprintf("/eth2/%s/proposer_slashing/ssz_snappy", fd)
}

func attesterSlashingsTopic(fd string) string {
	return fmt.Sprintf("/eth2/%s/attester_slashing/ssz_snappy", fd)
}

func attestationTopic(fd string, subnet int) string {
	return fmt.Sprintf("/eth2/%s/beacon_attestation_%d/ssz_snappy", fd, subnet)
}
