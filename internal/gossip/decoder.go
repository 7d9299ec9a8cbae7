// Package gossip implements the Message Decoder (spec §4.H): snappy
// decompression under a size cap followed by canonical SSZ dispatch,
// grounded on the teacher's snappy.Decode call in gossip.go and the
// domain-tagged msgIDFn immediately above it in the same file.
package gossip

import (
	"fmt"
	"strings"

	"github.com/golang/snappy"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/sirupsen/logrus"

	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/logging"
	"github.com/ETL-INTERNATIONAL/etls-eth2/internal/ssztypes"
)

// GossipMaxSize bounds decompressed payload size (spec §4.H/§9).
const GossipMaxSize = 1 << 20

// Decoder is the Message Decoder. Decode is disabled by default (spec
// §6, `-d/--decode`); when disabled only the raw-message event fires.
type Decoder struct {
	enabled bool
	log     logrus.FieldLogger
}

// New builds a Decoder. enabled mirrors the `-d/--decode` flag.
func New(enabled bool, log logrus.FieldLogger) *Decoder {
	return &Decoder{enabled: enabled, log: log}
}

// Handle is the Topic Engine's message callback (spec §4.G/§4.H). from
// is accepted but not required for decoding; callers that also run the
// Resolver Loop (spec §4.F) inspect it separately to enqueue unknown
// publishers.
func (d *Decoder) Handle(topic string, from peer.ID, data []byte) {
	d.log.WithFields(logrus.Fields{
		"topic": topic,
		"from":  from.String(),
		"size":  len(data),
		"data":  logging.HexPreview(data),
	}).Info("received pubsub message")

	if !d.enabled {
		return
	}

	payload := data
	if strings.HasSuffix(topic, "_snappy") {
		decoded, err := decompress(data)
		if err != nil {
			d.log.WithError(err).WithField("topic", topic).Warn("unable to decode message")
			return
		}
		payload = decoded
	}

	if err := d.dispatch(topic, payload); err != nil {
		d.log.WithError(err).WithField("topic", topic).Info("unable to decode message")
	}
}

func decompress(data []byte) ([]byte, error) {
	n, err := snappy.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("gossip: snappy decoded length: %w", err)
	}
	if n > GossipMaxSize {
		return nil, fmt.Errorf("gossip: decoded size %d exceeds cap %d", n, GossipMaxSize)
	}
	decoded, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("gossip: snappy decode: %w", err)
	}
	return decoded, nil
}

func (d *Decoder) dispatch(topic string, payload []byte) error {
	switch {
	case strings.Contains(topic, "/beacon_attestation_"):
		var v ssztypes.Attestation
		if err := v.UnmarshalSSZ(payload); err != nil {
			return err
		}
		d.log.WithField("slot", v.Data.Slot).Info("decoded Attestation")
	case strings.Contains(topic, "/beacon_block/"):
		var v ssztypes.SignedBeaconBlock
		if err := v.UnmarshalSSZ(payload); err != nil {
			return err
		}
		d.log.WithField("slot", v.Block.Slot).Info("decoded SignedBeaconBlock")
	case strings.Contains(topic, "/voluntary_exit/"):
		var v ssztypes.SignedVoluntaryExit
		if err := v.UnmarshalSSZ(payload); err != nil {
			return err
		}
		d.log.WithField("validator_index", v.Exit.ValidatorIndex).Info("decoded SignedVoluntaryExit")
	case strings.Contains(topic, "/proposer_slashing/"):
		var v ssztypes.ProposerSlashing
		if err := v.UnmarshalSSZ(payload); err != nil {
			return err
		}
		d.log.WithField("slot", v.Header1.Header.Slot).Info("decoded ProposerSlashing")
	case strings.Contains(topic, "/attester_slashing/"):
		var v ssztypes.AttesterSlashing
		if err := v.UnmarshalSSZ(payload); err != nil {
			return err
		}
		d.log.Info("decoded AttesterSlashing")
	case strings.Contains(topic, "/aggregate_and_proof/"):
		var v ssztypes.AggregateAndProof
		if err := v.UnmarshalSSZ(payload); err != nil {
			return err
		}
		d.log.WithField("aggregator_index", v.AggregatorIndex).Info("decoded AggregateAndProof")
	default:
		return fmt.Errorf("gossip: no canonical decode for topic %q", topic)
	}
	return nil
}
