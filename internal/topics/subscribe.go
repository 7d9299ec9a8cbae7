package topics

import (
	"context"

	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/sirupsen/logrus"
)

// Handler receives each message payload as it arrives on a subscribed
// topic, handing off to the Message Decoder (spec §4.H). from is the
// publishing peer, needed by the resolver hook (spec §4.F) to enqueue
// identities not yet present in the live peer table.
type Handler func(topic string, from peer.ID, data []byte)

// Subscribe joins and subscribes to every name in names plus every
// custom topic verbatim (spec §4.G), wiring handler as the receive
// callback for each. A subscription error here is fatal per spec §7.
func Subscribe(ctx context.Context, ps *pubsub.PubSub, names, custom []string, handler Handler, log logrus.FieldLogger) error {
	all := make([]string, 0, len(names)+len(custom))
	all = append(all, names...)
	all = append(all, custom...)

	for _, name := range all {
		topic, err := ps.Join(name)
		if err != nil {
			return err
		}
		sub, err := topic.Subscribe()
		if err != nil {
			return err
		}
		go readLoop(ctx, sub, name, handler, log)
	}
	return nil
}

func readLoop(ctx context.Context, sub *pubsub.Subscription, name string, handler Handler, log logrus.FieldLogger) {
	for {
		msg, err := sub.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.WithError(err).WithField("topic", name).Debug("subscription read failed")
			continue
		}
		handler(name, msg.ReceivedFrom, msg.Data)
	}
}
