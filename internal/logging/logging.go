// Package logging builds the logrus logger shared by every component. The
// teacher logs with bare log.Printf; this engine's events are inherently
// structured (peer ids, topics, byte counts, hex payload previews), which
// is exactly the shape the Prysm beacon-chain/p2p grounding files log with
// logrus's WithField/WithError chaining, so that idiom governs here
// instead of the teacher's plain log.Printf.
package logging

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds the root logger for the given -v/--verbosity value. Accepts
// the standard logrus level names (trace, debug, info, warn, error) plus
// "warning" as an alias; unrecognized values fall back to trace, matching
// the CLI surface's documented default.
func New(verbosity string) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(normalizeLevel(verbosity))
	if err != nil {
		lvl = logrus.TraceLevel
	}
	l.SetLevel(lvl)
	l.SetOutput(os.Stderr)
	return l
}

func normalizeLevel(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return "trace"
	}
	return v
}

// Component returns a logger scoped to a single component name, the way
// the grounding files tag every log line with the subsystem that emitted
// it.
func Component(base *logrus.Logger, name string) *logrus.Entry {
	return base.WithField("component", name)
}

// HexPreview renders data as a hex string, matching the spec's "data
// (hex)" field for the received-pubsub-message event. Full payloads are
// rendered; callers wanting a bounded preview should slice before calling.
func HexPreview(data []byte) string {
	return fmt.Sprintf("%x", data)
}
