package enr

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Aggregator accumulates fork digest and ENRFieldPair across every
// bootstrap record seen at startup, applying the first-wins rule from
// spec §4.B: the first value wins, later differing values are logged as
// warnings but never displace it. A CLI-supplied fork digest always
// overrides whatever the bootstrap records produced.
type Aggregator struct {
	log logrus.FieldLogger

	forkDigest   *[4]byte
	forkOverride *[4]byte
	fieldPair    *FieldPair
}

// NewAggregator builds an Aggregator. cliForkDigest is nil when the
// operator did not pass --forkdigest.
func NewAggregator(log logrus.FieldLogger, cliForkDigest *[4]byte) *Aggregator {
	return &Aggregator{log: log, forkOverride: cliForkDigest}
}

// Observe folds one decoded bootstrap record's fork digest and field pair
// into the aggregator.
func (a *Aggregator) Observe(dr DecodedRecord) {
	if dr.ForkID != nil {
		if a.forkDigest == nil {
			fd := dr.ForkID.ForkDigest
			a.forkDigest = &fd
		} else if *a.forkDigest != dr.ForkID.ForkDigest {
			a.log.WithFields(logrus.Fields{
				"kept": fmt.Sprintf("%x", *a.forkDigest),
				"seen": fmt.Sprintf("%x", dr.ForkID.ForkDigest),
			}).Warn("bootstrap records disagree on fork digest, keeping first-seen value")
		}
	}
	if dr.FieldPair != nil {
		if a.fieldPair == nil {
			fp := *dr.FieldPair
			a.fieldPair = &fp
		} else if !a.fieldPair.Equal(*dr.FieldPair) {
			a.log.Warn("bootstrap records disagree on eth2 ENR field, keeping first-seen value")
		}
	}
}

// FieldPair returns the resolved ENRFieldPair, or nil if no bootstrap
// record carried one.
func (a *Aggregator) FieldPair() *FieldPair { return a.fieldPair }

// errNoForkDigest is returned by Resolve when neither any bootstrap record
// nor the CLI supplied a fork digest — fatal per spec §4.B/§7.
var errNoForkDigest = fmt.Errorf("no fork digest available from bootstrap records or --forkdigest")

// Resolve returns the final fork digest: the CLI override if supplied
// (with a warning if it disagrees with the bootstrap-derived value),
// otherwise the bootstrap-derived value. Returns an error if neither
// source produced one.
func (a *Aggregator) Resolve() ([4]byte, error) {
	if a.forkOverride != nil {
		if a.forkDigest != nil && *a.forkDigest != *a.forkOverride {
			a.log.WithFields(logrus.Fields{
				"bootstrap": fmt.Sprintf("%x", *a.forkDigest),
				"override":  fmt.Sprintf("%x", *a.forkOverride),
			}).Warn("--forkdigest overrides value derived from bootstrap records")
		}
		return *a.forkOverride, nil
	}
	if a.forkDigest != nil {
		return *a.forkDigest, nil
	}
	return [4]byte{}, errNoForkDigest
}

// ErrNoForkDigest exposes the sentinel for callers that need to
// distinguish this specific fatal condition.
func ErrNoForkDigest() error { return errNoForkDigest }
