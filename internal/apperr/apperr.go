// Package apperr classifies errors into the engine's two non-silent
// tiers (see spec §7): fatal-at-startup conditions that must exit the
// process with status 1, and recoverable conditions that are logged and
// swallowed by the caller. Tier-3 ("silently handled") conditions never
// become errors at all; they are just log calls at trace/debug level.
package apperr

import "errors"

// fatalError marks an error as a tier-1, fatal-at-startup condition.
type fatalError struct{ err error }

func (f *fatalError) Error() string { return f.err.Error() }
func (f *fatalError) Unwrap() error { return f.err }

// Fatal wraps err so IsFatal reports true for it and everything that
// wraps it. Use for the conditions spec §7 tier 1 names: empty bootstrap
// list, no overlay-dialable bootstraps, missing fork digest, malformed
// bind address, subscription failure.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &fatalError{err: err}
}

// IsFatal reports whether err (or anything it wraps) was produced by Fatal.
func IsFatal(err error) bool {
	var f *fatalError
	return errors.As(err, &f)
}
