// Package neaterr defines the structured error kinds surfaced by the
// NEAT core, as opposed to the boolean no-ops (Saturated, already-present
// connection) that stay internal to a Genome.
package neaterr

import "github.com/pkg/errors"

// Kind classifies an error raised by the core so callers can branch on it
// without string matching.
type Kind int

const (
	// KindIO wraps a failure reading or writing a file.
	KindIO Kind = iota
	// KindMalformedRecord wraps a failure parsing an external record.
	KindMalformedRecord
	// KindInvalidConfig flags a configuration value that violates an
	// invariant the driver would otherwise silently corrupt.
	KindInvalidConfig
	// KindDuplicateNode flags an attempt to add a node ID that already
	// exists; this is a programming error and aborts the run.
	KindDuplicateNode
)

// Error is a classified, wrapped error.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// IO wraps err as an I/O failure.
func IO(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindIO, Err: errors.Wrap(err, msg)}
}

// MalformedRecord wraps err as a malformed external record.
func MalformedRecord(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindMalformedRecord, Err: errors.Wrap(err, msg)}
}

// InvalidConfigf builds a KindInvalidConfig error from a format string.
func InvalidConfigf(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidConfig, Err: errors.Errorf(format, args...)}
}

// DuplicateNode builds a KindDuplicateNode error for the given node ID.
func DuplicateNode(id uint16) error {
	return &Error{Kind: KindDuplicateNode, Err: errors.Errorf("node %d already exists in genome", id)}
}

// Is reports whether err (or anything it wraps) is a *Error of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
