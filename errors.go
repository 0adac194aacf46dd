package sqlstep

import (
	"errors"
	"fmt"
)

// Standard sentinel errors surfaced by generated code and the step runner.
var (
	// ErrUnknownVersion is returned by a generated step function when the
	// current version matches no known migration source.
	ErrUnknownVersion = errors.New("sqlstep: unknown migration source version")

	// ErrNoProgress is returned by RunMigrationSteps when a step yields a
	// version that does not advance past its input.
	ErrNoProgress = errors.New("sqlstep: migration step did not advance the version")
)

// UnknownVersionError reports a migration dispatch over a version that has no
// registered step. It carries the offending value.
type UnknownVersionError struct {
	version int64
}

// Error returns the error string.
func (e *UnknownVersionError) Error() string {
	return fmt.Sprintf("sqlstep: unknown migration source version %d", e.version)
}

// Is reports whether the target error matches UnknownVersionError.
// This allows errors.Is(err, ErrUnknownVersion) to return true.
func (e *UnknownVersionError) Is(err error) bool {
	return err == ErrUnknownVersion
}

// Version returns the version that failed to dispatch.
func (e *UnknownVersionError) Version() int64 { return e.version }

// NewUnknownVersionError returns a new UnknownVersionError for the given
// source version. Generated dispatchers call this from their default case.
func NewUnknownVersionError(version int64) *UnknownVersionError {
	return &UnknownVersionError{version: version}
}

// IsUnknownVersion returns true if the error is an UnknownVersionError.
func IsUnknownVersion(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownVersionError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownVersion)
}
