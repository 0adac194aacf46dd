// Package gen generates the Go migration-snapshot library for an ordered
// list of schema versions: shared column factories, shared shape types, one
// snapshot type per non-initial version, and the MigrationSteps/StepByStep
// dispatcher pair.
package gen

import (
	"errors"
	"fmt"
)

// Sentinel errors for generation-time failures. These are programmer errors
// in the caller layer: generation aborts and no partial artifact is valid.
var (
	// ErrInvalidInput indicates a precondition violation in the input model.
	ErrInvalidInput = errors.New("sqlstep: invalid generator input")
	// ErrUnsortedVersions indicates a version list that is not strictly
	// ascending with unique ordinals.
	ErrUnsortedVersions = errors.New("sqlstep: versions are not strictly ascending")
)

// InvalidInputError reports an input value the generator cannot accept,
// naming the offending entity.
type InvalidInputError struct {
	Element string // Logical name of the offending element, if known.
	Message string
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("sqlstep: invalid input for %q: %s", e.Element, e.Message)
	}
	return fmt.Sprintf("sqlstep: invalid input: %s", e.Message)
}

// Is reports whether the target matches the sentinel error for
// InvalidInputError.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInvalidInputError creates a new InvalidInputError.
func NewInvalidInputError(element, message string) *InvalidInputError {
	return &InvalidInputError{Element: element, Message: message}
}
