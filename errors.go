package metsysd

import (
	"errors"
	"fmt"
)

// Error kinds returned by definition and installer operations
var (
	// ErrHomeDirectoryNotFound indicates the user unit directory could not be computed
	ErrHomeDirectoryNotFound = errors.New("metsysd: home directory not found")

	// ErrFileCreate indicates the unit file could not be written to the install directory
	ErrFileCreate = errors.New("metsysd: unit file create failed")

	// ErrReloadSpawn indicates the supervisor reload process could not be started
	ErrReloadSpawn = errors.New("metsysd: reload spawn failed")

	// ErrInvalidName indicates a service name unusable as a unit file name
	ErrInvalidName = errors.New("metsysd: invalid service name")

	// ErrInvalidConfig indicates an inconsistent manager configuration
	ErrInvalidConfig = errors.New("metsysd: invalid manager config")
)

// OpError represents an error from an installer operation
type OpError struct {
	// Op is the operation that failed
	Op Operation
	// Path is the file or directory involved in the operation
	Path string
	// Kind is one of the package error kinds (ErrFileCreate, ...)
	Kind error
	// Err is the underlying error, may be nil
	Err error
	// Hint is an optional remedy shown to the operator
	Hint string
}

// Error returns a formatted error message
func (e *OpError) Error() string {
	msg := fmt.Sprintf("%s %q: %v", e.Op.String(), e.Path, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Hint != "" {
		msg += " (hint: " + e.Hint + ")"
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As
func (e *OpError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// HintOf returns the operator hint carried by err, if any
func HintOf(err error) string {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Hint
	}
	return ""
}
