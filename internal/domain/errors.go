package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing item.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate item id.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation signals a malformed or unrecognized request parameter.
	ErrValidation = errors.New("validation failed")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrPersistence signals a failure writing or reading the durable snapshot.
	ErrPersistence = errors.New("persistence failure")
)

// ValidationError names the offending parameter and why it was rejected.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Param, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a validation error for param.
func NewValidationError(param, reason string) error {
	return &ValidationError{Param: param, Reason: reason}
}

// Invalidf creates a validation error with a formatted reason.
func Invalidf(param, format string, args ...any) error {
	return &ValidationError{Param: param, Reason: fmt.Sprintf(format, args...)}
}
