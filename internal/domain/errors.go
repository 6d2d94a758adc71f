package domain

import (
	"errors"
	"fmt"
)

// ErrRateNotSet is returned by operations that need an exchange rate
// before one has been configured.
var ErrRateNotSet = errors.New("exchange rate is not set")

// ErrNotFound is returned when a lookup by id has no match.
var ErrNotFound = errors.New("not found")

// ParseError reports malformed numeric input for a named field.
type ParseError struct {
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// DivisionByZeroError reports a conversion attempted with a zero rate.
// The positive-rate invariant should make this unreachable, but the
// conversion rule guards it anyway.
type DivisionByZeroError struct {
	Op string
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("division by zero in %s", e.Op)
}

// PreconditionError reports an operation attempted without the state it
// requires (missing rate, empty cart, non-positive quantity, ...).
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

// StorageError wraps a persistence read/write failure. The engine state
// that triggered the operation is always retained by the caller.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
