// Package errors provides error handling for tagstore.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - PII-safe error formatting
//
// It also defines the registry's error taxonomy as sentinel errors.
// Every failure surfaced by the tagging core is one of these kinds,
// wrapped with the offending identifier, and matchable with errors.Is.
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check error kind
//	if errors.IsNotFound(err) {
//	    // handle missing record
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinel errors for the tagging registry.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the kind.
var (
	// ErrValidation indicates a malformed or missing required field.
	// Never retried; the wrapped message names the entity and field.
	ErrValidation = New("validation failed")

	// ErrReference indicates a foreign identifier that does not resolve
	// (e.g. a tagging event referencing a nonexistent tag source).
	ErrReference = New("reference does not resolve")

	// ErrDuplicateKey indicates a uid collision on insert.
	ErrDuplicateKey = New("duplicate key")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = New("not found")

	// ErrStoreUnavailable indicates the store could not complete the
	// operation (timeout, closed connection). The only kind eligible
	// for caller-directed retry; the core performs no retries itself.
	ErrStoreUnavailable = New("store unavailable")
)

// IsValidation checks if an error is or wraps ErrValidation
func IsValidation(err error) bool {
	return err != nil && Is(err, ErrValidation)
}

// IsReference checks if an error is or wraps ErrReference
func IsReference(err error) bool {
	return err != nil && Is(err, ErrReference)
}

// IsDuplicateKey checks if an error is or wraps ErrDuplicateKey
func IsDuplicateKey(err error) bool {
	return err != nil && Is(err, ErrDuplicateKey)
}

// IsNotFound checks if an error is or wraps ErrNotFound
func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsStoreUnavailable checks if an error is or wraps ErrStoreUnavailable
func IsStoreUnavailable(err error) bool {
	return err != nil && Is(err, ErrStoreUnavailable)
}

// NewValidationError creates a validation error naming the offending
// entity and field, e.g. NewValidationError("tag_source", "name", "must not be empty").
func NewValidationError(entity, field, reason string) error {
	err := Wrapf(ErrValidation, "%s.%s %s", entity, field, reason)
	return WithDetailf(err, "Entity: %s, Field: %s", entity, field)
}

// NewReferenceError creates a reference error naming the dangling identifier.
func NewReferenceError(entity, uid string) error {
	return Wrapf(ErrReference, "%s %q", entity, uid)
}

// NewNotFoundError creates a not-found error naming the missing identifier.
func NewNotFoundError(entity, uid string) error {
	return Wrapf(ErrNotFound, "%s %q", entity, uid)
}

// NewDuplicateKeyError creates a duplicate-key error naming the colliding identifier.
func NewDuplicateKeyError(entity, uid string) error {
	return Wrapf(ErrDuplicateKey, "%s %q", entity, uid)
}

// WrapStoreUnavailable marks a driver or connection failure as retryable.
func WrapStoreUnavailable(err error, operation string) error {
	return Wrap(Wrap(ErrStoreUnavailable, err.Error()), operation)
}
