// Package apperrors defines the error taxonomy surfaced by all core
// operations. Every error carries a stable machine-readable kind plus a
// human-readable message; handlers map kinds to HTTP status codes.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind is the stable machine-readable classification of an error.
type Kind string

const (
	KindValidation    Kind = "VALIDATION_ERROR"
	KindUnauthorized  Kind = "UNAUTHORIZED"
	KindForbidden     Kind = "FORBIDDEN"
	KindNotFound      Kind = "NOT_FOUND"
	KindQuotaExceeded Kind = "QUOTA_EXCEEDED"
	KindCapacity      Kind = "CAPACITY_ERROR"
	KindConflict      Kind = "CONFLICT"
	KindInternal      Kind = "INTERNAL"
)

// Error is an error with a taxonomy kind. It supports errors.Is/As and
// unwrapping of a wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// New creates an error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind wrapping an underlying cause.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// Validation reports malformed or contradictory input.
func Validation(format string, args ...interface{}) *Error {
	return New(KindValidation, format, args...)
}

// Unauthorized reports a missing or invalid credential or API key.
func Unauthorized(format string, args ...interface{}) *Error {
	return New(KindUnauthorized, format, args...)
}

// Forbidden reports an authenticated actor lacking permission for the target.
func Forbidden(format string, args ...interface{}) *Error {
	return New(KindForbidden, format, args...)
}

// NotFound reports an absent referenced entity.
func NotFound(format string, args ...interface{}) *Error {
	return New(KindNotFound, format, args...)
}

// QuotaExceeded reports a role-based listing-count limit being hit.
func QuotaExceeded(format string, args ...interface{}) *Error {
	return New(KindQuotaExceeded, format, args...)
}

// Capacity reports the per-listing photo limit being hit.
func Capacity(format string, args ...interface{}) *Error {
	return New(KindCapacity, format, args...)
}

// Conflict reports a uniqueness violation (duplicate email, slug, review).
func Conflict(format string, args ...interface{}) *Error {
	return New(KindConflict, format, args...)
}

// Internal wraps an unexpected failure from a collaborator.
func Internal(err error, format string, args ...interface{}) *Error {
	return Wrap(KindInternal, err, format, args...)
}

// KindOf extracts the taxonomy kind from err, or KindInternal when err is
// not part of the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
