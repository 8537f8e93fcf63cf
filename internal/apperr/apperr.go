// Package apperr defines the closed set of typed failures used across the
// application. Every expected failure — a missing resource, a rejected
// payload, a duplicate email — is represented by an *Error carrying a Kind
// and a human-readable message. The HTTP layer never chooses error status
// codes itself: the translator middleware derives the status from the Kind
// (see internal/http/middleware/errors.go), which keeps the mapping in one
// place.
//
// Conventions:
//   - Services construct failures with the kind constructors (NotFound,
//     Conflict, …) and return them unchanged up the call chain.
//   - Intermediate layers must not wrap-and-replace a failure; they may
//     annotate logs but the *Error reaches the translator as constructed.
//   - Any error that is not an *Error (or carries KindUnknown) is a defect:
//     it maps to 500 and its message is hidden outside development mode.
package apperr

import (
	"errors"
	"net/http"
)

// Kind enumerates the recognized failure categories. The zero value is
// KindUnknown so that an improperly constructed Error degrades to a defect
// rather than accidentally claiming an operational status.
type Kind int

const (
	// KindUnknown marks defects: unexpected errors that must not leak
	// internal detail to clients.
	KindUnknown Kind = iota
	// KindValidation marks payloads rejected by the schema validator.
	KindValidation
	// KindUnauthorized marks requests lacking valid credentials.
	KindUnauthorized
	// KindForbidden marks authenticated requests without permission.
	KindForbidden
	// KindNotFound marks lookups of resources that do not exist.
	KindNotFound
	// KindConflict marks writes that collide with existing state
	// (e.g. a duplicate unique field).
	KindConflict
)

// Status returns the HTTP status code derived from the kind. The mapping is
// total: unknown kinds map to 500.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// String returns a short identifier for the kind, used in logs.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is a typed, terminal failure. It is immutable by convention: once
// constructed it propagates unchanged until the translator consumes it.
type Error struct {
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Status returns the HTTP status code for the failure.
func (e *Error) Status() int { return e.Kind.Status() }

// Operational reports whether the failure is a recognized, expected
// condition that is safe to expose to clients verbatim. Defects
// (KindUnknown) are not operational.
func (e *Error) Operational() bool { return e.Kind != KindUnknown }

// newError applies the kind's default message when msg is empty.
func newError(kind Kind, msg, def string) *Error {
	if msg == "" {
		msg = def
	}
	return &Error{Kind: kind, Message: msg}
}

// NotFound constructs a 404 failure for a missing resource.
func NotFound(msg string) *Error {
	return newError(KindNotFound, msg, "Resource not found")
}

// Validation constructs a 400 failure for a rejected payload.
func Validation(msg string) *Error {
	return newError(KindValidation, msg, "Validation failed")
}

// Unauthorized constructs a 401 failure.
func Unauthorized(msg string) *Error {
	return newError(KindUnauthorized, msg, "Unauthorized")
}

// Forbidden constructs a 403 failure.
func Forbidden(msg string) *Error {
	return newError(KindForbidden, msg, "Forbidden")
}

// Conflict constructs a 409 failure for duplicate or colliding state.
func Conflict(msg string) *Error {
	return newError(KindConflict, msg, "Resource already exists")
}

// From extracts the typed failure from err, if any. It uses errors.As so
// failures survive fmt.Errorf("%w", …) wrapping.
func From(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
