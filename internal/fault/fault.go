// Package fault defines the typed failure taxonomy shared by the identity store,
// lifecycle services, and the HTTP layer. Services return these instead of raw
// errors so callers can map each kind to a status and a user-facing message.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// KindValidation is a missing or malformed required field.
	KindValidation Kind = iota + 1
	// KindConflict is a uniqueness or state-precondition violation.
	KindConflict
	// KindNotFound is a referenced entity that does not exist.
	KindNotFound
	// KindUnauthorized is an absent or invalid session.
	KindUnauthorized
	// KindForbidden is an authenticated caller with insufficient role or scope.
	KindForbidden
)

// Error is a classified failure with a human-readable reason.
// Field is set for validation failures only.
type Error struct {
	Kind  Kind
	Field string
	Msg   string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	return e.Msg
}

// Validation returns a field-level validation failure.
func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Field: field, Msg: msg}
}

// Validationf returns a validation failure with a formatted message.
func Validationf(field, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Field: field, Msg: fmt.Sprintf(format, args...)}
}

// Conflict returns a uniqueness or precondition failure.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Msg: msg}
}

// Conflictf returns a conflict failure with a formatted message.
func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// NotFound returns a missing-entity failure.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Unauthorized returns a missing/invalid-session failure. The message is
// deliberately generic; it must not reveal which check failed.
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

// Forbidden returns an insufficient-privilege failure. The message is
// deliberately generic; it must not reveal which check failed.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Msg: msg}
}

// KindOf returns the Kind of err, or 0 when err is not a fault error.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsConflict reports whether err is a conflict failure.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsUnauthorized reports whether err is an unauthorized failure.
func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }

// IsForbidden reports whether err is a forbidden failure.
func IsForbidden(err error) bool { return KindOf(err) == KindForbidden }
