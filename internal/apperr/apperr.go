package apperr

import (
	"errors"
	"fmt"
)

// Kind is the stable machine-readable error class surfaced to API
// clients. The string values are part of the API contract.
type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindValidation          Kind = "validation"
	KindInvalidScore        Kind = "invalid_score"
	KindDeadlineExceeded    Kind = "deadline_exceeded"
	KindRoundNotClosed      Kind = "round_not_closed"
	KindDuplicateSubmission Kind = "duplicate_submission"
	KindNotEditable         Kind = "not_editable"
	KindAlreadyFinalized    Kind = "already_finalized"
	KindForbidden           Kind = "forbidden"
	KindInternal            Kind = "internal"
)

// Error carries a Kind plus a human-readable message. Internal holds
// the underlying cause for logs; it is never serialized to clients.
type Error struct {
	Kind     Kind
	Message  string
	Internal error
}

func (e *Error) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Internal)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Internal
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a client-facing message. The cause stays
// internal; only kind and message cross the API boundary.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Internal: err}
}

// KindOf extracts the Kind from an error chain, defaulting to
// KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message for an error chain.
// Unclassified errors collapse to a generic message so storage and
// stack detail never leaks.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal error"
}

// IsKind reports whether the error chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
