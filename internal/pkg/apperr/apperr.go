// Package apperr defines the error taxonomy shared by all services:
// Validation, NotFound, Conflict and Internal. Handlers map the kind to an
// HTTP status with Status and render the message with Message.
package apperr

import "errors"

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Validation reports malformed or missing required input.
func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound reports a referenced id that does not exist.
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict reports a violated precondition (e.g. car not available).
func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal wraps unexpected store/infra failures behind an opaque message.
func Internal(message string) error {
	return &Error{Kind: KindInternal, Message: message}
}

// Status returns the HTTP status code for err. Errors outside the taxonomy
// are treated as internal.
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindValidation:
			return 400
		case KindNotFound:
			return 404
		case KindConflict:
			return 409
		}
	}
	return 500
}

// Message returns the client-facing message for err. Unexpected errors are
// masked so infra details never leak to callers.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "Internal Server Error"
}

// IsKind reports whether err belongs to the taxonomy with the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
