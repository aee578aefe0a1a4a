package errors

import (
	"errors"
	"net/http"
)

// Kind is the closed set of failure categories a request can end with.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Status returns the canonical HTTP status of the kind.
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

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindUnauthorized:
		return "UnauthorizedError"
	case KindForbidden:
		return "ForbiddenError"
	case KindNotFound:
		return "NotFoundError"
	case KindConflict:
		return "ConflictError"
	default:
		return "InternalError"
	}
}

// Default client-facing messages
const (
	MsgInvalidInput  = "Invalid input"
	MsgUnauthorized  = "Authentication required"
	MsgForbidden     = "Access denied"
	MsgNotFound      = "Resource not found"
	MsgConflict      = "Resource conflict"
	MsgInternalError = "Internal server error"
)

// Error is a classified failure. Details is safe to send to clients; Err is the
// underlying cause and is only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Details interface{}
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status for the error's kind.
func (e *Error) Status() int {
	return e.Kind.Status()
}

// PublicMessage is the message a client may see. Internal failures never expose
// their message.
func (e *Error) PublicMessage() string {
	if e.Kind == KindInternal {
		return MsgInternalError
	}
	return e.Message
}

func newError(kind Kind, message, fallback string) *Error {
	if message == "" {
		message = fallback
	}
	return &Error{Kind: kind, Message: message}
}

// Validation creates a 400 error carrying the violation details.
func Validation(message string, details interface{}) *Error {
	err := newError(KindValidation, message, MsgInvalidInput)
	err.Details = details
	return err
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) *Error {
	return newError(KindUnauthorized, message, MsgUnauthorized)
}

// Forbidden creates a 403 error.
func Forbidden(message string) *Error {
	return newError(KindForbidden, message, MsgForbidden)
}

// NotFound creates a 404 error.
func NotFound(message string) *Error {
	return newError(KindNotFound, message, MsgNotFound)
}

// Conflict creates a 409 error.
func Conflict(message string) *Error {
	return newError(KindConflict, message, MsgConflict)
}

// Internal wraps an unclassified failure.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: MsgInternalError, Err: err}
}

// From classifies any error. Errors that do not carry a kind become internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// KindOf returns the kind of err, KindInternal for unclassified errors.
func KindOf(err error) Kind {
	if appErr := From(err); appErr != nil {
		return appErr.Kind
	}
	return KindInternal
}
