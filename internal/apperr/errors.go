package apperr

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
)

// Kind tags the variant of an application error.
type Kind int

const (
	// KindApp is the generic application error with a caller-chosen status.
	KindApp Kind = iota
	// KindNotFound reports a missing resource (404).
	KindNotFound
	// KindValidation reports rejected input (422).
	KindValidation
	// KindAuthentication reports missing or bad credentials (401).
	KindAuthentication
	// KindAuthorization reports insufficient permissions (403).
	KindAuthorization
)

// String returns the type name sent to clients in the error envelope.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFoundError"
	case KindValidation:
		return "ValidationError"
	case KindAuthentication:
		return "AuthenticationError"
	case KindAuthorization:
		return "AuthorizationError"
	default:
		return "AppException"
	}
}

// Default messages.
const (
	DefaultAuthenticationMessage = "Authentication failed"
	DefaultAuthorizationMessage  = "Insufficient permissions"
)

// Error is an application error carrying a client-visible message, an HTTP
// status code and optional structured details. Fields are fixed at
// construction; accessors return copies where mutation would be possible.
type Error struct {
	kind    Kind
	message string
	status  int
	details map[string]any
	cause   error
}

// Option customizes an Error during construction.
type Option func(*Error)

// WithCause attaches an underlying error. The cause is reachable through
// errors.Is/As and is logged, but it is never sent to clients.
func WithCause(err error) Option {
	return func(e *Error) {
		e.cause = err
	}
}

func newError(kind Kind, message string, status int, details map[string]any, opts ...Option) *Error {
	if status < 400 || status > 599 {
		status = http.StatusInternalServerError
	}
	if message == "" {
		message = http.StatusText(status)
	}

	e := &Error{
		kind:    kind,
		message: message,
		status:  status,
		details: copyDetails(details),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// New creates a generic application error. A status outside 400-599
// (including zero) becomes 500, and an empty message becomes the status text.
func New(message string, status int, details map[string]any, opts ...Option) *Error {
	return newError(KindApp, message, status, details, opts...)
}

// NotFound reports that resource could not be found. The identifier, when not
// empty, is appended to the message: "User not found: 42".
func NotFound(resource string, identifier string, opts ...Option) *Error {
	message := fmt.Sprintf("%s not found", resource)
	if identifier != "" {
		message += ": " + identifier
	}
	return newError(KindNotFound, message, http.StatusNotFound, nil, opts...)
}

// Validation reports rejected input with optional per-field details.
func Validation(message string, details map[string]any, opts ...Option) *Error {
	return newError(KindValidation, message, http.StatusUnprocessableEntity, details, opts...)
}

// Authentication reports failed authentication. An empty message uses
// DefaultAuthenticationMessage.
func Authentication(message string, opts ...Option) *Error {
	if message == "" {
		message = DefaultAuthenticationMessage
	}
	return newError(KindAuthentication, message, http.StatusUnauthorized, nil, opts...)
}

// Authorization reports insufficient permissions. An empty message uses
// DefaultAuthorizationMessage.
func Authorization(message string, opts ...Option) *Error {
	if message == "" {
		message = DefaultAuthorizationMessage
	}
	return newError(KindAuthorization, message, http.StatusForbidden, nil, opts...)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Kind returns the variant tag.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the client-visible message.
func (e *Error) Message() string { return e.message }

// StatusCode returns the HTTP status code.
func (e *Error) StatusCode() int { return e.status }

// Details returns a copy of the structured details; never nil.
func (e *Error) Details() map[string]any { return copyDetails(e.details) }

// As finds the first *Error in err's chain. A typed nil *Error is not a match.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) && appErr != nil {
		return appErr, true
	}
	return nil, false
}

func copyDetails(details map[string]any) map[string]any {
	if details == nil {
		return map[string]any{}
	}
	return maps.Clone(details)
}
