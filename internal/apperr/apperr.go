// Package apperr defines the error taxonomy surfaced to API clients. Every
// failure a resolver reports is one of these codes; the GraphQL layer exposes
// the code (and field-level validation messages, when present) through the
// error extensions object.
package apperr

import "errors"

// Code identifies the kind of failure. The values follow common GraphQL
// server conventions so generic clients can dispatch on them.
type Code string

const (
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeInvalidInput    Code = "BAD_USER_INPUT"
	CodeConflict        Code = "CONFLICT"
	CodeForbidden       Code = "FORBIDDEN"
	CodeNotFound        Code = "NOT_FOUND"
	CodeInternal        Code = "INTERNAL_SERVER_ERROR"
)

// Error carries a machine-readable code, a human message and, for validation
// failures, a per-field message map listing every violated field at once.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string { return e.Message }

// Extensions implements the resolver error contract of graph-gophers; the
// returned map is embedded under "extensions" in the GraphQL error response.
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": string(e.Code)}
	if len(e.Fields) > 0 {
		ext["errors"] = e.Fields
	}
	return ext
}

// New builds an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Unauthenticated reports a missing, malformed or expired credential.
func Unauthenticated(message string) *Error {
	return New(CodeUnauthenticated, message)
}

// InvalidInput reports a validation failure with its field errors.
func InvalidInput(message string, fields map[string]string) *Error {
	return &Error{Code: CodeInvalidInput, Message: message, Fields: fields}
}

// Conflict reports a duplicate unique key (username, email or title).
func Conflict(message string) *Error { return New(CodeConflict, message) }

// Forbidden reports an authenticated caller that does not own the resource.
func Forbidden(message string) *Error { return New(CodeForbidden, message) }

// NotFound reports a referenced entity that does not exist.
func NotFound(message string) *Error { return New(CodeNotFound, message) }

// Internal wraps transient infrastructure failures without leaking detail.
func Internal(message string) *Error { return New(CodeInternal, message) }

// CodeOf extracts the taxonomy code from err, or CodeInternal when err is not
// an *Error.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}

// Is reports whether err is an *Error with the given code.
func Is(err error, code Code) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == code
}
