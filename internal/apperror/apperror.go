package apperror

import (
	"errors"
	"fmt"
)

// Code identifies the kind of failure. The HTTP layer maps codes to status codes.
type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeNotFound     Code = "NOT_FOUND"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeInternal     Code = "INTERNAL_ERROR"
)

// Detail points at a single offending field.
type Detail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a typed failure raised by the core.
type Error struct {
	Code    Code
	Message string
	Details []Detail
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports malformed or out-of-range input.
func Validation(message string, details ...Detail) *Error {
	return &Error{Code: CodeValidation, Message: message, Details: details}
}

// NotFound reports a record that is absent, soft-deleted or outside the caller's scope.
func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

func Unauthorized(message string, details ...Detail) *Error {
	return &Error{Code: CodeUnauthorized, Message: message, Details: details}
}

func Forbidden(message string, details ...Detail) *Error {
	return &Error{Code: CodeForbidden, Message: message, Details: details}
}

// Internal wraps an unexpected failure, usually from the store.
func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Message: "Unexpected error", Err: err}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == code
}
