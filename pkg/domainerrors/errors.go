// Package domainerrors provides coded errors that services return and the
// HTTP layer translates into status codes and JSON envelopes.
package domainerrors

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeValidation Code = "VALIDATION"
	CodeConflict   Code = "CONFLICT"
	CodeNotFound   Code = "NOT_FOUND"
	CodeInternal   Code = "INTERNAL"
)

// Error carries a machine-readable code alongside a human-readable message.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New constructs a coded error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code carried by err, or CodeInternal when err is not a
// coded error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
