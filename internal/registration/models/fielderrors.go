package models

import (
	"fmt"
	"strings"
)

// FieldError describes a single validation failure, addressed by the JSON
// path of the offending field.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Field error codes surfaced in 400 responses.
const (
	ErrCodeRequired     = "required"
	ErrCodeInvalidEmail = "invalid_email"
	ErrCodeInvalidEnum  = "invalid_enum_value"
	ErrCodeOutOfRange   = "out_of_range"
)

// FieldErrors aggregates every field-level failure found in one payload so
// the client can re-prompt for all of them at once.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "invalid registration data"
	}
	paths := make([]string, 0, len(e))
	for _, fe := range e {
		paths = append(paths, fe.Path)
	}
	return fmt.Sprintf("invalid registration data: %s", strings.Join(paths, ", "))
}

// Has reports whether any error references the given field path.
func (e FieldErrors) Has(path string) bool {
	for _, fe := range e {
		if fe.Path == path {
			return true
		}
	}
	return false
}
