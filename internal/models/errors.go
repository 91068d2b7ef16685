package models

import (
	"errors"
	"fmt"
)

// ErrAuthMissing is returned when an authenticated call is attempted with
// no stored session token. Callers must stop the workflow and send the user
// to login, never proceed without a token.
var ErrAuthMissing = errors.New("no session token found")

// APIError represents a non-2xx response that is neither a field
// validation failure nor a delete conflict.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ledger API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// ValidationError carries a 422 response. Fields maps field name to
// message; Message holds the flat server message when no field map was
// provided.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// ConflictError is a mutation blocked by dependent records, e.g. deleting a
// category that still has transactions. It is surfaced as its own error
// dialog, never as a field error.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Message
}

// IsAuthMissing reports whether err is the missing-session failure.
func IsAuthMissing(err error) bool {
	return errors.Is(err, ErrAuthMissing)
}

// AsValidation unwraps err as a ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// AsConflict unwraps err as a ConflictError.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	ok := errors.As(err, &ce)
	return ce, ok
}
