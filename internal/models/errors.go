package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidResult is wrapped by every ExecutionResult validation failure.
	ErrInvalidResult = errors.New("invalid execution result")

	// ErrInvalidUpdate is wrapped by every StreamUpdate validation failure.
	ErrInvalidUpdate = errors.New("invalid stream update")
)

// FieldError describes a single field that breaks a record's contract.
type FieldError struct {
	Record  string // "execution_result" or "stream_update"
	Field   string // JSON name of the offending field
	Message string // Human-readable reason
	kind    error
}

// Error implements the error interface for FieldError.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Record, e.Field, e.Message)
}

// Unwrap returns the record-level sentinel so callers can use errors.Is.
func (e *FieldError) Unwrap() error {
	return e.kind
}

func resultFieldError(field, format string, args ...any) *FieldError {
	return &FieldError{
		Record:  "execution_result",
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		kind:    ErrInvalidResult,
	}
}

func updateFieldError(field, format string, args ...any) *FieldError {
	return &FieldError{
		Record:  "stream_update",
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		kind:    ErrInvalidUpdate,
	}
}
