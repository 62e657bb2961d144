package models

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the store, the ledger and the RPC layer.
// Wrap them with fmt.Errorf("...: %w") and test with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("already exists")
	ErrNotMember           = errors.New("user is not a member of this group")
	ErrConcurrencyConflict = errors.New("concurrent update, retry the operation")
	ErrValidation          = errors.New("validation failed")
	ErrForbidden           = errors.New("forbidden")
)

// ValidationError describes malformed or missing input. It is always returned
// before anything has been written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Invalid returns a ValidationError for field.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
