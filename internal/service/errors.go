package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound signals a referenced entity id that does not exist. It is only
// returned by mark/delete lookups when strict lookups are enabled; the
// default lenient policy turns the same condition into a silent no-op.
var ErrNotFound = errors.New("not found")

// ValidationError reports missing required fields or an invoice number
// collision. It is always raised before any mutation, so the caller can
// retry with corrected input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// ConflictError reports an operation that would break referential integrity,
// such as deleting a vehicle that sales still reference.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// persistErr wraps a store failure. Persistence errors are always surfaced to
// the caller, never swallowed: they indicate an incomplete multi-step
// operation.
func persistErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// isNotFound distinguishes a genuinely absent record from a store failure.
// Only the former may take the lenient/strict lookup branch; everything else
// is a persistence error and must reach the caller.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
