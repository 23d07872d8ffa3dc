package succession

import (
	"errors"
	"fmt"
)

// The engine never lets a storage error reach the caller raw: every failure is
// translated into one of the error kinds below so route handlers can map it to
// an HTTP status and a message fit for direct display.

// ValidationError reports malformed or missing input fields. Fields maps each
// offending field name to a human-readable message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	for field, msg := range e.Fields {
		return fmt.Sprintf("%s: %s", field, msg)
	}
	return "invalid input"
}

// ConflictError reports an optimistic-lock version mismatch. It is recoverable:
// the caller should refetch and retry. The engine never retries internally.
type ConflictError struct {
	Entity string
	ID     string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s was modified by someone else. Please refresh and retry.", e.Entity, e.ID)
}

// InvalidTransitionError reports a status move not present in the transition
// table. Both states are carried for diagnostics.
type InvalidTransitionError struct {
	From CycleStatus
	To   CycleStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move cycle from %q to %q", e.From, e.To)
}

// PreconditionError reports a business rule violation that is not a status
// transition (deleting a cycle with positions, voting twice, editing a
// non-draft nomination, and so on).
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// AuthorizationError reports an actor lacking ownership or role for an
// operation.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

// ErrDuplicate is the store's uniqueness-violation signal. Store
// implementations wrap it so duplicate votes and scores can be turned into
// friendly errors instead of generic failures.
var ErrDuplicate = errors.New("duplicate record")

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func precondition(format string, args ...interface{}) *PreconditionError {
	return &PreconditionError{Message: fmt.Sprintf(format, args...)}
}
