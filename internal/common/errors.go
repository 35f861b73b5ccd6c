package common

import (
	"errors"
	"fmt"
)

// Business logic errors
var (
	// ErrNotLoaded is returned when a store operation runs before the
	// initial Load. This is a programmer error in the startup sequence.
	ErrNotLoaded = errors.New("note store not loaded")
)

// CapacityError signals that adding a note would exceed the per-category
// limit. User-facing and recoverable; the collection is left unchanged.
type CapacityError struct {
	Category string
	Limit    int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("capacity reached: at most %d %s note(s) allowed", e.Limit, e.Category)
}

// ValidationError signals a missing or malformed field on a request
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DeserializationError signals that a persisted blob could not be decoded.
// Callers recover by falling back to seed data; it is never user-facing.
type DeserializationError struct {
	Key string
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("unreadable blob at %q: %v", e.Key, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}
