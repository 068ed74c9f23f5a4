/*
errors.go - Centralized error types for the calendar engine

PURPOSE:
  All error values in one place. Callers inspect them with errors.Is /
  errors.As to decide whether to retry, alert, or report bad input.

ERROR CATEGORIES:
  1. Validation errors - a planning batch violates the inbound contract
  2. Store errors      - the persisted table cannot be read or written
  3. Lifecycle signals - nothing to reset

Note that MarkComplete on an unknown title is NOT an error: it returns
(false, nil). Roster titles legitimately may not match any planned entry.
*/
package calendar

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrStoreUnavailable is returned when the persisted table cannot be
	// reached for read or write. If it occurs before any write, the table
	// is unchanged and the operation is safe to retry.
	ErrStoreUnavailable = errors.New("calendar store unavailable")

	// ErrIncompleteWrite is returned when a write-back failed after the
	// table was cleared. The table is truncated and must be repaired by a
	// successful re-run; this is never swallowed.
	ErrIncompleteWrite = errors.New("calendar write incomplete: table cleared but not fully repopulated")

	// ErrEmptyCalendar is returned by ResetAll when the table holds no
	// data rows.
	ErrEmptyCalendar = errors.New("calendar is empty, nothing to reset")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports the first planning row that violates the inbound
// contract. The whole batch is rejected and the store is untouched.
type ValidationError struct {
	Row    int    // zero-based index into the batch
	Field  string // "title", "dates", "location"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("planning row %d: invalid %s: %s", e.Row, e.Field, e.Reason)
}

// StoreError wraps a store adapter failure with the operation that hit it.
type StoreError struct {
	Op  string // "read", "update", "clear", "replace"
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("calendar store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return ErrStoreUnavailable }

// IncompleteWriteError reports a torn write-back: Clear succeeded but
// AppendRows did not, leaving the table truncated.
type IncompleteWriteError struct {
	Rows int // rows that should have been written
	Err  error
}

func (e *IncompleteWriteError) Error() string {
	return fmt.Sprintf("calendar write incomplete: %d rows pending after clear: %v", e.Rows, e.Err)
}

func (e *IncompleteWriteError) Unwrap() error { return ErrIncompleteWrite }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStoreError returns true if the error indicates the persisted table
// could not be read or written.
func IsStoreError(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) || errors.Is(err, ErrIncompleteWrite)
}
