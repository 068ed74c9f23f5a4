/*
Package calendar provides the training-calendar reconciliation and
status-lifecycle engine.

PURPOSE:
  This package contains the core logic for administering planned training
  events. A planning upload is merged into the persisted calendar table
  (reconciliation), and later roster submissions drive completion status
  transitions (lifecycle).

KEY CONCEPTS IN THIS FILE (types.go):
  - Entry: One planned training event with a stable identity and a status
  - Status: Pending/Completed lifecycle state
  - PlanningRow: One row of an uploaded planning batch
  - Column constants: The fixed column order of the persisted table

DESIGN PRINCIPLES:
  1. Identity stability: an entry's ID is assigned once and never changes
  2. Non-destructive merge: reconciliation never deletes entries
  3. Raw-row fidelity: rows untouched by a merge round-trip verbatim,
     byte for byte, so a half-migrated or hand-edited table survives
  4. Single writer: all read-modify-write cycles are serialized

SEE ALSO:
  - reconcile.go: The merge algorithm
  - lifecycle.go: Completion transitions and bulk reset
  - store.go: Persistence contract
*/
package calendar

import (
	"strconv"
	"strings"
)

// =============================================================================
// STATUS - Lifecycle state of a calendar entry
// =============================================================================

type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// NoRealization is the realization-date placeholder for entries that have
// not been completed.
const NoRealization = "-"

// =============================================================================
// TABLE LAYOUT - Fixed column order of the persisted table
// =============================================================================

// Column positions are part of the persistence contract. Any existing
// persisted table must round-trip through these exact positions.
const (
	ColID = iota
	ColTitle
	ColPlannedRange
	ColLocation
	ColStatus
	ColRealization

	ColumnCount
)

// Header returns the header row written ahead of the data rows by store
// implementations that persist one (sheets, CSV). SQL-backed stores map
// the same order onto named columns.
func Header() []string {
	return []string{"ID", "TITLE", "PLANNED_DATES", "LOCATION", "STATUS", "REALIZATION"}
}

// =============================================================================
// ENTRY - Parsed view of one calendar row
// =============================================================================

// Entry is the typed view of one calendar row. The engine itself works on
// raw rows to preserve unknown or malformed cells verbatim; Entry exists
// for read-only consumers (API listing, tests).
type Entry struct {
	ID           int
	Title        string
	PlannedRange string
	Location     string
	Status       Status
	Realization  string
}

// EntryFromRow parses a raw row into an Entry. Short rows are padded with
// empty cells and an unparseable ID is coerced to 0, mirroring how the
// merge coerces IDs when computing the high-water mark.
func EntryFromRow(row []string) Entry {
	row = padRow(row)
	return Entry{
		ID:           coerceID(row[ColID]),
		Title:        row[ColTitle],
		PlannedRange: row[ColPlannedRange],
		Location:     row[ColLocation],
		Status:       Status(row[ColStatus]),
		Realization:  row[ColRealization],
	}
}

// Row renders the entry back into the fixed column order.
func (e Entry) Row() []string {
	return []string{
		strconv.Itoa(e.ID),
		e.Title,
		e.PlannedRange,
		e.Location,
		string(e.Status),
		e.Realization,
	}
}

// =============================================================================
// PLANNING ROW - One row of an uploaded planning batch
// =============================================================================

// PlanningRow is the inbound shape of one planned training event. Title,
// Location and a resolvable date range are required; a batch containing a
// row that misses any of them is rejected as a whole.
type PlanningRow struct {
	Title    string
	Start    DateCell
	End      DateCell
	Location string
}

// =============================================================================
// RAW ROW HELPERS
// =============================================================================

// padRow returns a copy of row grown to at least ColumnCount cells.
// Extra trailing cells are kept, never truncated.
func padRow(row []string) []string {
	n := len(row)
	if n < ColumnCount {
		n = ColumnCount
	}
	out := make([]string, n)
	copy(out, row)
	return out
}

// cellAt reads a cell tolerating short rows.
func cellAt(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}

// coerceID parses a cell as an entry ID, coercing failures to 0.
func coerceID(cell string) int {
	cell = strings.TrimSpace(cell)
	if n, err := strconv.Atoi(cell); err == nil {
		return n
	}
	// Sheets sometimes hand back numerics as "3.0".
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return int(f)
	}
	return 0
}
