/*
reconcile.go - Merge a planning upload into the persisted calendar

PURPOSE:
  Reconciliation unifies a freshly uploaded planning batch with the table
  already on record, preserving stable identity and lifecycle state.

MERGE RULES:
  - Match by exact title equality, no normalization.
  - Matched:   keep ID, STATUS and REALIZATION from the old row; take
               TITLE, PLANNED_DATES and LOCATION from the new row.
  - Unmatched: assign the next ID above the table's high-water mark,
               status Pending, realization "-".
  - Old rows whose title is absent from the batch are carried over
    verbatim. Nothing is ever deleted.

GUARANTEES (see the package tests):
  - Identity stability: a title keeps its ID across any number of runs
  - Non-destructive union: the table never shrinks
  - Idempotence: re-running the same batch is a no-op
  - New-ID monotonicity: fresh IDs are strictly above every existing ID

BATCH CONTRACT:
  Every row needs a title, a resolvable date range and a location, and
  titles must be unique within the batch. Any violation rejects the whole
  batch before the store is touched.
*/
package calendar

import (
	"context"
	"fmt"
	"strconv"
)

// ReconcileResult reports the outcome of a merge. Only the merged row
// count is exposed: the operation is idempotent, so callers have no need
// to distinguish added from updated rows.
type ReconcileResult struct {
	Rows int
}

// Reconcile merges batch into the persisted table. On validation failure
// or an unreachable store nothing is written; see writeAll for the
// write-back failure mode.
func (c *Calendar) Reconcile(ctx context.Context, batch []PlanningRow) (ReconcileResult, error) {
	if err := validateBatch(batch); err != nil {
		return ReconcileResult{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	old, err := c.store.ReadAll(ctx)
	if err != nil {
		return ReconcileResult{}, &StoreError{Op: "read", Err: err}
	}

	lastID := highWaterID(old)

	merged := make([][]string, 0, len(old)+len(batch))
	processed := make(map[string]bool, len(batch))

	for _, row := range batch {
		planned := FormatDateRange(row.Start, row.End)

		if match, ok := findByTitle(old, row.Title); ok {
			merged = append(merged, []string{
				cellAt(match, ColID),
				row.Title,
				planned,
				row.Location,
				cellAt(match, ColStatus),
				cellAt(match, ColRealization),
			})
		} else {
			lastID++
			merged = append(merged, []string{
				strconv.Itoa(lastID),
				row.Title,
				planned,
				row.Location,
				string(StatusPending),
				NoRealization,
			})
		}
		processed[row.Title] = true
	}

	// Non-destructive union: everything the batch did not touch is
	// carried over unchanged.
	for _, row := range old {
		if !processed[cellAt(row, ColTitle)] {
			merged = append(merged, row)
		}
	}

	if err := c.writeAll(ctx, merged); err != nil {
		return ReconcileResult{}, err
	}
	return ReconcileResult{Rows: len(merged)}, nil
}

// validateBatch enforces the inbound contract: required fields on every
// row, unique titles across the batch.
func validateBatch(batch []PlanningRow) error {
	seen := make(map[string]int, len(batch))
	for i, row := range batch {
		if row.Title == "" {
			return &ValidationError{Row: i, Field: "title", Reason: "missing"}
		}
		if row.Start.IsZero() || row.End.IsZero() {
			return &ValidationError{Row: i, Field: "dates", Reason: "start and end dates are required"}
		}
		if row.Location == "" {
			return &ValidationError{Row: i, Field: "location", Reason: "missing"}
		}
		if first, dup := seen[row.Title]; dup {
			return &ValidationError{
				Row:    i,
				Field:  "title",
				Reason: fmt.Sprintf("duplicate of row %d (%q)", first, row.Title),
			}
		}
		seen[row.Title] = i
	}
	return nil
}

// highWaterID returns the largest numeric ID in rows, coercing
// unparseable cells to 0. Empty table yields 0.
func highWaterID(rows [][]string) int {
	max := 0
	for _, row := range rows {
		if id := coerceID(cellAt(row, ColID)); id > max {
			max = id
		}
	}
	return max
}

// findByTitle returns the first row whose title matches, by exact string
// equality.
func findByTitle(rows [][]string, title string) ([]string, bool) {
	for _, row := range rows {
		if cellAt(row, ColTitle) == title {
			return row, true
		}
	}
	return nil, false
}
