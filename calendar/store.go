/*
store.go - Persistence contract for the calendar table

PURPOSE:
  Defines the interface between the engine and the external table that
  holds the calendar. The table is a key-ordered list of raw rows in the
  fixed column order of types.go; the engine treats it as opaque and only
  touches it through these operations.

CONTRACT:
  - ReadAll:    full-table read of the data rows, in order, header excluded
  - Clear:      full-table delete
  - AppendRows: ordered append of data rows
  - UpdateCell: single-cell write, addressed by data-row index + column

  Clear followed by AppendRows is not atomic. Stores that can do better
  implement Replacer, which the engine prefers whenever available.

IMPLEMENTATIONS:
  - store/sqlite: production store (calendar table + roster log)
  - calendar/store: in-memory store for tests and dev
*/
package calendar

import "context"

// Store is the adapter contract for the persisted calendar table.
// Rows are raw string slices in the fixed column order; the engine
// preserves cells it does not understand verbatim.
type Store interface {
	// ReadAll returns every data row in table order.
	ReadAll(ctx context.Context) ([][]string, error)

	// Clear removes every data row.
	Clear(ctx context.Context) error

	// AppendRows appends rows at the end of the table, in input order.
	AppendRows(ctx context.Context, rows [][]string) error

	// UpdateCell overwrites one cell. row is the zero-based data-row
	// index, col one of the Col* constants.
	UpdateCell(ctx context.Context, row, col int, value string) error
}

// Replacer is an optional Store capability: swap the entire table for a
// new row set in one atomic step. The engine uses it in place of the
// Clear + AppendRows sequence, which can leave the table truncated if the
// append fails partway.
type Replacer interface {
	Replace(ctx context.Context, rows [][]string) error
}
