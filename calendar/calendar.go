package calendar

import (
	"context"
	"sync"
	"time"
)

// Calendar owns the reconciliation and lifecycle operations over one
// persisted table. A single mutex serializes every read-modify-write
// cycle: two concurrent operations would otherwise race read-whole-table /
// write-whole-table and silently lose one writer's update.
type Calendar struct {
	store Store
	mu    sync.Mutex

	// Clock supplies "now" for realization-date stamps. Tests override it.
	Clock func() time.Time
}

// New creates a Calendar over the given store.
func New(store Store) *Calendar {
	return &Calendar{
		store: store,
		Clock: time.Now,
	}
}

// Entries returns the parsed view of the current table.
func (c *Calendar) Entries(ctx context.Context) ([]Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.store.ReadAll(ctx)
	if err != nil {
		return nil, &StoreError{Op: "read", Err: err}
	}

	entries := make([]Entry, len(rows))
	for i, row := range rows {
		entries[i] = EntryFromRow(row)
	}
	return entries, nil
}

// writeAll replaces the whole table with rows. The full row set is already
// buffered in memory by the time this is called, so a Replacer-capable
// store commits it in one atomic step. The fallback path can tear between
// Clear and AppendRows; that failure is surfaced as IncompleteWriteError.
func (c *Calendar) writeAll(ctx context.Context, rows [][]string) error {
	if rep, ok := c.store.(Replacer); ok {
		if err := rep.Replace(ctx, rows); err != nil {
			return &StoreError{Op: "replace", Err: err}
		}
		return nil
	}

	if err := c.store.Clear(ctx); err != nil {
		return &StoreError{Op: "clear", Err: err}
	}
	if err := c.store.AppendRows(ctx, rows); err != nil {
		return &IncompleteWriteError{Rows: len(rows), Err: err}
	}
	return nil
}
