// Package store provides calendar.Store implementations.
package store

import (
	"context"
	"fmt"
	"sync"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory holds the table as a slice of raw rows, in order. It implements
// both calendar.Store and calendar.Replacer.
type Memory struct {
	mu   sync.RWMutex
	rows [][]string
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) ReadAll(_ context.Context) ([][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyRows(m.rows), nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = nil
	return nil
}

func (m *Memory) AppendRows(_ context.Context, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, copyRows(rows)...)
	return nil
}

func (m *Memory) UpdateCell(_ context.Context, row, col int, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if row < 0 || row >= len(m.rows) {
		return fmt.Errorf("row %d out of range (table has %d rows)", row, len(m.rows))
	}
	r := m.rows[row]
	for len(r) <= col {
		r = append(r, "")
	}
	r[col] = value
	m.rows[row] = r
	return nil
}

// Replace swaps the whole table atomically under one lock.
func (m *Memory) Replace(_ context.Context, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = copyRows(rows)
	return nil
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		rc := make([]string, len(r))
		copy(rc, r)
		out[i] = rc
	}
	return out
}
