/*
Package roster processes uploaded participant rosters.

PURPOSE:
  A roster is the participant list submitted after a training event ran.
  Processing a roster does three things:
    1. Appends every participant row to a persistent history log
    2. Extracts the distinct training titles and marks the matching
       calendar entries completed (fire-and-forget per title)
    3. Derives participant demographics for presentation collaborators

  Roster rows themselves are ephemeral: they live for one processing
  cycle, only the history log and the calendar transitions persist.

SEE ALSO:
  - processor.go:    the log + completion fan-out
  - demographics.go: age/sex aggregation
  - calendar/lifecycle.go: the completion transition itself
*/
package roster

import (
	"context"
	"sync"
	"time"
)

// Entry is one participant row of an uploaded roster.
type Entry struct {
	Name          string
	Identifier    string
	TrainingTitle string
	Unit          string
}

// LogRecord is one persisted history-log row. ID is assigned by the log
// implementation on append.
type LogRecord struct {
	ID            string
	Timestamp     time.Time
	Name          string
	Identifier    string
	TrainingTitle string
	Unit          string
}

// Log is the persistence contract for the roster history log.
// Append-ordered; Clear wipes it entirely.
type Log interface {
	Append(ctx context.Context, records []LogRecord) error
	ReadAll(ctx context.Context) ([]LogRecord, error)
	Clear(ctx context.Context) error
}

// =============================================================================
// MEMORY LOG - In-memory implementation (for testing/dev)
// =============================================================================

type MemoryLog struct {
	mu      sync.RWMutex
	records []LogRecord
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

func (m *MemoryLog) Append(_ context.Context, records []LogRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, records...)
	return nil
}

func (m *MemoryLog) ReadAll(_ context.Context) ([]LogRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]LogRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *MemoryLog) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
	return nil
}
