/*
Package sqlite provides the SQLite-backed implementations of the
persistence contracts.

INTERFACES IMPLEMENTED:
  calendar.Store:    the calendar table (ordered raw rows)
  calendar.Replacer: atomic full-table replace, one transaction
  roster.Log:        the roster history log

TABLE MODEL:
  The calendar adapter contract is a key-ordered table of raw rows. Here
  that order is the pos autoincrement column; the six logical columns map
  onto named SQL columns in the fixed column order of the calendar
  package. Trailing cells beyond the known six (tolerated by the engine
  for sheet-backed stores) have no SQL home and are dropped on write.

WAL MODE:
  Opened with WAL for better concurrency: readers don't block, single
  writer, better crash recovery. The engine additionally serializes all
  read-modify-write cycles itself.

USAGE:
  st, err := sqlite.New("./data/training.db")
  if err != nil { ... }
  defer st.Close()

  cal := calendar.New(st.Calendar())
  log := st.RosterLog()

Use ":memory:" for an in-memory database.
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pusdiklat/training-engine/calendar"
	"github.com/pusdiklat/training-engine/roster"
)

// Store owns the database handle. Table-scoped accessors hand out the
// interface implementations.
type Store struct {
	db *sql.DB
}

// New opens (and if needed creates) the database at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Calendar table: ordered raw rows, pos is the sheet-row key
	CREATE TABLE IF NOT EXISTS calendar_rows (
		pos INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL,
		title TEXT NOT NULL,
		planned_range TEXT NOT NULL,
		location TEXT NOT NULL,
		status TEXT NOT NULL,
		realization TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_calendar_title
		ON calendar_rows(title);

	-- Roster history log (append-only apart from explicit Clear)
	CREATE TABLE IF NOT EXISTS roster_log (
		id TEXT PRIMARY KEY,
		logged_at TEXT NOT NULL,
		name TEXT NOT NULL,
		identifier TEXT NOT NULL,
		training_title TEXT NOT NULL,
		unit TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_roster_log_title
		ON roster_log(training_title);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Calendar returns the calendar.Store implementation.
func (s *Store) Calendar() *CalendarTable {
	return &CalendarTable{db: s.db}
}

// RosterLog returns the roster.Log implementation.
func (s *Store) RosterLog() *LogTable {
	return &LogTable{db: s.db}
}

// =============================================================================
// CALENDAR TABLE - implements calendar.Store + calendar.Replacer
// =============================================================================

type CalendarTable struct {
	db *sql.DB
}

// calendarColumns maps the calendar package's column indexes onto SQL
// column names, in the fixed contract order.
var calendarColumns = [calendar.ColumnCount]string{
	calendar.ColID:           "id",
	calendar.ColTitle:        "title",
	calendar.ColPlannedRange: "planned_range",
	calendar.ColLocation:     "location",
	calendar.ColStatus:       "status",
	calendar.ColRealization:  "realization",
}

func (t *CalendarTable) ReadAll(ctx context.Context) ([][]string, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT id, title, planned_range, location, status, realization
		FROM calendar_rows ORDER BY pos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		row := make([]string, calendar.ColumnCount)
		if err := rows.Scan(&row[0], &row[1], &row[2], &row[3], &row[4], &row[5]); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (t *CalendarTable) Clear(ctx context.Context) error {
	_, err := t.db.ExecContext(ctx, `DELETE FROM calendar_rows`)
	return err
}

func (t *CalendarTable) AppendRows(ctx context.Context, rows [][]string) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertRows(ctx, tx, rows); err != nil {
		return err
	}
	return tx.Commit()
}

// Replace swaps the entire table in one transaction, so a failed
// write-back can never leave it truncated.
func (t *CalendarTable) Replace(ctx context.Context, rows [][]string) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM calendar_rows`); err != nil {
		return err
	}
	if err := insertRows(ctx, tx, rows); err != nil {
		return err
	}
	return tx.Commit()
}

func insertRows(ctx context.Context, tx *sql.Tx, rows [][]string) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO calendar_rows (id, title, planned_range, location, status, realization)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		cells := make([]string, calendar.ColumnCount)
		copy(cells, row)
		if _, err := stmt.ExecContext(ctx,
			cells[0], cells[1], cells[2], cells[3], cells[4], cells[5]); err != nil {
			return err
		}
	}
	return nil
}

func (t *CalendarTable) UpdateCell(ctx context.Context, row, col int, value string) error {
	if col < 0 || col >= calendar.ColumnCount {
		return fmt.Errorf("column %d out of range", col)
	}

	// Resolve the nth data row to its pos key.
	var pos int64
	err := t.db.QueryRowContext(ctx,
		`SELECT pos FROM calendar_rows ORDER BY pos LIMIT 1 OFFSET ?`, row,
	).Scan(&pos)
	if err == sql.ErrNoRows {
		return fmt.Errorf("row %d out of range", row)
	}
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE calendar_rows SET %s = ? WHERE pos = ?`, calendarColumns[col])
	_, err = t.db.ExecContext(ctx, query, value, pos)
	return err
}

// =============================================================================
// ROSTER LOG - implements roster.Log
// =============================================================================

type LogTable struct {
	db *sql.DB
}

func (t *LogTable) Append(ctx context.Context, records []roster.LogRecord) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO roster_log (id, logged_at, name, identifier, training_title, unit)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		id := rec.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, err := stmt.ExecContext(ctx,
			id,
			rec.Timestamp.UTC().Format(time.RFC3339),
			rec.Name,
			rec.Identifier,
			rec.TrainingTitle,
			rec.Unit,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (t *LogTable) ReadAll(ctx context.Context) ([]roster.LogRecord, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT id, logged_at, name, identifier, training_title, unit
		FROM roster_log ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []roster.LogRecord
	for rows.Next() {
		var rec roster.LogRecord
		var loggedAt string
		if err := rows.Scan(&rec.ID, &loggedAt, &rec.Name, &rec.Identifier, &rec.TrainingTitle, &rec.Unit); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339, loggedAt); err == nil {
			rec.Timestamp = ts
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (t *LogTable) Clear(ctx context.Context) error {
	_, err := t.db.ExecContext(ctx, `DELETE FROM roster_log`)
	return err
}
