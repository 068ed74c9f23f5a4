package calendar_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pusdiklat/training-engine/calendar"
	"github.com/pusdiklat/training-engine/calendar/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestCalendar(t *testing.T) (*calendar.Calendar, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return calendar.New(mem), mem
}

func planRow(title, start, end, location string) calendar.PlanningRow {
	return calendar.PlanningRow{
		Title:    title,
		Start:    calendar.DateOf(mustDate(start)),
		End:      calendar.DateOf(mustDate(end)),
		Location: location,
	}
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func entriesOf(t *testing.T, cal *calendar.Calendar) []calendar.Entry {
	t.Helper()
	entries, err := cal.Entries(context.Background())
	require.NoError(t, err)
	return entries
}

// =============================================================================
// MERGE SCENARIOS
// =============================================================================

func TestReconcile_FreshTable_AssignsSequentialIDs(t *testing.T) {
	// GIVEN: An empty calendar
	// WHEN:  A two-row batch is reconciled
	// THEN:  Rows get IDs 1 and 2, status Pending, no realization

	cal, _ := newTestCalendar(t)

	res, err := cal.Reconcile(context.Background(), []calendar.PlanningRow{
		planRow("DTSS A", "2026-01-12", "2026-01-16", "Pusdiklat"),
		planRow("DTSS B", "2026-02-02", "2026-02-02", "Batam"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)

	entries := entriesOf(t, cal)
	require.Len(t, entries, 2)

	assert.Equal(t, calendar.Entry{
		ID: 1, Title: "DTSS A", PlannedRange: "12 Jan 2026 s.d. 16 Jan 2026",
		Location: "Pusdiklat", Status: calendar.StatusPending, Realization: "-",
	}, entries[0])
	assert.Equal(t, calendar.Entry{
		ID: 2, Title: "DTSS B", PlannedRange: "02 Feb 2026",
		Location: "Batam", Status: calendar.StatusPending, Realization: "-",
	}, entries[1])
}

func TestReconcile_ExistingTitle_KeepsIdentityAndStatus(t *testing.T) {
	// GIVEN: "DTSS A" is on record as Completed with a realization date
	// WHEN:  A new batch re-submits it with a different location
	// THEN:  ID, status and realization survive; dates and location update

	cal, mem := newTestCalendar(t)
	require.NoError(t, mem.AppendRows(context.Background(), [][]string{
		{"1", "DTSS A", "05 Jan 2025", "Jakarta", "Completed", "10-01-2025"},
	}))

	_, err := cal.Reconcile(context.Background(), []calendar.PlanningRow{
		planRow("DTSS A", "2026-01-12", "2026-01-16", "Pusdiklat"),
	})
	require.NoError(t, err)

	entries := entriesOf(t, cal)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].ID)
	assert.Equal(t, calendar.StatusCompleted, entries[0].Status)
	assert.Equal(t, "10-01-2025", entries[0].Realization)
	assert.Equal(t, "Pusdiklat", entries[0].Location)
	assert.Equal(t, "12 Jan 2026 s.d. 16 Jan 2026", entries[0].PlannedRange)
}

func TestReconcile_TitleAbsentFromBatch_CarriedOverVerbatim(t *testing.T) {
	// GIVEN: Two entries on record
	// WHEN:  A batch mentions only one of them
	// THEN:  The other is retained unchanged - the table never shrinks

	cal, mem := newTestCalendar(t)
	require.NoError(t, mem.AppendRows(context.Background(), [][]string{
		{"1", "DTSS A", "05 Jan 2025", "Jakarta", "Pending", "-"},
		{"2", "DTSS B", "01 Feb 2025", "Batam", "Completed", "03-02-2025"},
	}))

	_, err := cal.Reconcile(context.Background(), []calendar.PlanningRow{
		planRow("DTSS A", "2026-01-12", "2026-01-16", "Pusdiklat"),
	})
	require.NoError(t, err)

	entries := entriesOf(t, cal)
	require.Len(t, entries, 2)
	assert.Equal(t, calendar.Entry{
		ID: 2, Title: "DTSS B", PlannedRange: "01 Feb 2025",
		Location: "Batam", Status: calendar.StatusCompleted, Realization: "03-02-2025",
	}, entries[1])
}

func TestReconcile_Idempotent(t *testing.T) {
	// GIVEN: A batch already reconciled once
	// WHEN:  The same batch is reconciled again
	// THEN:  The table is byte-for-byte identical

	cal, mem := newTestCalendar(t)
	batch := []calendar.PlanningRow{
		planRow("DTSS A", "2026-01-12", "2026-01-16", "Pusdiklat"),
		planRow("DTSS B", "2026-02-02", "2026-02-02", "Batam"),
	}

	_, err := cal.Reconcile(context.Background(), batch)
	require.NoError(t, err)
	first, err := mem.ReadAll(context.Background())
	require.NoError(t, err)

	_, err = cal.Reconcile(context.Background(), batch)
	require.NoError(t, err)
	second, err := mem.ReadAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestReconcile_NewIDs_AboveEveryExistingID(t *testing.T) {
	// GIVEN: The table's IDs are sparse with a high-water mark of 7
	// WHEN:  Two new titles arrive
	// THEN:  They get 8 and 9, unique and strictly above the mark

	cal, mem := newTestCalendar(t)
	require.NoError(t, mem.AppendRows(context.Background(), [][]string{
		{"3", "DTSS A", "05 Jan 2025", "Jakarta", "Pending", "-"},
		{"7", "DTSS B", "01 Feb 2025", "Batam", "Pending", "-"},
	}))

	_, err := cal.Reconcile(context.Background(), []calendar.PlanningRow{
		planRow("DTSS C", "2026-03-02", "2026-03-06", "Medan"),
		planRow("DTSS D", "2026-04-06", "2026-04-10", "Malang"),
	})
	require.NoError(t, err)

	entries := entriesOf(t, cal)
	ids := map[string]int{}
	for _, e := range entries {
		ids[e.Title] = e.ID
	}
	assert.Equal(t, 8, ids["DTSS C"])
	assert.Equal(t, 9, ids["DTSS D"])
}

func TestReconcile_MalformedIDsOnRecord_CoercedForHighWaterOnly(t *testing.T) {
	// GIVEN: A hand-edited table with a junk ID cell
	// WHEN:  A new title arrives
	// THEN:  High-water computation treats the junk as 0, and the junk
	//        row itself round-trips verbatim

	cal, mem := newTestCalendar(t)
	require.NoError(t, mem.AppendRows(context.Background(), [][]string{
		{"oops", "DTSS A", "05 Jan 2025", "Jakarta", "Pending", "-"},
		{"2", "DTSS B", "01 Feb 2025", "Batam", "Pending", "-"},
	}))

	_, err := cal.Reconcile(context.Background(), []calendar.PlanningRow{
		planRow("DTSS C", "2026-03-02", "2026-03-06", "Medan"),
	})
	require.NoError(t, err)

	rows, err := mem.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"oops", "DTSS A", "05 Jan 2025", "Jakarta", "Pending", "-"}, rows[1])
	assert.Equal(t, "3", rows[0][calendar.ColID]) // new entry, above max(0, 2)
}

// =============================================================================
// BATCH VALIDATION
// =============================================================================

func TestReconcile_MissingFields_RejectsWholeBatch(t *testing.T) {
	cal, mem := newTestCalendar(t)

	cases := []struct {
		name  string
		row   calendar.PlanningRow
		field string
	}{
		{"missing title", calendar.PlanningRow{
			Start:    calendar.RawDate("12 Jan 2026"),
			End:      calendar.RawDate("16 Jan 2026"),
			Location: "Pusdiklat",
		}, "title"},
		{"missing dates", calendar.PlanningRow{
			Title:    "DTSS A",
			Location: "Pusdiklat",
		}, "dates"},
		{"missing location", calendar.PlanningRow{
			Title: "DTSS A",
			Start: calendar.RawDate("12 Jan 2026"),
			End:   calendar.RawDate("16 Jan 2026"),
		}, "location"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			batch := []calendar.PlanningRow{
				planRow("DTSS OK", "2026-01-05", "2026-01-09", "Jakarta"),
				tc.row,
			}
			_, err := cal.Reconcile(context.Background(), batch)

			var ve *calendar.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, 1, ve.Row)
			assert.Equal(t, tc.field, ve.Field)
			assert.True(t, calendar.IsClientError(err))

			// Whole batch rejected: even the valid row was not written.
			rows, err := mem.ReadAll(context.Background())
			require.NoError(t, err)
			assert.Empty(t, rows)
		})
	}
}

func TestReconcile_DuplicateTitlesInBatch_Rejected(t *testing.T) {
	cal, _ := newTestCalendar(t)

	_, err := cal.Reconcile(context.Background(), []calendar.PlanningRow{
		planRow("DTSS A", "2026-01-12", "2026-01-16", "Pusdiklat"),
		planRow("DTSS A", "2026-02-02", "2026-02-06", "Batam"),
	})

	var ve *calendar.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 1, ve.Row)
	assert.Contains(t, ve.Reason, "duplicate")
}

// =============================================================================
// STORE FAILURE MODES
// =============================================================================

// faultStore wraps Memory with switchable failures. It holds the inner
// store as a field rather than embedding it, so Memory's Replace method
// is not promoted and the clear-then-append fallback path is exercised.
type faultStore struct {
	inner      *store.Memory
	failRead   bool
	failAppend bool
}

func (f *faultStore) ReadAll(ctx context.Context) ([][]string, error) {
	if f.failRead {
		return nil, errors.New("boom")
	}
	return f.inner.ReadAll(ctx)
}

func (f *faultStore) Clear(ctx context.Context) error {
	return f.inner.Clear(ctx)
}

func (f *faultStore) AppendRows(ctx context.Context, rows [][]string) error {
	if f.failAppend {
		return errors.New("boom")
	}
	return f.inner.AppendRows(ctx, rows)
}

func (f *faultStore) UpdateCell(ctx context.Context, row, col int, value string) error {
	return f.inner.UpdateCell(ctx, row, col, value)
}

func TestReconcile_UnreadableStore_AbortsBeforeWrite(t *testing.T) {
	fs := &faultStore{inner: store.NewMemory(), failRead: true}
	cal := calendar.New(fs)

	_, err := cal.Reconcile(context.Background(), []calendar.PlanningRow{
		planRow("DTSS A", "2026-01-12", "2026-01-16", "Pusdiklat"),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, calendar.ErrStoreUnavailable)
	assert.True(t, calendar.IsStoreError(err))
}

func TestReconcile_AppendFailsAfterClear_SurfacedAsIncompleteWrite(t *testing.T) {
	// The fallback write path can tear. That state must be reported
	// loudly, never swallowed.
	fs := &faultStore{inner: store.NewMemory(), failAppend: true}
	cal := calendar.New(fs)

	_, err := cal.Reconcile(context.Background(), []calendar.PlanningRow{
		planRow("DTSS A", "2026-01-12", "2026-01-16", "Pusdiklat"),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, calendar.ErrIncompleteWrite)

	var iw *calendar.IncompleteWriteError
	require.ErrorAs(t, err, &iw)
	assert.Equal(t, 1, iw.Rows)
}

func TestReconcile_ReplacerStore_NeverLeftTruncated(t *testing.T) {
	// GIVEN: A Replacer-capable store whose replace fails atomically
	// WHEN:  Reconciliation write-back fails
	// THEN:  The prior table is intact

	mem := store.NewMemory()
	require.NoError(t, mem.AppendRows(context.Background(), [][]string{
		{"1", "DTSS A", "05 Jan 2025", "Jakarta", "Pending", "-"},
	}))

	fr := &failingReplacer{Memory: mem}
	cal := calendar.New(fr)

	_, err := cal.Reconcile(context.Background(), []calendar.PlanningRow{
		planRow("DTSS B", "2026-01-12", "2026-01-16", "Batam"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, calendar.ErrStoreUnavailable)

	rows, readErr := mem.ReadAll(context.Background())
	require.NoError(t, readErr)
	require.Len(t, rows, 1) // untouched
}

type failingReplacer struct {
	*store.Memory
}

func (f *failingReplacer) Replace(context.Context, [][]string) error {
	return errors.New("boom")
}
