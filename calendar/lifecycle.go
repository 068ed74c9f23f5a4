/*
lifecycle.go - Completion transitions and bulk reset

STATE MACHINE (per entry):
  Pending   --complete(title)--> Completed   (stamps realization date)
  Completed --complete(title)--> Completed   (re-stamps the date)
  any       --reset--> Pending               (realization back to "-")

Only this file mutates STATUS. Reconciliation copies it through untouched.
*/
package calendar

import "context"

// RealizationLayout is the fixed format of the realization-date stamp,
// e.g. "16-01-2026".
const RealizationLayout = "02-01-2006"

// MarkComplete transitions the first entry with an exactly matching title
// to Completed and stamps today's date as its realization. It returns
// false, without error, when no entry matches: roster titles legitimately
// may not correspond to any planned event, and this runs as a side effect
// of roster processing rather than as a user-facing action.
func (c *Calendar) MarkComplete(ctx context.Context, title string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.store.ReadAll(ctx)
	if err != nil {
		return false, &StoreError{Op: "read", Err: err}
	}

	for i, row := range rows {
		if cellAt(row, ColTitle) != title {
			continue
		}
		if err := c.store.UpdateCell(ctx, i, ColStatus, string(StatusCompleted)); err != nil {
			return false, &StoreError{Op: "update", Err: err}
		}
		stamp := c.Clock().Format(RealizationLayout)
		if err := c.store.UpdateCell(ctx, i, ColRealization, stamp); err != nil {
			return false, &StoreError{Op: "update", Err: err}
		}
		return true, nil
	}
	return false, nil
}

// ResetAll sets every entry back to Pending with no realization date,
// leaving ID, title, planned dates and location untouched. Destructive
// and irreversible; callers gate it behind an explicit confirmation.
// Returns ErrEmptyCalendar when the table holds no data rows.
func (c *Calendar) ResetAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.store.ReadAll(ctx)
	if err != nil {
		return &StoreError{Op: "read", Err: err}
	}
	if len(rows) == 0 {
		return ErrEmptyCalendar
	}

	reset := make([][]string, len(rows))
	for i, row := range rows {
		r := padRow(row)
		r[ColStatus] = string(StatusPending)
		r[ColRealization] = NoRealization
		reset[i] = r
	}
	return c.writeAll(ctx, reset)
}
