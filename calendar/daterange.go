package calendar

import (
	"strings"
	"time"
)

// FallbackRange is returned when neither side of a date range resolves.
const FallbackRange = "-"

// rangeLayout renders structured dates for display, e.g. "12 Jan 2026".
const rangeLayout = "02 Jan 2006"

// DateCell is one side of a planned date range: either a structured date
// or a raw string straight from the upstream sheet. Exactly one of the
// two is normally set.
type DateCell struct {
	Time time.Time
	Raw  string
}

// DateOf wraps a structured date.
func DateOf(t time.Time) DateCell { return DateCell{Time: t} }

// RawDate wraps an already-formatted date string.
func RawDate(s string) DateCell { return DateCell{Raw: s} }

// IsZero reports whether the cell carries no usable value.
func (d DateCell) IsZero() bool {
	return d.Time.IsZero() && strings.TrimSpace(d.Raw) == ""
}

func (d DateCell) display() string {
	if !d.Time.IsZero() {
		return d.Time.Format(rangeLayout)
	}
	return strings.TrimSpace(d.Raw)
}

// FormatDateRange normalizes a (start, end) pair into one display string:
// a single date when both sides render identically, otherwise
// "{start} s.d. {end}". It is total: any unresolvable input degrades to
// FallbackRange instead of failing the caller.
func FormatDateRange(start, end DateCell) string {
	s, e := start.display(), end.display()
	if s == "" || e == "" {
		return FallbackRange
	}
	if s == e {
		return s
	}
	return s + " s.d. " + e
}
