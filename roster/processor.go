package roster

import (
	"context"
	"fmt"
	"time"
)

// Completer is the slice of the calendar the processor needs: the
// completion transition. Satisfied by *calendar.Calendar.
type Completer interface {
	MarkComplete(ctx context.Context, title string) (bool, error)
}

// Processor logs submitted rosters and fans their titles out to the
// calendar as completion transitions.
type Processor struct {
	Log      Log
	Calendar Completer

	// Clock stamps log records. Tests override it.
	Clock func() time.Time
}

func NewProcessor(log Log, cal Completer) *Processor {
	return &Processor{
		Log:      log,
		Calendar: cal,
		Clock:    time.Now,
	}
}

// Result reports one processing cycle.
type Result struct {
	Logged    int      // participant rows appended to the history log
	Titles    []string // distinct training titles, first-seen order
	Completed int      // titles that matched a calendar entry
}

// Process appends entries to the history log, then marks each distinct
// training title completed. A title with no matching calendar entry is
// counted neither as completed nor as an error. An empty roster is a
// no-op.
func (p *Processor) Process(ctx context.Context, entries []Entry) (Result, error) {
	if len(entries) == 0 {
		return Result{}, nil
	}

	now := p.Clock()
	records := make([]LogRecord, len(entries))
	for i, e := range entries {
		records[i] = LogRecord{
			Timestamp:     now,
			Name:          e.Name,
			Identifier:    e.Identifier,
			TrainingTitle: e.TrainingTitle,
			Unit:          e.Unit,
		}
	}
	if err := p.Log.Append(ctx, records); err != nil {
		return Result{}, fmt.Errorf("append roster log: %w", err)
	}

	res := Result{
		Logged: len(records),
		Titles: DistinctTitles(entries),
	}
	for _, title := range res.Titles {
		ok, err := p.Calendar.MarkComplete(ctx, title)
		if err != nil {
			return res, fmt.Errorf("mark %q complete: %w", title, err)
		}
		if ok {
			res.Completed++
		}
	}
	return res, nil
}

// DistinctTitles returns the distinct training titles of a roster in
// first-seen order. Blank titles are skipped.
func DistinctTitles(entries []Entry) []string {
	seen := make(map[string]bool, len(entries))
	var titles []string
	for _, e := range entries {
		if e.TrainingTitle == "" || seen[e.TrainingTitle] {
			continue
		}
		seen[e.TrainingTitle] = true
		titles = append(titles, e.TrainingTitle)
	}
	return titles
}
