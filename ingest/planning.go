package ingest

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pusdiklat/training-engine/calendar"
)

// dateLayouts are the string date shapes accepted from workbook cells,
// tried in order. Anything else is passed through raw; the date-range
// formatter absorbs it.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02-01-2006",
	"02/01/2006",
	"2/1/2006",
	"01-02-06",
	"1-2-06",
	"02 Jan 2006",
	"2 Jan 2006",
}

// ReadPlanning parses a planning workbook into planning rows. The first
// sheet is used; the first row must be a header resolvable to the title,
// start-date, end-date and location columns. Rows that are entirely blank
// are skipped; partially filled rows are passed through so that the
// reconciler's batch validation can reject them with a precise error.
func ReadPlanning(r io.Reader) ([]calendar.PlanningRow, error) {
	rows, err := readSheet(r)
	if err != nil {
		return nil, err
	}

	cm := MapColumns(rows[0])
	if err := cm.Require(FieldTitle, FieldStart, FieldEnd, FieldLocation); err != nil {
		return nil, err
	}

	var batch []calendar.PlanningRow
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		batch = append(batch, calendar.PlanningRow{
			Title:    cellValue(row, cm[FieldTitle]),
			Start:    parseDateCell(cellValue(row, cm[FieldStart])),
			End:      parseDateCell(cellValue(row, cm[FieldEnd])),
			Location: cellValue(row, cm[FieldLocation]),
		})
	}
	return batch, nil
}

// readSheet opens a workbook and returns the cell grid of its first
// sheet, header included.
func readSheet(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no worksheet")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}
	return rows, nil
}

// parseDateCell turns one cell into a DateCell. Excel serial dates and
// the known string layouts become structured dates; anything else is
// carried raw.
func parseDateCell(cell string) calendar.DateCell {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return calendar.DateCell{}
	}

	// Excel date serials show up when the cell has no date style. Keep a
	// plausible range so plain years are not mistaken for serials.
	if serial, err := strconv.ParseFloat(cell, 64); err == nil {
		if serial >= 20000 && serial <= 80000 {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return calendar.DateOf(t)
			}
		}
		return calendar.RawDate(cell)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return calendar.DateOf(t)
		}
	}
	return calendar.RawDate(cell)
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
