package ingest

import (
	"io"

	"github.com/pusdiklat/training-engine/roster"
)

// ReadRoster parses a participant-roster workbook into roster entries.
// The header must resolve to the name, identifier and training-title
// columns; the work-unit column is optional. Blank rows are skipped.
func ReadRoster(r io.Reader) ([]roster.Entry, error) {
	rows, err := readSheet(r)
	if err != nil {
		return nil, err
	}

	cm := MapColumns(rows[0])
	if err := cm.Require(FieldName, FieldIdentifier, FieldTitle); err != nil {
		return nil, err
	}
	unitCol, hasUnit := cm[FieldUnit]

	var entries []roster.Entry
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		e := roster.Entry{
			Name:          cellValue(row, cm[FieldName]),
			Identifier:    cellValue(row, cm[FieldIdentifier]),
			TrainingTitle: cellValue(row, cm[FieldTitle]),
		}
		if hasUnit {
			e.Unit = cellValue(row, unitCol)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
