/*
Package ingest turns uploaded spreadsheets into domain rows.

PURPOSE:
  Two kinds of workbook arrive from the outside: the planning plan
  (title, start/end dates, location per training) and participant rosters
  (name, identifier, training title, work unit). Uploaded headers are
  inconsistent across offices, so columns are resolved through a fixed
  table of recognized synonyms per canonical field - an explicit,
  testable mapping rather than ad hoc guessing.

  This package is inbound plumbing only. It produces calendar.PlanningRow
  and roster.Entry values; all invariants live behind those types.

SEE ALSO:
  - planning.go: planning workbook reader
  - roster.go:   roster workbook reader
*/
package ingest

import (
	"fmt"
	"strings"
)

// Field is a canonical column the readers care about.
type Field string

const (
	FieldTitle      Field = "title"
	FieldStart      Field = "start_date"
	FieldEnd        Field = "end_date"
	FieldLocation   Field = "location"
	FieldName       Field = "name"
	FieldIdentifier Field = "identifier"
	FieldUnit       Field = "unit"
)

// synonyms maps each canonical field to the header spellings seen in the
// wild. Matching is case-insensitive substring containment against the
// normalized header. Extend the table here; never special-case a header
// at a call site.
var synonyms = map[Field][]string{
	FieldTitle:      {"JUDUL_PELATIHAN", "JUDUL PELATIHAN", "JUDUL", "DIKLAT", "TRAINING"},
	FieldStart:      {"TANGGAL_MULAI", "TANGGAL MULAI", "MULAI", "START"},
	FieldEnd:        {"TANGGAL_SELESAI", "TANGGAL SELESAI", "SELESAI", "END"},
	FieldLocation:   {"LOKASI", "LOCATION", "TEMPAT"},
	FieldName:       {"NAMA", "NAME"},
	FieldIdentifier: {"NIP", "IDENTIFIER"},
	FieldUnit:       {"SATKER", "SATUAN KERJA", "UNIT"},
}

// ColumnMap resolves canonical fields to zero-based column indexes.
type ColumnMap map[Field]int

// MapColumns resolves headers against the synonym table. For each field
// the first matching header wins; fields with no match are absent from
// the result.
func MapColumns(headers []string) ColumnMap {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.ToUpper(strings.TrimSpace(h))
	}

	cm := make(ColumnMap)
	for field, alts := range synonyms {
		for i, h := range normalized {
			if h == "" {
				continue
			}
			if containsAny(h, alts) {
				cm[field] = i
				break
			}
		}
	}
	return cm
}

func containsAny(header string, alts []string) bool {
	for _, alt := range alts {
		if strings.Contains(header, alt) {
			return true
		}
	}
	return false
}

// MissingColumnError reports required fields no header matched.
type MissingColumnError struct {
	Fields []Field
}

func (e *MissingColumnError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = string(f)
	}
	return fmt.Sprintf("spreadsheet is missing required columns: %s", strings.Join(names, ", "))
}

// Require checks that every listed field resolved to a column.
func (m ColumnMap) Require(fields ...Field) error {
	var missing []Field
	for _, f := range fields {
		if _, ok := m[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnError{Fields: missing}
	}
	return nil
}
