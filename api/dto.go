/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON shapes for the API, decoupled from the domain types so wire
  contracts can evolve independently.

NAMING CONVENTION:
  - *DTO: response types returned to clients
  - *Request / *Response: request bodies and complex response wrappers

VALIDATION:
  DTOs are pure data carriers. The planning-batch contract is enforced by
  the calendar engine; handlers only translate its errors to HTTP.
*/
package api

import (
	"time"

	"github.com/pusdiklat/training-engine/calendar"
	"github.com/pusdiklat/training-engine/roster"
)

// EntryDTO is one calendar entry in API responses.
type EntryDTO struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	PlannedDates string `json:"planned_dates"`
	Location     string `json:"location"`
	Status       string `json:"status"`
	Realization  string `json:"realization"`
}

func toEntryDTO(e calendar.Entry) EntryDTO {
	return EntryDTO{
		ID:           e.ID,
		Title:        e.Title,
		PlannedDates: e.PlannedRange,
		Location:     e.Location,
		Status:       string(e.Status),
		Realization:  e.Realization,
	}
}

// PlanningRowRequest is one row of a JSON planning batch. Dates may be
// ISO ("2026-01-12") or any already-formatted display string.
type PlanningRowRequest struct {
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Location  string `json:"location"`
}

func (r PlanningRowRequest) toPlanningRow() calendar.PlanningRow {
	return calendar.PlanningRow{
		Title:    r.Title,
		Start:    parseAPIDate(r.StartDate),
		End:      parseAPIDate(r.EndDate),
		Location: r.Location,
	}
}

// parseAPIDate accepts ISO dates as structured values and passes
// anything else through raw for the formatter to absorb.
func parseAPIDate(s string) calendar.DateCell {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return calendar.DateOf(t)
		}
	}
	return calendar.RawDate(s)
}

// ReconcileRequest is a JSON planning batch.
type ReconcileRequest struct {
	Rows []PlanningRowRequest `json:"rows"`
}

// ReconcileResponse reports the merged table size.
type ReconcileResponse struct {
	Rows int `json:"rows"`
}

// ResetRequest gates the destructive bulk reset behind an explicit
// confirmation.
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// RosterResponse reports one roster processing cycle.
type RosterResponse struct {
	Logged       int             `json:"logged"`
	Titles       []string        `json:"titles"`
	Completed    int             `json:"completed"`
	Demographics DemographicsDTO `json:"demographics"`
}

// DemographicsDTO is the derived participant summary of one roster.
type DemographicsDTO struct {
	Participants int            `json:"participants"`
	Male         int            `json:"male"`
	Female       int            `json:"female"`
	UnknownSex   int            `json:"unknown_sex"`
	KnownAges    int            `json:"known_ages"`
	AverageAge   string         `json:"average_age"`
	AgeBuckets   []AgeBucketDTO `json:"age_buckets"`
}

type AgeBucketDTO struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

func toDemographicsDTO(s roster.Summary) DemographicsDTO {
	dto := DemographicsDTO{
		Participants: s.Participants,
		Male:         s.Male,
		Female:       s.Female,
		UnknownSex:   s.UnknownSex,
		KnownAges:    s.KnownAges,
		AverageAge:   s.AverageAge.String(),
	}
	for _, b := range s.Buckets {
		dto.AgeBuckets = append(dto.AgeBuckets, AgeBucketDTO{Label: b.Label, Count: b.Count})
	}
	return dto
}

// LogRecordDTO is one roster history-log row.
type LogRecordDTO struct {
	ID            string `json:"id"`
	Timestamp     string `json:"timestamp"`
	Name          string `json:"name"`
	Identifier    string `json:"identifier"`
	TrainingTitle string `json:"training_title"`
	Unit          string `json:"unit"`
}

func toLogRecordDTO(rec roster.LogRecord) LogRecordDTO {
	return LogRecordDTO{
		ID:            rec.ID,
		Timestamp:     rec.Timestamp.Format(time.RFC3339),
		Name:          rec.Name,
		Identifier:    rec.Identifier,
		TrainingTitle: rec.TrainingTitle,
		Unit:          rec.Unit,
	}
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
