/*
handlers.go - HTTP handlers for the calendar and roster endpoints

PATTERN (per handler):
  1. Decode and sanity-check the request
  2. Call domain logic (calendar engine, roster processor)
  3. Serialize response

ERROR HANDLING:
  - 400: validation errors, malformed bodies, missing confirmation
  - 409: nothing to reset
  - 502: the persisted table is unreachable or a write tore
  - 500: everything else
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pusdiklat/training-engine/calendar"
	"github.com/pusdiklat/training-engine/roster"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Calendar  *calendar.Calendar
	Processor *roster.Processor
	Log       roster.Log
}

// NewHandler creates a handler around the calendar engine and roster
// processor.
func NewHandler(cal *calendar.Calendar, proc *roster.Processor, log roster.Log) *Handler {
	return &Handler{Calendar: cal, Processor: proc, Log: log}
}

// =============================================================================
// CALENDAR ENDPOINTS
// =============================================================================

// ListCalendar returns the current calendar table.
// GET /api/calendar
func (h *Handler) ListCalendar(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Calendar.Entries(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dtos := make([]EntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toEntryDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Reconcile merges a JSON planning batch into the calendar.
// POST /api/calendar/reconcile
func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req ReconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Rows) == 0 {
		writeError(w, http.StatusBadRequest, "Planning batch is empty", nil)
		return
	}

	batch := make([]calendar.PlanningRow, len(req.Rows))
	for i, row := range req.Rows {
		batch[i] = row.toPlanningRow()
	}

	res, err := h.Calendar.Reconcile(r.Context(), batch)
	if err != nil {
		reconcileRuns.WithLabelValues(outcomeLabel(err)).Inc()
		writeDomainError(w, err)
		return
	}
	reconcileRuns.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, ReconcileResponse{Rows: res.Rows})
}

// ResetCalendar sets every entry back to Pending. Destructive; requires
// an explicit {"confirm": true} body.
// POST /api/calendar/reset
func (h *Handler) ResetCalendar(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !req.Confirm {
		writeError(w, http.StatusBadRequest, "Reset requires confirmation", nil)
		return
	}

	if err := h.Calendar.ResetAll(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	calendarResets.Inc()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// HISTORY LOG ENDPOINTS
// =============================================================================

// ListHistory returns the roster history log.
// GET /api/history
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.Log.ReadAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read history log", err)
		return
	}

	dtos := make([]LogRecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = toLogRecordDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ClearHistory wipes the roster history log.
// DELETE /api/history
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.Log.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to clear history log", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// Health is a liveness probe.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps calendar engine errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case calendar.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid planning batch", err)
	case errors.Is(err, calendar.ErrEmptyCalendar):
		writeError(w, http.StatusConflict, "Calendar is empty", err)
	case calendar.IsStoreError(err):
		writeError(w, http.StatusBadGateway, "Calendar store failure", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case calendar.IsClientError(err):
		return "rejected"
	default:
		return "error"
	}
}
