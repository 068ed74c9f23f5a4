/*
uploads.go - Multipart spreadsheet upload endpoints

Planning and roster workbooks arrive as multipart/form-data under the
"file" field. Parsing lives in the ingest package; these handlers only
plumb the file into it and hand the rows to the domain.
*/
package api

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/pusdiklat/training-engine/ingest"
	"github.com/pusdiklat/training-engine/roster"
)

// 20 MB is generous for any plausible workbook.
const maxUploadBytes = 20 << 20

// UploadPlan parses a planning workbook and reconciles it.
// POST /api/uploads/plan
func (h *Handler) UploadPlan(w http.ResponseWriter, r *http.Request) {
	file, ok := openUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	batch, err := ingest.ReadPlanning(file)
	if err != nil {
		writeIngestError(w, err)
		return
	}
	if len(batch) == 0 {
		writeError(w, http.StatusBadRequest, "Workbook has no planning rows", nil)
		return
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

// UploadRoster parses a participant roster, logs it, marks the matching
// calendar entries completed, and returns the roster demographics.
// POST /api/uploads/roster
func (h *Handler) UploadRoster(w http.ResponseWriter, r *http.Request) {
	file, ok := openUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	entries, err := ingest.ReadRoster(file)
	if err != nil {
		writeIngestError(w, err)
		return
	}
	if len(entries) == 0 {
		writeError(w, http.StatusBadRequest, "Workbook has no participant rows", nil)
		return
	}

	res, err := h.Processor.Process(r.Context(), entries)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	completions.Add(float64(res.Completed))

	writeJSON(w, http.StatusOK, RosterResponse{
		Logged:       res.Logged,
		Titles:       res.Titles,
		Completed:    res.Completed,
		Demographics: toDemographicsDTO(roster.Summarize(entries, h.Processor.Clock())),
	})
}

// openUpload extracts the "file" part of a multipart request. On failure
// it writes the error response itself and returns ok=false.
func openUpload(w http.ResponseWriter, r *http.Request) (multipart.File, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart request", err)
		return nil, false
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, `Missing "file" upload field`, err)
		return nil, false
	}
	return file, true
}

func writeIngestError(w http.ResponseWriter, err error) {
	var missing *ingest.MissingColumnError
	if errors.As(err, &missing) {
		writeError(w, http.StatusBadRequest, "Unrecognized spreadsheet layout", err)
		return
	}
	writeError(w, http.StatusBadRequest, "Could not parse workbook", err)
}
