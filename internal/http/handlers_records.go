package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/core"
)

// handleListRecords returns the records of one month. The month query
// parameter is YYYY-MM and defaults to the current month.
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	period, err := periodParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid month, want YYYY-MM"})
		return
	}

	records, err := s.ledger.ListRecords(r.Context(), period.Start(), period.End())
	if err != nil {
		writeError(w, r, err)
		return
	}

	payloads, err := newRecordPayloads(records)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payloads)
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var payload recordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	record, err := payload.toRecord()
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := s.ledger.CreateRecord(r.Context(), record)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	record, err := s.ledger.GetRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	payload, err := newRecordPayload(record)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	var payload recordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	payload.ID = chi.URLParam(r, "id")

	record, err := payload.toRecord()
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.ledger.UpdateRecord(r.Context(), record); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteRecord(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func periodParam(r *http.Request) (core.Period, error) {
	month := r.URL.Query().Get("month")
	if month == "" {
		return core.PeriodOf(timeNow()), nil
	}
	return core.ParsePeriod(month)
}
