package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldError, err)
		writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

var validationErrors = []error{
	core.ErrInvalidKind,
	core.ErrInvalidAmount,
	core.ErrInvalidDate,
	core.ErrInvalidMethod,
	core.ErrEmptyTitle,
	core.ErrInvalidLimit,
	core.ErrInvalidBalance,
	core.ErrInvalidDueDay,
	core.ErrInvalidTarget,
	core.ErrInvalidCurrency,
	core.ErrMalformedDetail,
	core.ErrDetailKindMismatch,
	core.ErrInvalidLoanParameters,
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrKindImmutable):
		return http.StatusConflict
	}
	for _, verr := range validationErrors {
		if errors.Is(err, verr) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}
