package http

import (
	"net/http"

	"fintrack/internal/log"
)

// handleDashboard returns the full snapshot for the requested month,
// defaulting to the current one.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	period, err := periodParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid month, want YYYY-MM"})
		return
	}

	snap, err := s.dashboard.Snapshot(r.Context(), period)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if snap.SkippedRecords > 0 {
		s.logger.WarnContext(r.Context(), "Dashboard served with skipped records",
			log.FieldMonth, snap.Month,
			log.FieldCount, snap.SkippedRecords)
	}

	writeJSON(w, http.StatusOK, snap)
}
