package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListWishes(w http.ResponseWriter, r *http.Request) {
	wishes, err := s.ledger.ListWishes(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	payloads := make([]wishPayload, 0, len(wishes))
	for _, wish := range wishes {
		payloads = append(payloads, newWishPayload(wish))
	}
	writeJSON(w, http.StatusOK, payloads)
}

func (s *Server) handleCreateWish(w http.ResponseWriter, r *http.Request) {
	var payload wishPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	id, err := s.ledger.CreateWish(r.Context(), payload.toWish())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleUpdateWish(w http.ResponseWriter, r *http.Request) {
	var payload wishPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	payload.ID = chi.URLParam(r, "id")

	if err := s.ledger.UpdateWish(r.Context(), payload.toWish()); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteWish(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteWish(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.ledger.GetProfile(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProfilePayload(profile))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var payload profilePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	if err := s.ledger.UpdateProfile(r.Context(), payload.toProfile()); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
