package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	apppublic "four-in-a-row/internal/app/public"

	"github.com/go-chi/chi/v5"
)

type PublicHandlers struct {
	publicSvc *apppublic.Service
}

func NewPublicHandlers(publicSvc *apppublic.Service) *PublicHandlers {
	return &PublicHandlers{publicSvc: publicSvc}
}

func (h *PublicHandlers) Leaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer observe(time.Now())
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				metricPublicQueryErrors.Add(1)
				WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
				return
			}
			limit = n
		}
		resp, err := h.publicSvc.Leaderboard(r.Context(), limit)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, resp)
	}
}

func (h *PublicHandlers) PlayerGames() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer observe(time.Now())
		limit, offset := ParsePagination(r)
		if r.URL.Query().Get("limit") == "" {
			limit = 0
		}
		resp, err := h.publicSvc.PlayerGames(r.Context(), r.URL.Query().Get("username"), limit, offset)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, resp)
	}
}

func (h *PublicHandlers) Game() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer observe(time.Now())
		resp, err := h.publicSvc.Game(r.Context(), chi.URLParam(r, "game_id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, resp)
	}
}

func (h *PublicHandlers) Stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer observe(time.Now())
		resp, err := h.publicSvc.Stats(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, resp)
	}
}

func observe(start time.Time) {
	metricPublicQueryTotal.Add(1)
	metricPublicQueryLastMS.Set(time.Since(start).Milliseconds())
}

func writeServiceError(w http.ResponseWriter, err error) {
	metricPublicQueryErrors.Add(1)
	switch {
	case errors.Is(err, apppublic.ErrInvalidRequest):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
	case errors.Is(err, apppublic.ErrGameNotFound):
		WriteHTTPError(w, http.StatusNotFound, "game_not_found")
	default:
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
