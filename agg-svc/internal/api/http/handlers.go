package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"byteme-canteen/agg-svc/internal/domain"
	"byteme-canteen/agg-svc/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Stats  service.StatsInterface
	Logger *zap.Logger
}

func NewHandler(stats service.StatsInterface, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Stats: stats, Logger: logger}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	r.HandleFunc("/api/stats", h.getSummary).Methods("GET")
	r.HandleFunc("/api/stats/top-today", h.getTopToday).Methods("GET")
	r.HandleFunc("/api/stats/top-alltime", h.getTopAllTime).Methods("GET")
	r.HandleFunc("/api/stats/ratings/{item}", h.getRating).Methods("GET")
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Stats.Summary(r.Context())
	if err != nil {
		h.Logger.Error("stats summary failed", zap.Error(err))
		http.Error(w, "stats unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) getTopToday(w http.ResponseWriter, r *http.Request) {
	h.writeTop(w, r, h.Stats.TopToday)
}

func (h *Handler) getTopAllTime(w http.ResponseWriter, r *http.Request) {
	h.writeTop(w, r, h.Stats.TopAllTime)
}

// writeTop answers an empty list when the ranking cannot be read.
func (h *Handler) writeTop(w http.ResponseWriter, r *http.Request, top func(context.Context, int) ([]domain.ItemScore, error)) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}
	items, err := top(r.Context(), limit)
	if err != nil {
		h.Logger.Warn("ranking unavailable", zap.String("path", r.URL.Path), zap.Error(err))
		items = []domain.ItemScore{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getRating(w http.ResponseWriter, r *http.Request) {
	rating, err := h.Stats.Rating(r.Context(), mux.Vars(r)["item"])
	switch {
	case errors.Is(err, domain.ErrNoRatings):
		http.Error(w, "no ratings for item", http.StatusNotFound)
		return
	case err != nil:
		h.Logger.Error("rating lookup failed", zap.Error(err))
		http.Error(w, "stats unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, rating)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
