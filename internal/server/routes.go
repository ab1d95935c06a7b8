package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"cricket-scorer/internal/config"
	"cricket-scorer/internal/constants"
	"cricket-scorer/internal/middleware"
	"cricket-scorer/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// Handlers serves the plain HTTP routes next to the RPC surface.
type Handlers struct {
	matchSvc *service.MatchService
	db       *sql.DB
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

func NewRouter(scoringServer *ScoringServer, matchSvc *service.MatchService, db *sql.DB, cfg *config.Config, logger zerolog.Logger) http.Handler {
	h := &Handlers{
		matchSvc: matchSvc,
		db:       db,
		upgrader: newUpgrader(cfg.CORSAllowedOrigins),
		logger:   logger,
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID(logger))
	r.Use(c.Handler)

	path, handler := NewScoringServiceHandler(scoringServer)
	r.Handle(path+"*", handler)

	r.Get("/healthz", h.Health)
	r.Route("/matches", func(r chi.Router) {
		r.Get("/", h.ListMatches)
		r.Get("/{id}", h.GetMatch)
		r.Get("/{id}/scorecard", h.Scorecard)
		r.Get("/{id}/events", h.Events)
		r.Get("/{id}/live", h.Live)
	})

	return r
}

// GET /healthz
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.DatabaseTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /matches?limit=
func (h *Handlers) ListMatches(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	matches, err := h.matchSvc.ListMatches(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// GET /matches/{id}
func (h *Handlers) GetMatch(w http.ResponseWriter, r *http.Request) {
	v, err := h.matchSvc.GetMatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// GET /matches/{id}/scorecard
func (h *Handlers) Scorecard(w http.ResponseWriter, r *http.Request) {
	card, err := h.matchSvc.Scorecard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// GET /matches/{id}/events
func (h *Handlers) Events(w http.ResponseWriter, r *http.Request) {
	events, err := h.matchSvc.Events(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrMatchNotFound):
		status = http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
