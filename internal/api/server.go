// Package api provides the HTTP server for questforge: progression,
// chests, the store, achievements, and the daily trackers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/questforge/questforge/internal/app/achievement"
	"github.com/questforge/questforge/internal/app/chest"
	"github.com/questforge/questforge/internal/app/profile"
	"github.com/questforge/questforge/internal/app/progression"
	"github.com/questforge/questforge/internal/app/snapshot"
	"github.com/questforge/questforge/internal/app/store"
	"github.com/questforge/questforge/internal/app/tracker"
	"github.com/questforge/questforge/internal/domain"
)

// Server is the questforge HTTP API server.
type Server struct {
	profiles     *profile.Store
	xp           *progression.Engine
	chests       *chest.Resolver
	ledger       *store.Ledger
	achievements *achievement.Evaluator
	trackers     *tracker.Service
	snapshots    *snapshot.Manager

	metricsEnabled bool
}

// NewServer creates a new API server over the app services.
func NewServer(
	profiles *profile.Store,
	xp *progression.Engine,
	chests *chest.Resolver,
	ledger *store.Ledger,
	achievements *achievement.Evaluator,
	trackers *tracker.Service,
	snapshots *snapshot.Manager,
) *Server {
	return &Server{
		profiles:     profiles,
		xp:           xp,
		chests:       chests,
		ledger:       ledger,
		achievements: achievements,
		trackers:     trackers,
		snapshots:    snapshots,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Minute))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/profile", s.handleProfile)
		r.Post("/xp", s.handleXPDelta)
		r.Get("/rank", s.handleRank)
		r.Post("/rank/ack", s.handleRankAck)

		r.Get("/chests", s.handleChests)
		r.Post("/chests/{id}/open", s.handleChestOpen)
		r.Post("/chests/{id}/claim", s.handleChestClaim)

		r.Get("/store/catalog", s.handleStoreCatalog)
		r.Post("/store/purchase", s.handleStorePurchase)
		r.Get("/store/history", s.handleStoreHistory)

		r.Get("/achievements", s.handleAchievements)

		r.Get("/tasks", s.handleTaskList)
		r.Post("/tasks", s.handleTaskAdd)
		r.Put("/tasks/{id}", s.handleTaskUpdate)
		r.Delete("/tasks/{id}", s.handleTaskDelete)
		r.Post("/tasks/{id}/complete", s.handleTaskComplete)
		r.Post("/tasks/{id}/notified", s.handleTaskNotified)

		r.Get("/food", s.handleFoodList)
		r.Post("/food", s.handleFoodAdd)
		r.Delete("/food/{id}", s.handleFoodDelete)

		r.Get("/water", s.handleWaterGet)
		r.Put("/water", s.handleWaterSet)

		r.Get("/sport", s.handleSportList)
		r.Post("/sport", s.handleSportAdd)
		r.Delete("/sport/{id}", s.handleSportDelete)

		r.Get("/habits", s.handleHabits)
		r.Post("/habits/toggle", s.handleHabitToggle)

		r.Get("/weight", s.handleWeightHistory)
		r.Post("/weight", s.handleWeightLog)

		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeDomainError maps well-known engine errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		writeError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, domain.ErrFreezeAlreadyHeld):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnknownItem),
		errors.Is(err, domain.ErrUnknownChest),
		errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrEntryNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnknownRarity),
		errors.Is(err, domain.ErrInvalidSnapshot):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
