// Package api provides the HTTP server for credify.
// It exposes the REST surface mobile and web clients talk to: activity
// logging, the computed profile, streaks, achievements, daily
// challenges and backup import/export.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/credify-app/credify/internal/app"
	"github.com/credify-app/credify/internal/domain"
)

// Version is the API version string reported on /api/version.
const Version = "0.1.0"

// Server is the credify HTTP API server.
type Server struct {
	engine         *app.Engine
	metricsEnabled bool
}

// NewServer creates a new API server around the engine.
func NewServer(engine *app.Engine) *Server {
	return &Server{engine: engine}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "credify is running",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": Version,
		})
	})

	r.Route("/api", func(r chi.Router) {
		// Computed views
		r.Get("/profile", s.handleProfile)
		r.Get("/summary", s.handleSummary)
		r.Get("/streaks", s.handleStreaks)
		r.Get("/calendar", s.handleCalendar)
		r.Get("/achievements", s.handleAchievements)
		r.Get("/challenges", s.handleChallenges)
		r.Get("/catalog", s.handleCatalog)

		// Activity logging
		r.Route("/activity", func(r chi.Router) {
			r.Post("/expense", s.handleLogExpense)
			r.Delete("/expense/{id}", s.handleDeleteExpense)
			r.Post("/workout", s.handleLogWorkout)
			r.Post("/water", s.handleLogWater)
			r.Post("/meal", s.handleLogMeal)
			r.Post("/meditation", s.handleLogMeditation)
			r.Post("/journal", s.handleLogJournal)
			r.Post("/gratitude", s.handleLogGratitude)
			r.Post("/mood", s.handleLogMood)
		})

		// Budgets and goals
		r.Post("/budget", s.handleSetBudget)
		r.Post("/goals", s.handleAddGoal)
		r.Post("/goals/{id}/progress", s.handleGoalProgress)

		// Settings
		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handlePutSettings)

		// Lifecycle
		r.Post("/reevaluate", s.handleReevaluate)
		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
		r.Post("/reset", s.handleReset)
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

// writeDomainError maps domain sentinels to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidImport):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// corsMiddleware adds CORS headers for local development and the
// mobile webview.
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

// dateParam reads an optional ?date= query parameter, defaulting to
// today.
func dateParam(r *http.Request) (domain.Date, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return domain.Today(), nil
	}
	d := domain.Date(raw)
	if !d.Valid() {
		return "", domain.ErrInvalidDate
	}
	return d, nil
}
