// Package api exposes the ledger core over HTTP: transaction CRUD,
// analytics groupings, monthly reports, backup exchange, the user profile,
// and a live snapshot feed.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fjacquet/finanza/internal/config"
	"fjacquet/finanza/internal/ledger"
	"fjacquet/finanza/internal/logging"
	"fjacquet/finanza/internal/profile"
	"fjacquet/finanza/internal/report"
)

// Server is the finanza HTTP API server.
type Server struct {
	ledger   *ledger.Service
	profiles *profile.Store
	reports  *report.Generator
	cfg      *config.Config
	logger   logging.Logger
	metrics  *Metrics
	now      func() time.Time
}

// NewServer wires the API server over the ledger service and its
// collaborators.
func NewServer(svc *ledger.Service, profiles *profile.Store, reports *report.Generator, cfg *config.Config, logger logging.Logger) *Server {
	return &Server{
		ledger:   svc,
		profiles: profiles,
		reports:  reports,
		cfg:      cfg,
		logger:   logger.WithField("component", "api"),
		metrics:  NewMetrics(),
		now:      time.Now,
	}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(traceMiddleware(s.logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/home", s.handleHome)
		r.Get("/days", s.handleDayGroups)
		r.Get("/totals", s.handleTotals)

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", s.handleCreateTransaction)
			r.Delete("/", s.handleClearAll)
			r.Get("/{id}", s.handleGetTransaction)
			r.Put("/{id}", s.handleUpdateTransaction)
			r.Delete("/{id}", s.handleDeleteTransaction)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/breakdown", s.handleBreakdown)
			r.Get("/breakdown/{category}", s.handleDrillDown)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/months", s.handleMonths)
			r.Get("/monthly", s.handleMonthlyReport)
		})

		r.Route("/backup", func(r chi.Router) {
			r.Get("/export", s.handleExport)
			r.Post("/import", s.handleImport)
		})

		r.Get("/profile", s.handleGetProfile)
		r.Put("/profile", s.handlePutProfile)

		r.Get("/events", s.handleEvents)
	})

	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	return r
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the uniform error body of the API.
type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
