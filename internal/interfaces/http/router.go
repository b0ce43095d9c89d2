// Package http assembles the grounding API's route tree and server.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/biotext/bioground/internal/infrastructure/monitoring/logging"
	"github.com/biotext/bioground/internal/interfaces/http/handlers"
	"github.com/biotext/bioground/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies needed to
// build the complete route tree.
type RouterConfig struct {
	GroundingHandler *handlers.GroundingHandler
	StatementHandler *handlers.StatementHandler
	ReportHandler    *handlers.ReportHandler
	HealthHandler    *handlers.HealthHandler

	// MetricsHandler serves the Prometheus scrape endpoint when set.
	MetricsHandler http.Handler

	Logger logging.Logger
}

// NewRouter constructs the HTTP route tree: global middleware, public health
// probes, the metrics endpoint, and the /api/v1 resource groups.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if cfg.Logger != nil {
		r.Use(middleware.RequestLogging(cfg.Logger, middleware.DefaultLoggingConfig()))
	}

	r.Group(func(pub chi.Router) {
		if cfg.HealthHandler != nil {
			pub.Get("/healthz", cfg.HealthHandler.Liveness)
			pub.Get("/readyz", cfg.HealthHandler.Readiness)
		}
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api/v1", func(api chi.Router) {
		registerGroundingRoutes(api, cfg.GroundingHandler)
		registerStatementRoutes(api, cfg.StatementHandler)
		registerReportRoutes(api, cfg.ReportHandler)
	})

	return r
}

// registerGroundingRoutes mounts one-shot grounding endpoints under /ground.
func registerGroundingRoutes(r chi.Router, h *handlers.GroundingHandler) {
	if h == nil {
		return
	}
	r.Route("/ground", func(gr chi.Router) {
		gr.Post("/", h.Ground)
		gr.Post("/most-specific", h.MostSpecific)
	})
}

// registerStatementRoutes mounts batch endpoints under /statements.
func registerStatementRoutes(r chi.Router, h *handlers.StatementHandler) {
	if h == nil {
		return
	}
	r.Route("/statements", func(sr chi.Router) {
		sr.Post("/map", h.Map)
		sr.Post("/rename", h.Rename)
	})
}

// registerReportRoutes mounts curation report endpoints under /reports.
func registerReportRoutes(r chi.Router, h *handlers.ReportHandler) {
	if h == nil {
		return
	}
	r.Route("/reports", func(rr chi.Router) {
		rr.Post("/grounding-frequency", h.GroundingFrequency)
		rr.Post("/ungrounded", h.Ungrounded)
		rr.Post("/sentences", h.Sentences)
		rr.Post("/protein-map", h.ProteinMap)
	})
}

//Personal.AI order the ending
