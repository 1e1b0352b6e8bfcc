package routes

import (
	"net/http"

	"github.com/euprava/vrtic-dashboard/internal/api/handlers"
	"github.com/euprava/vrtic-dashboard/internal/api/middleware"
	"github.com/euprava/vrtic-dashboard/internal/application/bootstrap"
	"github.com/euprava/vrtic-dashboard/internal/application/session"
	"github.com/euprava/vrtic-dashboard/internal/infrastructure/observability"
	"github.com/euprava/vrtic-dashboard/pkg/config"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	dashboardHandler *handlers.DashboardHandler
	assets           http.Handler

	sessions      *session.Manager
	sessionConfig config.SessionConfig
	metrics       *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	dashboardHandler *handlers.DashboardHandler,
	assets http.Handler,
	sessions *session.Manager,
	sessionConfig config.SessionConfig,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:              http.NewServeMux(),
		dashboardHandler: dashboardHandler,
		assets:           assets,
		sessions:         sessions,
		sessionConfig:    sessionConfig,
		metrics:          metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	h := r.dashboardHandler

	r.mux.HandleFunc("GET /health", h.Health)
	r.mux.Handle("GET /static/", r.assets)

	// Pages; "/{$}" keeps the browse page from matching every unknown path
	for _, cfg := range bootstrap.Pages() {
		pattern := "GET " + cfg.Path
		if cfg.Path == "/" {
			pattern = "GET /{$}"
		}
		r.mux.HandleFunc(pattern, h.ShowPage(cfg.Page))

		if cfg.Has(bootstrap.RegionFilters) {
			prefix := cfg.Prefix()
			r.mux.HandleFunc("POST "+prefix+"/filters", h.ApplyFilters(cfg.Page))
			r.mux.HandleFunc("POST "+prefix+"/filters/reset", h.ResetFilters(cfg.Page))
			r.mux.HandleFunc("POST "+prefix+"/sort", h.ChangeSort(cfg.Page))
		}
	}

	// Facility management
	r.mux.HandleFunc("POST /manage/facilities", h.SaveFacility)
	r.mux.HandleFunc("POST /manage/facilities/{id}/edit", h.EditFacility)
	r.mux.HandleFunc("POST /manage/facilities/{id}/delete", h.DeleteFacility)
	r.mux.HandleFunc("POST /manage/edit/cancel", h.CancelEdit)

	// Reports
	r.mux.HandleFunc("POST /reports/projection", h.SetProjection)
	r.mux.HandleFunc("GET /reports/municipality.pdf", h.DownloadReportPDF)

	// Account
	r.mux.HandleFunc("POST /account/login", h.Login)
	r.mux.HandleFunc("POST /account/register", h.Register)
	r.mux.HandleFunc("POST /account/logout", h.Logout)

	// Apply middleware in reverse order (last middleware wraps first).
	// Observability sits directly on the mux so it can read the matched pattern.
	var handler http.Handler = r.mux
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.SessionMiddleware(r.sessions, r.sessionConfig)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ResponseOptimization(handler)

	return handler
}
