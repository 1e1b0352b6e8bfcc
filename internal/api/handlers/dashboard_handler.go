package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/euprava/vrtic-dashboard/internal/application/bootstrap"
	"github.com/euprava/vrtic-dashboard/internal/application/session"
	"github.com/euprava/vrtic-dashboard/internal/domain/providers"
	"github.com/euprava/vrtic-dashboard/internal/infrastructure/observability"
	"github.com/euprava/vrtic-dashboard/internal/presentation/views"
)

// PageRenderer writes a complete HTML page
type PageRenderer interface {
	Render(w http.ResponseWriter, status int, p views.Page) error
}

// DashboardHandler serves the dashboard pages and their form posts
type DashboardHandler struct {
	apis     providers.DashboardAPIFactory
	builder  *views.Builder
	renderer PageRenderer
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(apis providers.DashboardAPIFactory, builder *views.Builder, renderer PageRenderer) *DashboardHandler {
	return &DashboardHandler{
		apis:     apis,
		builder:  builder,
		renderer: renderer,
	}
}

// ShowPage handles GET on a page path: the session state is reset and the
// page's fetches run before rendering.
func (h *DashboardHandler) ShowPage(page bootstrap.Page) http.HandlerFunc {
	cfg := bootstrap.MustLookup(page)
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := h.session(w, r)
		if !ok {
			return
		}
		bootstrap.Load(r.Context(), h.api(sess), sess.Store, cfg)
		h.render(w, r, sess, page, http.StatusOK)
	}
}

// Health handles GET /health
func (h *DashboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *DashboardHandler) api(sess *session.Session) providers.DashboardAPI {
	return h.apis.ForSession(sess.Tokens)
}

func (h *DashboardHandler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		observability.LoggerFromContext(r.Context()).Error().Str("path", r.URL.Path).Msg("Request reached handler without a session")
		respondWithError(w, http.StatusInternalServerError, "session unavailable")
		return nil, false
	}
	return sess, true
}

// parseForm reports false after answering 400 when the body is not a form
func (h *DashboardHandler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *DashboardHandler) render(w http.ResponseWriter, r *http.Request, sess *session.Session, page bootstrap.Page, status int) {
	claims, loggedIn := sess.Tokens.Claims(r.Context())
	p := h.builder.Build(bootstrap.MustLookup(page), sess.Store.Snapshot(), views.Session{
		LoggedIn: loggedIn,
		Claims:   claims,
	})
	if err := h.renderer.Render(w, status, p); err != nil {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Str("page", string(page)).Msg("Failed to render page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
