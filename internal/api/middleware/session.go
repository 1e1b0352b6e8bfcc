package middleware

import (
	"net/http"
	"strings"

	"github.com/euprava/vrtic-dashboard/internal/application/session"
	"github.com/euprava/vrtic-dashboard/pkg/config"
)

// SessionMiddleware attaches the browser session named by the session cookie,
// issuing a new cookie when it is missing or malformed. Health checks and
// static assets get no session.
func SessionMiddleware(manager *session.Manager, cfg config.SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" || strings.HasPrefix(r.URL.Path, "/static/") {
				next.ServeHTTP(w, r)
				return
			}

			id := ""
			if c, err := r.Cookie(cfg.CookieName); err == nil && session.ValidID(c.Value) {
				id = c.Value
			}
			if id == "" {
				id = session.NewID()
			}
			// refresh on every request so MaxAge counts from the last visit
			http.SetCookie(w, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(cfg.MaxAge.Seconds()),
				HttpOnly: true,
				Secure:   cfg.SecureCookie,
				SameSite: http.SameSiteLaxMode,
			})

			sess := manager.Get(id)
			next.ServeHTTP(w, r.WithContext(session.WithContext(r.Context(), sess)))
		})
	}
}
