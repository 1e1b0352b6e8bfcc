package routes_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/euprava/vrtic-dashboard/internal/adapters/storage"
	"github.com/euprava/vrtic-dashboard/internal/api/handlers"
	"github.com/euprava/vrtic-dashboard/internal/api/routes"
	"github.com/euprava/vrtic-dashboard/internal/application/services"
	"github.com/euprava/vrtic-dashboard/internal/application/session"
	"github.com/euprava/vrtic-dashboard/internal/domain/entities"
	"github.com/euprava/vrtic-dashboard/internal/domain/providers"
	"github.com/euprava/vrtic-dashboard/internal/domain/providers/mocks"
	"github.com/euprava/vrtic-dashboard/internal/presentation/views"
	"github.com/euprava/vrtic-dashboard/internal/presentation/web"
	"github.com/euprava/vrtic-dashboard/pkg/config"
)

type fixedFactory struct {
	api providers.DashboardAPI
}

func (f fixedFactory) ForSession(providers.TokenSource) providers.DashboardAPI {
	return f.api
}

func setup(t *testing.T, api *mocks.DashboardAPI) (http.Handler, *session.Manager) {
	t.Helper()
	renderer, err := web.NewRenderer()
	require.NoError(t, err)
	builder := views.NewBuilder(services.NewFacilityViewService("sr-Latn"), "http://vrtici.test")
	h := handlers.NewDashboardHandler(fixedFactory{api}, builder, renderer)

	manager := session.NewManager(storage.NewMemoryAdapter(), nil, time.Hour)
	cfg := config.SessionConfig{CookieName: "vrtic_session", MaxAge: time.Hour}
	return routes.NewRouter(h, web.Assets(), manager, cfg, nil).SetupRoutes(), manager
}

func TestRouter_PagesAndSessionCookie(t *testing.T) {
	api := new(mocks.DashboardAPI)
	api.On("ListFacilities", mock.Anything, mock.Anything).Return([]entities.Facility{
		{ID: "1", Name: "Zvoncica", MaxCapacity: 10, CurrentEnrolled: 5},
	}, nil)
	handler, manager := setup(t, api)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Zvoncica")
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	// filters act on the state of the same session
	req := httptest.NewRequest(http.MethodPost, "/filters", strings.NewReader(url.Values{"search": {"nema"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), views.PlaceholderEmpty)
	assert.Equal(t, 1, manager.Len())
}

func TestRouter_UnknownPathIsNotFound(t *testing.T) {
	handler, _ := setup(t, new(mocks.DashboardAPI))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/reports/filters", nil))
	assert.Equal(t, http.StatusNotFound, w.Code, "reports page has no filters")
}

func TestRouter_HealthAndStatic(t *testing.T) {
	handler, manager := setup(t, new(mocks.DashboardAPI))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Result().Cookies())

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
	assert.Zero(t, manager.Len())
}
