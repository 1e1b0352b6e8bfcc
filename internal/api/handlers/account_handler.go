package handlers

import (
	"net/http"
	"strings"

	"github.com/euprava/vrtic-dashboard/internal/application/bootstrap"
	"github.com/euprava/vrtic-dashboard/internal/application/state"
	"github.com/euprava/vrtic-dashboard/internal/domain/entities"
	"github.com/euprava/vrtic-dashboard/internal/infrastructure/observability"
	apperrors "github.com/euprava/vrtic-dashboard/pkg/errors"
)

const (
	msgUnknownRole      = "Nepoznata uloga."
	msgRegisterFailed   = "Registracija nije uspela."
	msgCredentialsEmpty = "Unesite email i lozinku."
)

// Login handles POST /account/login. The token is stored only when the auth
// service accepts the credentials; any failed attempt leaves no token stored.
func (h *DashboardHandler) Login(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok || !h.parseForm(w, r) {
		return
	}
	ctx := r.Context()
	logger := observability.LoggerFromContext(ctx)
	email := strings.TrimSpace(r.PostForm.Get("email"))
	password := r.PostForm.Get("password")

	failed := func() {
		if err := sess.Tokens.Clear(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to clear access token")
		}
		sess.Store.Update(func(s state.ViewState) state.ViewState {
			return state.WithLoginStatus(state.ProfileUnavailable(s, ""), state.StatusLoginFailed)
		})
		h.render(w, r, sess, bootstrap.PageAccount, http.StatusOK)
	}

	api := h.api(sess)
	result, err := api.Login(ctx, email, password)
	if err != nil {
		logger.Info().Err(err).Msg("Login rejected")
		failed()
		return
	}
	if err := sess.Tokens.Set(ctx, result.AccessToken); err != nil {
		logger.Error().Err(err).Msg("Failed to store access token")
		failed()
		return
	}
	if _, ok := sess.Tokens.Get(ctx); !ok {
		logger.Warn().Msg("Auth service returned an unreadable access token")
		failed()
		return
	}

	bootstrap.Run(ctx, api, sess.Store, bootstrap.FetchProfile)
	sess.Store.Update(func(s state.ViewState) state.ViewState {
		return state.WithLoginStatus(s, state.StatusLoggedIn)
	})
	h.render(w, r, sess, bootstrap.PageAccount, http.StatusOK)
}

// Register handles POST /account/register
func (h *DashboardHandler) Register(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok || !h.parseForm(w, r) {
		return
	}
	status := func(msg string) {
		sess.Store.Update(func(s state.ViewState) state.ViewState {
			return state.WithLoginStatus(s, msg)
		})
		h.render(w, r, sess, bootstrap.PageAccount, http.StatusOK)
	}

	role, valid := entities.NormalizeRole(r.PostForm.Get("role"))
	if !valid {
		status(msgUnknownRole)
		return
	}
	creds := entities.Credentials{
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Password: r.PostForm.Get("password"),
		Role:     role,
	}
	if creds.Email == "" || creds.Password == "" {
		status(msgCredentialsEmpty)
		return
	}

	if err := h.api(sess).Register(r.Context(), creds); err != nil {
		observability.LoggerFromContext(r.Context()).Info().Err(err).Msg("Registration rejected")
		status(apperrors.UserMessage(err, msgRegisterFailed))
		return
	}
	status(state.StatusRegistered)
}

// Logout handles POST /account/logout
func (h *DashboardHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := sess.Tokens.Clear(r.Context()); err != nil {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("Failed to clear access token")
	}
	sess.Store.Update(state.LoggedOut)
	h.render(w, r, sess, bootstrap.PageAccount, http.StatusOK)
}
