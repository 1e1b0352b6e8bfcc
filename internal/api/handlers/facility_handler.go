package handlers

import (
	"net/http"

	"github.com/euprava/vrtic-dashboard/internal/application/bootstrap"
	"github.com/euprava/vrtic-dashboard/internal/application/state"
	"github.com/euprava/vrtic-dashboard/internal/domain/entities"
	"github.com/euprava/vrtic-dashboard/internal/infrastructure/observability"
	apperrors "github.com/euprava/vrtic-dashboard/pkg/errors"
)

const (
	msgFacilityNotFound = "Vrtic nije pronadjen."
	msgDeleteFailed     = "Brisanje nije uspelo."
)

// ApplyFilters handles POST {page}/filters
func (h *DashboardHandler) ApplyFilters(page bootstrap.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := h.session(w, r)
		if !ok || !h.parseForm(w, r) {
			return
		}
		sess.Store.Update(func(s state.ViewState) state.ViewState {
			return state.WithFilters(s,
				entities.FacilityType(r.PostForm.Get("tip")),
				r.PostForm.Get("grad"),
				r.PostForm.Get("opstina"),
				r.PostForm.Get("search"),
			)
		})
		h.render(w, r, sess, page, http.StatusOK)
	}
}

// ResetFilters handles POST {page}/filters/reset
func (h *DashboardHandler) ResetFilters(page bootstrap.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := h.session(w, r)
		if !ok {
			return
		}
		sess.Store.Update(state.WithFiltersReset)
		h.render(w, r, sess, page, http.StatusOK)
	}
}

// ChangeSort handles POST {page}/sort. The list is refetched with the new
// server sort parameter.
func (h *DashboardHandler) ChangeSort(page bootstrap.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := h.session(w, r)
		if !ok || !h.parseForm(w, r) {
			return
		}
		mode := entities.ParseSortMode(r.PostForm.Get("sort"))
		sess.Store.Update(func(s state.ViewState) state.ViewState {
			return state.WithSort(s, mode)
		})
		bootstrap.Run(r.Context(), h.api(sess), sess.Store, bootstrap.FetchFacilities)
		h.render(w, r, sess, page, http.StatusOK)
	}
}

// SaveFacility handles POST /manage/facilities. Idle creates, Editing updates.
func (h *DashboardHandler) SaveFacility(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok || !h.parseForm(w, r) {
		return
	}
	values := state.FormValues{
		Name:            r.PostForm.Get("naziv"),
		Type:            r.PostForm.Get("tip"),
		City:            r.PostForm.Get("grad"),
		Municipality:    r.PostForm.Get("opstina"),
		MaxCapacity:     r.PostForm.Get("max_kapacitet"),
		CurrentEnrolled: r.PostForm.Get("trenutno_upisano"),
	}
	fail := func(msg string) {
		sess.Store.Update(func(s state.ViewState) state.ViewState {
			return state.SaveFailed(s, values, msg)
		})
		h.render(w, r, sess, bootstrap.PageManage, http.StatusOK)
	}

	input, err := values.Input()
	if err != nil {
		fail(apperrors.UserMessage(err, state.StatusSaveFailed))
		return
	}

	ctx := r.Context()
	api := h.api(sess)
	editingID := sess.Store.Snapshot().EditingID
	if editingID == "" {
		err = api.CreateFacility(ctx, input)
	} else {
		err = api.UpdateFacility(ctx, editingID, input)
	}
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeUnauthenticated) {
			fail(state.StatusNoToken)
			return
		}
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("facility_id", editingID).Msg("Failed to save facility")
		fail(apperrors.UserMessage(err, state.StatusSaveFailed))
		return
	}

	sess.Store.Update(state.SaveSucceeded)
	bootstrap.Run(ctx, api, sess.Store, bootstrap.FetchFacilities)
	h.render(w, r, sess, bootstrap.PageManage, http.StatusOK)
}

// EditFacility handles POST /manage/facilities/{id}/edit
func (h *DashboardHandler) EditFacility(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	facility, found := state.FindFacility(sess.Store.Snapshot(), id)
	if !found {
		fetched, err := h.api(sess).GetFacility(r.Context(), id)
		if err != nil {
			sess.Store.Update(func(s state.ViewState) state.ViewState {
				return state.WithFormStatus(s, apperrors.UserMessage(err, msgFacilityNotFound))
			})
			h.render(w, r, sess, bootstrap.PageManage, http.StatusOK)
			return
		}
		facility = *fetched
	}

	sess.Store.Update(func(s state.ViewState) state.ViewState {
		return state.BeginEdit(s, facility)
	})
	h.render(w, r, sess, bootstrap.PageManage, http.StatusOK)
}

// CancelEdit handles POST /manage/edit/cancel
func (h *DashboardHandler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	sess.Store.Update(state.CancelEdit)
	h.render(w, r, sess, bootstrap.PageManage, http.StatusOK)
}

// DeleteFacility handles POST /manage/facilities/{id}/delete. Without a
// confirm value it only asks for confirmation.
func (h *DashboardHandler) DeleteFacility(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok || !h.parseForm(w, r) {
		return
	}
	id := r.PathValue("id")

	switch r.PostForm.Get("confirm") {
	case "":
		sess.Store.Update(func(s state.ViewState) state.ViewState {
			return state.RequestDelete(s, id)
		})
	case "no":
		sess.Store.Update(state.DeclineDelete)
	case "yes":
		ctx := r.Context()
		api := h.api(sess)
		if err := api.DeleteFacility(ctx, id); err != nil {
			msg := apperrors.UserMessage(err, msgDeleteFailed)
			if apperrors.IsType(err, apperrors.ErrorTypeUnauthenticated) {
				msg = state.StatusNoToken
			} else {
				observability.LoggerFromContext(ctx).Warn().Err(err).Str("facility_id", id).Msg("Failed to delete facility")
			}
			sess.Store.Update(func(s state.ViewState) state.ViewState {
				return state.DeleteFailed(s, msg)
			})
			break
		}
		sess.Store.Update(func(s state.ViewState) state.ViewState {
			return state.Deleted(s, id)
		})
		bootstrap.Run(ctx, api, sess.Store, bootstrap.FetchFacilities)
	default:
		http.Error(w, "invalid confirm value", http.StatusBadRequest)
		return
	}
	h.render(w, r, sess, bootstrap.PageManage, http.StatusOK)
}
