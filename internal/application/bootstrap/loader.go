package bootstrap

import (
	"context"

	"github.com/euprava/vrtic-dashboard/internal/application/state"
	"github.com/euprava/vrtic-dashboard/internal/domain/providers"
	"github.com/euprava/vrtic-dashboard/internal/infrastructure/observability"
	apperrors "github.com/euprava/vrtic-dashboard/pkg/errors"
)

// Fallback messages when the upstream gives no body
const (
	msgReportUnavailable   = "Izvestaj nije dostupan."
	msgCriticalUnavailable = "Lista kriticnih vrtica nije dostupna."
	msgProfileUnavailable  = "Profil nije dostupan."
)

// Load resets the session state and runs the page's fetches one after another
func Load(ctx context.Context, api providers.DashboardAPI, store *state.Store, cfg PageConfig) state.ViewState {
	store.Reset()
	for _, f := range cfg.Fetches {
		Run(ctx, api, store, f)
	}
	return store.Snapshot()
}

// Run performs one fetch and commits its outcome if no newer request for the
// same resource was issued meanwhile. Failures become state, never errors.
func Run(ctx context.Context, api providers.DashboardAPI, store *state.Store, f Fetch) {
	logger := observability.LoggerFromContext(ctx)

	switch f {
	case FetchFacilities:
		ticket := store.Begin(state.ResourceFacilities)
		sort := store.Snapshot().Query.Sort
		list, err := api.ListFacilities(ctx, providers.ListOptions{Sort: sort})
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to fetch facilities")
			store.Commit(ticket, state.FacilitiesFailed)
			return
		}
		store.Commit(ticket, func(s state.ViewState) state.ViewState {
			return state.FacilitiesLoaded(s, list)
		})

	case FetchCritical:
		ticket := store.Begin(state.ResourceCritical)
		list, err := api.ListCritical(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to fetch critical facilities")
			store.Commit(ticket, func(s state.ViewState) state.ViewState {
				return state.ReportsFailed(s, apperrors.UserMessage(err, msgCriticalUnavailable))
			})
			return
		}
		store.Commit(ticket, func(s state.ViewState) state.ViewState {
			return state.CriticalLoaded(s, list)
		})

	case FetchReport:
		ticket := store.Begin(state.ResourceReport)
		rows, err := api.MunicipalityReport(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to fetch municipality report")
			store.Commit(ticket, func(s state.ViewState) state.ViewState {
				return state.ReportsFailed(s, apperrors.UserMessage(err, msgReportUnavailable))
			})
			return
		}
		store.Commit(ticket, func(s state.ViewState) state.ViewState {
			return state.ReportsLoaded(s, rows)
		})

	case FetchProfile:
		ticket := store.Begin(state.ResourceProfile)
		profile, err := api.Profile(ctx)
		if err != nil {
			msg := ""
			if !apperrors.IsType(err, apperrors.ErrorTypeUnauthenticated) {
				logger.Warn().Err(err).Msg("Failed to fetch profile")
				msg = apperrors.UserMessage(err, msgProfileUnavailable)
			}
			store.Commit(ticket, func(s state.ViewState) state.ViewState {
				return state.ProfileUnavailable(s, msg)
			})
			return
		}
		store.Commit(ticket, func(s state.ViewState) state.ViewState {
			return state.ProfileLoaded(s, profile)
		})

	case FetchConnectivity:
		ticket := store.Begin(state.ResourceConnectivity)
		err := api.Ping(ctx)
		if err != nil {
			logger.Debug().Err(err).Msg("Facility service probe failed")
		}
		store.Commit(ticket, func(s state.ViewState) state.ViewState {
			return state.ConnectivityChecked(s, err == nil)
		})

	default:
		logger.Error().Str("fetch", string(f)).Msg("Unknown fetch")
	}
}
