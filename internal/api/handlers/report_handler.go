package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/euprava/vrtic-dashboard/internal/application/bootstrap"
	"github.com/euprava/vrtic-dashboard/internal/application/services"
	"github.com/euprava/vrtic-dashboard/internal/application/state"
	"github.com/euprava/vrtic-dashboard/internal/infrastructure/observability"
	apperrors "github.com/euprava/vrtic-dashboard/pkg/errors"
)

const (
	reportPDFFilename = "izvestaj-opstine.pdf"
	msgPDFUnavailable = "PDF izvestaj nije dostupan."
)

var msgInvalidYears = fmt.Sprintf("Broj godina mora biti izmedju 0 i %d.", services.MaxProjectionYears)

// SetProjection handles POST /reports/projection
func (h *DashboardHandler) SetProjection(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok || !h.parseForm(w, r) {
		return
	}

	years, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("years")))
	if err != nil || years < 0 || years > services.MaxProjectionYears {
		sess.Store.Update(func(s state.ViewState) state.ViewState {
			return state.ReportsFailed(s, msgInvalidYears)
		})
		h.render(w, r, sess, bootstrap.PageReports, http.StatusOK)
		return
	}

	s := sess.Store.Update(func(s state.ViewState) state.ViewState {
		return state.WithProjectionYears(state.ReportsFailed(s, ""), years)
	})
	if len(s.Reports) == 0 {
		bootstrap.Run(r.Context(), h.api(sess), sess.Store, bootstrap.FetchReport)
	}
	h.render(w, r, sess, bootstrap.PageReports, http.StatusOK)
}

// DownloadReportPDF handles GET /reports/municipality.pdf by proxying the
// facility service's PDF export.
func (h *DashboardHandler) DownloadReportPDF(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	pdf, err := h.api(sess).MunicipalityReportPDF(r.Context())
	if err != nil {
		observability.LoggerFromContext(r.Context()).Warn().Err(err).Msg("Failed to fetch report PDF")
		sess.Store.Update(func(s state.ViewState) state.ViewState {
			return state.ReportsFailed(s, apperrors.UserMessage(err, msgPDFUnavailable))
		})
		h.render(w, r, sess, bootstrap.PageReports, http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reportPDFFilename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		observability.LoggerFromContext(r.Context()).Debug().Err(err).Msg("Client went away during PDF download")
	}
}
