package web

import (
	"net/http"

	"github.com/leobarberi/Projeto-organizador-react-version2/internal/core"
	"github.com/leobarberi/Projeto-organizador-react-version2/internal/logging"
	"github.com/leobarberi/Projeto-organizador-react-version2/internal/web/views"
)

// handleDashboard renders the stored files and the summary for the bounds in
// the query string.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.renderDashboard(w, r, summaryRequestFromQuery(r), nil)
}

// renderDashboard renders the page, showing pageErr (or the first error hit
// while loading) as an alert.
func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request, req summaryRequest, pageErr error) {
	ctx := r.Context()
	data := views.DashboardData{From: req.DataInicial, To: req.DataFinal}
	status := http.StatusOK

	files, err := s.service.ListFiles(ctx)
	if err != nil && pageErr == nil {
		pageErr = err
	}
	data.Files = files

	if pageErr == nil {
		summary, err := s.summaryFor(r, req)
		if err != nil {
			pageErr = err
		}
		data.Summary = summary
	}

	if pageErr != nil {
		status = statusFor(pageErr)
		msg := core.MapError(pageErr)
		data.Alert = &views.Alert{Message: msg.Message, Action: msg.Action, Code: msg.Code}
		logging.FromContext(ctx).Warn("dashboard error",
			"error", pageErr.Error(),
			"code", msg.Code,
			"status", status,
		)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := views.Dashboard(data).Render(ctx, w); err != nil {
		logging.FromContext(ctx).Error("render dashboard", "error", err)
	}
}

// handleHealth reports liveness and the upload limiter state.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"uploads": s.service.UploadLimiterStatus(),
	})
}
