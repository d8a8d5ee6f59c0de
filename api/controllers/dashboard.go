package controllers

import (
	"net/http"
	"strings"

	"github.com/stocknote/stocknote-backend/api/responses"
	"github.com/stocknote/stocknote-backend/internal/dashboard"
	pkgerrors "github.com/stocknote/stocknote-backend/pkg/errors"
	"github.com/stocknote/stocknote-backend/pkg/logger"
)

// DashboardSummary aggregates orders over the requested range. The range
// defaults to today when the query parameter is absent.
func DashboardSummary(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		window := dashboard.RangeToday
		if raw := strings.TrimSpace(r.URL.Query().Get("range")); raw != "" {
			window = dashboard.Range(raw)
		}

		summary, err := svc.Summary(r.Context(), window)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
