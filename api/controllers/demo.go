package controllers

import (
	"net/http"

	"github.com/stocknote/stocknote-backend/api/responses"
	"github.com/stocknote/stocknote-backend/api/validators"
	"github.com/stocknote/stocknote-backend/internal/demo"
	pkgerrors "github.com/stocknote/stocknote-backend/pkg/errors"
	"github.com/stocknote/stocknote-backend/pkg/logger"
)

func DemoStatus(mgr *demo.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if mgr == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "demo manager unavailable"))
			return
		}

		enabled, err := mgr.Enabled(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"enabled": enabled})
	}
}

type demoModeRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// SetDemoMode toggles demo mode. Turning it on swaps all reads to the
// generated dataset and rejects writes until it is turned off again.
func SetDemoMode(mgr *demo.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if mgr == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "demo manager unavailable"))
			return
		}

		var req demoModeRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := mgr.SetEnabled(r.Context(), *req.Enabled); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"enabled": *req.Enabled})
	}
}
