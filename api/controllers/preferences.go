package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stocknote/stocknote-backend/api/responses"
	"github.com/stocknote/stocknote-backend/api/validators"
	"github.com/stocknote/stocknote-backend/internal/fieldprefs"
	"github.com/stocknote/stocknote-backend/pkg/enums"
	pkgerrors "github.com/stocknote/stocknote-backend/pkg/errors"
	"github.com/stocknote/stocknote-backend/pkg/logger"
)

func preferenceKind(r *http.Request) (enums.PreferenceKind, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "kind"))
	kind, err := enums.ParsePreferenceKind(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid preference kind")
	}
	return kind, nil
}

func GetPreferences(svc fieldprefs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preferences service unavailable"))
			return
		}

		kind, err := preferenceKind(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		prefs, err := svc.Get(r.Context(), kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, prefs)
	}
}

// ReplacePreferences swaps the whole document for one kind.
func ReplacePreferences(svc fieldprefs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preferences service unavailable"))
			return
		}

		kind, err := preferenceKind(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var prefs fieldprefs.Preferences
		if err := validators.DecodeJSONBody(r, &prefs); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		prefs.Kind = kind

		saved, err := svc.Replace(r.Context(), prefs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, saved)
	}
}

func AddPreferenceField(svc fieldprefs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preferences service unavailable"))
			return
		}

		kind, err := preferenceKind(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var custom fieldprefs.CustomField
		if err := validators.DecodeJSONBody(r, &custom); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		prefs, err := svc.AddCustomField(r.Context(), kind, custom)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, prefs)
	}
}

func RemovePreferenceField(svc fieldprefs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preferences service unavailable"))
			return
		}

		kind, err := preferenceKind(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fieldID := strings.TrimSpace(chi.URLParam(r, "fieldID"))
		if fieldID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "field id required"))
			return
		}

		prefs, err := svc.RemoveField(r.Context(), kind, fieldID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, prefs)
	}
}

type moveFieldRequest struct {
	From int `json:"from" validate:"gte=0"`
	To   int `json:"to" validate:"gte=0"`
}

func MovePreferenceField(svc fieldprefs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preferences service unavailable"))
			return
		}

		kind, err := preferenceKind(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req moveFieldRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		prefs, err := svc.MoveField(r.Context(), kind, req.From, req.To)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, prefs)
	}
}

type fieldVisibilityRequest struct {
	Visible *bool `json:"visible" validate:"required"`
}

func SetPreferenceFieldVisibility(svc fieldprefs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preferences service unavailable"))
			return
		}

		kind, err := preferenceKind(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fieldID := strings.TrimSpace(chi.URLParam(r, "fieldID"))
		if fieldID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "field id required"))
			return
		}

		var req fieldVisibilityRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		prefs, err := svc.SetVisibility(r.Context(), kind, fieldID, *req.Visible)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, prefs)
	}
}
