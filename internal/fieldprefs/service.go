package fieldprefs

import (
	"context"

	"github.com/stocknote/stocknote-backend/pkg/db/models"
	"github.com/stocknote/stocknote-backend/pkg/enums"
	pkgerrors "github.com/stocknote/stocknote-backend/pkg/errors"
	"github.com/stocknote/stocknote-backend/pkg/logger"
)

// legacyKeyFor maps a preference kind to its superseded flat-store key.
func legacyKeyFor(kind enums.PreferenceKind) string {
	switch kind {
	case enums.PreferenceKindStock:
		return "stock_field_preferences"
	case enums.PreferenceKindOrder:
		return "order_field_preferences"
	}
	return ""
}

// Service manages preference documents: load with default/legacy fallback,
// whole-document replace, and the structural field operations.
type Service interface {
	Get(ctx context.Context, kind enums.PreferenceKind) (Preferences, error)
	Replace(ctx context.Context, prefs Preferences) (Preferences, error)
	AddCustomField(ctx context.Context, kind enums.PreferenceKind, custom CustomField) (Preferences, error)
	RemoveField(ctx context.Context, kind enums.PreferenceKind, fieldID string) (Preferences, error)
	MoveField(ctx context.Context, kind enums.PreferenceKind, from, to int) (Preferences, error)
	SetVisibility(ctx context.Context, kind enums.PreferenceKind, fieldID string, visible bool) (Preferences, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires the preference service dependencies.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "preference repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// Get loads the singleton document for the kind. A missing document first
// attempts the one-time legacy migration, then falls back to the hard-coded
// defaults. Decode failures also default rather than surface.
func (s *service) Get(ctx context.Context, kind enums.PreferenceKind) (Preferences, error) {
	if !kind.IsValid() {
		return Preferences{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid preference kind")
	}

	doc, err := s.repo.FindDocument(ctx, kind)
	if err != nil {
		return Preferences{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load preference document")
	}
	if doc != nil {
		prefs, decodeErr := DecodePayload(kind, doc.Payload)
		if decodeErr != nil {
			s.warn(ctx, "preference document corrupt, serving defaults", decodeErr)
			return DefaultPreferences(kind), nil
		}
		return prefs, nil
	}

	if migrated, ok := s.migrateLegacy(ctx, kind); ok {
		return migrated, nil
	}
	return DefaultPreferences(kind), nil
}

// migrateLegacy performs the one-time move from the flat key-value store
// into the document store. The legacy row is deleted only after the new
// document persists.
func (s *service) migrateLegacy(ctx context.Context, kind enums.PreferenceKind) (Preferences, bool) {
	key := legacyKeyFor(kind)
	row, err := s.repo.FindLegacy(ctx, key)
	if err != nil || row == nil {
		if err != nil {
			s.warn(ctx, "legacy preference read failed", err)
		}
		return Preferences{}, false
	}

	prefs, err := DecodePayload(kind, []byte(row.Value))
	if err != nil {
		s.warn(ctx, "legacy preference blob corrupt, ignoring", err)
		return Preferences{}, false
	}

	if _, err := s.persist(ctx, prefs); err != nil {
		s.warn(ctx, "legacy preference migration save failed", err)
		return prefs, true
	}
	if err := s.repo.DeleteLegacy(ctx, key); err != nil {
		s.warn(ctx, "legacy preference cleanup failed", err)
	}
	return prefs, true
}

// Replace overwrites the stored document with the supplied list.
func (s *service) Replace(ctx context.Context, prefs Preferences) (Preferences, error) {
	if !prefs.Kind.IsValid() {
		return Preferences{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid preference kind")
	}
	prefs.renumber()
	return s.persist(ctx, prefs)
}

func (s *service) AddCustomField(ctx context.Context, kind enums.PreferenceKind, custom CustomField) (Preferences, error) {
	return s.mutate(ctx, kind, func(p *Preferences) error {
		return p.AddCustomField(custom)
	})
}

func (s *service) RemoveField(ctx context.Context, kind enums.PreferenceKind, fieldID string) (Preferences, error) {
	return s.mutate(ctx, kind, func(p *Preferences) error {
		return p.RemoveField(fieldID)
	})
}

func (s *service) MoveField(ctx context.Context, kind enums.PreferenceKind, from, to int) (Preferences, error) {
	return s.mutate(ctx, kind, func(p *Preferences) error {
		return p.MoveField(from, to)
	})
}

func (s *service) SetVisibility(ctx context.Context, kind enums.PreferenceKind, fieldID string, visible bool) (Preferences, error) {
	return s.mutate(ctx, kind, func(p *Preferences) error {
		return p.SetVisibility(fieldID, visible)
	})
}

func (s *service) mutate(ctx context.Context, kind enums.PreferenceKind, fn func(*Preferences) error) (Preferences, error) {
	prefs, err := s.Get(ctx, kind)
	if err != nil {
		return Preferences{}, err
	}
	if err := fn(&prefs); err != nil {
		return Preferences{}, err
	}
	return s.persist(ctx, prefs)
}

func (s *service) persist(ctx context.Context, prefs Preferences) (Preferences, error) {
	payload, err := EncodePayload(prefs)
	if err != nil {
		return Preferences{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode preference document")
	}
	doc := &models.PreferenceDocument{
		Kind:    prefs.Kind,
		DocID:   models.DefaultDocumentID,
		Payload: payload,
		Version: 1,
	}
	if err := s.repo.SaveDocument(ctx, doc); err != nil {
		return Preferences{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save preference document")
	}
	return prefs, nil
}

func (s *service) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Error(ctx, msg, err)
}
