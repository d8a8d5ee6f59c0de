package fieldprefs

import (
	"context"
	"errors"
	"testing"

	"github.com/stocknote/stocknote-backend/pkg/db/models"
	"github.com/stocknote/stocknote-backend/pkg/enums"
	pkgerrors "github.com/stocknote/stocknote-backend/pkg/errors"
)

type fakePrefsRepo struct {
	docs    map[enums.PreferenceKind]*models.PreferenceDocument
	legacy  map[string]string
	findErr error
	saveErr error

	savedDocs     int
	deletedLegacy []string
}

func newFakePrefsRepo() *fakePrefsRepo {
	return &fakePrefsRepo{
		docs:   map[enums.PreferenceKind]*models.PreferenceDocument{},
		legacy: map[string]string{},
	}
}

func (f *fakePrefsRepo) FindDocument(_ context.Context, kind enums.PreferenceKind) (*models.PreferenceDocument, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.docs[kind], nil
}

func (f *fakePrefsRepo) SaveDocument(_ context.Context, doc *models.PreferenceDocument) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedDocs++
	if existing, ok := f.docs[doc.Kind]; ok {
		doc.Version = existing.Version + 1
	}
	f.docs[doc.Kind] = doc
	return nil
}

func (f *fakePrefsRepo) FindLegacy(_ context.Context, key string) (*models.LegacySetting, error) {
	value, ok := f.legacy[key]
	if !ok {
		return nil, nil
	}
	return &models.LegacySetting{Key: key, Value: value}, nil
}

func (f *fakePrefsRepo) DeleteLegacy(_ context.Context, key string) error {
	delete(f.legacy, key)
	f.deletedLegacy = append(f.deletedLegacy, key)
	return nil
}

func newPrefsService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestServiceGetFallsBackToDefaults(t *testing.T) {
	repo := newFakePrefsRepo()
	svc := newPrefsService(t, repo)

	prefs, err := svc.Get(context.Background(), enums.PreferenceKindOrder)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(prefs.Fields) != 11 {
		t.Fatalf("expected default descriptors, got %d", len(prefs.Fields))
	}
	if repo.savedDocs != 0 {
		t.Fatal("defaults must not be persisted on read")
	}
}

func TestServiceGetReadsStoredDocument(t *testing.T) {
	repo := newFakePrefsRepo()
	svc := newPrefsService(t, repo)

	stored := DefaultPreferences(enums.PreferenceKindStock)
	if err := stored.RemoveField("notes"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	payload, err := EncodePayload(stored)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	repo.docs[enums.PreferenceKindStock] = &models.PreferenceDocument{
		Kind:    enums.PreferenceKindStock,
		DocID:   models.DefaultDocumentID,
		Payload: payload,
		Version: 3,
	}

	prefs, err := svc.Get(context.Background(), enums.PreferenceKindStock)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(prefs.Fields) != 5 {
		t.Fatalf("expected stored 5-field list, got %d", len(prefs.Fields))
	}
}

func TestServiceGetCorruptDocumentServesDefaults(t *testing.T) {
	repo := newFakePrefsRepo()
	repo.docs[enums.PreferenceKindOrder] = &models.PreferenceDocument{
		Kind:    enums.PreferenceKindOrder,
		DocID:   models.DefaultDocumentID,
		Payload: []byte("{not json"),
	}
	svc := newPrefsService(t, repo)

	prefs, err := svc.Get(context.Background(), enums.PreferenceKindOrder)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(prefs.Fields) != 11 {
		t.Fatalf("expected defaults on corrupt payload, got %d fields", len(prefs.Fields))
	}
}

func TestServiceGetMigratesLegacyOnce(t *testing.T) {
	repo := newFakePrefsRepo()
	svc := newPrefsService(t, repo)

	legacy := DefaultPreferences(enums.PreferenceKindOrder)
	if err := legacy.AddCustomField(CustomField{Name: "Courier", Type: enums.FieldTypeText}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	payload, err := EncodePayload(legacy)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	repo.legacy["order_field_preferences"] = string(payload)

	prefs, err := svc.Get(context.Background(), enums.PreferenceKindOrder)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(prefs.Fields) != 12 {
		t.Fatalf("expected migrated 12-field list, got %d", len(prefs.Fields))
	}
	if repo.savedDocs != 1 {
		t.Fatalf("expected one document save, got %d", repo.savedDocs)
	}
	if len(repo.deletedLegacy) != 1 || repo.deletedLegacy[0] != "order_field_preferences" {
		t.Fatalf("legacy row not cleaned up: %v", repo.deletedLegacy)
	}

	// Second read must hit the document, not the (now deleted) legacy row.
	again, err := svc.Get(context.Background(), enums.PreferenceKindOrder)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if len(again.Fields) != 12 {
		t.Fatalf("migrated document lost: %d fields", len(again.Fields))
	}
	if repo.savedDocs != 1 {
		t.Fatalf("migration ran twice: %d saves", repo.savedDocs)
	}
}

func TestServiceGetCorruptLegacyIgnored(t *testing.T) {
	repo := newFakePrefsRepo()
	repo.legacy["stock_field_preferences"] = "###"
	svc := newPrefsService(t, repo)

	prefs, err := svc.Get(context.Background(), enums.PreferenceKindStock)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(prefs.Fields) != 6 {
		t.Fatalf("expected defaults, got %d fields", len(prefs.Fields))
	}
	if repo.savedDocs != 0 {
		t.Fatal("corrupt legacy blob must not be persisted")
	}
}

func TestServiceGetRepositoryError(t *testing.T) {
	repo := newFakePrefsRepo()
	repo.findErr = errors.New("connection refused")
	svc := newPrefsService(t, repo)

	_, err := svc.Get(context.Background(), enums.PreferenceKindOrder)
	if err == nil {
		t.Fatal("expected error")
	}
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestServiceGetInvalidKind(t *testing.T) {
	svc := newPrefsService(t, newFakePrefsRepo())
	_, err := svc.Get(context.Background(), enums.PreferenceKind("wardrobe"))
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceAddCustomFieldPersists(t *testing.T) {
	repo := newFakePrefsRepo()
	svc := newPrefsService(t, repo)

	prefs, err := svc.AddCustomField(context.Background(), enums.PreferenceKindStock, CustomField{
		Name: "Storage Bin",
		Type: enums.FieldTypeText,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(prefs.Fields) != 7 {
		t.Fatalf("expected 7 fields, got %d", len(prefs.Fields))
	}

	doc := repo.docs[enums.PreferenceKindStock]
	if doc == nil {
		t.Fatal("document not persisted")
	}
	decoded, err := DecodePayload(enums.PreferenceKindStock, doc.Payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	last := decoded.AllFieldsInOrder()[6]
	if last.ID() != "custom_storage_bin" {
		t.Fatalf("unexpected persisted field %q", last.ID())
	}
}

func TestServiceSetVisibilityRequiredRejected(t *testing.T) {
	repo := newFakePrefsRepo()
	svc := newPrefsService(t, repo)

	_, err := svc.SetVisibility(context.Background(), enums.PreferenceKindOrder, "itemsSection", false)
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if repo.savedDocs != 0 {
		t.Fatal("rejected mutation must not persist")
	}
}

func TestServiceReplaceRenumbers(t *testing.T) {
	repo := newFakePrefsRepo()
	svc := newPrefsService(t, repo)

	incoming := DefaultPreferences(enums.PreferenceKindOrder)
	for i := range incoming.Fields {
		incoming.Fields[i].SortOrder = i * 10
	}

	saved, err := svc.Replace(context.Background(), incoming)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	for i, f := range saved.AllFieldsInOrder() {
		if f.SortOrder != i {
			t.Fatalf("replace did not renumber: field %s has sortOrder %d", f.ID(), f.SortOrder)
		}
	}
}
