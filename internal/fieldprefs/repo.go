package fieldprefs

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stocknote/stocknote-backend/pkg/db/models"
	"github.com/stocknote/stocknote-backend/pkg/enums"
)

// Repository defines persistence for preference documents and the legacy
// key-value rows they superseded.
type Repository interface {
	FindDocument(ctx context.Context, kind enums.PreferenceKind) (*models.PreferenceDocument, error)
	SaveDocument(ctx context.Context, doc *models.PreferenceDocument) error
	FindLegacy(ctx context.Context, key string) (*models.LegacySetting, error)
	DeleteLegacy(ctx context.Context, key string) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a preference repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindDocument(ctx context.Context, kind enums.PreferenceKind) (*models.PreferenceDocument, error) {
	var doc models.PreferenceDocument
	err := r.db.WithContext(ctx).
		Where("kind = ? AND doc_id = ?", kind, models.DefaultDocumentID).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// SaveDocument replaces the document wholesale, bumping the stored version.
func (r *repository) SaveDocument(ctx context.Context, doc *models.PreferenceDocument) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "kind"}, {Name: "doc_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"payload": doc.Payload,
			"version": gorm.Expr("preference_documents.version + 1"),
		}),
	}).Create(doc).Error
}

func (r *repository) FindLegacy(ctx context.Context, key string) (*models.LegacySetting, error) {
	var row models.LegacySetting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) DeleteLegacy(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&models.LegacySetting{}).Error
}
