package models

import (
	"time"

	"github.com/stocknote/stocknote-backend/pkg/enums"
)

// DefaultDocumentID is the fixed identifier of the singleton preference
// document per kind.
const DefaultDocumentID = "default"

// PreferenceDocument stores a field-preference list as an opaque JSON blob.
// Writes replace the payload wholesale; Version increases monotonically.
type PreferenceDocument struct {
	Kind      enums.PreferenceKind `gorm:"column:kind;type:text;primaryKey" json:"kind"`
	DocID     string               `gorm:"column:doc_id;type:text;primaryKey;default:'default'" json:"doc_id"`
	Payload   []byte               `gorm:"column:payload;type:jsonb;not null" json:"payload"`
	Version   int                  `gorm:"column:version;not null;default:1" json:"version"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName keeps the table name explicit.
func (PreferenceDocument) TableName() string {
	return "preference_documents"
}
