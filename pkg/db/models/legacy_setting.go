package models

import "time"

// LegacySetting is the flat key-value store superseded by
// PreferenceDocument. Rows survive only until their one-time migration runs.
type LegacySetting struct {
	Key       string    `gorm:"column:key;type:text;primaryKey" json:"key"`
	Value     string    `gorm:"column:value;type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName keeps the table name explicit.
func (LegacySetting) TableName() string {
	return "legacy_settings"
}
