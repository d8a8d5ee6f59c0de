package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups stock items for display and filtering.
type Category struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Color     string    `gorm:"column:color;not null;default:'#8E8E93'" json:"color"`
	Icon      string    `gorm:"column:icon;not null;default:'tag'" json:"icon"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
