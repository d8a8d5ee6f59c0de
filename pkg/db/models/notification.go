package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stocknote/stocknote-backend/pkg/enums"
)

// Notification stores in-app notification payloads, including swept order
// reminders.
type Notification struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Type      enums.NotificationType `gorm:"column:type;type:text;not null" json:"type"`
	Title     string                 `gorm:"column:title;type:text;not null" json:"title"`
	Message   string                 `gorm:"column:message;type:text;not null" json:"message"`
	Link      *string                `gorm:"column:link;type:text" json:"link,omitempty"`
	ReadAt    *time.Time             `gorm:"column:read_at;type:timestamptz" json:"read_at,omitempty"`
	CreatedAt time.Time              `gorm:"column:created_at;type:timestamptz;default:now()" json:"created_at"`
}
