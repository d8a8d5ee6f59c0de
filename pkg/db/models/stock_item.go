package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocknote/stocknote-backend/pkg/enums"
	"github.com/stocknote/stocknote-backend/pkg/types"
)

// StockItem is a tracked inventory unit. Deleting a stock item nullifies the
// order item references that point at it; order history keeps its rows.
type StockItem struct {
	ID         uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string             `gorm:"column:name;not null" json:"name"`
	Quantity   int                `gorm:"column:quantity;not null;default:0" json:"quantity"`
	Price      decimal.Decimal    `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Cost       decimal.Decimal    `gorm:"column:cost;type:numeric(12,2);not null" json:"cost"`
	Currency   enums.Currency     `gorm:"column:currency;type:text;not null;default:'USD'" json:"currency"`
	CategoryID *uuid.UUID         `gorm:"column:category_id;type:uuid" json:"category_id,omitempty"`
	Category   *Category          `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Notes      *string            `gorm:"column:notes" json:"notes,omitempty"`
	Attributes types.AttributeMap `gorm:"column:attributes;type:jsonb;serializer:json" json:"attributes,omitempty"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
