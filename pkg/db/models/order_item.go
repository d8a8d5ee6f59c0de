package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem is an order line referencing a stock item. The reference is
// nullified, not cascaded, when the stock item is deleted.
type OrderItem struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID     uuid.UUID  `gorm:"column:order_id;type:uuid;not null" json:"order_id"`
	StockItemID *uuid.UUID `gorm:"column:stock_item_id;type:uuid" json:"stock_item_id,omitempty"`
	StockItem   *StockItem `gorm:"foreignKey:StockItemID;constraint:OnDelete:SET NULL" json:"stock_item,omitempty"`
	Quantity    int        `gorm:"column:quantity;not null;default:1" json:"quantity"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
