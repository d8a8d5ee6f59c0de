package stock

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocknote/stocknote-backend/pkg/db/models"
	"github.com/stocknote/stocknote-backend/pkg/enums"
	"github.com/stocknote/stocknote-backend/pkg/types"
)

// Filters describe the inputs supported by the stock list.
type Filters struct {
	CategoryID *uuid.UUID
	Query      string
	InStock    *bool
}

// Input carries the writable stock item fields.
type Input struct {
	Name       string             `json:"name" validate:"required,max=200"`
	Quantity   int                `json:"quantity" validate:"gte=0"`
	Price      decimal.Decimal    `json:"price"`
	Cost       decimal.Decimal    `json:"cost"`
	Currency   enums.Currency     `json:"currency"`
	CategoryID *uuid.UUID         `json:"category_id"`
	Notes      *string            `json:"notes" validate:"omitempty,max=2000"`
	Attributes types.AttributeMap `json:"attributes"`
}

// AdjustInput is a relative quantity change. Negative deltas record sales or
// losses; the resulting quantity may not go below zero.
type AdjustInput struct {
	Delta int `json:"delta" validate:"required"`
}

// List wraps the paginated stock items plus the next page cursor.
type List struct {
	Items      []models.StockItem `json:"items"`
	NextCursor string             `json:"next_cursor,omitempty"`
}
