package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocknote/stocknote-backend/pkg/db/models"
	"github.com/stocknote/stocknote-backend/pkg/enums"
	"github.com/stocknote/stocknote-backend/pkg/types"
)

// Filters describe the inputs supported by the order list.
type Filters struct {
	Status   *enums.OrderStatus
	Platform *enums.Platform
	DateFrom *time.Time
	DateTo   *time.Time
	Query    string
}

// ItemInput is one order line in a create or update request. Lines always
// reference live stock; quantity must be positive.
type ItemInput struct {
	StockItemID uuid.UUID `json:"stock_item_id" validate:"required"`
	Quantity    int       `json:"quantity" validate:"required,gt=0"`
}

// Input carries the writable order fields. Updates replace the item list
// wholesale with whatever the caller sends.
type Input struct {
	ReceivedAt          *time.Time         `json:"received_at"`
	Reference           *string            `json:"reference" validate:"omitempty,max=120"`
	CustomerName        *string            `json:"customer_name" validate:"omitempty,max=200"`
	Status              enums.OrderStatus  `json:"status"`
	Platform            enums.Platform     `json:"platform"`
	ShippingCost        decimal.Decimal    `json:"shipping_cost"`
	SellingFees         decimal.Decimal    `json:"selling_fees"`
	TransactionFees     decimal.Decimal    `json:"transaction_fees"`
	OtherCosts          decimal.Decimal    `json:"other_costs"`
	AdditionalCosts     decimal.Decimal    `json:"additional_costs"`
	CompletionDate      *time.Time         `json:"completion_date"`
	ReminderEnabled     bool               `json:"reminder_enabled"`
	ReminderLeadMinutes int                `json:"reminder_lead_minutes" validate:"gte=0"`
	Notes               *string            `json:"notes" validate:"omitempty,max=2000"`
	Attributes          types.AttributeMap `json:"attributes"`
	Items               []ItemInput        `json:"items" validate:"dive"`
}

// Totals bundles the derived money figures for one order.
type Totals struct {
	ItemsTotal     decimal.Decimal `json:"items_total"`
	ItemsCostTotal decimal.Decimal `json:"items_cost_total"`
	TotalValue     decimal.Decimal `json:"total_value"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	Profit         decimal.Decimal `json:"profit"`
}

// Summary exposes the aggregated fields returned in the order list.
type Summary struct {
	ID           uuid.UUID         `json:"id"`
	ReceivedAt   time.Time         `json:"received_at"`
	Reference    *string           `json:"reference,omitempty"`
	CustomerName *string           `json:"customer_name,omitempty"`
	Status       enums.OrderStatus `json:"status"`
	Platform     enums.Platform    `json:"platform"`
	TotalItems   int               `json:"total_items"`
	TotalValue   decimal.Decimal   `json:"total_value"`
	Profit       decimal.Decimal   `json:"profit"`
	CreatedAt    time.Time         `json:"created_at"`
}

// List wraps the paginated orders plus the next page cursor.
type List struct {
	Orders     []Summary `json:"orders"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// Detail is the full order record with its derived totals attached.
type Detail struct {
	Order  *models.Order `json:"order"`
	Totals Totals        `json:"totals"`
}
