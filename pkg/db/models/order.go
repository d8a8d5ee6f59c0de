package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocknote/stocknote-backend/pkg/enums"
	"github.com/stocknote/stocknote-backend/pkg/types"
)

// Order records a sale against tracked stock. AdditionalCosts is an
// independently settable scalar; it is never derived from the individual fee
// fields and only it (plus ShippingCost) enters the total calculations.
type Order struct {
	ID                     uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReceivedAt             time.Time          `gorm:"column:received_at;not null" json:"received_at"`
	Reference              *string            `gorm:"column:reference" json:"reference,omitempty"`
	CustomerName           *string            `gorm:"column:customer_name" json:"customer_name,omitempty"`
	Status                 enums.OrderStatus  `gorm:"column:status;type:text;not null;default:'received'" json:"status"`
	Platform               enums.Platform     `gorm:"column:platform;type:text;not null;default:'other'" json:"platform"`
	ShippingCost           decimal.Decimal    `gorm:"column:shipping_cost;type:numeric(12,2);not null;default:0" json:"shipping_cost"`
	SellingFees            decimal.Decimal    `gorm:"column:selling_fees;type:numeric(12,2);not null;default:0" json:"selling_fees"`
	TransactionFees        decimal.Decimal    `gorm:"column:transaction_fees;type:numeric(12,2);not null;default:0" json:"transaction_fees"`
	OtherCosts             decimal.Decimal    `gorm:"column:other_costs;type:numeric(12,2);not null;default:0" json:"other_costs"`
	AdditionalCosts        decimal.Decimal    `gorm:"column:additional_costs;type:numeric(12,2);not null;default:0" json:"additional_costs"`
	CompletionDate         *time.Time         `gorm:"column:completion_date" json:"completion_date,omitempty"`
	ReminderEnabled        bool               `gorm:"column:reminder_enabled;not null;default:false" json:"reminder_enabled"`
	ReminderLeadMinutes    int                `gorm:"column:reminder_lead_minutes;not null;default:0" json:"reminder_lead_minutes"`
	ReminderNotificationID *string            `gorm:"column:reminder_notification_id" json:"reminder_notification_id,omitempty"`
	Notes                  *string            `gorm:"column:notes" json:"notes,omitempty"`
	Attributes             types.AttributeMap `gorm:"column:attributes;type:jsonb;serializer:json" json:"attributes,omitempty"`
	Items                  []OrderItem        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt              time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
