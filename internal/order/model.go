package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Total           decimal.Decimal `json:"total"`
	Status          Status          `json:"status"`
	ShippingAddress string          `json:"shipping_address"`
	Phone           string          `json:"phone"`
	Notes           *string         `json:"notes,omitempty"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	ShippedAt       *time.Time      `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Lines           []OrderLine     `json:"lines,omitempty"`
}

// CanBeCancelled reports whether cancellation is still a legal retraction.
func (o *Order) CanBeCancelled() bool {
	return o.Status == StatusPending || o.Status == StatusPaid
}

type OrderLine struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CheckoutInfo struct {
	ShippingAddress string `validate:"required"`
	Phone           string `validate:"required"`
	Notes           *string
}

type ListFilter struct {
	Status *Status
	Limit  *int32
	Page   *int32
}
