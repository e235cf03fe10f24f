package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartRow is a cart item joined with the product display data the UI needs.
type CartRow struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	ProductID     string          `json:"product_id"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	CreatedAt     time.Time       `json:"created_at"`
	ProductName   string          `json:"product_name"`
	ImageName     *string         `json:"image_name,omitempty"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	Stock         int             `json:"stock"`
	ProductActive bool            `json:"product_active"`
}

// Subtotal is the snapshot price times quantity.
func (r CartRow) Subtotal() decimal.Decimal {
	return r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
}

type AddItemParams struct {
	UserID    string `validate:"required"`
	ProductID string `validate:"required"`
	Quantity  int    `validate:"min=1"`
}

type createItemParams struct {
	UserID    string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}
