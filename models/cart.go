package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionCartEntry is the wire shape stored in the visitor session under the
// "cart" key: {"items": [{"product_id": 1, "quantity": 2}, ...]}.
type SessionCartEntry struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type SessionCart struct {
	Items []SessionCartEntry `json:"items"`
}

type Cart struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CartItem struct {
	ID        int64     `json:"id"`
	CartID    int64     `json:"cart_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subtotal is selling price times quantity for this row.
func (ci *CartItem) Subtotal() decimal.Decimal {
	if ci.Product == nil {
		return decimal.Zero
	}
	return ci.Product.GetPrice().Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

// CartItemView is a session cart entry resolved against the catalog,
// annotated with derived pricing for one line.
type CartItemView struct {
	ProductID    int64           `json:"product_id"`
	Quantity     int             `json:"quantity"`
	Product      *Product        `json:"product"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
	LineDiscount decimal.Decimal `json:"line_discount"`
}
