package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductView is a product joined with its category name.
type ProductView struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   *uint           `json:"category_id"`
	CategoryName *string         `json:"category_name"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CartLine is an item of a cart joined with its product.
type CartLine struct {
	CartItemID  uint            `json:"cart_item_id"`
	CartID      uint            `json:"-"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Subtotal is price times quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartView is the active cart as shown to its owner.
type CartView struct {
	CartID uint            `json:"cart_id,omitempty"`
	Items  []CartLine      `json:"items"`
	Total  decimal.Decimal `json:"total"`
}

// Order is a checked-out cart with its lines.
type Order struct {
	CartID    uint            `json:"cart_id"`
	Status    CartStatus      `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	Items     []CartLine      `json:"items"`
	Total     decimal.Decimal `json:"total"`
}

// Dashboard is everything the shop page needs for one user.
type Dashboard struct {
	Username   string        `json:"username"`
	Categories []Category    `json:"categories"`
	Products   []ProductView `json:"products"`
	Cart       CartView      `json:"cart"`
}

// Total sums the subtotals of lines.
func Total(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
