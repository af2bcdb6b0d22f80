package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is an entry of the shared catalog. CategoryID is nil for
// uncategorized products.
type Product struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	Name       string          `json:"name" gorm:"size:255;not null"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CategoryID *uint           `json:"category_id" gorm:"index"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
