package model

import "time"

// CartStatus is the lifecycle state of a cart. A cart in any state other
// than CartStatusActive is an order.
type CartStatus string

const (
	CartStatusActive         CartStatus = "active"
	CartStatusWaitingPayment CartStatus = "waiting_payment"
	CartStatusPaid           CartStatus = "paid"
	CartStatusShipped        CartStatus = "shipped"
	CartStatusCompleted      CartStatus = "completed"
	CartStatusCancelled      CartStatus = "cancelled"
)

// ItemStatus is the per-item flag derived from the owning cart's status.
type ItemStatus string

const (
	ItemStatusInCart    ItemStatus = "in_cart"
	ItemStatusOrdered   ItemStatus = "ordered"
	ItemStatusReceived  ItemStatus = "received"
	ItemStatusCancelled ItemStatus = "cancelled"
)

// CartStatuses lists every known cart status in lifecycle order.
var CartStatuses = []CartStatus{
	CartStatusActive,
	CartStatusWaitingPayment,
	CartStatusPaid,
	CartStatusShipped,
	CartStatusCompleted,
	CartStatusCancelled,
}

// transitions holds the statuses reachable from each status through an
// explicit status update. Leaving active happens only on checkout.
var transitions = map[CartStatus][]CartStatus{
	CartStatusActive:         nil,
	CartStatusWaitingPayment: {CartStatusPaid, CartStatusCancelled},
	CartStatusPaid:           {CartStatusShipped, CartStatusCancelled},
	CartStatusShipped:        {CartStatusCompleted},
	CartStatusCompleted:      nil,
	CartStatusCancelled:      nil,
}

// ParseCartStatus validates a raw status string.
func ParseCartStatus(s string) (CartStatus, bool) {
	status := CartStatus(s)
	_, ok := transitions[status]
	return status, ok
}

// CanTransitionTo reports whether a status update from s to next is allowed.
func (s CartStatus) CanTransitionTo(next CartStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsOrder reports whether the cart has been checked out.
func (s CartStatus) IsOrder() bool {
	return s != CartStatusActive
}

// ItemStatus maps the cart status onto the flag carried by its items.
func (s CartStatus) ItemStatus() ItemStatus {
	switch s {
	case CartStatusActive:
		return ItemStatusInCart
	case CartStatusCompleted:
		return ItemStatusReceived
	case CartStatusCancelled:
		return ItemStatusCancelled
	default:
		return ItemStatusOrdered
	}
}

// Cart is either the user's active cart or a checked-out order.
type Cart struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user_id" gorm:"not null;index:idx_carts_user_status"`
	Status    CartStatus `json:"status" gorm:"type:varchar(32);not null;default:'active';index:idx_carts_user_status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relations
	Items []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// CartItem is a product line inside a cart.
type CartItem struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	CartID    *uint      `json:"cart_id" gorm:"index"`
	ProductID uint       `json:"product_id" gorm:"not null;index"`
	Quantity  int        `json:"quantity" gorm:"not null;default:1"`
	Status    ItemStatus `json:"status" gorm:"type:varchar(32);not null;default:'in_cart'"`
	CreatedAt time.Time  `json:"created_at"`
}
