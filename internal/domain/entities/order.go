package entities

import (
	"time"
)

// OrderStatus represents the status of an order or service booking
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderKind distinguishes goods deliveries from service bookings
type OrderKind string

const (
	OrderKindDelivery OrderKind = "delivery"
	OrderKindService  OrderKind = "service"
)

// TaxBreakdown holds the per-unit tax components of a line item
type TaxBreakdown struct {
	CGST float64 `json:"cgst" db:"cgst"`
	SGST float64 `json:"sgst" db:"sgst"`
	Cess float64 `json:"cess" db:"cess"`
}

// Total returns the per-unit tax sum
func (t TaxBreakdown) Total() float64 {
	return t.CGST + t.SGST + t.Cess
}

// LineItem is one priced entry in a cart or booking draft
type LineItem struct {
	ProductID      string       `json:"product_id" db:"product_id"`
	Name           string       `json:"name" db:"name"`
	UnitPrice      float64      `json:"unit_price" db:"unit_price"`
	DiscountAmount float64      `json:"discount_amount" db:"discount_amount"`
	Quantity       int          `json:"quantity" db:"quantity"`
	Tax            TaxBreakdown `json:"tax"`
}

// Order is the payload handed to order creation once the user confirms a
// fare and, for service bookings, a provider
type Order struct {
	ID         string        `json:"id" db:"id"`
	UserID     string        `json:"user_id" db:"user_id"`
	Kind       OrderKind     `json:"kind" db:"kind"`
	Items      []LineItem    `json:"items"`
	Fare       FareBreakdown `json:"fare"`
	PromoCode  string        `json:"promo_code,omitempty" db:"promo_code"`
	ProviderID string        `json:"provider_id,omitempty" db:"provider_id"`
	Slots      []Slot        `json:"slots,omitempty"`
	Status     OrderStatus   `json:"status" db:"status"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" db:"updated_at"`
}
