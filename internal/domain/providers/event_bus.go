package providers

import (
	"context"
	"time"
)

// OrderEvent is the payload published when an order or booking changes state
type OrderEvent struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	UserID     string    `json:"user_id"`
	EventType  string    `json:"event_type"`
	GrandTotal float64   `json:"grand_total"`
	ProviderID string    `json:"provider_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventBus defines the interface for publishing order lifecycle events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *OrderEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *OrderEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}

// Event channel constants
const (
	// EventChannelOrders carries all order lifecycle events
	EventChannelOrders = "orders:events"

	// EventTypeOrderCreated is published when a delivery order is placed
	EventTypeOrderCreated = "order.created"

	// EventTypeBookingCreated is published when a service booking is placed
	EventTypeBookingCreated = "booking.created"
)
