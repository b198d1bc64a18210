package repositories

import (
	"context"

	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
)

// OrderRepository persists confirmed orders and bookings
type OrderRepository interface {
	// Create persists a new order
	Create(ctx context.Context, order *entities.Order) error

	// GetByID retrieves an order by ID
	GetByID(ctx context.Context, id string) (*entities.Order, error)

	// ListByUser retrieves a user's orders, newest first
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.Order, error)
}
