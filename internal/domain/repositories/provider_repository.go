package repositories

import (
	"context"

	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
)

// ProviderRepository defines the interface for provider/worker reads
type ProviderRepository interface {
	// GetByID retrieves a provider with its worker roster
	GetByID(ctx context.Context, id string) (*entities.Provider, error)

	// ListByCategory retrieves active providers for a service category
	ListByCategory(ctx context.Context, categoryID string) ([]*entities.Provider, error)
}

// ZoneRepository defines the interface for zone reads
type ZoneRepository interface {
	// ListActive retrieves all active zones
	ListActive(ctx context.Context) ([]entities.Zone, error)
}

// QuantityOfferRepository supplies tiered quantity offers for a product
type QuantityOfferRepository interface {
	// ListByProduct retrieves the offer tiers declared for a product, in
	// declaration order
	ListByProduct(ctx context.Context, productID string) ([]entities.QuantityOfferTier, error)
}
