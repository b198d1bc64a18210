package repositories

import (
	"context"

	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
)

// PromoRepository defines the interface for promo code reads. The engine
// never writes promo definitions; MarkUsed only records a redemption.
type PromoRepository interface {
	// GetByCode retrieves an active promo code
	GetByCode(ctx context.Context, code string) (*entities.PromoCode, error)

	// MarkUsed records that a user redeemed the code
	MarkUsed(ctx context.Context, code, userID string) error
}

// PricingConfigRepository supplies delivery fare parameters from the catalog
type PricingConfigRepository interface {
	// GetDeliveryFareParameters retrieves the fare parameters for a store
	GetDeliveryFareParameters(ctx context.Context, storeID string) (*entities.DeliveryFareParameters, error)

	// IsSurgeActive reports whether the surge window currently applies
	IsSurgeActive(ctx context.Context, storeID string) (bool, error)
}
