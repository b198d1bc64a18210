package services

import (
	"context"

	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
	"github.com/ninjadeliveries/booking-engine/internal/domain/repositories"
	"github.com/ninjadeliveries/booking-engine/internal/infrastructure/observability"
	"github.com/ninjadeliveries/booking-engine/internal/pricing"
)

// QuantityOfferService prices a quantity against a product's offer tiers
type QuantityOfferService struct {
	offerRepo repositories.QuantityOfferRepository
}

// NewQuantityOfferService creates a new quantity offer service
func NewQuantityOfferService(offerRepo repositories.QuantityOfferRepository) *QuantityOfferService {
	return &QuantityOfferService{offerRepo: offerRepo}
}

// PriceQuantityOffer resolves the effective unit and total price for a
// product at a quantity. A failed tier lookup degrades to base pricing;
// the user still sees a price.
func (s *QuantityOfferService) PriceQuantityOffer(ctx context.Context, productID string, baseUnitPrice float64, quantity int) entities.TieredPriceResult {
	var tiers []entities.QuantityOfferTier
	if s.offerRepo != nil {
		loaded, err := s.offerRepo.ListByProduct(ctx, productID)
		if err != nil {
			observability.LoggerFromContext(ctx).Warn().
				Err(err).
				Str("product_id", productID).
				Msg("quantity offer lookup failed, pricing at base")
		} else {
			tiers = loaded
		}
	}
	return pricing.ResolveTieredPrice(baseUnitPrice, quantity, tiers)
}
