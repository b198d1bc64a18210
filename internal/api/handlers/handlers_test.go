package handlers_test

import (
	"context"
	"errors"

	"github.com/ninjadeliveries/booking-engine/internal/application/services"
	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
	"github.com/ninjadeliveries/booking-engine/pkg/config"
	apperrors "github.com/ninjadeliveries/booking-engine/pkg/errors"
)

// Shared in-memory collaborators for handler tests.

type stubPricingConfigRepo struct {
	params *entities.DeliveryFareParameters
	surge  bool
}

func (s *stubPricingConfigRepo) GetDeliveryFareParameters(ctx context.Context, storeID string) (*entities.DeliveryFareParameters, error) {
	if s.params == nil {
		return nil, apperrors.NewNotFoundError("no fare parameters")
	}
	return s.params, nil
}

func (s *stubPricingConfigRepo) IsSurgeActive(ctx context.Context, storeID string) (bool, error) {
	return s.surge, nil
}

type stubPromoRepo struct {
	promos map[string]*entities.PromoCode
	used   []string
}

func (s *stubPromoRepo) GetByCode(ctx context.Context, code string) (*entities.PromoCode, error) {
	if p, ok := s.promos[code]; ok {
		return p, nil
	}
	return nil, apperrors.NewNotFoundError("promo not found")
}

func (s *stubPromoRepo) MarkUsed(ctx context.Context, code, userID string) error {
	s.used = append(s.used, code+"|"+userID)
	return nil
}

type stubZoneRepo struct {
	zones []entities.Zone
}

func (s *stubZoneRepo) ListActive(ctx context.Context) ([]entities.Zone, error) {
	return s.zones, nil
}

type stubOrderRepo struct {
	orders  map[string]*entities.Order
	created []*entities.Order
	fail    bool
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*entities.Order)}
}

func (s *stubOrderRepo) Create(ctx context.Context, order *entities.Order) error {
	if s.fail {
		return errors.New("db down")
	}
	s.created = append(s.created, order)
	s.orders[order.ID] = order
	return nil
}

func (s *stubOrderRepo) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	if o, ok := s.orders[id]; ok {
		return o, nil
	}
	return nil, apperrors.NewNotFoundError("order not found")
}

func (s *stubOrderRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.Order, error) {
	var out []*entities.Order
	for _, o := range s.created {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

type stubDistance struct {
	km float64
}

func (s *stubDistance) DistanceKm(ctx context.Context, origin, destination entities.Coordinates) (float64, error) {
	return s.km, nil
}

func (s *stubDistance) DistancesKm(ctx context.Context, origin entities.Coordinates, destinations []entities.Coordinates) ([]float64, error) {
	out := make([]float64, len(destinations))
	for i := range out {
		out[i] = s.km
	}
	return out, nil
}

type stubOfferRepo struct {
	tiers []entities.QuantityOfferTier
}

func (s *stubOfferRepo) ListByProduct(ctx context.Context, productID string) ([]entities.QuantityOfferTier, error) {
	return s.tiers, nil
}

type stubProviderRepo struct {
	providers []*entities.Provider
}

func (s *stubProviderRepo) GetByID(ctx context.Context, id string) (*entities.Provider, error) {
	for _, p := range s.providers {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperrors.NewNotFoundError("provider not found")
}

func (s *stubProviderRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entities.Provider, error) {
	return s.providers, nil
}

type stubAvailability struct {
	unavailable map[string]bool
}

func (s *stubAvailability) HasActiveWorkers(ctx context.Context, providerID string) (bool, error) {
	return true, nil
}

func (s *stubAvailability) IsAvailableForSlot(ctx context.Context, providerID string, slot entities.Slot, serviceIDs []string) (bool, error) {
	return !s.unavailable[providerID], nil
}

func (s *stubAvailability) ProvidersWithSlotAvailability(ctx context.Context, categoryID string, serviceIDs []string, slot entities.Slot, serviceName string) ([]entities.ProviderAvailability, error) {
	return nil, errors.New("bulk endpoint not supported")
}

func testDeliveryParams() *entities.DeliveryFareParameters {
	return &entities.DeliveryFareParameters{
		BaseCharge:                 40,
		DistanceThresholdKm:        5,
		PerKmChargeBeyondThreshold: 8,
		GSTPercentOnDelivery:       18,
		PlatformFee:                5,
		SurgeFee:                   20,
	}
}

func newTestCheckoutService(promo *stubPromoRepo, orders *stubOrderRepo) *services.CheckoutService {
	if promo == nil {
		promo = &stubPromoRepo{}
	}
	if orders == nil {
		orders = newStubOrderRepo()
	}
	return services.NewCheckoutService(
		promo,
		&stubPricingConfigRepo{params: testDeliveryParams()},
		&stubZoneRepo{},
		orders,
		&stubDistance{km: 2},
		nil,
		config.PricingConfig{},
	)
}
