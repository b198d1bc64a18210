package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
	"github.com/ninjadeliveries/booking-engine/internal/domain/providers"
	"github.com/ninjadeliveries/booking-engine/internal/domain/repositories"
	"github.com/ninjadeliveries/booking-engine/internal/infrastructure/observability"
	"github.com/ninjadeliveries/booking-engine/internal/pricing"
	"github.com/ninjadeliveries/booking-engine/pkg/config"
	apperrors "github.com/ninjadeliveries/booking-engine/pkg/errors"
)

// CheckoutService turns a user's raw cart or booking selections into a
// definitive, auditable fare and, on confirmation, a persisted order. Fares
// are recomputed from scratch on every request; nothing about a previous
// computation is kept.
type CheckoutService struct {
	promoRepo   repositories.PromoRepository
	pricingRepo repositories.PricingConfigRepository
	zoneRepo    repositories.ZoneRepository
	orderRepo   repositories.OrderRepository
	distance    providers.DistanceProvider
	eventBus    providers.EventBus
	defaults    config.PricingConfig
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	promoRepo repositories.PromoRepository,
	pricingRepo repositories.PricingConfigRepository,
	zoneRepo repositories.ZoneRepository,
	orderRepo repositories.OrderRepository,
	distance providers.DistanceProvider,
	eventBus providers.EventBus,
	defaults config.PricingConfig,
) *CheckoutService {
	return &CheckoutService{
		promoRepo:   promoRepo,
		pricingRepo: pricingRepo,
		zoneRepo:    zoneRepo,
		orderRepo:   orderRepo,
		distance:    distance,
		eventBus:    eventBus,
		defaults:    defaults,
	}
}

// ComputeFareRequest carries one fare computation's inputs
type ComputeFareRequest struct {
	UserID    string
	StoreID   string
	Items     []entities.LineItem
	PromoCode string
	Origin    entities.Coordinates
	DropOff   entities.Coordinates
}

// ComputeFare produces an itemized fare for the current selections.
// Collaborator failures degrade per the fail-closed rules: an unreachable
// distance lookup counts as zero distance, a failed zone lookup as no zone
// fee. Only an invalid promo code is surfaced, since the user typed it.
func (s *CheckoutService) ComputeFare(ctx context.Context, req ComputeFareRequest) (*entities.FareBreakdown, error) {
	logger := observability.LoggerFromContext(ctx)

	promo, err := s.resolvePromo(ctx, req.PromoCode, req.UserID)
	if err != nil {
		return nil, err
	}

	delivery := s.deliveryParameters(ctx, req.StoreID)
	if delivery == nil {
		// Not yet computable; the caller renders a placeholder.
		breakdown := pricing.Assemble(pricing.FareInput{})
		return &breakdown, nil
	}

	distanceKm, err := s.distance.DistanceKm(ctx, req.Origin, req.DropOff)
	if err != nil {
		logger.Warn().Err(err).Msg("distance lookup failed, treating distance as zero")
		distanceKm = 0
	}

	zoneResult := s.zoneFee(ctx, req.DropOff)

	surge := false
	if s.pricingRepo != nil {
		if active, err := s.pricingRepo.IsSurgeActive(ctx, req.StoreID); err != nil {
			logger.Warn().Err(err).Msg("surge window check failed, not applying surge")
		} else {
			surge = active
		}
	}

	breakdown := pricing.Assemble(pricing.FareInput{
		Items:       req.Items,
		Promo:       promo,
		Delivery:    delivery,
		Zone:        zoneResult,
		SurgeActive: surge,
		DistanceKm:  distanceKm,
	})
	return &breakdown, nil
}

// PlaceOrderRequest carries a confirmed checkout
type PlaceOrderRequest struct {
	ComputeFareRequest

	Kind       entities.OrderKind
	ProviderID string
	Slots      []entities.Slot
}

// PlaceOrder recomputes the fare for the final selections, persists the
// order and publishes its lifecycle event. The stored fare is the one
// computed here, not one the client sent.
func (s *CheckoutService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*entities.Order, error) {
	if len(req.Items) == 0 {
		return nil, apperrors.NewValidationError("order has no items")
	}
	if req.Kind == entities.OrderKindService && req.ProviderID == "" {
		return nil, apperrors.NewValidationError("service booking requires a provider")
	}

	fare, err := s.ComputeFare(ctx, req.ComputeFareRequest)
	if err != nil {
		return nil, err
	}
	if !fare.Computable {
		return nil, apperrors.NewValidationError("fare is not computable yet")
	}

	now := time.Now()
	order := &entities.Order{
		ID:         uuid.New().String(),
		UserID:     req.UserID,
		Kind:       req.Kind,
		Items:      req.Items,
		Fare:       *fare,
		PromoCode:  req.PromoCode,
		ProviderID: req.ProviderID,
		Slots:      req.Slots,
		Status:     entities.OrderStatusPlaced,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	if req.PromoCode != "" && fare.Line(entities.FareLinePromoDiscount) != 0 {
		if err := s.promoRepo.MarkUsed(ctx, req.PromoCode, req.UserID); err != nil {
			observability.LoggerFromContext(ctx).Error().
				Err(err).
				Str("order_id", order.ID).
				Str("promo_code", req.PromoCode).
				Msg("failed to record promo redemption")
		}
	}

	s.publishOrderEvent(ctx, order)

	return order, nil
}

func (s *CheckoutService) resolvePromo(ctx context.Context, code, userID string) (*entities.PromoCode, error) {
	if code == "" {
		return nil, nil
	}

	promo, err := s.promoRepo.GetByCode(ctx, code)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewValidationError("promo code is not valid")
		}
		return nil, err
	}
	if promo.UsedBy(userID) {
		return nil, apperrors.NewValidationError("promo code already used")
	}
	return promo, nil
}

// deliveryParameters loads the store's fare knobs, falling back to the
// configured defaults when the catalog has no record. Any other failure
// means the fare is not computable.
func (s *CheckoutService) deliveryParameters(ctx context.Context, storeID string) *entities.DeliveryFareParameters {
	if s.pricingRepo == nil {
		return s.defaultParameters()
	}

	params, err := s.pricingRepo.GetDeliveryFareParameters(ctx, storeID)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return s.defaultParameters()
		}
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("store_id", storeID).
			Msg("failed to load delivery fare parameters")
		return nil
	}
	return params
}

func (s *CheckoutService) defaultParameters() *entities.DeliveryFareParameters {
	return &entities.DeliveryFareParameters{
		BaseCharge:                 s.defaults.DefaultDeliveryCharge,
		DistanceThresholdKm:        s.defaults.DistanceThresholdKm,
		PerKmChargeBeyondThreshold: s.defaults.PerKmChargeBeyondKm,
		GSTPercentOnDelivery:       s.defaults.DefaultGSTPercent,
		PlatformFee:                s.defaults.DefaultPlatformFee,
		SurgeFee:                   s.defaults.SurgeFee,
	}
}

func (s *CheckoutService) zoneFee(ctx context.Context, dropOff entities.Coordinates) pricing.ZoneFeeResult {
	if s.zoneRepo == nil {
		return pricing.ZoneFeeResult{}
	}

	zones, err := s.zoneRepo.ListActive(ctx)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Msg("zone lookup failed, not applying zone fee")
		return pricing.ZoneFeeResult{}
	}
	return pricing.ResolveZoneFeeRemote(ctx, s.distance, dropOff, zones)
}

func (s *CheckoutService) publishOrderEvent(ctx context.Context, order *entities.Order) {
	if s.eventBus == nil {
		return
	}

	eventType := providers.EventTypeOrderCreated
	if order.Kind == entities.OrderKindService {
		eventType = providers.EventTypeBookingCreated
	}

	event := &providers.OrderEvent{
		ID:         uuid.New().String(),
		OrderID:    order.ID,
		UserID:     order.UserID,
		EventType:  eventType,
		GrandTotal: order.Fare.GrandTotal,
		ProviderID: order.ProviderID,
		OccurredAt: time.Now(),
	}
	if err := s.eventBus.Publish(ctx, providers.EventChannelOrders, event); err != nil {
		observability.LoggerFromContext(ctx).Error().
			Err(err).
			Str("order_id", order.ID).
			Msg("failed to publish order event")
	}
}
