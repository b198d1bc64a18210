package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
	"github.com/ninjadeliveries/booking-engine/internal/domain/repositories"
	"github.com/ninjadeliveries/booking-engine/internal/infrastructure/clients/postgres"
	apperrors "github.com/ninjadeliveries/booking-engine/pkg/errors"
)

// PricingConfigAdapter implements PricingConfigRepository over the catalog
// delivery_fare_parameters table
type PricingConfigAdapter struct {
	client *postgres.Client
	db     *goqu.Database

	// now is swappable for surge window tests
	now func() time.Time
}

var _ repositories.PricingConfigRepository = (*PricingConfigAdapter)(nil)

// NewPricingConfigAdapter creates a new pricing config adapter
func NewPricingConfigAdapter(client *postgres.Client) *PricingConfigAdapter {
	return &PricingConfigAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
		now:    time.Now,
	}
}

// GetDeliveryFareParameters retrieves the fare parameters for a store
func (a *PricingConfigAdapter) GetDeliveryFareParameters(ctx context.Context, storeID string) (*entities.DeliveryFareParameters, error) {
	query, args, err := a.db.Select(
		"base_charge", "distance_threshold_km", "per_km_charge_beyond_threshold",
		"gst_percent_on_delivery", "platform_fee", "surge_fee",
	).From("delivery_fare_parameters").
		Where(goqu.Ex{"store_id": storeID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build fare parameters query", err)
	}

	params := &entities.DeliveryFareParameters{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&params.BaseCharge,
		&params.DistanceThresholdKm,
		&params.PerKmChargeBeyondThreshold,
		&params.GSTPercentOnDelivery,
		&params.PlatformFee,
		&params.SurgeFee,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("delivery fare parameters not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get delivery fare parameters", err)
	}

	return params, nil
}

// IsSurgeActive reports whether the store is inside a configured surge
// window right now
func (a *PricingConfigAdapter) IsSurgeActive(ctx context.Context, storeID string) (bool, error) {
	now := a.now()

	query, args, err := a.db.Select(goqu.COUNT("*")).From("surge_windows").
		Where(
			goqu.Ex{"store_id": storeID},
			goqu.C("starts_at").Lte(now),
			goqu.C("ends_at").Gt(now),
		).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build surge window query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, apperrors.NewInternalError("failed to check surge window", err)
	}
	return count > 0, nil
}
