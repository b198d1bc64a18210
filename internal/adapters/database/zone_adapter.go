package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
	"github.com/ninjadeliveries/booking-engine/internal/domain/repositories"
	"github.com/ninjadeliveries/booking-engine/internal/infrastructure/clients/postgres"
	apperrors "github.com/ninjadeliveries/booking-engine/pkg/errors"
)

// ZoneAdapter implements ZoneRepository
type ZoneAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.ZoneRepository = (*ZoneAdapter)(nil)

// NewZoneAdapter creates a new zone adapter
func NewZoneAdapter(client *postgres.Client) *ZoneAdapter {
	return &ZoneAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListActive retrieves all active zones in declaration order
func (a *ZoneAdapter) ListActive(ctx context.Context) ([]entities.Zone, error) {
	query, args, err := a.db.Select(
		"id", "name", "latitude", "longitude", "radius_km", "fee", "is_active",
	).From("zones").
		Where(goqu.Ex{"is_active": true}).
		Order(goqu.C("position").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build zones query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list zones", err)
	}
	defer rows.Close()

	var zones []entities.Zone
	for rows.Next() {
		var z entities.Zone
		if err := rows.Scan(
			&z.ID,
			&z.Name,
			&z.Center.Latitude,
			&z.Center.Longitude,
			&z.RadiusKm,
			&z.Fee,
			&z.IsActive,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan zone row", err)
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate zone rows", err)
	}
	return zones, nil
}
