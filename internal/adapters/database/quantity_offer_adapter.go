package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
	"github.com/ninjadeliveries/booking-engine/internal/domain/repositories"
	"github.com/ninjadeliveries/booking-engine/internal/infrastructure/clients/postgres"
	apperrors "github.com/ninjadeliveries/booking-engine/pkg/errors"
)

// QuantityOfferAdapter implements QuantityOfferRepository. The raw catalog
// records carry loose discount kind strings; normalization to the closed
// enum happens here so the pricing core only ever sees normalized values.
type QuantityOfferAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.QuantityOfferRepository = (*QuantityOfferAdapter)(nil)

// NewQuantityOfferAdapter creates a new quantity offer adapter
func NewQuantityOfferAdapter(client *postgres.Client) *QuantityOfferAdapter {
	return &QuantityOfferAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListByProduct retrieves the offer tiers declared for a product, in
// declaration order
func (a *QuantityOfferAdapter) ListByProduct(ctx context.Context, productID string) ([]entities.QuantityOfferTier, error) {
	query, args, err := a.db.Select(
		"id", "active", "min_quantity", "discount_kind", "discount_value",
		"explicit_unit_price", "message",
	).From("quantity_offers").
		Where(goqu.Ex{"product_id": productID}).
		Order(goqu.C("position").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build quantity offers query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list quantity offers", err)
	}
	defer rows.Close()

	var tiers []entities.QuantityOfferTier
	for rows.Next() {
		var t entities.QuantityOfferTier
		var active sql.NullBool
		var rawKind sql.NullString
		var explicit sql.NullFloat64
		var message sql.NullString
		if err := rows.Scan(
			&t.ID,
			&active,
			&t.MinQuantity,
			&rawKind,
			&t.DiscountValue,
			&explicit,
			&message,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan quantity offer row", err)
		}
		if active.Valid {
			v := active.Bool
			t.Active = &v
		}
		if explicit.Valid {
			v := explicit.Float64
			t.ExplicitUnitPrice = &v
		}
		t.Message = message.String
		t.DiscountKind = NormalizeTierKind(rawKind.String)
		tiers = append(tiers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate quantity offer rows", err)
	}
	return tiers, nil
}

// NormalizeTierKind maps the loose kind strings found in catalog records
// onto the closed enum. Unrecognized kinds behave as flat per-unit
// discounts downstream, so that is the default here too.
func NormalizeTierKind(raw string) entities.TierDiscountKind {
	switch raw {
	case "percent", "percentage", "percentOff":
		return entities.TierDiscountPercent
	case "unitPrice", "explicitUnitPrice", "fixedUnitPrice":
		return entities.TierDiscountExplicitUnitPrice
	case "flat", "perUnit", "discount", "perUnitFlat":
		return entities.TierDiscountPerUnitFlat
	default:
		return entities.TierDiscountPerUnitFlat
	}
}
