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

// PromoAdapter implements PromoRepository over the catalog tables
type PromoAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.PromoRepository = (*PromoAdapter)(nil)

// NewPromoAdapter creates a new promo adapter
func NewPromoAdapter(client *postgres.Client) *PromoAdapter {
	return &PromoAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByCode retrieves an active promo code with its redemption history
func (a *PromoAdapter) GetByCode(ctx context.Context, code string) (*entities.PromoCode, error) {
	query, args, err := a.db.Select(
		"code", "discount_kind", "discount_value", "minimum_subtotal", "is_active",
	).From("promo_codes").
		Where(goqu.Ex{"code": code, "is_active": true}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build promo query", err)
	}

	promo := &entities.PromoCode{}
	var minimumSubtotal sql.NullFloat64
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&promo.Code,
		&promo.DiscountKind,
		&promo.DiscountValue,
		&minimumSubtotal,
		&promo.IsActive,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("promo code not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get promo code", err)
	}
	promo.MinimumSubtotal = minimumSubtotal.Float64

	userIDs, err := a.redeemedBy(ctx, code)
	if err != nil {
		return nil, err
	}
	promo.UsedByUserIDs = userIDs

	return promo, nil
}

// MarkUsed records that a user redeemed the code
func (a *PromoAdapter) MarkUsed(ctx context.Context, code, userID string) error {
	record := goqu.Record{
		"code":        code,
		"user_id":     userID,
		"redeemed_at": time.Now(),
	}

	query, args, err := a.db.Insert("promo_redemptions").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build redemption insert", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to record promo redemption", err)
	}
	return nil
}

func (a *PromoAdapter) redeemedBy(ctx context.Context, code string) ([]string, error) {
	query, args, err := a.db.Select("user_id").From("promo_redemptions").
		Where(goqu.Ex{"code": code}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build redemption query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list promo redemptions", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewInternalError("failed to scan redemption row", err)
		}
		userIDs = append(userIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate redemption rows", err)
	}
	return userIDs, nil
}
