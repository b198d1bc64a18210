package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
	"github.com/ninjadeliveries/booking-engine/internal/domain/repositories"
	"github.com/ninjadeliveries/booking-engine/internal/infrastructure/clients/postgres"
	apperrors "github.com/ninjadeliveries/booking-engine/pkg/errors"
)

// OrderAdapter implements OrderRepository. Items, fare breakdown and slots
// are stored as JSON documents; they are immutable once the order is
// placed, so there is nothing to query inside them.
type OrderAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.OrderRepository = (*OrderAdapter)(nil)

// NewOrderAdapter creates a new order adapter
func NewOrderAdapter(client *postgres.Client) *OrderAdapter {
	return &OrderAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a new order
func (a *OrderAdapter) Create(ctx context.Context, order *entities.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal order items", err)
	}
	fare, err := json.Marshal(order.Fare)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal fare breakdown", err)
	}
	slots, err := json.Marshal(order.Slots)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal slots", err)
	}

	record := goqu.Record{
		"id":          order.ID,
		"user_id":     order.UserID,
		"kind":        order.Kind,
		"items":       items,
		"fare":        fare,
		"promo_code":  sql.NullString{String: order.PromoCode, Valid: order.PromoCode != ""},
		"provider_id": sql.NullString{String: order.ProviderID, Valid: order.ProviderID != ""},
		"slots":       slots,
		"status":      order.Status,
		"created_at":  order.CreatedAt,
		"updated_at":  order.UpdatedAt,
	}

	query, args, err := a.db.Insert("orders").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build order insert", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create order", err)
	}
	return nil
}

// GetByID retrieves an order by ID
func (a *OrderAdapter) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	query, args, err := a.orderSelect().Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build order query", err)
	}

	order, err := a.scanOrder(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("order not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get order", err)
	}
	return order, nil
}

// ListByUser retrieves a user's orders, newest first
func (a *OrderAdapter) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entities.Order, error) {
	if limit <= 0 {
		limit = 20
	}

	query, args, err := a.orderSelect().
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.C("created_at").Desc()).
		Limit(uint(limit)).
		Offset(uint(offset)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build orders query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list orders", err)
	}
	defer rows.Close()

	var orders []*entities.Order
	for rows.Next() {
		order, err := a.scanOrder(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan order row", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate order rows", err)
	}
	return orders, nil
}

func (a *OrderAdapter) orderSelect() *goqu.SelectDataset {
	return a.db.Select(
		"id", "user_id", "kind", "items", "fare", "promo_code",
		"provider_id", "slots", "status", "created_at", "updated_at",
	).From("orders")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (a *OrderAdapter) scanOrder(row rowScanner) (*entities.Order, error) {
	order := &entities.Order{}
	var items, fare, slots []byte
	var promoCode, providerID sql.NullString

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.Kind,
		&items,
		&fare,
		&promoCode,
		&providerID,
		&slots,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(fare, &order.Fare); err != nil {
		return nil, err
	}
	if len(slots) > 0 {
		if err := json.Unmarshal(slots, &order.Slots); err != nil {
			return nil, err
		}
	}
	order.PromoCode = promoCode.String
	order.ProviderID = providerID.String

	return order, nil
}
