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

// ProviderAdapter implements ProviderRepository
type ProviderAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.ProviderRepository = (*ProviderAdapter)(nil)

// NewProviderAdapter creates a new provider adapter
func NewProviderAdapter(client *postgres.Client) *ProviderAdapter {
	return &ProviderAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a provider with its worker roster
func (a *ProviderAdapter) GetByID(ctx context.Context, id string) (*entities.Provider, error) {
	query, args, err := a.db.Select(
		"id", "name", "category_id", "rating", "is_active",
	).From("providers").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build provider query", err)
	}

	p := &entities.Provider{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.CategoryID,
		&p.Rating,
		&p.IsActive,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("provider not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get provider", err)
	}

	workers, err := a.workersFor(ctx, []string{p.ID})
	if err != nil {
		return nil, err
	}
	p.Workers = workers[p.ID]

	return p, nil
}

// ListByCategory retrieves active providers for a service category,
// including worker rosters, highest rated first
func (a *ProviderAdapter) ListByCategory(ctx context.Context, categoryID string) ([]*entities.Provider, error) {
	query, args, err := a.db.Select(
		"id", "name", "category_id", "rating", "is_active",
	).From("providers").
		Where(goqu.Ex{"category_id": categoryID, "is_active": true}).
		Order(goqu.C("rating").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build providers query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list providers", err)
	}
	defer rows.Close()

	var result []*entities.Provider
	var ids []string
	for rows.Next() {
		p := &entities.Provider{}
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &p.Rating, &p.IsActive); err != nil {
			return nil, apperrors.NewInternalError("failed to scan provider row", err)
		}
		result = append(result, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate provider rows", err)
	}

	if len(ids) == 0 {
		return result, nil
	}

	workers, err := a.workersFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range result {
		p.Workers = workers[p.ID]
	}

	return result, nil
}

// workersFor loads rosters for a set of providers in one query
func (a *ProviderAdapter) workersFor(ctx context.Context, providerIDs []string) (map[string][]entities.Worker, error) {
	query, args, err := a.db.Select(
		"id", "provider_id", "name", "is_active",
	).From("workers").
		Where(goqu.C("provider_id").In(providerIDs)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build workers query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list workers", err)
	}
	defer rows.Close()

	workers := make(map[string][]entities.Worker)
	for rows.Next() {
		var w entities.Worker
		var providerID string
		if err := rows.Scan(&w.ID, &providerID, &w.Name, &w.IsActive); err != nil {
			return nil, apperrors.NewInternalError("failed to scan worker row", err)
		}
		workers[providerID] = append(workers[providerID], w)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate worker rows", err)
	}
	return workers, nil
}
