package database

import (
	"context"
	"encoding/json"

	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
	"github.com/ninjadeliveries/booking-engine/internal/domain/providers"
	"github.com/ninjadeliveries/booking-engine/internal/domain/repositories"
	"github.com/ninjadeliveries/booking-engine/internal/infrastructure/observability"
)

// CachedZoneAdapter wraps a ZoneRepository with caching. Zones change
// rarely and are read on every fare computation, so a short TTL removes
// most catalog round trips.
type CachedZoneAdapter struct {
	adapter repositories.ZoneRepository
	cache   providers.CacheProvider
}

// NewCachedZoneAdapter creates a new cached zone adapter
func NewCachedZoneAdapter(adapter repositories.ZoneRepository, cache providers.CacheProvider) repositories.ZoneRepository {
	return &CachedZoneAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

const (
	activeZonesCacheKey = "zones:active"
	activeZonesTTL      = 300 // seconds
)

// ListActive retrieves active zones with caching
func (a *CachedZoneAdapter) ListActive(ctx context.Context) ([]entities.Zone, error) {
	if cached, err := a.cache.Get(ctx, activeZonesCacheKey); err == nil {
		var zones []entities.Zone
		unmarshalErr := json.Unmarshal(cached, &zones)
		if unmarshalErr == nil {
			return zones, nil
		}
		observability.LoggerFromContext(ctx).Warn().
			Err(unmarshalErr).
			Msg("failed to unmarshal cached zones, refetching")
	}

	zones, err := a.adapter.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	// Cache update happens off the request path.
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(zones); err == nil {
			if err := a.cache.Set(bgCtx, activeZonesCacheKey, data, activeZonesTTL); err != nil {
				observability.GetLogger().Warn().Err(err).Msg("failed to cache zones")
			}
		}
	}()

	return zones, nil
}
