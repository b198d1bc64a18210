package services

import (
	"context"

	"github.com/ninjadeliveries/booking-engine/internal/availability"
	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
	"github.com/ninjadeliveries/booking-engine/internal/domain/providers"
	"github.com/ninjadeliveries/booking-engine/internal/domain/repositories"
	"github.com/ninjadeliveries/booking-engine/internal/infrastructure/observability"
	apperrors "github.com/ninjadeliveries/booking-engine/pkg/errors"
)

// ProviderSelectionService filters a category's providers down to those
// able to fulfil a requested booking. It owns the availability cache: one
// cache per service instance, scoped to the current selection context.
type ProviderSelectionService struct {
	providerRepo repositories.ProviderRepository
	remote       providers.AvailabilityProvider
	cache        *availability.Cache
	resolver     *availability.Resolver
}

// NewProviderSelectionService creates a new provider selection service
func NewProviderSelectionService(
	providerRepo repositories.ProviderRepository,
	remote providers.AvailabilityProvider,
	providerConcurrency, slotConcurrency int,
) *ProviderSelectionService {
	cache := availability.NewCache()
	return &ProviderSelectionService{
		providerRepo: providerRepo,
		remote:       remote,
		cache:        cache,
		resolver:     availability.NewResolver(remote, cache, providerConcurrency, slotConcurrency),
	}
}

// SelectionRequest describes one booking draft's provider search
type SelectionRequest struct {
	CategoryID   string
	ServiceIDs   []string
	ServiceTitle string

	// Slots is one slot, or an ordered contiguous block; a provider
	// qualifies only if every slot is available.
	Slots []entities.Slot
}

// ResolveAvailableProviders returns the providers able to take the booking.
// An empty result is a valid answer, not an error; the screen suggests a
// different slot or location.
func (s *ProviderSelectionService) ResolveAvailableProviders(ctx context.Context, req SelectionRequest) ([]*entities.Provider, error) {
	if len(req.Slots) == 0 {
		return nil, apperrors.NewValidationError("at least one slot is required")
	}

	// Scope the cache to this selection; a changed context discards
	// every memoized check.
	s.cache.ForContext(availability.SelectionContext{
		Date:         req.Slots[0].Date,
		Time:         req.Slots[0].Time,
		ServiceIDs:   req.ServiceIDs,
		ServiceTitle: req.ServiceTitle,
	})

	candidates, err := s.providerRepo.ListByCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []*entities.Provider{}, nil
	}

	// Single-slot searches can use the bulk endpoint: one round trip for
	// the whole category. Any bulk failure falls back to per-provider
	// checks rather than surfacing an error.
	if len(req.Slots) == 1 {
		if eligible, ok := s.resolveBulk(ctx, req, candidates); ok {
			return eligible, nil
		}
	}

	return s.resolver.Filter(ctx, candidates, req.Slots, req.ServiceIDs), nil
}

// resolveBulk asks the bulk endpoint for the whole category's verdicts.
// The second return is false when the endpoint errored or answered empty,
// meaning the caller must use the per-provider path.
func (s *ProviderSelectionService) resolveBulk(ctx context.Context, req SelectionRequest, candidates []*entities.Provider) ([]*entities.Provider, bool) {
	verdicts, err := s.remote.ProvidersWithSlotAvailability(ctx, req.CategoryID, req.ServiceIDs, req.Slots[0], req.ServiceTitle)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("category_id", req.CategoryID).
			Msg("bulk availability failed, falling back to per-provider checks")
		return nil, false
	}
	if len(verdicts) == 0 {
		return nil, false
	}

	available := make(map[string]bool, len(verdicts))
	for _, v := range verdicts {
		available[v.Provider.ID] = v.Available
		// Seed the cache so a subsequent per-provider pass in the same
		// selection context skips the remote call.
		s.cache.Set(availability.SlotKey(v.Provider.ID, req.Slots[0], req.ServiceIDs), v.Available)
	}

	eligible := make([]*entities.Provider, 0, len(candidates))
	for _, p := range candidates {
		if available[p.ID] && p.HasActiveWorker() {
			eligible = append(eligible, p)
		}
	}
	return eligible, true
}
