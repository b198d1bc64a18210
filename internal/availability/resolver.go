package availability

import (
	"context"

	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
	"github.com/ninjadeliveries/booking-engine/internal/domain/providers"
	"github.com/ninjadeliveries/booking-engine/internal/infrastructure/observability"
	"github.com/ninjadeliveries/booking-engine/pkg/workpool"
)

const (
	defaultProviderConcurrency = 5
	defaultSlotConcurrency     = 2
)

// Resolver filters candidate providers against required slots. Remote
// checks run through a bounded worker pool; every uncertain or failed check
// counts as unavailable.
type Resolver struct {
	remote        providers.AvailabilityProvider
	cache         *Cache
	providerLimit int
	slotLimit     int
}

// NewResolver creates a resolver around a remote availability collaborator
// and a selection-scoped cache.
func NewResolver(remote providers.AvailabilityProvider, cache *Cache, providerLimit, slotLimit int) *Resolver {
	if providerLimit < 1 {
		providerLimit = defaultProviderConcurrency
	}
	if slotLimit < 1 {
		slotLimit = defaultSlotConcurrency
	}
	return &Resolver{
		remote:        remote,
		cache:         cache,
		providerLimit: providerLimit,
		slotLimit:     slotLimit,
	}
}

// Filter returns the providers able to fulfil every required slot, in the
// candidates' original order. A provider without an active worker is
// excluded before any slot check; a single unavailable slot excludes the
// provider entirely. Remote errors exclude the provider and are logged,
// never surfaced to the caller as a failure.
func (r *Resolver) Filter(ctx context.Context, candidates []*entities.Provider, requiredSlots []entities.Slot, serviceIDs []string) []*entities.Provider {
	if len(candidates) == 0 || len(requiredSlots) == 0 {
		return []*entities.Provider{}
	}

	tasks := make([]workpool.Task[bool], len(candidates))
	for i, p := range candidates {
		p := p
		tasks[i] = func(ctx context.Context) (bool, error) {
			return r.providerEligible(ctx, p, requiredSlots, serviceIDs), nil
		}
	}

	results := workpool.Run(ctx, tasks, r.providerLimit)

	eligible := make([]*entities.Provider, 0, len(candidates))
	for i, res := range results {
		if res.Value {
			eligible = append(eligible, candidates[i])
		}
	}
	return eligible
}

func (r *Resolver) providerEligible(ctx context.Context, p *entities.Provider, requiredSlots []entities.Slot, serviceIDs []string) bool {
	if !r.hasActiveWorkers(ctx, p.ID) {
		return false
	}

	tasks := make([]workpool.Task[bool], len(requiredSlots))
	for i, slot := range requiredSlots {
		slot := slot
		tasks[i] = func(ctx context.Context) (bool, error) {
			return r.slotAvailable(ctx, p.ID, slot, serviceIDs), nil
		}
	}

	for _, res := range workpool.Run(ctx, tasks, r.slotLimit) {
		if !res.Value {
			return false
		}
	}
	return true
}

func (r *Resolver) hasActiveWorkers(ctx context.Context, providerID string) bool {
	key := WorkerKey(providerID)
	if v, ok := r.cache.Get(key); ok {
		return v
	}

	ok, err := r.remote.HasActiveWorkers(ctx, providerID)
	if err != nil {
		// Fail closed; the miss is not cached so a later attempt can
		// recover.
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("provider_id", providerID).
			Msg("active worker check failed, excluding provider")
		return false
	}

	r.cache.Set(key, ok)
	return ok
}

func (r *Resolver) slotAvailable(ctx context.Context, providerID string, slot entities.Slot, serviceIDs []string) bool {
	key := SlotKey(providerID, slot, serviceIDs)
	if v, ok := r.cache.Get(key); ok {
		return v
	}

	ok, err := r.remote.IsAvailableForSlot(ctx, providerID, slot, serviceIDs)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("provider_id", providerID).
			Str("slot_date", slot.Date).
			Str("slot_time", slot.Time).
			Msg("slot availability check failed, treating as unavailable")
		return false
	}

	r.cache.Set(key, ok)
	return ok
}
