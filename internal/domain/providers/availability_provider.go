package providers

import (
	"context"

	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
)

// AvailabilityProvider defines the interface for the remote provider/worker
// availability collaborator. All answers are authoritative for the moment
// they are given; the caller decides how long to memoize them.
type AvailabilityProvider interface {
	// HasActiveWorkers reports whether the provider has at least one
	// active worker
	HasActiveWorkers(ctx context.Context, providerID string) (bool, error)

	// IsAvailableForSlot reports whether the provider can take the given
	// slot for the requested services
	IsAvailableForSlot(ctx context.Context, providerID string, slot entities.Slot, serviceIDs []string) (bool, error)

	// ProvidersWithSlotAvailability is the bulk endpoint: one call
	// returning per-provider verdicts for a whole category. Optional;
	// callers must fall back to per-provider checks when it errors.
	ProvidersWithSlotAvailability(ctx context.Context, categoryID string, serviceIDs []string, slot entities.Slot, serviceName string) ([]entities.ProviderAvailability, error)
}
