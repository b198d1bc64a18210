package workforce

import (
	"context"
	"hash/fnv"

	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
	"github.com/ninjadeliveries/booking-engine/internal/domain/providers"
)

// MockAdapter provides deterministic availability for local development.
// Verdicts are stable across calls for the same inputs so cached and
// uncached paths agree.
type MockAdapter struct {
	// busyEvery marks every Nth provider/slot combination unavailable
	busyEvery uint32
}

// NewMockAdapter creates a mock workforce provider
func NewMockAdapter() providers.AvailabilityProvider {
	return &MockAdapter{busyEvery: 4}
}

// HasActiveWorkers reports true for every provider except ids hashing to 0
func (m *MockAdapter) HasActiveWorkers(ctx context.Context, providerID string) (bool, error) {
	return hashOf(providerID)%7 != 0, nil
}

// IsAvailableForSlot returns a deterministic verdict per provider/slot pair
func (m *MockAdapter) IsAvailableForSlot(ctx context.Context, providerID string, slot entities.Slot, serviceIDs []string) (bool, error) {
	return hashOf(providerID+slot.Date+slot.Time)%m.busyEvery != 0, nil
}

// ProvidersWithSlotAvailability returns an empty result so callers exercise
// the per-provider fallback path in development
func (m *MockAdapter) ProvidersWithSlotAvailability(ctx context.Context, categoryID string, serviceIDs []string, slot entities.Slot, serviceName string) ([]entities.ProviderAvailability, error) {
	return []entities.ProviderAvailability{}, nil
}

func hashOf(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
