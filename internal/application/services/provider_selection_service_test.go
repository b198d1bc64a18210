package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ninjadeliveries/booking-engine/internal/application/services"
	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
	apperrors "github.com/ninjadeliveries/booking-engine/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProviderRepository struct {
	mock.Mock
}

func (m *MockProviderRepository) GetByID(ctx context.Context, id string) (*entities.Provider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Provider), args.Error(1)
}

func (m *MockProviderRepository) ListByCategory(ctx context.Context, categoryID string) ([]*entities.Provider, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Provider), args.Error(1)
}

type MockAvailabilityProvider struct {
	mock.Mock
}

func (m *MockAvailabilityProvider) HasActiveWorkers(ctx context.Context, providerID string) (bool, error) {
	args := m.Called(ctx, providerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAvailabilityProvider) IsAvailableForSlot(ctx context.Context, providerID string, slot entities.Slot, serviceIDs []string) (bool, error) {
	args := m.Called(ctx, providerID, slot, serviceIDs)
	return args.Bool(0), args.Error(1)
}

func (m *MockAvailabilityProvider) ProvidersWithSlotAvailability(ctx context.Context, categoryID string, serviceIDs []string, slot entities.Slot, serviceName string) ([]entities.ProviderAvailability, error) {
	args := m.Called(ctx, categoryID, serviceIDs, slot, serviceName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ProviderAvailability), args.Error(1)
}

func activeProvider(id string) *entities.Provider {
	return &entities.Provider{
		ID:      id,
		Name:    "Provider " + id,
		Workers: []entities.Worker{{ID: id + "-w1", IsActive: true}},
	}
}

func selectionRequest(slots ...entities.Slot) services.SelectionRequest {
	return services.SelectionRequest{
		CategoryID:   "cat-1",
		ServiceIDs:   []string{"s1", "s2"},
		ServiceTitle: "Deep clean",
		Slots:        slots,
	}
}

func TestProviderSelectionService_ResolveAvailableProviders(t *testing.T) {
	slot := entities.Slot{Date: "2026-09-01", Time: "10:00"}

	t.Run("requires at least one slot", func(t *testing.T) {
		repo := new(MockProviderRepository)
		remote := new(MockAvailabilityProvider)
		service := services.NewProviderSelectionService(repo, remote, 5, 2)

		_, err := service.ResolveAvailableProviders(context.Background(), selectionRequest())

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("propagates repository failures", func(t *testing.T) {
		repo := new(MockProviderRepository)
		remote := new(MockAvailabilityProvider)
		service := services.NewProviderSelectionService(repo, remote, 5, 2)

		repo.On("ListByCategory", mock.Anything, "cat-1").Return(nil, errors.New("db down"))

		_, err := service.ResolveAvailableProviders(context.Background(), selectionRequest(slot))

		require.Error(t, err)
	})

	t.Run("empty category yields empty result", func(t *testing.T) {
		repo := new(MockProviderRepository)
		remote := new(MockAvailabilityProvider)
		service := services.NewProviderSelectionService(repo, remote, 5, 2)

		repo.On("ListByCategory", mock.Anything, "cat-1").Return([]*entities.Provider{}, nil)

		providers, err := service.ResolveAvailableProviders(context.Background(), selectionRequest(slot))

		require.NoError(t, err)
		assert.Empty(t, providers)
	})

	t.Run("single slot uses the bulk endpoint", func(t *testing.T) {
		repo := new(MockProviderRepository)
		remote := new(MockAvailabilityProvider)
		service := services.NewProviderSelectionService(repo, remote, 5, 2)

		p1 := activeProvider("p1")
		p2 := activeProvider("p2")
		repo.On("ListByCategory", mock.Anything, "cat-1").Return([]*entities.Provider{p1, p2}, nil)
		remote.On("ProvidersWithSlotAvailability", mock.Anything, "cat-1", []string{"s1", "s2"}, slot, "Deep clean").Return([]entities.ProviderAvailability{
			{Provider: *p1, Available: true},
			{Provider: *p2, Available: false},
		}, nil)

		providers, err := service.ResolveAvailableProviders(context.Background(), selectionRequest(slot))

		require.NoError(t, err)
		require.Len(t, providers, 1)
		assert.Equal(t, "p1", providers[0].ID)
		remote.AssertNotCalled(t, "HasActiveWorkers", mock.Anything, mock.Anything)
	})

	t.Run("bulk path still excludes providers without active workers", func(t *testing.T) {
		repo := new(MockProviderRepository)
		remote := new(MockAvailabilityProvider)
		service := services.NewProviderSelectionService(repo, remote, 5, 2)

		dormant := &entities.Provider{
			ID:      "p1",
			Workers: []entities.Worker{{ID: "w1", IsActive: false}},
		}
		repo.On("ListByCategory", mock.Anything, "cat-1").Return([]*entities.Provider{dormant}, nil)
		remote.On("ProvidersWithSlotAvailability", mock.Anything, "cat-1", mock.Anything, slot, mock.Anything).Return([]entities.ProviderAvailability{
			{Provider: *dormant, Available: true},
		}, nil)

		providers, err := service.ResolveAvailableProviders(context.Background(), selectionRequest(slot))

		require.NoError(t, err)
		assert.Empty(t, providers)
	})

	t.Run("falls back to per-provider checks when bulk errors", func(t *testing.T) {
		repo := new(MockProviderRepository)
		remote := new(MockAvailabilityProvider)
		service := services.NewProviderSelectionService(repo, remote, 5, 2)

		p1 := activeProvider("p1")
		repo.On("ListByCategory", mock.Anything, "cat-1").Return([]*entities.Provider{p1}, nil)
		remote.On("ProvidersWithSlotAvailability", mock.Anything, "cat-1", mock.Anything, slot, mock.Anything).Return(nil, errors.New("bulk endpoint down"))
		remote.On("HasActiveWorkers", mock.Anything, "p1").Return(true, nil)
		remote.On("IsAvailableForSlot", mock.Anything, "p1", slot, []string{"s1", "s2"}).Return(true, nil)

		providers, err := service.ResolveAvailableProviders(context.Background(), selectionRequest(slot))

		require.NoError(t, err)
		require.Len(t, providers, 1)
		remote.AssertCalled(t, "HasActiveWorkers", mock.Anything, "p1")
	})

	t.Run("falls back when bulk answers empty", func(t *testing.T) {
		repo := new(MockProviderRepository)
		remote := new(MockAvailabilityProvider)
		service := services.NewProviderSelectionService(repo, remote, 5, 2)

		p1 := activeProvider("p1")
		repo.On("ListByCategory", mock.Anything, "cat-1").Return([]*entities.Provider{p1}, nil)
		remote.On("ProvidersWithSlotAvailability", mock.Anything, "cat-1", mock.Anything, slot, mock.Anything).Return([]entities.ProviderAvailability{}, nil)
		remote.On("HasActiveWorkers", mock.Anything, "p1").Return(true, nil)
		remote.On("IsAvailableForSlot", mock.Anything, "p1", slot, mock.Anything).Return(true, nil)

		providers, err := service.ResolveAvailableProviders(context.Background(), selectionRequest(slot))

		require.NoError(t, err)
		assert.Len(t, providers, 1)
	})

	t.Run("multi-slot block never uses the bulk endpoint", func(t *testing.T) {
		repo := new(MockProviderRepository)
		remote := new(MockAvailabilityProvider)
		service := services.NewProviderSelectionService(repo, remote, 5, 2)

		second := entities.Slot{Date: "2026-09-01", Time: "11:00"}
		p1 := activeProvider("p1")
		repo.On("ListByCategory", mock.Anything, "cat-1").Return([]*entities.Provider{p1}, nil)
		remote.On("HasActiveWorkers", mock.Anything, "p1").Return(true, nil)
		remote.On("IsAvailableForSlot", mock.Anything, "p1", slot, mock.Anything).Return(true, nil)
		remote.On("IsAvailableForSlot", mock.Anything, "p1", second, mock.Anything).Return(false, nil)

		providers, err := service.ResolveAvailableProviders(context.Background(), selectionRequest(slot, second))

		require.NoError(t, err)
		assert.Empty(t, providers)
		remote.AssertNotCalled(t, "ProvidersWithSlotAvailability", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("changed selection context re-checks availability", func(t *testing.T) {
		repo := new(MockProviderRepository)
		remote := new(MockAvailabilityProvider)
		service := services.NewProviderSelectionService(repo, remote, 5, 2)

		p1 := activeProvider("p1")
		repo.On("ListByCategory", mock.Anything, "cat-1").Return([]*entities.Provider{p1}, nil)
		remote.On("ProvidersWithSlotAvailability", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("unsupported"))
		remote.On("HasActiveWorkers", mock.Anything, "p1").Return(true, nil)
		remote.On("IsAvailableForSlot", mock.Anything, "p1", mock.Anything, mock.Anything).Return(true, nil)

		_, err := service.ResolveAvailableProviders(context.Background(), selectionRequest(slot))
		require.NoError(t, err)

		later := entities.Slot{Date: "2026-09-02", Time: "10:00"}
		_, err = service.ResolveAvailableProviders(context.Background(), selectionRequest(later))
		require.NoError(t, err)

		// A new date is a new selection context, so nothing was reused.
		remote.AssertNumberOfCalls(t, "HasActiveWorkers", 2)
		remote.AssertNumberOfCalls(t, "IsAvailableForSlot", 2)
	})
}
