package providers

import (
	"context"

	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
)

// DistanceProvider defines the interface for the routing collaborator
type DistanceProvider interface {
	// DistanceKm returns the distance in kilometers between two points
	DistanceKm(ctx context.Context, origin, destination entities.Coordinates) (float64, error)

	// DistancesKm returns distances from origin to every destination in a
	// single batched request, index-aligned with destinations
	DistancesKm(ctx context.Context, origin entities.Coordinates, destinations []entities.Coordinates) ([]float64, error)
}
