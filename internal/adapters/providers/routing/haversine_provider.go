// Package routing implements the distance collaborator.
package routing

import (
	"context"

	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
	"github.com/ninjadeliveries/booking-engine/internal/domain/providers"
	"github.com/ninjadeliveries/booking-engine/internal/pricing"
)

// HaversineProvider computes great-circle distances locally. It is the
// default when no routing API is configured; road distances from the matrix
// adapter are preferred in production.
type HaversineProvider struct{}

// NewHaversineProvider creates a local distance provider
func NewHaversineProvider() providers.DistanceProvider {
	return &HaversineProvider{}
}

// DistanceKm returns the haversine distance between two points
func (p *HaversineProvider) DistanceKm(ctx context.Context, origin, destination entities.Coordinates) (float64, error) {
	return pricing.HaversineKm(origin, destination), nil
}

// DistancesKm returns haversine distances to every destination
func (p *HaversineProvider) DistancesKm(ctx context.Context, origin entities.Coordinates, destinations []entities.Coordinates) ([]float64, error) {
	distances := make([]float64, len(destinations))
	for i, d := range destinations {
		distances[i] = pricing.HaversineKm(origin, d)
	}
	return distances, nil
}
