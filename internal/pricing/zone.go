package pricing

import (
	"context"

	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
	"github.com/ninjadeliveries/booking-engine/internal/domain/providers"
)

// ZoneFeeResult is the outcome of matching a drop-off point against zones
type ZoneFeeResult struct {
	Zone       *entities.Zone `json:"zone,omitempty"`
	Fee        float64        `json:"fee"`
	DistanceKm float64        `json:"distance_km"`
}

// ResolveZoneFee matches a drop-off point against zones using haversine
// distances. A zone is a candidate when the point lies within its radius;
// the nearest center wins, equal distances resolved first-in-input-order.
// No candidate means zero fee.
func ResolveZoneFee(point entities.Coordinates, zones []entities.Zone) ZoneFeeResult {
	distances := make([]float64, len(zones))
	for i, z := range zones {
		distances[i] = HaversineKm(point, z.Center)
	}
	return ResolveZoneFeeWithDistances(distances, zones)
}

// ResolveZoneFeeWithDistances matches zones against precomputed distances,
// index-aligned with zones. Used when distances come from the routing
// collaborator.
func ResolveZoneFeeWithDistances(distances []float64, zones []entities.Zone) ZoneFeeResult {
	var chosen *entities.Zone
	var chosenDist float64

	for i := range zones {
		if i >= len(distances) {
			break
		}
		d := distances[i]
		if d < 0 || d > zones[i].RadiusKm {
			continue
		}
		// Strictly less keeps the first-encountered zone on ties.
		if chosen == nil || d < chosenDist {
			chosen = &zones[i]
			chosenDist = d
		}
	}

	if chosen == nil {
		return ZoneFeeResult{Fee: 0}
	}
	return ZoneFeeResult{Zone: chosen, Fee: chosen.Fee, DistanceKm: chosenDist}
}

// ResolveZoneFeeRemote fetches distances to all zone centers in one batched
// request and matches as above. A failed lookup degrades to no zone fee
// rather than an error.
func ResolveZoneFeeRemote(ctx context.Context, distance providers.DistanceProvider, point entities.Coordinates, zones []entities.Zone) ZoneFeeResult {
	if len(zones) == 0 {
		return ZoneFeeResult{Fee: 0}
	}

	centers := make([]entities.Coordinates, len(zones))
	for i, z := range zones {
		centers[i] = z.Center
	}

	distances, err := distance.DistancesKm(ctx, point, centers)
	if err != nil || len(distances) != len(zones) {
		return ZoneFeeResult{Fee: 0}
	}
	return ResolveZoneFeeWithDistances(distances, zones)
}
