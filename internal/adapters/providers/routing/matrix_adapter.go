package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
	"github.com/ninjadeliveries/booking-engine/internal/domain/providers"
)

const defaultHTTPTimeout = 8 * time.Second

// MatrixAdapter implements DistanceProvider against a distance-matrix HTTP
// API. All destinations go out in one batched request rather than one
// request per destination.
type MatrixAdapter struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewMatrixAdapter creates a new distance matrix adapter
func NewMatrixAdapter(baseURL, apiKey string) providers.DistanceProvider {
	return NewMatrixAdapterWithClient(baseURL, apiKey, nil)
}

// NewMatrixAdapterWithClient allows overriding the HTTP client (used for tests)
func NewMatrixAdapterWithClient(baseURL, apiKey string, httpClient *http.Client) providers.DistanceProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &MatrixAdapter{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// DistanceKm returns the distance to a single destination
func (a *MatrixAdapter) DistanceKm(ctx context.Context, origin, destination entities.Coordinates) (float64, error) {
	distances, err := a.DistancesKm(ctx, origin, []entities.Coordinates{destination})
	if err != nil {
		return 0, err
	}
	if len(distances) != 1 {
		return 0, fmt.Errorf("matrix response had %d distances, want 1", len(distances))
	}
	return distances[0], nil
}

// DistancesKm returns distances from origin to every destination in one call
func (a *MatrixAdapter) DistancesKm(ctx context.Context, origin entities.Coordinates, destinations []entities.Coordinates) ([]float64, error) {
	if a.apiKey == "" {
		return nil, fmt.Errorf("routing api key is required")
	}
	if len(destinations) == 0 {
		return []float64{}, nil
	}

	body := matrixRequest{Origin: origin, Destinations: destinations}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal matrix request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/matrix", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build matrix request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("matrix request returned status %d", resp.StatusCode)
	}

	var payload matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode matrix response: %w", err)
	}

	if payload.Status != "OK" {
		return nil, fmt.Errorf("matrix request failed: %s", payload.Status)
	}
	if len(payload.DistancesKm) != len(destinations) {
		return nil, fmt.Errorf("matrix response had %d distances, want %d", len(payload.DistancesKm), len(destinations))
	}

	return payload.DistancesKm, nil
}

type matrixRequest struct {
	Origin       entities.Coordinates   `json:"origin"`
	Destinations []entities.Coordinates `json:"destinations"`
}

type matrixResponse struct {
	Status      string    `json:"status"`
	DistancesKm []float64 `json:"distances_km"`
}
