// Package workforce talks to the remote provider/worker availability
// collaborator.
package workforce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
	"github.com/ninjadeliveries/booking-engine/internal/domain/providers"
	apperrors "github.com/ninjadeliveries/booking-engine/pkg/errors"
	"github.com/sony/gobreaker"
)

const defaultHTTPTimeout = 8 * time.Second

// HTTPAdapter implements AvailabilityProvider against the workforce HTTP
// API. Calls go through a circuit breaker; an open breaker means checks
// fail fast and the resolver treats the provider as unavailable.
type HTTPAdapter struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewHTTPAdapter creates a new workforce HTTP adapter
func NewHTTPAdapter(baseURL string, timeout time.Duration) providers.AvailabilityProvider {
	return NewHTTPAdapterWithClient(baseURL, &http.Client{Timeout: timeout})
}

// NewHTTPAdapterWithClient allows overriding the HTTP client (used for tests)
func NewHTTPAdapterWithClient(baseURL string, httpClient *http.Client) providers.AvailabilityProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "workforce-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &HTTPAdapter{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		breaker:    breaker,
	}
}

// HasActiveWorkers reports whether the provider has at least one active worker
func (a *HTTPAdapter) HasActiveWorkers(ctx context.Context, providerID string) (bool, error) {
	var payload struct {
		HasActiveWorkers bool `json:"has_active_workers"`
	}
	path := fmt.Sprintf("/v1/providers/%s/workers/active", url.PathEscape(providerID))
	if err := a.doJSON(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return false, err
	}
	return payload.HasActiveWorkers, nil
}

// IsAvailableForSlot reports whether the provider can take the slot
func (a *HTTPAdapter) IsAvailableForSlot(ctx context.Context, providerID string, slot entities.Slot, serviceIDs []string) (bool, error) {
	body := map[string]interface{}{
		"date":        slot.Date,
		"time":        slot.Time,
		"service_ids": serviceIDs,
	}
	var payload struct {
		Available bool `json:"available"`
	}
	path := fmt.Sprintf("/v1/providers/%s/availability", url.PathEscape(providerID))
	if err := a.doJSON(ctx, http.MethodPost, path, body, &payload); err != nil {
		return false, err
	}
	return payload.Available, nil
}

// ProvidersWithSlotAvailability is the bulk endpoint returning per-provider
// verdicts for a whole category in one call
func (a *HTTPAdapter) ProvidersWithSlotAvailability(ctx context.Context, categoryID string, serviceIDs []string, slot entities.Slot, serviceName string) ([]entities.ProviderAvailability, error) {
	body := map[string]interface{}{
		"date":         slot.Date,
		"time":         slot.Time,
		"service_ids":  serviceIDs,
		"service_name": serviceName,
	}
	var payload struct {
		Providers []entities.ProviderAvailability `json:"providers"`
	}
	path := fmt.Sprintf("/v1/categories/%s/availability", url.PathEscape(categoryID))
	if err := a.doJSON(ctx, http.MethodPost, path, body, &payload); err != nil {
		return nil, err
	}
	return payload.Providers, nil
}

func (a *HTTPAdapter) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	_, err := a.breaker.Execute(func() (interface{}, error) {
		var reqBody *bytes.Reader
		if body != nil {
			data, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal request body: %w", err)
			}
			reqBody = bytes.NewReader(data)
		} else {
			reqBody = bytes.NewReader(nil)
		}

		req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
		if err != nil {
			return nil, fmt.Errorf("failed to build workforce request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := a.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("workforce request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("workforce request returned status %d", resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("failed to decode workforce response: %w", err)
		}
		return nil, nil
	})

	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return apperrors.NewUnavailableError("workforce API circuit open", err)
	}
	if err != nil {
		return apperrors.NewExternalError("workforce API call failed", err)
	}
	return nil
}
