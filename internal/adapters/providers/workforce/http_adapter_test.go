package workforce_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ninjadeliveries/booking-engine/internal/adapters/providers/workforce"
	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
	apperrors "github.com/ninjadeliveries/booking-engine/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPAdapter_HasActiveWorkers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/providers/p1/workers/active", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]bool{"has_active_workers": true})
	}))
	defer server.Close()

	adapter := workforce.NewHTTPAdapterWithClient(server.URL, server.Client())

	ok, err := adapter.HasActiveWorkers(context.Background(), "p1")

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHTTPAdapter_IsAvailableForSlot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/providers/p1/availability", r.URL.Path)

		var body struct {
			Date       string   `json:"date"`
			Time       string   `json:"time"`
			ServiceIDs []string `json:"service_ids"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2026-09-01", body.Date)
		assert.Equal(t, "10:00", body.Time)
		assert.Equal(t, []string{"s1"}, body.ServiceIDs)

		json.NewEncoder(w).Encode(map[string]bool{"available": false})
	}))
	defer server.Close()

	adapter := workforce.NewHTTPAdapterWithClient(server.URL, server.Client())

	ok, err := adapter.IsAvailableForSlot(context.Background(), "p1", entities.Slot{Date: "2026-09-01", Time: "10:00"}, []string{"s1"})

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHTTPAdapter_ProvidersWithSlotAvailability(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/categories/cat-1/availability", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"providers": []map[string]interface{}{
				{"provider": map[string]interface{}{"id": "p1"}, "available": true},
				{"provider": map[string]interface{}{"id": "p2"}, "available": false},
			},
		})
	}))
	defer server.Close()

	adapter := workforce.NewHTTPAdapterWithClient(server.URL, server.Client())

	verdicts, err := adapter.ProvidersWithSlotAvailability(context.Background(), "cat-1", []string{"s1"}, entities.Slot{Date: "2026-09-01", Time: "10:00"}, "Deep clean")

	require.NoError(t, err)
	require.Len(t, verdicts, 2)
	assert.Equal(t, "p1", verdicts[0].Provider.ID)
	assert.True(t, verdicts[0].Available)
	assert.False(t, verdicts[1].Available)
}

func TestHTTPAdapter_ServerErrorIsExternal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	adapter := workforce.NewHTTPAdapterWithClient(server.URL, server.Client())

	_, err := adapter.HasActiveWorkers(context.Background(), "p1")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
}

func TestHTTPAdapter_CircuitOpensAfterConsecutiveFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	adapter := workforce.NewHTTPAdapterWithClient(server.URL, server.Client())

	for i := 0; i < 5; i++ {
		_, err := adapter.HasActiveWorkers(context.Background(), "p1")
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
	}

	// Breaker is now open: the call fails fast without reaching the server.
	_, err := adapter.HasActiveWorkers(context.Background(), "p1")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))
}
