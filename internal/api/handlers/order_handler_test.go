package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ninjadeliveries/booking-engine/internal/api/handlers"
	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const placeOrderBody = `{
	"user_id": "user-1",
	"store_id": "store-1",
	"kind": "delivery",
	"items": [{"product_id": "prod-1", "unit_price": 100, "quantity": 2}],
	"origin": {"latitude": 12.97, "longitude": 77.59},
	"drop_off": {"latitude": 12.93, "longitude": 77.61}
}`

func TestOrderHandler_PlaceOrder_Success(t *testing.T) {
	orders := newStubOrderRepo()
	handler := handlers.NewOrderHandler(newTestCheckoutService(nil, orders), orders)

	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(placeOrderBody))
	w := httptest.NewRecorder()

	handler.PlaceOrder(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, orders.created, 1)

	var order entities.Order
	require.NoError(t, json.NewDecoder(w.Body).Decode(&order))
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, entities.OrderStatusPlaced, order.Status)
	assert.True(t, order.Fare.Computable)
}

func TestOrderHandler_PlaceOrder_UnknownKind(t *testing.T) {
	orders := newStubOrderRepo()
	handler := handlers.NewOrderHandler(newTestCheckoutService(nil, orders), orders)

	body := strings.Replace(placeOrderBody, `"delivery"`, `"teleport"`, 1)
	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.PlaceOrder(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, orders.created)
}

func TestOrderHandler_PlaceOrder_ServiceBookingNeedsProvider(t *testing.T) {
	orders := newStubOrderRepo()
	handler := handlers.NewOrderHandler(newTestCheckoutService(nil, orders), orders)

	body := strings.Replace(placeOrderBody, `"delivery"`, `"service"`, 1)
	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.PlaceOrder(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_GetOrder(t *testing.T) {
	orders := newStubOrderRepo()
	orders.orders["ord-1"] = &entities.Order{ID: "ord-1", UserID: "user-1", Status: entities.OrderStatusPlaced}
	handler := handlers.NewOrderHandler(newTestCheckoutService(nil, orders), orders)

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/orders/ord-1", nil)
		req.SetPathValue("id", "ord-1")
		w := httptest.NewRecorder()

		handler.GetOrder(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var order entities.Order
		require.NoError(t, json.NewDecoder(w.Body).Decode(&order))
		assert.Equal(t, "ord-1", order.ID)
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/orders/missing", nil)
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()

		handler.GetOrder(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/orders/", nil)
		w := httptest.NewRecorder()

		handler.GetOrder(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderHandler_ListOrders(t *testing.T) {
	orders := newStubOrderRepo()
	orders.created = []*entities.Order{
		{ID: "ord-1", UserID: "user-1"},
		{ID: "ord-2", UserID: "user-2"},
		{ID: "ord-3", UserID: "user-1"},
	}
	handler := handlers.NewOrderHandler(newTestCheckoutService(nil, orders), orders)

	req := httptest.NewRequest("GET", "/api/users/user-1/orders", nil)
	req.SetPathValue("id", "user-1")
	w := httptest.NewRecorder()

	handler.ListOrders(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Orders []entities.Order `json:"orders"`
		Count  int              `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 2, response.Count)
}
