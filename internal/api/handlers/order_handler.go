package handlers

import (
	"net/http"
	"strconv"

	"github.com/ninjadeliveries/booking-engine/internal/application/services"
	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
	"github.com/ninjadeliveries/booking-engine/internal/domain/repositories"
)

// OrderHandler handles order confirmation and lookups
type OrderHandler struct {
	checkout  *services.CheckoutService
	orderRepo repositories.OrderRepository
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(checkout *services.CheckoutService, orderRepo repositories.OrderRepository) *OrderHandler {
	return &OrderHandler{checkout: checkout, orderRepo: orderRepo}
}

type placeOrderRequest struct {
	computeFareRequest

	Kind       string        `json:"kind" validate:"required,oneof=delivery service"`
	ProviderID string        `json:"provider_id"`
	Slots      []slotPayload `json:"slots" validate:"dive"`
}

// PlaceOrder handles POST /api/orders
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	slots := make([]entities.Slot, len(req.Slots))
	for i, s := range req.Slots {
		slots[i] = entities.Slot{Date: s.Date, Time: s.Time}
	}

	order, err := h.checkout.PlaceOrder(r.Context(), services.PlaceOrderRequest{
		ComputeFareRequest: req.toServiceRequest(),
		Kind:               entities.OrderKind(req.Kind),
		ProviderID:         req.ProviderID,
		Slots:              slots,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, order)
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("id")
	if orderID == "" {
		respondWithError(w, http.StatusBadRequest, "order ID is required")
		return
	}

	order, err := h.orderRepo.GetByID(r.Context(), orderID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, order)
}

// ListOrders handles GET /api/users/{id}/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	orders, err := h.orderRepo.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"count":  len(orders),
	})
}
