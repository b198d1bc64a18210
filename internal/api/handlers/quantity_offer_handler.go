package handlers

import (
	"net/http"

	"github.com/ninjadeliveries/booking-engine/internal/application/services"
)

// QuantityOfferHandler handles tiered quantity pricing requests
type QuantityOfferHandler struct {
	offers *services.QuantityOfferService
}

// NewQuantityOfferHandler creates a new quantity offer handler
func NewQuantityOfferHandler(offers *services.QuantityOfferService) *QuantityOfferHandler {
	return &QuantityOfferHandler{offers: offers}
}

type quantityOfferRequest struct {
	ProductID     string  `json:"product_id" validate:"required"`
	BaseUnitPrice float64 `json:"base_unit_price" validate:"gte=0"`
	Quantity      int     `json:"quantity" validate:"gte=0"`
}

// PriceQuantityOffer handles POST /api/pricing/quantity-offer
func (h *QuantityOfferHandler) PriceQuantityOffer(w http.ResponseWriter, r *http.Request) {
	var req quantityOfferRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	result := h.offers.PriceQuantityOffer(r.Context(), req.ProductID, req.BaseUnitPrice, req.Quantity)
	respondWithJSON(w, http.StatusOK, result)
}
