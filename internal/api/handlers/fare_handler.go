package handlers

import (
	"net/http"

	"github.com/ninjadeliveries/booking-engine/internal/application/services"
	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
)

// FareHandler handles fare computation requests
type FareHandler struct {
	checkout *services.CheckoutService
}

// NewFareHandler creates a new fare handler
func NewFareHandler(checkout *services.CheckoutService) *FareHandler {
	return &FareHandler{checkout: checkout}
}

type coordinatesPayload struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

func (c coordinatesPayload) toEntity() entities.Coordinates {
	return entities.Coordinates{Latitude: c.Latitude, Longitude: c.Longitude}
}

type lineItemPayload struct {
	ProductID      string  `json:"product_id" validate:"required"`
	Name           string  `json:"name"`
	UnitPrice      float64 `json:"unit_price" validate:"gte=0"`
	DiscountAmount float64 `json:"discount_amount" validate:"gte=0"`
	Quantity       int     `json:"quantity" validate:"gte=0"`
	CGST           float64 `json:"cgst" validate:"gte=0"`
	SGST           float64 `json:"sgst" validate:"gte=0"`
	Cess           float64 `json:"cess" validate:"gte=0"`
}

func (p lineItemPayload) toEntity() entities.LineItem {
	return entities.LineItem{
		ProductID:      p.ProductID,
		Name:           p.Name,
		UnitPrice:      p.UnitPrice,
		DiscountAmount: p.DiscountAmount,
		Quantity:       p.Quantity,
		Tax:            entities.TaxBreakdown{CGST: p.CGST, SGST: p.SGST, Cess: p.Cess},
	}
}

type computeFareRequest struct {
	UserID    string             `json:"user_id" validate:"required"`
	StoreID   string             `json:"store_id" validate:"required"`
	Items     []lineItemPayload  `json:"items" validate:"required,min=1,dive"`
	PromoCode string             `json:"promo_code"`
	Origin    coordinatesPayload `json:"origin"`
	DropOff   coordinatesPayload `json:"drop_off"`
}

func (r computeFareRequest) toServiceRequest() services.ComputeFareRequest {
	items := make([]entities.LineItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = it.toEntity()
	}
	return services.ComputeFareRequest{
		UserID:    r.UserID,
		StoreID:   r.StoreID,
		Items:     items,
		PromoCode: r.PromoCode,
		Origin:    r.Origin.toEntity(),
		DropOff:   r.DropOff.toEntity(),
	}
}

// ComputeFare handles POST /api/fare/compute
func (h *FareHandler) ComputeFare(w http.ResponseWriter, r *http.Request) {
	var req computeFareRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	breakdown, err := h.checkout.ComputeFare(r.Context(), req.toServiceRequest())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, breakdown)
}
