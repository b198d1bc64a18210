package handlers

import (
	"net/http"

	"github.com/ninjadeliveries/booking-engine/internal/application/services"
	"github.com/ninjadeliveries/booking-engine/internal/domain/entities"
)

// ProviderSelectionHandler handles provider availability requests
type ProviderSelectionHandler struct {
	selection *services.ProviderSelectionService
}

// NewProviderSelectionHandler creates a new provider selection handler
func NewProviderSelectionHandler(selection *services.ProviderSelectionService) *ProviderSelectionHandler {
	return &ProviderSelectionHandler{selection: selection}
}

type slotPayload struct {
	Date string `json:"date" validate:"required"`
	Time string `json:"time" validate:"required"`
}

type availableProvidersRequest struct {
	CategoryID   string        `json:"category_id" validate:"required"`
	ServiceIDs   []string      `json:"service_ids" validate:"required,min=1"`
	ServiceTitle string        `json:"service_title"`
	Slots        []slotPayload `json:"slots" validate:"required,min=1,dive"`
}

// ResolveAvailableProviders handles POST /api/providers/available
func (h *ProviderSelectionHandler) ResolveAvailableProviders(w http.ResponseWriter, r *http.Request) {
	var req availableProvidersRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	slots := make([]entities.Slot, len(req.Slots))
	for i, s := range req.Slots {
		slots[i] = entities.Slot{Date: s.Date, Time: s.Time}
	}

	providers, err := h.selection.ResolveAvailableProviders(r.Context(), services.SelectionRequest{
		CategoryID:   req.CategoryID,
		ServiceIDs:   req.ServiceIDs,
		ServiceTitle: req.ServiceTitle,
		Slots:        slots,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"providers": providers,
		"count":     len(providers),
	})
}
