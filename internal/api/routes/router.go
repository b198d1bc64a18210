package routes

import (
	"net/http"

	"github.com/ninjadeliveries/booking-engine/internal/api/handlers"
	"github.com/ninjadeliveries/booking-engine/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	fareHandler          *handlers.FareHandler
	quantityOfferHandler *handlers.QuantityOfferHandler
	providerHandler      *handlers.ProviderSelectionHandler
	orderHandler         *handlers.OrderHandler
}

// NewRouter creates a new router
func NewRouter(
	fareHandler *handlers.FareHandler,
	quantityOfferHandler *handlers.QuantityOfferHandler,
	providerHandler *handlers.ProviderSelectionHandler,
	orderHandler *handlers.OrderHandler,
) *Router {
	return &Router{
		mux:                  http.NewServeMux(),
		fareHandler:          fareHandler,
		quantityOfferHandler: quantityOfferHandler,
		providerHandler:      providerHandler,
		orderHandler:         orderHandler,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Pricing endpoints
	r.mux.HandleFunc("POST /api/fare/compute", r.fareHandler.ComputeFare)
	r.mux.HandleFunc("POST /api/pricing/quantity-offer", r.quantityOfferHandler.PriceQuantityOffer)

	// Provider selection endpoint
	r.mux.HandleFunc("POST /api/providers/available", r.providerHandler.ResolveAvailableProviders)

	// Order endpoints
	r.mux.HandleFunc("POST /api/orders", r.orderHandler.PlaceOrder)
	r.mux.HandleFunc("GET /api/orders/{id}", r.orderHandler.GetOrder)
	r.mux.HandleFunc("GET /api/users/{id}/orders", r.orderHandler.ListOrders)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.TracingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
