package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ninjadeliveries/booking-engine/internal/adapters/cache"
	"github.com/ninjadeliveries/booking-engine/internal/adapters/database"
	"github.com/ninjadeliveries/booking-engine/internal/adapters/events"
	"github.com/ninjadeliveries/booking-engine/internal/adapters/providers/routing"
	"github.com/ninjadeliveries/booking-engine/internal/adapters/providers/workforce"
	"github.com/ninjadeliveries/booking-engine/internal/api/handlers"
	"github.com/ninjadeliveries/booking-engine/internal/api/routes"
	"github.com/ninjadeliveries/booking-engine/internal/application/services"
	domainproviders "github.com/ninjadeliveries/booking-engine/internal/domain/providers"
	"github.com/ninjadeliveries/booking-engine/internal/domain/repositories"
	"github.com/ninjadeliveries/booking-engine/internal/infrastructure/clients/postgres"
	redisclient "github.com/ninjadeliveries/booking-engine/internal/infrastructure/clients/redis"
	"github.com/ninjadeliveries/booking-engine/internal/infrastructure/observability"
	"github.com/ninjadeliveries/booking-engine/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		observability.GetLogger().Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger("booking-engine", cfg.Server.Env)
	logger := observability.GetLogger()

	// Database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Redis is optional: without it the engine runs with neither catalog
	// caching nor event publishing.
	var cacheProvider domainproviders.CacheProvider
	var eventBus domainproviders.EventBus
	redisClient, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, continuing without caching and events")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
		defer eventBus.Close()
	}

	// Catalog adapters
	promoAdapter := database.NewPromoAdapter(pgClient)
	pricingConfigAdapter := database.NewPricingConfigAdapter(pgClient)
	providerAdapter := database.NewProviderAdapter(pgClient)
	offerAdapter := database.NewQuantityOfferAdapter(pgClient)
	orderAdapter := database.NewOrderAdapter(pgClient)

	var zoneRepo repositories.ZoneRepository = database.NewZoneAdapter(pgClient)
	if cacheProvider != nil {
		zoneRepo = database.NewCachedZoneAdapter(zoneRepo, cacheProvider)
		logger.Info().Msg("zone adapter wrapped with caching layer")
	}

	// Remote collaborators
	var distanceProvider domainproviders.DistanceProvider
	switch cfg.Distance.Provider {
	case "matrix":
		distanceProvider = routing.NewMatrixAdapter(cfg.Distance.BaseURL, cfg.Distance.APIKey)
	default:
		distanceProvider = routing.NewHaversineProvider()
	}

	var availabilityProvider domainproviders.AvailabilityProvider
	switch cfg.Availability.Provider {
	case "http":
		availabilityProvider = workforce.NewHTTPAdapter(
			cfg.Availability.BaseURL,
			time.Duration(cfg.Availability.TimeoutSeconds)*time.Second,
		)
	default:
		availabilityProvider = workforce.NewMockAdapter()
	}

	// Application services
	checkoutService := services.NewCheckoutService(
		promoAdapter,
		pricingConfigAdapter,
		zoneRepo,
		orderAdapter,
		distanceProvider,
		eventBus,
		cfg.Pricing,
	)
	offerService := services.NewQuantityOfferService(offerAdapter)
	selectionService := services.NewProviderSelectionService(
		providerAdapter,
		availabilityProvider,
		cfg.Availability.ProviderConcurrency,
		cfg.Availability.SlotConcurrency,
	)

	// HTTP surface
	router := routes.NewRouter(
		handlers.NewFareHandler(checkoutService),
		handlers.NewQuantityOfferHandler(offerService),
		handlers.NewProviderSelectionHandler(selectionService),
		handlers.NewOrderHandler(checkoutService, orderAdapter),
	)

	server := &http.Server{
		Addr:         cfg.Server.ServerAddr(),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
}
