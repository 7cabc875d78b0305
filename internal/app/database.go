// Package app provides database initialization and setup.
package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/quantity-service/config"
	"github.com/guttosm/quantity-service/internal/circuitbreaker"
	"github.com/guttosm/quantity-service/internal/repository"
	"github.com/guttosm/quantity-service/internal/service"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	ProfilesRepo           repository.ProfilesRepositoryInterface
	CartRepo               repository.CartRepositoryInterface
	LoggingService         service.LoggingService
	ProfilesCircuitBreaker *circuitbreaker.CircuitBreaker
	CartCircuitBreaker     *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker     *circuitbreaker.CircuitBreaker
}

// InitializeDatabase initializes MongoDB connection and creates required repositories and services.
// Returns nil if database is disabled or connection fails; the service then
// runs on inline constraints with zero committed quantities.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Msg("Connected to MongoDB")

	// Set TTL for logs
	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if err := db.SetLogsTTL(context.Background(), ttlDays); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index (may already exist)")
	}

	// Initialize circuit breakers
	profilesCB := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             "mongodb-profiles",
	})

	cartCB := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             "mongodb-cart",
	})

	logsCB := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             "mongodb-logs",
	})

	// Initialize repositories
	logsRepo := repository.NewLogsRepository(db)
	logsRepoWithCB := repository.NewLogsRepositoryWithCircuitBreaker(logsRepo, logsCB)
	loggingService := service.NewLoggingService(logsRepoWithCB)

	profilesRepo := repository.NewProfilesRepository(db)
	profilesRepoWithCB := repository.NewProfilesRepositoryWithCircuitBreaker(profilesRepo, profilesCB)

	cartRepo := repository.NewCartRepository(db)
	cartRepoWithCB := repository.NewCartRepositoryWithCircuitBreaker(cartRepo, cartCB)

	return &DatabaseComponents{
		ProfilesRepo:           profilesRepoWithCB,
		CartRepo:               cartRepoWithCB,
		LoggingService:         loggingService,
		ProfilesCircuitBreaker: profilesCB,
		CartCircuitBreaker:     cartCB,
		LogsCircuitBreaker:     logsCB,
	}
}
