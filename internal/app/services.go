// Package app provides service initialization.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/quantity-service/config"
	"github.com/guttosm/quantity-service/internal/domain/model"
	"github.com/guttosm/quantity-service/internal/repository"
	"github.com/guttosm/quantity-service/internal/selector"
	"github.com/guttosm/quantity-service/internal/service"
	"github.com/guttosm/quantity-service/internal/service/cache"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	ProfileCache    cache.CacheWithMetrics
	ProfilesService service.ProfilesService
	Registry        service.RegistryService
	TokenService    service.TokenService
}

// InitializeServices initializes the business logic services: the
// constraint-profile service with its sharded cache, the selector
// registry, and the admin token service. Committed value changes are
// logged and, when the database is available, written to the audit trail.
func InitializeServices(cfg config.Config, dbComponents *DatabaseComponents) *ServiceComponents {
	var profileCache cache.CacheWithMetrics
	if cfg.Cache.Size > 0 {
		profileCache = service.NewShardedCache(cfg.Cache.Size, cfg.Cache.TTL, 16)
	}

	var profilesService service.ProfilesService
	var loggingService service.LoggingService
	if dbComponents != nil {
		profilesService = service.NewProfilesService(dbComponents.ProfilesRepo, profileCache)
		loggingService = dbComponents.LoggingService
	}

	registryOpts := []service.RegistryOption{
		service.WithDefaultConstraints(selector.Constraints{
			Min:  cfg.Selector.DefaultMin,
			Max:  cfg.Selector.DefaultMax,
			Step: cfg.Selector.DefaultStep,
		}),
		service.WithChangeListener(func(ev model.ChangeEvent) {
			log.Debug().
				Str("line_id", ev.LineID).
				Str("product_id", ev.ProductID).
				Int("value", ev.Value).
				Msg("Selector value changed")

			if loggingService != nil {
				entry := &model.LogEntry{
					Level:      "info",
					Message:    "Selector value changed",
					LineID:     ev.LineID,
					ProductID:  ev.ProductID,
					ActionType: "change",
				}
				entry.WithField("value", ev.Value)
				go func() {
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = loggingService.CreateLog(ctx, entry)
				}()
			}
		}),
	}

	var cartRepo repository.CartRepositoryInterface
	if dbComponents != nil {
		cartRepo = dbComponents.CartRepo
	}

	registry := service.NewRegistryService(profilesService, cartRepo, registryOpts...)

	var tokenService service.TokenService
	if cfg.Auth.AdminPasswordHash != "" {
		tokenService = service.NewTokenService(cfg.Auth)
	}

	return &ServiceComponents{
		ProfileCache:    profileCache,
		ProfilesService: profilesService,
		Registry:        registry,
		TokenService:    tokenService,
	}
}
