//go:build !integration

package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/guttosm/quantity-service/config"
	"github.com/guttosm/quantity-service/internal/circuitbreaker"
	"github.com/guttosm/quantity-service/internal/mocks"
)

func TestInitializeRouter(t *testing.T) {
	tests := []struct {
		name         string
		dbComponents *DatabaseComponents
		cfg          config.Config
		validate     func(*testing.T, *RouterComponents)
	}{
		{
			name: "creates router without database",
			cfg: config.Config{
				Server: config.ServerConfig{
					RateLimit:  100,
					RateWindow: time.Minute,
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components)
				assert.NotNil(t, components.Handler)
				assert.NotNil(t, components.HealthHandler)
				assert.False(t, components.Config.EnableAuth)
				assert.True(t, components.Config.EnableIdempotency)
				assert.Equal(t, 100, components.Config.RateLimit)
				assert.Nil(t, components.Config.LoggingService)
			},
		},
		{
			name: "creates router with auth enabled",
			cfg: config.Config{
				Server: config.ServerConfig{
					RateLimit:  50,
					RateWindow: 30 * time.Second,
				},
				Auth: config.AuthConfig{
					Enabled: true,
					APIKeys: map[string]bool{"test-key": true},
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components)
				assert.True(t, components.Config.EnableAuth)
				assert.Equal(t, map[string]bool{"test-key": true}, components.Config.APIKeys)
			},
		},
		{
			name: "creates router with database components",
			dbComponents: &DatabaseComponents{
				ProfilesRepo:   new(mocks.MockProfilesRepositoryInterface),
				CartRepo:       new(mocks.MockCartRepositoryInterface),
				LoggingService: new(mocks.MockLoggingService),
			},
			cfg: config.Config{
				Server: config.ServerConfig{
					RateLimit:  10,
					RateWindow: time.Second,
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components)
				assert.NotNil(t, components.Config.LoggingService)
				assert.NotNil(t, components.Config.ProfilesService)
			},
		},
		{
			name: "creates router with circuit breakers registered",
			dbComponents: &DatabaseComponents{
				ProfilesRepo:           new(mocks.MockProfilesRepositoryInterface),
				CartRepo:               new(mocks.MockCartRepositoryInterface),
				LoggingService:         new(mocks.MockLoggingService),
				ProfilesCircuitBreaker: circuitbreaker.New(circuitbreaker.DefaultConfig()),
				CartCircuitBreaker:     circuitbreaker.New(circuitbreaker.DefaultConfig()),
				LogsCircuitBreaker:     circuitbreaker.New(circuitbreaker.DefaultConfig()),
			},
			cfg: config.Config{
				Server: config.ServerConfig{
					RateLimit:  10,
					RateWindow: time.Second,
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components)
				assert.NotNil(t, components.HealthHandler)
			},
		},
		{
			name: "token service carried into router config",
			cfg: config.Config{
				Server: config.ServerConfig{
					RateLimit:  10,
					RateWindow: time.Second,
				},
				Auth: config.AuthConfig{
					AdminUsername:     "admin",
					AdminPasswordHash: "$2a$04$notarealhashbutnonempty00000000000000000000000000000",
					JWTSecretKey:      "secret",
					TokenTTL:          time.Hour,
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components)
				assert.NotNil(t, components.Config.TokenService)
			},
		},
		{
			name: "no token service without password hash",
			cfg: config.Config{
				Server: config.ServerConfig{
					RateLimit:  10,
					RateWindow: time.Second,
				},
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components)
				assert.Nil(t, components.Config.TokenService)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceComponents := InitializeServices(tt.cfg, tt.dbComponents)
			if serviceComponents.ProfileCache != nil {
				defer serviceComponents.ProfileCache.Stop()
			}

			components := InitializeRouter(serviceComponents, tt.dbComponents, tt.cfg)
			if tt.validate != nil {
				tt.validate(t, components)
			}
		})
	}
}
