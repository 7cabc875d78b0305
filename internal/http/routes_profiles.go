package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/quantity-service/internal/middleware"
	"github.com/guttosm/quantity-service/internal/service"
)

// ProfileRoutes handles constraint-profile route registration.
type ProfileRoutes struct {
	handler *ProfilesHandler
}

// NewProfileRoutes creates a new ProfileRoutes instance.
func NewProfileRoutes(profilesService service.ProfilesService, tokenService service.TokenService) *ProfileRoutes {
	return &ProfileRoutes{
		handler: NewProfilesHandler(profilesService, tokenService),
	}
}

// RegisterRoutes registers the login route and the JWT-protected profile
// management routes. When no token service is configured, the profile
// routes are registered without auth (development mode).
func (r *ProfileRoutes) RegisterRoutes(rg *gin.RouterGroup, tokenService service.TokenService) {
	if tokenService != nil {
		rg.POST("/auth/login", r.handler.Login)

		protected := rg.Group("/profiles", middleware.JWTAuth(tokenService))
		r.registerProfileRoutes(protected)
		return
	}

	r.registerProfileRoutes(rg.Group("/profiles"))
}

func (r *ProfileRoutes) registerProfileRoutes(rg *gin.RouterGroup) {
	rg.GET("", r.handler.ListProfiles)
	rg.GET("/:productId", r.handler.GetProfile)
	rg.PUT("/:productId", r.handler.UpdateProfile)
	rg.DELETE("/:productId", r.handler.DeleteProfile)
}

// GetHandler returns the underlying profiles handler.
func (r *ProfileRoutes) GetHandler() *ProfilesHandler {
	return r.handler
}
