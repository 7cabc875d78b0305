package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/quantity-service/internal/service"
)

// SelectorRoutes handles selector-related route registration.
type SelectorRoutes struct {
	handler *Handler
}

// NewSelectorRoutes creates a new SelectorRoutes instance.
func NewSelectorRoutes(registry service.RegistryService) *SelectorRoutes {
	return &SelectorRoutes{
		handler: NewHandler(registry),
	}
}

// RegisterPublicRoutes registers the selector lifecycle and operation routes.
// These are the page-facing routes and carry no token auth; the router may
// still put API-key auth in front of the whole group.
func (r *SelectorRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/selectors", r.handler.CreateSelector)
	rg.GET("/selectors/:id", r.handler.GetSelector)
	rg.DELETE("/selectors/:id", r.handler.DisposeSelector)

	rg.POST("/selectors/:id/step", r.handler.Step)
	rg.PUT("/selectors/:id/value", r.handler.SetValue)
	rg.PUT("/selectors/:id/cases", r.handler.SetCases)
	rg.POST("/selectors/:id/constraints", r.handler.ApplyConstraints)
	rg.GET("/selectors/:id/can-add", r.handler.CanAddToCart)

	rg.PUT("/cart/:productId", r.handler.SyncCart)
}

// GetHandler returns the underlying selector handler.
func (r *SelectorRoutes) GetHandler() *Handler {
	return r.handler
}
