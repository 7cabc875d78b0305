package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/quantity-service/internal/domain/dto"
	"github.com/guttosm/quantity-service/internal/i18n"
	"github.com/guttosm/quantity-service/internal/repository"
	"github.com/guttosm/quantity-service/internal/service"
)

// ProfilesHandler provides HTTP handlers for constraint-profile routes.
type ProfilesHandler struct {
	profilesService service.ProfilesService
	tokenService    service.TokenService
}

// NewProfilesHandler creates a new ProfilesHandler instance.
func NewProfilesHandler(profilesService service.ProfilesService, tokenService service.TokenService) *ProfilesHandler {
	return &ProfilesHandler{
		profilesService: profilesService,
		tokenService:    tokenService,
	}
}

// Login handles POST /api/auth/login requests.
//
// @Summary      Obtain an admin token
// @Description  Verifies the configured admin credentials and returns a bearer token for the profile management API.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Admin credentials"
// @Success      200 {object} dto.SuccessResponse "Issued token"
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Failure      401 {object} dto.ErrorResponse "Invalid credentials"
// @Router       /api/auth/login [post]
func (h *ProfilesHandler) Login(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.LoginRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	token, expiresIn, err := h.tokenService.Login(req.Username, req.Password)
	if err != nil {
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyInvalidCredentials, err)
		return
	}

	builder.SuccessOK(dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	})
}

// GetProfile handles GET /api/profiles/:productId requests.
//
// @Summary      Get a constraint profile
// @Description  Returns the stored constraint profile for a product.
// @Tags         Profiles
// @Produce      json
// @Param        Authorization header string true "Bearer token"
// @Param        productId path string true "Product ID"
// @Success      200 {object} dto.SuccessResponse "Constraint profile"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      404 {object} dto.ErrorResponse "No profile for this product"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/profiles/{productId} [get]
func (h *ProfilesHandler) GetProfile(c *gin.Context) {
	builder := NewResponseBuilder(c)

	profile, err := h.profilesService.Get(c.Request.Context(), c.Param("productId"))
	if err != nil {
		h.serviceError(builder, err)
		return
	}
	if profile == nil {
		builder.Error(http.StatusNotFound, i18n.ErrKeyProfileNotFound, nil)
		return
	}

	builder.SuccessOK(profile)
}

// UpdateProfile handles PUT /api/profiles/:productId requests.
//
// @Summary      Store a constraint profile
// @Description  Creates or replaces the constraint profile for a product. Selector lines bound to the product pick up the new bounds on their next operation.
// @Tags         Profiles
// @Accept       json
// @Produce      json
// @Param        Authorization header string true "Bearer token"
// @Param        productId path string true "Product ID"
// @Param        request body dto.UpdateProfileRequest true "Constraint profile"
// @Success      200 {object} dto.SuccessResponse "Stored profile"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid bounds"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/profiles/{productId} [put]
func (h *ProfilesHandler) UpdateProfile(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.UpdateProfileRequest](c)
	if err != nil {
		var vErr *dto.ValidationError
		if errors.As(err, &vErr) {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationBounds, err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	productID := c.Param("productId")
	c.Set("product_id", productID)

	profile, err := h.profilesService.Upsert(c.Request.Context(), repository.ConstraintProfile{
		ProductID: productID,
		Min:       req.Min,
		Max:       req.Max,
		Step:      req.Step,
		PackSize:  req.PackSize,
		MaxCases:  req.MaxCases,
	}, req.UpdatedBy)
	if err != nil {
		h.serviceError(builder, err)
		return
	}

	auditLog(c, "update_profile", "Constraint profile stored", map[string]interface{}{
		"product_id": productID,
		"min":        req.Min,
		"max":        req.Max,
		"step":       req.Step,
		"pack_size":  req.PackSize,
		"max_cases":  req.MaxCases,
		"version":    profile.Version,
	})

	builder.SuccessOK(profile)
}

// ListProfiles handles GET /api/profiles requests.
//
// @Summary      List constraint profiles
// @Description  Returns stored constraint profiles, most recently updated first.
// @Tags         Profiles
// @Produce      json
// @Param        Authorization header string true "Bearer token"
// @Param        limit query int false "Limit number of results"
// @Success      200 {object} dto.SuccessResponse "Stored profiles"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/profiles [get]
func (h *ProfilesHandler) ListProfiles(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	profiles, err := h.profilesService.List(c.Request.Context(), limit)
	if err != nil {
		h.serviceError(builder, err)
		return
	}

	builder.SuccessOK(profiles)
}

// DeleteProfile handles DELETE /api/profiles/:productId requests.
//
// @Summary      Delete a constraint profile
// @Description  Removes the stored constraint profile for a product. Selector lines bound to the product fall back to their inline bounds.
// @Tags         Profiles
// @Produce      json
// @Param        Authorization header string true "Bearer token"
// @Param        productId path string true "Product ID"
// @Success      200 {object} dto.SuccessResponse "Deletion confirmation"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/profiles/{productId} [delete]
func (h *ProfilesHandler) DeleteProfile(c *gin.Context) {
	builder := NewResponseBuilder(c)

	productID := c.Param("productId")
	if err := h.profilesService.Delete(c.Request.Context(), productID); err != nil {
		h.serviceError(builder, err)
		return
	}

	auditLog(c, "delete_profile", "Constraint profile deleted", map[string]interface{}{
		"product_id": productID,
	})

	builder.SuccessOK(map[string]interface{}{"product_id": productID, "deleted": true})
}

func (h *ProfilesHandler) serviceError(builder *ResponseBuilder, err error) {
	builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
}
