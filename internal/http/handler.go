package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/quantity-service/internal/domain/dto"
	"github.com/guttosm/quantity-service/internal/i18n"
	"github.com/guttosm/quantity-service/internal/middleware"
	"github.com/guttosm/quantity-service/internal/selector"
	"github.com/guttosm/quantity-service/internal/service"
)

// Handler provides HTTP handlers for selector routes.
type Handler struct {
	registry service.RegistryService
}

// NewHandler creates a new Handler instance.
func NewHandler(registry service.RegistryService) *Handler {
	return &Handler{registry: registry}
}

// auditLog writes an audit entry when a logging service is on the context.
func auditLog(c *gin.Context, actionType, message string, fields map[string]interface{}) {
	if loggingService, exists := c.Get("logging_service"); exists {
		if ls, ok := loggingService.(service.LoggingService); ok {
			middleware.AuditLog(ls, c, actionType, message, fields)
		}
	}
}

// CreateSelector handles POST /api/selectors requests.
//
// @Summary      Create a selector line
// @Description  Creates a quantity selector line. Constraints come from the stored product profile when a product_id is given and a profile exists, from the inline min/max/step fields otherwise. The initial value is clamped into the effective bounds without emitting a change notification.
// @Tags         Selectors
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateSelectorRequest true "Selector configuration"
// @Success      201 {object} dto.SuccessResponse "Created selector snapshot"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/selectors [post]
func (h *Handler) CreateSelector(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.CreateSelectorRequest](c)
	if err != nil {
		var vErr *dto.ValidationError
		if errors.As(err, &vErr) {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationBounds, err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	if req.ProductID != "" {
		c.Set("product_id", req.ProductID)
	}

	snapshot, err := h.registry.Create(c.Request.Context(), *req)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	auditLog(c, "create", "Selector line created", map[string]interface{}{
		"line_id":     snapshot.LineID,
		"product_id":  snapshot.ProductID,
		"value":       snapshot.Value,
		"case_pack":   snapshot.CasePackActive,
		"constraints": snapshot.Constraints,
	})

	builder.SuccessCreated(snapshot)
}

// GetSelector handles GET /api/selectors/:id requests.
//
// @Summary      Get a selector snapshot
// @Description  Returns the current state of a selector line, including the projected control state and the live constraints.
// @Tags         Selectors
// @Produce      json
// @Param        id path string true "Line ID"
// @Success      200 {object} dto.SuccessResponse "Selector snapshot"
// @Failure      404 {object} dto.ErrorResponse "Selector not found"
// @Router       /api/selectors/{id} [get]
func (h *Handler) GetSelector(c *gin.Context) {
	builder := NewResponseBuilder(c)

	snapshot, err := h.registry.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.notFoundOrInternal(builder, err)
		return
	}

	builder.SuccessOK(snapshot)
}

// DisposeSelector handles DELETE /api/selectors/:id requests.
//
// @Summary      Dispose a selector line
// @Description  Removes a selector line from the registry. Further operations on the line return 404.
// @Tags         Selectors
// @Produce      json
// @Param        id path string true "Line ID"
// @Success      200 {object} dto.SuccessResponse "Disposal confirmation"
// @Failure      404 {object} dto.ErrorResponse "Selector not found"
// @Router       /api/selectors/{id} [delete]
func (h *Handler) DisposeSelector(c *gin.Context) {
	builder := NewResponseBuilder(c)

	lineID := c.Param("id")
	if err := h.registry.Dispose(lineID); err != nil {
		h.notFoundOrInternal(builder, err)
		return
	}

	auditLog(c, "dispose", "Selector line disposed", map[string]interface{}{
		"line_id": lineID,
	})

	builder.SuccessOK(map[string]interface{}{"line_id": lineID, "disposed": true})
}

// Step handles POST /api/selectors/:id/step requests.
//
// @Summary      Step the quantity
// @Description  Moves the quantity by one increment in the given direction, clamped into the effective bounds. With unit "case" the case count moves by one instead; the base value follows.
// @Tags         Selectors
// @Accept       json
// @Produce      json
// @Param        id path string true "Line ID"
// @Param        request body dto.StepRequest true "Step direction and unit"
// @Success      200 {object} dto.SuccessResponse "Updated selector snapshot"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid direction"
// @Failure      404 {object} dto.ErrorResponse "Selector not found"
// @Router       /api/selectors/{id}/step [post]
func (h *Handler) Step(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.StepRequest](c)
	if err != nil {
		var vErr *dto.ValidationError
		if errors.As(err, &vErr) {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationDirection, err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	snapshot, err := h.registry.Step(c.Request.Context(), c.Param("id"), req.Direction, req.Unit)
	if err != nil {
		h.notFoundOrInternal(builder, err)
		return
	}

	auditLog(c, "step", "Selector stepped", map[string]interface{}{
		"direction": req.Direction,
		"unit":      req.Unit,
		"value":     snapshot.Value,
	})

	builder.SuccessOK(snapshot)
}

// SetValue handles PUT /api/selectors/:id/value requests.
//
// @Summary      Apply a manual quantity entry
// @Description  Applies a raw manual entry. Garbage input counts as 0 and is clamped up to the minimum. A clamped value off the step grid is not snapped: the response is 422 with the offending value and bounds, and the unaligned entry stays visible as the input value until corrected.
// @Tags         Selectors
// @Accept       json
// @Produce      json
// @Param        id path string true "Line ID"
// @Param        request body dto.SetValueRequest true "Raw entry"
// @Success      200 {object} dto.SuccessResponse "Updated selector snapshot"
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Failure      404 {object} dto.ErrorResponse "Selector not found"
// @Failure      422 {object} dto.ErrorResponse "Entry not on a valid step boundary"
// @Router       /api/selectors/{id}/value [put]
func (h *Handler) SetValue(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.SetValueRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	snapshot, err := h.registry.SetValue(c.Request.Context(), c.Param("id"), req.Value, req.OnBlur)
	if err != nil {
		var misaligned *selector.MisalignmentError
		if errors.As(err, &misaligned) {
			locale := i18n.GetLocale(c)
			resp := dto.NewError(dto.ErrCodeInvalidRequest, i18n.GetTranslator().Translate(i18n.ErrKeyQuantityMisaligned, locale)).
				WithRequestID(middleware.GetRequestID(c)).
				WithDetails(map[string]string{
					"value":    strconv.Itoa(misaligned.Value),
					"min":      strconv.Itoa(misaligned.Min),
					"step":     strconv.Itoa(misaligned.Step),
					"reported": strconv.FormatBool(misaligned.Reported),
				})
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, resp)
			return
		}
		h.notFoundOrInternal(builder, err)
		return
	}

	auditLog(c, "set_value", "Selector value set", map[string]interface{}{
		"raw":     req.Value,
		"on_blur": req.OnBlur,
		"value":   snapshot.Value,
	})

	builder.SuccessOK(snapshot)
}

// SetCases handles PUT /api/selectors/:id/cases requests.
//
// @Summary      Apply a manual case-count entry
// @Description  Treats the raw entry as a case count, converts it to base units, and clamps the result into the effective bounds. Outside case-pack mode the entry is applied as a plain value entry.
// @Tags         Selectors
// @Accept       json
// @Produce      json
// @Param        id path string true "Line ID"
// @Param        request body dto.SetCasesRequest true "Raw case-count entry"
// @Success      200 {object} dto.SuccessResponse "Updated selector snapshot"
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Failure      404 {object} dto.ErrorResponse "Selector not found"
// @Router       /api/selectors/{id}/cases [put]
func (h *Handler) SetCases(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.SetCasesRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	snapshot, err := h.registry.SetCases(c.Request.Context(), c.Param("id"), req.Cases)
	if err != nil {
		h.notFoundOrInternal(builder, err)
		return
	}

	auditLog(c, "set_cases", "Selector case count set", map[string]interface{}{
		"raw":        req.Cases,
		"value":      snapshot.Value,
		"case_count": snapshot.CaseCount,
	})

	builder.SuccessOK(snapshot)
}

// ApplyConstraints handles POST /api/selectors/:id/constraints requests.
//
// @Summary      Replace the line's constraints
// @Description  Replaces the inline min/max/step bounds and re-validates the current value: a value off the new step grid is snapped down to the nearest valid step, then clamped into the new effective bounds. A change notification is emitted only when the value actually moves.
// @Tags         Selectors
// @Accept       json
// @Produce      json
// @Param        id path string true "Line ID"
// @Param        request body dto.ConstraintChangeRequest true "New constraints"
// @Success      200 {object} dto.SuccessResponse "Updated selector snapshot"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid bounds"
// @Failure      404 {object} dto.ErrorResponse "Selector not found"
// @Router       /api/selectors/{id}/constraints [post]
func (h *Handler) ApplyConstraints(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.ConstraintChangeRequest](c)
	if err != nil {
		var vErr *dto.ValidationError
		if errors.As(err, &vErr) {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationBounds, err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	snapshot, err := h.registry.ApplyConstraints(c.Request.Context(), c.Param("id"), selector.Constraints{
		Min:  req.Min,
		Max:  req.Max,
		Step: req.Step,
	})
	if err != nil {
		h.notFoundOrInternal(builder, err)
		return
	}

	auditLog(c, "constraint_change", "Selector constraints replaced", map[string]interface{}{
		"min":   req.Min,
		"max":   req.Max,
		"step":  req.Step,
		"value": snapshot.Value,
	})

	builder.SuccessOK(snapshot)
}

// SyncCart handles PUT /api/cart/:productId requests.
//
// @Summary      Sync the committed cart quantity
// @Description  Records the quantity already committed in the cart for a product and propagates it to every live selector line of that product. Affected values can only shrink, never grow, and no change notifications are emitted.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        productId path string true "Product ID"
// @Param        request body dto.CartSyncRequest true "Committed quantity"
// @Success      200 {object} dto.SuccessResponse "Updated snapshots of affected lines"
// @Failure      400 {object} dto.ErrorResponse "Bad request - negative quantity"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/cart/{productId} [put]
func (h *Handler) SyncCart(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.CartSyncRequest](c)
	if err != nil {
		var vErr *dto.ValidationError
		if errors.As(err, &vErr) {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	productID := c.Param("productId")
	c.Set("product_id", productID)

	snapshots, err := h.registry.SyncCart(c.Request.Context(), productID, req.Quantity)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	auditLog(c, "cart_sync", "Committed quantity synced", map[string]interface{}{
		"product_id": productID,
		"quantity":   req.Quantity,
		"affected":   len(snapshots),
	})

	builder.SuccessOK(map[string]interface{}{
		"product_id": productID,
		"committed":  req.Quantity,
		"selectors":  snapshots,
	})
}

// CanAddToCart handles GET /api/selectors/:id/can-add requests.
//
// @Summary      Pre-submit add-to-cart guard
// @Description  Reports whether adding the current value on top of the committed quantity still fits under the configured maximum, with the quantities needed to explain a refusal.
// @Tags         Selectors
// @Produce      json
// @Param        id path string true "Line ID"
// @Success      200 {object} dto.SuccessResponse "Guard result"
// @Failure      404 {object} dto.ErrorResponse "Selector not found"
// @Router       /api/selectors/{id}/can-add [get]
func (h *Handler) CanAddToCart(c *gin.Context) {
	builder := NewResponseBuilder(c)

	check, err := h.registry.CanAddToCart(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.notFoundOrInternal(builder, err)
		return
	}

	builder.SuccessOK(check)
}

// notFoundOrInternal maps a registry error to the right status code.
func (h *Handler) notFoundOrInternal(builder *ResponseBuilder, err error) {
	if errors.Is(err, service.ErrSelectorNotFound) {
		builder.Error(http.StatusNotFound, i18n.ErrKeySelectorNotFound, err)
		return
	}
	builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
}
