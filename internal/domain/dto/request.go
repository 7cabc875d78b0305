// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

// CreateSelectorRequest represents the JSON request body for creating a
// selector line.
//
// Constraints may be given inline or resolved from a stored product
// profile; when a ProductID is set and a profile exists, the profile is
// the live source of truth and the inline bounds are ignored.
//
// @Description Request to create a quantity selector line
// @Example {"product_id": "sku-1042", "initial_value": 6}
type CreateSelectorRequest struct {
	// ProductID resolves constraints from the stored product profile.
	ProductID string `json:"product_id,omitempty" example:"sku-1042"`
	// Min is the inline minimum quantity. Used when no profile applies.
	Min int `json:"min,omitempty" example:"1" minimum:"0"`
	// Max is the inline maximum quantity. 0 means unbounded.
	Max int `json:"max,omitempty" example:"10"`
	// Step is the inline increment granularity. Defaults to 1.
	Step int `json:"step,omitempty" example:"1" minimum:"1"`
	// PackSize enables case-pack mode when above 0.
	PackSize int `json:"pack_size,omitempty" example:"6"`
	// MaxCases caps the case count. 0 means unbounded.
	MaxCases int `json:"max_cases,omitempty" example:"3"`
	// InitialValue seeds the line from the currently rendered value.
	InitialValue int `json:"initial_value" example:"6"`
	// MinusDisabled latches the minus control permanently disabled when
	// the rendered control was already disabled at attachment.
	MinusDisabled bool `json:"minus_disabled,omitempty"`
	// PlusDisabled latches the plus control permanently disabled.
	PlusDisabled bool `json:"plus_disabled,omitempty"`
} // @name CreateSelectorRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

var (
	// ErrInvalidDirection is returned when a step direction is not ±1.
	ErrInvalidDirection = &ValidationError{
		Field:   "direction",
		Message: "must be 1 or -1",
	}
	// ErrInvalidMin is returned when min is negative.
	ErrInvalidMin = &ValidationError{
		Field:   "min",
		Message: "must not be negative",
	}
	// ErrInvalidBounds is returned when max is below min.
	ErrInvalidBounds = &ValidationError{
		Field:   "max",
		Message: "must be at least min when set",
	}
	// ErrInvalidCartQuantity is returned when a cart quantity is negative.
	ErrInvalidCartQuantity = &ValidationError{
		Field:   "quantity",
		Message: "must not be negative",
	}
)

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate performs custom validation on the request.
// Returns an error if validation fails, nil otherwise.
func (r *CreateSelectorRequest) Validate() error {
	if r.Min < 0 {
		return ErrInvalidMin
	}
	if r.Max != 0 && r.Max < r.Min {
		return ErrInvalidBounds
	}
	return nil
}

// StepRequest represents the JSON request body for a stepper operation.
//
// @Description Step the base quantity or the case count by one increment
// @Example {"direction": 1}
// @Example {"direction": -1, "unit": "case"}
type StepRequest struct {
	// Direction is +1 for increment, -1 for decrement.
	Direction int `json:"direction" binding:"required" example:"1"`
	// Unit selects the base stepper ("base", default) or the case stepper
	// ("case").
	Unit string `json:"unit,omitempty" example:"base"`
} // @name StepRequest

// Validate performs custom validation on the request.
func (r *StepRequest) Validate() error {
	if r.Direction != 1 && r.Direction != -1 {
		return ErrInvalidDirection
	}
	return nil
}

// SetValueRequest represents the JSON request body for a manual entry.
//
// Value is carried as a string because the engine owns garbage-input
// normalization: empty or non-numeric entry is treated as 0, exactly as a
// raw input field would deliver it.
//
// @Description Apply a manual quantity entry
// @Example {"value": "7", "on_blur": true}
type SetValueRequest struct {
	// Value is the raw entry as typed.
	Value string `json:"value" example:"7"`
	// OnBlur marks blur-time entry, which requests validity reporting on a
	// misaligned value.
	OnBlur bool `json:"on_blur,omitempty"`
} // @name SetValueRequest

// SetCasesRequest represents the JSON request body for editing the
// case-count field directly.
//
// @Description Apply a manual case-count entry
// @Example {"cases": "3"}
type SetCasesRequest struct {
	// Cases is the raw case-count entry as typed.
	Cases string `json:"cases" example:"3"`
} // @name SetCasesRequest

// CartSyncRequest represents the JSON request body the cart subsystem
// sends when the committed quantity for a line's product changes.
//
// @Description Update the quantity already committed in the cart
// @Example {"quantity": 4}
type CartSyncRequest struct {
	// Quantity is the committed quantity. Must not be negative.
	Quantity int `json:"quantity" example:"4" minimum:"0"`
} // @name CartSyncRequest

// Validate performs custom validation on the request.
func (r *CartSyncRequest) Validate() error {
	if r.Quantity < 0 {
		return ErrInvalidCartQuantity
	}
	return nil
}

// ConstraintChangeRequest represents the JSON request body applied when
// the bounds themselves change externally, e.g. on a variant swap.
//
// @Description Replace the line's inline constraints and re-validate the value
// @Example {"min": 2, "max": 20, "step": 2}
type ConstraintChangeRequest struct {
	Min  int `json:"min" example:"2" minimum:"0"`
	Max  int `json:"max,omitempty" example:"20"`
	Step int `json:"step" example:"2" minimum:"1"`
} // @name ConstraintChangeRequest

// Validate performs custom validation on the request.
func (r *ConstraintChangeRequest) Validate() error {
	if r.Min < 0 {
		return ErrInvalidMin
	}
	if r.Max != 0 && r.Max < r.Min {
		return ErrInvalidBounds
	}
	return nil
}

// UpdateProfileRequest represents the JSON request body for storing a
// product constraint profile.
type UpdateProfileRequest struct {
	// Min is the minimum quantity.
	Min int `json:"min" example:"1" minimum:"0"`
	// Max is the maximum quantity. 0 means unbounded.
	Max int `json:"max,omitempty" example:"10"`
	// Step is the increment granularity.
	Step int `json:"step" example:"1" minimum:"1"`
	// PackSize enables case-pack mode when above 0.
	PackSize int `json:"pack_size,omitempty" example:"6"`
	// MaxCases caps the case count. 0 means unbounded.
	MaxCases int `json:"max_cases,omitempty" example:"3"`
	// UpdatedBy is the identifier of who stored this configuration.
	UpdatedBy string `json:"updated_by,omitempty"`
} // @name UpdateProfileRequest

// Validate performs custom validation on the request.
func (r *UpdateProfileRequest) Validate() error {
	if r.Min < 0 {
		return ErrInvalidMin
	}
	if r.Max != 0 && r.Max < r.Min {
		return ErrInvalidBounds
	}
	return nil
}

// LoginRequest represents the JSON request body for obtaining an admin
// token for the profile API.
type LoginRequest struct {
	// Username of the configured admin account.
	Username string `json:"username" binding:"required" example:"admin"`
	// Password to verify against the configured bcrypt hash.
	Password string `json:"password" binding:"required"`
} // @name LoginRequest
