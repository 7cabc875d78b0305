package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateSelectorRequest_Validate(t *testing.T) {
	tests := []struct {
		name          string
		request       CreateSelectorRequest
		expectedError error
	}{
		{
			name:    "valid inline constraints",
			request: CreateSelectorRequest{Min: 1, Max: 10, Step: 1, InitialValue: 1},
		},
		{
			name:    "valid profile-backed request",
			request: CreateSelectorRequest{ProductID: "sku-1042", InitialValue: 6},
		},
		{
			name:    "valid unbounded max",
			request: CreateSelectorRequest{Min: 2, Max: 0, Step: 2},
		},
		{
			name:          "negative min",
			request:       CreateSelectorRequest{Min: -1, Max: 10, Step: 1},
			expectedError: ErrInvalidMin,
		},
		{
			name:          "max below min",
			request:       CreateSelectorRequest{Min: 5, Max: 3, Step: 1},
			expectedError: ErrInvalidBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStepRequest_Validate(t *testing.T) {
	tests := []struct {
		name          string
		request       StepRequest
		expectedError error
	}{
		{
			name:    "increment",
			request: StepRequest{Direction: 1},
		},
		{
			name:    "decrement",
			request: StepRequest{Direction: -1},
		},
		{
			name:    "case unit increment",
			request: StepRequest{Direction: 1, Unit: "case"},
		},
		{
			name:          "zero direction",
			request:       StepRequest{Direction: 0},
			expectedError: ErrInvalidDirection,
		},
		{
			name:          "direction above one",
			request:       StepRequest{Direction: 2},
			expectedError: ErrInvalidDirection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCartSyncRequest_Validate(t *testing.T) {
	tests := []struct {
		name          string
		request       CartSyncRequest
		expectedError error
	}{
		{
			name:    "positive quantity",
			request: CartSyncRequest{Quantity: 4},
		},
		{
			name:    "zero quantity clears committed",
			request: CartSyncRequest{Quantity: 0},
		},
		{
			name:          "negative quantity",
			request:       CartSyncRequest{Quantity: -1},
			expectedError: ErrInvalidCartQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConstraintChangeRequest_Validate(t *testing.T) {
	tests := []struct {
		name          string
		request       ConstraintChangeRequest
		expectedError error
	}{
		{
			name:    "valid change",
			request: ConstraintChangeRequest{Min: 2, Max: 20, Step: 2},
		},
		{
			name:    "unbounded max",
			request: ConstraintChangeRequest{Min: 1, Max: 0, Step: 1},
		},
		{
			name:          "negative min",
			request:       ConstraintChangeRequest{Min: -2, Max: 20, Step: 2},
			expectedError: ErrInvalidMin,
		},
		{
			name:          "max below min",
			request:       ConstraintChangeRequest{Min: 10, Max: 5, Step: 1},
			expectedError: ErrInvalidBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateProfileRequest_Validate(t *testing.T) {
	tests := []struct {
		name          string
		request       UpdateProfileRequest
		expectedError error
	}{
		{
			name:    "valid profile",
			request: UpdateProfileRequest{Min: 1, Max: 10, Step: 1},
		},
		{
			name:    "case-pack profile",
			request: UpdateProfileRequest{Min: 6, Step: 1, PackSize: 6, MaxCases: 4},
		},
		{
			name:          "negative min",
			request:       UpdateProfileRequest{Min: -1, Step: 1},
			expectedError: ErrInvalidMin,
		},
		{
			name:          "max below min",
			request:       UpdateProfileRequest{Min: 4, Max: 2, Step: 1},
			expectedError: ErrInvalidBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name          string
		validationErr *ValidationError
		expected      string
	}{
		{
			name: "validation error message format",
			validationErr: &ValidationError{
				Field:   "direction",
				Message: "must be 1 or -1",
			},
			expected: "direction: must be 1 or -1",
		},
		{
			name: "validation error with different field",
			validationErr: &ValidationError{
				Field:   "quantity",
				Message: "must not be negative",
			},
			expected: "quantity: must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.validationErr.Error())
		})
	}
}
