// Package model defines the core domain entities for the quantity service.
package model

import (
	"github.com/guttosm/quantity-service/internal/selector"
)

// SelectorSnapshot is the externally visible state of one selector line,
// assembled from the live engine instance for API responses.
//
// @Description Current state of a quantity selector line
// @Example {"line_id": "550e8400-e29b-41d4-a716-446655440000", "value": 6, "case_count": 1}
type SelectorSnapshot struct {
	// LineID identifies the selector instance; change notifications carry it
	LineID string `json:"line_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	// ProductID is the purchasable unit this line selects a quantity for
	ProductID string `json:"product_id,omitempty" example:"sku-1042"`
	// Value is the authoritative base-unit quantity
	Value int `json:"value" example:"6"`
	// InputValue is what the input field shows; differs from Value only
	// while a misaligned manual entry is left pending
	InputValue int `json:"input_value" example:"6"`
	// CaseCount is the derived case count, present in case-pack mode only
	CaseCount int `json:"case_count,omitempty" example:"1"`
	// CasePackActive reports whether the line operates in case-pack mode
	CasePackActive bool `json:"case_pack_active"`
	// Committed is the quantity already accounted for elsewhere (in cart)
	Committed int `json:"committed" example:"0"`
	// Constraints are the live bounds the line read for this snapshot
	Constraints selector.Constraints `json:"constraints"`
	// Controls is the projected button state
	Controls selector.Controls `json:"controls"`
}

// ChangeEvent is the notification published on every committed value
// change, addressed by line so independent selectors never cross-react.
type ChangeEvent struct {
	LineID    string `json:"line_id"`
	ProductID string `json:"product_id,omitempty"`
	Value     int    `json:"value"`
}
