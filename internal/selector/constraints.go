// Package selector implements the constrained-quantity engine: a single
// authoritative integer quantity bound by live min/max/step rules, an
// optional case-pack representation kept in sync with it, and an effective
// upper bound that accounts for quantity already committed elsewhere.
package selector

import (
	"strconv"
	"strings"
)

// Constraints holds the min/max/step bounds for a quantity.
//
// Constraints are always pulled fresh from a ConstraintSource before each
// operation; external code (a variant swap, a profile edit) may change them
// between any two operations.
type Constraints struct {
	// Min is the lowest allowed quantity. Never negative.
	Min int
	// Max is the highest allowed quantity. 0 means unbounded.
	Max int
	// Step is the increment granularity. Never below 1.
	Step int
}

// Normalize returns a copy with defaults applied: negative Min becomes 0,
// Step below 1 becomes 1, and a Max below Min (when set) is raised to Min.
func (c Constraints) Normalize() Constraints {
	if c.Min < 0 {
		c.Min = 0
	}
	if c.Step < 1 {
		c.Step = 1
	}
	if c.Max != 0 && c.Max < c.Min {
		c.Max = c.Min
	}
	return c
}

// Bounded reports whether a maximum is configured.
func (c Constraints) Bounded() bool {
	return c.Max > 0
}

// ConstraintSource supplies the current constraints on demand.
//
// Implementations must return the live bounds at call time, not a snapshot:
// the engine re-reads them before every mutating operation by contract.
type ConstraintSource interface {
	Constraints() Constraints
}

// ConstraintSourceFunc adapts a plain function to a ConstraintSource.
type ConstraintSourceFunc func() Constraints

// Constraints implements ConstraintSource.
func (f ConstraintSourceFunc) Constraints() Constraints {
	return f()
}

// StaticConstraints returns a source that always yields c (normalized).
// Useful for selectors whose bounds never change and in tests.
func StaticConstraints(c Constraints) ConstraintSource {
	n := c.Normalize()
	return ConstraintSourceFunc(func() Constraints { return n })
}

// CasePack configures the optional secondary counting unit: a fixed
// multiple of base units sold as one "case".
type CasePack struct {
	// PackSize is the number of base units per case. A value of 0 or below
	// disables case-pack mode entirely.
	PackSize int
	// MaxCases caps the case count. 0 means unbounded.
	MaxCases int
}

// Enabled reports whether case-pack mode is active. A zero or negative
// PackSize disables the mode even when a CasePack was supplied, so the
// engine can never divide by zero on a misauthored pack.
func (p CasePack) Enabled() bool {
	return p.PackSize > 0
}

// EffectiveMax computes the true usable upper bound for this moment:
// the configured maximum minus the quantity already committed elsewhere,
// floored at Min. In case-pack mode the maximum is MaxCases×PackSize.
// ok is false when no maximum is configured (unbounded).
//
// The result is never cached across operations; committed can change
// asynchronously between user actions.
func EffectiveMax(c Constraints, committed int, pack CasePack) (eff int, ok bool) {
	c = c.Normalize()
	if committed < 0 {
		committed = 0
	}

	var limit int
	if pack.Enabled() {
		if pack.MaxCases <= 0 {
			return 0, false
		}
		limit = pack.MaxCases * pack.PackSize
	} else {
		if !c.Bounded() {
			return 0, false
		}
		limit = c.Max
	}

	eff = limit - committed
	if eff < c.Min {
		eff = c.Min
	}
	return eff, true
}

// clampValue forces v into [c.Min, eff] (eff only when bounded).
func clampValue(v int, c Constraints, eff int, bounded bool) int {
	if bounded && v > eff {
		v = eff
	}
	if v < c.Min {
		v = c.Min
	}
	return v
}

// ParseQuantity converts raw manual input to an integer, treating empty,
// non-numeric, or otherwise garbage input as 0. Exported so callers judging
// an entry against its committed result parse exactly as the engine does.
func ParseQuantity(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
