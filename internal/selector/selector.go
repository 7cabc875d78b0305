package selector

import (
	"fmt"
)

// Change is the notification emitted on every committed value change.
// LineID identifies the emitting selector instance so that multiple
// independent selectors on one page never cross-react; listeners must
// filter on it.
type Change struct {
	LineID string `json:"line_id"`
	Value  int    `json:"value"`
}

// MisalignmentError is returned by SetDirect when a manually entered value
// sits inside the bounds but not on a valid step boundary. The engine does
// not silently snap: the unaligned value stays visible as the pending input
// (see InputValue) and the operation is left incomplete so the user is
// forced to correct it.
type MisalignmentError struct {
	// Value is the clamped-but-unaligned entry.
	Value int
	// Min and Step are the bounds the entry failed against.
	Min  int
	Step int
	// Reported is true when native validity reporting was requested
	// (blur-time entry), false for mid-typing entry.
	Reported bool
}

// Error implements the error interface.
func (e *MisalignmentError) Error() string {
	return fmt.Sprintf("quantity %d is not a multiple of %d from %d", e.Value, e.Step, e.Min)
}

// AddToCartCheck is the pre-submit guard report returned by CanAddToCart.
type AddToCartCheck struct {
	// Allowed is true when committed + the current value fits under the
	// configured maximum (or no maximum is configured).
	Allowed bool `json:"allowed"`
	// Max is the configured total maximum (MaxCases×PackSize in case-pack
	// mode). Meaningful only when HasMax is true.
	Max    int  `json:"max"`
	HasMax bool `json:"has_max"`
	// Committed is the quantity already accounted for elsewhere.
	Committed int `json:"committed"`
	// ToAdd is the current authoritative value.
	ToAdd int `json:"to_add"`
}

// Selector is one constrained-quantity instance: the single authoritative
// base-unit value, its derived case count, the committed-quantity
// annotation, and the projected control state.
//
// A Selector is not safe for concurrent use; by contract there is exactly
// one logical owner invoking operations one at a time. A change listener
// may synchronously call back into SyncCommitted — that path never emits a
// further notification, so no cycle can form.
type Selector struct {
	lineID string
	source ConstraintSource
	pack   CasePack

	value     int
	caseCount int
	committed int

	// pending holds a clamped-but-misaligned manual entry while the
	// operation is left incomplete. Cleared by the next commit.
	pending *int

	// One-way permanent disablement latches for the base pair, captured at
	// initialization. Never reset to false by this engine.
	minusLatched bool
	plusLatched  bool

	controls Controls
	onChange func(Change)
}

// Option configures a Selector at construction.
type Option func(*Selector)

// WithCasePack enables case-pack mode. A pack with PackSize ≤ 0 is treated
// as absent.
func WithCasePack(pack CasePack) Option {
	return func(s *Selector) { s.pack = pack }
}

// WithCommitted sets the initial committed-quantity annotation.
func WithCommitted(n int) Option {
	return func(s *Selector) {
		if n > 0 {
			s.committed = n
		}
	}
}

// WithOnChange registers the change-notification listener.
func WithOnChange(fn func(Change)) Option {
	return func(s *Selector) { s.onChange = fn }
}

// WithInitialControls captures the externally rendered disablement of the
// base controls at initialization. A control observed disabled here stays
// disabled permanently, regardless of what the projector would compute.
func WithInitialControls(minusDisabled, plusDisabled bool) Option {
	return func(s *Selector) {
		s.minusLatched = s.minusLatched || minusDisabled
		s.plusLatched = s.plusLatched || plusDisabled
	}
}

// New creates a Selector reading live bounds from source, initialized from
// the currently rendered value. The initial value is clamped into the
// effective bounds without emitting a notification.
func New(lineID string, source ConstraintSource, initialValue int, opts ...Option) *Selector {
	s := &Selector{
		lineID: lineID,
		source: source,
	}
	for _, opt := range opts {
		opt(s)
	}

	c, eff, bounded := s.bounds()
	s.commit(clampValue(initialValue, c, eff, bounded), false)
	return s
}

// LineID returns the instance identity carried on every notification.
func (s *Selector) LineID() string { return s.lineID }

// Value returns the authoritative base-unit quantity.
func (s *Selector) Value() int { return s.value }

// CaseCount returns the derived case count. Meaningful only in case-pack
// mode; 0 otherwise.
func (s *Selector) CaseCount() int { return s.caseCount }

// Committed returns the committed-quantity annotation.
func (s *Selector) Committed() int { return s.committed }

// Controls returns the projected button state as of the last commit.
func (s *Selector) Controls() Controls { return s.controls }

// CasePackActive reports whether the selector operates in case-pack mode.
func (s *Selector) CasePackActive() bool { return s.pack.Enabled() }

// InputValue returns what the input field shows: the pending unaligned
// entry while a manual entry is left incomplete, the authoritative value
// otherwise.
func (s *Selector) InputValue() int {
	if s.pending != nil {
		return *s.pending
	}
	return s.value
}

// LatchDisabled latches the base controls disabled. Latches are append-only:
// passing false never re-enables a previously latched control.
func (s *Selector) LatchDisabled(minus, plus bool) {
	s.minusLatched = s.minusLatched || minus
	s.plusLatched = s.plusLatched || plus
	s.refreshControls()
}

// bounds reads the constraints fresh and resolves the effective maximum.
func (s *Selector) bounds() (Constraints, int, bool) {
	c := s.source.Constraints().Normalize()
	eff, ok := EffectiveMax(c, s.committed, s.pack)
	return c, eff, ok
}

// commit is the single funnel every value-changing path runs through:
// write the authoritative value, re-derive the case count, notify, and
// project control state — in that order, so the two representations are
// never externally visible out of sync.
func (s *Selector) commit(v int, notify bool) {
	s.pending = nil
	s.value = v
	if s.pack.Enabled() {
		s.caseCount = s.baseToCases(v)
	}
	if notify && s.onChange != nil {
		s.onChange(Change{LineID: s.lineID, Value: v})
	}
	s.refreshControls()
}

func (s *Selector) refreshControls() {
	c, eff, bounded := s.bounds()
	s.controls = projectControls(s.value, s.caseCount, c, eff, bounded, s.pack, s.minusLatched, s.plusLatched)
}

// StepBy moves the value by one step in the given direction (+1 or −1),
// clamped into [min, effectiveMax]. In case-pack mode the case count is
// re-derived from the new base value. Always emits a notification.
func (s *Selector) StepBy(direction int) {
	if direction > 0 {
		direction = 1
	} else {
		direction = -1
	}
	c, eff, bounded := s.bounds()
	next := clampValue(s.value+c.Step*direction, c, eff, bounded)
	s.commit(next, true)
}

// SetDirect applies a manual keyboard entry. Garbage input is treated as 0.
// The raw value is first clamped into [min, effectiveMax]; outside
// case-pack mode the clamped value must then sit on a step boundary. A
// misaligned entry is not snapped: it becomes the pending input value, a
// MisalignmentError is returned, and no commit or notification happens.
// onBlur marks blur-time entry, which requests native validity reporting.
//
// Clamping runs before the alignment check on purpose: an entry that is
// both over the bound and misaligned is judged on its clamped form.
func (s *Selector) SetDirect(raw string, onBlur bool) error {
	c, eff, bounded := s.bounds()
	v := clampValue(ParseQuantity(raw), c, eff, bounded)

	if !s.pack.Enabled() && (v-c.Min)%c.Step != 0 {
		pending := v
		s.pending = &pending
		return &MisalignmentError{Value: v, Min: c.Min, Step: c.Step, Reported: onBlur}
	}

	s.commit(v, true)
	return nil
}

// SetValue is the plain external accessor counterpart to Value: it writes
// a clamped value through the commit funnel without emitting a change
// notification, independent of the stepper machinery. Step alignment is
// not enforced here.
func (s *Selector) SetValue(v int) {
	c, eff, bounded := s.bounds()
	s.commit(clampValue(v, c, eff, bounded), false)
}

// ApplyConstraintChange re-validates the current value after the bounds
// themselves changed externally (a variant swap, a profile edit). Outside
// case-pack mode a value no longer on a step boundary is re-snapped
// downward to the nearest valid step at or below it, then re-clamped into
// the new effective bounds. Idempotent: a second call with unchanged
// bounds changes nothing.
func (s *Selector) ApplyConstraintChange() {
	c, eff, bounded := s.bounds()
	v := s.value
	if !s.pack.Enabled() && v > c.Min {
		v = c.Min + (v-c.Min)/c.Step*c.Step
	}
	v = clampValue(v, c, eff, bounded)

	if v != s.value {
		s.commit(v, true)
		return
	}
	s.refreshControls()
}

// SyncCommitted updates the committed-quantity annotation pushed by the
// cart subsystem and re-clamps the current value into the new effective
// bound. It can only shrink the value, never grow it, and emits no change
// notification — only the control state is refreshed. Safe to call from a
// change listener.
func (s *Selector) SyncCommitted(newCommitted int) {
	if newCommitted < 0 {
		newCommitted = 0
	}
	s.committed = newCommitted

	_, eff, bounded := s.bounds()
	if bounded && s.value > eff {
		s.commit(eff, false)
		return
	}
	s.refreshControls()
}

// casesToBase converts a case count to base units, clamping the count into
// [1, MaxCases] first when a maximum is set.
func (s *Selector) casesToBase(cases int) int {
	if cases < 1 {
		cases = 1
	}
	if s.pack.MaxCases > 0 && cases > s.pack.MaxCases {
		cases = s.pack.MaxCases
	}
	return cases * s.pack.PackSize
}

// baseToCases mirrors the base value into a case count:
// max(1, floor(base/packSize)), clamped to MaxCases when set.
func (s *Selector) baseToCases(base int) int {
	cases := base / s.pack.PackSize
	if cases < 1 {
		cases = 1
	}
	if s.pack.MaxCases > 0 && cases > s.pack.MaxCases {
		cases = s.pack.MaxCases
	}
	return cases
}

// StepCases moves the case count by ±1 within [1, MaxCases], converts to
// base units, and clamps the result into [min, effectiveMax] — a case step
// must not overshoot a base-level cap imposed by the committed quantity.
// Falls back to a base step when case-pack mode is inactive.
func (s *Selector) StepCases(direction int) {
	if !s.pack.Enabled() {
		s.StepBy(direction)
		return
	}
	if direction > 0 {
		direction = 1
	} else {
		direction = -1
	}

	c, eff, bounded := s.bounds()
	base := s.casesToBase(s.caseCount + direction)
	s.commit(clampValue(base, c, eff, bounded), true)
}

// SetCases applies a direct edit of the case-count field: the raw entry is
// treated as a case-count set, converted to base units, then run through
// the identical clamp/commit path. Garbage input is treated as 0 and ends
// up as one case. Falls back to SetDirect when case-pack mode is inactive.
func (s *Selector) SetCases(raw string) {
	if !s.pack.Enabled() {
		// Misalignment cannot occur without a step check; error discarded.
		_ = s.SetDirect(raw, false)
		return
	}

	c, eff, bounded := s.bounds()
	base := s.casesToBase(ParseQuantity(raw))
	s.commit(clampValue(base, c, eff, bounded), true)
}

// CanAddToCart reports whether adding the current value on top of the
// committed quantity would still fit under the configured maximum, along
// with the quantities a caller needs to explain a refusal.
func (s *Selector) CanAddToCart() AddToCartCheck {
	c := s.source.Constraints().Normalize()

	check := AddToCartCheck{
		Committed: s.committed,
		ToAdd:     s.value,
	}
	switch {
	case s.pack.Enabled():
		if s.pack.MaxCases > 0 {
			check.Max = s.pack.MaxCases * s.pack.PackSize
			check.HasMax = true
		}
	case c.Bounded():
		check.Max = c.Max
		check.HasMax = true
	}

	check.Allowed = !check.HasMax || s.committed+s.value <= check.Max
	return check
}
