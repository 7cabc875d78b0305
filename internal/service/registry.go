package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/guttosm/quantity-service/internal/domain/dto"
	"github.com/guttosm/quantity-service/internal/domain/model"
	"github.com/guttosm/quantity-service/internal/metrics"
	"github.com/guttosm/quantity-service/internal/repository"
	"github.com/guttosm/quantity-service/internal/selector"
)

// ErrSelectorNotFound is returned when no live selector exists for a line ID.
var ErrSelectorNotFound = errors.New("selector not found")

// RegistryService owns the live selector instances. Each line is created
// with a fresh UUID, operated on through that ID, and disposed when the
// page element goes away. Committed-quantity pushes from the cart fan out
// to every line of the affected product.
type RegistryService interface {
	Create(ctx context.Context, req dto.CreateSelectorRequest) (*model.SelectorSnapshot, error)
	Get(ctx context.Context, lineID string) (*model.SelectorSnapshot, error)
	Dispose(lineID string) error
	Step(ctx context.Context, lineID string, direction int, unit string) (*model.SelectorSnapshot, error)
	SetValue(ctx context.Context, lineID string, raw string, onBlur bool) (*model.SelectorSnapshot, error)
	SetCases(ctx context.Context, lineID string, raw string) (*model.SelectorSnapshot, error)
	ApplyConstraints(ctx context.Context, lineID string, c selector.Constraints) (*model.SelectorSnapshot, error)
	SyncCart(ctx context.Context, productID string, quantity int) ([]model.SelectorSnapshot, error)
	CanAddToCart(ctx context.Context, lineID string) (*selector.AddToCartCheck, error)
	Count() int
}

// line binds one engine instance to its product identity. The engine is
// not safe for concurrent use, so every operation on a line holds its lock.
type line struct {
	mu        sync.Mutex
	sel       *selector.Selector
	productID string
	source    *lineSource
}

// lineSource is the live ConstraintSource for one line. When the line is
// bound to a product with a stored profile, the profile wins over the
// inline bounds on every read, so profile edits surface on the very next
// operation without any push machinery.
type lineSource struct {
	mu        sync.RWMutex
	ctx       context.Context
	inline    selector.Constraints
	productID string
	profiles  ProfilesService
}

// bind captures the context of the operation about to run, so the profile
// lookup behind every constraint read inherits its cancellation and
// deadline. Each operation rebinds before touching the engine.
func (ls *lineSource) bind(ctx context.Context) {
	ls.mu.Lock()
	ls.ctx = ctx
	ls.mu.Unlock()
}

// Constraints implements selector.ConstraintSource.
func (ls *lineSource) Constraints() selector.Constraints {
	ls.mu.RLock()
	inline := ls.inline
	productID := ls.productID
	ctx := ls.ctx
	ls.mu.RUnlock()

	if ctx == nil {
		ctx = context.Background()
	}
	if productID != "" && ls.profiles != nil {
		if p, err := ls.profiles.Get(ctx, productID); err == nil && p != nil {
			return selector.Constraints{Min: p.Min, Max: p.Max, Step: p.Step}
		}
	}
	return inline
}

// setInline replaces the inline bounds.
func (ls *lineSource) setInline(c selector.Constraints) {
	ls.mu.Lock()
	ls.inline = c.Normalize()
	ls.mu.Unlock()
}

// RegistryServiceImpl implements RegistryService.
type RegistryServiceImpl struct {
	mu    sync.RWMutex
	lines map[string]*line

	profiles ProfilesService
	cartRepo repository.CartRepositoryInterface
	onChange func(model.ChangeEvent)

	defaults    selector.Constraints
	hasDefaults bool
}

// RegistryOption configures the registry at construction.
type RegistryOption func(*RegistryServiceImpl)

// WithChangeListener registers a listener invoked on every committed value
// change of any line. Events carry the line ID; a listener interested in a
// single line filters on it.
func WithChangeListener(fn func(model.ChangeEvent)) RegistryOption {
	return func(r *RegistryServiceImpl) { r.onChange = fn }
}

// WithDefaultConstraints sets the bounds applied to lines created without
// inline bounds and without a resolvable product profile.
func WithDefaultConstraints(c selector.Constraints) RegistryOption {
	return func(r *RegistryServiceImpl) {
		r.defaults = c.Normalize()
		r.hasDefaults = true
	}
}

// NewRegistryService creates a new selector registry. The profiles service
// and cart repository are optional; without them lines run on inline
// constraints with a zero committed quantity.
func NewRegistryService(profiles ProfilesService, cartRepo repository.CartRepositoryInterface, opts ...RegistryOption) RegistryService {
	r := &RegistryServiceImpl{
		lines:    make(map[string]*line),
		profiles: profiles,
		cartRepo: cartRepo,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create builds a new selector line and returns its initial snapshot.
// Constraints come from the stored product profile when one exists, from
// the inline request fields otherwise; a request carrying neither falls
// back to the configured default bounds. The committed quantity is seeded
// from the cart store.
func (r *RegistryServiceImpl) Create(ctx context.Context, req dto.CreateSelectorRequest) (*model.SelectorSnapshot, error) {
	inline := selector.Constraints{
		Min:  req.Min,
		Max:  req.Max,
		Step: req.Step,
	}
	if req.Min == 0 && req.Max == 0 && req.Step == 0 && r.hasDefaults {
		inline = r.defaults
	}

	source := &lineSource{
		ctx:       ctx,
		inline:    inline.Normalize(),
		productID: req.ProductID,
		profiles:  r.profiles,
	}

	pack := selector.CasePack{PackSize: req.PackSize, MaxCases: req.MaxCases}
	if req.ProductID != "" && r.profiles != nil {
		if p, err := r.profiles.Get(ctx, req.ProductID); err == nil && p != nil {
			pack = selector.CasePack{PackSize: p.PackSize, MaxCases: p.MaxCases}
		}
	}

	committed := 0
	if req.ProductID != "" && r.cartRepo != nil {
		n, err := r.cartRepo.Get(ctx, req.ProductID)
		if err != nil {
			return nil, err
		}
		committed = n
	}

	lineID := uuid.NewString()
	productID := req.ProductID

	sel := selector.New(lineID, source, req.InitialValue,
		selector.WithCasePack(pack),
		selector.WithCommitted(committed),
		selector.WithInitialControls(req.MinusDisabled, req.PlusDisabled),
		selector.WithOnChange(func(ch selector.Change) {
			if r.onChange != nil {
				r.onChange(model.ChangeEvent{
					LineID:    ch.LineID,
					ProductID: productID,
					Value:     ch.Value,
				})
			}
		}),
	)

	ln := &line{sel: sel, productID: productID, source: source}

	r.mu.Lock()
	r.lines[lineID] = ln
	r.mu.Unlock()

	metrics.SetLiveSelectors(r.Count())

	snap := r.snapshot(ln)
	outcome := "committed"
	if snap.Value != req.InitialValue {
		outcome = "clamped"
	}
	metrics.RecordSelectorOperation("create", outcome)

	return snap, nil
}

// Get returns the current snapshot of a line.
func (r *RegistryServiceImpl) Get(ctx context.Context, lineID string) (*model.SelectorSnapshot, error) {
	ln, err := r.line(lineID)
	if err != nil {
		return nil, err
	}
	ln.mu.Lock()
	defer ln.mu.Unlock()
	ln.source.bind(ctx)
	return r.snapshotLocked(ln), nil
}

// Dispose removes a line from the registry.
func (r *RegistryServiceImpl) Dispose(lineID string) error {
	r.mu.Lock()
	_, ok := r.lines[lineID]
	if ok {
		delete(r.lines, lineID)
	}
	r.mu.Unlock()

	if !ok {
		return ErrSelectorNotFound
	}
	metrics.SetLiveSelectors(r.Count())
	metrics.RecordSelectorOperation("dispose", "committed")
	return nil
}

// Step moves a line by one increment. unit selects the base stepper
// (default) or the case stepper.
func (r *RegistryServiceImpl) Step(ctx context.Context, lineID string, direction int, unit string) (*model.SelectorSnapshot, error) {
	ln, err := r.line(lineID)
	if err != nil {
		return nil, err
	}

	ln.mu.Lock()
	defer ln.mu.Unlock()
	ln.source.bind(ctx)

	before := ln.sel.Value()
	beforeCases := ln.sel.CaseCount()
	op := "step"
	if unit == "case" {
		ln.sel.StepCases(direction)
		op = "step_case"
	} else {
		ln.sel.StepBy(direction)
	}

	snap := r.snapshotLocked(ln)
	metrics.RecordSelectorOperation(op, stepOutcome(snap, before, beforeCases, direction, unit))
	return snap, nil
}

// stepOutcome reports whether a step landed exactly one increment away
// from where it started or was cut short by the effective bounds.
func stepOutcome(snap *model.SelectorSnapshot, before, beforeCases, direction int, unit string) string {
	if direction > 0 {
		direction = 1
	} else {
		direction = -1
	}
	if unit == "case" && snap.CasePackActive {
		if snap.CaseCount != beforeCases+direction {
			return "clamped"
		}
		return "committed"
	}
	if snap.Value != before+direction*snap.Constraints.Step {
		return "clamped"
	}
	return "committed"
}

// SetValue applies a manual entry to a line. A misaligned entry returns
// the snapshot showing the pending input alongside the MisalignmentError.
func (r *RegistryServiceImpl) SetValue(ctx context.Context, lineID string, raw string, onBlur bool) (*model.SelectorSnapshot, error) {
	ln, err := r.line(lineID)
	if err != nil {
		return nil, err
	}

	ln.mu.Lock()
	defer ln.mu.Unlock()
	ln.source.bind(ctx)

	setErr := ln.sel.SetDirect(raw, onBlur)
	snap := r.snapshotLocked(ln)
	switch {
	case setErr != nil:
		metrics.RecordSelectorOperation("set_value", "misaligned")
	case snap.Value != selector.ParseQuantity(raw):
		metrics.RecordSelectorOperation("set_value", "clamped")
	default:
		metrics.RecordSelectorOperation("set_value", "committed")
	}
	return snap, setErr
}

// SetCases applies a manual case-count entry to a line.
func (r *RegistryServiceImpl) SetCases(ctx context.Context, lineID string, raw string) (*model.SelectorSnapshot, error) {
	ln, err := r.line(lineID)
	if err != nil {
		return nil, err
	}

	ln.mu.Lock()
	defer ln.mu.Unlock()
	ln.source.bind(ctx)

	ln.sel.SetCases(raw)
	snap := r.snapshotLocked(ln)

	requested := selector.ParseQuantity(raw)
	outcome := "committed"
	if snap.CasePackActive {
		if snap.CaseCount != requested {
			outcome = "clamped"
		}
	} else if snap.Value != requested {
		outcome = "clamped"
	}
	metrics.RecordSelectorOperation("set_cases", outcome)
	return snap, nil
}

// ApplyConstraints replaces a line's inline bounds and re-validates the
// current value against them. For a profile-bound line the stored profile
// still wins on reads; the inline bounds only apply while no profile
// resolves.
func (r *RegistryServiceImpl) ApplyConstraints(ctx context.Context, lineID string, c selector.Constraints) (*model.SelectorSnapshot, error) {
	ln, err := r.line(lineID)
	if err != nil {
		return nil, err
	}

	ln.mu.Lock()
	defer ln.mu.Unlock()
	ln.source.bind(ctx)

	before := ln.sel.Value()
	ln.source.setInline(c)
	ln.sel.ApplyConstraintChange()

	snap := r.snapshotLocked(ln)
	outcome := "committed"
	if snap.Value != before {
		outcome = "clamped"
	}
	metrics.RecordSelectorOperation("constraint_change", outcome)
	return snap, nil
}

// SyncCart records the committed quantity pushed by the cart subsystem and
// propagates it to every live line of that product. Returns the updated
// snapshots of the affected lines.
func (r *RegistryServiceImpl) SyncCart(ctx context.Context, productID string, quantity int) ([]model.SelectorSnapshot, error) {
	if r.cartRepo != nil {
		if err := r.cartRepo.Set(ctx, productID, quantity); err != nil {
			return nil, err
		}
	}

	r.mu.RLock()
	affected := make([]*line, 0, 4)
	for _, ln := range r.lines {
		if ln.productID == productID {
			affected = append(affected, ln)
		}
	}
	r.mu.RUnlock()

	snapshots := make([]model.SelectorSnapshot, 0, len(affected))
	for _, ln := range affected {
		ln.mu.Lock()
		ln.source.bind(ctx)
		ln.sel.SyncCommitted(quantity)
		snapshots = append(snapshots, *r.snapshotLocked(ln))
		ln.mu.Unlock()
	}

	metrics.RecordSelectorOperation("cart_sync", "committed")
	return snapshots, nil
}

// CanAddToCart runs the pre-submit guard for a line.
func (r *RegistryServiceImpl) CanAddToCart(ctx context.Context, lineID string) (*selector.AddToCartCheck, error) {
	ln, err := r.line(lineID)
	if err != nil {
		return nil, err
	}

	ln.mu.Lock()
	defer ln.mu.Unlock()
	ln.source.bind(ctx)

	check := ln.sel.CanAddToCart()
	outcome := "allowed"
	if !check.Allowed {
		outcome = "refused"
	}
	metrics.RecordSelectorOperation("can_add", outcome)
	return &check, nil
}

// Count returns the number of live lines.
func (r *RegistryServiceImpl) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.lines)
}

// line looks up a live line by ID.
func (r *RegistryServiceImpl) line(lineID string) (*line, error) {
	r.mu.RLock()
	ln, ok := r.lines[lineID]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSelectorNotFound
	}
	return ln, nil
}

// snapshot assembles the externally visible state of a line.
func (r *RegistryServiceImpl) snapshot(ln *line) *model.SelectorSnapshot {
	ln.mu.Lock()
	defer ln.mu.Unlock()
	return r.snapshotLocked(ln)
}

func (r *RegistryServiceImpl) snapshotLocked(ln *line) *model.SelectorSnapshot {
	return &model.SelectorSnapshot{
		LineID:         ln.sel.LineID(),
		ProductID:      ln.productID,
		Value:          ln.sel.Value(),
		InputValue:     ln.sel.InputValue(),
		CaseCount:      ln.sel.CaseCount(),
		CasePackActive: ln.sel.CasePackActive(),
		Committed:      ln.sel.Committed(),
		Constraints:    ln.source.Constraints().Normalize(),
		Controls:       ln.sel.Controls(),
	}
}
