// Package repository provides circuit breaker wrappers for MongoDB operations.
package repository

import (
	"context"

	"github.com/guttosm/quantity-service/internal/circuitbreaker"
)

// ProfilesRepositoryWithCircuitBreaker wraps ProfilesRepository with circuit breaker protection.
type ProfilesRepositoryWithCircuitBreaker struct {
	repo           *ProfilesRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewProfilesRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewProfilesRepositoryWithCircuitBreaker(repo *ProfilesRepository, cb *circuitbreaker.CircuitBreaker) *ProfilesRepositoryWithCircuitBreaker {
	return &ProfilesRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Get returns the profile for a product with circuit breaker protection.
func (r *ProfilesRepositoryWithCircuitBreaker) Get(ctx context.Context, productID string) (*ConstraintProfile, error) {
	var result *ConstraintProfile
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Get(ctx, productID)
		return cbErr
	})
	if err == circuitbreaker.ErrCircuitOpen {
		// Circuit is open - return nil so callers fall back to inline constraints
		return nil, nil
	}
	return result, err
}

// Upsert stores a profile with circuit breaker protection.
func (r *ProfilesRepositoryWithCircuitBreaker) Upsert(ctx context.Context, profile ConstraintProfile) (*ConstraintProfile, error) {
	var result *ConstraintProfile
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Upsert(ctx, profile)
		return cbErr
	})
	return result, err
}

// List returns stored profiles with circuit breaker protection.
func (r *ProfilesRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]ConstraintProfile, error) {
	var result []ConstraintProfile
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.List(ctx, limit)
		return cbErr
	})
	return result, err
}

// Delete removes a profile with circuit breaker protection.
func (r *ProfilesRepositoryWithCircuitBreaker) Delete(ctx context.Context, productID string) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Delete(ctx, productID)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *ProfilesRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// CartRepositoryWithCircuitBreaker wraps CartRepository with circuit breaker protection.
type CartRepositoryWithCircuitBreaker struct {
	repo           *CartRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewCartRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewCartRepositoryWithCircuitBreaker(repo *CartRepository, cb *circuitbreaker.CircuitBreaker) *CartRepositoryWithCircuitBreaker {
	return &CartRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Get returns the committed quantity with circuit breaker protection.
// If the circuit is open, reports 0 committed so selectors keep working
// against the static bounds.
func (r *CartRepositoryWithCircuitBreaker) Get(ctx context.Context, productID string) (int, error) {
	var result int
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Get(ctx, productID)
		return cbErr
	})
	if err == circuitbreaker.ErrCircuitOpen {
		return 0, nil
	}
	return result, err
}

// Set stores the committed quantity with circuit breaker protection.
func (r *CartRepositoryWithCircuitBreaker) Set(ctx context.Context, productID string, quantity int) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Set(ctx, productID, quantity)
	})
}

// Clear removes the committed quantity with circuit breaker protection.
func (r *CartRepositoryWithCircuitBreaker) Clear(ctx context.Context, productID string) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Clear(ctx, productID)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *CartRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker wraps LogsRepository with circuit breaker protection.
type LogsRepositoryWithCircuitBreaker struct {
	repo           *LogsRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo *LogsRepository, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a single log entry with circuit breaker protection.
// If circuit is open, silently fails (logging is non-critical).
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if err == circuitbreaker.ErrCircuitOpen {
		return nil
	}
	return err
}

// CreateMany stores multiple log entries with circuit breaker protection.
// If circuit is open, silently fails (logging is non-critical).
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if err == circuitbreaker.ErrCircuitOpen {
		return nil
	}
	return err
}

// Query retrieves log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	var result []*LogEntryDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, opts)
		return cbErr
	})
	return result, err
}

// Count returns the count of log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, opts)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
