// Package repository provides interfaces for repository operations.
package repository

import (
	"context"
)

// ProfilesRepositoryInterface defines the interface for constraint profile repository operations.
type ProfilesRepositoryInterface interface {
	Get(ctx context.Context, productID string) (*ConstraintProfile, error)
	Upsert(ctx context.Context, profile ConstraintProfile) (*ConstraintProfile, error)
	List(ctx context.Context, limit int) ([]ConstraintProfile, error)
	Delete(ctx context.Context, productID string) error
}

// CartRepositoryInterface defines the interface for committed-quantity repository operations.
type CartRepositoryInterface interface {
	Get(ctx context.Context, productID string) (int, error)
	Set(ctx context.Context, productID string, quantity int) error
	Clear(ctx context.Context, productID string) error
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}
