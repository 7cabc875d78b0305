package service

import (
	"context"
	"errors"

	"github.com/guttosm/quantity-service/internal/repository"
	"github.com/guttosm/quantity-service/internal/service/cache"
)

// ErrRepositoryNotConfigured is returned when the repository is not configured.
var ErrRepositoryNotConfigured = errors.New("repository not configured")

// ProfilesService provides constraint-profile operations. Reads go through
// the cache; writes invalidate it so selectors pick up new bounds on their
// next interaction.
type ProfilesService interface {
	Get(ctx context.Context, productID string) (*repository.ConstraintProfile, error)
	Upsert(ctx context.Context, profile repository.ConstraintProfile, updatedBy string) (*repository.ConstraintProfile, error)
	List(ctx context.Context, limit int) ([]repository.ConstraintProfile, error)
	Delete(ctx context.Context, productID string) error
}

// ProfilesServiceImpl implements ProfilesService.
type ProfilesServiceImpl struct {
	profilesRepo repository.ProfilesRepositoryInterface
	cache        cache.Cache
}

// NewProfilesService creates a new profiles service. The cache is optional;
// when nil every read hits the repository.
func NewProfilesService(profilesRepo repository.ProfilesRepositoryInterface, profileCache cache.Cache) ProfilesService {
	return &ProfilesServiceImpl{
		profilesRepo: profilesRepo,
		cache:        profileCache,
	}
}

// Get returns the profile for a product, nil when none is stored.
func (s *ProfilesServiceImpl) Get(ctx context.Context, productID string) (*repository.ConstraintProfile, error) {
	if s.profilesRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(productID); ok {
			return &cached, nil
		}
	}

	profile, err := s.profilesRepo.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if profile != nil && s.cache != nil {
		s.cache.Set(productID, *profile)
	}
	return profile, nil
}

// Upsert stores a profile and invalidates the cached copy.
func (s *ProfilesServiceImpl) Upsert(ctx context.Context, profile repository.ConstraintProfile, updatedBy string) (*repository.ConstraintProfile, error) {
	if s.profilesRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	profile.UpdatedBy = updatedBy
	stored, err := s.profilesRepo.Upsert(ctx, profile)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(profile.ProductID)
	}
	return stored, nil
}

// List returns stored profiles, newest first.
func (s *ProfilesServiceImpl) List(ctx context.Context, limit int) ([]repository.ConstraintProfile, error) {
	if s.profilesRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.profilesRepo.List(ctx, limit)
}

// Delete removes a profile and its cached copy.
func (s *ProfilesServiceImpl) Delete(ctx context.Context, productID string) error {
	if s.profilesRepo == nil {
		return ErrRepositoryNotConfigured
	}
	if err := s.profilesRepo.Delete(ctx, productID); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(productID)
	}
	return nil
}
