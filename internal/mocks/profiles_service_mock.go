// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/quantity-service/internal/repository"
)

type MockProfilesService struct {
	mock.Mock
}

func (m *MockProfilesService) Get(ctx context.Context, productID string) (*repository.ConstraintProfile, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ConstraintProfile), args.Error(1)
}

func (m *MockProfilesService) Upsert(ctx context.Context, profile repository.ConstraintProfile, updatedBy string) (*repository.ConstraintProfile, error) {
	args := m.Called(ctx, profile, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ConstraintProfile), args.Error(1)
}

func (m *MockProfilesService) List(ctx context.Context, limit int) ([]repository.ConstraintProfile, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ConstraintProfile), args.Error(1)
}

func (m *MockProfilesService) Delete(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}
