// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/quantity-service/internal/repository"
)

type MockProfilesRepositoryInterface struct {
	mock.Mock
}

func (m *MockProfilesRepositoryInterface) Get(ctx context.Context, productID string) (*repository.ConstraintProfile, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ConstraintProfile), args.Error(1)
}

func (m *MockProfilesRepositoryInterface) Upsert(ctx context.Context, profile repository.ConstraintProfile) (*repository.ConstraintProfile, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ConstraintProfile), args.Error(1)
}

func (m *MockProfilesRepositoryInterface) List(ctx context.Context, limit int) ([]repository.ConstraintProfile, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ConstraintProfile), args.Error(1)
}

func (m *MockProfilesRepositoryInterface) Delete(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}
