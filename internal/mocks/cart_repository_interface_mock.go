// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockCartRepositoryInterface struct {
	mock.Mock
}

func (m *MockCartRepositoryInterface) Get(ctx context.Context, productID string) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

func (m *MockCartRepositoryInterface) Set(ctx context.Context, productID string, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *MockCartRepositoryInterface) Clear(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}
