package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"nfimport/internal/domain"
)

// MockPayableItemRepo is a mock implementation of port.PayableItemRepository.
type MockPayableItemRepo struct {
	mock.Mock
}

func (m *MockPayableItemRepo) Insert(ctx context.Context, item *domain.PayableLineItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockPayableItemRepo) ListByPayable(ctx context.Context, payableID uuid.UUID) ([]domain.PayableLineItem, error) {
	args := m.Called(ctx, payableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayableLineItem), args.Error(1)
}
