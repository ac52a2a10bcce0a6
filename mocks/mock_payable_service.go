package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"nfimport/internal/domain"
)

// MockPayableService is a mock implementation of service.PayableService.
type MockPayableService struct {
	mock.Mock
}

func (m *MockPayableService) GetByID(ctx context.Context, tenantID, payableID uuid.UUID) (*domain.PayableWithItems, error) {
	args := m.Called(ctx, tenantID, payableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayableWithItems), args.Error(1)
}

func (m *MockPayableService) GetSourceURL(ctx context.Context, tenantID, payableID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID, payableID)
	return args.String(0), args.Error(1)
}
