package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"nfimport/internal/domain"
)

// MockPayableRepo is a mock implementation of port.PayableRepository.
type MockPayableRepo struct {
	mock.Mock
}

func (m *MockPayableRepo) Create(ctx context.Context, payable *domain.PayableAccount) error {
	args := m.Called(ctx, payable)
	return args.Error(0)
}

func (m *MockPayableRepo) GetByID(ctx context.Context, tenantID, payableID uuid.UUID) (*domain.PayableAccount, error) {
	args := m.Called(ctx, tenantID, payableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayableAccount), args.Error(1)
}

func (m *MockPayableRepo) FindByInvoiceKey(ctx context.Context, tenantID uuid.UUID, invoiceKey string) (*domain.PayableAccount, error) {
	args := m.Called(ctx, tenantID, invoiceKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayableAccount), args.Error(1)
}
