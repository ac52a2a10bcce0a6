package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"nfimport/internal/domain"
)

// MockSupplierRepo is a mock implementation of port.SupplierRepository.
type MockSupplierRepo struct {
	mock.Mock
}

func (m *MockSupplierRepo) Create(ctx context.Context, supplier *domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepo) GetByTaxID(ctx context.Context, tenantID uuid.UUID, taxID string) (*domain.Supplier, error) {
	args := m.Called(ctx, tenantID, taxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}
