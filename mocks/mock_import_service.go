package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"nfimport/internal/service"
)

// MockImportService is a mock implementation of service.ImportService.
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) Import(ctx context.Context, input service.ImportInput) (*service.ImportResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}
