package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nfimport/internal/domain"
	"nfimport/internal/nfe"
	"nfimport/internal/service"
	"nfimport/mocks"
)

func TestSupplierResolver_NoTaxID(t *testing.T) {
	repo := new(mocks.MockSupplierRepo)
	resolver := service.NewSupplierResolver(repo)

	supplier, err := resolver.Resolve(context.Background(), uuid.New(), nfe.Party{LegalName: "Sem Documento"})

	assert.NoError(t, err)
	assert.Nil(t, supplier)
	repo.AssertNotCalled(t, "GetByTaxID", mock.Anything, mock.Anything, mock.Anything)
}

func TestSupplierResolver_ReusesExisting(t *testing.T) {
	repo := new(mocks.MockSupplierRepo)
	resolver := service.NewSupplierResolver(repo)
	tenantID := uuid.New()
	existing := &domain.Supplier{ID: uuid.New(), TenantID: tenantID, DisplayName: "Casa Silva"}

	repo.On("GetByTaxID", mock.Anything, tenantID, "12345678000190").Return(existing, nil)

	supplier, err := resolver.Resolve(context.Background(), tenantID, nfe.Party{TaxID: "12.345.678/0001-90"})

	require.NoError(t, err)
	assert.Equal(t, existing, supplier)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSupplierResolver_CreatesWithPreferredName(t *testing.T) {
	tests := []struct {
		name  string
		party nfe.Party
		want  string
	}{
		{"trade name preferred", nfe.Party{TaxID: "12345678000190", LegalName: "Silva LTDA", TradeName: "Casa Silva"}, "Casa Silva"},
		{"legal name fallback", nfe.Party{TaxID: "12345678000190", LegalName: "Silva LTDA"}, "Silva LTDA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockSupplierRepo)
			resolver := service.NewSupplierResolver(repo)
			tenantID := uuid.New()

			repo.On("GetByTaxID", mock.Anything, tenantID, "12345678000190").Return(nil, domain.ErrNotFound)
			repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Supplier) bool {
				return s.TenantID == tenantID && s.DisplayName == tt.want && s.IsActive &&
					s.TaxID != nil && *s.TaxID == "12345678000190"
			})).Return(nil)

			supplier, err := resolver.Resolve(context.Background(), tenantID, tt.party)

			require.NoError(t, err)
			require.NotNil(t, supplier)
			assert.Equal(t, tt.want, supplier.DisplayName)
			repo.AssertExpectations(t)
		})
	}
}

func TestSupplierResolver_NoUsableName(t *testing.T) {
	repo := new(mocks.MockSupplierRepo)
	resolver := service.NewSupplierResolver(repo)
	tenantID := uuid.New()

	repo.On("GetByTaxID", mock.Anything, tenantID, "12345678909").Return(nil, domain.ErrNotFound)

	supplier, err := resolver.Resolve(context.Background(), tenantID, nfe.Party{TaxID: "123.456.789-09"})

	assert.NoError(t, err)
	assert.Nil(t, supplier)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSupplierResolver_ConcurrentCreateReusesWinner(t *testing.T) {
	repo := new(mocks.MockSupplierRepo)
	resolver := service.NewSupplierResolver(repo)
	tenantID := uuid.New()
	winner := &domain.Supplier{ID: uuid.New(), TenantID: tenantID, DisplayName: "Casa Silva"}

	repo.On("GetByTaxID", mock.Anything, tenantID, "12345678000190").Return(nil, domain.ErrNotFound).Once()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Supplier")).Return(domain.ErrDuplicateSupplier)
	repo.On("GetByTaxID", mock.Anything, tenantID, "12345678000190").Return(winner, nil)

	supplier, err := resolver.Resolve(context.Background(), tenantID, nfe.Party{TaxID: "12345678000190", TradeName: "Casa Silva"})

	require.NoError(t, err)
	assert.Equal(t, winner.ID, supplier.ID)
}

func TestSupplierResolver_RepositoryError(t *testing.T) {
	repo := new(mocks.MockSupplierRepo)
	resolver := service.NewSupplierResolver(repo)
	tenantID := uuid.New()

	repo.On("GetByTaxID", mock.Anything, tenantID, "12345678000190").Return(nil, errors.New("connection refused"))

	supplier, err := resolver.Resolve(context.Background(), tenantID, nfe.Party{TaxID: "12345678000190", TradeName: "X"})

	assert.Nil(t, supplier)
	assert.ErrorContains(t, err, "connection refused")
}
