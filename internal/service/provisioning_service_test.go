package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"nfimport/internal/domain"
	"nfimport/internal/service"
	"nfimport/mocks"
)

func TestProvisioningService_CreatesTenantAndAdmin(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewProvisioningService(tenantRepo, userRepo)
	tenantID := uuid.New()

	tenantRepo.On("GetBySlug", mock.Anything, "acme").Return(nil, domain.ErrNotFound)
	tenantRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Tenant")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Tenant).ID = tenantID }).
		Return(nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	out, err := svc.Provision(context.Background(), service.ProvisionInput{
		TenantName:    "Acme Ltda",
		TenantSlug:    " ACME ",
		AdminEmail:    "Admin@Acme.com",
		AdminPassword: "supersecret",
		AdminName:     "Admin",
	})

	require.NoError(t, err)
	assert.True(t, out.TenantCreated)
	assert.Equal(t, "acme", out.Tenant.Slug)
	assert.True(t, out.Tenant.IsActive)
	assert.Equal(t, tenantID, out.Admin.TenantID)
	assert.Equal(t, "admin@acme.com", out.Admin.Email)
	assert.Equal(t, domain.RoleAdmin, out.Admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(out.Admin.PasswordHash), []byte("supersecret")))
}

func TestProvisioningService_ReusesExistingTenant(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewProvisioningService(tenantRepo, userRepo)
	existing := &domain.Tenant{ID: uuid.New(), Slug: "acme", IsActive: true}

	tenantRepo.On("GetBySlug", mock.Anything, "acme").Return(existing, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(domain.ErrDuplicateEmail)

	out, err := svc.Provision(context.Background(), service.ProvisionInput{
		TenantSlug: "acme", AdminEmail: "admin@acme.com", AdminPassword: "supersecret",
	})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	tenantRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProvisioningService_RejectsShortPassword(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewProvisioningService(tenantRepo, userRepo)

	_, err := svc.Provision(context.Background(), service.ProvisionInput{
		TenantSlug: "acme", AdminEmail: "admin@acme.com", AdminPassword: "short",
	})

	assert.Error(t, err)
	assert.Empty(t, tenantRepo.Calls)
}
