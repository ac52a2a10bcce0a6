package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"nfimport/internal/config"
	"nfimport/internal/domain"
	"nfimport/internal/service"
	"nfimport/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-key-for-unit-tests",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 168 * time.Hour,
		Issuer:             "nfimport-test",
	}
}

func hashPassword(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash)
}

func activeAccount() (*domain.Tenant, *domain.User) {
	tenant := &domain.Tenant{ID: uuid.New(), Name: "Condominio Central", Slug: "central", IsActive: true}
	user := &domain.User{
		ID:           uuid.New(),
		TenantID:     tenant.ID,
		Email:        "financeiro@example.com",
		PasswordHash: hashPassword("password123"),
		FullName:     "Financeiro",
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	return tenant, user
}

func TestAuthService_Login_Success(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, testJWTConfig())
	tenant, user := activeAccount()

	tenantRepo.On("GetBySlug", mock.Anything, "central").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "central",
		Email:      user.Email,
		Password:   "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, claims.TenantID)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, "nfimport-test", claims.Issuer)
}

func TestAuthService_Login_Failures(t *testing.T) {
	tenant, user := activeAccount()
	inactiveTenant := *tenant
	inactiveTenant.IsActive = false
	inactiveUser := *user
	inactiveUser.IsActive = false

	tests := []struct {
		name     string
		tenant   *domain.Tenant
		tenErr   error
		user     *domain.User
		userErr  error
		password string
		want     error
	}{
		{name: "unknown tenant", tenErr: domain.ErrNotFound, password: "password123", want: domain.ErrInvalidCredentials},
		{name: "inactive tenant", tenant: &inactiveTenant, password: "password123", want: domain.ErrTenantInactive},
		{name: "unknown user", tenant: tenant, userErr: domain.ErrNotFound, password: "password123", want: domain.ErrInvalidCredentials},
		{name: "inactive user", tenant: tenant, user: &inactiveUser, password: "password123", want: domain.ErrUserInactive},
		{name: "wrong password", tenant: tenant, user: user, password: "wrong-password", want: domain.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tenantRepo := new(mocks.MockTenantRepo)
			userRepo := new(mocks.MockUserRepo)
			svc := service.NewAuthService(userRepo, tenantRepo, testJWTConfig())

			if tt.tenErr != nil {
				tenantRepo.On("GetBySlug", mock.Anything, "central").Return(nil, tt.tenErr)
			} else {
				tenantRepo.On("GetBySlug", mock.Anything, "central").Return(tt.tenant, nil)
			}
			if tt.userErr != nil {
				userRepo.On("GetByEmail", mock.Anything, tenant.ID, user.Email).Return(nil, tt.userErr)
			} else if tt.user != nil {
				userRepo.On("GetByEmail", mock.Anything, tenant.ID, user.Email).Return(tt.user, nil)
			}

			pair, err := svc.Login(context.Background(), service.LoginInput{
				TenantSlug: "central",
				Email:      user.Email,
				Password:   tt.password,
			})

			assert.Nil(t, pair)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, testJWTConfig())
	tenant, user := activeAccount()

	tenantRepo.On("GetBySlug", mock.Anything, "central").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, user.Email).Return(user, nil)
	userRepo.On("GetByID", mock.Anything, tenant.ID, user.ID).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "central", Email: user.Email, Password: "password123",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "access token must not refresh")
}

func TestAuthService_ValidateToken_RejectsRefreshAndForeignTokens(t *testing.T) {
	tenantRepo := new(mocks.MockTenantRepo)
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, tenantRepo, testJWTConfig())
	tenant, user := activeAccount()

	tenantRepo.On("GetBySlug", mock.Anything, "central").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "central", Email: user.Email, Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)

	other := testJWTConfig()
	other.Secret = "another-secret"
	foreign := service.NewAuthService(userRepo, tenantRepo, other)
	_, err = foreign.ValidateToken(pair.AccessToken)
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
