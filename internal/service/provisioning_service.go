package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"nfimport/internal/domain"
	"nfimport/internal/port"
)

const passwordHashCost = 12

// ProvisionInput describes a tenant and its first administrator.
type ProvisionInput struct {
	TenantName    string
	TenantSlug    string
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// ProvisionOutput reports what was created. TenantCreated is false when the
// slug already existed and the admin was added to it.
type ProvisionOutput struct {
	Tenant        *domain.Tenant
	Admin         *domain.User
	TenantCreated bool
}

// ProvisioningService bootstraps tenants from the command line.
type ProvisioningService interface {
	Provision(ctx context.Context, input ProvisionInput) (*ProvisionOutput, error)
}

type provisioningService struct {
	tenantRepo port.TenantRepository
	userRepo   port.UserRepository
}

// NewProvisioningService creates a new ProvisioningService.
func NewProvisioningService(tenantRepo port.TenantRepository, userRepo port.UserRepository) ProvisioningService {
	return &provisioningService{tenantRepo: tenantRepo, userRepo: userRepo}
}

func (s *provisioningService) Provision(ctx context.Context, input ProvisionInput) (*ProvisionOutput, error) {
	slug := strings.ToLower(strings.TrimSpace(input.TenantSlug))
	if slug == "" || input.AdminEmail == "" || len(input.AdminPassword) < 8 {
		return nil, fmt.Errorf("provisioningService.Provision: slug, admin email and an 8+ character password are required")
	}

	out := &ProvisionOutput{}
	tenant, err := s.tenantRepo.GetBySlug(ctx, slug)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		name := input.TenantName
		if name == "" {
			name = slug
		}
		tenant = &domain.Tenant{Name: name, Slug: slug, IsActive: true}
		if err := s.tenantRepo.Create(ctx, tenant); err != nil {
			return nil, fmt.Errorf("provisioningService.Provision: creating tenant: %w", err)
		}
		out.TenantCreated = true
	case err != nil:
		return nil, fmt.Errorf("provisioningService.Provision: looking up tenant: %w", err)
	}
	out.Tenant = tenant

	hash, err := bcrypt.GenerateFromPassword([]byte(input.AdminPassword), passwordHashCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	admin := &domain.User{
		TenantID:     tenant.ID,
		Email:        strings.ToLower(strings.TrimSpace(input.AdminEmail)),
		PasswordHash: string(hash),
		FullName:     input.AdminName,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return nil, err // ErrDuplicateEmail propagates naturally
	}
	out.Admin = admin
	return out, nil
}
