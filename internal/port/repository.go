package port

import (
	"context"

	"github.com/google/uuid"

	"nfimport/internal/domain"
)

// TenantRepository defines the contract for tenant persistence.
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
}

// UserRepository defines the contract for user persistence.
// All query methods include tenantID to enforce tenant isolation at the data layer.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*domain.User, error)
}

// SupplierRepository defines the contract for supplier persistence.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *domain.Supplier) error
	// GetByTaxID returns domain.ErrNotFound when no supplier of the tenant carries taxID.
	GetByTaxID(ctx context.Context, tenantID uuid.UUID, taxID string) (*domain.Supplier, error)
}

// PayableRepository defines the contract for payable account headers.
type PayableRepository interface {
	// Create inserts the header in a single statement. A clash on the tenant's
	// invoice key is reported as *domain.DuplicateInvoiceError.
	Create(ctx context.Context, payable *domain.PayableAccount) error
	GetByID(ctx context.Context, tenantID, payableID uuid.UUID) (*domain.PayableAccount, error)
	// FindByInvoiceKey returns nil, nil when no payable carries the key.
	FindByInvoiceKey(ctx context.Context, tenantID uuid.UUID, invoiceKey string) (*domain.PayableAccount, error)
}

// PayableItemRepository writes line items through plain SQL statements, one row per call.
type PayableItemRepository interface {
	Insert(ctx context.Context, item *domain.PayableLineItem) error
	ListByPayable(ctx context.Context, payableID uuid.UUID) ([]domain.PayableLineItem, error)
}
