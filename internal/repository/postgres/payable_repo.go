package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"nfimport/internal/domain"
	"nfimport/internal/port"
)

type payableRepo struct {
	db *sqlx.DB
}

// NewPayableRepo creates a new PostgreSQL-backed PayableRepository.
func NewPayableRepo(db *sqlx.DB) port.PayableRepository {
	return &payableRepo{db: db}
}

func (r *payableRepo) Create(ctx context.Context, payable *domain.PayableAccount) error {
	payable.ID = uuid.New()
	now := time.Now().UTC()
	payable.CreatedAt = now
	payable.UpdatedAt = now

	query := `INSERT INTO payable_accounts (id, tenant_id, description, value, due_date, status, category,
		supplier_id, invoice_key, invoice_number, invoice_series, issue_date, operation_nature,
		products_value, services_value, freight_value, discount_value, source_object_key,
		created_by, created_at, updated_at)
		VALUES (:id, :tenant_id, :description, :value, :due_date, :status, :category,
		:supplier_id, :invoice_key, :invoice_number, :invoice_series, :issue_date, :operation_nature,
		:products_value, :services_value, :freight_value, :discount_value, :source_object_key,
		:created_by, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, payable)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "invoice_key") &&
			payable.InvoiceKey != nil {
			return r.duplicateOf(ctx, payable.TenantID, *payable.InvoiceKey)
		}
		return fmt.Errorf("payableRepo.Create: %w", err)
	}
	return nil
}

// duplicateOf builds the error for an insert that lost the race on the invoice key.
// When the winning row cannot be read back, the lookup error is wrapped around
// a DuplicateInvoiceError without ExistingID.
func (r *payableRepo) duplicateOf(ctx context.Context, tenantID uuid.UUID, invoiceKey string) error {
	dup := &domain.DuplicateInvoiceError{InvoiceKey: invoiceKey}
	existing, err := r.FindByInvoiceKey(ctx, tenantID, invoiceKey)
	if err != nil {
		return fmt.Errorf("payableRepo.Create: %w (reading existing payable: %v)", dup, err)
	}
	if existing != nil {
		dup.ExistingID = existing.ID
	}
	return dup
}

func (r *payableRepo) GetByID(ctx context.Context, tenantID, payableID uuid.UUID) (*domain.PayableAccount, error) {
	var payable domain.PayableAccount
	err := r.db.GetContext(ctx, &payable,
		"SELECT * FROM payable_accounts WHERE id = $1 AND tenant_id = $2", payableID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPayableNotFound
		}
		return nil, fmt.Errorf("payableRepo.GetByID: %w", err)
	}
	return &payable, nil
}

func (r *payableRepo) FindByInvoiceKey(ctx context.Context, tenantID uuid.UUID, invoiceKey string) (*domain.PayableAccount, error) {
	var payable domain.PayableAccount
	err := r.db.GetContext(ctx, &payable,
		"SELECT * FROM payable_accounts WHERE tenant_id = $1 AND invoice_key = $2 ORDER BY created_at LIMIT 1",
		tenantID, invoiceKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("payableRepo.FindByInvoiceKey: %w", err)
	}
	return &payable, nil
}
