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

type supplierRepo struct {
	db *sqlx.DB
}

// NewSupplierRepo creates a new PostgreSQL-backed SupplierRepository.
func NewSupplierRepo(db *sqlx.DB) port.SupplierRepository {
	return &supplierRepo{db: db}
}

func (r *supplierRepo) Create(ctx context.Context, supplier *domain.Supplier) error {
	supplier.ID = uuid.New()
	now := time.Now().UTC()
	supplier.CreatedAt = now
	supplier.UpdatedAt = now

	query := `INSERT INTO suppliers (id, tenant_id, display_name, tax_id, is_active, created_at, updated_at)
		VALUES (:id, :tenant_id, :display_name, :tax_id, :is_active, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, supplier)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateSupplier
		}
		return fmt.Errorf("supplierRepo.Create: %w", err)
	}
	return nil
}

func (r *supplierRepo) GetByTaxID(ctx context.Context, tenantID uuid.UUID, taxID string) (*domain.Supplier, error) {
	var supplier domain.Supplier
	err := r.db.GetContext(ctx, &supplier,
		"SELECT * FROM suppliers WHERE tenant_id = $1 AND tax_id = $2", tenantID, taxID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("supplierRepo.GetByTaxID: %w", err)
	}
	return &supplier, nil
}
