package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"nfimport/internal/domain"
	"nfimport/internal/port"
)

type payableItemRepo struct {
	db *sqlx.DB
}

// NewPayableItemRepo creates a new PostgreSQL-backed PayableItemRepository.
// Items are written with positional statements rather than struct binding so
// the write path does not depend on the item model's column mapping.
func NewPayableItemRepo(db *sqlx.DB) port.PayableItemRepository {
	return &payableItemRepo{db: db}
}

func (r *payableItemRepo) Insert(ctx context.Context, item *domain.PayableLineItem) error {
	item.ID = uuid.New()
	item.CreatedAt = time.Now().UTC()

	query := `INSERT INTO payable_line_items (id, payable_id, sequence, product_code, description,
		tax_classification_code, operation_code, unit, quantity, unit_value, total_value,
		discount_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.PayableID, item.Sequence, item.ProductCode, item.Description,
		item.TaxClassificationCode, item.OperationCode, item.Unit, item.Quantity,
		item.UnitValue, item.TotalValue, item.DiscountValue, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("payableItemRepo.Insert: %w", err)
	}
	return nil
}

func (r *payableItemRepo) ListByPayable(ctx context.Context, payableID uuid.UUID) ([]domain.PayableLineItem, error) {
	items := []domain.PayableLineItem{}
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM payable_line_items WHERE payable_id = $1 ORDER BY created_at, sequence", payableID)
	if err != nil {
		return nil, fmt.Errorf("payableItemRepo.ListByPayable: %w", err)
	}
	return items, nil
}
