package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tenant represents an isolated organizational tenant.
type Tenant struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// User represents an authenticated user belonging to a tenant.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TenantID     uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Supplier is an invoice issuer. TaxID holds digits only and is unique per tenant when set.
type Supplier struct {
	ID          uuid.UUID `db:"id" json:"id"`
	TenantID    uuid.UUID `db:"tenant_id" json:"tenant_id"`
	DisplayName string    `db:"display_name" json:"display_name"`
	TaxID       *string   `db:"tax_id" json:"tax_id"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// PayableAccount is money owed to a supplier, usually created from one imported invoice.
// Value is the invoice gross value as read from the document.
type PayableAccount struct {
	ID              uuid.UUID        `db:"id" json:"id"`
	TenantID        uuid.UUID        `db:"tenant_id" json:"tenant_id"`
	Description     string           `db:"description" json:"description"`
	Value           decimal.Decimal  `db:"value" json:"value"`
	DueDate         time.Time        `db:"due_date" json:"due_date"`
	Status          PayableStatus    `db:"status" json:"status"`
	Category        string           `db:"category" json:"category"`
	SupplierID      *uuid.UUID       `db:"supplier_id" json:"supplier_id"`
	InvoiceKey      *string          `db:"invoice_key" json:"invoice_key"`
	InvoiceNumber   *string          `db:"invoice_number" json:"invoice_number"`
	InvoiceSeries   *string          `db:"invoice_series" json:"invoice_series"`
	IssueDate       *time.Time       `db:"issue_date" json:"issue_date"`
	OperationNature *string          `db:"operation_nature" json:"operation_nature"`
	ProductsValue   *decimal.Decimal `db:"products_value" json:"products_value"`
	ServicesValue   *decimal.Decimal `db:"services_value" json:"services_value"`
	FreightValue    *decimal.Decimal `db:"freight_value" json:"freight_value"`
	DiscountValue   *decimal.Decimal `db:"discount_value" json:"discount_value"`
	SourceObjectKey *string          `db:"source_object_key" json:"-"`
	CreatedBy       uuid.UUID        `db:"created_by" json:"created_by"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at" json:"updated_at"`
}

// PayableLineItem is one purchased product of the invoice behind a payable.
type PayableLineItem struct {
	ID                    uuid.UUID        `db:"id" json:"id"`
	PayableID             uuid.UUID        `db:"payable_id" json:"payable_id"`
	Sequence              int              `db:"sequence" json:"sequence"`
	ProductCode           *string          `db:"product_code" json:"product_code"`
	Description           string           `db:"description" json:"description"`
	TaxClassificationCode *string          `db:"tax_classification_code" json:"tax_classification_code"`
	OperationCode         *string          `db:"operation_code" json:"operation_code"`
	Unit                  *string          `db:"unit" json:"unit"`
	Quantity              decimal.Decimal  `db:"quantity" json:"quantity"`
	UnitValue             decimal.Decimal  `db:"unit_value" json:"unit_value"`
	TotalValue            decimal.Decimal  `db:"total_value" json:"total_value"`
	DiscountValue         *decimal.Decimal `db:"discount_value" json:"discount_value"`
	CreatedAt             time.Time        `db:"created_at" json:"created_at"`
}

// PayableWithItems bundles a payable header with its persisted line items.
type PayableWithItems struct {
	PayableAccount
	Items []PayableLineItem `json:"items"`
}
