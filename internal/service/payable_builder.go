package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"nfimport/internal/config"
	"nfimport/internal/domain"
	"nfimport/internal/logger"
	"nfimport/internal/nfe"
	"nfimport/internal/port"
)

// NoNumber stands in for an invoice number the document does not carry.
const NoNumber = "S/N"

// BuildInput carries everything needed to persist one parsed invoice.
type BuildInput struct {
	TenantID        uuid.UUID
	CreatedBy       uuid.UUID
	Invoice         *nfe.Invoice
	Supplier        *domain.Supplier
	SourceObjectKey string
	ImportedAt      time.Time
}

// BuildResult describes the stored header and how many items made it.
type BuildResult struct {
	Payable        *domain.PayableAccount
	SupplierName   string
	ItemsFound     int
	ItemsPersisted int
	ItemError      string
}

// PayableBuilder writes the payable header and then its line items.
type PayableBuilder interface {
	Build(ctx context.Context, input BuildInput) (*BuildResult, error)
}

type payableBuilder struct {
	payableRepo port.PayableRepository
	itemRepo    port.PayableItemRepository
	cfg         config.ImportConfig
	log         zerolog.Logger
}

// NewPayableBuilder creates a new PayableBuilder implementation.
func NewPayableBuilder(
	payableRepo port.PayableRepository,
	itemRepo port.PayableItemRepository,
	cfg config.ImportConfig,
) PayableBuilder {
	return &payableBuilder{
		payableRepo: payableRepo,
		itemRepo:    itemRepo,
		cfg:         cfg,
		log:         logger.WithComponent("payable_builder"),
	}
}

// Build stores the header first. Items follow one statement at a time in
// document order; the first failing item stops the loop, and whatever was
// already written stays.
func (b *payableBuilder) Build(ctx context.Context, input BuildInput) (*BuildResult, error) {
	inv := input.Invoice
	gross, err := GrossValue(inv)
	if err != nil {
		return nil, err
	}

	supplierName := ""
	var supplierID *uuid.UUID
	if input.Supplier != nil {
		supplierID = &input.Supplier.ID
		supplierName = inv.Supplier.LegalName
		if supplierName == "" {
			supplierName = input.Supplier.DisplayName
		}
	}

	payable := &domain.PayableAccount{
		TenantID:        input.TenantID,
		Description:     Description(inv.Number, supplierName),
		Value:           gross,
		DueDate:         DueDate(inv.IssueDate, input.ImportedAt, b.cfg.DueDays),
		Status:          domain.PayableStatusPending,
		Category:        b.cfg.DefaultCategory,
		SupplierID:      supplierID,
		InvoiceKey:      optional(inv.InvoiceKey),
		InvoiceNumber:   optional(inv.Number),
		InvoiceSeries:   optional(inv.Series),
		IssueDate:       inv.IssueDate,
		OperationNature: optional(inv.OperationNature),
		ProductsValue:   inv.Totals.Products,
		ServicesValue:   inv.Totals.Services,
		FreightValue:    inv.Totals.Freight,
		DiscountValue:   inv.Totals.Discount,
		SourceObjectKey: optional(input.SourceObjectKey),
		CreatedBy:       input.CreatedBy,
	}
	if err := b.payableRepo.Create(ctx, payable); err != nil {
		return nil, fmt.Errorf("payableBuilder.Build: %w", err)
	}

	result := &BuildResult{
		Payable:      payable,
		SupplierName: supplierName,
		ItemsFound:   len(inv.Items),
	}
	for _, it := range inv.Items {
		item := lineItem(payable.ID, it)
		if err := b.itemRepo.Insert(ctx, &item); err != nil {
			result.ItemError = err.Error()
			b.log.Error().Err(err).Str("payable_id", payable.ID.String()).Int("sequence", it.Sequence).
				Int("items_found", result.ItemsFound).Int("items_persisted", result.ItemsPersisted).
				Msg("line item insert failed, remaining items skipped")
			break
		}
		result.ItemsPersisted++
	}
	return result, nil
}

// GrossValue returns the invoice gross value, or domain.ErrValueMissing when it
// is absent or not positive.
func GrossValue(inv *nfe.Invoice) (decimal.Decimal, error) {
	if inv == nil || inv.Totals.Gross == nil || !inv.Totals.Gross.IsPositive() {
		return decimal.Zero, domain.ErrValueMissing
	}
	return *inv.Totals.Gross, nil
}

// DueDate is the issue date plus days, or importedAt plus days when the issue
// date is unknown. The result carries no time of day.
func DueDate(issueDate *time.Time, importedAt time.Time, days int) time.Time {
	base := importedAt
	if issueDate != nil {
		base = *issueDate
	}
	y, m, d := base.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
}

// Description builds the payable description from the invoice number and the
// resolved supplier name.
func Description(number, supplierName string) string {
	if number == "" {
		number = NoNumber
	}
	if supplierName != "" {
		return fmt.Sprintf("NF %s - %s", number, supplierName)
	}
	return "Nota Fiscal " + number
}

func lineItem(payableID uuid.UUID, it nfe.Item) domain.PayableLineItem {
	return domain.PayableLineItem{
		PayableID:             payableID,
		Sequence:              it.Sequence,
		ProductCode:           optional(it.ProductCode),
		Description:           it.Description,
		TaxClassificationCode: optional(it.TaxClassificationCode),
		OperationCode:         optional(it.OperationCode),
		Unit:                  optional(it.Unit),
		Quantity:              it.Quantity,
		UnitValue:             it.UnitValue,
		TotalValue:            it.TotalValue,
		DiscountValue:         it.Discount,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
