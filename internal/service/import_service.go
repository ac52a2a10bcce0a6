package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
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

const xmlContentType = "application/xml"

// ImportInput is one uploaded invoice file on behalf of an authenticated user.
type ImportInput struct {
	TenantID  uuid.UUID
	UserID    uuid.UUID
	UserEmail string
	FileName  string
	Content   []byte
}

// ImportResult summarizes an accepted import.
type ImportResult struct {
	PayableID      uuid.UUID
	InvoiceNumber  string
	Description    string
	Value          decimal.Decimal
	SupplierName   string
	DueDate        time.Time
	ItemsFound     int
	ItemsPersisted int
	ItemError      string
}

// Degraded reports whether some parsed line items were not stored.
func (r *ImportResult) Degraded() bool {
	return r.ItemsPersisted < r.ItemsFound
}

// ImportService turns an uploaded NF-e file into a payable account.
type ImportService interface {
	Import(ctx context.Context, input ImportInput) (*ImportResult, error)
}

type importService struct {
	payableRepo port.PayableRepository
	resolver    SupplierResolver
	builder     PayableBuilder
	storage     port.ObjectStorage
	emailSender port.EmailSender
	s3Cfg       config.S3Config
	archive     bool
	now         func() time.Time
	log         zerolog.Logger
}

// NewImportService creates a new ImportService implementation. storage may be
// nil, in which case archiving is skipped regardless of archiveCfg.
func NewImportService(
	payableRepo port.PayableRepository,
	resolver SupplierResolver,
	builder PayableBuilder,
	storage port.ObjectStorage,
	emailSender port.EmailSender,
	s3Cfg config.S3Config,
	archiveCfg config.ArchiveConfig,
) ImportService {
	return &importService{
		payableRepo: payableRepo,
		resolver:    resolver,
		builder:     builder,
		storage:     storage,
		emailSender: emailSender,
		s3Cfg:       s3Cfg,
		archive:     archiveCfg.Enabled && storage != nil,
		now:         time.Now,
		log:         logger.WithComponent("import_service"),
	}
}

// Import runs parse, value check, duplicate check, archive, supplier
// resolution, header write and item writes, strictly in that order. Every
// rejection happens before the first write.
func (s *importService) Import(ctx context.Context, input ImportInput) (*ImportResult, error) {
	if !strings.EqualFold(filepath.Ext(input.FileName), domain.XMLExtension) {
		return nil, domain.ErrUnsupportedFileType
	}

	log := s.log.With().Str("tenant_id", input.TenantID.String()).Str("user_id", input.UserID.String()).
		Str("file", input.FileName).Logger()

	inv, err := nfe.Parse(string(input.Content))
	if err != nil {
		log.Warn().Err(err).Int("size", len(input.Content)).Msg("invoice not parseable")
		return nil, domain.ErrDocumentUnparseable
	}
	if _, err := GrossValue(inv); err != nil {
		log.Warn().Str("invoice_number", inv.Number).Msg("invoice without gross value")
		return nil, err
	}

	if inv.InvoiceKey != "" {
		existing, err := s.payableRepo.FindByInvoiceKey(ctx, input.TenantID, inv.InvoiceKey)
		if err != nil {
			return nil, fmt.Errorf("importService.Import: duplicate check: %w", err)
		}
		if existing != nil {
			log.Info().Str("invoice_key", inv.InvoiceKey).Str("payable_id", existing.ID.String()).
				Msg("invoice already imported")
			return nil, &domain.DuplicateInvoiceError{InvoiceKey: inv.InvoiceKey, ExistingID: existing.ID}
		}
	}

	sourceKey := s.archiveSource(ctx, log, input, inv.InvoiceKey)

	supplier, err := s.resolver.Resolve(ctx, input.TenantID, inv.Supplier)
	if err != nil {
		s.discardSource(ctx, log, sourceKey)
		return nil, fmt.Errorf("importService.Import: %w", err)
	}

	built, err := s.builder.Build(ctx, BuildInput{
		TenantID:        input.TenantID,
		CreatedBy:       input.UserID,
		Invoice:         inv,
		Supplier:        supplier,
		SourceObjectKey: sourceKey,
		ImportedAt:      s.now(),
	})
	if err != nil {
		s.discardSource(ctx, log, sourceKey)
		var dup *domain.DuplicateInvoiceError
		if errors.As(err, &dup) {
			if dup.ExistingID == uuid.Nil {
				log.Warn().Err(err).Str("invoice_key", dup.InvoiceKey).Msg("duplicate invoice, existing payable unknown")
			}
			return nil, dup
		}
		return nil, fmt.Errorf("importService.Import: %w", err)
	}

	result := &ImportResult{
		PayableID:      built.Payable.ID,
		InvoiceNumber:  inv.Number,
		Description:    built.Payable.Description,
		Value:          built.Payable.Value,
		SupplierName:   built.SupplierName,
		DueDate:        built.Payable.DueDate,
		ItemsFound:     built.ItemsFound,
		ItemsPersisted: built.ItemsPersisted,
		ItemError:      built.ItemError,
	}

	log.Info().Str("payable_id", result.PayableID.String()).Str("invoice_key", inv.InvoiceKey).
		Int("items_found", result.ItemsFound).Int("items_persisted", result.ItemsPersisted).
		Msg("invoice imported")

	if result.Degraded() {
		s.notifyDegraded(ctx, log, input, result)
	}
	return result, nil
}

// archiveSource keeps the raw XML next to the payable. A failed upload only
// costs the download link, so the import goes on without it.
func (s *importService) archiveSource(ctx context.Context, log zerolog.Logger, input ImportInput, invoiceKey string) string {
	if !s.archive {
		return ""
	}
	key := fmt.Sprintf("tenants/%s/nfe/%s.xml", input.TenantID, uuid.New())
	meta := map[string]string{
		"tenant-id":   input.TenantID.String(),
		"imported-by": input.UserID.String(),
	}
	if invoiceKey != "" {
		meta["invoice-key"] = invoiceKey
	}
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(input.Content),
		ContentType: xmlContentType,
		Size:        int64(len(input.Content)),
		Metadata:    meta,
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("archiving invoice xml failed")
		return ""
	}
	return key
}

// discardSource removes an archived XML whose payable was never written.
func (s *importService) discardSource(ctx context.Context, log zerolog.Logger, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Delete(ctx, s.s3Cfg.Bucket, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("orphaned invoice xml left in storage")
	}
}

func (s *importService) notifyDegraded(ctx context.Context, log zerolog.Logger, input ImportInput, result *ImportResult) {
	if s.emailSender == nil || input.UserEmail == "" {
		return
	}
	notice := port.DegradedImportNotice{
		PayableID:      result.PayableID,
		InvoiceNumber:  result.InvoiceNumber,
		Description:    result.Description,
		ItemsFound:     result.ItemsFound,
		ItemsPersisted: result.ItemsPersisted,
		ItemError:      result.ItemError,
	}
	if err := s.emailSender.SendDegradedImportNotice(ctx, input.UserEmail, "", notice); err != nil {
		log.Error().Err(err).Str("payable_id", result.PayableID.String()).Msg("degraded import notice not sent")
	}
}
