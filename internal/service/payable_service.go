package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"nfimport/internal/config"
	"nfimport/internal/domain"
	"nfimport/internal/port"
)

// PayableService reads payables created by imports.
type PayableService interface {
	GetByID(ctx context.Context, tenantID, payableID uuid.UUID) (*domain.PayableWithItems, error)
	GetSourceURL(ctx context.Context, tenantID, payableID uuid.UUID) (string, error)
}

type payableService struct {
	payableRepo port.PayableRepository
	itemRepo    port.PayableItemRepository
	storage     port.ObjectStorage
	cfg         config.S3Config
}

// NewPayableService creates a new PayableService implementation.
func NewPayableService(
	payableRepo port.PayableRepository,
	itemRepo port.PayableItemRepository,
	storage port.ObjectStorage,
	cfg config.S3Config,
) PayableService {
	return &payableService{
		payableRepo: payableRepo,
		itemRepo:    itemRepo,
		storage:     storage,
		cfg:         cfg,
	}
}

func (s *payableService) GetByID(ctx context.Context, tenantID, payableID uuid.UUID) (*domain.PayableWithItems, error) {
	payable, err := s.payableRepo.GetByID(ctx, tenantID, payableID)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.ListByPayable(ctx, payable.ID)
	if err != nil {
		return nil, fmt.Errorf("payableService.GetByID: %w", err)
	}
	return &domain.PayableWithItems{PayableAccount: *payable, Items: items}, nil
}

func (s *payableService) GetSourceURL(ctx context.Context, tenantID, payableID uuid.UUID) (string, error) {
	payable, err := s.payableRepo.GetByID(ctx, tenantID, payableID)
	if err != nil {
		return "", err
	}
	if payable.SourceObjectKey == nil || s.storage == nil {
		return "", domain.ErrSourceDocumentMissing
	}
	return s.storage.GetPresignedURL(ctx, s.cfg.Bucket, *payable.SourceObjectKey, s.cfg.PresignExpiry)
}
