package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"nfimport/internal/domain"
	"nfimport/internal/logger"
	"nfimport/internal/nfe"
	"nfimport/internal/port"
)

// SupplierResolver maps an invoice issuer to a supplier of the tenant,
// creating the supplier on first sight.
type SupplierResolver interface {
	// Resolve returns nil, nil when the issuer cannot be linked: no tax ID,
	// or an unknown tax ID with no name to register it under.
	Resolve(ctx context.Context, tenantID uuid.UUID, issuer nfe.Party) (*domain.Supplier, error)
}

type supplierResolver struct {
	supplierRepo port.SupplierRepository
	log          zerolog.Logger
}

// NewSupplierResolver creates a new SupplierResolver implementation.
func NewSupplierResolver(supplierRepo port.SupplierRepository) SupplierResolver {
	return &supplierResolver{
		supplierRepo: supplierRepo,
		log:          logger.WithComponent("supplier_resolver"),
	}
}

func (r *supplierResolver) Resolve(ctx context.Context, tenantID uuid.UUID, issuer nfe.Party) (*domain.Supplier, error) {
	taxID := nfe.DigitsOnly(issuer.TaxID)
	if taxID == "" {
		return nil, nil
	}

	existing, err := r.lookup(ctx, tenantID, taxID)
	if err != nil || existing != nil {
		return existing, err
	}

	name := issuer.TradeName
	if name == "" {
		name = issuer.LegalName
	}
	if name == "" {
		r.log.Warn().Str("tenant_id", tenantID.String()).Str("tax_id", taxID).
			Msg("issuer has no name, supplier not created")
		return nil, nil
	}

	supplier := &domain.Supplier{
		TenantID:    tenantID,
		DisplayName: name,
		TaxID:       &taxID,
		IsActive:    true,
	}
	if err := r.supplierRepo.Create(ctx, supplier); err != nil {
		// Another import registered the same issuer in the meantime.
		if errors.Is(err, domain.ErrDuplicateSupplier) {
			return r.lookup(ctx, tenantID, taxID)
		}
		return nil, fmt.Errorf("supplierResolver.Resolve: %w", err)
	}

	r.log.Info().Str("tenant_id", tenantID.String()).Str("supplier_id", supplier.ID.String()).
		Str("tax_id", taxID).Msg("supplier created from invoice issuer")
	return supplier, nil
}

func (r *supplierResolver) lookup(ctx context.Context, tenantID uuid.UUID, taxID string) (*domain.Supplier, error) {
	supplier, err := r.supplierRepo.GetByTaxID(ctx, tenantID, taxID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("supplierResolver.lookup: %w", err)
	}
	return supplier, nil
}
