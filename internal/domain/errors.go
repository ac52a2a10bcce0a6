package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTenantInactive      = errors.New("tenant is inactive")
	ErrUserInactive        = errors.New("user is inactive")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrDuplicateEmail      = errors.New("email already exists in this tenant")
	ErrDuplicateTenantSlug = errors.New("tenant slug already exists")

	ErrInputMissing          = errors.New("no invoice file in request")
	ErrUnsupportedFileType   = errors.New("unsupported file type")
	ErrDocumentUnparseable   = errors.New("invoice document could not be parsed")
	ErrValueMissing          = errors.New("invoice gross value missing")
	ErrDuplicateInvoice      = errors.New("invoice already imported")
	ErrDuplicateSupplier     = errors.New("supplier tax id already exists")
	ErrPayableNotFound       = errors.New("payable not found")
	ErrSourceDocumentMissing = errors.New("payable has no archived source document")
)

// DuplicateInvoiceError reports the payable that already represents an invoice key.
type DuplicateInvoiceError struct {
	InvoiceKey string
	ExistingID uuid.UUID
}

func (e *DuplicateInvoiceError) Error() string {
	if e.ExistingID == uuid.Nil {
		return fmt.Sprintf("invoice %s already imported", e.InvoiceKey)
	}
	return fmt.Sprintf("invoice %s already imported as payable %s", e.InvoiceKey, e.ExistingID)
}

func (e *DuplicateInvoiceError) Unwrap() error {
	return ErrDuplicateInvoice
}
