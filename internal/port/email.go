package port

import (
	"context"

	"github.com/google/uuid"
)

// DegradedImportNotice describes an import whose line items were only partly stored.
type DegradedImportNotice struct {
	PayableID      uuid.UUID
	InvoiceNumber  string
	Description    string
	ItemsFound     int
	ItemsPersisted int
	ItemError      string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendDegradedImportNotice(ctx context.Context, toEmail, toName string, notice DegradedImportNotice) error
}
