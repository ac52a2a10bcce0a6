package noop

import (
	"context"

	"github.com/rs/zerolog"

	"nfimport/internal/logger"
	"nfimport/internal/port"
)

type noopSender struct {
	log zerolog.Logger
}

// NewNoopSender creates an EmailSender that only logs the notices it would send.
func NewNoopSender() port.EmailSender {
	return &noopSender{log: logger.WithComponent("email_noop")}
}

func (s *noopSender) SendDegradedImportNotice(_ context.Context, toEmail, _ string, notice port.DegradedImportNotice) error {
	s.log.Info().
		Str("to", toEmail).
		Str("payable_id", notice.PayableID.String()).
		Str("invoice_number", notice.InvoiceNumber).
		Int("items_found", notice.ItemsFound).
		Int("items_persisted", notice.ItemsPersisted).
		Str("item_error", notice.ItemError).
		Msg("degraded import notice")
	return nil
}
