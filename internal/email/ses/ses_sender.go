package ses

import (
	"context"
	"fmt"
	"html"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"nfimport/internal/config"
	"nfimport/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(ctx context.Context, cfg config.EmailConfig) (port.EmailSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(awsCfg),
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		frontendURL: strings.TrimRight(cfg.FrontendURL, "/"),
	}, nil
}

func (s *sesSender) SendDegradedImportNotice(ctx context.Context, toEmail, toName string, notice port.DegradedImportNotice) error {
	msg := BuildDegradedImportMessage(toName, s.frontendURL, notice)
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &msg.Subject, Charset: strPtr("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: &msg.HTML, Charset: strPtr("UTF-8")},
					Text: &types.Content{Data: &msg.Text, Charset: strPtr("UTF-8")},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

// Message is a rendered notice.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

// BuildDegradedImportMessage renders the notice sent when an invoice was
// imported but some of its line items could not be stored.
func BuildDegradedImportMessage(toName, frontendURL string, n port.DegradedImportNotice) Message {
	number := n.InvoiceNumber
	if number == "" {
		number = "S/N"
	}
	greeting := "Olá"
	if toName != "" {
		greeting = "Olá " + toName
	}
	link := fmt.Sprintf("%s/contas-a-pagar/%s", frontendURL, n.PayableID)
	missing := n.ItemsFound - n.ItemsPersisted

	subject := fmt.Sprintf("Nota Fiscal %s importada com itens pendentes", number)
	text := fmt.Sprintf("%s,\n\nA conta a pagar \"%s\" foi criada, mas apenas %d de %d itens da nota foram gravados (%d pendentes).\n\nErro: %s\n\nConfira em: %s\n",
		greeting, n.Description, n.ItemsPersisted, n.ItemsFound, missing, n.ItemError, link)
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Importação parcial da Nota Fiscal %s</h2>
  <p>%s,</p>
  <p>A conta a pagar <strong>%s</strong> foi criada, mas apenas %d de %d itens da nota foram gravados.</p>
  <p style="color: #b91c1c; font-family: monospace;">%s</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Ver conta a pagar</a>
  </p>
</body>
</html>`,
		html.EscapeString(number), html.EscapeString(greeting), html.EscapeString(n.Description),
		n.ItemsPersisted, n.ItemsFound, html.EscapeString(n.ItemError), html.EscapeString(link))

	return Message{Subject: subject, Text: text, HTML: body}
}

func strPtr(s string) *string { return &s }
