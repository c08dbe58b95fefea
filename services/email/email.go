package email

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Sender delivers a single email.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// SendGridSender sends email through the SendGrid v3 API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewSendGridSender(apiKey, fromEmail, fromName string) *SendGridSender {
	return &SendGridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *SendGridSender) Send(ctx context.Context, to, subject, text, html string) error {
	if to == "" {
		return fmt.Errorf("email: empty recipient")
	}
	from := mail.NewEmail(s.fromName, s.fromEmail)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), text, html)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("email: send to %s: %w", to, err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("email: send to %s: status %d: %s", to, response.StatusCode, response.Body)
	}
	return nil
}

// NoopSender only logs; used when no email provider is configured.
type NoopSender struct {
	Logger *zap.Logger
}

func (s NoopSender) Send(_ context.Context, to, subject, _, _ string) error {
	if s.Logger != nil {
		s.Logger.Debug("email disabled, dropping message",
			zap.String("to", to),
			zap.String("subject", subject),
		)
	}
	return nil
}
