// utils/email.go
package utils

import (
	"fl350-gear-hub/models"
	"fmt"

	"github.com/keighl/postmark"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Sender delivers a single email
type Sender interface {
	Send(from, toEmail, subject, htmlContent string) error
}

// EmailService composes storefront emails and hands them to a Sender
type EmailService struct {
	sender Sender
	from   string
}

// NewEmailService picks SendGrid, then Postmark, then a log-only sender
// depending on which credentials are configured.
func NewEmailService(cfg *Config, logger *zap.Logger) *EmailService {
	var sender Sender
	switch {
	case cfg.SendGridAPIKey != "":
		sender = &SendGridSender{client: sendgrid.NewSendClient(cfg.SendGridAPIKey)}
	case cfg.PostmarkToken != "":
		sender = &PostmarkSender{client: postmark.NewClient(cfg.PostmarkToken, "")}
	default:
		logger.Warn("no mail provider configured, emails will only be logged")
		sender = &LogSender{logger: logger}
	}
	return NewEmailServiceWithSender(sender, cfg.EmailSender)
}

// NewEmailServiceWithSender wraps an explicit Sender
func NewEmailServiceWithSender(sender Sender, from string) *EmailService {
	return &EmailService{sender: sender, from: from}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if toEmail == "" {
		return fmt.Errorf("recipient address is empty")
	}
	if err := es.sender.Send(es.from, toEmail, subject, htmlContent); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendOrderConfirmationEmail tells the payer their order has been recorded
func (es *EmailService) SendOrderConfirmationEmail(order models.Order) error {
	subject := "Cargo Clearance Granted - FL350 Pilot Gear Hub"
	name := order.Customer.Name
	if name == "" {
		name = "Pilot"
	}
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Your order (session: %s) is cleared for departure.<br><br>Cargo: <strong>%s</strong><br>Total Amount: <strong>%s %s</strong><br>Status: <strong>%s</strong><br><br>Blue skies,<br>FL350 Dispatch",
		name,
		order.SessionID,
		order.Items,
		order.Amount().StringFixed(2),
		order.Currency,
		order.Status,
	)

	return es.SendEmail(order.Customer.Email, subject, htmlContent)
}

// PostmarkSender delivers mail through Postmark
type PostmarkSender struct {
	client *postmark.Client
}

func (s *PostmarkSender) Send(from, toEmail, subject, htmlContent string) error {
	_, err := s.client.SendEmail(postmark.Email{
		From:     from,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("postmark send error: %w", err)
	}
	return nil
}

// SendGridSender delivers mail through SendGrid
type SendGridSender struct {
	client *sendgrid.Client
}

func (s *SendGridSender) Send(from, toEmail, subject, htmlContent string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail("FL350 Pilot Gear Hub", from),
		subject,
		mail.NewEmail("", toEmail),
		htmlContent,
		htmlContent,
	)

	response, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}
	return nil
}

// LogSender writes mail to the log instead of sending it
type LogSender struct {
	logger *zap.Logger
}

func (s *LogSender) Send(from, toEmail, subject, _ string) error {
	s.logger.Info("email not sent, no provider configured",
		zap.String("from", from),
		zap.String("to", toEmail),
		zap.String("subject", subject),
	)
	return nil
}
