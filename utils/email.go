// utils/email.go
package utils

import (
	"fmt"
	"html"
	"log"
	"strings"

	"go-storefront/models"

	"github.com/keighl/postmark"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailSender delivers one message.
type EmailSender interface {
	Send(from, to, subject, htmlBody, textBody string) error
}

// PostmarkSender sends through Postmark
type PostmarkSender struct {
	client *postmark.Client
}

func NewPostmarkSender(apiToken string) *PostmarkSender {
	return &PostmarkSender{client: postmark.NewClient(apiToken, "")}
}

func (s *PostmarkSender) Send(from, to, subject, htmlBody, textBody string) error {
	_, err := s.client.SendEmail(postmark.Email{
		From:     from,
		To:       to,
		Subject:  subject,
		HtmlBody: htmlBody,
		TextBody: textBody,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendgridSender sends through SendGrid
type SendgridSender struct {
	client *sendgrid.Client
}

func NewSendgridSender(apiKey string) *SendgridSender {
	return &SendgridSender{client: sendgrid.NewSendClient(apiKey)}
}

func (s *SendgridSender) Send(from, to, subject, htmlBody, textBody string) error {
	message := mail.NewSingleEmail(mail.NewEmail("", from), subject, mail.NewEmail("", to), textBody, htmlBody)
	resp, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// EmailConfig selects the provider used for owner notifications.
type EmailConfig struct {
	Provider         string
	PostmarkAPIToken string
	SendgridAPIKey   string
	Sender           string
	NotifyTo         string
}

// EmailService notifies the store owner about new orders. A nil
// *EmailService is valid and sends nothing.
type EmailService struct {
	sender   EmailSender
	from     string
	notifyTo string
}

// NewEmailService returns nil when no provider is configured.
func NewEmailService(cfg EmailConfig) (*EmailService, error) {
	var sender EmailSender
	switch strings.ToLower(cfg.Provider) {
	case "":
		return nil, nil
	case "postmark":
		if cfg.PostmarkAPIToken == "" {
			return nil, fmt.Errorf("POSTMARK_API_TOKEN is not set in environment variables")
		}
		sender = NewPostmarkSender(cfg.PostmarkAPIToken)
	case "sendgrid":
		if cfg.SendgridAPIKey == "" {
			return nil, fmt.Errorf("SENDGRID_API_KEY is not set in environment variables")
		}
		sender = NewSendgridSender(cfg.SendgridAPIKey)
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
	if cfg.Sender == "" || cfg.NotifyTo == "" {
		return nil, fmt.Errorf("EMAIL_SENDER and ORDER_NOTIFY_EMAIL are required for email notifications")
	}
	return NewEmailServiceWithSender(sender, cfg.Sender, cfg.NotifyTo), nil
}

func NewEmailServiceWithSender(sender EmailSender, from, notifyTo string) *EmailService {
	return &EmailService{sender: sender, from: from, notifyTo: notifyTo}
}

// SendOrderNotification emails the order summary to the store owner
func (es *EmailService) SendOrderNotification(order models.Order, settings models.Settings) error {
	if es == nil {
		return nil
	}
	subject := fmt.Sprintf("New order %s", order.OrderNumber)
	text := OrderMessage(order, settings)
	body := "<pre>" + html.EscapeString(text) + "</pre>"
	if err := es.sender.Send(es.from, es.notifyTo, subject, body, text); err != nil {
		return err
	}
	log.Printf("Order notification for %s sent to %s", order.OrderNumber, es.notifyTo)
	return nil
}
