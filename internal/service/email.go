package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

var ErrEmailNotConfigured = errors.New("email service not configured (missing RESEND_API_KEY)")

// Email is one outgoing transactional message
type Email struct {
	From    string
	To      []string
	ReplyTo string // Optional
	Subject string
	HTML    string
	Text    string
}

// Mailer sends a single email and reports whether the provider accepted it
type Mailer interface {
	Send(ctx context.Context, email *Email) error
}

type EmailService struct {
	client *resend.Client
	isDev  bool
}

func NewEmailService(apiKey string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client: client,
		isDev:  isDev,
	}
}

func (s *EmailService) Send(ctx context.Context, email *Email) error {
	if s.isDev {
		slog.Info("email sent (dev mode)", "to", email.To, "reply_to", email.ReplyTo, "subject", email.Subject)
		slog.Debug("email body (dev mode)", "text", email.Text)
		return nil
	}

	if s.client == nil {
		return ErrEmailNotConfigured
	}

	params := &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return err
	}

	slog.Info("email sent", "to", email.To, "subject", email.Subject, "id", sent.Id)
	return nil
}
