package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
	"github.com/templui/goalflow/internal/model"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appURL    string
	appName   string
}

func NewEmailService(apiKey, fromEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appURL:    appURL,
		appName:   appName,
	}
}

func (s *EmailService) send(ctx context.Context, kind, to, subject, body string) error {
	if s.isDev {
		slog.Info("email sent (dev mode)", "type", kind, "to", to, "subject", subject)
		slog.Debug("email body", "type", kind, "body", body)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	slog.Info("email sent", "type", kind, "to", to)
	return nil
}

func (s *EmailService) SendWelcomeEmail(ctx context.Context, email, name string) error {
	boardURL := fmt.Sprintf("%s/board", s.appURL)
	subject, body := welcomeEmailTemplate(name, boardURL, s.appName)
	return s.send(ctx, "welcome", email, subject, body)
}

// SendSummaryEmail mails a report summary covering period.
func (s *EmailService) SendSummaryEmail(ctx context.Context, email, name, period string, summary *model.Summary) error {
	reportsURL := fmt.Sprintf("%s/reports", s.appURL)
	subject, body := summaryEmailTemplate(name, period, reportsURL, s.appName, summary)
	return s.send(ctx, "summary", email, subject, body)
}
