package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/smeflowhq/leadbot-platform/pkg/logging"
)

// Priority classifies a notification for the operations team.
type Priority string

const (
	PriorityUrgent Priority = "URGENT"
	PriorityNormal Priority = "NORMAL"
)

// Notification is one message for the team.
type Notification struct {
	Subject  string
	Body     string
	Priority Priority
}

// Notifier delivers a notification to the team.
// Implementations can be swapped (SendGrid, Slack, log) without changing callers.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// SendGridNotifier emails the operations team via SendGrid.
type SendGridNotifier struct {
	client     *sendgrid.Client
	fromEmail  string
	fromName   string
	recipients []string
	logger     *logging.Logger
}

// SendGridConfig holds configuration for SendGrid.
type SendGridConfig struct {
	APIKey     string
	FromEmail  string
	FromName   string
	Recipients []string
}

// NewSendGridNotifier creates a SendGrid-backed notifier, or nil when no API
// key is configured.
func NewSendGridNotifier(cfg SendGridConfig, logger *logging.Logger) *SendGridNotifier {
	if cfg.APIKey == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FromName == "" {
		cfg.FromName = "SMEFlow Leads"
	}
	return &SendGridNotifier{
		client:     sendgrid.NewSendClient(cfg.APIKey),
		fromEmail:  cfg.FromEmail,
		fromName:   cfg.FromName,
		recipients: cfg.Recipients,
		logger:     logger,
	}
}

// Send emails every configured recipient.
func (s *SendGridNotifier) Send(ctx context.Context, n Notification) error {
	if s.client == nil {
		return fmt.Errorf("notify: sendgrid client not configured")
	}
	if len(s.recipients) == 0 {
		s.logger.Warn("notify: no recipients configured, dropping notification", "subject", n.Subject)
		return nil
	}

	subject := n.Subject
	if n.Priority == PriorityUrgent {
		subject = "[URGENT] " + subject
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	var failed []string
	for _, recipient := range s.recipients {
		to := mail.NewEmail("", recipient)
		message := mail.NewSingleEmail(from, subject, to, n.Body, n.Body)

		response, err := s.client.SendWithContext(ctx, message)
		if err != nil {
			s.logger.Error("sendgrid send failed", "error", err, "to", recipient)
			failed = append(failed, recipient)
			continue
		}
		if response.StatusCode >= 400 {
			s.logger.Error("sendgrid returned error status", "status", response.StatusCode, "to", recipient)
			failed = append(failed, recipient)
			continue
		}
		s.logger.Info("notification sent", "to", recipient, "subject", subject, "priority", n.Priority)
	}

	if len(failed) > 0 {
		return fmt.Errorf("notify: send failed for %s", strings.Join(failed, ", "))
	}
	return nil
}

// StubNotifier logs notifications instead of delivering them.
type StubNotifier struct {
	logger *logging.Logger
}

// NewStubNotifier creates a notifier that only logs.
func NewStubNotifier(logger *logging.Logger) *StubNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubNotifier{logger: logger}
}

// Send logs but doesn't deliver.
func (s *StubNotifier) Send(ctx context.Context, n Notification) error {
	s.logger.Info("stub notifier: would send",
		"subject", n.Subject,
		"priority", n.Priority,
		"body_preview", truncate(n.Body, 80),
	)
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Ensure interface compliance
var _ Notifier = (*SendGridNotifier)(nil)
var _ Notifier = (*StubNotifier)(nil)
