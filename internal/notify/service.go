package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/smeflowhq/leadbot-platform/internal/leads"
	"github.com/smeflowhq/leadbot-platform/internal/observability/metrics"
	"github.com/smeflowhq/leadbot-platform/pkg/logging"
)

const defaultSendTimeout = 10 * time.Second

// Service fans lead notifications out to the team. Delivery is fire-and-
// forget: it runs off the caller's goroutine and a failure is logged, never
// returned, so the lead commit path cannot be blocked or failed by it.
type Service struct {
	notifier Notifier
	metrics  *metrics.ConversationMetrics
	logger   *logging.Logger
	timeout  time.Duration

	wg sync.WaitGroup
}

// NewService creates a notification service.
func NewService(notifier Notifier, m *metrics.ConversationMetrics, timeout time.Duration, logger *logging.Logger) *Service {
	if notifier == nil {
		notifier = NewStubNotifier(logger)
	}
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &Service{
		notifier: notifier,
		metrics:  m,
		logger:   logger,
		timeout:  timeout,
	}
}

// NotifyLead announces a freshly committed lead. High urgency goes out as
// URGENT, everything else as NORMAL.
func (s *Service) NotifyLead(ctx context.Context, lead *leads.Lead) {
	if lead == nil {
		return
	}
	n := buildLeadNotification(lead)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("notify: panic during send", "panic", r)
			}
		}()

		// Detached from the request context so an already-finished turn
		// doesn't cancel the delivery.
		sendCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.notifier.Send(sendCtx, n); err != nil {
			s.metrics.ObserveNotification("error")
			s.logger.Error("notify: lead notification failed", "error", err, "lead_id", lead.ID)
			return
		}
		s.metrics.ObserveNotification("ok")
	}()
}

// Wait blocks until in-flight notifications finish. Used in shutdown and tests.
func (s *Service) Wait() {
	s.wg.Wait()
}

func buildLeadNotification(lead *leads.Lead) Notification {
	priority := PriorityNormal
	if lead.Urgency == "high" {
		priority = PriorityUrgent
	}

	subject := fmt.Sprintf("New lead: %s", lead.BusinessName)
	body := fmt.Sprintf(`A new lead just completed the qualification chat.

Business: %s
Industry: %s
Phone: %s
Challenge: %s
Monthly loss band: %s
Urgency: %s
Appointment: %s
Case ref: %s

Please follow up to confirm the consultation.

— SMEFlow Leads`,
		lead.BusinessName,
		lead.Industry,
		lead.ContactPhone,
		lead.ChallengeSummary,
		lead.LossBand,
		lead.Urgency,
		lead.AppointmentSlot,
		lead.CaseRef,
	)

	return Notification{
		Subject:  subject,
		Body:     body,
		Priority: priority,
	}
}
