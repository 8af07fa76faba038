package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/smeflowhq/leadbot-platform/internal/leads"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []Notification
	err  error
}

func (r *recordingNotifier) Send(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, n)
	return nil
}

func (r *recordingNotifier) notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.sent))
	copy(out, r.sent)
	return out
}

func sampleLead() *leads.Lead {
	return &leads.Lead{
		ID:               "lead-1",
		BusinessName:     "Oma's Bakery",
		Industry:         "Restaurant / Food Services",
		ContactPhone:     "0800000001",
		ChallengeSummary: "Debt collection",
		Urgency:          "high",
		LossBand:         "₦200,000 – ₦500,000",
		AppointmentSlot:  "Tomorrow morning (9am – 12pm)",
		CaseRef:          "SF-7KQ2M9",
		Source:           leads.SourceWhatsAppBot,
	}
}

func TestNotifyLeadDeliversAsync(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewService(notifier, nil, time.Second, nil)

	svc.NotifyLead(context.Background(), sampleLead())
	svc.Wait()

	sent := notifier.notifications()
	if len(sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sent))
	}
	n := sent[0]
	if n.Priority != PriorityUrgent {
		t.Fatalf("high urgency lead should be URGENT, got %q", n.Priority)
	}
	if !strings.Contains(n.Subject, "Oma's Bakery") {
		t.Fatalf("subject = %q", n.Subject)
	}
	for _, want := range []string{"0800000001", "SF-7KQ2M9", "Debt collection"} {
		if !strings.Contains(n.Body, want) {
			t.Fatalf("body missing %q:\n%s", want, n.Body)
		}
	}
}

func TestNotifyLeadNormalPriority(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewService(notifier, nil, time.Second, nil)

	lead := sampleLead()
	lead.Urgency = "low"
	svc.NotifyLead(context.Background(), lead)
	svc.Wait()

	sent := notifier.notifications()
	if len(sent) != 1 || sent[0].Priority != PriorityNormal {
		t.Fatalf("expected one NORMAL notification, got %+v", sent)
	}
}

func TestNotifyLeadFailureDoesNotPropagate(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	svc := NewService(notifier, nil, time.Second, nil)

	// Must not panic or surface the error to the caller.
	svc.NotifyLead(context.Background(), sampleLead())
	svc.Wait()

	if len(notifier.notifications()) != 0 {
		t.Fatal("failed sends must not be recorded as delivered")
	}
}

func TestNotifyLeadIgnoresNil(t *testing.T) {
	svc := NewService(&recordingNotifier{}, nil, time.Second, nil)
	svc.NotifyLead(context.Background(), nil)
	svc.Wait()
}

func TestSendGridNotifierRequiresAPIKey(t *testing.T) {
	if n := NewSendGridNotifier(SendGridConfig{}, nil); n != nil {
		t.Fatal("expected nil notifier without an API key")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 80); got != "short" {
		t.Fatalf("truncate short = %q", got)
	}
	long := strings.Repeat("a", 100)
	if got := truncate(long, 80); len(got) != 83 || !strings.HasSuffix(got, "...") {
		t.Fatalf("truncate long = %q", got)
	}
}
