package dialogue

import (
	"context"
	"fmt"
	"time"

	"github.com/smeflowhq/leadbot-platform/internal/leads"
	"github.com/smeflowhq/leadbot-platform/internal/observability/metrics"
	"github.com/smeflowhq/leadbot-platform/internal/session"
	"github.com/smeflowhq/leadbot-platform/pkg/logging"
)

// LeadNotifier tells the operations team about a freshly committed lead.
// Implementations must not block the caller.
type LeadNotifier interface {
	NotifyLead(ctx context.Context, lead *leads.Lead)
}

// Broadcaster signals live dashboards that the lead collection changed.
type Broadcaster interface {
	Publish()
}

// Engine drives the scripted qualification flow: one inbound message per
// phone number in, one reply out, with the session persisted in between and a
// lead committed when the script completes.
type Engine struct {
	store       session.Store
	leadsRepo   leads.Repository
	notifier    LeadNotifier
	broadcaster Broadcaster
	metrics     *metrics.ConversationMetrics
	logger      *logging.Logger
}

// NewEngine wires the engine. Notifier, broadcaster and metrics are optional.
func NewEngine(
	store session.Store,
	leadsRepo leads.Repository,
	notifier LeadNotifier,
	broadcaster Broadcaster,
	m *metrics.ConversationMetrics,
	logger *logging.Logger,
) *Engine {
	if store == nil {
		panic("dialogue: session store required")
	}
	if leadsRepo == nil {
		panic("dialogue: leads repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Engine{
		store:       store,
		leadsRepo:   leadsRepo,
		notifier:    notifier,
		broadcaster: broadcaster,
		metrics:     m,
		logger:      logger,
	}
}

// GetSession returns the session for a phone, creating and persisting an
// empty stage-zero session on first contact.
func (e *Engine) GetSession(ctx context.Context, phone string) (*session.Session, error) {
	s, err := e.store.Get(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("dialogue: load session: %w", err)
	}
	if s != nil {
		return s, nil
	}

	s = session.New(phone)
	if err := e.store.Put(ctx, s); err != nil {
		return nil, fmt.Errorf("dialogue: create session: %w", err)
	}
	return s, nil
}

// HandleMessage advances the conversation by one turn and returns the reply.
// The session is persisted before returning; a store failure propagates and
// the caller should show a generic temporarily-unavailable message. When the
// turn completes the script, exactly one lead is committed and the team is
// notified, with notification and broadcast failures kept off the reply path.
func (e *Engine) HandleMessage(ctx context.Context, phone, text string) (string, error) {
	start := time.Now()

	s, err := e.GetSession(ctx, phone)
	if err != nil {
		return "", err
	}
	prev := s.Stage

	s.Append(session.RoleUser, text)

	handle, ok := stageHandlers[s.Stage]
	if !ok {
		handle = handleComplete
	}
	reply := handle(s, text)

	if !s.Stage.Terminal() {
		s.Stage++
	}
	s.Append(session.RoleBot, reply)
	s.UpdatedAt = time.Now().UTC()

	// The lead must exist before the terminal stage is stored: a failed
	// commit leaves the persisted session at the appointment stage so the
	// next message retries it instead of hitting the terminal handler.
	var committed *leads.Lead
	if prev == session.StageAppointment && s.Stage == session.StageComplete {
		lead, err := e.commitLead(ctx, s)
		if err != nil {
			e.metrics.ObserveTurn(prev.String(), "commit_error", time.Since(start))
			return "", err
		}
		committed = lead
	}

	if err := e.store.Put(ctx, s); err != nil {
		e.metrics.ObserveTurn(prev.String(), "store_error", time.Since(start))
		return "", fmt.Errorf("dialogue: persist session: %w", err)
	}

	if committed != nil {
		e.announceLead(ctx, committed)
	}

	e.metrics.ObserveTurn(prev.String(), "ok", time.Since(start))
	return reply, nil
}

// commitLead converts the completed session into a lead.
func (e *Engine) commitLead(ctx context.Context, s *session.Session) (*leads.Lead, error) {
	businessName := s.BusinessName
	if businessName == "" {
		businessName = "Unnamed business"
	}

	lead, err := e.leadsRepo.Create(ctx, &leads.CreateLeadRequest{
		BusinessName:     businessName,
		Industry:         s.Industry,
		ContactPhone:     s.Phone,
		ChallengeSummary: s.Challenge,
		Urgency:          s.Urgency,
		LossBand:         s.LossBand,
		AppointmentSlot:  s.AppointmentSlot,
		CaseRef:          s.CaseRef,
		Source:           leads.SourceWhatsAppBot,
	})
	if err != nil {
		return nil, fmt.Errorf("dialogue: commit lead: %w", err)
	}

	e.logger.Info("lead committed",
		"lead_id", lead.ID,
		"phone", lead.ContactPhone,
		"urgency", lead.Urgency,
		"case_ref", lead.CaseRef,
	)
	e.metrics.ObserveLeadCreated(lead.Source, lead.Urgency)
	return lead, nil
}

// announceLead fires the operator notification and the dashboard refresh
// signal for a committed lead. Runs only after the terminal session state is
// safely persisted.
func (e *Engine) announceLead(ctx context.Context, lead *leads.Lead) {
	if e.notifier != nil {
		e.notifier.NotifyLead(ctx, lead)
	}
	if e.broadcaster != nil {
		e.broadcaster.Publish()
		e.metrics.ObserveBroadcast()
	}
}
