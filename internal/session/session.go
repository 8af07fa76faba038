package session

import "time"

// Stage is a position in the scripted qualification flow. Stages only move
// forward; StageComplete absorbs every message after the script finishes.
type Stage int

const (
	StageWelcome Stage = iota
	StageBusinessName
	StageIndustry
	StageChallenge
	StageLossBracket
	StageAppointment
	StageComplete
)

// String returns the stage name used in logs and metrics labels.
func (s Stage) String() string {
	switch s {
	case StageWelcome:
		return "welcome"
	case StageBusinessName:
		return "business_name"
	case StageIndustry:
		return "industry"
	case StageChallenge:
		return "challenge"
	case StageLossBracket:
		return "loss_bracket"
	case StageAppointment:
		return "appointment"
	case StageComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Terminal reports whether the script has finished for this stage.
func (s Stage) Terminal() bool {
	return s >= StageComplete
}

// Role identifies who produced a transcript entry.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Entry is a single transcript line. The transcript is append-only and
// insertion order is significant; it is rendered as chat history.
type Entry struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the per-phone conversation state. Captured fields stay empty
// until the stage that collects them has run.
type Session struct {
	Phone           string    `json:"phone"`
	Stage           Stage     `json:"stage"`
	Transcript      []Entry   `json:"transcript"`
	BusinessName    string    `json:"business_name,omitempty"`
	Industry        string    `json:"industry,omitempty"`
	Challenge       string    `json:"challenge,omitempty"`
	LossChoice      int       `json:"loss_choice,omitempty"`
	LossBand        string    `json:"loss_band,omitempty"`
	Urgency         string    `json:"urgency,omitempty"`
	AppointmentSlot string    `json:"appointment_slot,omitempty"`
	CaseRef         string    `json:"case_ref,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// New creates an empty stage-zero session for a phone number.
func New(phone string) *Session {
	now := time.Now().UTC()
	return &Session{
		Phone:     phone,
		Stage:     StageWelcome,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Append adds a transcript entry stamped with the current time.
func (s *Session) Append(role Role, text string) {
	s.Transcript = append(s.Transcript, Entry{
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UTC(),
	})
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	dup := *s
	dup.Transcript = make([]Entry, len(s.Transcript))
	copy(dup.Transcript, s.Transcript)
	return &dup
}
