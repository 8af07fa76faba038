package leads

import (
	"strings"
	"time"
)

// Source channels a lead can originate from.
const (
	SourceWhatsAppBot = "whatsapp_bot"
	SourceAuditForm   = "audit_form"
)

// Lead lifecycle statuses. Leads are created as StatusNew and only the admin
// surface moves them afterwards; the conversation engine never mutates a
// committed lead.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusClosed    = "closed"
)

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified, StatusClosed:
		return true
	}
	return false
}

// Lead represents a qualified business captured from the bot or the audit form
type Lead struct {
	ID               string    `json:"id"`
	BusinessName     string    `json:"business_name"`
	Industry         string    `json:"industry"`
	ContactPhone     string    `json:"contact_phone"`
	ChallengeSummary string    `json:"challenge_summary"`
	Urgency          string    `json:"urgency,omitempty"`
	LossBand         string    `json:"loss_band,omitempty"`
	AppointmentSlot  string    `json:"appointment_slot,omitempty"`
	CaseRef          string    `json:"case_ref,omitempty"`
	Source           string    `json:"source"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// CreateLeadRequest represents the request body for creating a lead
type CreateLeadRequest struct {
	BusinessName     string `json:"business_name"`
	Industry         string `json:"industry"`
	ContactPhone     string `json:"contact_phone"`
	ChallengeSummary string `json:"challenge_summary"`
	Urgency          string `json:"urgency"`
	LossBand         string `json:"loss_band"`
	AppointmentSlot  string `json:"appointment_slot"`
	CaseRef          string `json:"case_ref"`
	Source           string `json:"source"`
}

// Validate validates the create lead request
func (r *CreateLeadRequest) Validate() error {
	if strings.TrimSpace(r.BusinessName) == "" {
		return ErrMissingBusinessName
	}
	if strings.TrimSpace(r.ContactPhone) == "" {
		return ErrMissingPhone
	}
	if r.Source == "" {
		r.Source = SourceAuditForm
	}
	return nil
}

// ListFilter narrows List results.
type ListFilter struct {
	Status string
	Source string
	Limit  int
	Offset int
}
