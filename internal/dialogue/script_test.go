package dialogue

import (
	"strings"
	"testing"

	"github.com/smeflowhq/leadbot-platform/internal/session"
)

func TestHandleIndustryMapsNumericChoice(t *testing.T) {
	s := session.New("0800000001")
	s.Stage = session.StageIndustry

	handleIndustry(s, "1")
	if s.Industry != "Restaurant / Food Services" {
		t.Fatalf("expected canonical industry, got %q", s.Industry)
	}
}

func TestHandleIndustryKeepsOutOfRangeVerbatim(t *testing.T) {
	s := session.New("0800000001")
	s.Stage = session.StageIndustry

	handleIndustry(s, "9")
	if s.Industry != "9" {
		t.Fatalf("expected literal %q stored, got %q", "9", s.Industry)
	}
}

func TestHandleChallengeMapsNumericChoice(t *testing.T) {
	s := session.New("0800000001")
	s.Stage = session.StageChallenge

	handleChallenge(s, "2")
	if s.Challenge != "Debt collection" {
		t.Fatalf("expected Debt collection, got %q", s.Challenge)
	}
}

func TestHandleLossBracketBranchesOnUrgency(t *testing.T) {
	cases := []struct {
		input       string
		wantUrgency string
		wantInReply string
	}{
		{"3", "high", "₦4.2M"},
		{"2", "medium", "₦1.8M"},
		{"6", "low", "Even small leaks"},
		{"no idea", "low", "Even small leaks"},
	}
	for _, tc := range cases {
		s := session.New("0800000001")
		s.Stage = session.StageLossBracket

		reply := handleLossBracket(s, tc.input)
		if s.Urgency != tc.wantUrgency {
			t.Errorf("input %q: urgency = %q, want %q", tc.input, s.Urgency, tc.wantUrgency)
		}
		if !strings.Contains(reply, tc.wantInReply) {
			t.Errorf("input %q: reply %q missing %q", tc.input, reply, tc.wantInReply)
		}
		// Every branch must still offer the appointment menu.
		if !strings.Contains(reply, appointmentOptions[0]) {
			t.Errorf("input %q: reply missing appointment menu", tc.input)
		}
	}
}

func TestHandleLossBracketStoresRawBandOnFreeText(t *testing.T) {
	s := session.New("0800000001")
	s.Stage = session.StageLossBracket

	handleLossBracket(s, "about two hundred thousand")
	if s.LossChoice != 0 {
		t.Fatalf("expected loss choice 0, got %d", s.LossChoice)
	}
	if s.LossBand != "about two hundred thousand" {
		t.Fatalf("expected raw band kept, got %q", s.LossBand)
	}
}

func TestHandleAppointmentGeneratesCaseRef(t *testing.T) {
	s := session.New("0800000001")
	s.Stage = session.StageAppointment

	reply := handleAppointment(s, "1")
	if s.AppointmentSlot != appointmentOptions[0] {
		t.Fatalf("expected canonical slot, got %q", s.AppointmentSlot)
	}
	if s.CaseRef == "" {
		t.Fatal("expected a case reference to be generated")
	}
	if !strings.Contains(reply, s.CaseRef) {
		t.Fatalf("reply %q should quote the case reference %q", reply, s.CaseRef)
	}
}

func TestNewCaseRefShape(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		ref := NewCaseRef()
		if !strings.HasPrefix(ref, "SF-") {
			t.Fatalf("unexpected prefix: %q", ref)
		}
		if len(ref) != len("SF-")+6 {
			t.Fatalf("unexpected length: %q", ref)
		}
		seen[ref] = struct{}{}
	}
	if len(seen) < 90 {
		t.Fatalf("case refs collide far too often: %d unique of 100", len(seen))
	}
}

func TestRenderMenuNumbersOptions(t *testing.T) {
	got := renderMenu([]string{"a", "b"})
	want := "1. a\n2. b"
	if got != want {
		t.Fatalf("renderMenu = %q, want %q", got, want)
	}
}
