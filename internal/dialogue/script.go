package dialogue

import (
	"fmt"
	"strings"

	"github.com/smeflowhq/leadbot-platform/internal/session"
)

// Menu options offered by the script. Positions matter: users answer with the
// 1-based number and resolveChoice maps it back to the label.
var (
	industryOptions = []string{
		"Restaurant / Food Services",
		"Retail / Trading",
		"Fashion / Tailoring",
		"Logistics / Transport",
		"Salon / Beauty",
		"Professional Services",
		"Other",
	}

	challengeOptions = []string{
		"Customer follow-up",
		"Debt collection",
		"Inventory tracking",
		"Staff management",
		"Finding new customers",
		"Bookkeeping / records",
		"Other",
	}

	lossBracketOptions = []string{
		"Under ₦100,000",
		"₦100,000 – ₦200,000",
		"₦200,000 – ₦500,000",
		"₦500,000 – ₦1,000,000",
		"Over ₦1,000,000",
		"Not sure",
	}

	appointmentOptions = []string{
		"Tomorrow morning (9am – 12pm)",
		"Tomorrow afternoon (12pm – 4pm)",
		"Later this week",
		"Next week",
	}
)

const completeReply = "Thank you! Our team has your details and will follow up shortly. " +
	"If anything changes, just send a message here."

// handlerFunc runs one stage of the script: it reads the user's answer,
// records captured fields on the session, and returns the bot's reply. Stage
// advancement and all side effects belong to the Engine.
type handlerFunc func(s *session.Session, input string) string

var stageHandlers = map[session.Stage]handlerFunc{
	session.StageWelcome:      handleWelcome,
	session.StageBusinessName: handleBusinessName,
	session.StageIndustry:     handleIndustry,
	session.StageChallenge:    handleChallenge,
	session.StageLossBracket:  handleLossBracket,
	session.StageAppointment:  handleAppointment,
	session.StageComplete:     handleComplete,
}

func renderMenu(options []string) string {
	var b strings.Builder
	for i, opt := range options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, opt)
	}
	return strings.TrimRight(b.String(), "\n")
}

func handleWelcome(s *session.Session, input string) string {
	return "Welcome to SMEFlow! I'm Ada, your automation assistant. " +
		"A few quick questions and I'll show you how much time and money your business could save.\n\n" +
		"First, what's the name of your business?"
}

func handleBusinessName(s *session.Session, input string) string {
	s.BusinessName = strings.TrimSpace(input)
	return fmt.Sprintf("Nice to meet you, %s! What industry are you in? Reply with a number:\n\n%s",
		s.BusinessName, renderMenu(industryOptions))
}

func handleIndustry(s *session.Session, input string) string {
	s.Industry = resolveChoice(industryOptions, input)
	return fmt.Sprintf("Got it. What's the biggest headache in the business right now? Reply with a number:\n\n%s",
		renderMenu(challengeOptions))
}

func handleChallenge(s *session.Session, input string) string {
	s.Challenge = resolveChoice(challengeOptions, input)
	return fmt.Sprintf("That's one of the most common drains we see. Roughly how much would you say \"%s\" costs you every month? Reply with a number:\n\n%s",
		s.Challenge, renderMenu(lossBracketOptions))
}

func handleLossBracket(s *session.Session, input string) string {
	choice := parseChoice(input, len(lossBracketOptions))
	s.LossChoice = choice
	s.LossBand = resolveChoice(lossBracketOptions, input)

	urgency := ClassifyUrgency(choice)
	s.Urgency = string(urgency)
	annual := FormatNaira(AnnualLoss(choice))

	var pitch string
	switch urgency {
	case UrgencyHigh:
		pitch = fmt.Sprintf("That adds up to roughly %s walking out the door every year. "+
			"The good news: this is exactly the kind of leak automation plugs fastest. "+
			"Let's get you in front of a senior consultant right away — free, no obligation.", annual)
	case UrgencyMedium:
		pitch = fmt.Sprintf("That's around %s a year — money that should stay in your business. "+
			"A short call with one of our consultants will show you where to recover it.", annual)
	default:
		pitch = "Even small leaks add up over a year, and most owners underestimate theirs. " +
			"A free 20-minute review with our consultant will give you a clear picture."
	}

	return fmt.Sprintf("%s\n\nWhen works best for you?\n\n%s", pitch, renderMenu(appointmentOptions))
}

func handleAppointment(s *session.Session, input string) string {
	s.AppointmentSlot = resolveChoice(appointmentOptions, input)
	s.CaseRef = NewCaseRef()
	return fmt.Sprintf("Perfect — you're booked for %s. Your case reference is %s. "+
		"A consultant will confirm on this number shortly. Talk soon!",
		s.AppointmentSlot, s.CaseRef)
}

func handleComplete(s *session.Session, input string) string {
	return completeReply
}
