package strategy

import (
	"context"
	"fmt"

	"github.com/smeflowhq/leadbot-platform/pkg/logging"
)

// BriefRequest describes the business the brief is generated for.
type BriefRequest struct {
	BusinessName string `json:"business_name"`
	Industry     string `json:"industry"`
	Challenge    string `json:"challenge"`
	LossBand     string `json:"loss_band"`
}

// Generator produces the automation strategy brief text.
type Generator interface {
	Generate(ctx context.Context, req BriefRequest) (string, error)
}

// FallbackGenerator returns a deterministic canned brief. It is the last
// resort when no model is configured or the model call fails.
type FallbackGenerator struct{}

// Generate returns the canned brief.
func (FallbackGenerator) Generate(_ context.Context, req BriefRequest) (string, error) {
	name := req.BusinessName
	if name == "" {
		name = "your business"
	}
	challenge := req.Challenge
	if challenge == "" {
		challenge = "manual, repetitive admin work"
	}

	return fmt.Sprintf(`Automation Strategy Brief — %s

Based on what you've told us, the biggest drain on %s today is %s. Businesses
like yours typically recover most of that loss with three moves:

1. Automate the follow-up: every enquiry and unpaid invoice gets a scheduled
   WhatsApp/SMS nudge, so nothing depends on someone remembering.
2. Put the records in one place: a single shared ledger for sales, stock and
   payments ends the end-of-month reconciliation scramble.
3. Measure weekly, not yearly: a one-page dashboard shows where money leaks
   the moment it starts, instead of at tax time.

Your consultant will walk through each step and map it to your current tools
during the review call.`, name, name, challenge), nil
}

// WithFallback wraps a primary generator and falls back to the canned brief
// when the primary fails, logging the failure.
type WithFallback struct {
	Primary  Generator
	Fallback Generator
	Logger   *logging.Logger
}

// Generate tries the primary generator first.
func (g WithFallback) Generate(ctx context.Context, req BriefRequest) (string, error) {
	if g.Primary != nil {
		text, err := g.Primary.Generate(ctx, req)
		if err == nil {
			return text, nil
		}
		logger := g.Logger
		if logger == nil {
			logger = logging.Default()
		}
		logger.Warn("strategy: primary generator failed, using fallback", "error", err)
	}

	fallback := g.Fallback
	if fallback == nil {
		fallback = FallbackGenerator{}
	}
	return fallback.Generate(ctx, req)
}

var (
	_ Generator = FallbackGenerator{}
	_ Generator = WithFallback{}
)
