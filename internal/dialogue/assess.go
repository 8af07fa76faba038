package dialogue

import (
	"fmt"
	"strconv"
	"strings"
)

// Urgency tiers derived from the monthly-loss bracket.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// monthlyLossNaira maps a loss-bracket choice to the midpoint monthly loss
// used for the annual estimate. Bracket 6 is "not sure".
var monthlyLossNaira = map[int]int{
	1: 75_000,
	2: 150_000,
	3: 350_000,
	4: 750_000,
	5: 1_500_000,
	6: 0,
}

// ClassifyUrgency maps a loss-bracket choice to an urgency tier. Anything
// outside 1-6 is low.
func ClassifyUrgency(choice int) Urgency {
	switch choice {
	case 3, 4, 5:
		return UrgencyHigh
	case 2:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// AnnualLoss returns the estimated yearly loss in naira for a bracket choice,
// zero when the choice is unknown.
func AnnualLoss(choice int) int {
	return monthlyLossNaira[choice] * 12
}

// FormatNaira renders an amount the way the script quotes it: millions with
// one decimal from ₦1,000,000 up, thousands with none below.
func FormatNaira(amount int) string {
	switch {
	case amount >= 1_000_000:
		return fmt.Sprintf("₦%.1fM", float64(amount)/1_000_000)
	case amount > 0:
		return fmt.Sprintf("₦%.0fk", float64(amount)/1_000)
	default:
		return "₦0"
	}
}

// parseChoice returns the numeric menu choice, or zero when the input does
// not name an option in [1, max]. Zero and negatives count as out of range.
func parseChoice(input string, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > max {
		return 0
	}
	return n
}

// resolveChoice substitutes the canonical label for a numeric menu choice.
// Everything else, including out-of-range numbers, is kept verbatim so the
// script never rejects input.
func resolveChoice(options []string, input string) string {
	if n := parseChoice(input, len(options)); n != 0 {
		return options[n-1]
	}
	return strings.TrimSpace(input)
}
