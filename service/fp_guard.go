package service

import (
	"regexp"
	"strings"
)

// FalsePositiveGuard vetoes candidate matches whose clause text reads as
// standard, fair boilerplate. Vector similarity over-triggers on lawful
// restatements of the same topic (an IP assignment conditioned on full
// payment is fine; the same topic without the condition is not), so
// known-safe phrasings are encoded as an explicit exception list per
// violation-type family.
type FalsePositiveGuard struct {
	safePatterns map[string][]*regexp.Regexp
}

// NewFalsePositiveGuard creates a guard with the built-in safe-pattern table
func NewFalsePositiveGuard() *FalsePositiveGuard {
	return &FalsePositiveGuard{
		safePatterns: map[string][]*regexp.Regexp{
			familyIP: {
				// fairIP: assignment conditioned on full payment
				regexp.MustCompile(`(?i)upon\s+(full|complete|final)\s+payment[^.]*\b(transfer|assign)`),
				regexp.MustCompile(`(?i)(retains?|reserves?)\s+the\s+right\s+to\s+(use|display|showcase)[^.]*portfolio`),
				regexp.MustCompile(`(?i)pre-?existing\s+(work|materials?|intellectual\s+property)\s+(remains?|shall\s+remain)`),
			},
			familyPayment: {
				// plain fee statements without deferral language
				regexp.MustCompile(`(?i)payment\s+(within|of)\s+(7|10|14|15|30)\s+days`),
				regexp.MustCompile(`(?i)(advance|upfront)\s+payment\s+of`),
				regexp.MustCompile(`(?i)fees?\s+(of|shall\s+be)\s+(?:rs\.?|inr|₹)\s*[\d,]+`),
			},
			familyScope: {
				regexp.MustCompile(`(?i)(as\s+)?(detailed|described|specified|set\s+out)\s+in\s+(annexure|schedule|exhibit|appendix|statement\s+of\s+work)`),
				regexp.MustCompile(`(?i)scope\s+of\s+work\s+is\s+limited\s+to`),
			},
		},
	}
}

// Violation-type families sharing safe-pattern heuristics
const (
	familyIP      = "ip"
	familyPayment = "payment"
	familyScope   = "scope"
)

// familyOf maps a violation type to its safe-pattern family, or "" when
// no heuristics are registered for it
func familyOf(violationType string) string {
	switch {
	case strings.Contains(violationType, "ip_transfer") || strings.Contains(violationType, "intellectual"):
		return familyIP
	case strings.Contains(violationType, "payment"):
		return familyPayment
	case strings.Contains(violationType, "scope"):
		return familyScope
	default:
		return ""
	}
}

// Vetoes reports whether the clause text matches a known-safe phrasing
// for the candidate violation type. A vetoed match is discarded entirely.
func (g *FalsePositiveGuard) Vetoes(violationType, clauseText string) bool {
	family := familyOf(violationType)
	if family == "" {
		return false
	}
	for _, re := range g.safePatterns[family] {
		if re.MatchString(clauseText) {
			return true
		}
	}
	return false
}
