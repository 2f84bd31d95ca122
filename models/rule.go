package models

// RiskLevel represents the ordinal severity of a rule pattern
type RiskLevel string

const (
	RiskCritical RiskLevel = "CRITICAL"
	RiskHigh     RiskLevel = "HIGH"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskLow      RiskLevel = "LOW"
	RiskPositive RiskLevel = "POSITIVE"
)

// Rank returns a numeric rank for comparing risk levels (higher = worse)
func (r RiskLevel) Rank() int {
	switch r {
	case RiskCritical:
		return 4
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	case RiskLow:
		return 1
	case RiskPositive:
		return 0
	default:
		return 0
	}
}

// ScoreModifier adjusts a violation's score when the clause text satisfies
// a named condition. RequireAll keywords must all appear (case-insensitive)
// for the delta to apply.
type ScoreModifier struct {
	Name       string   `json:"name"`
	RequireAll []string `json:"require_all"`
	Delta      float64  `json:"delta"`
}

// RulePattern describes one known risky (or protective) clause type under
// the Indian Contract Act, 1872. Patterns are static: loaded once at
// process start and never mutated at request time.
type RulePattern struct {
	PatternID     string          `json:"pattern_id"`
	ViolationType string          `json:"violation_type"`
	Keywords      []string        `json:"keywords"`
	Regex         string          `json:"regex,omitempty"` // optional, tested before keywords
	RiskLevel     RiskLevel       `json:"risk_level"`
	RiskScore     int             `json:"risk_score"` // negative for POSITIVE patterns
	LinkedSection string          `json:"linked_section"`
	Description   string          `json:"description"`
	ContractTypes []string        `json:"contract_types"` // applicability tags, empty = all
	IndustryTags  []string        `json:"industry_tags"`  // empty = all
	Modifiers     []ScoreModifier `json:"modifiers,omitempty"`
}

// AppliesTo reports whether the pattern is applicable to the given
// contract type and industry. Empty tag sets mean "all".
func (p *RulePattern) AppliesTo(contractType, industry string) bool {
	if len(p.ContractTypes) > 0 && !containsTag(p.ContractTypes, contractType) {
		return false
	}
	if len(p.IndustryTags) > 0 && !containsTag(p.IndustryTags, industry) {
		return false
	}
	return true
}

func containsTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want || t == "all" {
			return true
		}
	}
	return false
}

// RuleNeighbor is one nearest-neighbor result from the rule vector
// index: a pattern's metadata plus its cosine similarity to the query
type RuleNeighbor struct {
	PatternID     string    `json:"pattern_id"`
	ViolationType string    `json:"violation_type"`
	RiskLevel     RiskLevel `json:"risk_level"`
	RiskScore     int       `json:"risk_score"`
	LinkedSection string    `json:"linked_section"`
	Description   string    `json:"description"`
	Similarity    float64   `json:"similarity"`
}

// StatuteSection holds the citation metadata for one section of the
// Indian Contract Act, 1872
type StatuteSection struct {
	Number   string `json:"number"`
	Title    string `json:"title"`
	FullText string `json:"full_text"`
	GovURL   string `json:"gov_url"`
}
