package service

import (
	"testing"

	"contractguard-backend/models"
	"contractguard-backend/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultContext() models.ContractContext {
	return models.ContractContext{}.Normalize()
}

func TestValidateNonCompeteSingleKeyword(t *testing.T) {
	v := NewKeywordValidator(rules.NewDefaultStore(), NewFalsePositiveGuard())

	clauses := []models.Clause{{
		ID:   1,
		Text: "The Contractor agrees not to compete with the Client in any business for two years after termination.",
	}}

	violations := v.Validate(clauses, defaultContext())

	require.Len(t, violations, 1)
	assert.Equal(t, "non_compete_section27", violations[0].ViolationType)
	assert.Equal(t, models.RiskCritical, violations[0].RiskLevel)
	assert.Equal(t, "27", violations[0].SectionNumber)
	assert.Contains(t, violations[0].MatchedKeywords, "compete")
}

func TestValidateNonCriticalNeedsTwoKeywords(t *testing.T) {
	v := NewKeywordValidator(rules.NewDefaultStore(), NewFalsePositiveGuard())

	// One HIGH-tier keyword is not enough
	one := []models.Clause{{ID: 1, Text: "The Contractor shall indemnify the Client."}}
	assert.Empty(t, v.Validate(one, defaultContext()))

	// Two keywords from the same pattern trip it
	two := []models.Clause{{ID: 1, Text: "The Contractor shall indemnify and hold harmless the Client from any claim."}}
	violations := v.Validate(two, defaultContext())
	require.Len(t, violations, 1)
	assert.Equal(t, "one_sided_indemnity_section124", violations[0].ViolationType)
	assert.ElementsMatch(t, []string{"indemnify", "hold harmless"}, violations[0].MatchedKeywords)
}

func TestValidateRegexShortCircuit(t *testing.T) {
	v := NewKeywordValidator(rules.NewDefaultStore(), NewFalsePositiveGuard())

	// Only one pattern keyword present, but the regex matches and wins
	clauses := []models.Clause{{ID: 1, Text: "A penalty of Rs. 50,000 applies for each day of delay."}}

	violations := v.Validate(clauses, defaultContext())

	require.Len(t, violations, 1)
	assert.Equal(t, "penalty_clause_section74", violations[0].ViolationType)
	require.Len(t, violations[0].MatchedKeywords, 1)
	assert.Contains(t, violations[0].MatchedKeywords[0], "regex:")
}

func TestValidateFirstMatchWinsPerClause(t *testing.T) {
	v := NewKeywordValidator(rules.NewDefaultStore(), NewFalsePositiveGuard())

	// Matches both the non-compete pattern (catalog first) and later ones;
	// a clause yields at most one violation.
	clauses := []models.Clause{{
		ID:   1,
		Text: "The Contractor shall not compete with the Client and shall indemnify and hold harmless the Client.",
	}}

	violations := v.Validate(clauses, defaultContext())

	require.Len(t, violations, 1)
	assert.Equal(t, "non_compete_section27", violations[0].ViolationType)
}

func TestValidateMalformedRegexFallsBackToKeywords(t *testing.T) {
	store := rules.NewStore([]models.RulePattern{{
		PatternID:     "bad_regex_pattern",
		ViolationType: "penalty_clause_section74",
		Keywords:      []string{"penalty", "liquidated damages"},
		Regex:         `penalty\s+of\s+(unclosed`,
		RiskLevel:     models.RiskHigh,
		RiskScore:     30,
		LinkedSection: "74",
	}})

	v := NewKeywordValidator(store, NewFalsePositiveGuard())

	clauses := []models.Clause{{
		ID:   1,
		Text: "A penalty by way of liquidated damages shall be payable on breach.",
	}}

	violations := v.Validate(clauses, defaultContext())

	require.Len(t, violations, 1)
	assert.ElementsMatch(t, []string{"penalty", "liquidated damages"}, violations[0].MatchedKeywords)
}

func TestValidateEmptyStoreUsesFallbackCatalog(t *testing.T) {
	v := NewKeywordValidator(rules.NewStore(nil), NewFalsePositiveGuard())

	clauses := []models.Clause{{
		ID:   1,
		Text: "The Contractor shall not compete with the Client anywhere in India.",
	}}

	violations := v.Validate(clauses, defaultContext())

	require.Len(t, violations, 1)
	assert.Equal(t, "non_compete_section27", violations[0].ViolationType)
}

func TestValidateGuardVetoesRiskyMatch(t *testing.T) {
	v := NewKeywordValidator(rules.NewDefaultStore(), NewFalsePositiveGuard())

	// Payment-conditioned IP assignment is fair boilerplate: the pattern
	// keywords match but the guard discards the finding.
	clauses := []models.Clause{{
		ID:   1,
		Text: "Upon full payment of all invoices, the Contractor shall assign all intellectual property rights in the deliverables.",
	}}

	assert.Empty(t, v.Validate(clauses, defaultContext()))
}

func TestValidateGuardSparesPositiveMatch(t *testing.T) {
	v := NewKeywordValidator(rules.NewDefaultStore(), NewFalsePositiveGuard())

	// Protective patterns are never vetoed even when the clause text also
	// matches a safe-payment phrasing.
	clauses := []models.Clause{{
		ID:   1,
		Text: "The Client shall make an advance payment of 50% along with an upfront payment schedule for the remainder.",
	}}

	violations := v.Validate(clauses, defaultContext())

	require.Len(t, violations, 1)
	assert.Equal(t, "positive_advance_payment", violations[0].ViolationType)
	assert.Equal(t, models.RiskPositive, violations[0].RiskLevel)
	assert.Negative(t, violations[0].RiskScore)
}

func TestValidateDeterministic(t *testing.T) {
	v := NewKeywordValidator(rules.NewDefaultStore(), NewFalsePositiveGuard())

	clauses := []models.Clause{
		{ID: 1, Text: "The Contractor shall not compete with the Client."},
		{ID: 2, Text: "A penalty of Rs. 10,000 applies per week of delay."},
		{ID: 3, Text: "Payment terms are Net 30 from invoice date."},
	}

	first := v.Validate(clauses, defaultContext())
	second := v.Validate(clauses, defaultContext())

	assert.Equal(t, first, second)
}
