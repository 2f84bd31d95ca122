package rules

import "contractguard-backend/models"

// Store holds the static rule catalog. Loaded once at process start and
// read-only afterwards; catalog order is significant because the keyword
// validator stops at the first matching pattern per clause.
type Store struct {
	patterns []models.RulePattern
}

// NewStore creates a rule store over the given patterns
func NewStore(patterns []models.RulePattern) *Store {
	return &Store{patterns: patterns}
}

// NewDefaultStore creates a rule store over the full built-in catalog
func NewDefaultStore() *Store {
	return NewStore(Catalog())
}

// Patterns returns the catalog in evaluation order
func (s *Store) Patterns() []models.RulePattern {
	return s.patterns
}

// Empty reports whether the store has no patterns
func (s *Store) Empty() bool {
	return len(s.patterns) == 0
}

// Catalog returns the full built-in pattern catalog for the Indian
// Contract Act, 1872. Order is evaluation order: void-making statutory
// violations first, then softer concerns, then protective patterns.
func Catalog() []models.RulePattern {
	return []models.RulePattern{
		{
			PatternID:     "non_compete_section27",
			ViolationType: "non_compete_section27",
			Keywords:      []string{"compete", "non-compete", "competitor", "similar business", "restraint of trade"},
			RiskLevel:     models.RiskCritical,
			RiskScore:     45,
			LinkedSection: "27",
			Description:   "Non-compete or restraint-of-trade clause restricting the contractor from exercising their lawful profession, trade or business after the engagement ends. Void under Section 27 of the Indian Contract Act.",
			Modifiers: []models.ScoreModifier{
				{Name: "goodwill_sale_exception", RequireAll: []string{"goodwill", "sale"}, Delta: -20},
				{Name: "worldwide_scope", RequireAll: []string{"worldwide"}, Delta: 10},
			},
		},
		{
			PatternID:     "restraint_legal_proceedings_section28",
			ViolationType: "restraint_legal_proceedings_section28",
			Keywords:      []string{"waive all rights", "shall not sue", "no legal recourse", "barred from proceedings", "exclusive remedy"},
			Regex:         `(?i)(waives?|forfeits?)\s+(any|all)\s+(right|claim)s?\s+to\s+(sue|legal|court)`,
			RiskLevel:     models.RiskCritical,
			RiskScore:     40,
			LinkedSection: "28",
			Description:   "Clause restricting a party absolutely from enforcing contractual rights through ordinary legal proceedings, or shortening the limitation period. Void under Section 28.",
		},
		{
			PatternID:     "unlawful_consideration_section23",
			ViolationType: "unlawful_consideration_section23",
			Keywords:      []string{"regardless of legality", "circumvent", "evade tax", "without invoice", "off the books"},
			RiskLevel:     models.RiskCritical,
			RiskScore:     40,
			LinkedSection: "23",
			Description:   "Consideration or object that is forbidden by law, fraudulent, or opposed to public policy. The agreement is void under Section 23.",
		},
		{
			PatternID:     "undue_influence_section16",
			ViolationType: "undue_influence_section16",
			Keywords:      []string{"no right to negotiate", "must accept all", "sole discretion without", "take it or leave"},
			RiskLevel:     models.RiskCritical,
			RiskScore:     40,
			LinkedSection: "16",
			Description:   "Terms indicating one party dominates the will of the other and uses that position to obtain an unfair advantage, within the meaning of undue influence under Section 16.",
		},
		{
			PatternID:     "penalty_clause_section74",
			ViolationType: "penalty_clause_section74",
			Keywords:      []string{"penalty", "liquidated damages", "forfeit", "fine of"},
			Regex:         `(?i)penalty\s+of\s+(?:rs\.?|inr|₹)?\s*[\d,]+`,
			RiskLevel:     models.RiskHigh,
			RiskScore:     30,
			LinkedSection: "74",
			Description:   "Penalty or liquidated-damages stipulation. Under Section 74 only reasonable compensation not exceeding the named sum is recoverable; disproportionate penalties are red flags.",
			Modifiers: []models.ScoreModifier{
				{Name: "advance_milestone_relief", RequireAll: []string{"milestone"}, Delta: -5},
			},
		},
		{
			PatternID:     "unlimited_liability",
			ViolationType: "unlimited_liability",
			Keywords:      []string{"unlimited liability", "fully liable", "all losses whatsoever", "indemnify against all"},
			RiskLevel:     models.RiskHigh,
			RiskScore:     35,
			LinkedSection: "73",
			Description:   "Uncapped liability exposure on one party for all losses, beyond the compensation principles of Section 73.",
		},
		{
			PatternID:     "one_sided_indemnity_section124",
			ViolationType: "one_sided_indemnity_section124",
			Keywords:      []string{"indemnify", "hold harmless", "defend the client", "indemnification"},
			RiskLevel:     models.RiskHigh,
			RiskScore:     25,
			LinkedSection: "124",
			Description:   "One-sided indemnity obliging only the contractor to save the client from loss, with no reciprocal protection, under the indemnity framework of Section 124.",
		},
		{
			PatternID:     "unilateral_termination_section39",
			ViolationType: "unilateral_termination_section39",
			Keywords:      []string{"terminate at any time", "without cause", "without notice", "sole discretion terminate"},
			RiskLevel:     models.RiskHigh,
			RiskScore:     25,
			LinkedSection: "39",
			Description:   "Unilateral termination right allowing the client to end the engagement at will, leaving the contractor without the protections contemplated by Section 39.",
		},
		{
			PatternID:     "uncompensated_ip_transfer",
			ViolationType: "uncompensated_ip_transfer",
			Keywords:      []string{"intellectual property", "assign", "work for hire", "all rights title and interest"},
			RiskLevel:     models.RiskHigh,
			RiskScore:     30,
			LinkedSection: "23",
			Description:   "Transfer of all intellectual property rights to the client irrespective of payment, including moral rights and pre-existing work, without fair consideration.",
		},
		{
			PatternID:     "unilateral_modification_section62",
			ViolationType: "unilateral_modification_section62",
			Keywords:      []string{"modify at any time", "change the terms", "amend unilaterally", "revise without consent"},
			RiskLevel:     models.RiskMedium,
			RiskScore:     20,
			LinkedSection: "62",
			Description:   "Right for one party to alter contract terms without the other's agreement, contrary to the mutual-alteration principle of Section 62.",
		},
		{
			PatternID:     "delayed_payment_terms",
			ViolationType: "delayed_payment_terms",
			Keywords:      []string{"payment within", "net 90", "net 120", "upon client satisfaction", "when funds permit"},
			RiskLevel:     models.RiskMedium,
			RiskScore:     20,
			LinkedSection: "73",
			Description:   "Payment terms that defer or condition the contractor's compensation far beyond fair practice, such as extended credit periods or satisfaction-contingent payment.",
			Modifiers: []models.ScoreModifier{
				{Name: "advance_relief", RequireAll: []string{"advance"}, Delta: -5},
				{Name: "milestone_relief", RequireAll: []string{"milestone"}, Delta: -5},
			},
		},
		{
			PatternID:     "foreign_jurisdiction_section28",
			ViolationType: "foreign_jurisdiction_section28",
			Keywords:      []string{"exclusive jurisdiction", "courts of", "governed by the laws of", "venue shall be"},
			RiskLevel:     models.RiskMedium,
			RiskScore:     20,
			LinkedSection: "28",
			Description:   "Dispute-resolution clause placing jurisdiction in a foreign forum, making enforcement impractical for an Indian contractor.",
		},
		{
			PatternID:     "vague_scope_section29",
			ViolationType: "vague_scope_section29",
			Keywords:      []string{"as needed", "any other tasks", "reasonable requests", "from time to time", "such other services"},
			RiskLevel:     models.RiskMedium,
			RiskScore:     15,
			LinkedSection: "29",
			Description:   "Open-ended scope of work whose meaning is not capable of being made certain, inviting unpaid scope creep and void for uncertainty under Section 29.",
		},
		{
			PatternID:     "excessive_confidentiality",
			ViolationType: "excessive_confidentiality",
			Keywords:      []string{"perpetual confidentiality", "indefinitely confidential", "in perpetuity", "forever keep confidential"},
			RiskLevel:     models.RiskMedium,
			RiskScore:     15,
			LinkedSection: "27",
			Description:   "Confidentiality obligation of unlimited duration operating as a de facto restraint on the contractor's future work.",
			Modifiers: []models.ScoreModifier{
				{Name: "perpetual_scope", RequireAll: []string{"perpetuity"}, Delta: 10},
			},
		},
		{
			PatternID:     "positive_advance_payment",
			ViolationType: "positive_advance_payment",
			Keywords:      []string{"advance payment", "upfront payment", "mobilization advance"},
			RiskLevel:     models.RiskPositive,
			RiskScore:     -10,
			LinkedSection: "73",
			Description:   "Advance or upfront payment securing part of the contractor's compensation before work begins. A protective term.",
		},
		{
			PatternID:     "positive_portfolio_rights",
			ViolationType: "positive_portfolio_rights",
			Keywords:      []string{"portfolio", "retains the right to display", "showcase the work"},
			RiskLevel:     models.RiskPositive,
			RiskScore:     -8,
			LinkedSection: "27",
			Description:   "Contractor retains the right to display delivered work in their portfolio. A protective term.",
		},
		{
			PatternID:     "positive_mutual_termination",
			ViolationType: "positive_mutual_termination",
			Keywords:      []string{"either party may terminate", "mutual termination", "by mutual consent"},
			RiskLevel:     models.RiskPositive,
			RiskScore:     -8,
			LinkedSection: "62",
			Description:   "Balanced termination clause exercisable by either party with notice. A protective term.",
		},
	}
}

// FallbackCatalog is the embedded minimum pattern set used when the rule
// store is empty. It covers the five most critical sections of the Act
// (16, 23, 27, 28, 74) so the validator degrades gracefully instead of
// returning zero findings.
func FallbackCatalog() []models.RulePattern {
	fallbackSections := map[string]bool{"16": true, "23": true, "27": true, "28": true, "74": true}

	var out []models.RulePattern
	for _, p := range Catalog() {
		if p.RiskLevel == models.RiskPositive {
			continue
		}
		if fallbackSections[p.LinkedSection] && (p.RiskLevel == models.RiskCritical || p.RiskLevel == models.RiskHigh) {
			out = append(out, p)
		}
	}
	return out
}
