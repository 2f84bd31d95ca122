package service

import (
	"log"
	"regexp"
	"strings"

	"contractguard-backend/models"
	"contractguard-backend/rules"
)

// KeywordValidator matches clauses against the rule catalog using exact
// keyword and regex checks. Synchronous and deterministic: identical
// clause text against an unchanged catalog always yields the same result.
type KeywordValidator struct {
	store *rules.Store
	guard *FalsePositiveGuard

	// compiled regexes by pattern ID; patterns whose regex failed to
	// compile are recorded so they fall through to keyword matching
	compiled map[string]*regexp.Regexp
	badRegex map[string]bool
}

// NewKeywordValidator creates a validator over the given rule store.
// Pattern regexes are compiled once here; a malformed regex disables
// regex matching for that pattern only and is logged.
func NewKeywordValidator(store *rules.Store, guard *FalsePositiveGuard) *KeywordValidator {
	v := &KeywordValidator{
		store:    store,
		guard:    guard,
		compiled: make(map[string]*regexp.Regexp),
		badRegex: make(map[string]bool),
	}
	for _, p := range v.patterns() {
		if p.Regex == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + p.Regex)
		if err != nil {
			log.Printf("Warning: Pattern %s has malformed regex, falling back to keywords: %v", p.PatternID, err)
			v.badRegex[p.PatternID] = true
			continue
		}
		v.compiled[p.PatternID] = re
	}
	return v
}

// patterns returns the catalog to evaluate, substituting the embedded
// fallback set when the store is empty so the validator degrades
// gracefully instead of emitting zero findings
func (v *KeywordValidator) patterns() []models.RulePattern {
	if v.store == nil || v.store.Empty() {
		return rules.FallbackCatalog()
	}
	return v.store.Patterns()
}

// keywordThreshold returns the number of keyword hits required for a
// pattern to match. CRITICAL statutory violations (e.g. void non-compete
// clauses) trigger on a single keyword; softer concerns need two.
func keywordThreshold(level models.RiskLevel) int {
	if level == models.RiskCritical {
		return 1
	}
	return 2
}

// Validate matches each clause against the catalog in order. The first
// matching pattern wins and scanning stops for that clause, so each
// clause yields at most one violation.
func (v *KeywordValidator) Validate(clauses []models.Clause, cctx models.ContractContext) []models.Violation {
	var violations []models.Violation

	for _, clause := range clauses {
		if violation, ok := v.matchClause(clause, cctx); ok {
			violations = append(violations, violation)
		}
	}

	return violations
}

// matchClause scans the catalog for the first pattern matching the clause
func (v *KeywordValidator) matchClause(clause models.Clause, cctx models.ContractContext) (models.Violation, bool) {
	lower := strings.ToLower(clause.Text)

	for _, p := range v.patterns() {
		if !p.AppliesTo(string(cctx.ContractType), string(cctx.Industry)) {
			continue
		}

		matched, indicators := v.matchPattern(&p, clause.Text, lower)
		if !matched {
			continue
		}

		// Safe-phrasing veto applies to risky matches only; protective
		// (POSITIVE) matches are kept.
		if p.RiskLevel != models.RiskPositive && v.guard != nil && v.guard.Vetoes(p.ViolationType, clause.Text) {
			continue
		}

		section := rules.Section(p.LinkedSection)
		return models.Violation{
			ClauseID:        clause.ID,
			ClauseText:      clause.Text,
			ViolationType:   p.ViolationType,
			SectionNumber:   section.Number,
			SectionTitle:    section.Title,
			SectionFullText: section.FullText,
			RiskLevel:       p.RiskLevel,
			RiskScore:       p.RiskScore,
			MatchedKeywords: indicators,
			Explanation:     p.Description,
			GovURL:          section.GovURL,
		}, true
	}

	return models.Violation{}, false
}

// matchPattern tests one pattern against a clause. Regex success
// short-circuits; regex failure (or absence) falls through to the
// keyword-count check.
func (v *KeywordValidator) matchPattern(p *models.RulePattern, raw, lower string) (bool, []string) {
	if re, ok := v.compiled[p.PatternID]; ok {
		if re.MatchString(raw) {
			return true, []string{"regex:" + p.Regex}
		}
	}

	var hits []string
	for _, kw := range p.Keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			hits = append(hits, kw)
		}
	}
	if len(hits) >= keywordThreshold(p.RiskLevel) {
		return true, hits
	}
	return false, nil
}
