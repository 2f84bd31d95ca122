package service

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"contractguard-backend/models"
	"contractguard-backend/rules"
)

// Scorer converts a merged violation list (and, in the enhanced path,
// the deviation list) into a single 0-100 risk score with a severity
// breakdown and a risk-level label.
type Scorer struct {
	store *rules.Store
}

// NewScorer creates a scorer over the rule store, which supplies
// per-pattern text modifiers
func NewScorer(store *rules.Store) *Scorer {
	return &Scorer{store: store}
}

// Per-violation cap: one clause, however severe, can never contribute
// more than half the maximum score.
const perViolationCap = 50

// baseScores are the starting points per violation type before modifiers
// and context weighting. Unknown types fall back to the violation's
// stored risk score.
var baseScores = map[string]float64{
	"non_compete_section27":                 45,
	"restraint_legal_proceedings_section28": 40,
	"unlawful_consideration_section23":      40,
	"undue_influence_section16":             40,
	"unlimited_liability":                   35,
	"penalty_clause_section74":              30,
	"uncompensated_ip_transfer":             30,
	"one_sided_indemnity_section124":        25,
	"unilateral_termination_section39":      25,
	"unilateral_modification_section62":     20,
	"delayed_payment_terms":                 20,
	"foreign_jurisdiction_section28":        20,
	"vague_scope_section29":                 15,
	"excessive_confidentiality":             15,
	"positive_advance_payment":              -10,
	"positive_portfolio_rights":             -8,
	"positive_mutual_termination":           -8,
}

// contractTypeWeights amplify violations that matter most for a given
// engagement type. Keys are statute section numbers first, violation-type
// substrings second.
var contractTypeWeights = map[models.ContractType]map[string]float64{
	models.ContractFreelance:  {"27": 1.5, "payment": 1.3, "ip": 1.4, "termination": 1.2},
	models.ContractConsultant: {"27": 1.4, "payment": 1.2, "ip": 1.3},
	models.ContractEmployment: {"27": 1.3, "hours": 1.3, "termination": 1.2},
	models.ContractVendor:     {"74": 1.2, "payment": 1.2},
	models.ContractGeneral:    {},
}

// industryWeights amplify violations by line of work (IP transfer bites
// hardest in creative industries)
var industryWeights = map[models.Industry]map[string]float64{
	models.IndustrySoftware:  {"ip": 1.3, "27": 1.2},
	models.IndustryDesign:    {"ip": 1.4},
	models.IndustryWriting:   {"ip": 1.3},
	models.IndustryVideo:     {"ip": 1.3},
	models.IndustryMarketing: {"27": 1.1},
	models.IndustryGeneral:   {},
}

// deviationPoints are the fixed contributions deviations make to the
// enhanced overall score
var deviationPoints = map[models.DeviationLevel]int{
	models.DeviationExtreme:     12,
	models.DeviationSignificant: 6,
	models.DeviationMinor:       2,
}

var penaltyMultiplier = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:x|times)`)

// ScoreViolation computes the context-weighted score for one violation:
// base score plus text modifiers, multiplied by context weight, contract
// value and duration multipliers, rounded half-up and capped so a single
// clause stays within [-50, 50].
func (s *Scorer) ScoreViolation(v models.CombinedViolation, cctx models.ContractContext) int {
	cctx = cctx.Normalize()

	raw := s.baseScore(v)
	raw += s.textModifiers(v)
	raw *= s.contextWeight(v, cctx)
	raw *= valueMultiplier(cctx.ContractValue)
	raw *= durationMultiplier(cctx.DurationMonths)

	score := roundHalfUp(raw)
	if score > perViolationCap {
		score = perViolationCap
	}
	if score < -perViolationCap {
		score = -perViolationCap
	}
	// Only protective patterns may go negative
	if v.RiskLevel != models.RiskPositive && score < 0 {
		score = 0
	}
	return score
}

func (s *Scorer) baseScore(v models.CombinedViolation) float64 {
	if base, ok := baseScores[v.ViolationType]; ok {
		return base
	}
	return float64(v.RiskScore)
}

// textModifiers applies the keyword-triggered score deltas registered on
// the matched pattern, plus the penalty-multiplier heuristic. The same
// violation type can describe wildly different real severities depending
// on exact phrasing; a flat base score would misrank them.
func (s *Scorer) textModifiers(v models.CombinedViolation) float64 {
	lower := strings.ToLower(v.ClauseText)
	delta := 0.0

	for _, p := range s.catalogPatterns() {
		if p.ViolationType != v.ViolationType {
			continue
		}
		for _, mod := range p.Modifiers {
			if allPresent(lower, mod.RequireAll) {
				delta += mod.Delta
			}
		}
		break
	}

	// A stipulated penalty of five times the value or more signals a
	// clause drafted in terrorem, not a genuine damages pre-estimate.
	if v.ViolationType == "penalty_clause_section74" {
		if m := penaltyMultiplier.FindStringSubmatch(lower); m != nil {
			if mult, err := strconv.ParseFloat(m[1], 64); err == nil && mult >= 5 {
				delta += 15
			}
		}
	}

	return delta
}

func (s *Scorer) catalogPatterns() []models.RulePattern {
	if s.store == nil || s.store.Empty() {
		return rules.FallbackCatalog()
	}
	return s.store.Patterns()
}

func allPresent(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(lower, strings.ToLower(kw)) {
			return false
		}
	}
	return len(keywords) > 0
}

// contextWeight combines the contract-type and industry weights for a
// violation. Each table is consulted by linked statute section first,
// then by violation-type substring (payment/ip/termination/hours),
// defaulting to 1.0.
func (s *Scorer) contextWeight(v models.CombinedViolation, cctx models.ContractContext) float64 {
	return lookupWeight(contractTypeWeights[cctx.ContractType], v) *
		lookupWeight(industryWeights[cctx.Industry], v)
}

func lookupWeight(table map[string]float64, v models.CombinedViolation) float64 {
	if table == nil {
		return 1.0
	}
	if w, ok := table[v.SectionNumber]; ok {
		return w
	}
	for _, key := range []string{"payment", "ip", "termination", "hours"} {
		if strings.Contains(v.ViolationType, key) {
			if w, ok := table[key]; ok {
				return w
			}
		}
	}
	return 1.0
}

// valueMultiplier steps up at the 1 lakh / 5 lakh / 10 lakh INR
// thresholds: larger engagements amplify the stakes of the same defect
func valueMultiplier(value float64) float64 {
	switch {
	case value >= 1000000:
		return 1.3
	case value >= 500000:
		return 1.2
	case value >= 100000:
		return 1.1
	default:
		return 1.0
	}
}

// durationMultiplier steps up at 6 and 12 months
func durationMultiplier(months int) float64 {
	switch {
	case months >= 12:
		return 1.2
	case months >= 6:
		return 1.1
	default:
		return 1.0
	}
}

// roundHalfUp rounds after all multiplications; 37.5 becomes 38
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// ScoreEnhanced is the default scoring mode: context-weighted violation
// scores plus fixed deviation points, clamped to [0, 100]
func (s *Scorer) ScoreEnhanced(violations []models.CombinedViolation, deviations []models.Deviation, cctx models.ContractContext) models.ScoringResult {
	breakdown := emptyBreakdown()

	total := 0
	for _, v := range violations {
		score := s.ScoreViolation(v, cctx)
		total += score
		addToBreakdown(breakdown, v.RiskLevel, score)
	}
	for _, d := range deviations {
		total += deviationPoints[d.DeviationLevel]
	}

	total = clampScore(total)
	level := enhancedLevel(total)

	return models.ScoringResult{
		Score:       total,
		Level:       level,
		Breakdown:   breakdown,
		Explanation: scoreExplanation(total, level, len(violations), len(deviations)),
	}
}

// ScoreLegacy is the flat scoring mode kept for callers of the original
// API: the sum of each violation's stored risk score, capped at 100,
// with the original level labels
func (s *Scorer) ScoreLegacy(violations []models.CombinedViolation) models.ScoringResult {
	breakdown := emptyBreakdown()

	total := 0
	for _, v := range violations {
		total += v.RiskScore
		addToBreakdown(breakdown, v.RiskLevel, v.RiskScore)
	}

	total = clampScore(total)

	var level string
	switch {
	case total >= 76:
		level = "DANGEROUS"
	case total >= 51:
		level = "HIGH RISK"
	case total >= 26:
		level = "MODERATE RISK"
	default:
		level = "SAFE"
	}

	return models.ScoringResult{
		Score:       total,
		Level:       level,
		Breakdown:   breakdown,
		Explanation: scoreExplanation(total, level, len(violations), 0),
	}
}

func enhancedLevel(score int) string {
	switch {
	case score >= 75:
		return "CRITICAL"
	case score >= 50:
		return "HIGH"
	case score >= 25:
		return "MEDIUM"
	case score > 0:
		return "LOW"
	default:
		return "SAFE"
	}
}

func emptyBreakdown() map[string]int {
	return map[string]int{
		string(models.RiskCritical): 0,
		string(models.RiskHigh):     0,
		string(models.RiskMedium):   0,
		string(models.RiskLow):      0,
	}
}

// addToBreakdown accumulates points into the four severity buckets;
// protective (POSITIVE) contributions are reflected in the total only
func addToBreakdown(breakdown map[string]int, level models.RiskLevel, points int) {
	if level == models.RiskPositive {
		return
	}
	breakdown[string(level)] += points
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func scoreExplanation(score int, level string, violations, deviations int) string {
	if violations == 0 && deviations == 0 {
		return "No risky clauses or baseline deviations were found."
	}
	return fmt.Sprintf("Risk score %d (%s) from %d flagged clause(s) and %d fair-practice deviation(s).", score, level, violations, deviations)
}
