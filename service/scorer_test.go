package service

import (
	"testing"

	"contractguard-backend/models"
	"contractguard-backend/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScorer() *Scorer {
	return NewScorer(rules.NewDefaultStore())
}

func nonCompeteViolation(clauseText string) models.CombinedViolation {
	return models.CombinedViolation{
		ClauseID:      1,
		ClauseText:    clauseText,
		ViolationType: "non_compete_section27",
		SectionNumber: "27",
		RiskLevel:     models.RiskCritical,
		RiskScore:     45,
		MatchSource:   models.SourceKeyword,
	}
}

func TestScoreViolationGoodwillSaleException(t *testing.T) {
	s := newTestScorer()
	// (45 base - 20 goodwill/sale modifier) * 1.5 freelance weight = 37.5,
	// rounded half-up to 38
	v := nonCompeteViolation("The seller shall not compete following the sale of the business and its goodwill.")
	cctx := models.ContractContext{ContractType: models.ContractFreelance}

	assert.Equal(t, 38, s.ScoreViolation(v, cctx))
}

func TestScoreViolationWorldwideScopeCapped(t *testing.T) {
	s := newTestScorer()
	// (45 + 10 worldwide) * 1.5 = 82.5; the per-violation cap holds it at 50
	v := nonCompeteViolation("The Contractor shall not compete with the Client worldwide.")
	cctx := models.ContractContext{ContractType: models.ContractFreelance}

	assert.Equal(t, 50, s.ScoreViolation(v, cctx))
}

func TestScoreViolationValueAndDurationMultipliers(t *testing.T) {
	s := newTestScorer()
	v := models.CombinedViolation{
		ClauseText:    "Payment within 90 days upon client satisfaction.",
		ViolationType: "delayed_payment_terms",
		SectionNumber: "73",
		RiskLevel:     models.RiskMedium,
		RiskScore:     20,
	}
	base := models.ContractContext{ContractType: models.ContractGeneral}

	// No multipliers: base 20
	assert.Equal(t, 20, s.ScoreViolation(v, base))

	// 10 lakh value and 12 month duration: 20 * 1.3 * 1.2 = 31.2 -> 31
	weighted := base
	weighted.ContractValue = 1000000
	weighted.DurationMonths = 12
	assert.Equal(t, 31, s.ScoreViolation(v, weighted))
}

func TestScoreViolationNonPositiveFlooredAtZero(t *testing.T) {
	s := newTestScorer()
	// Modifiers drag the raw score negative but a risky finding never
	// subtracts from the total
	v := models.CombinedViolation{
		ClauseText:    "A penalty applies, payable per milestone, with liquidated damages waived per milestone schedule.",
		ViolationType: "vague_scope_section29",
		RiskLevel:     models.RiskMedium,
		RiskScore:     -30,
	}
	// Unknown base falls back to the stored risk score (-30 here)
	v.ViolationType = "custom_negative_type"

	assert.Equal(t, 0, s.ScoreViolation(v, models.ContractContext{}))
}

func TestScoreViolationPositiveMayGoNegative(t *testing.T) {
	s := newTestScorer()
	v := models.CombinedViolation{
		ClauseText:    "The Client shall make an advance payment of 50% before work begins.",
		ViolationType: "positive_advance_payment",
		SectionNumber: "73",
		RiskLevel:     models.RiskPositive,
		RiskScore:     -10,
	}

	score := s.ScoreViolation(v, models.ContractContext{ContractType: models.ContractGeneral})

	assert.Negative(t, score)
	assert.GreaterOrEqual(t, score, -perViolationCap)
}

func TestScoreViolationIndustryWeight(t *testing.T) {
	s := newTestScorer()
	v := models.CombinedViolation{
		ClauseText:    "All intellectual property is assigned to the Client irrespective of payment.",
		ViolationType: "uncompensated_ip_transfer",
		SectionNumber: "23",
		RiskLevel:     models.RiskHigh,
		RiskScore:     30,
	}

	general := s.ScoreViolation(v, models.ContractContext{ContractType: models.ContractGeneral, Industry: models.IndustryGeneral})
	design := s.ScoreViolation(v, models.ContractContext{ContractType: models.ContractGeneral, Industry: models.IndustryDesign})

	// IP transfer bites harder in creative industries
	assert.Greater(t, design, general)
}

func TestScoreViolationPenaltyMultiplierHeuristic(t *testing.T) {
	s := newTestScorer()
	mild := models.CombinedViolation{
		ClauseText:    "A penalty of twice the monthly fee applies on late delivery.",
		ViolationType: "penalty_clause_section74",
		SectionNumber: "74",
		RiskLevel:     models.RiskHigh,
		RiskScore:     30,
	}
	harsh := mild
	harsh.ClauseText = "A penalty of 10 times the contract value applies on late delivery."

	cctx := models.ContractContext{ContractType: models.ContractGeneral}
	assert.Greater(t, s.ScoreViolation(harsh, cctx), s.ScoreViolation(mild, cctx))
}

func TestScoreEnhancedClampAndLevels(t *testing.T) {
	s := newTestScorer()
	cctx := models.ContractContext{ContractType: models.ContractFreelance}

	// Three capped CRITICAL findings exceed 100 raw; total clamps to 100
	violations := []models.CombinedViolation{
		nonCompeteViolation("not to compete worldwide"),
		func() models.CombinedViolation {
			v := nonCompeteViolation("not to compete worldwide")
			v.ClauseID = 2
			return v
		}(),
		func() models.CombinedViolation {
			v := nonCompeteViolation("not to compete worldwide")
			v.ClauseID = 3
			return v
		}(),
	}

	result := s.ScoreEnhanced(violations, nil, cctx)

	assert.Equal(t, 100, result.Score)
	assert.Equal(t, "CRITICAL", result.Level)
}

func TestScoreEnhancedLevelBoundaries(t *testing.T) {
	cases := []struct {
		score int
		level string
	}{
		{0, "SAFE"},
		{1, "LOW"},
		{24, "LOW"},
		{25, "MEDIUM"},
		{49, "MEDIUM"},
		{50, "HIGH"},
		{74, "HIGH"},
		{75, "CRITICAL"},
		{100, "CRITICAL"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.level, enhancedLevel(tc.score), "score=%d", tc.score)
	}
}

func TestScoreEnhancedDeviationPoints(t *testing.T) {
	s := newTestScorer()
	deviations := []models.Deviation{
		{Category: CategoryPayment, DeviationLevel: models.DeviationExtreme},
		{Category: CategoryNotice, DeviationLevel: models.DeviationSignificant},
		{Category: CategoryWorkingHours, DeviationLevel: models.DeviationMinor},
	}

	result := s.ScoreEnhanced(nil, deviations, models.ContractContext{})

	// 12 + 6 + 2
	assert.Equal(t, 20, result.Score)
	assert.Equal(t, "LOW", result.Level)
}

func TestScoreEnhancedPositiveReducesTotal(t *testing.T) {
	s := newTestScorer()
	cctx := models.ContractContext{ContractType: models.ContractGeneral}

	risky := []models.CombinedViolation{{
		ClauseText:    "Payment within 90 days upon client satisfaction.",
		ViolationType: "delayed_payment_terms",
		SectionNumber: "73",
		RiskLevel:     models.RiskMedium,
		RiskScore:     20,
	}}
	withPositive := append(risky, models.CombinedViolation{
		ClauseID:      2,
		ClauseText:    "An advance payment of 50% is payable before work begins.",
		ViolationType: "positive_advance_payment",
		SectionNumber: "73",
		RiskLevel:     models.RiskPositive,
		RiskScore:     -10,
	})

	base := s.ScoreEnhanced(risky, nil, cctx)
	offset := s.ScoreEnhanced(withPositive, nil, cctx)

	assert.Less(t, offset.Score, base.Score)
	// Protective contributions never appear in the severity breakdown
	assert.NotContains(t, offset.Breakdown, string(models.RiskPositive))
}

func TestScoreEnhancedBreakdownBuckets(t *testing.T) {
	s := newTestScorer()
	result := s.ScoreEnhanced(nil, nil, models.ContractContext{})

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, "SAFE", result.Level)
	require.NotNil(t, result.Breakdown)
	for _, bucket := range []models.RiskLevel{models.RiskCritical, models.RiskHigh, models.RiskMedium, models.RiskLow} {
		_, ok := result.Breakdown[string(bucket)]
		assert.True(t, ok, "breakdown missing bucket %s", bucket)
	}
}

func TestScoreLegacyFlatSum(t *testing.T) {
	s := newTestScorer()
	violations := []models.CombinedViolation{
		{RiskLevel: models.RiskHigh, RiskScore: 30},
		{RiskLevel: models.RiskHigh, RiskScore: 30},
	}

	result := s.ScoreLegacy(violations)

	assert.Equal(t, 60, result.Score)
	assert.Equal(t, "HIGH RISK", result.Level)
}

func TestScoreLegacyLevelBoundaries(t *testing.T) {
	s := newTestScorer()

	cases := []struct {
		score int
		level string
	}{
		{10, "SAFE"},
		{26, "MODERATE RISK"},
		{51, "HIGH RISK"},
		{76, "DANGEROUS"},
	}
	for _, tc := range cases {
		result := s.ScoreLegacy([]models.CombinedViolation{{RiskLevel: models.RiskHigh, RiskScore: tc.score}})
		assert.Equal(t, tc.level, result.Level, "score=%d", tc.score)
	}
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 38, roundHalfUp(37.5))
	assert.Equal(t, 37, roundHalfUp(37.49))
	assert.Equal(t, -12, roundHalfUp(-12.5))
	assert.Equal(t, 0, roundHalfUp(0))
}
