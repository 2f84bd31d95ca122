package service

import (
	"testing"

	"contractguard-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeKeywordWinsOnSharedClause(t *testing.T) {
	keyword := []models.Violation{{
		ClauseID:      1,
		ClauseText:    "The Contractor shall not compete with the Client.",
		ViolationType: "non_compete_section27",
		SectionNumber: "27",
		RiskLevel:     models.RiskCritical,
		RiskScore:     45,
	}}
	semantic := []models.SemanticMatch{{
		ClauseID:      1,
		ClauseText:    "The Contractor shall not compete with the Client.",
		ViolationType: "excessive_confidentiality",
		RiskLevel:     models.RiskMedium,
		RiskScore:     15,
		Similarity:    0.82,
	}}

	merged := MergeViolations(keyword, semantic)

	require.Len(t, merged, 1)
	assert.Equal(t, models.SourceBoth, merged[0].MatchSource)
	// Risk fields come from the keyword channel
	assert.Equal(t, "non_compete_section27", merged[0].ViolationType)
	assert.Equal(t, models.RiskCritical, merged[0].RiskLevel)
	assert.Equal(t, 45, merged[0].RiskScore)
	// Similarity carried over for display
	require.NotNil(t, merged[0].SemanticSimilarity)
	assert.InDelta(t, 0.82, *merged[0].SemanticSimilarity, 1e-9)
}

func TestMergeSemanticOnlyClauseAppended(t *testing.T) {
	keyword := []models.Violation{{
		ClauseID:      1,
		ViolationType: "delayed_payment_terms",
		RiskLevel:     models.RiskMedium,
		RiskScore:     20,
	}}
	semantic := []models.SemanticMatch{{
		ClauseID:      2,
		ViolationType: "uncompensated_ip_transfer",
		RiskLevel:     models.RiskHigh,
		RiskScore:     30,
		Similarity:    0.79,
	}}

	merged := MergeViolations(keyword, semantic)

	require.Len(t, merged, 2)
	// Sorted by risk score descending: the semantic finding leads
	assert.Equal(t, 2, merged[0].ClauseID)
	assert.Equal(t, models.SourceSemantic, merged[0].MatchSource)
	assert.Equal(t, 1, merged[1].ClauseID)
	assert.Equal(t, models.SourceKeyword, merged[1].MatchSource)
	assert.Nil(t, merged[1].SemanticSimilarity)
}

func TestMergeOneEntryPerClause(t *testing.T) {
	keyword := []models.Violation{
		{ClauseID: 1, RiskScore: 45, RiskLevel: models.RiskCritical},
		{ClauseID: 2, RiskScore: 20, RiskLevel: models.RiskMedium},
	}
	semantic := []models.SemanticMatch{
		{ClauseID: 1, RiskScore: 30, Similarity: 0.8},
		{ClauseID: 2, RiskScore: 30, Similarity: 0.9},
		{ClauseID: 3, RiskScore: 25, RiskLevel: models.RiskHigh, Similarity: 0.77},
	}

	merged := MergeViolations(keyword, semantic)

	require.Len(t, merged, 3)
	seen := make(map[int]bool)
	for _, v := range merged {
		assert.False(t, seen[v.ClauseID], "clause %d appears twice", v.ClauseID)
		seen[v.ClauseID] = true
	}
}

func TestMergeEmptyInputs(t *testing.T) {
	assert.Empty(t, MergeViolations(nil, nil))

	semanticOnly := MergeViolations(nil, []models.SemanticMatch{{ClauseID: 1, Similarity: 0.8}})
	require.Len(t, semanticOnly, 1)
	assert.Equal(t, models.SourceSemantic, semanticOnly[0].MatchSource)

	keywordOnly := MergeViolations([]models.Violation{{ClauseID: 1}}, nil)
	require.Len(t, keywordOnly, 1)
	assert.Equal(t, models.SourceKeyword, keywordOnly[0].MatchSource)
}

func TestCountMatchSources(t *testing.T) {
	merged := []models.CombinedViolation{
		{MatchSource: models.SourceKeyword},
		{MatchSource: models.SourceKeyword},
		{MatchSource: models.SourceSemantic},
		{MatchSource: models.SourceBoth},
	}

	b := CountMatchSources(merged)

	assert.Equal(t, 2, b.Keyword)
	assert.Equal(t, 1, b.Semantic)
	assert.Equal(t, 1, b.Both)
}
