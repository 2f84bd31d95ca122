package service

import (
	"sort"

	"contractguard-backend/models"
)

// MergeViolations deduplicates findings from the keyword and semantic
// channels into one list with exactly one entry per clause ID.
//
// Keyword violations seed the result. A semantic match on a new clause is
// appended as-is; a semantic match on a clause the keyword channel
// already flagged only upgrades the provenance to "both" and attaches the
// similarity for display; the keyword channel's risk fields always win.
//
// The result is sorted by risk score descending; ties keep input order.
func MergeViolations(keyword []models.Violation, semantic []models.SemanticMatch) []models.CombinedViolation {
	merged := make([]models.CombinedViolation, 0, len(keyword)+len(semantic))
	byClause := make(map[int]int) // clause ID -> index in merged

	for _, kv := range keyword {
		byClause[kv.ClauseID] = len(merged)
		merged = append(merged, models.CombinedViolation{
			ClauseID:        kv.ClauseID,
			ClauseText:      kv.ClauseText,
			ViolationType:   kv.ViolationType,
			SectionNumber:   kv.SectionNumber,
			SectionTitle:    kv.SectionTitle,
			SectionFullText: kv.SectionFullText,
			RiskLevel:       kv.RiskLevel,
			RiskScore:       kv.RiskScore,
			MatchedKeywords: kv.MatchedKeywords,
			MatchSource:     models.SourceKeyword,
			Explanation:     kv.Explanation,
			GovURL:          kv.GovURL,
		})
	}

	for _, sm := range semantic {
		similarity := sm.Similarity
		if idx, ok := byClause[sm.ClauseID]; ok {
			merged[idx].MatchSource = models.SourceBoth
			merged[idx].SemanticSimilarity = &similarity
			continue
		}
		byClause[sm.ClauseID] = len(merged)
		merged = append(merged, models.CombinedViolation{
			ClauseID:           sm.ClauseID,
			ClauseText:         sm.ClauseText,
			ViolationType:      sm.ViolationType,
			SectionNumber:      sm.SectionNumber,
			SectionTitle:       sm.SectionTitle,
			SectionFullText:    sm.SectionFullText,
			RiskLevel:          sm.RiskLevel,
			RiskScore:          sm.RiskScore,
			MatchSource:        models.SourceSemantic,
			SemanticSimilarity: &similarity,
			Explanation:        sm.Explanation,
			GovURL:             sm.GovURL,
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].RiskScore > merged[j].RiskScore
	})

	return merged
}

// CountMatchSources tallies merged violations by detection channel
func CountMatchSources(violations []models.CombinedViolation) models.MatchSourceBreakdown {
	var b models.MatchSourceBreakdown
	for _, v := range violations {
		switch v.MatchSource {
		case models.SourceKeyword:
			b.Keyword++
		case models.SourceSemantic:
			b.Semantic++
		case models.SourceBoth:
			b.Both++
		}
	}
	return b
}
