package models

import (
	"database/sql/driver"
	"encoding/json"
)

// ScoringResult is the output of the context-aware scorer
type ScoringResult struct {
	Score       int            `json:"score"` // 0-100
	Level       string         `json:"level"`
	Breakdown   map[string]int `json:"breakdown"` // severity bucket -> summed points
	Explanation string         `json:"explanation"`
}

// MatchSourceBreakdown counts merged violations by detection channel
type MatchSourceBreakdown struct {
	Keyword  int `json:"keyword"`
	Semantic int `json:"semantic"`
	Both     int `json:"both"`
}

// AnalysisSummary is the headline block of an analysis report
type AnalysisSummary struct {
	OverallRiskScore     int                  `json:"overallRiskScore"`
	RiskLevel            string               `json:"riskLevel"`
	TotalClauses         int                  `json:"totalClauses"`
	RiskyClausesFound    int                  `json:"riskyClausesFound"`
	MatchSourceBreakdown MatchSourceBreakdown `json:"matchSourceBreakdown"`
	Breakdown            map[string]int       `json:"breakdown"`
}

// AnalysisReport is the full analysis result consumed by rendering and
// export layers. Recomputed per analysis, persisted on the contract row.
type AnalysisReport struct {
	Analysis     AnalysisSummary     `json:"analysis"`
	RiskyClauses []CombinedViolation `json:"riskyClauses"`
	Deviations   []Deviation         `json:"deviations"`
}

// Value implements driver.Valuer for JSONB
func (r AnalysisReport) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner for JSONB
func (r *AnalysisReport) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, r)
}
