package models

// MatchSource identifies which detection channel produced a violation
type MatchSource string

const (
	SourceKeyword  MatchSource = "keyword"
	SourceSemantic MatchSource = "semantic"
	SourceBoth     MatchSource = "both"
)

// Violation is a single clause flagged by the keyword/regex channel
type Violation struct {
	ClauseID        int       `json:"clause_id"`
	ClauseText      string    `json:"clause_text"`
	ViolationType   string    `json:"violation_type"`
	SectionNumber   string    `json:"section_number"`
	SectionTitle    string    `json:"section_title"`
	SectionFullText string    `json:"section_full_text"`
	RiskLevel       RiskLevel `json:"risk_level"`
	RiskScore       int       `json:"risk_score"`
	MatchedKeywords []string  `json:"matched_keywords"`
	Explanation     string    `json:"explanation"`
	GovURL          string    `json:"gov_url"`
}

// SemanticMatch is a single clause flagged by the vector-similarity channel
type SemanticMatch struct {
	ClauseID        int       `json:"clause_id"`
	ClauseText      string    `json:"clause_text"`
	ViolationType   string    `json:"violation_type"`
	SectionNumber   string    `json:"section_number"`
	SectionTitle    string    `json:"section_title"`
	SectionFullText string    `json:"section_full_text"`
	RiskLevel       RiskLevel `json:"risk_level"`
	RiskScore       int       `json:"risk_score"`
	Similarity      float64   `json:"similarity"` // rounded to 2 decimals
	Explanation     string    `json:"explanation"`
	GovURL          string    `json:"gov_url"`
}

// RoleExplanation is the plain-language explanation of a violation for one
// party's perspective, produced by the generative explanation service
type RoleExplanation struct {
	Simple string `json:"simple"`
	Impact string `json:"impact"`
}

// CombinedViolation is a deduplicated finding with channel provenance.
// After merging there is exactly one entry per clause ID; when both
// channels matched the same clause the keyword channel's risk fields win
// and only the similarity value is carried over from the semantic side.
type CombinedViolation struct {
	ClauseID           int              `json:"clause_id"`
	ClauseText         string           `json:"clause_text"`
	ViolationType      string           `json:"violation_type"`
	SectionNumber      string           `json:"section_number"`
	SectionTitle       string           `json:"section_title"`
	SectionFullText    string           `json:"section_full_text"`
	RiskLevel          RiskLevel        `json:"risk_level"`
	RiskScore          int              `json:"risk_score"`
	MatchedKeywords    []string         `json:"matched_keywords,omitempty"`
	MatchSource        MatchSource      `json:"match_source"`
	SemanticSimilarity *float64         `json:"semantic_similarity,omitempty"`
	Explanation        string           `json:"explanation"`
	GovURL             string           `json:"gov_url"`
	FreelancerView     *RoleExplanation `json:"freelancer_view,omitempty"`
	CompanyView        *RoleExplanation `json:"company_view,omitempty"`
}
