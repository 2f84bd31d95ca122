package models

import (
	"time"

	"github.com/google/uuid"
)

// ContractStatus represents the lifecycle state of an uploaded contract
type ContractStatus string

const (
	ContractStatusUploaded ContractStatus = "uploaded"
	ContractStatusAnalyzed ContractStatus = "analyzed"
	ContractStatusArchived ContractStatus = "archived"
)

// Contract represents an uploaded contract document and, once analysis
// has run, its stored risk report
type Contract struct {
	ID       uuid.UUID      `json:"id"`
	UserID   uuid.UUID      `json:"user_id"`
	Status   ContractStatus `json:"status"`
	Filename string         `json:"filename"`

	// Extraction
	FileID         *uuid.UUID `json:"file_id,omitempty"`
	ExtractedText  string     `json:"extracted_text"`
	CharacterCount int        `json:"character_count"`
	PageCount      *int       `json:"page_count,omitempty"`

	// Caller-supplied analysis context
	ContractType   ContractType `json:"contract_type"`
	Industry       Industry     `json:"industry"`
	ContractValue  float64      `json:"contract_value"`
	DurationMonths int          `json:"duration_months"`
	UserExperience int          `json:"user_experience"`

	// Latest analysis result
	Report     *AnalysisReport `json:"report,omitempty"`
	AnalyzedAt *time.Time      `json:"analyzed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Context assembles the ContractContext stored on the contract row
func (c *Contract) Context() ContractContext {
	return ContractContext{
		ContractType:   c.ContractType,
		Industry:       c.Industry,
		ContractValue:  c.ContractValue,
		DurationMonths: c.DurationMonths,
		UserExperience: c.UserExperience,
	}.Normalize()
}
