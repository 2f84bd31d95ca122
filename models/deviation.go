package models

// DeviationLevel represents how far a contractual term falls outside the
// fair-practice baseline
type DeviationLevel string

const (
	DeviationMinor       DeviationLevel = "MINOR"
	DeviationSignificant DeviationLevel = "SIGNIFICANT"
	DeviationExtreme     DeviationLevel = "EXTREME"
)

// Rank returns a numeric rank for comparing deviation levels
func (d DeviationLevel) Rank() int {
	switch d {
	case DeviationExtreme:
		return 3
	case DeviationSignificant:
		return 2
	case DeviationMinor:
		return 1
	default:
		return 0
	}
}

// Deviation is a contract-wide finding that a numeric or structural term
// falls outside the fair-practice baseline for the contract's context.
// At most one deviation is produced per category per analysis.
type Deviation struct {
	Category        string         `json:"category"`
	FoundInContract string         `json:"found_in_contract"`
	FairStandard    string         `json:"fair_standard"`
	DeviationLevel  DeviationLevel `json:"deviation_level"`
	Explanation     string         `json:"explanation"`
	LegalReference  string         `json:"legal_reference,omitempty"`
	MatchedText     string         `json:"matched_text,omitempty"`
}
