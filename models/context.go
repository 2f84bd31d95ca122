package models

// ContractType classifies the engagement the contract governs
type ContractType string

const (
	ContractFreelance  ContractType = "freelance"
	ContractEmployment ContractType = "employment"
	ContractVendor     ContractType = "vendor"
	ContractConsultant ContractType = "consultant"
	ContractGeneral    ContractType = "general"
)

// Industry classifies the line of work the contract relates to
type Industry string

const (
	IndustrySoftware  Industry = "software"
	IndustryDesign    Industry = "design"
	IndustryWriting   Industry = "writing"
	IndustryVideo     Industry = "video"
	IndustryMarketing Industry = "marketing"
	IndustryGeneral   Industry = "general"
)

// ContractContext carries the caller-supplied context that drives
// baseline selection and score weighting. Immutable per analysis run.
type ContractContext struct {
	ContractType   ContractType `json:"contract_type"`
	Industry       Industry     `json:"industry"`
	ContractValue  float64      `json:"contract_value,omitempty"` // INR
	DurationMonths int          `json:"duration_months,omitempty"`
	UserExperience int          `json:"user_experience,omitempty"` // years
}

// Normalize fills in the documented defaults for absent context fields
func (c ContractContext) Normalize() ContractContext {
	if c.ContractType == "" {
		c.ContractType = ContractFreelance
	}
	if c.Industry == "" {
		c.Industry = IndustryGeneral
	}
	return c
}
