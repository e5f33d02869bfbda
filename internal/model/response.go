package model

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	TenantID               string `json:"tenant_id"`
	CalculationKind        string `json:"calculation_kind"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

type InheritanceResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	CalculationResult   InheritanceResult   `json:"calculation_result"`
}

type InheritanceResult struct {
	Messages []CalculationMessage `json:"messages"`
	// Results is empty when the calculation failed.
	Results []HeirShare `json:"results"`
	IsAwl   bool        `json:"is_awl"`
	IsRadd  bool        `json:"is_radd"`
}

// HeirShare is the display form of one heir entry's entitlement.
type HeirShare struct {
	HeirID         string  `json:"heir_id"`
	Heir           string  `json:"heir"`
	Relation       string  `json:"relation"`
	Count          int     `json:"count"`
	Share          string  `json:"share"`
	PerPersonShare string  `json:"per_person_share"`
	Percentage     float64 `json:"percentage"`
	Note           string  `json:"note,omitempty"`
}

type ZakatResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	CalculationResult   ZakatResult         `json:"calculation_result"`
}

type ZakatResult struct {
	Messages   []CalculationMessage `json:"messages"`
	Assessment *ZakatAssessment     `json:"assessment"`
}

// ZakatAssessment carries money as fixed two-place strings.
type ZakatAssessment struct {
	Currency      string `json:"currency"`
	Standard      string `json:"standard"`
	GoldPerGram   string `json:"gold_per_gram"`
	SilverPerGram string `json:"silver_per_gram"`
	GoldValue     string `json:"gold_value"`
	SilverValue   string `json:"silver_value"`
	NetWealth     string `json:"net_wealth"`
	Nisab         string `json:"nisab"`
	AboveNisab    bool   `json:"above_nisab"`
	ZakatDue      string `json:"zakat_due"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)

const (
	KindInheritance = "INHERITANCE"
	KindValidation  = "VALIDATION"
	KindZakat       = "ZAKAT"
)
