package model

// CalculationMessage reports a problem or an adjustment found while
// calculating. HeirID names the heir entry the message is about, if any.
type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
	HeirID  string `json:"heir_id,omitempty"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)
