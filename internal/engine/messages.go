package engine

import (
	"errors"

	"faraid-engine/internal/faraid"
	"faraid-engine/internal/model"
	"faraid-engine/internal/zakat"
)

// messages numbers entries in the order they are raised.
type messages []model.CalculationMessage

func (m *messages) add(level, code, text, heirID string) {
	*m = append(*m, model.CalculationMessage{
		ID:      len(*m),
		Level:   level,
		Code:    code,
		Message: text,
		HeirID:  heirID,
	})
}

// fromError turns a calculation error into a CRITICAL message.
func (m *messages) fromError(err error) {
	var (
		ve *faraid.ValidationError
		ue *faraid.UnsupportedConfigurationError
		ie *zakat.InputError
	)
	switch {
	case errors.As(err, &ve):
		m.add(model.LevelCritical, string(ve.Code), ve.Message, ve.HeirID)
	case errors.As(err, &ue):
		m.add(model.LevelCritical, string(faraid.CodeUnsupportedConfiguration),
			"this heir configuration cannot be computed: "+ue.Reason, "")
	case errors.As(err, &ie):
		m.add(model.LevelCritical, "INVALID_INPUT", ie.Error(), "")
	case errors.Is(err, errPricesUnavailable):
		m.add(model.LevelCritical, "PRICES_UNAVAILABLE", err.Error(), "")
	default:
		m.add(model.LevelCritical, "INTERNAL_ERROR", err.Error(), "")
	}
}

func (m messages) critical() bool {
	for _, msg := range m {
		if msg.Level == model.LevelCritical {
			return true
		}
	}
	return false
}

// list never returns nil so the envelope always carries an array.
func (m messages) list() []model.CalculationMessage {
	if m == nil {
		return []model.CalculationMessage{}
	}
	return m
}
