package faraid

import (
	"errors"
	"fmt"
)

// Code identifies the rule an heir set broke.
type Code string

const (
	CodeEmptyHeirs         Code = "EMPTY_HEIRS"
	CodeMissingID          Code = "MISSING_ID"
	CodeDuplicateID        Code = "DUPLICATE_ID"
	CodeUnknownRelation    Code = "UNKNOWN_RELATION"
	CodeInvalidCount       Code = "INVALID_COUNT"
	CodeCountExceedsCap    Code = "COUNT_EXCEEDS_CAP"
	CodeDuplicateRelation  Code = "DUPLICATE_RELATION"
	CodeConflictingSpouses Code = "CONFLICTING_SPOUSES"

	CodeUnsupportedConfiguration Code = "UNSUPPORTED_CONFIGURATION"
)

// ValidationError reports a malformed or legally inconsistent heir set.
// Index is the position of the offending entry, or -1 when the set as a
// whole is at fault.
type ValidationError struct {
	Code     Code
	Index    int
	HeirID   string
	Relation Relation
	Message  string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid heirs [%s]: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("invalid heir %d (id=%q, relation=%q) [%s]: %s",
		e.Index, e.HeirID, e.Relation, e.Code, e.Message)
}

func invalidHeir(code Code, index int, h Heir, format string, args ...any) *ValidationError {
	return &ValidationError{
		Code:     code,
		Index:    index,
		HeirID:   h.ID,
		Relation: h.Relation,
		Message:  fmt.Sprintf(format, args...),
	}
}

// UnsupportedConfigurationError is returned for a valid heir set that the
// implemented rules cannot resolve without guessing.
type UnsupportedConfigurationError struct {
	Reason string
}

func (e *UnsupportedConfigurationError) Error() string {
	return "unsupported heir configuration: " + e.Reason
}

func unsupported(format string, args ...any) *UnsupportedConfigurationError {
	return &UnsupportedConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsUnsupported reports whether err is, or wraps, an *UnsupportedConfigurationError.
func IsUnsupported(err error) bool {
	var ue *UnsupportedConfigurationError
	return errors.As(err, &ue)
}

// ErrorCode extracts the code carried by an engine error, or "" for others.
func ErrorCode(err error) Code {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code
	}
	if IsUnsupported(err) {
		return CodeUnsupportedConfiguration
	}
	return ""
}
