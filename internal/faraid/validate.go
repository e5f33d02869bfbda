package faraid

import "strings"

// Validate checks an heir set without computing anything. It returns the
// first problem found as a *ValidationError, or nil.
func Validate(heirs []Heir) error {
	if len(heirs) == 0 {
		return &ValidationError{
			Code:    CodeEmptyHeirs,
			Index:   -1,
			Message: "at least one heir is required",
		}
	}

	seenIDs := make(map[string]int, len(heirs))
	seenSingular := make(map[Relation]int, 4)
	spouse := -1

	for i, h := range heirs {
		if strings.TrimSpace(h.ID) == "" {
			return invalidHeir(CodeMissingID, i, h, "heir id is empty")
		}
		if prev, ok := seenIDs[h.ID]; ok {
			return invalidHeir(CodeDuplicateID, i, h, "id already used by heir %d", prev)
		}
		seenIDs[h.ID] = i

		if !h.Relation.Known() {
			return invalidHeir(CodeUnknownRelation, i, h, "relation is not supported")
		}
		if h.Count < 1 {
			return invalidHeir(CodeInvalidCount, i, h, "count must be at least 1, got %d", h.Count)
		}
		if limit := h.Relation.MaxCount(); h.Count > limit {
			return invalidHeir(CodeCountExceedsCap, i, h, "%s count is capped at %d, got %d",
				h.Relation.Label(), limit, h.Count)
		}

		if h.Relation.Singular() {
			if prev, ok := seenSingular[h.Relation]; ok {
				return invalidHeir(CodeDuplicateRelation, i, h, "%s already declared by heir %d",
					h.Relation.Label(), prev)
			}
			seenSingular[h.Relation] = i
		}

		if h.Relation.Spouse() {
			if spouse >= 0 && heirs[spouse].Relation != h.Relation {
				return invalidHeir(CodeConflictingSpouses, i, h,
					"a decedent has either a husband or wives, heir %d is already a %s",
					spouse, heirs[spouse].Relation.Label())
			}
			spouse = i
		}
	}

	return nil
}
