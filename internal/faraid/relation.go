package faraid

import "strings"

// Relation is the closed set of heir kinds the engine resolves.
type Relation string

const (
	Husband     Relation = "husband"
	Wife        Relation = "wife"
	Father      Relation = "father"
	Mother      Relation = "mother"
	Son         Relation = "son"
	Daughter    Relation = "daughter"
	FullBrother Relation = "full_brother"
	FullSister  Relation = "full_sister"
)

// relationOrder fixes the order in which groups are resolved.
var relationOrder = []Relation{Husband, Wife, Father, Mother, Son, Daughter, FullBrother, FullSister}

// Known reports whether r is one of the supported relations.
func (r Relation) Known() bool {
	switch r {
	case Husband, Wife, Father, Mother, Son, Daughter, FullBrother, FullSister:
		return true
	default:
		return false
	}
}

// maxGroupCount bounds relations the law leaves uncapped.
const maxGroupCount = 10000

// MaxCount is the ceiling on individuals sharing this relation in one entry.
func (r Relation) MaxCount() int {
	switch r {
	case Husband, Father, Mother:
		return 1
	case Wife:
		return 4
	default:
		return maxGroupCount
	}
}

// Singular relations may appear in at most one heir entry.
func (r Relation) Singular() bool {
	switch r {
	case Husband, Wife, Father, Mother:
		return true
	default:
		return false
	}
}

func (r Relation) Spouse() bool {
	return r == Husband || r == Wife
}

// Label is the human-readable name of the relation.
func (r Relation) Label() string {
	switch r {
	case Husband:
		return "Husband"
	case Wife:
		return "Wife"
	case Father:
		return "Father"
	case Mother:
		return "Mother"
	case Son:
		return "Son"
	case Daughter:
		return "Daughter"
	case FullBrother:
		return "Full brother"
	case FullSister:
		return "Full sister"
	default:
		return string(r)
	}
}

// ParseRelation accepts labels like "Full Sister", "full-sister" or
// "full_sister". Unknown input is returned unchanged so Validate can report it.
func ParseRelation(s string) Relation {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	return Relation(norm)
}
