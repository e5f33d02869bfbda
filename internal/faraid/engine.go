// Package faraid distributes an estate among heirs under Sunni inheritance
// law: fixed shares, residue to agnatic heirs (2:1 male to female), Awl when
// fixed claims exceed the estate, and Radd when residue has no claimant.
//
// Every computation is exact (math/big.Rat). Percentages are rounded once, at
// the end, for display. The engine is pure: it keeps no state between calls
// and never mutates its input.
package faraid

import (
	"fmt"
	"strings"

	"faraid-engine/internal/fraction"
)

// RaddPolicy decides what happens to residue nobody is entitled to.
type RaddPolicy string

const (
	// RaddExcludeSpouse returns the residue to the non-spouse fixed-share
	// heirs in proportion to their shares. The spouse keeps its fixed share.
	RaddExcludeSpouse RaddPolicy = "exclude-spouse"
	// RaddFailClosed refuses to compute any distribution that needs Radd.
	RaddFailClosed RaddPolicy = "fail-closed"
)

// ParseRaddPolicy maps a configuration value onto a policy.
func ParseRaddPolicy(s string) (RaddPolicy, error) {
	switch RaddPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", RaddExcludeSpouse:
		return RaddExcludeSpouse, nil
	case RaddFailClosed:
		return RaddFailClosed, nil
	default:
		return "", fmt.Errorf("unknown radd policy %q", s)
	}
}

// displayPlaces is the number of decimals kept in percentages.
const displayPlaces = 2

type Engine struct {
	radd RaddPolicy
}

type Option func(*Engine)

// WithRaddPolicy selects the Radd policy. Unknown policies fail closed.
func WithRaddPolicy(p RaddPolicy) Option {
	return func(e *Engine) {
		switch p {
		case RaddExcludeSpouse, RaddFailClosed:
			e.radd = p
		default:
			e.radd = RaddFailClosed
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{radd: RaddExcludeSpouse}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = New()

// Calculate distributes the estate with the default Radd policy.
func Calculate(heirs []Heir) (Distribution, error) {
	return defaultEngine.Calculate(heirs)
}

// Policy returns the Radd policy the engine applies.
func (e *Engine) Policy() RaddPolicy {
	return e.radd
}

// Calculate validates heirs and distributes the whole estate among them.
// Each input entry yields exactly one result, in input order; excluded heirs
// get a zero share with a note.
func (e *Engine) Calculate(heirs []Heir) (Distribution, error) {
	if err := Validate(heirs); err != nil {
		return Distribution{}, err
	}

	groups, err := assignFixedShares(tally(heirs))
	if err != nil {
		return Distribution{}, err
	}

	var dist Distribution
	fixedTotal := groups.fixedTotal()
	switch fixedTotal.Cmp(fraction.One()) {
	case 1:
		groups.applyAwl(fixedTotal)
		dist.IsAwl = true
	default:
		residue := fraction.Sub(fraction.One(), fixedTotal)
		switch {
		case groups.hasResiduary():
			groups.distributeResidue(residue)
		case residue.Sign() > 0:
			if err = groups.applyRadd(residue, e.radd); err != nil {
				return Distribution{}, err
			}
			dist.IsRadd = true
		}
	}

	dist.Results = groups.results(heirs)

	if total := dist.Total(); !fraction.IsOne(total) {
		return Distribution{}, fmt.Errorf("faraid: shares sum to %s instead of 1", fraction.Format(total))
	}
	return dist, nil
}

// results spreads each group's share over its entries by head count and
// renders fractions and percentages.
func (g *groupSet) results(heirs []Heir) []InheritanceResult {
	out := make([]InheritanceResult, len(heirs))
	shares := make([]*fraction.Rat, len(heirs))

	for i, h := range heirs {
		grp := g.byRelation[h.Relation]
		share := fraction.Quo(fraction.Mul(grp.share, fraction.Int(h.Count)), fraction.Int(grp.count))
		shares[i] = share
		out[i] = InheritanceResult{
			HeirID:    h.ID,
			Relation:  h.Relation,
			Count:     h.Count,
			Share:     share,
			Fraction:  fraction.Format(share),
			PerPerson: fraction.Format(fraction.Quo(share, fraction.Int(h.Count))),
			Note:      strings.Join(grp.notes, "; "),
		}
	}

	for i, p := range fraction.Percentages(shares, displayPlaces) {
		out[i].Percentage = p
	}
	return out
}
