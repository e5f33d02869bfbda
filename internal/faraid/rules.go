package faraid

import (
	"fmt"

	"faraid-engine/internal/fraction"
)

// census counts individuals per relation across all entries.
type census map[Relation]int

func tally(heirs []Heir) census {
	c := make(census, len(relationOrder))
	for _, h := range heirs {
		c[h.Relation] += h.Count
	}
	return c
}

func (c census) has(r Relation) bool {
	return c[r] > 0
}

// group is the combined claim of every individual sharing one relation.
type group struct {
	relation Relation
	count    int
	// fixed is the Quranic share; nil for pure residuaries and excluded heirs.
	fixed *fraction.Rat
	// weight is the residue weight per head: 2 for males, 1 for females,
	// 0 when the group takes no residue.
	weight int
	share  *fraction.Rat
	notes  []string
}

func (g *group) fix(num, den int64, format string, args ...any) {
	g.setFixed(fraction.New(num, den), format, args...)
}

func (g *group) setFixed(share *fraction.Rat, format string, args ...any) {
	g.fixed = share
	g.share = new(fraction.Rat).Set(share)
	g.note(format, args...)
}

func (g *group) residuary(weight int, format string, args ...any) {
	g.weight = weight
	g.note(format, args...)
}

func (g *group) exclude(reason string) {
	g.notes = append(g.notes, reason)
}

func (g *group) note(format string, args ...any) {
	g.notes = append(g.notes, fmt.Sprintf(format, args...))
}

type groupSet struct {
	order      []*group
	byRelation map[Relation]*group
}

func newGroupSet(c census) *groupSet {
	g := &groupSet{byRelation: make(map[Relation]*group, len(c))}
	for _, r := range relationOrder {
		if !c.has(r) {
			continue
		}
		grp := &group{relation: r, count: c[r], share: fraction.Zero()}
		g.order = append(g.order, grp)
		g.byRelation[r] = grp
	}
	return g
}

// assignFixedShares resolves, for every present relation, its fixed share,
// whether it takes residue, or whether it is excluded.
func assignFixedShares(c census) (*groupSet, error) {
	g := newGroupSet(c)
	children := c.has(Son) || c.has(Daughter)
	siblings := c[FullBrother] + c[FullSister]

	for _, grp := range g.order {
		switch grp.relation {
		case Husband:
			if children {
				grp.fix(1, 4, "fixed share, reduced by the decedent's children")
			} else {
				grp.fix(1, 2, "fixed share")
			}

		case Wife:
			if children {
				grp.fix(1, 8, "fixed share, reduced by the decedent's children")
			} else {
				grp.fix(1, 4, "fixed share")
			}
			if grp.count > 1 {
				grp.note("split equally among %d wives", grp.count)
			}

		case Father:
			switch {
			case c.has(Son):
				grp.fix(1, 6, "fixed share alongside a son")
			case c.has(Daughter):
				grp.fix(1, 6, "fixed share")
				grp.residuary(1, "also takes the residue")
			default:
				grp.residuary(1, "residue heir")
			}

		case Mother:
			spouse := g.spouse()
			switch {
			case children:
				grp.fix(1, 6, "fixed share, reduced by the decedent's children")
			case siblings >= 2:
				grp.fix(1, 6, "fixed share, reduced by %d siblings", siblings)
			case c.has(Father) && spouse != nil:
				// One third of what the spouse leaves, so the father keeps
				// twice the mother's portion.
				rest := fraction.Sub(fraction.One(), spouse.fixed)
				grp.setFixed(fraction.Mul(fraction.New(1, 3), rest), "one third of the remainder after the spouse")
			default:
				grp.fix(1, 3, "fixed share")
			}

		case Son:
			if c.has(Daughter) {
				grp.residuary(2, "residue heir, twice a daughter's portion")
			} else {
				grp.residuary(2, "residue heir")
			}

		case Daughter:
			switch {
			case c.has(Son):
				grp.residuary(1, "residue heir with the sons, half a son's portion")
			case grp.count == 1:
				grp.fix(1, 2, "fixed share")
			default:
				grp.fix(2, 3, "fixed share, split equally among %d daughters", grp.count)
			}

		case FullBrother:
			if reason := siblingExclusion(c); reason != "" {
				grp.exclude(reason)
				continue
			}
			if c.has(FullSister) {
				grp.residuary(2, "residue heir, twice a sister's portion")
			} else {
				grp.residuary(2, "residue heir")
			}

		case FullSister:
			if reason := siblingExclusion(c); reason != "" {
				grp.exclude(reason)
				continue
			}
			switch {
			case c.has(FullBrother):
				grp.residuary(1, "residue heir with the brothers, half a brother's portion")
			case c.has(Daughter):
				grp.residuary(1, "residue heir alongside the daughters")
			case grp.count == 1:
				grp.fix(1, 2, "fixed share")
			default:
				grp.fix(2, 3, "fixed share, split equally among %d sisters", grp.count)
			}

		default:
			return nil, fmt.Errorf("faraid: no rule for relation %q", grp.relation)
		}
	}
	return g, nil
}

func siblingExclusion(c census) string {
	switch {
	case c.has(Son):
		return "excluded by the son"
	case c.has(Father):
		return "excluded by the father"
	default:
		return ""
	}
}

func (g *groupSet) spouse() *group {
	if grp, ok := g.byRelation[Husband]; ok {
		return grp
	}
	if grp, ok := g.byRelation[Wife]; ok {
		return grp
	}
	return nil
}

func (g *groupSet) fixedTotal() *fraction.Rat {
	fixed := make([]*fraction.Rat, 0, len(g.order))
	for _, grp := range g.order {
		fixed = append(fixed, grp.fixed)
	}
	return fraction.Sum(fixed...)
}

func (g *groupSet) hasResiduary() bool {
	for _, grp := range g.order {
		if grp.weight > 0 {
			return true
		}
	}
	return false
}

// distributeResidue splits residue among residuaries by head, weighted 2:1
// male to female.
func (g *groupSet) distributeResidue(residue *fraction.Rat) {
	totalWeight := 0
	for _, grp := range g.order {
		totalWeight += grp.count * grp.weight
	}

	for _, grp := range g.order {
		if grp.weight == 0 {
			continue
		}
		if residue.Sign() == 0 {
			grp.note("no residue remains after the fixed shares")
			continue
		}
		part := fraction.Quo(fraction.Mul(residue, fraction.Int(grp.count*grp.weight)), fraction.Int(totalWeight))
		grp.share.Add(grp.share, part)
	}
}

// applyAwl scales every fixed share down so the fixed shares fill the estate.
func (g *groupSet) applyAwl(total *fraction.Rat) {
	for _, grp := range g.order {
		switch {
		case grp.fixed != nil:
			grp.share = fraction.Quo(grp.fixed, total)
			grp.note("reduced under Awl from %s, fixed shares total %s",
				fraction.Format(grp.fixed), fraction.Format(total))
		case grp.weight > 0:
			grp.note("no residue remains after the fixed shares")
		}
	}
}

// applyRadd returns unclaimed residue to the fixed-share heirs other than
// the spouse, in proportion to their fixed shares.
func (g *groupSet) applyRadd(residue *fraction.Rat, policy RaddPolicy) error {
	if policy == RaddFailClosed {
		return unsupported("residue of %s has no residuary heir and Radd is disabled", fraction.Format(residue))
	}

	claimants := fraction.Zero()
	spouseShare := fraction.Zero()
	for _, grp := range g.order {
		if grp.fixed == nil {
			continue
		}
		if grp.relation.Spouse() {
			spouseShare.Add(spouseShare, grp.fixed)
			continue
		}
		claimants.Add(claimants, grp.fixed)
	}

	if claimants.Sign() == 0 {
		return unsupported("residue of %s has no residuary heir and only the spouse holds a fixed share",
			fraction.Format(residue))
	}

	rest := fraction.Sub(fraction.One(), spouseShare)
	for _, grp := range g.order {
		if grp.fixed == nil {
			continue
		}
		if grp.relation.Spouse() {
			grp.note("spouse does not take Radd")
			continue
		}
		grp.share = fraction.Quo(fraction.Mul(grp.fixed, rest), claimants)
		grp.note("increased by Radd of the unclaimed %s", fraction.Format(residue))
	}
	return nil
}
