package faraid

import (
	"math/big"

	"github.com/shopspring/decimal"

	"faraid-engine/internal/fraction"
)

// Heir is one claim on the estate: Count individuals sharing Relation.
type Heir struct {
	ID       string
	Relation Relation
	Count    int
}

// InheritanceResult is the entitlement of one heir entry.
type InheritanceResult struct {
	HeirID   string
	Relation Relation
	Count    int

	// Share is the exact fraction of the estate; Fraction renders it.
	Share    *big.Rat
	Fraction string
	// PerPerson is the fraction held by each individual in the entry.
	PerPerson string
	// Percentage is Share*100 rounded for display only.
	Percentage decimal.Decimal
	Note       string
}

// Distribution is the output of one calculation.
type Distribution struct {
	Results []InheritanceResult
	IsAwl   bool
	IsRadd  bool
}

// Total sums the exact shares. It is 1 for every distribution Calculate returns.
func (d Distribution) Total() *big.Rat {
	shares := make([]*big.Rat, len(d.Results))
	for i, r := range d.Results {
		shares[i] = r.Share
	}
	return fraction.Sum(shares...)
}

// TotalPercentage sums the display percentages.
func (d Distribution) TotalPercentage() decimal.Decimal {
	total := decimal.Zero
	for _, r := range d.Results {
		total = total.Add(r.Percentage)
	}
	return total
}
