// Package fraction holds the exact rational helpers the calculators share.
// All arithmetic stays in big.Rat; conversion to decimal happens only when a
// value is rendered for display.
package fraction

import (
	"math/big"
	"sort"

	"github.com/shopspring/decimal"
)

// Rat is the exact value type every share is held in.
type Rat = big.Rat

var (
	hundred = big.NewRat(100, 1)
	one     = big.NewRat(1, 1)
)

// New returns num/den. It panics on a zero denominator, like big.NewRat.
func New(num, den int64) *big.Rat {
	return big.NewRat(num, den)
}

// Zero returns a fresh zero value.
func Zero() *big.Rat {
	return new(big.Rat)
}

// One returns a fresh value of 1.
func One() *big.Rat {
	return new(big.Rat).Set(one)
}

func Sub(a, b *big.Rat) *big.Rat {
	return new(big.Rat).Sub(a, b)
}

func Mul(a, b *big.Rat) *big.Rat {
	return new(big.Rat).Mul(a, b)
}

// Quo returns a/b. b must be non-zero.
func Quo(a, b *big.Rat) *big.Rat {
	return new(big.Rat).Quo(a, b)
}

// Int returns n/1.
func Int(n int) *big.Rat {
	return new(big.Rat).SetInt64(int64(n))
}

// Sum adds every value; nil entries count as zero.
func Sum(values ...*big.Rat) *big.Rat {
	total := new(big.Rat)
	for _, v := range values {
		if v != nil {
			total.Add(total, v)
		}
	}
	return total
}

// Format renders r in lowest terms: "0", "1", "1/8", "16/27".
func Format(r *big.Rat) string {
	if r == nil {
		return "0"
	}
	return r.RatString()
}

// IsOne reports whether r == 1.
func IsOne(r *big.Rat) bool {
	return r != nil && r.Cmp(one) == 0
}

// Percentages converts shares of a whole into percentages rounded to places
// decimal digits. Rounding uses the largest remainder method, so when the
// shares sum to exactly 1 the returned percentages sum to exactly 100.
// Ties on the remainder go to the earlier index.
func Percentages(shares []*big.Rat, places int32) []decimal.Decimal {
	if len(shares) == 0 {
		return nil
	}

	scale := new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil))
	factor := new(big.Rat).Mul(hundred, scale)

	units := make([]*big.Int, len(shares))
	remainders := make([]*big.Rat, len(shares))
	exactTotal := new(big.Rat)
	floorTotal := new(big.Int)

	for i, s := range shares {
		scaled := new(big.Rat)
		if s != nil {
			scaled.Mul(s, factor)
		}
		exactTotal.Add(exactTotal, scaled)

		floor := floorOf(scaled)
		units[i] = floor
		floorTotal.Add(floorTotal, floor)
		remainders[i] = new(big.Rat).Sub(scaled, new(big.Rat).SetInt(floor))
	}

	missing := new(big.Int).Sub(roundHalfUp(exactTotal), floorTotal)

	order := make([]int, len(shares))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]].Cmp(remainders[order[b]]) > 0
	})

	for k := 0; missing.Sign() > 0 && k < len(order); k++ {
		idx := order[k]
		if remainders[idx].Sign() == 0 {
			break
		}
		units[idx].Add(units[idx], big.NewInt(1))
		missing.Sub(missing, big.NewInt(1))
	}

	out := make([]decimal.Decimal, len(shares))
	for i, u := range units {
		out[i] = decimal.NewFromBigInt(u, -places)
	}
	return out
}

// floorOf truncates a non-negative rational.
func floorOf(r *big.Rat) *big.Int {
	return new(big.Int).Quo(r.Num(), r.Denom())
}

func roundHalfUp(r *big.Rat) *big.Int {
	half := new(big.Rat).Add(r, big.NewRat(1, 2))
	return floorOf(half)
}
