package fraction

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "0", Format(nil))
	assert.Equal(t, "0", Format(Zero()))
	assert.Equal(t, "1", Format(One()))
	assert.Equal(t, "1/8", Format(New(3, 24)))
	assert.Equal(t, "16/27", Format(Quo(New(2, 3), New(9, 8))))
}

func TestPercentages_SumToHundred(t *testing.T) {
	tests := []struct {
		name   string
		shares []*big.Rat
		want   []string
	}{
		{"thirds", []*big.Rat{New(1, 3), New(1, 3), New(1, 3)}, []string{"33.34", "33.33", "33.33"}},
		{"two thirds and one third", []*big.Rat{New(2, 3), New(1, 3)}, []string{"66.67", "33.33"}},
		{"sevenths", []*big.Rat{New(3, 7), New(2, 7), New(2, 7)}, []string{"42.86", "28.57", "28.57"}},
		{"exact", []*big.Rat{New(1, 4), New(3, 4)}, []string{"25.00", "75.00"}},
		{"zero share", []*big.Rat{One(), Zero()}, []string{"100.00", "0.00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentages(tt.shares, 2)

			total := decimal.Zero
			rendered := make([]string, len(got))
			for i, p := range got {
				rendered[i] = p.StringFixed(2)
				total = total.Add(p)
			}
			assert.Equal(t, tt.want, rendered)
			assert.True(t, total.Equal(decimal.NewFromInt(100)), "total %s", total)
		})
	}
}

func TestSum(t *testing.T) {
	assert.True(t, IsOne(Sum(New(1, 2), nil, New(1, 3), New(1, 6))))
	assert.False(t, IsOne(Sum(New(1, 2))))
}
