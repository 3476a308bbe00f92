package landedcost

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestProrate_RemainderOnLastLine(t *testing.T) {
	// 10.00 over three equal lines rounds to 3.33 per line; the last line
	// absorbs the 0.01 remainder.
	shares := prorate(dec("10.00"), []decimal.Decimal{dec("1"), dec("1"), dec("1")})

	require.Len(t, shares, 3)
	assert.True(t, dec("3.33").Equal(shares[0]), "got %s", shares[0])
	assert.True(t, dec("3.33").Equal(shares[1]), "got %s", shares[1])
	assert.True(t, dec("3.34").Equal(shares[2]), "got %s", shares[2])
}

func TestProrate_SumsToPool(t *testing.T) {
	cases := []struct {
		name       string
		pool       string
		quantities []string
	}{
		{"uneven quantities", "123.45", []string{"7", "13", "1", "29"}},
		{"single line", "99.99", []string{"3"}},
		{"tiny pool", "0.01", []string{"1000", "2000"}},
		{"zero pool", "0.00", []string{"5", "5"}},
		{"fractional quantities", "250.00", []string{"1.5", "2.25", "0.75"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var qs []decimal.Decimal
			for _, q := range tc.quantities {
				qs = append(qs, dec(q))
			}
			shares := prorate(dec(tc.pool), qs)
			require.Len(t, shares, len(qs))

			sum := decimal.Zero
			for _, s := range shares {
				sum = sum.Add(s)
			}
			assert.True(t, dec(tc.pool).Equal(sum), "pool %s, allocated %s", tc.pool, sum)
		})
	}
}

func TestProrate_ZeroTotalUnits(t *testing.T) {
	// Rate is safe-divided to zero; the full pool lands on the last line so
	// nothing is lost.
	shares := prorate(dec("50.00"), []decimal.Decimal{decimal.Zero, decimal.Zero})

	require.Len(t, shares, 2)
	assert.True(t, shares[0].IsZero())
	assert.True(t, dec("50.00").Equal(shares[1]))
}

func TestProrate_NoLines(t *testing.T) {
	assert.Empty(t, prorate(dec("50.00"), nil))
}

func TestSafeDiv_ZeroDivisor(t *testing.T) {
	assert.True(t, safeDiv(dec("10"), decimal.Zero).IsZero())
	assert.True(t, safeDiv(decimal.Zero, decimal.Zero).IsZero())
	assert.True(t, dec("2.5").Equal(safeDiv(dec("5"), dec("2"))))
}
