package landedcost

import "github.com/shopspring/decimal"

// safeDiv divides num by den, yielding zero on a zero divisor. Dirty entry
// data must never surface as an error or a non-finite figure in the report.
func safeDiv(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}

// prorate apportions pool across items in proportion to their quantities.
// The first N-1 shares are the per-unit rate times quantity rounded to two
// decimals; the last item receives the exact remainder so the shares always
// sum back to the pool regardless of rounding drift. Iteration order of
// quantities is therefore part of the contract.
func prorate(pool decimal.Decimal, quantities []decimal.Decimal) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(quantities))
	if len(quantities) == 0 {
		return shares
	}

	total := decimal.Zero
	for _, q := range quantities {
		total = total.Add(q)
	}

	// The rate keeps full precision; only the allocated shares are rounded.
	rate := safeDiv(pool, total)

	allocated := decimal.Zero
	for i := 0; i < len(quantities)-1; i++ {
		share := rate.Mul(quantities[i]).Round(2)
		shares[i] = share
		allocated = allocated.Add(share)
	}
	shares[len(quantities)-1] = pool.Sub(allocated)
	return shares
}
