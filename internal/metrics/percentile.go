package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"fund-model-lab/internal/domain"
)

// Distribution summarizes a sample of decimal values with the percentile
// bands reported for Monte Carlo batches.
type Distribution struct {
	Count int             `json:"count"`
	Min   decimal.Decimal `json:"min"`
	P10   decimal.Decimal `json:"p10"`
	P25   decimal.Decimal `json:"p25"`
	P50   decimal.Decimal `json:"p50"`
	P75   decimal.Decimal `json:"p75"`
	P90   decimal.Decimal `json:"p90"`
	Max   decimal.Decimal `json:"max"`
	Mean  decimal.Decimal `json:"mean"`
}

// Summarize computes the band summary of a sample. An empty sample yields
// an all-zero distribution.
func Summarize(values []decimal.Decimal) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	sorted := make([]decimal.Decimal, n)
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	sum := decimal.Zero
	for _, v := range sorted {
		sum = sum.Add(v)
	}

	return Distribution{
		Count: n,
		Min:   sorted[0],
		P10:   Percentile(sorted, decimal.NewFromFloat(0.10)),
		P25:   Percentile(sorted, decimal.NewFromFloat(0.25)),
		P50:   Percentile(sorted, decimal.NewFromFloat(0.50)),
		P75:   Percentile(sorted, decimal.NewFromFloat(0.75)),
		P90:   Percentile(sorted, decimal.NewFromFloat(0.90)),
		Max:   sorted[n-1],
		Mean:  domain.Div(sum, decimal.NewFromInt(int64(n))),
	}
}

// Percentile computes a percentile with linear interpolation.
// sorted must be pre-sorted ascending; p is a fraction (0.10 = 10th).
func Percentile(sorted []decimal.Decimal, p decimal.Decimal) decimal.Decimal {
	n := len(sorted)
	if n == 0 {
		return decimal.Zero
	}
	if n == 1 {
		return sorted[0]
	}

	// Continuous 0-based index into the sorted sample.
	idx := p.Mul(decimal.NewFromInt(int64(n - 1)))
	lower := int(idx.IntPart())
	upper := lower + 1
	if upper >= n {
		return sorted[n-1]
	}

	frac := idx.Sub(decimal.NewFromInt(int64(lower)))
	return sorted[lower].Add(frac.Mul(sorted[upper].Sub(sorted[lower])))
}
