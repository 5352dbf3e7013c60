package domain

import "github.com/shopspring/decimal"

// MoneyPrecision is the engine-wide decimal scale used for division.
// Addition, subtraction and multiplication are exact in decimal and are
// never rounded; division is the only operation that can introduce a
// repeating expansion, so it always goes through DivRound at this scale.
const MoneyPrecision = 12

// Div divides a by b under the engine-wide rounding rule.
func Div(a, b decimal.Decimal) decimal.Decimal {
	return a.DivRound(b, MoneyPrecision)
}

// Ratio divides a by b, resolving a zero denominator to zero.
// This is the documented convention for TVPI/DPI style ratios: a fund that
// has called no capital has a ratio of 0, not an error and not NaN.
func Ratio(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.DivRound(b, MoneyPrecision)
}
