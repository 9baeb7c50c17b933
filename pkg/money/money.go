package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the fractional precision every monetary boundary is rounded to.
const Places = 2

var oneHundred = decimal.NewFromInt(100)

// Round normalizes an amount to two fractional digits, rounding half up.
// Every monetary boundary (line total, subtotal, discount, tax, total) goes
// through this so display values and stored values never drift.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(Places)
}

// Percent applies pct (0-100) to base and rounds the result.
func Percent(base decimal.Decimal, pct decimal.Decimal) decimal.Decimal {
	return Round(base.Mul(pct).Div(oneHundred))
}

// ParsePercent parses free-text percentage input. Unparsable values and
// values outside [0,100] are clamped rather than rejected, matching how the
// register treats the discount field.
func ParsePercent(raw string) decimal.Decimal {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if trimmed == "" {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero
	}
	return ClampPercent(value)
}

// ClampPercent constrains a percentage to the [0,100] range.
func ClampPercent(value decimal.Decimal) decimal.Decimal {
	if value.IsNegative() {
		return decimal.Zero
	}
	if value.GreaterThan(oneHundred) {
		return oneHundred
	}
	return value
}
