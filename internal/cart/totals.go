package cart

import (
	"github.com/shopspring/decimal"

	"github.com/mercatus-labs/mercatus-backend/pkg/money"
)

// Totals is the monetary breakdown for a cart. Every field has already been
// rounded to two fractional digits.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	Total          decimal.Decimal `json:"total"`
}

// LineTotal is the rounded extended price of one line.
func LineTotal(line Line) decimal.Decimal {
	return money.Round(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
}

// ComputeTotals derives the cart breakdown from its lines, the cart-level
// discount and the store tax rate. It is a pure function: totals are never
// stored on the cart, they are recomputed on every read.
//
// The pipeline rounds half-up at each monetary boundary:
// line total -> subtotal -> discount -> discounted base -> tax -> total.
func ComputeTotals(lines []Line, discountPercent, taxRatePercent decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(LineTotal(line))
	}
	subtotal = money.Round(subtotal)

	discount := money.Percent(subtotal, money.ClampPercent(discountPercent))
	base := money.Round(subtotal.Sub(discount))
	tax := money.Percent(base, money.ClampPercent(taxRatePercent))
	total := money.Round(base.Add(tax))

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		Total:          total,
	}
}
