package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func line(price string, qty int) Line {
	return Line{
		ProductID: uuid.New(),
		Name:      "item",
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
		Stock:     qty,
	}
}

func TestComputeTotalsReferenceVector(t *testing.T) {
	lines := []Line{line("19.99", 2)}
	totals := ComputeTotals(lines, decimal.NewFromInt(10), decimal.NewFromInt(10))

	expect := map[string]struct {
		got  decimal.Decimal
		want string
	}{
		"subtotal": {totals.Subtotal, "39.98"},
		"discount": {totals.DiscountAmount, "4.00"},
		"tax":      {totals.TaxAmount, "3.60"},
		"total":    {totals.Total, "39.58"},
	}
	for name, check := range expect {
		if !check.got.Equal(decimal.RequireFromString(check.want)) {
			t.Errorf("%s: expected %s, got %s", name, check.want, check.got)
		}
	}
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	totals := ComputeTotals(nil, decimal.NewFromInt(10), decimal.NewFromInt(10))
	for name, value := range map[string]decimal.Decimal{
		"subtotal": totals.Subtotal,
		"discount": totals.DiscountAmount,
		"tax":      totals.TaxAmount,
		"total":    totals.Total,
	} {
		if !value.IsZero() {
			t.Errorf("%s: expected zero, got %s", name, value)
		}
	}
}

func TestComputeTotalsFullDiscount(t *testing.T) {
	lines := []Line{line("12.34", 3)}
	totals := ComputeTotals(lines, decimal.NewFromInt(100), decimal.NewFromInt(10))
	if !totals.TaxAmount.IsZero() {
		t.Fatalf("tax on a fully discounted cart must be zero, got %s", totals.TaxAmount)
	}
	if !totals.Total.IsZero() {
		t.Fatalf("total on a fully discounted cart must be zero, got %s", totals.Total)
	}
}

func TestComputeTotalsZeroTaxRate(t *testing.T) {
	lines := []Line{line("10.00", 1)}
	totals := ComputeTotals(lines, decimal.Zero, decimal.Zero)
	if !totals.TaxAmount.IsZero() {
		t.Fatalf("expected zero tax, got %s", totals.TaxAmount)
	}
	if !totals.Total.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("expected total 10.00, got %s", totals.Total)
	}
}

func TestComputeTotalsIsPure(t *testing.T) {
	lines := []Line{line("7.77", 2), line("0.99", 5)}
	discount := decimal.NewFromFloat(12.5)
	tax := decimal.NewFromFloat(8.25)

	first := ComputeTotals(lines, discount, tax)
	second := ComputeTotals(lines, discount, tax)
	if !first.Total.Equal(second.Total) || !first.Subtotal.Equal(second.Subtotal) {
		t.Fatal("repeated computation over unchanged inputs must agree")
	}
	if lines[0].Quantity != 2 || lines[1].Quantity != 5 {
		t.Fatal("computation must not mutate its inputs")
	}
}

func TestLineTotalRounds(t *testing.T) {
	got := LineTotal(line("1.333", 3))
	if !got.Equal(decimal.RequireFromString("4.00")) {
		t.Fatalf("expected 4.00, got %s", got)
	}
}
