package cart

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mercatus-labs/mercatus-backend/pkg/enums"
)

func snapshot(stock int, price string) ProductSnapshot {
	return ProductSnapshot{
		ProductID: uuid.New(),
		Name:      "test product",
		UnitPrice: decimal.RequireFromString(price),
		Stock:     stock,
	}
}

func TestAddNewProduct(t *testing.T) {
	c := NewCart()
	p := snapshot(5, "19.99")

	if err := c.Add(p); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(c.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(c.Lines))
	}
	if c.Lines[0].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", c.Lines[0].Quantity)
	}
}

func TestAddOutOfStock(t *testing.T) {
	c := NewCart()
	if err := c.Add(snapshot(0, "5.00")); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
	if !c.IsEmpty() {
		t.Fatal("cart should stay empty")
	}
}

func TestAddExistingIncrements(t *testing.T) {
	c := NewCart()
	p := snapshot(3, "2.50")
	for i := 0; i < 2; i++ {
		if err := c.Add(p); err != nil {
			t.Fatalf("add %d failed: %v", i, err)
		}
	}
	if len(c.Lines) != 1 {
		t.Fatalf("product should appear once, got %d lines", len(c.Lines))
	}
	if c.Quantity(p.ProductID) != 2 {
		t.Fatalf("expected quantity 2, got %d", c.Quantity(p.ProductID))
	}
}

func TestStockCeiling(t *testing.T) {
	c := NewCart()
	p := snapshot(3, "1.00")
	if err := c.Add(p); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := c.Increase(p.ProductID); err != nil {
			t.Fatalf("increase %d failed: %v", i, err)
		}
	}

	// The (k+1)th unit must be refused and the cart left unchanged.
	if err := c.Increase(p.ProductID); !errors.Is(err, ErrStockExceeded) {
		t.Fatalf("expected ErrStockExceeded, got %v", err)
	}
	if c.Quantity(p.ProductID) != 3 {
		t.Fatalf("quantity must stay at the ceiling, got %d", c.Quantity(p.ProductID))
	}

	if err := c.Add(p); !errors.Is(err, ErrStockExceeded) {
		t.Fatalf("re-adding at the ceiling should signal too, got %v", err)
	}
	if c.Quantity(p.ProductID) != 3 {
		t.Fatalf("quantity must stay at the ceiling after add, got %d", c.Quantity(p.ProductID))
	}
}

func TestAddUsesCurrentStockAsCeiling(t *testing.T) {
	c := NewCart()
	p := snapshot(5, "19.99")
	if err := c.Add(p); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// Stock sold down elsewhere since the first add: the fresh snapshot
	// caps the line even though the line was rung up against 5.
	p.Stock = 1
	if err := c.Add(p); !errors.Is(err, ErrStockExceeded) {
		t.Fatalf("expected ErrStockExceeded against fresh stock, got %v", err)
	}
	if c.Quantity(p.ProductID) != 1 {
		t.Fatalf("refused add must leave quantity alone, got %d", c.Quantity(p.ProductID))
	}
	if c.Lines[0].Stock != 5 {
		t.Fatalf("refused add must leave the line untouched, stock %d", c.Lines[0].Stock)
	}
}

func TestAddAfterRestockLiftsCeiling(t *testing.T) {
	c := NewCart()
	p := snapshot(1, "2.50")
	if err := c.Add(p); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := c.Add(p); !errors.Is(err, ErrStockExceeded) {
		t.Fatalf("expected ErrStockExceeded at stock 1, got %v", err)
	}

	// A restock shows up in the next snapshot and the add goes through.
	p.Stock = 4
	if err := c.Add(p); err != nil {
		t.Fatalf("add after restock failed: %v", err)
	}
	if c.Quantity(p.ProductID) != 2 {
		t.Fatalf("expected quantity 2 after restock, got %d", c.Quantity(p.ProductID))
	}
	if c.Lines[0].Stock != 4 {
		t.Fatalf("line must carry the refreshed stock, got %d", c.Lines[0].Stock)
	}
}

func TestDecreaseRemovesAtOne(t *testing.T) {
	c := NewCart()
	p := snapshot(5, "4.00")
	if err := c.Add(p); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := c.Increase(p.ProductID); err != nil {
		t.Fatalf("increase failed: %v", err)
	}

	c.Decrease(p.ProductID)
	if got := c.Quantity(p.ProductID); got != 1 {
		t.Fatalf("expected quantity 1, got %d", got)
	}

	c.Decrease(p.ProductID)
	if !c.IsEmpty() {
		t.Fatal("decreasing at quantity 1 must remove the line")
	}

	for _, line := range c.Lines {
		if line.Quantity <= 0 {
			t.Fatalf("no line may carry quantity <= 0, got %d", line.Quantity)
		}
	}
}

func TestDecreaseAndRemoveMissingAreNoOps(t *testing.T) {
	c := NewCart()
	if err := c.Add(snapshot(2, "3.00")); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	missing := uuid.New()
	c.Decrease(missing)
	c.Remove(missing)
	if err := c.Increase(missing); err != nil {
		t.Fatalf("increase on missing line should be a no-op, got %v", err)
	}
	if len(c.Lines) != 1 {
		t.Fatalf("cart must be unchanged, got %d lines", len(c.Lines))
	}
}

func TestClearResetsRegisterState(t *testing.T) {
	c := NewCart()
	if err := c.Add(snapshot(2, "3.00")); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	customerID := uuid.New()
	c.SetCustomer(&customerID)
	c.SetDiscountPercent(decimal.NewFromInt(15))
	if err := c.SetPaymentMethod(enums.PaymentMethodCard); err != nil {
		t.Fatalf("set payment method failed: %v", err)
	}

	c.Clear()
	if !c.IsEmpty() {
		t.Fatal("clear must drop all lines")
	}
	if c.CustomerID != nil {
		t.Fatal("clear must detach the customer")
	}
	if !c.DiscountPercent.IsZero() {
		t.Fatal("clear must reset the discount")
	}
	if c.PaymentMethod != enums.PaymentMethodCash {
		t.Fatalf("clear must restore cash, got %s", c.PaymentMethod)
	}
}

func TestSetDiscountPercentClamps(t *testing.T) {
	c := NewCart()
	c.SetDiscountPercent(decimal.NewFromInt(150))
	if !c.DiscountPercent.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected clamp to 100, got %s", c.DiscountPercent)
	}
	c.SetDiscountPercent(decimal.NewFromInt(-5))
	if !c.DiscountPercent.IsZero() {
		t.Fatalf("expected clamp to 0, got %s", c.DiscountPercent)
	}
}

func TestSetPaymentMethodRejectsUnknown(t *testing.T) {
	c := NewCart()
	if err := c.SetPaymentMethod(enums.PaymentMethod("crypto")); err == nil {
		t.Fatal("expected invalid payment method error")
	}
	if c.PaymentMethod != enums.PaymentMethodCash {
		t.Fatalf("payment method must be unchanged, got %s", c.PaymentMethod)
	}
}
