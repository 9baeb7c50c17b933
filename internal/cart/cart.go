package cart

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mercatus-labs/mercatus-backend/pkg/db/models"
	"github.com/mercatus-labs/mercatus-backend/pkg/enums"
	"github.com/mercatus-labs/mercatus-backend/pkg/money"
)

// Stock signals surfaced by cart mutations. They are outcomes of a valid
// request, not failures: the cart is left unchanged and the caller decides
// how to present them.
var (
	ErrOutOfStock    = errors.New("product out of stock")
	ErrStockExceeded = errors.New("stock ceiling reached")
)

// Line is one product entry in a cart. A product appears at most once;
// adding it again bumps the quantity instead.
type Line struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Stock     int             `json:"stock"`
}

// Cart is the in-progress sale for one cashier at one store. Lines keep
// insertion order so the register renders them the way they were rung up.
type Cart struct {
	Lines           []Line              `json:"lines"`
	DiscountPercent decimal.Decimal     `json:"discountPercent"`
	CustomerID      *uuid.UUID          `json:"customerId,omitempty"`
	PaymentMethod   enums.PaymentMethod `json:"paymentMethod"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// NewCart returns an empty cart with register defaults.
func NewCart() *Cart {
	return &Cart{
		Lines:           []Line{},
		DiscountPercent: decimal.Zero,
		PaymentMethod:   enums.PaymentMethodCash,
	}
}

// ProductSnapshot carries the product fields the cart needs at add time.
type ProductSnapshot struct {
	ProductID uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Stock     int
}

// SnapshotFromProduct projects a persisted product into a cart snapshot.
func SnapshotFromProduct(p *models.Product) ProductSnapshot {
	return ProductSnapshot{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.SellingPrice,
		Stock:     p.StockQuantity,
	}
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Quantity returns the quantity currently held for the product, zero when absent.
func (c *Cart) Quantity(productID uuid.UUID) int {
	if idx := c.lineIndex(productID); idx >= 0 {
		return c.Lines[idx].Quantity
	}
	return 0
}

// Add puts one unit of the product in the cart. A product already present
// is incremented instead, subject to the same stock ceiling.
func (c *Cart) Add(p ProductSnapshot) error {
	if idx := c.lineIndex(p.ProductID); idx >= 0 {
		// The ceiling is the product's current stock, not the value captured
		// when the line was first rung up. A refused add leaves the line
		// untouched.
		if c.Lines[idx].Quantity >= p.Stock {
			return ErrStockExceeded
		}
		c.Lines[idx].Stock = p.Stock
		c.Lines[idx].UnitPrice = money.Round(p.UnitPrice)
		c.Lines[idx].Quantity++
		return nil
	}
	if p.Stock <= 0 {
		return ErrOutOfStock
	}
	c.Lines = append(c.Lines, Line{
		ProductID: p.ProductID,
		Name:      p.Name,
		UnitPrice: money.Round(p.UnitPrice),
		Quantity:  1,
		Stock:     p.Stock,
	})
	return nil
}

// Increase bumps the quantity of an existing line by one. A missing line is
// a no-op.
func (c *Cart) Increase(productID uuid.UUID) error {
	idx := c.lineIndex(productID)
	if idx < 0 {
		return nil
	}
	return c.increaseAt(idx)
}

func (c *Cart) increaseAt(idx int) error {
	line := c.Lines[idx]
	if line.Quantity >= line.Stock {
		return ErrStockExceeded
	}
	c.Lines[idx].Quantity++
	return nil
}

// Decrease lowers the quantity of an existing line by one; reaching zero
// removes the line. A missing line is a no-op.
func (c *Cart) Decrease(productID uuid.UUID) {
	idx := c.lineIndex(productID)
	if idx < 0 {
		return
	}
	if c.Lines[idx].Quantity <= 1 {
		c.removeAt(idx)
		return
	}
	c.Lines[idx].Quantity--
}

// Remove drops the line for the product. A missing line is a no-op.
func (c *Cart) Remove(productID uuid.UUID) {
	if idx := c.lineIndex(productID); idx >= 0 {
		c.removeAt(idx)
	}
}

// Clear resets the cart to its empty register state.
func (c *Cart) Clear() {
	c.Lines = []Line{}
	c.DiscountPercent = decimal.Zero
	c.CustomerID = nil
	c.PaymentMethod = enums.PaymentMethodCash
}

// SetDiscountPercent stores the cart-level discount, clamped to [0,100].
func (c *Cart) SetDiscountPercent(pct decimal.Decimal) {
	c.DiscountPercent = money.ClampPercent(pct)
}

// SetCustomer attaches or detaches the customer for the sale.
func (c *Cart) SetCustomer(customerID *uuid.UUID) {
	c.CustomerID = customerID
}

// SetPaymentMethod records how the sale will be settled.
func (c *Cart) SetPaymentMethod(method enums.PaymentMethod) error {
	if !method.IsValid() {
		return errors.New("invalid payment method")
	}
	c.PaymentMethod = method
	return nil
}

func (c *Cart) lineIndex(productID uuid.UUID) int {
	for i, line := range c.Lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(idx int) {
	c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
}
