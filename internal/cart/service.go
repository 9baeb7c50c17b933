package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mercatus-labs/mercatus-backend/pkg/db/models"
	"github.com/mercatus-labs/mercatus-backend/pkg/enums"
	pkgerrors "github.com/mercatus-labs/mercatus-backend/pkg/errors"
	"github.com/mercatus-labs/mercatus-backend/pkg/money"
)

type productLoader interface {
	FindActiveByID(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error)
}

type taxRateLoader interface {
	TaxRate(ctx context.Context, storeID uuid.UUID) (decimal.Decimal, error)
}

// View is the cart plus its freshly computed totals.
type View struct {
	Cart   *Cart  `json:"cart"`
	Totals Totals `json:"totals"`
}

// Service exposes the register cart operations for one (store, cashier) pair.
type Service interface {
	Get(ctx context.Context, storeID, cashierID uuid.UUID) (*View, error)
	AddProduct(ctx context.Context, storeID, cashierID, productID uuid.UUID) (*View, error)
	Increase(ctx context.Context, storeID, cashierID, productID uuid.UUID) (*View, error)
	Decrease(ctx context.Context, storeID, cashierID, productID uuid.UUID) (*View, error)
	Remove(ctx context.Context, storeID, cashierID, productID uuid.UUID) (*View, error)
	SetDiscount(ctx context.Context, storeID, cashierID uuid.UUID, rawPercent string) (*View, error)
	SetCustomer(ctx context.Context, storeID, cashierID uuid.UUID, customerID *uuid.UUID) (*View, error)
	SetPaymentMethod(ctx context.Context, storeID, cashierID uuid.UUID, method string) (*View, error)
	Clear(ctx context.Context, storeID, cashierID uuid.UUID) error
}

type service struct {
	carts    Store
	products productLoader
	stores   taxRateLoader
}

// NewService builds the cart service backed by the provided stack.
func NewService(carts Store, products productLoader, stores taxRateLoader) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store loader required")
	}
	return &service{carts: carts, products: products, stores: stores}, nil
}

func (s *service) Get(ctx context.Context, storeID, cashierID uuid.UUID) (*View, error) {
	cart, err := s.carts.Load(ctx, storeID, cashierID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return s.view(ctx, storeID, cart)
}

func (s *service) AddProduct(ctx context.Context, storeID, cashierID, productID uuid.UUID) (*View, error) {
	return s.mutate(ctx, storeID, cashierID, func(cart *Cart) error {
		product, err := s.products.FindActiveByID(ctx, storeID, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		return stockSignal(cart.Add(SnapshotFromProduct(product)))
	})
}

func (s *service) Increase(ctx context.Context, storeID, cashierID, productID uuid.UUID) (*View, error) {
	return s.mutate(ctx, storeID, cashierID, func(cart *Cart) error {
		return stockSignal(cart.Increase(productID))
	})
}

func (s *service) Decrease(ctx context.Context, storeID, cashierID, productID uuid.UUID) (*View, error) {
	return s.mutate(ctx, storeID, cashierID, func(cart *Cart) error {
		cart.Decrease(productID)
		return nil
	})
}

func (s *service) Remove(ctx context.Context, storeID, cashierID, productID uuid.UUID) (*View, error) {
	return s.mutate(ctx, storeID, cashierID, func(cart *Cart) error {
		cart.Remove(productID)
		return nil
	})
}

func (s *service) SetDiscount(ctx context.Context, storeID, cashierID uuid.UUID, rawPercent string) (*View, error) {
	return s.mutate(ctx, storeID, cashierID, func(cart *Cart) error {
		cart.SetDiscountPercent(money.ParsePercent(rawPercent))
		return nil
	})
}

func (s *service) SetCustomer(ctx context.Context, storeID, cashierID uuid.UUID, customerID *uuid.UUID) (*View, error) {
	return s.mutate(ctx, storeID, cashierID, func(cart *Cart) error {
		cart.SetCustomer(customerID)
		return nil
	})
}

func (s *service) SetPaymentMethod(ctx context.Context, storeID, cashierID uuid.UUID, method string) (*View, error) {
	return s.mutate(ctx, storeID, cashierID, func(cart *Cart) error {
		parsed, err := enums.ParsePaymentMethod(method)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
		}
		return cart.SetPaymentMethod(parsed)
	})
}

func (s *service) Clear(ctx context.Context, storeID, cashierID uuid.UUID) error {
	if err := s.carts.Delete(ctx, storeID, cashierID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) mutate(ctx context.Context, storeID, cashierID uuid.UUID, fn func(cart *Cart) error) (*View, error) {
	cart, err := s.carts.Load(ctx, storeID, cashierID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if err := fn(cart); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, storeID, cashierID, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return s.view(ctx, storeID, cart)
}

func (s *service) view(ctx context.Context, storeID uuid.UUID, cart *Cart) (*View, error) {
	taxRate, err := s.stores.TaxRate(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store tax rate")
	}
	return &View{
		Cart:   cart,
		Totals: ComputeTotals(cart.Lines, cart.DiscountPercent, taxRate),
	}, nil
}

// stockSignal keeps the sentinel in the chain so callers can errors.Is it
// while the HTTP layer gets a coded error to render.
func stockSignal(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrOutOfStock):
		return pkgerrors.Wrap(pkgerrors.CodeStateConflict, err, "product out of stock")
	case errors.Is(err, ErrStockExceeded):
		return pkgerrors.Wrap(pkgerrors.CodeStateConflict, err, "no more stock available")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "cart update rejected")
	}
}
