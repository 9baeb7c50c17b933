package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mercatus-labs/mercatus-backend/pkg/db/models"
	"github.com/mercatus-labs/mercatus-backend/pkg/enums"
	pkgerrors "github.com/mercatus-labs/mercatus-backend/pkg/errors"
	"github.com/mercatus-labs/mercatus-backend/pkg/logger"
	"github.com/mercatus-labs/mercatus-backend/pkg/outbox"
)

type productRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Product, error)
	FindActiveByID(ctx context.Context, storeID, id uuid.UUID) (*models.Product, error)
	ListActive(ctx context.Context, storeID uuid.UUID) ([]models.Product, error)
	Search(ctx context.Context, storeID uuid.UUID, query string) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	SoftDelete(ctx context.Context, storeID, id uuid.UUID) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service exposes the shelf management operations.
type Service interface {
	Create(ctx context.Context, storeID uuid.UUID, actorID *uuid.UUID, input CreateInput) (*models.Product, error)
	Get(ctx context.Context, storeID, id uuid.UUID) (*models.Product, error)
	ListActive(ctx context.Context, storeID uuid.UUID) ([]models.Product, error)
	Search(ctx context.Context, storeID uuid.UUID, query string) ([]models.Product, error)
	Update(ctx context.Context, storeID, id uuid.UUID, input UpdateInput) (*models.Product, error)
	Delete(ctx context.Context, storeID, id uuid.UUID) error
}

type service struct {
	repo   productRepository
	tx     txRunner
	outbox outboxEmitter
	logg   *logger.Logger
}

// NewService builds the product service.
func NewService(repo productRepository, tx txRunner, emitter outboxEmitter, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if emitter == nil {
		return nil, fmt.Errorf("outbox emitter required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, outbox: emitter, logg: logg}, nil
}

// CreateInput carries the fields for a new product.
type CreateInput struct {
	Name              string
	Description       *string
	SKU               string
	Barcode           *string
	CategoryID        *uuid.UUID
	SupplierID        *uuid.UUID
	CostPrice         decimal.Decimal
	SellingPrice      decimal.Decimal
	StockQuantity     int
	MinStockThreshold int
	Images            []string
}

// UpdateInput carries partial product updates; nil fields are untouched.
type UpdateInput struct {
	Name              *string
	Description       *string
	SKU               *string
	Barcode           *string
	CategoryID        *uuid.UUID
	SupplierID        *uuid.UUID
	CostPrice         *decimal.Decimal
	SellingPrice      *decimal.Decimal
	StockQuantity     *int
	MinStockThreshold *int
	Images            []string
	IsActive          *bool
}

func (s *service) Create(ctx context.Context, storeID uuid.UUID, actorID *uuid.UUID, input CreateInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	sku := strings.TrimSpace(input.SKU)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product sku is required")
	}
	if input.SellingPrice.IsNegative() || input.CostPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "prices cannot be negative")
	}
	if input.StockQuantity < 0 || input.MinStockThreshold < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock values cannot be negative")
	}

	product := &models.Product{
		StoreID:           storeID,
		CategoryID:        input.CategoryID,
		SupplierID:        input.SupplierID,
		Name:              name,
		Description:       input.Description,
		SKU:               sku,
		Barcode:           input.Barcode,
		CostPrice:         input.CostPrice,
		SellingPrice:      input.SellingPrice,
		StockQuantity:     input.StockQuantity,
		MinStockThreshold: input.MinStockThreshold,
		Images:            pq.StringArray(input.Images),
		IsActive:          true,
		CreatedBy:         actorID,
	}
	if product.Images == nil {
		product.Images = pq.StringArray{}
	}

	if err := s.repo.Create(ctx, product); err != nil {
		if strings.Contains(err.Error(), "ux_products_store_sku") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return product, nil
}

func (s *service) Get(ctx context.Context, storeID, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, storeID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) ListActive(ctx context.Context, storeID uuid.UUID) ([]models.Product, error) {
	list, err := s.repo.ListActive(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return list, nil
}

func (s *service) Search(ctx context.Context, storeID uuid.UUID, query string) ([]models.Product, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []models.Product{}, nil
	}
	list, err := s.repo.Search(ctx, storeID, trimmed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search products")
	}
	return list, nil
}

func (s *service) Update(ctx context.Context, storeID, id uuid.UUID, input UpdateInput) (*models.Product, error) {
	product, err := s.Get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
		}
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.SKU != nil {
		if strings.TrimSpace(*input.SKU) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product sku cannot be empty")
		}
		product.SKU = strings.TrimSpace(*input.SKU)
	}
	if input.Barcode != nil {
		product.Barcode = input.Barcode
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.SupplierID != nil {
		product.SupplierID = input.SupplierID
	}
	if input.CostPrice != nil {
		if input.CostPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost price cannot be negative")
		}
		product.CostPrice = *input.CostPrice
	}
	if input.SellingPrice != nil {
		if input.SellingPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "selling price cannot be negative")
		}
		product.SellingPrice = *input.SellingPrice
	}
	stockChanged := false
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
		}
		stockChanged = product.StockQuantity != *input.StockQuantity
		product.StockQuantity = *input.StockQuantity
	}
	if input.MinStockThreshold != nil {
		if *input.MinStockThreshold < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "threshold cannot be negative")
		}
		product.MinStockThreshold = *input.MinStockThreshold
	}
	if input.Images != nil {
		product.Images = pq.StringArray(input.Images)
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	if stockChanged && product.StockQuantity <= product.MinStockThreshold {
		s.emitLowStock(ctx, product)
	}
	return product, nil
}

func (s *service) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, storeID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// LowStockEvent is the outbox payload emitted when stock crosses its floor.
type LowStockEvent struct {
	ProductID     uuid.UUID `json:"productId"`
	StoreID       uuid.UUID `json:"storeId"`
	StockQuantity int       `json:"stockQuantity"`
	Threshold     int       `json:"threshold"`
}

// emitLowStock is best effort; the stock update already succeeded.
func (s *service) emitLowStock(ctx context.Context, product *models.Product) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventLowStockDetected,
			AggregateType: enums.AggregateProduct,
			AggregateID:   product.ID,
			Data: LowStockEvent{
				ProductID:     product.ID,
				StoreID:       product.StoreID,
				StockQuantity: product.StockQuantity,
				Threshold:     product.MinStockThreshold,
			},
			Version: 1,
		})
	})
	if err != nil {
		s.logg.Error(ctx, "emit low stock event", err)
	}
}
