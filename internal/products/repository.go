package products

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercatus-labs/mercatus-backend/pkg/db/models"
)

const searchLimit = 10

// Repository handles product persistence for one store's shelf.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create persists a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByID loads a product within the store, active or not.
func (r *Repository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Supplier").
		First(&product, "id = ? AND store_id = ?", id, storeID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindActiveByID loads an active product within the store. Used by the cart
// when ringing items up.
func (r *Repository) FindActiveByID(ctx context.Context, storeID, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		First(&product, "id = ? AND store_id = ? AND is_active = TRUE", id, storeID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListActive returns the store's sellable products ordered by name.
func (r *Repository) ListActive(ctx context.Context, storeID uuid.UUID) ([]models.Product, error) {
	var list []models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Supplier").
		Where("store_id = ? AND is_active = TRUE", storeID).
		Order("name ASC").
		Find(&list).Error
	return list, err
}

// Search matches active products by name, SKU or barcode, capped for the
// register's type-ahead.
func (r *Repository) Search(ctx context.Context, storeID uuid.UUID, query string) ([]models.Product, error) {
	pattern := fmt.Sprintf("%%%s%%", query)
	var list []models.Product
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND is_active = TRUE", storeID).
		Where("name ILIKE ? OR sku ILIKE ? OR barcode ILIKE ?", pattern, pattern, pattern).
		Order("name ASC").
		Limit(searchLimit).
		Find(&list).Error
	return list, err
}

// Update saves the provided product.
func (r *Repository) Update(ctx context.Context, product *models.Product) error {
	if product == nil {
		return fmt.Errorf("product is required")
	}
	return r.db.WithContext(ctx).Save(product).Error
}

// SoftDelete deactivates the product so history keeps resolving its rows.
func (r *Repository) SoftDelete(ctx context.Context, storeID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND store_id = ?", id, storeID).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
