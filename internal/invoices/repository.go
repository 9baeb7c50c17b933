package invoices

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercatus-labs/mercatus-backend/pkg/db/models"
	"github.com/mercatus-labs/mercatus-backend/pkg/pagination"
)

// Repository reads and maintains persisted invoices.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByID loads an invoice with its customer, items, and item products.
func (r *Repository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		Where("store_id = ? AND id = ?", storeID, id).
		First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ListPage returns up to limit invoices newest first, starting after cursor
// when one is provided. Callers pass the buffered limit to detect a next page.
func (r *Repository) ListPage(ctx context.Context, storeID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Invoice, error) {
	q := r.db.WithContext(ctx).
		Preload("Customer").
		Where("store_id = ?", storeID).
		Order("created_at DESC, id DESC").
		Limit(limit)
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	var invoices []models.Invoice
	err := q.Find(&invoices).Error
	return invoices, err
}

func (r *Repository) Update(ctx context.Context, invoice *models.Invoice) error {
	if invoice == nil {
		return fmt.Errorf("invoice is required")
	}
	return r.db.WithContext(ctx).
		Omit("Customer", "Items").
		Save(invoice).Error
}

// Delete removes the invoice header; items cascade at the database level.
func (r *Repository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		Delete(&models.Invoice{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
