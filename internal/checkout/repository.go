package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercatus-labs/mercatus-backend/pkg/db/models"
)

// Repository persists the checkout steps. Each method is one independent
// round trip: checkout deliberately does not span the steps with a
// transaction, so a later failure leaves earlier writes in place.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// NextInvoiceNumber atomically advances the per-store counter and formats
// the assigned number. Numbers consumed by a checkout that later fails are
// never reused, so sequences may gap.
func (r *Repository) NextInvoiceNumber(ctx context.Context, storeID uuid.UUID) (string, error) {
	var assigned int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO invoice_counters (store_id, next_number, updated_at)
		VALUES (?, 1, now())
		ON CONFLICT (store_id)
		DO UPDATE SET next_number = invoice_counters.next_number + 1, updated_at = now()
		RETURNING next_number`, storeID).Scan(&assigned).Error
	if err != nil {
		return "", fmt.Errorf("advance invoice counter: %w", err)
	}
	return FormatInvoiceNumber(assigned), nil
}

// FormatInvoiceNumber renders the INV-prefixed zero-padded invoice number.
func FormatInvoiceNumber(n int64) string {
	return fmt.Sprintf("INV-%06d", n)
}

// InsertHeader writes the invoice header row.
func (r *Repository) InsertHeader(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

// InsertItems batch-inserts the invoice line rows.
func (r *Repository) InsertItems(ctx context.Context, items []models.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// FetchComposed reloads the invoice with its customer, items and product names.
func (r *Repository) FetchComposed(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}
