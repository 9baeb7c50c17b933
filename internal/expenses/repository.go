package expenses

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercatus-labs/mercatus-backend/pkg/db/models"
)

// Repository persists operational expenses.
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

func (r *Repository) Create(ctx context.Context, expense *models.Expense) error {
	if expense == nil {
		return fmt.Errorf("expense is required")
	}
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *Repository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		First(&expense).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *Repository) List(ctx context.Context, storeID uuid.UUID) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("expense_date DESC, created_at DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *Repository) Update(ctx context.Context, expense *models.Expense) error {
	if expense == nil {
		return fmt.Errorf("expense is required")
	}
	return r.db.WithContext(ctx).Save(expense).Error
}

func (r *Repository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		Delete(&models.Expense{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
