package expenses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mercatus-labs/mercatus-backend/pkg/db/models"
	pkgerrors "github.com/mercatus-labs/mercatus-backend/pkg/errors"
)

type expenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Expense, error)
	List(ctx context.Context, storeID uuid.UUID) ([]models.Expense, error)
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, storeID, id uuid.UUID) error
}

// CreateInput carries the fields for a new expense.
type CreateInput struct {
	Category    string
	Description string
	Amount      decimal.Decimal
	ExpenseDate time.Time
	ReceiptURL  *string
}

// UpdateInput carries partial expense updates; nil fields are untouched.
type UpdateInput struct {
	Category    *string
	Description *string
	Amount      *decimal.Decimal
	ExpenseDate *time.Time
	ReceiptURL  *string
}

// Service records the outlays a store makes outside of purchasing stock.
type Service interface {
	Create(ctx context.Context, storeID uuid.UUID, actorID *uuid.UUID, input CreateInput) (*models.Expense, error)
	Get(ctx context.Context, storeID, id uuid.UUID) (*models.Expense, error)
	List(ctx context.Context, storeID uuid.UUID) ([]models.Expense, error)
	Update(ctx context.Context, storeID, id uuid.UUID, input UpdateInput) (*models.Expense, error)
	Delete(ctx context.Context, storeID, id uuid.UUID) error
}

type service struct {
	repo expenseRepository
}

func NewService(repo expenseRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("expense repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, storeID uuid.UUID, actorID *uuid.UUID, input CreateInput) (*models.Expense, error) {
	category := strings.TrimSpace(input.Category)
	description := strings.TrimSpace(input.Description)
	if category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense category is required")
	}
	if description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense description is required")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense amount must be positive")
	}
	if input.ExpenseDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense date is required")
	}

	expense := &models.Expense{
		StoreID:     storeID,
		Category:    category,
		Description: description,
		Amount:      input.Amount,
		ExpenseDate: input.ExpenseDate,
		ReceiptURL:  input.ReceiptURL,
		CreatedBy:   actorID,
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create expense")
	}
	return expense, nil
}

func (s *service) Get(ctx context.Context, storeID, id uuid.UUID) (*models.Expense, error) {
	expense, err := s.repo.FindByID(ctx, storeID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "expense not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load expense")
	}
	return expense, nil
}

func (s *service) List(ctx context.Context, storeID uuid.UUID) ([]models.Expense, error) {
	list, err := s.repo.List(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list expenses")
	}
	return list, nil
}

func (s *service) Update(ctx context.Context, storeID, id uuid.UUID, input UpdateInput) (*models.Expense, error) {
	expense, err := s.Get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if input.Category != nil {
		trimmed := strings.TrimSpace(*input.Category)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense category cannot be empty")
		}
		expense.Category = trimmed
	}
	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense description cannot be empty")
		}
		expense.Description = trimmed
	}
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense amount must be positive")
		}
		expense.Amount = *input.Amount
	}
	if input.ExpenseDate != nil {
		expense.ExpenseDate = *input.ExpenseDate
	}
	if input.ReceiptURL != nil {
		expense.ReceiptURL = input.ReceiptURL
	}
	if err := s.repo.Update(ctx, expense); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update expense")
	}
	return expense, nil
}

func (s *service) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, storeID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "expense not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete expense")
	}
	return nil
}
