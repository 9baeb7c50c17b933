package customers

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

type customerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Customer, error)
	List(ctx context.Context, storeID uuid.UUID) ([]models.Customer, error)
	Search(ctx context.Context, storeID uuid.UUID, query string) ([]models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, storeID, id uuid.UUID) error
	ApplyPurchase(ctx context.Context, storeID, id uuid.UUID, amount decimal.Decimal, at time.Time) error
}

// CreateInput carries the fields for a new customer.
type CreateInput struct {
	Name        string
	Email       *string
	Phone       *string
	Address     *string
	DateOfBirth *time.Time
}

// UpdateInput carries partial customer updates; nil fields are untouched.
type UpdateInput struct {
	Name        *string
	Email       *string
	Phone       *string
	Address     *string
	DateOfBirth *time.Time
}

// Service manages the customer book and its purchase history counters.
type Service interface {
	Create(ctx context.Context, storeID uuid.UUID, actorID *uuid.UUID, input CreateInput) (*models.Customer, error)
	Get(ctx context.Context, storeID, id uuid.UUID) (*models.Customer, error)
	List(ctx context.Context, storeID uuid.UUID) ([]models.Customer, error)
	Search(ctx context.Context, storeID uuid.UUID, query string) ([]models.Customer, error)
	Update(ctx context.Context, storeID, id uuid.UUID, input UpdateInput) (*models.Customer, error)
	Delete(ctx context.Context, storeID, id uuid.UUID) error
	RecordPurchase(ctx context.Context, storeID, customerID uuid.UUID, amount decimal.Decimal, at time.Time) error
}

type service struct {
	repo customerRepository
}

func NewService(repo customerRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, storeID uuid.UUID, actorID *uuid.UUID, input CreateInput) (*models.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	customer := &models.Customer{
		StoreID:     storeID,
		Name:        name,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
		DateOfBirth: input.DateOfBirth,
		CreatedBy:   actorID,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}
	return customer, nil
}

func (s *service) Get(ctx context.Context, storeID, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, storeID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	return customer, nil
}

func (s *service) List(ctx context.Context, storeID uuid.UUID) ([]models.Customer, error) {
	list, err := s.repo.List(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	return list, nil
}

func (s *service) Search(ctx context.Context, storeID uuid.UUID, query string) ([]models.Customer, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []models.Customer{}, nil
	}
	list, err := s.repo.Search(ctx, storeID, trimmed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search customers")
	}
	return list, nil
}

func (s *service) Update(ctx context.Context, storeID, id uuid.UUID, input UpdateInput) (*models.Customer, error) {
	customer, err := s.Get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name cannot be empty")
		}
		customer.Name = trimmed
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.DateOfBirth != nil {
		customer.DateOfBirth = input.DateOfBirth
	}
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer")
	}
	return customer, nil
}

func (s *service) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, storeID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete customer")
	}
	return nil
}

// RecordPurchase folds a completed sale into the customer's lifetime stats.
func (s *service) RecordPurchase(ctx context.Context, storeID, customerID uuid.UUID, amount decimal.Decimal, at time.Time) error {
	if amount.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "purchase amount cannot be negative")
	}
	if err := s.repo.ApplyPurchase(ctx, storeID, customerID, amount, at); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record purchase")
	}
	return nil
}
