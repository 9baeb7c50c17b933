package suppliers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercatus-labs/mercatus-backend/pkg/db/models"
	pkgerrors "github.com/mercatus-labs/mercatus-backend/pkg/errors"
)

type supplierRepository interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Supplier, error)
	ListActive(ctx context.Context, storeID uuid.UUID) ([]models.Supplier, error)
	Update(ctx context.Context, supplier *models.Supplier) error
	SoftDelete(ctx context.Context, storeID, id uuid.UUID) error
}

// CreateInput carries the fields for a new supplier.
type CreateInput struct {
	Name          string
	Email         *string
	Phone         *string
	Address       *string
	ContactPerson *string
}

// UpdateInput carries partial supplier updates; nil fields are untouched.
type UpdateInput struct {
	Name          *string
	Email         *string
	Phone         *string
	Address       *string
	ContactPerson *string
	IsActive      *bool
}

// Service manages a store's vendor directory.
type Service interface {
	Create(ctx context.Context, storeID uuid.UUID, actorID *uuid.UUID, input CreateInput) (*models.Supplier, error)
	Get(ctx context.Context, storeID, id uuid.UUID) (*models.Supplier, error)
	ListActive(ctx context.Context, storeID uuid.UUID) ([]models.Supplier, error)
	Update(ctx context.Context, storeID, id uuid.UUID, input UpdateInput) (*models.Supplier, error)
	Delete(ctx context.Context, storeID, id uuid.UUID) error
}

type service struct {
	repo supplierRepository
}

func NewService(repo supplierRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("supplier repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, storeID uuid.UUID, actorID *uuid.UUID, input CreateInput) (*models.Supplier, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier name is required")
	}
	supplier := &models.Supplier{
		StoreID:       storeID,
		Name:          name,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		ContactPerson: input.ContactPerson,
		IsActive:      true,
		CreatedBy:     actorID,
	}
	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create supplier")
	}
	return supplier, nil
}

func (s *service) Get(ctx context.Context, storeID, id uuid.UUID) (*models.Supplier, error) {
	supplier, err := s.repo.FindByID(ctx, storeID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load supplier")
	}
	return supplier, nil
}

func (s *service) ListActive(ctx context.Context, storeID uuid.UUID) ([]models.Supplier, error) {
	list, err := s.repo.ListActive(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list suppliers")
	}
	return list, nil
}

func (s *service) Update(ctx context.Context, storeID, id uuid.UUID, input UpdateInput) (*models.Supplier, error) {
	supplier, err := s.Get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier name cannot be empty")
		}
		supplier.Name = trimmed
	}
	if input.Email != nil {
		supplier.Email = input.Email
	}
	if input.Phone != nil {
		supplier.Phone = input.Phone
	}
	if input.Address != nil {
		supplier.Address = input.Address
	}
	if input.ContactPerson != nil {
		supplier.ContactPerson = input.ContactPerson
	}
	if input.IsActive != nil {
		supplier.IsActive = *input.IsActive
	}
	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update supplier")
	}
	return supplier, nil
}

func (s *service) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, storeID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete supplier")
	}
	return nil
}
