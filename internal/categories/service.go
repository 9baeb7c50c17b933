package categories

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

type categoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context, storeID uuid.UUID) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, storeID, id uuid.UUID) error
}

// Service manages the category catalogue for a store.
type Service interface {
	Create(ctx context.Context, storeID uuid.UUID, actorID *uuid.UUID, name string, description *string) (*models.Category, error)
	Get(ctx context.Context, storeID, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context, storeID uuid.UUID) ([]models.Category, error)
	Update(ctx context.Context, storeID, id uuid.UUID, name *string, description *string) (*models.Category, error)
	Delete(ctx context.Context, storeID, id uuid.UUID) error
}

type service struct {
	repo categoryRepository
}

func NewService(repo categoryRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, storeID uuid.UUID, actorID *uuid.UUID, name string, description *string) (*models.Category, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	category := &models.Category{
		StoreID:     storeID,
		Name:        trimmed,
		Description: description,
		CreatedBy:   actorID,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		if strings.Contains(err.Error(), "ux_categories_store_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return category, nil
}

func (s *service) Get(ctx context.Context, storeID, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, storeID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return category, nil
}

func (s *service) List(ctx context.Context, storeID uuid.UUID) ([]models.Category, error) {
	list, err := s.repo.List(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return list, nil
}

func (s *service) Update(ctx context.Context, storeID, id uuid.UUID, name *string, description *string) (*models.Category, error) {
	category, err := s.Get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name cannot be empty")
		}
		category.Name = trimmed
	}
	if description != nil {
		category.Description = description
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	return category, nil
}

func (s *service) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, storeID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}
