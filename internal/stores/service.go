package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mercatus-labs/mercatus-backend/pkg/db/models"
	pkgerrors "github.com/mercatus-labs/mercatus-backend/pkg/errors"
	"github.com/mercatus-labs/mercatus-backend/pkg/money"
)

type storeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	Update(ctx context.Context, store *models.Store) error
}

// Service exposes store settings operations.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error)
	UpdateSettings(ctx context.Context, storeID uuid.UUID, input UpdateSettingsInput) (*StoreDTO, error)
	TaxRate(ctx context.Context, storeID uuid.UUID) (decimal.Decimal, error)
}

type service struct {
	repo storeRepository
}

// NewService builds a store service with the provided repository.
func NewService(repo storeRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo}, nil
}

// UpdateSettingsInput captures the store fields the settings screen may change.
type UpdateSettingsInput struct {
	Name             *string
	Email            *string
	Phone            *string
	Address          *string
	LogoURL          *string
	Currency         *string
	Timezone         *string
	TaxRate          *decimal.Decimal
	ReturnPeriodDays *int
	Theme            *string
	Language         *string
	ReceiptTemplate  *string
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error) {
	store, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(store), nil
}

func (s *service) UpdateSettings(ctx context.Context, storeID uuid.UUID, input UpdateSettingsInput) (*StoreDTO, error) {
	store, err := s.load(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name cannot be empty")
		}
		store.Name = *input.Name
	}
	if input.Email != nil {
		store.Email = input.Email
	}
	if input.Phone != nil {
		store.Phone = input.Phone
	}
	if input.Address != nil {
		store.Address = input.Address
	}
	if input.LogoURL != nil {
		store.LogoURL = input.LogoURL
	}
	if input.Currency != nil {
		store.Currency = *input.Currency
	}
	if input.Timezone != nil {
		store.Timezone = *input.Timezone
	}
	if input.TaxRate != nil {
		store.TaxRate = money.ClampPercent(*input.TaxRate)
	}
	if input.ReturnPeriodDays != nil {
		if *input.ReturnPeriodDays < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "return period cannot be negative")
		}
		store.ReturnPeriodDays = *input.ReturnPeriodDays
	}
	if input.Theme != nil {
		store.Theme = *input.Theme
	}
	if input.Language != nil {
		store.Language = *input.Language
	}
	if input.ReceiptTemplate != nil {
		store.ReceiptTemplate = *input.ReceiptTemplate
	}

	if err := s.repo.Update(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store")
	}
	return FromModel(store), nil
}

// TaxRate returns the store's configured tax percentage for the totals pipeline.
func (s *service) TaxRate(ctx context.Context, storeID uuid.UUID) (decimal.Decimal, error) {
	store, err := s.load(ctx, storeID)
	if err != nil {
		return decimal.Zero, err
	}
	return store.TaxRate, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return store, nil
}
