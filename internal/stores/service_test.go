package stores

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mercatus-labs/mercatus-backend/pkg/db/models"
	pkgerrors "github.com/mercatus-labs/mercatus-backend/pkg/errors"
)

type stubStoreRepo struct {
	store   *models.Store
	err     error
	updated *models.Store
}

func (s *stubStoreRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.store, nil
}

func (s *stubStoreRepo) Update(ctx context.Context, store *models.Store) error {
	s.updated = store
	return nil
}

func baseStore() *models.Store {
	return &models.Store{
		ID:               uuid.New(),
		Name:             "Corner Market",
		Currency:         "USD",
		Timezone:         "UTC",
		TaxRate:          decimal.NewFromInt(10),
		ReturnPeriodDays: 30,
		Theme:            "light",
		Language:         "en",
		ReceiptTemplate:  "standard",
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestServiceGetByIDSuccess(t *testing.T) {
	store := baseStore()
	svc, err := NewService(&stubStoreRepo{store: store})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.GetByID(context.Background(), store.ID)
	if err != nil {
		t.Fatalf("get store: %v", err)
	}
	if dto.ID != store.ID {
		t.Fatalf("expected id %s got %s", store.ID, dto.ID)
	}
	if dto.Name != store.Name {
		t.Fatalf("expected name %s got %s", store.Name, dto.Name)
	}
	if !dto.TaxRate.Equal(store.TaxRate) {
		t.Fatalf("expected tax rate %s got %s", store.TaxRate, dto.TaxRate)
	}
}

func TestServiceGetByIDNotFound(t *testing.T) {
	svc, err := NewService(&stubStoreRepo{err: gorm.ErrRecordNotFound})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestServiceGetByIDDependencyError(t *testing.T) {
	svc, err := NewService(&stubStoreRepo{err: errors.New("boom")})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", gotErr)
	}
}

func TestServiceUpdateSettingsClampsTaxRate(t *testing.T) {
	repo := &stubStoreRepo{store: baseStore()}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	tax := decimal.NewFromInt(250)
	dto, err := svc.UpdateSettings(context.Background(), repo.store.ID, UpdateSettingsInput{TaxRate: &tax})
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if !dto.TaxRate.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected tax clamped to 100, got %s", dto.TaxRate)
	}
	if repo.updated == nil {
		t.Fatal("expected update to be persisted")
	}
}

func TestServiceUpdateSettingsRejectsEmptyName(t *testing.T) {
	repo := &stubStoreRepo{store: baseStore()}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	empty := ""
	_, gotErr := svc.UpdateSettings(context.Background(), repo.store.ID, UpdateSettingsInput{Name: &empty})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestServiceTaxRate(t *testing.T) {
	store := baseStore()
	svc, err := NewService(&stubStoreRepo{store: store})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	rate, err := svc.TaxRate(context.Background(), store.ID)
	if err != nil {
		t.Fatalf("tax rate: %v", err)
	}
	if !rate.Equal(store.TaxRate) {
		t.Fatalf("expected %s, got %s", store.TaxRate, rate)
	}
}
