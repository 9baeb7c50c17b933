package customers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mercatus-labs/mercatus-backend/pkg/db/models"
	pkgerrors "github.com/mercatus-labs/mercatus-backend/pkg/errors"
)

type stubCustomerRepo struct {
	byID map[uuid.UUID]*models.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{byID: map[uuid.UUID]*models.Customer{}}
}

func (r *stubCustomerRepo) Create(_ context.Context, customer *models.Customer) error {
	customer.ID = uuid.New()
	r.byID[customer.ID] = customer
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, storeID, id uuid.UUID) (*models.Customer, error) {
	customer, ok := r.byID[id]
	if !ok || customer.StoreID != storeID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *customer
	return &clone, nil
}

func (r *stubCustomerRepo) List(_ context.Context, storeID uuid.UUID) ([]models.Customer, error) {
	var out []models.Customer
	for _, c := range r.byID {
		if c.StoreID == storeID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCustomerRepo) Search(ctx context.Context, storeID uuid.UUID, _ string) ([]models.Customer, error) {
	return r.List(ctx, storeID)
}

func (r *stubCustomerRepo) Update(_ context.Context, customer *models.Customer) error {
	r.byID[customer.ID] = customer
	return nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, storeID, id uuid.UUID) error {
	customer, ok := r.byID[id]
	if !ok || customer.StoreID != storeID {
		return gorm.ErrRecordNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubCustomerRepo) ApplyPurchase(_ context.Context, storeID, id uuid.UUID, amount decimal.Decimal, at time.Time) error {
	customer, ok := r.byID[id]
	if !ok || customer.StoreID != storeID {
		return gorm.ErrRecordNotFound
	}
	customer.TotalPurchases = customer.TotalPurchases.Add(amount)
	customer.TotalOrders++
	customer.LastPurchaseDate = &at
	return nil
}

func newTestService(t *testing.T, repo *stubCustomerRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc
}

func TestCreateRequiresName(t *testing.T) {
	svc := newTestService(t, newStubCustomerRepo())

	_, err := svc.Create(context.Background(), uuid.New(), nil, CreateInput{Name: " "})
	var appErr *pkgerrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestRecordPurchaseAccumulates(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := newTestService(t, repo)
	storeID := uuid.New()

	created, err := svc.Create(context.Background(), storeID, nil, CreateInput{Name: "Ada Vendor"})
	require.NoError(t, err)

	first := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(48 * time.Hour)
	require.NoError(t, svc.RecordPurchase(context.Background(), storeID, created.ID, decimal.NewFromFloat(39.58), first))
	require.NoError(t, svc.RecordPurchase(context.Background(), storeID, created.ID, decimal.NewFromFloat(10.42), second))

	got, err := svc.Get(context.Background(), storeID, created.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalPurchases.Equal(decimal.NewFromInt(50)), got.TotalPurchases.String())
	assert.Equal(t, 2, got.TotalOrders)
	require.NotNil(t, got.LastPurchaseDate)
	assert.True(t, got.LastPurchaseDate.Equal(second))
}

func TestRecordPurchaseValidation(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := newTestService(t, repo)
	storeID := uuid.New()

	err := svc.RecordPurchase(context.Background(), storeID, uuid.New(), decimal.NewFromInt(-1), time.Now())
	var appErr *pkgerrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	err = svc.RecordPurchase(context.Background(), storeID, uuid.New(), decimal.NewFromInt(5), time.Now())
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestUpdateAndDelete(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := newTestService(t, repo)
	storeID := uuid.New()

	created, err := svc.Create(context.Background(), storeID, nil, CreateInput{Name: " Ada Vendor "})
	require.NoError(t, err)
	assert.Equal(t, "Ada Vendor", created.Name)

	email := "ada@example.test"
	updated, err := svc.Update(context.Background(), storeID, created.ID, UpdateInput{Email: &email})
	require.NoError(t, err)
	require.NotNil(t, updated.Email)
	assert.Equal(t, email, *updated.Email)

	require.NoError(t, svc.Delete(context.Background(), storeID, created.ID))

	_, err = svc.Get(context.Background(), storeID, created.ID)
	var appErr *pkgerrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestSearchEmptyQuery(t *testing.T) {
	svc := newTestService(t, newStubCustomerRepo())

	list, err := svc.Search(context.Background(), uuid.New(), "")
	require.NoError(t, err)
	assert.Empty(t, list)
}
