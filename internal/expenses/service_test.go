package expenses

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

type stubExpenseRepo struct {
	byID map[uuid.UUID]*models.Expense
}

func newStubExpenseRepo() *stubExpenseRepo {
	return &stubExpenseRepo{byID: map[uuid.UUID]*models.Expense{}}
}

func (r *stubExpenseRepo) Create(_ context.Context, expense *models.Expense) error {
	expense.ID = uuid.New()
	r.byID[expense.ID] = expense
	return nil
}

func (r *stubExpenseRepo) FindByID(_ context.Context, storeID, id uuid.UUID) (*models.Expense, error) {
	expense, ok := r.byID[id]
	if !ok || expense.StoreID != storeID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *expense
	return &clone, nil
}

func (r *stubExpenseRepo) List(_ context.Context, storeID uuid.UUID) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range r.byID {
		if e.StoreID == storeID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubExpenseRepo) Update(_ context.Context, expense *models.Expense) error {
	r.byID[expense.ID] = expense
	return nil
}

func (r *stubExpenseRepo) Delete(_ context.Context, storeID, id uuid.UUID) error {
	expense, ok := r.byID[id]
	if !ok || expense.StoreID != storeID {
		return gorm.ErrRecordNotFound
	}
	delete(r.byID, id)
	return nil
}

func validInput() CreateInput {
	return CreateInput{
		Category:    "rent",
		Description: "August storefront rent",
		Amount:      decimal.NewFromInt(1200),
		ExpenseDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateValidatesInput(t *testing.T) {
	svc, err := NewService(newStubExpenseRepo())
	require.NoError(t, err)
	storeID := uuid.New()

	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"missing category", func(in *CreateInput) { in.Category = " " }},
		{"missing description", func(in *CreateInput) { in.Description = "" }},
		{"zero amount", func(in *CreateInput) { in.Amount = decimal.Zero }},
		{"negative amount", func(in *CreateInput) { in.Amount = decimal.NewFromInt(-10) }},
		{"missing date", func(in *CreateInput) { in.ExpenseDate = time.Time{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			_, err := svc.Create(context.Background(), storeID, nil, input)
			var appErr *pkgerrors.Error
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
		})
	}
}

func TestExpenseLifecycle(t *testing.T) {
	repo := newStubExpenseRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)
	storeID := uuid.New()

	created, err := svc.Create(context.Background(), storeID, nil, validInput())
	require.NoError(t, err)
	assert.Equal(t, "rent", created.Category)

	amount := decimal.NewFromInt(1250)
	updated, err := svc.Update(context.Background(), storeID, created.ID, UpdateInput{Amount: &amount})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(amount))

	list, err := svc.List(context.Background(), storeID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(context.Background(), storeID, created.ID))

	err = svc.Delete(context.Background(), storeID, created.ID)
	var appErr *pkgerrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
