package categories

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mercatus-labs/mercatus-backend/pkg/db/models"
	pkgerrors "github.com/mercatus-labs/mercatus-backend/pkg/errors"
)

type stubCategoryRepo struct {
	byID      map[uuid.UUID]*models.Category
	createErr error
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{byID: map[uuid.UUID]*models.Category{}}
}

func (r *stubCategoryRepo) Create(_ context.Context, category *models.Category) error {
	if r.createErr != nil {
		return r.createErr
	}
	category.ID = uuid.New()
	r.byID[category.ID] = category
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, storeID, id uuid.UUID) (*models.Category, error) {
	category, ok := r.byID[id]
	if !ok || category.StoreID != storeID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *category
	return &clone, nil
}

func (r *stubCategoryRepo) List(_ context.Context, storeID uuid.UUID) ([]models.Category, error) {
	var out []models.Category
	for _, c := range r.byID {
		if c.StoreID == storeID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, category *models.Category) error {
	r.byID[category.ID] = category
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, storeID, id uuid.UUID) error {
	category, ok := r.byID[id]
	if !ok || category.StoreID != storeID {
		return gorm.ErrRecordNotFound
	}
	delete(r.byID, id)
	return nil
}

func TestCreateRequiresName(t *testing.T) {
	svc, err := NewService(newStubCategoryRepo())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), uuid.New(), nil, "   ", nil)
	var appErr *pkgerrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestCreateDuplicateName(t *testing.T) {
	repo := newStubCategoryRepo()
	repo.createErr = errors.New(`duplicate key value violates unique constraint "ux_categories_store_name"`)
	svc, err := NewService(repo)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), uuid.New(), nil, "Beverages", nil)
	var appErr *pkgerrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestUpdateAndDelete(t *testing.T) {
	repo := newStubCategoryRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)
	storeID := uuid.New()

	created, err := svc.Create(context.Background(), storeID, nil, " Beverages ", nil)
	require.NoError(t, err)
	assert.Equal(t, "Beverages", created.Name)

	renamed := "Drinks"
	updated, err := svc.Update(context.Background(), storeID, created.ID, &renamed, nil)
	require.NoError(t, err)
	assert.Equal(t, "Drinks", updated.Name)

	require.NoError(t, svc.Delete(context.Background(), storeID, created.ID))

	err = svc.Delete(context.Background(), storeID, created.ID)
	var appErr *pkgerrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestGetScopedToStore(t *testing.T) {
	repo := newStubCategoryRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), uuid.New(), nil, "Beverages", nil)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New(), created.ID)
	var appErr *pkgerrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
