package invoices

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mercatus-labs/mercatus-backend/pkg/db/models"
	"github.com/mercatus-labs/mercatus-backend/pkg/enums"
	pkgerrors "github.com/mercatus-labs/mercatus-backend/pkg/errors"
	"github.com/mercatus-labs/mercatus-backend/pkg/pagination"
)

type stubInvoiceRepo struct {
	byID    map[uuid.UUID]*models.Invoice
	ordered []*models.Invoice
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{byID: map[uuid.UUID]*models.Invoice{}}
}

func (r *stubInvoiceRepo) add(invoice *models.Invoice) {
	r.byID[invoice.ID] = invoice
	r.ordered = append(r.ordered, invoice)
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, storeID, id uuid.UUID) (*models.Invoice, error) {
	invoice, ok := r.byID[id]
	if !ok || invoice.StoreID != storeID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *invoice
	return &clone, nil
}

func (r *stubInvoiceRepo) ListPage(_ context.Context, storeID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Invoice, error) {
	var out []models.Invoice
	for i := len(r.ordered) - 1; i >= 0; i-- {
		invoice := r.ordered[i]
		if invoice.StoreID != storeID {
			continue
		}
		if cursor != nil && !invoice.CreatedAt.Before(cursor.CreatedAt) {
			continue
		}
		out = append(out, *invoice)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *stubInvoiceRepo) Update(_ context.Context, invoice *models.Invoice) error {
	r.byID[invoice.ID] = invoice
	return nil
}

func (r *stubInvoiceRepo) Delete(_ context.Context, storeID, id uuid.UUID) error {
	invoice, ok := r.byID[id]
	if !ok || invoice.StoreID != storeID {
		return gorm.ErrRecordNotFound
	}
	delete(r.byID, id)
	return nil
}

func seedInvoices(repo *stubInvoiceRepo, storeID uuid.UUID, count int) {
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		repo.add(&models.Invoice{
			ID:            uuid.New(),
			StoreID:       storeID,
			InvoiceNumber: fmt.Sprintf("INV-%06d", i+1),
			InvoiceDate:   base.Add(time.Duration(i) * time.Hour),
			TotalAmount:   decimal.NewFromFloat(39.58),
			Status:        enums.InvoiceStatusPaid,
			CreatedAt:     base.Add(time.Duration(i) * time.Hour),
		})
	}
}

func newTestService(t *testing.T, repo *stubInvoiceRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc
}

func TestListPaginatesNewestFirst(t *testing.T) {
	repo := newStubInvoiceRepo()
	storeID := uuid.New()
	seedInvoices(repo, storeID, 5)
	svc := newTestService(t, repo)

	page, err := svc.List(context.Background(), storeID, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Invoices, 2)
	assert.Equal(t, "INV-000005", page.Invoices[0].InvoiceNumber)
	assert.Equal(t, "INV-000004", page.Invoices[1].InvoiceNumber)
	require.NotEmpty(t, page.NextCursor)

	page, err = svc.List(context.Background(), storeID, pagination.Params{Limit: 2, Cursor: page.NextCursor})
	require.NoError(t, err)
	require.Len(t, page.Invoices, 2)
	assert.Equal(t, "INV-000003", page.Invoices[0].InvoiceNumber)
	assert.Equal(t, "INV-000002", page.Invoices[1].InvoiceNumber)
	require.NotEmpty(t, page.NextCursor)

	page, err = svc.List(context.Background(), storeID, pagination.Params{Limit: 2, Cursor: page.NextCursor})
	require.NoError(t, err)
	require.Len(t, page.Invoices, 1)
	assert.Equal(t, "INV-000001", page.Invoices[0].InvoiceNumber)
	assert.Empty(t, page.NextCursor)
}

func TestListRejectsBadCursor(t *testing.T) {
	svc := newTestService(t, newStubInvoiceRepo())

	_, err := svc.List(context.Background(), uuid.New(), pagination.Params{Cursor: "not-base64!"})
	var appErr *pkgerrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestUpdateStatusAndNotes(t *testing.T) {
	repo := newStubInvoiceRepo()
	storeID := uuid.New()
	seedInvoices(repo, storeID, 1)
	svc := newTestService(t, repo)
	id := repo.ordered[0].ID

	status := "Refunded"
	notes := "customer returned the beans"
	updated, err := svc.Update(context.Background(), storeID, id, UpdateInput{Status: &status, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, enums.InvoiceStatusRefunded, updated.Status)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, notes, *updated.Notes)

	bad := "shredded"
	_, err = svc.Update(context.Background(), storeID, id, UpdateInput{Status: &bad})
	var appErr *pkgerrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestUpdateRejectsNegativePaidAmount(t *testing.T) {
	repo := newStubInvoiceRepo()
	storeID := uuid.New()
	seedInvoices(repo, storeID, 1)
	svc := newTestService(t, repo)

	paid := decimal.NewFromInt(-5)
	_, err := svc.Update(context.Background(), storeID, repo.ordered[0].ID, UpdateInput{PaidAmount: &paid})
	var appErr *pkgerrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestDeleteInvoice(t *testing.T) {
	repo := newStubInvoiceRepo()
	storeID := uuid.New()
	seedInvoices(repo, storeID, 1)
	svc := newTestService(t, repo)
	id := repo.ordered[0].ID

	require.NoError(t, svc.Delete(context.Background(), storeID, id))

	err := svc.Delete(context.Background(), storeID, id)
	var appErr *pkgerrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
