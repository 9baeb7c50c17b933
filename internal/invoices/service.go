package invoices

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mercatus-labs/mercatus-backend/pkg/db/models"
	"github.com/mercatus-labs/mercatus-backend/pkg/enums"
	pkgerrors "github.com/mercatus-labs/mercatus-backend/pkg/errors"
	"github.com/mercatus-labs/mercatus-backend/pkg/pagination"
)

type invoiceRepository interface {
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*models.Invoice, error)
	ListPage(ctx context.Context, storeID uuid.UUID, limit int, cursor *pagination.Cursor) ([]models.Invoice, error)
	Update(ctx context.Context, invoice *models.Invoice) error
	Delete(ctx context.Context, storeID, id uuid.UUID) error
}

// Page is one cursor window of the invoice history.
type Page struct {
	Invoices   []models.Invoice
	NextCursor string
}

// UpdateInput carries header-level adjustments made after checkout.
type UpdateInput struct {
	Status     *string
	PaidAmount *decimal.Decimal
	Notes      *string
}

// Service exposes the invoice history for review and bookkeeping fixes.
type Service interface {
	Get(ctx context.Context, storeID, id uuid.UUID) (*models.Invoice, error)
	List(ctx context.Context, storeID uuid.UUID, params pagination.Params) (*Page, error)
	Update(ctx context.Context, storeID, id uuid.UUID, input UpdateInput) (*models.Invoice, error)
	Delete(ctx context.Context, storeID, id uuid.UUID) error
}

type service struct {
	repo invoiceRepository
}

func NewService(repo invoiceRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("invoice repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, storeID, id uuid.UUID) (*models.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, storeID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoice")
	}
	return invoice, nil
}

func (s *service) List(ctx context.Context, storeID uuid.UUID, params pagination.Params) (*Page, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.ListPage(ctx, storeID, pagination.LimitWithBuffer(params.Limit), cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list invoices")
	}

	page := &Page{Invoices: rows}
	if len(rows) > limit {
		page.Invoices = rows[:limit]
		last := page.Invoices[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return page, nil
}

func (s *service) Update(ctx context.Context, storeID, id uuid.UUID, input UpdateInput) (*models.Invoice, error) {
	invoice, err := s.Get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		status := enums.InvoiceStatus(strings.ToLower(strings.TrimSpace(*input.Status)))
		if !status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown invoice status %q", *input.Status))
		}
		invoice.Status = status
	}
	if input.PaidAmount != nil {
		if input.PaidAmount.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "paid amount cannot be negative")
		}
		invoice.PaidAmount = *input.PaidAmount
	}
	if input.Notes != nil {
		invoice.Notes = input.Notes
	}

	if err := s.repo.Update(ctx, invoice); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update invoice")
	}
	return invoice, nil
}

func (s *service) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, storeID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete invoice")
	}
	return nil
}
