package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mercatus-labs/mercatus-backend/internal/cart"
	"github.com/mercatus-labs/mercatus-backend/pkg/db/models"
	"github.com/mercatus-labs/mercatus-backend/pkg/enums"
	pkgerrors "github.com/mercatus-labs/mercatus-backend/pkg/errors"
	"github.com/mercatus-labs/mercatus-backend/pkg/logger"
	"github.com/mercatus-labs/mercatus-backend/pkg/metrics"
	"github.com/mercatus-labs/mercatus-backend/pkg/outbox"
)

type taxRateLoader interface {
	TaxRate(ctx context.Context, storeID uuid.UUID) (decimal.Decimal, error)
}

type locker interface {
	CheckoutLockKey(storeID, cashierID string) string
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}

type invoiceGateway interface {
	NextInvoiceNumber(ctx context.Context, storeID uuid.UUID) (string, error)
	InsertHeader(ctx context.Context, invoice *models.Invoice) error
	InsertItems(ctx context.Context, items []models.InvoiceItem) error
	FetchComposed(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
}

type purchaseRecorder interface {
	RecordPurchase(ctx context.Context, storeID, customerID uuid.UUID, amount decimal.Decimal, at time.Time) error
}

type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service converts a cashier's cart into a persisted invoice.
type Service interface {
	Execute(ctx context.Context, storeID, cashierID uuid.UUID) (*models.Invoice, error)
}

type service struct {
	carts     cart.Store
	stores    taxRateLoader
	invoices  invoiceGateway
	customers purchaseRecorder
	locks     locker
	lockTTL   time.Duration
	tx        txRunner
	outbox    outboxEmitter
	metrics   *metrics.CheckoutMetrics
	logg      *logger.Logger
}

// Params carries the checkout service dependencies.
type Params struct {
	Carts     cart.Store
	Stores    taxRateLoader
	Invoices  invoiceGateway
	Customers purchaseRecorder
	Locks     locker
	LockTTL   time.Duration
	Tx        txRunner
	Outbox    outboxEmitter
	Metrics   *metrics.CheckoutMetrics
	Logger    *logger.Logger
}

// NewService builds the checkout orchestrator.
func NewService(params Params) (Service, error) {
	if params.Carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if params.Stores == nil {
		return nil, fmt.Errorf("store loader required")
	}
	if params.Invoices == nil {
		return nil, fmt.Errorf("invoice gateway required")
	}
	if params.Locks == nil {
		return nil, fmt.Errorf("locker required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox emitter required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	ttl := params.LockTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &service{
		carts:     params.Carts,
		stores:    params.Stores,
		invoices:  params.Invoices,
		customers: params.Customers,
		locks:     params.Locks,
		lockTTL:   ttl,
		tx:        params.Tx,
		outbox:    params.Outbox,
		metrics:   params.Metrics,
		logg:      params.Logger,
	}, nil
}

// Execute runs the checkout steps strictly in order with no compensating
// rollback: the invoice number is consumed first, then the header, then the
// items, then the composed invoice is re-read. A failure surfaces the error
// and leaves the cart untouched for retry; only a fully successful run
// clears the cart.
func (s *service) Execute(ctx context.Context, storeID, cashierID uuid.UUID) (*models.Invoice, error) {
	if storeID == uuid.Nil || cashierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store and cashier are required")
	}

	lockKey := s.locks.CheckoutLockKey(storeID.String(), cashierID.String())
	acquired, err := s.locks.AcquireLock(ctx, lockKey, s.lockTTL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire checkout lock")
	}
	if !acquired {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "checkout already in progress")
	}
	defer func() {
		if releaseErr := s.locks.ReleaseLock(context.WithoutCancel(ctx), lockKey); releaseErr != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", releaseErr.Error()), "failed to release checkout lock")
		}
	}()

	// The snapshot has to come from inside the critical section; a copy taken
	// before the lock could outlive a competing checkout that already cleared
	// the cart.
	record, err := s.carts.Load(ctx, storeID, cashierID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if record.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart contains no items")
	}

	started := time.Now()
	invoice, err := s.run(ctx, storeID, cashierID, record)
	if err != nil {
		s.metrics.IncFailure(storeID.String(), failingStep(err))
		return nil, err
	}
	s.metrics.ObserveDuration(storeID.String(), time.Since(started))
	s.metrics.IncSuccess(storeID.String())
	return invoice, nil
}

type stepError struct {
	step string
	err  error
}

func (e *stepError) Error() string { return e.err.Error() }
func (e *stepError) Unwrap() error { return e.err }

func failingStep(err error) string {
	var typed *stepError
	if errors.As(err, &typed) {
		return typed.step
	}
	return "unknown"
}

func (s *service) run(ctx context.Context, storeID, cashierID uuid.UUID, record *cart.Cart) (*models.Invoice, error) {
	taxRate, err := s.stores.TaxRate(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store tax rate")
	}
	totals := cart.ComputeTotals(record.Lines, record.DiscountPercent, taxRate)

	number, err := s.invoices.NextInvoiceNumber(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, &stepError{step: "invoice_number", err: err}, "generate invoice number")
	}

	now := time.Now().UTC()
	method := record.PaymentMethod
	header := &models.Invoice{
		StoreID:        storeID,
		CustomerID:     record.CustomerID,
		InvoiceNumber:  number,
		InvoiceDate:    now,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		DiscountAmount: totals.DiscountAmount,
		TotalAmount:    totals.Total,
		PaidAmount:     totals.Total,
		Status:         enums.InvoiceStatusPaid,
		PaymentMethod:  &method,
		CreatedBy:      &cashierID,
	}
	if err := s.invoices.InsertHeader(ctx, header); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, &stepError{step: "insert_header", err: err}, "insert invoice header")
	}

	items := make([]models.InvoiceItem, 0, len(record.Lines))
	for _, line := range record.Lines {
		items = append(items, models.InvoiceItem{
			InvoiceID:      header.ID,
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			DiscountAmount: decimal.Zero,
			TotalAmount:    cart.LineTotal(line),
		})
	}
	if err := s.invoices.InsertItems(ctx, items); err != nil {
		// The header row stays behind; there is no compensation step.
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"invoice_id":     header.ID.String(),
			"invoice_number": number,
		}), "invoice items failed after header insert, header left orphaned")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, &stepError{step: "insert_items", err: err}, "insert invoice items")
	}

	composed, err := s.invoices.FetchComposed(ctx, header.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, &stepError{step: "fetch_composed", err: err}, "load composed invoice")
	}

	s.finalize(ctx, storeID, cashierID, composed)
	return composed, nil
}

// finalize runs the post-commit work. The invoice already exists, so none of
// these are allowed to fail the checkout; problems are logged and left to
// operators.
func (s *service) finalize(ctx context.Context, storeID, cashierID uuid.UUID, invoice *models.Invoice) {
	if invoice.CustomerID != nil && s.customers != nil {
		if err := s.customers.RecordPurchase(ctx, storeID, *invoice.CustomerID, invoice.TotalAmount, invoice.InvoiceDate); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "failed to update customer purchase stats")
		}
	}

	event := outbox.DomainEvent{
		EventType:     enums.EventInvoiceCreated,
		AggregateType: enums.AggregateInvoice,
		AggregateID:   invoice.ID,
		Data: InvoiceCreatedEvent{
			InvoiceID:     invoice.ID,
			StoreID:       storeID,
			InvoiceNumber: invoice.InvoiceNumber,
			TotalAmount:   invoice.TotalAmount,
		},
		Actor:   &outbox.ActorRef{UserID: cashierID, StoreID: storeID},
		Version: 1,
	}
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.outbox.Emit(ctx, tx, event)
	}); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "failed to queue invoice created event")
	}

	if err := s.carts.Delete(ctx, storeID, cashierID); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "invoice_id", invoice.ID.String()), "failed to clear cart after checkout", err)
	}
}

// InvoiceCreatedEvent is the outbox payload emitted after a checkout.
type InvoiceCreatedEvent struct {
	InvoiceID     uuid.UUID       `json:"invoiceId"`
	StoreID       uuid.UUID       `json:"storeId"`
	InvoiceNumber string          `json:"invoiceNumber"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}
