package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mercatus-labs/mercatus-backend/internal/cart"
	"github.com/mercatus-labs/mercatus-backend/pkg/db/models"
	"github.com/mercatus-labs/mercatus-backend/pkg/enums"
	pkgerrors "github.com/mercatus-labs/mercatus-backend/pkg/errors"
	"github.com/mercatus-labs/mercatus-backend/pkg/logger"
	"github.com/mercatus-labs/mercatus-backend/pkg/outbox"
)

type stubStores struct {
	rate decimal.Decimal
}

func (s *stubStores) TaxRate(ctx context.Context, storeID uuid.UUID) (decimal.Decimal, error) {
	return s.rate, nil
}

type stubLocker struct {
	held     map[string]bool
	acquired []string
	released []string
}

func newStubLocker() *stubLocker {
	return &stubLocker{held: map[string]bool{}}
}

func (l *stubLocker) CheckoutLockKey(storeID, cashierID string) string {
	return "lock:" + storeID + ":" + cashierID
}

func (l *stubLocker) AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	l.acquired = append(l.acquired, key)
	return true, nil
}

func (l *stubLocker) ReleaseLock(ctx context.Context, key string) error {
	delete(l.held, key)
	l.released = append(l.released, key)
	return nil
}

type fakeGateway struct {
	numberCalls  int
	headerCalls  int
	itemsCalls   int
	fetchCalls   int
	failNumber   error
	failHeader   error
	failItems    error
	failFetch    error
	lastHeader   *models.Invoice
	lastItems    []models.InvoiceItem
	nextSequence int64
}

func (g *fakeGateway) NextInvoiceNumber(ctx context.Context, storeID uuid.UUID) (string, error) {
	g.numberCalls++
	if g.failNumber != nil {
		return "", g.failNumber
	}
	g.nextSequence++
	return FormatInvoiceNumber(g.nextSequence), nil
}

func (g *fakeGateway) InsertHeader(ctx context.Context, invoice *models.Invoice) error {
	g.headerCalls++
	if g.failHeader != nil {
		return g.failHeader
	}
	invoice.ID = uuid.New()
	g.lastHeader = invoice
	return nil
}

func (g *fakeGateway) InsertItems(ctx context.Context, items []models.InvoiceItem) error {
	g.itemsCalls++
	if g.failItems != nil {
		return g.failItems
	}
	g.lastItems = items
	return nil
}

func (g *fakeGateway) FetchComposed(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	g.fetchCalls++
	if g.failFetch != nil {
		return nil, g.failFetch
	}
	composed := *g.lastHeader
	composed.Items = g.lastItems
	return &composed, nil
}

func (g *fakeGateway) totalCalls() int {
	return g.numberCalls + g.headerCalls + g.itemsCalls + g.fetchCalls
}

type stubRecorder struct {
	calls int
}

func (r *stubRecorder) RecordPurchase(ctx context.Context, storeID, customerID uuid.UUID, amount decimal.Decimal, at time.Time) error {
	r.calls++
	return nil
}

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(&gorm.DB{})
}

type stubOutbox struct {
	events []outbox.DomainEvent
}

func (o *stubOutbox) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	o.events = append(o.events, event)
	return nil
}

type fixture struct {
	svc       Service
	carts     cart.Store
	gateway   *fakeGateway
	locker    *stubLocker
	recorder  *stubRecorder
	outbox    *stubOutbox
	storeID   uuid.UUID
	cashierID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		carts:     cart.NewMemoryStore(),
		gateway:   &fakeGateway{},
		locker:    newStubLocker(),
		recorder:  &stubRecorder{},
		outbox:    &stubOutbox{},
		storeID:   uuid.New(),
		cashierID: uuid.New(),
	}
	svc, err := NewService(Params{
		Carts:     f.carts,
		Stores:    &stubStores{rate: decimal.NewFromInt(10)},
		Invoices:  f.gateway,
		Customers: f.recorder,
		Locks:     f.locker,
		LockTTL:   30 * time.Second,
		Tx:        stubTx{},
		Outbox:    f.outbox,
		Logger:    logger.New(logger.Options{ServiceName: "test"}),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	f.svc = svc
	return f
}

func (f *fixture) seedCart(t *testing.T, customerID *uuid.UUID) *cart.Cart {
	t.Helper()
	record := cart.NewCart()
	if err := record.Add(cart.ProductSnapshot{
		ProductID: uuid.New(),
		Name:      "espresso beans",
		UnitPrice: decimal.RequireFromString("19.99"),
		Stock:     5,
	}); err != nil {
		t.Fatalf("seed add: %v", err)
	}
	if err := record.Increase(record.Lines[0].ProductID); err != nil {
		t.Fatalf("seed increase: %v", err)
	}
	record.SetDiscountPercent(decimal.NewFromInt(10))
	record.SetCustomer(customerID)
	if err := f.carts.Save(context.Background(), f.storeID, f.cashierID, record); err != nil {
		t.Fatalf("seed save: %v", err)
	}
	return record
}

func TestExecuteSuccess(t *testing.T) {
	f := newFixture(t)
	customerID := uuid.New()
	seeded := f.seedCart(t, &customerID)
	expected := cart.ComputeTotals(seeded.Lines, seeded.DiscountPercent, decimal.NewFromInt(10))

	invoice, err := f.svc.Execute(context.Background(), f.storeID, f.cashierID)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if f.gateway.headerCalls != 1 {
		t.Fatalf("expected exactly one header insert, got %d", f.gateway.headerCalls)
	}
	if len(invoice.Items) != len(seeded.Lines) {
		t.Fatalf("expected %d items, got %d", len(seeded.Lines), len(invoice.Items))
	}
	if !invoice.TotalAmount.Equal(expected.Total) {
		t.Fatalf("expected total %s, got %s", expected.Total, invoice.TotalAmount)
	}
	if !invoice.PaidAmount.Equal(expected.Total) {
		t.Fatalf("paid amount must equal total, got %s", invoice.PaidAmount)
	}
	if invoice.Status != enums.InvoiceStatusPaid {
		t.Fatalf("expected paid status, got %s", invoice.Status)
	}
	if invoice.InvoiceNumber != "INV-000001" {
		t.Fatalf("unexpected invoice number %s", invoice.InvoiceNumber)
	}

	after, err := f.carts.Load(context.Background(), f.storeID, f.cashierID)
	if err != nil {
		t.Fatalf("load after: %v", err)
	}
	if !after.IsEmpty() {
		t.Fatal("cart must be cleared after a successful checkout")
	}

	if f.recorder.calls != 1 {
		t.Fatalf("expected one purchase stat update, got %d", f.recorder.calls)
	}
	if len(f.outbox.events) != 1 || f.outbox.events[0].EventType != enums.EventInvoiceCreated {
		t.Fatalf("expected one invoice_created event, got %+v", f.outbox.events)
	}
	if len(f.locker.released) != 1 {
		t.Fatal("lock must be released")
	}
}

func TestExecuteEmptyCartMakesNoGatewayCalls(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Execute(context.Background(), f.storeID, f.cashierID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if f.gateway.totalCalls() != 0 {
		t.Fatalf("empty cart must be rejected before any gateway call, saw %d", f.gateway.totalCalls())
	}
	if len(f.locker.released) != len(f.locker.acquired) {
		t.Fatal("lock must be released after an empty-cart rejection")
	}
}

// guardedStore fails the test if the cart is read while the checkout lock is
// free; the snapshot must come from inside the critical section.
type guardedStore struct {
	cart.Store
	t      *testing.T
	locker *stubLocker
	key    string
}

func (g *guardedStore) Load(ctx context.Context, storeID, cashierID uuid.UUID) (*cart.Cart, error) {
	if !g.locker.held[g.key] {
		g.t.Fatal("cart loaded outside the checkout lock")
	}
	return g.Store.Load(ctx, storeID, cashierID)
}

func TestExecuteLoadsCartUnderLock(t *testing.T) {
	f := newFixture(t)
	f.seedCart(t, nil)

	guarded := &guardedStore{
		Store:  f.carts,
		t:      t,
		locker: f.locker,
		key:    f.locker.CheckoutLockKey(f.storeID.String(), f.cashierID.String()),
	}
	svc, err := NewService(Params{
		Carts:     guarded,
		Stores:    &stubStores{rate: decimal.NewFromInt(10)},
		Invoices:  f.gateway,
		Customers: f.recorder,
		Locks:     f.locker,
		LockTTL:   30 * time.Second,
		Tx:        stubTx{},
		Outbox:    f.outbox,
		Logger:    logger.New(logger.Options{ServiceName: "test"}),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.Execute(context.Background(), f.storeID, f.cashierID); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
}

func TestExecuteRerunAfterSuccessInsertsNoSecondHeader(t *testing.T) {
	f := newFixture(t)
	f.seedCart(t, nil)

	if _, err := f.svc.Execute(context.Background(), f.storeID, f.cashierID); err != nil {
		t.Fatalf("first execute failed: %v", err)
	}

	// A second submission of the same register session finds the cleared
	// cart and must not mint another invoice.
	_, err := f.svc.Execute(context.Background(), f.storeID, f.cashierID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR on rerun, got %v", err)
	}
	if f.gateway.headerCalls != 1 {
		t.Fatalf("one cart must produce exactly one header, got %d", f.gateway.headerCalls)
	}
	if f.gateway.numberCalls != 1 {
		t.Fatalf("one cart must consume exactly one invoice number, got %d", f.gateway.numberCalls)
	}
}

func TestExecuteFailuresPreserveCart(t *testing.T) {
	boom := errors.New("gateway down")
	cases := []struct {
		name      string
		configure func(g *fakeGateway)
		calls     func(g *fakeGateway) int
	}{
		{"invoice number", func(g *fakeGateway) { g.failNumber = boom }, func(g *fakeGateway) int { return g.numberCalls }},
		{"insert header", func(g *fakeGateway) { g.failHeader = boom }, func(g *fakeGateway) int { return g.headerCalls }},
		{"insert items", func(g *fakeGateway) { g.failItems = boom }, func(g *fakeGateway) int { return g.itemsCalls }},
		{"fetch composed", func(g *fakeGateway) { g.failFetch = boom }, func(g *fakeGateway) int { return g.fetchCalls }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			customerID := uuid.New()
			seeded := f.seedCart(t, &customerID)
			tc.configure(f.gateway)

			_, err := f.svc.Execute(context.Background(), f.storeID, f.cashierID)
			if err == nil {
				t.Fatal("expected checkout to fail")
			}
			if tc.calls(f.gateway) != 1 {
				t.Fatalf("expected the failing step to be reached once, got %d", tc.calls(f.gateway))
			}

			after, loadErr := f.carts.Load(context.Background(), f.storeID, f.cashierID)
			if loadErr != nil {
				t.Fatalf("load after: %v", loadErr)
			}
			if after.IsEmpty() {
				t.Fatal("cart must survive a failed checkout")
			}
			if !after.DiscountPercent.Equal(seeded.DiscountPercent) {
				t.Fatal("discount must survive a failed checkout")
			}
			if after.CustomerID == nil || *after.CustomerID != customerID {
				t.Fatal("customer must survive a failed checkout")
			}
			if len(f.outbox.events) != 0 {
				t.Fatal("no event may be emitted for a failed checkout")
			}
			if len(f.locker.released) != len(f.locker.acquired) {
				t.Fatal("lock must be released after failure")
			}
		})
	}
}

func TestExecuteRejectsConcurrentCheckout(t *testing.T) {
	f := newFixture(t)
	f.seedCart(t, nil)
	f.locker.held[f.locker.CheckoutLockKey(f.storeID.String(), f.cashierID.String())] = true

	_, err := f.svc.Execute(context.Background(), f.storeID, f.cashierID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
	if f.gateway.totalCalls() != 0 {
		t.Fatal("a locked cashier must not reach the gateway")
	}
}

func TestExecuteWithoutCustomerSkipsStats(t *testing.T) {
	f := newFixture(t)
	f.seedCart(t, nil)

	if _, err := f.svc.Execute(context.Background(), f.storeID, f.cashierID); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if f.recorder.calls != 0 {
		t.Fatalf("no stats update expected without a customer, got %d", f.recorder.calls)
	}
}
