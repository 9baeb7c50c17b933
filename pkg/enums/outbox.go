package enums

import "fmt"

// OutboxAggregateType maps to the aggregate_type enum in Postgres.
type OutboxAggregateType string

const (
	AggregateInvoice  OutboxAggregateType = "invoice"
	AggregateProduct  OutboxAggregateType = "product"
	AggregateCustomer OutboxAggregateType = "customer"
	AggregateStore    OutboxAggregateType = "store"
)

var validAggregateTypes = []OutboxAggregateType{
	AggregateInvoice,
	AggregateProduct,
	AggregateCustomer,
	AggregateStore,
}

// IsValid reports whether the value matches the canonical aggregate_type enum.
func (a OutboxAggregateType) IsValid() bool {
	for _, candidate := range validAggregateTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseOutboxAggregateType converts raw input into OutboxAggregateType.
func ParseOutboxAggregateType(value string) (OutboxAggregateType, error) {
	for _, candidate := range validAggregateTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid aggregate type %q", value)
}

// OutboxEventType maps to the event_type enum in Postgres.
type OutboxEventType string

const (
	EventInvoiceCreated   OutboxEventType = "invoice_created"
	EventInvoiceUpdated   OutboxEventType = "invoice_updated"
	EventInvoiceDeleted   OutboxEventType = "invoice_deleted"
	EventLowStockDetected OutboxEventType = "low_stock_detected"
)

var validOutboxEventTypes = []OutboxEventType{
	EventInvoiceCreated,
	EventInvoiceUpdated,
	EventInvoiceDeleted,
	EventLowStockDetected,
}

// IsValid reports whether the value matches the canonical event_type enum.
func (e OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts raw input into OutboxEventType.
func ParseOutboxEventType(value string) (OutboxEventType, error) {
	for _, candidate := range validOutboxEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}
