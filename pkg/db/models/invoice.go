package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mercatus-labs/mercatus-backend/pkg/enums"
)

// Invoice is the persisted header for one completed sale.
type Invoice struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID        uuid.UUID            `gorm:"column:store_id;type:uuid;not null"`
	CustomerID     *uuid.UUID           `gorm:"column:customer_id;type:uuid"`
	InvoiceNumber  string               `gorm:"column:invoice_number;not null"`
	InvoiceDate    time.Time            `gorm:"column:invoice_date;not null"`
	DueDate        *time.Time           `gorm:"column:due_date"`
	Subtotal       decimal.Decimal      `gorm:"column:subtotal;type:numeric(14,2);not null;default:0"`
	TaxAmount      decimal.Decimal      `gorm:"column:tax_amount;type:numeric(14,2);not null;default:0"`
	DiscountAmount decimal.Decimal      `gorm:"column:discount_amount;type:numeric(14,2);not null;default:0"`
	TotalAmount    decimal.Decimal      `gorm:"column:total_amount;type:numeric(14,2);not null;default:0"`
	PaidAmount     decimal.Decimal      `gorm:"column:paid_amount;type:numeric(14,2);not null;default:0"`
	Status         enums.InvoiceStatus  `gorm:"column:status;type:invoice_status;not null;default:'draft'"`
	PaymentMethod  *enums.PaymentMethod `gorm:"column:payment_method;type:payment_method"`
	Notes          *string              `gorm:"column:notes"`
	CreatedBy      *uuid.UUID           `gorm:"column:created_by;type:uuid"`
	Customer       *Customer            `gorm:"foreignKey:CustomerID"`
	Items          []InvoiceItem        `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// InvoiceItem mirrors one cart line at checkout time.
type InvoiceItem struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	InvoiceID      uuid.UUID       `gorm:"column:invoice_id;type:uuid;not null"`
	ProductID      uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Quantity       int             `gorm:"column:quantity;not null"`
	UnitPrice      decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"column:discount_amount;type:numeric(12,2);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"column:total_amount;type:numeric(14,2);not null"`
	Product        *Product        `gorm:"foreignKey:ProductID"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// InvoiceCounter backs per-store sequential invoice numbering.
type InvoiceCounter struct {
	StoreID    uuid.UUID `gorm:"column:store_id;type:uuid;primaryKey"`
	NextNumber int64     `gorm:"column:next_number;not null;default:1"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the counter table singularized the way the schema defines it.
func (InvoiceCounter) TableName() string {
	return "invoice_counters"
}
