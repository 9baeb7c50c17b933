package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is a buyer registered against a store.
type Customer struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID          uuid.UUID       `gorm:"column:store_id;type:uuid;not null"`
	Name             string          `gorm:"column:name;not null"`
	Email            *string         `gorm:"column:email"`
	Phone            *string         `gorm:"column:phone"`
	Address          *string         `gorm:"column:address"`
	DateOfBirth      *time.Time      `gorm:"column:date_of_birth;type:date"`
	TotalPurchases   decimal.Decimal `gorm:"column:total_purchases;type:numeric(14,2);not null;default:0"`
	TotalOrders      int             `gorm:"column:total_orders;not null;default:0"`
	LastPurchaseDate *time.Time      `gorm:"column:last_purchase_date"`
	CreatedBy        *uuid.UUID      `gorm:"column:created_by;type:uuid"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
